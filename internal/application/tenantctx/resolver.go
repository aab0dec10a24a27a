// Package tenantctx maps inbound request metadata (hostname, path) to a
// tenant identity, or reports that none applies. Resolution fails closed:
// any lookup error becomes the unresolved outcome, never a partial result.
package tenantctx

import (
	"context"
	"net"
	"strings"

	"github.com/caterkit/caterkit-api/internal/domain/repository"
	"github.com/caterkit/caterkit-api/pkg/logger"
	"github.com/caterkit/caterkit-api/pkg/slug"
)

// Resolution outcomes.
const (
	OutcomeResolved   = "resolved"   // verified (slug, id) for an active tenant
	OutcomeNone       = "none"       // tenant-agnostic request (marketing pages)
	OutcomeUnresolved = "unresolved" // ordering signal present but no active tenant
)

// Resolution is the result of one resolution attempt. Either Resolved is true
// and Slug/TenantID identify an active tenant, or both are empty.
type Resolution struct {
	Outcome  string
	Slug     string
	TenantID string
}

// Resolved reports whether an active tenant was verified.
func (r Resolution) Resolved() bool { return r.Outcome == OutcomeResolved }

// Config routing configuration for the resolver.
type Config struct {
	RootDomain        string // canonical marketing domain, e.g. "caterkit.nl"
	DefaultTenantSlug string // tenant served on the reserved ordering subdomain
	OrderPathPrefix   string // reserved ordering path segment, e.g. "/order"
}

// Resolver derives a tenant identity from hostname + path.
type Resolver struct {
	cfg     Config
	tenants repository.TenantRepository
	domains repository.TenantDomainRepository
	log     *logger.Logger
}

// New builds a Resolver.
func New(cfg Config, tenants repository.TenantRepository, domains repository.TenantDomainRepository, log *logger.Logger) *Resolver {
	if cfg.OrderPathPrefix == "" {
		cfg.OrderPathPrefix = "/order"
	}
	return &Resolver{cfg: cfg, tenants: tenants, domains: domains, log: log}
}

// Resolve maps (hostname, path) to a tenant. slugOverride short-circuits
// hostname inspection for callers that already know the tenant.
// First match wins; reserved subdomain/path patterns win over the
// custom-domain table.
func (r *Resolver) Resolve(ctx context.Context, host, path, slugOverride string) Resolution {
	hostname := normalizeHost(host)

	// Rule 1: explicit override from server-side callers. A malformed value
	// is never looked up.
	if slugOverride != "" {
		if !slug.Valid(slugOverride) {
			return Resolution{Outcome: OutcomeUnresolved}
		}
		return r.bySlug(ctx, hostname, path, slugOverride)
	}

	// Rule 2: reserved ordering subdomain always serves the default tenant.
	if HasOrderSubdomain(hostname) {
		return r.bySlug(ctx, hostname, path, r.cfg.DefaultTenantSlug)
	}

	// Rule 3: ordering path prefix, regardless of hostname.
	if r.IsOrderPath(path) {
		return r.bySlug(ctx, hostname, path, r.cfg.DefaultTenantSlug)
	}

	// Rule 4: canonical root domain (or local development) without an
	// ordering path is tenant-agnostic marketing content.
	if r.isRootDomain(hostname) || isLocalHost(hostname) {
		return Resolution{Outcome: OutcomeNone}
	}

	// Rule 5: candidate custom domain.
	return r.byCustomDomain(ctx, hostname, path)
}

// IsOrderPath reports whether path starts with the reserved ordering segment.
func (r *Resolver) IsOrderPath(path string) bool {
	prefix := r.cfg.OrderPathPrefix
	return path == prefix || strings.HasPrefix(path, prefix+"/")
}

// HasOrderSubdomain reports whether hostname carries the reserved ordering prefix.
func HasOrderSubdomain(hostname string) bool {
	return strings.HasPrefix(hostname, "order.") || strings.HasPrefix(hostname, "orders.")
}

func (r *Resolver) isRootDomain(hostname string) bool {
	root := strings.ToLower(r.cfg.RootDomain)
	return hostname == root || hostname == "www."+root
}

func isLocalHost(hostname string) bool {
	return hostname == "localhost" || hostname == "127.0.0.1" || hostname == "::1"
}

// bySlug is rule 6: verify the slug against the tenant table and require
// active status. Lookup errors are logged and reported as unresolved.
func (r *Resolver) bySlug(ctx context.Context, hostname, path, s string) Resolution {
	tenant, err := r.tenants.GetBySlug(ctx, s)
	if err != nil {
		r.log.Error().Err(err).
			Str("hostname", hostname).
			Str("path", path).
			Str("slug", s).
			Msg("tenant lookup failed, treating as unresolved")
		return Resolution{Outcome: OutcomeUnresolved}
	}
	if tenant == nil || !tenant.IsActive() {
		return Resolution{Outcome: OutcomeUnresolved}
	}
	return Resolution{Outcome: OutcomeResolved, Slug: tenant.Slug, TenantID: tenant.ID}
}

func (r *Resolver) byCustomDomain(ctx context.Context, hostname, path string) Resolution {
	d, err := r.domains.GetVerifiedByHostname(ctx, hostname)
	if err != nil {
		r.log.Error().Err(err).
			Str("hostname", hostname).
			Str("path", path).
			Msg("custom-domain lookup failed, treating as unresolved")
		return Resolution{Outcome: OutcomeUnresolved}
	}
	if d == nil {
		return Resolution{Outcome: OutcomeUnresolved}
	}
	tenant, err := r.tenants.GetByID(ctx, d.TenantID)
	if err != nil {
		r.log.Error().Err(err).
			Str("hostname", hostname).
			Str("tenant_id", d.TenantID).
			Msg("tenant lookup failed, treating as unresolved")
		return Resolution{Outcome: OutcomeUnresolved}
	}
	if tenant == nil || !tenant.IsActive() {
		return Resolution{Outcome: OutcomeUnresolved}
	}
	return Resolution{Outcome: OutcomeResolved, Slug: tenant.Slug, TenantID: tenant.ID}
}

// normalizeHost lowercases the hostname and strips any port.
func normalizeHost(host string) string {
	host = strings.ToLower(strings.TrimSpace(host))
	if h, _, err := net.SplitHostPort(host); err == nil {
		return h
	}
	return host
}
