// Package rbac decides whether a role may perform a resource/action pair.
// Decisions are pure functions over a fixed table: no I/O, fully deterministic.
package rbac

// Roles in ascending privilege. A higher role satisfies any check
// that requires a lower one.
const (
	RoleStaff = "staff"
	RoleAdmin = "admin"
	RoleOwner = "owner"
)

var roleRank = map[string]int{
	RoleStaff: 1,
	RoleAdmin: 2,
	RoleOwner: 3,
}

// Resources.
const (
	ResourceOrders   = "orders"
	ResourceMenu     = "menu"
	ResourceSettings = "settings"
	ResourceBilling  = "billing"
	ResourceMembers  = "members"
)

// Actions.
const (
	ActionRead   = "read"
	ActionCreate = "create"
	ActionUpdate = "update"
	ActionDelete = "delete"
)

type permission struct {
	resource string
	action   string
}

// minRoleFor is the fixed permission table: (resource, action) -> minimum role.
var minRoleFor = map[permission]string{
	{ResourceOrders, ActionRead}:   RoleStaff,
	{ResourceOrders, ActionUpdate}: RoleStaff,
	{ResourceOrders, ActionCreate}: RoleAdmin,
	{ResourceOrders, ActionDelete}: RoleAdmin,

	{ResourceMenu, ActionRead}:   RoleStaff,
	{ResourceMenu, ActionCreate}: RoleAdmin,
	{ResourceMenu, ActionUpdate}: RoleAdmin,
	{ResourceMenu, ActionDelete}: RoleAdmin,

	// Business-critical settings fields (payment, contact) are gated to owner
	// by the settings endpoint itself on top of this table.
	{ResourceSettings, ActionUpdate}: RoleAdmin,

	{ResourceBilling, ActionRead}:   RoleOwner,
	{ResourceBilling, ActionUpdate}: RoleOwner,

	{ResourceMembers, ActionRead}:   RoleAdmin,
	{ResourceMembers, ActionCreate}: RoleOwner,
	{ResourceMembers, ActionUpdate}: RoleOwner,
	{ResourceMembers, ActionDelete}: RoleOwner,
}

// ValidRole reports whether role is one of the known roles.
func ValidRole(role string) bool {
	_, ok := roleRank[role]
	return ok
}

// Satisfies reports whether role meets or exceeds minRole in the hierarchy.
// Unknown roles never satisfy anything (fail closed).
func Satisfies(role, minRole string) bool {
	r, ok := roleRank[role]
	if !ok {
		return false
	}
	min, ok := roleRank[minRole]
	if !ok {
		return false
	}
	return r >= min
}

// HasPermission reports whether role may perform action on resource.
// Unknown (resource, action) pairs are denied.
func HasPermission(role, resource, action string) bool {
	min, ok := minRoleFor[permission{resource, action}]
	if !ok {
		return false
	}
	return Satisfies(role, min)
}

// MinRole returns the minimum role for (resource, action) and whether the
// pair exists in the table. Used by HTTP error messages naming the
// required role.
func MinRole(resource, action string) (string, bool) {
	min, ok := minRoleFor[permission{resource, action}]
	return min, ok
}
