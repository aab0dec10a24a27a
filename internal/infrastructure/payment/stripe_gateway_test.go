package payment

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// The customer must return to a hostname the platform actually serves:
// the tenant's verified custom domain, or the shared ordering subdomain.
func TestReturnBase(t *testing.T) {
	assert.Equal(t, "https://order.caterkit.nl", returnBase("", "caterkit.nl"))
	assert.Equal(t, "https://catering.motokitchen.nl", returnBase("catering.motokitchen.nl", "caterkit.nl"))
}
