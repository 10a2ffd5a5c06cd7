package payment

import (
	"io"
	"testing"

	"marketplace-service/src/pkg/log"

	"github.com/stretchr/testify/assert"
)

func TestMinorUnits(t *testing.T) {
	assert.Equal(t, int64(1999), MinorUnits(19.99))
	assert.Equal(t, int64(10), MinorUnits(0.1))
	assert.Equal(t, int64(250000), MinorUnits(2500))
}

func TestNewStripeProvider_Defaults(t *testing.T) {
	p := NewStripeProvider("sk_test_123", "", log.NewLogger("test", "ERROR", io.Discard))
	assert.Equal(t, "usd", p.DefaultCurrency)
	assert.Equal(t, ProviderStripe, p.Name())
	assert.NotNil(t, p.API.PaymentIntents)
}
