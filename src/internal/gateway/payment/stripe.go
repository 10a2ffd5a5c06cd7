package payment

import (
	"context"
	"math"
	"strings"

	"marketplace-service/src/pkg/log"

	stripe "github.com/stripe/stripe-go/v74"
	"github.com/stripe/stripe-go/v74/client"
)

const ProviderStripe = "stripe"

// StripeProvider collects offer payments through a confirmed PaymentIntent.
type StripeProvider struct {
	API             *client.API
	DefaultCurrency string
	Log             log.Log
}

func NewStripeProvider(secretKey, defaultCurrency string, logger log.Log) *StripeProvider {
	api := &client.API{}
	api.Init(secretKey, nil)
	if defaultCurrency == "" {
		defaultCurrency = "usd"
	}
	return &StripeProvider{API: api, DefaultCurrency: defaultCurrency, Log: logger}
}

func (s *StripeProvider) Name() string { return ProviderStripe }

// Charge creates a PaymentIntent for amount and returns its id. reference is sent as the
// idempotency key; Stripe only deduplicates charges when callers derive it from what is
// being paid for rather than from a per-request id.
func (s *StripeProvider) Charge(ctx context.Context, amount float64, currency, reference string) (string, error) {
	if currency == "" {
		currency = s.DefaultCurrency
	}
	params := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(MinorUnits(amount)),
		Currency: stripe.String(strings.ToLower(currency)),
	}
	params.Context = ctx
	params.IdempotencyKey = stripe.String(reference)
	params.AddMetadata("reference", reference)

	pi, err := s.API.PaymentIntents.New(params)
	if err != nil {
		s.Log.Error("gateway/payment", err.Error(), "Charge", reference)
		return "", err
	}
	return pi.ID, nil
}

// MinorUnits converts a two-decimal amount into cents.
func MinorUnits(amount float64) int64 {
	return int64(math.Round(amount * 100))
}
