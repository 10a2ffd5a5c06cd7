package model

import "time"

type CreatePaymentRequest struct {
	JobOfferID string  `json:"job_offer" validate:"required,uuid"`
	Amount     float64 `json:"amount" validate:"required,gt=0,lt=100000000"`
	// ChargeProvider asks the configured payment provider to collect the amount.
	ChargeProvider bool   `json:"charge_provider"`
	Currency       string `json:"currency" validate:"omitempty,len=3,alpha"`
}

type PaymentResponse struct {
	ID                string    `json:"id"`
	JobOfferID        string    `json:"job_offer"`
	Amount            float64   `json:"amount"`
	Provider          string    `json:"provider,omitempty"`
	ProviderReference string    `json:"provider_reference,omitempty"`
	CreatedAt         time.Time `json:"created_at"`
}

type CreateRatingRequest struct {
	JobOfferID string `json:"job_offer" validate:"required,uuid"`
	DriverID   string `json:"driver" validate:"omitempty,uuid"`
	Rating     int    `json:"rating" validate:"required,min=1,max=5"`
	Comment    string `json:"comment" validate:"max=200"`
}

type RatingResponse struct {
	ID         string    `json:"id"`
	JobOfferID string    `json:"job_offer"`
	DriverID   string    `json:"driver"`
	ClientID   string    `json:"client"`
	Rating     int       `json:"rating"`
	Comment    string    `json:"comment"`
	CreatedAt  time.Time `json:"created_at"`
}
