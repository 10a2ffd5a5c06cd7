package converter

import (
	"marketplace-service/src/internal/entity"
	"marketplace-service/src/internal/model"
)

func PaymentToResponse(payment *entity.Payment) *model.PaymentResponse {
	return &model.PaymentResponse{
		ID:                payment.ID,
		JobOfferID:        payment.JobOfferID,
		Amount:            payment.Amount,
		Provider:          payment.Provider,
		ProviderReference: payment.ProviderReference,
		CreatedAt:         payment.CreatedAt,
	}
}

func RatingToResponse(rating *entity.Rating) *model.RatingResponse {
	return &model.RatingResponse{
		ID:         rating.ID,
		JobOfferID: rating.JobOfferID,
		DriverID:   rating.DriverID,
		ClientID:   rating.ClientID,
		Rating:     rating.Rating,
		Comment:    rating.Comment,
		CreatedAt:  rating.CreatedAt,
	}
}
