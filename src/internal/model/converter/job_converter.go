package converter

import (
	"time"

	"marketplace-service/src/internal/entity"
	"marketplace-service/src/internal/model"

	"github.com/google/uuid"
)

func JobPostToResponse(post *entity.JobPost) *model.JobPostResponse {
	return &model.JobPostResponse{
		ID:              post.ID,
		ClientID:        post.ClientID,
		Title:           post.Title,
		Description:     post.Description,
		PickupLocation:  post.PickupLocation,
		DropoffLocation: post.DropoffLocation,
		PickupTime:      post.PickupTime,
		Status:          string(post.Status),
		CreatedAt:       post.CreatedAt,
		UpdatedAt:       post.UpdatedAt,
	}
}

func JobBidToResponse(bid *entity.JobBid) *model.JobBidResponse {
	return &model.JobBidResponse{
		ID:                  bid.ID,
		JobPostID:           bid.JobPostID,
		DriverID:            bid.DriverID,
		BidMessage:          bid.BidMessage,
		ProposedPrice:       bid.ProposedPrice,
		EstimatedTurnaround: (time.Duration(bid.EstimatedTurnaroundSeconds) * time.Second).String(),
		Status:              string(bid.Status),
		CreatedAt:           bid.CreatedAt,
	}
}

func JobOfferToResponse(offer *entity.JobOffer) *model.JobOfferResponse {
	return &model.JobOfferResponse{
		ID:            offer.ID,
		JobPostID:     offer.JobPostID,
		AcceptedBidID: offer.AcceptedBidID,
		CarID:         offer.CarID,
		ClientID:      offer.ClientID,
		DriverID:      offer.DriverID,
		StartTime:     offer.StartTime,
		CreatedAt:     offer.CreatedAt,
	}
}

func TripToResponse(trip *entity.Trip) *model.TripResponse {
	return &model.TripResponse{
		ID:                trip.ID,
		JobOfferID:        trip.JobOfferID,
		ActualPickupTime:  trip.ActualPickupTime,
		ActualDropoffTime: trip.ActualDropoffTime,
		DistanceTravelled: trip.DistanceTravelled,
		IsDelivered:       trip.IsDelivered,
		CreatedAt:         trip.CreatedAt,
	}
}

func JobPostToEvent(post *entity.JobPost) *model.JobPostEvent {
	return &model.JobPostEvent{
		ID:         uuid.NewString(),
		JobPostID:  post.ID,
		ClientID:   post.ClientID,
		Title:      post.Title,
		Status:     string(post.Status),
		OccurredAt: time.Now().UTC(),
	}
}

func JobBidToEvent(bid *entity.JobBid) *model.JobBidEvent {
	return &model.JobBidEvent{
		ID:            uuid.NewString(),
		JobBidID:      bid.ID,
		JobPostID:     bid.JobPostID,
		DriverID:      bid.DriverID,
		ProposedPrice: bid.ProposedPrice,
		OccurredAt:    time.Now().UTC(),
	}
}

func JobOfferToEvent(offer *entity.JobOffer) *model.JobOfferEvent {
	return &model.JobOfferEvent{
		ID:            uuid.NewString(),
		JobOfferID:    offer.ID,
		JobPostID:     offer.JobPostID,
		AcceptedBidID: offer.AcceptedBidID,
		ClientID:      offer.ClientID,
		DriverID:      offer.DriverID,
		CarID:         offer.CarID,
		OccurredAt:    time.Now().UTC(),
	}
}

func TripToEvent(trip *entity.Trip) *model.TripEvent {
	return &model.TripEvent{
		ID:          uuid.NewString(),
		TripID:      trip.ID,
		JobOfferID:  trip.JobOfferID,
		IsDelivered: trip.IsDelivered,
		OccurredAt:  time.Now().UTC(),
	}
}
