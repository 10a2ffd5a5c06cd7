package model

import "time"

type CreateJobPostRequest struct {
	Title           string     `json:"title" validate:"required,max=255"`
	Description     string     `json:"description" validate:"max=5000"`
	PickupLocation  string     `json:"pickup_location" validate:"required,max=255"`
	DropoffLocation string     `json:"dropoff_location" validate:"required,max=255"`
	PickupTime      *time.Time `json:"pickup_time"`
}

type UpdateJobPostRequest struct {
	ID              string     `json:"-" validate:"required,uuid"`
	Title           *string    `json:"title" validate:"omitempty,max=255"`
	Description     *string    `json:"description" validate:"omitempty,max=5000"`
	PickupLocation  *string    `json:"pickup_location" validate:"omitempty,max=255"`
	DropoffLocation *string    `json:"dropoff_location" validate:"omitempty,max=255"`
	PickupTime      *time.Time `json:"pickup_time"`
	Status          *string    `json:"status" validate:"omitempty,oneof=pending job_offered in_progress on_hold completed cancelled"`
}

type ListJobPostRequest struct {
	Status string `query:"status" validate:"omitempty,oneof=pending job_offered in_progress on_hold completed cancelled"`
}

type JobPostResponse struct {
	ID              string    `json:"id"`
	ClientID        string    `json:"client"`
	Title           string    `json:"title"`
	Description     string    `json:"description"`
	PickupLocation  string    `json:"pickup_location"`
	DropoffLocation string    `json:"dropoff_location"`
	PickupTime      time.Time `json:"pickup_time"`
	Status          string    `json:"status"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

type CreateJobBidRequest struct {
	JobPostID     string  `json:"job_post" validate:"required,uuid"`
	BidMessage    string  `json:"bid_message" validate:"max=2000"`
	ProposedPrice float64 `json:"proposed_price" validate:"required,gt=0,lt=100000000"`
	// EstimatedTurnaround is a Go duration string such as "2h30m".
	EstimatedTurnaround string `json:"estimated_turnaround" validate:"required,max=32"`
}

type UpdateJobBidRequest struct {
	ID                  string   `json:"-" validate:"required,uuid"`
	BidMessage          *string  `json:"bid_message" validate:"omitempty,max=2000"`
	ProposedPrice       *float64 `json:"proposed_price" validate:"omitempty,gt=0,lt=100000000"`
	EstimatedTurnaround *string  `json:"estimated_turnaround" validate:"omitempty,max=32"`
}

type ListJobBidRequest struct {
	JobPostID string `query:"job_post" validate:"omitempty,uuid"`
}

type JobBidResponse struct {
	ID                  string    `json:"id"`
	JobPostID           string    `json:"job_post"`
	DriverID            string    `json:"driver"`
	BidMessage          string    `json:"bid_message"`
	ProposedPrice       float64   `json:"proposed_price"`
	EstimatedTurnaround string    `json:"estimated_turnaround"`
	Status              string    `json:"status"`
	CreatedAt           time.Time `json:"created_at"`
}

type CreateJobOfferRequest struct {
	JobPostID     string     `json:"job_post" validate:"required,uuid"`
	AcceptedBidID string     `json:"accepted_bid" validate:"required,uuid"`
	CarID         string     `json:"car" validate:"required,uuid"`
	StartTime     *time.Time `json:"start_time"`
}

type JobOfferResponse struct {
	ID            string    `json:"id"`
	JobPostID     string    `json:"job_post"`
	AcceptedBidID string    `json:"accepted_bid"`
	CarID         string    `json:"car"`
	ClientID      string    `json:"client"`
	DriverID      string    `json:"driver"`
	StartTime     time.Time `json:"start_time"`
	CreatedAt     time.Time `json:"created_at"`
}

type CreateTripRequest struct {
	JobOfferID        string     `json:"job_offer" validate:"required,uuid"`
	ActualPickupTime  *time.Time `json:"actual_pickup_time"`
	ActualDropoffTime *time.Time `json:"actual_dropoff_time"`
	DistanceTravelled float64    `json:"distance_travelled" validate:"min=0"`
	IsDelivered       bool       `json:"is_delivered"`
}

type UpdateTripRequest struct {
	ID                string     `json:"-" validate:"required,uuid"`
	ActualPickupTime  *time.Time `json:"actual_pickup_time"`
	ActualDropoffTime *time.Time `json:"actual_dropoff_time"`
	DistanceTravelled *float64   `json:"distance_travelled" validate:"omitempty,min=0"`
	IsDelivered       *bool      `json:"is_delivered"`
}

type TripResponse struct {
	ID                string     `json:"id"`
	JobOfferID        string     `json:"job_offer"`
	ActualPickupTime  *time.Time `json:"actual_pickup_time"`
	ActualDropoffTime *time.Time `json:"actual_dropoff_time"`
	DistanceTravelled float64    `json:"distance_travelled"`
	IsDelivered       bool       `json:"is_delivered"`
	CreatedAt         time.Time  `json:"created_at"`
}
