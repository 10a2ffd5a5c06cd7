package model

import "time"

type Event interface {
	GetId() string
}

type JobPostEvent struct {
	ID         string    `json:"id"`
	JobPostID  string    `json:"job_post_id"`
	ClientID   string    `json:"client_id"`
	Title      string    `json:"title"`
	Status     string    `json:"status"`
	OccurredAt time.Time `json:"occurred_at"`
}

func (e *JobPostEvent) GetId() string { return e.ID }

type JobBidEvent struct {
	ID            string    `json:"id"`
	JobBidID      string    `json:"job_bid_id"`
	JobPostID     string    `json:"job_post_id"`
	DriverID      string    `json:"driver_id"`
	ProposedPrice float64   `json:"proposed_price"`
	OccurredAt    time.Time `json:"occurred_at"`
}

func (e *JobBidEvent) GetId() string { return e.ID }

type JobOfferEvent struct {
	ID            string    `json:"id"`
	JobOfferID    string    `json:"job_offer_id"`
	JobPostID     string    `json:"job_post_id"`
	AcceptedBidID string    `json:"accepted_bid_id"`
	ClientID      string    `json:"client_id"`
	DriverID      string    `json:"driver_id"`
	CarID         string    `json:"car_id"`
	OccurredAt    time.Time `json:"occurred_at"`
}

func (e *JobOfferEvent) GetId() string { return e.ID }

type TripEvent struct {
	ID          string    `json:"id"`
	TripID      string    `json:"trip_id"`
	JobOfferID  string    `json:"job_offer_id"`
	IsDelivered bool      `json:"is_delivered"`
	OccurredAt  time.Time `json:"occurred_at"`
}

func (e *TripEvent) GetId() string { return e.ID }

type ChatMessageEvent struct {
	ID         string    `json:"id"`
	MessageID  string    `json:"message_id"`
	ChatID     string    `json:"chat_id"`
	SenderID   string    `json:"sender_id"`
	ReceiverID string    `json:"receiver_id"`
	OccurredAt time.Time `json:"occurred_at"`
}

func (e *ChatMessageEvent) GetId() string { return e.ID }
