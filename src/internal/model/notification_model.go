package model

import "time"

type CreateNotificationRequest struct {
	Message string `json:"message" validate:"required,max=1000"`
}

type NotificationResponse struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user"`
	Message   string    `json:"message"`
	IsRead    bool      `json:"is_read"`
	CreatedAt time.Time `json:"created_at"`
}

type DemoRequestRequest struct {
	FullName string    `json:"full_name" validate:"required,max=255"`
	Email    string    `json:"email" validate:"required,email,max=254"`
	Company  string    `json:"company" validate:"max=255"`
	Phone    string    `json:"phone" validate:"max=20"`
	Datetime time.Time `json:"datetime" validate:"required"`
	Message  string    `json:"message" validate:"max=5000"`
}

type DemoRequestResponse struct {
	ID        string    `json:"id"`
	FullName  string    `json:"full_name"`
	Email     string    `json:"email"`
	Company   string    `json:"company"`
	Phone     string    `json:"phone"`
	Datetime  time.Time `json:"datetime"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
}

// DemoRequestEmailTask is the payload of the deferred email job.
type DemoRequestEmailTask struct {
	DemoRequestID string    `json:"demo_request_id"`
	FullName      string    `json:"full_name"`
	Email         string    `json:"email"`
	Company       string    `json:"company"`
	Phone         string    `json:"phone"`
	Datetime      time.Time `json:"datetime"`
	Message       string    `json:"message"`
	RequestedAt   time.Time `json:"requested_at"`
}
