package entity

import "time"

type Payment struct {
	ID                string    `db:"id" gorm:"primaryKey;type:char(36)"`
	JobOfferID        string    `db:"job_offer_id" gorm:"type:char(36);not null;uniqueIndex:uq_payment_offer_amount"`
	Amount            float64   `db:"amount" gorm:"type:decimal(10,2);not null;uniqueIndex:uq_payment_offer_amount"`
	Provider          string    `db:"provider" gorm:"size:30"`
	ProviderReference string    `db:"provider_reference" gorm:"size:100"`
	CreatedAt         time.Time `db:"created_at"`

	JobOffer *JobOffer `db:"-" gorm:"foreignKey:JobOfferID;constraint:OnDelete:CASCADE"`
}

func (Payment) TableName() string { return "payments" }

// Rating has no uniqueness constraint; one offer can collect several ratings.
type Rating struct {
	ID         string    `db:"id" gorm:"primaryKey;type:char(36)"`
	JobOfferID string    `db:"job_offer_id" gorm:"type:char(36);not null;index"`
	DriverID   string    `db:"driver_id" gorm:"type:char(36);not null;index"`
	ClientID   string    `db:"client_id" gorm:"type:char(36);not null;index"`
	Rating     int       `db:"rating" gorm:"not null"`
	Comment    string    `db:"comment" gorm:"size:200"`
	CreatedAt  time.Time `db:"created_at"`

	JobOffer *JobOffer `db:"-" gorm:"foreignKey:JobOfferID;constraint:OnDelete:CASCADE"`
}

func (Rating) TableName() string { return "ratings" }

type PaymentFilter struct {
	JobOfferID *string
	ClientID   *string
	DriverID   *string
}

type RatingFilter struct {
	JobOfferID *string
	ClientID   *string
	DriverID   *string
}
