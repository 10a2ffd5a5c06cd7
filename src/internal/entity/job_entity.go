package entity

import "time"

type JobPostStatus string

const (
	JobPostPending    JobPostStatus = "pending"
	JobPostOffered    JobPostStatus = "job_offered"
	JobPostInProgress JobPostStatus = "in_progress"
	JobPostOnHold     JobPostStatus = "on_hold"
	JobPostCompleted  JobPostStatus = "completed"
	JobPostCancelled  JobPostStatus = "cancelled"
)

func (s JobPostStatus) Terminal() bool {
	return s == JobPostCompleted || s == JobPostCancelled
}

type BidStatus string

const (
	BidPending  BidStatus = "pending"
	BidAccepted BidStatus = "accepted"
	BidRejected BidStatus = "rejected"
)

type JobPost struct {
	ID              string        `db:"id" gorm:"primaryKey;type:char(36)"`
	ClientID        string        `db:"client_id" gorm:"type:char(36);not null;uniqueIndex:uq_jobpost_client_title"`
	Title           string        `db:"title" gorm:"size:255;not null;uniqueIndex:uq_jobpost_client_title"`
	Description     string        `db:"description" gorm:"type:text"`
	PickupLocation  string        `db:"pickup_location" gorm:"size:255;not null"`
	DropoffLocation string        `db:"dropoff_location" gorm:"size:255;not null"`
	PickupTime      time.Time     `db:"pickup_time"`
	Status          JobPostStatus `db:"status" gorm:"type:varchar(20);not null;default:pending;index"`
	CreatedAt       time.Time     `db:"created_at"`
	UpdatedAt       time.Time     `db:"updated_at"`

	Client *Client `db:"-" gorm:"foreignKey:ClientID;constraint:OnDelete:CASCADE"`
}

func (JobPost) TableName() string { return "job_posts" }

type JobBid struct {
	ID                         string    `db:"id" gorm:"primaryKey;type:char(36)"`
	JobPostID                  string    `db:"job_post_id" gorm:"type:char(36);not null;uniqueIndex:uq_jobbid_post_driver"`
	DriverID                   string    `db:"driver_id" gorm:"type:char(36);not null;uniqueIndex:uq_jobbid_post_driver"`
	BidMessage                 string    `db:"bid_message" gorm:"type:text"`
	ProposedPrice              float64   `db:"proposed_price" gorm:"type:decimal(10,2);not null"`
	EstimatedTurnaroundSeconds int64     `db:"estimated_turnaround_seconds"`
	Status                     BidStatus `db:"status" gorm:"type:varchar(10);not null;default:pending"`
	CreatedAt                  time.Time `db:"created_at"`
	UpdatedAt                  time.Time `db:"updated_at"`

	JobPost *JobPost `db:"-" gorm:"foreignKey:JobPostID;constraint:OnDelete:CASCADE"`
	Driver  *Driver  `db:"-" gorm:"foreignKey:DriverID;constraint:OnDelete:CASCADE"`
}

func (JobBid) TableName() string { return "job_bids" }

// JobOffer binds an accepted bid and a car to a post. ClientID and DriverID are copied
// from the post and the bid at creation so reads can be scoped without joins.
type JobOffer struct {
	ID            string    `db:"id" gorm:"primaryKey;type:char(36)"`
	JobPostID     string    `db:"job_post_id" gorm:"type:char(36);not null;uniqueIndex:uq_joboffer_post_bid"`
	AcceptedBidID string    `db:"accepted_bid_id" gorm:"type:char(36);not null;uniqueIndex:uq_joboffer_post_bid;uniqueIndex"`
	CarID         string    `db:"car_id" gorm:"type:char(36);not null"`
	ClientID      string    `db:"client_id" gorm:"type:char(36);not null;index"`
	DriverID      string    `db:"driver_id" gorm:"type:char(36);not null;index"`
	StartTime     time.Time `db:"start_time"`
	CreatedAt     time.Time `db:"created_at"`
	UpdatedAt     time.Time `db:"updated_at"`

	JobPost     *JobPost `db:"-" gorm:"foreignKey:JobPostID;constraint:OnDelete:CASCADE"`
	AcceptedBid *JobBid  `db:"-" gorm:"foreignKey:AcceptedBidID;constraint:OnDelete:CASCADE"`
	Car         *Car     `db:"-" gorm:"foreignKey:CarID;constraint:OnDelete:CASCADE"`
}

func (JobOffer) TableName() string { return "job_offers" }

type Trip struct {
	ID                string     `db:"id" gorm:"primaryKey;type:char(36)"`
	JobOfferID        string     `db:"job_offer_id" gorm:"type:char(36);not null;uniqueIndex"`
	ActualPickupTime  *time.Time `db:"actual_pickup_time"`
	ActualDropoffTime *time.Time `db:"actual_dropoff_time"`
	DistanceTravelled float64    `db:"distance_travelled" gorm:"type:decimal(10,2)"`
	IsDelivered       bool       `db:"is_delivered" gorm:"not null;default:false"`
	CreatedAt         time.Time  `db:"created_at"`
	UpdatedAt         time.Time  `db:"updated_at"`

	JobOffer *JobOffer `db:"-" gorm:"foreignKey:JobOfferID;constraint:OnDelete:CASCADE"`
}

func (Trip) TableName() string { return "trips" }

type JobPostFilter struct {
	ClientID *string
	Status   *JobPostStatus
	// OpenOrBidBy matches pending posts plus any post the driver has bid on.
	OpenOrBidBy *string
}

type JobBidFilter struct {
	JobPostID *string
	DriverID  *string
	// ClientID matches bids on posts owned by the client.
	ClientID *string
	Status   *BidStatus
}

type JobOfferFilter struct {
	JobPostID *string
	ClientID  *string
	DriverID  *string
}

type TripFilter struct {
	JobOfferID *string
	ClientID   *string
	DriverID   *string
}
