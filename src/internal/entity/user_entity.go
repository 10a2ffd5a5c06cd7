package entity

import "time"

type Role string

const (
	RoleDriver Role = "driver"
	RoleClient Role = "client"
)

func (r Role) Valid() bool {
	return r == RoleDriver || r == RoleClient
}

// User is the authenticated actor. Role never changes after creation.
type User struct {
	ID           string    `db:"id" gorm:"primaryKey;type:char(36)"`
	Username     string    `db:"username" gorm:"size:150;not null;uniqueIndex"`
	Email        string    `db:"email" gorm:"size:254;not null;uniqueIndex"`
	Phone        string    `db:"phone" gorm:"size:20"`
	PasswordHash string    `db:"password_hash" gorm:"size:255;not null"`
	Role         Role      `db:"role" gorm:"type:varchar(10);not null"`
	CreatedAt    time.Time `db:"created_at"`
	UpdatedAt    time.Time `db:"updated_at"`
}

func (User) TableName() string { return "users" }

type Driver struct {
	ID               string    `db:"id" gorm:"primaryKey;type:char(36)"`
	UserID           string    `db:"user_id" gorm:"type:char(36);not null;uniqueIndex"`
	LicenseNumber    string    `db:"license_number" gorm:"size:50"`
	FrequentLocation string    `db:"frequent_location" gorm:"size:100"`
	PersonalIDURL    string    `db:"personal_id_url" gorm:"size:512"`
	CreatedAt        time.Time `db:"created_at"`
	UpdatedAt        time.Time `db:"updated_at"`

	User *User `db:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
}

func (Driver) TableName() string { return "drivers" }

type Client struct {
	ID        string    `db:"id" gorm:"primaryKey;type:char(36)"`
	UserID    string    `db:"user_id" gorm:"type:char(36);not null;uniqueIndex"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`

	User *User `db:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
}

func (Client) TableName() string { return "clients" }

type DriverFilter struct {
	ID     *string
	UserID *string
	// ClientID limits drivers to those who bid on one of the client's posts.
	ClientID *string
}

type ClientFilter struct {
	ID     *string
	UserID *string
	// DriverID limits clients to those owning a post the driver bid on.
	DriverID *string
}
