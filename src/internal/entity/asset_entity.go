package entity

import "time"

type Car struct {
	ID               string    `db:"id" gorm:"primaryKey;type:char(36)"`
	DriverID         string    `db:"driver_id" gorm:"type:char(36);not null;uniqueIndex:uq_car_driver_plate"`
	Model            string    `db:"model" gorm:"size:100;not null"`
	PlateNo          string    `db:"plate_no" gorm:"size:20;not null;uniqueIndex:uq_car_driver_plate"`
	Capacity         int       `db:"capacity" gorm:"not null"`
	FrequentLocation string    `db:"frequent_location" gorm:"size:100"`
	IsAvailable      bool      `db:"is_available" gorm:"not null;default:true"`
	CreatedAt        time.Time `db:"created_at"`
	UpdatedAt        time.Time `db:"updated_at"`

	Driver *Driver `db:"-" gorm:"foreignKey:DriverID;constraint:OnDelete:CASCADE"`
}

func (Car) TableName() string { return "cars" }

// CarDoc holds the verification documents of one car, at most one row per (driver, car).
type CarDoc struct {
	ID                  string    `db:"id" gorm:"primaryKey;type:char(36)"`
	DriverID            string    `db:"driver_id" gorm:"type:char(36);not null;uniqueIndex:uq_cardoc_driver_car"`
	CarID               string    `db:"car_id" gorm:"type:char(36);not null;uniqueIndex:uq_cardoc_driver_car"`
	CarInsuranceURL     string    `db:"car_insurance_url" gorm:"size:512"`
	CarLicenseURL       string    `db:"car_license_url" gorm:"size:512"`
	TechnicalControlURL string    `db:"technical_control_url" gorm:"size:512"`
	YellowCardURL       string    `db:"yellow_card_url" gorm:"size:512"`
	CurrentMileage      int       `db:"current_mileage"`
	FuelConsumption     float64   `db:"fuel_consumption" gorm:"type:decimal(6,2)"`
	CreatedAt           time.Time `db:"created_at"`
	UpdatedAt           time.Time `db:"updated_at"`

	Driver *Driver `db:"-" gorm:"foreignKey:DriverID;constraint:OnDelete:CASCADE"`
	Car    *Car    `db:"-" gorm:"foreignKey:CarID;constraint:OnDelete:CASCADE"`
}

func (CarDoc) TableName() string { return "car_docs" }

type CarFilter struct {
	ID       *string
	DriverID *string
	// ClientID limits cars to those bound to one of the client's offers.
	ClientID *string
}

type CarDocFilter struct {
	DriverID *string
	CarID    *string
	// ClientID limits documents to cars bound to one of the client's offers.
	ClientID *string
}
