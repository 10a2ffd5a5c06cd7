package model

import "time"

type CreateCarRequest struct {
	Model            string `json:"model" validate:"required,max=100"`
	PlateNo          string `json:"plate_no" validate:"required,max=20"`
	Capacity         int    `json:"capacity" validate:"required,min=1"`
	FrequentLocation string `json:"frequent_location" validate:"max=100"`
	IsAvailable      *bool  `json:"is_available"`
}

type UpdateCarRequest struct {
	ID               string  `json:"-" validate:"required,uuid"`
	Model            *string `json:"model" validate:"omitempty,max=100"`
	PlateNo          *string `json:"plate_no" validate:"omitempty,max=20"`
	Capacity         *int    `json:"capacity" validate:"omitempty,min=1"`
	FrequentLocation *string `json:"frequent_location" validate:"omitempty,max=100"`
	IsAvailable      *bool   `json:"is_available"`
}

type CarResponse struct {
	ID               string    `json:"id"`
	DriverID         string    `json:"driver"`
	Model            string    `json:"model"`
	PlateNo          string    `json:"plate_no"`
	Capacity         int       `json:"capacity"`
	FrequentLocation string    `json:"frequent_location"`
	IsAvailable      bool      `json:"is_available"`
	CreatedAt        time.Time `json:"created_at"`
}

type CreateCarDocRequest struct {
	CarID            string      `form:"car" validate:"required,uuid"`
	CurrentMileage   int         `form:"current_mileage" validate:"min=0"`
	FuelConsumption  float64     `form:"fuel_consumption" validate:"min=0"`
	CarInsurance     *FileUpload `form:"-" validate:"required"`
	CarLicense       *FileUpload `form:"-" validate:"required"`
	TechnicalControl *FileUpload `form:"-" validate:"required"`
	YellowCard       *FileUpload `form:"-" validate:"required"`
}

type UpdateCarDocRequest struct {
	ID              string   `json:"-" validate:"required,uuid"`
	CurrentMileage  *int     `json:"current_mileage" validate:"omitempty,min=0"`
	FuelConsumption *float64 `json:"fuel_consumption" validate:"omitempty,min=0"`
}

type CarDocURLs struct {
	CarInsurance     string `json:"car_insurance"`
	CarLicense       string `json:"car_license"`
	TechnicalControl string `json:"technical_control"`
	YellowCard       string `json:"yellow_card"`
}

type CarDocResponse struct {
	ID              string     `json:"id"`
	DriverID        string     `json:"driver"`
	CarID           string     `json:"car"`
	Documents       CarDocURLs `json:"car_docs"`
	CurrentMileage  int        `json:"current_mileage"`
	FuelConsumption float64    `json:"fuel_consumption"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}
