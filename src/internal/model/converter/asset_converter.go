package converter

import (
	"marketplace-service/src/internal/entity"
	"marketplace-service/src/internal/model"
)

func CarToResponse(car *entity.Car) *model.CarResponse {
	return &model.CarResponse{
		ID:               car.ID,
		DriverID:         car.DriverID,
		Model:            car.Model,
		PlateNo:          car.PlateNo,
		Capacity:         car.Capacity,
		FrequentLocation: car.FrequentLocation,
		IsAvailable:      car.IsAvailable,
		CreatedAt:        car.CreatedAt,
	}
}

func CarDocToResponse(doc *entity.CarDoc) *model.CarDocResponse {
	return &model.CarDocResponse{
		ID:       doc.ID,
		DriverID: doc.DriverID,
		CarID:    doc.CarID,
		Documents: model.CarDocURLs{
			CarInsurance:     doc.CarInsuranceURL,
			CarLicense:       doc.CarLicenseURL,
			TechnicalControl: doc.TechnicalControlURL,
			YellowCard:       doc.YellowCardURL,
		},
		CurrentMileage:  doc.CurrentMileage,
		FuelConsumption: doc.FuelConsumption,
		CreatedAt:       doc.CreatedAt,
		UpdatedAt:       doc.UpdatedAt,
	}
}
