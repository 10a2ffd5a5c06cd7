package repository

import (
	"context"

	"marketplace-service/src/internal/entity"
)

const (
	carColumns    = `id, driver_id, model, plate_no, capacity, frequent_location, is_available, created_at, updated_at`
	carDocColumns = `id, driver_id, car_id, car_insurance_url, car_license_url, technical_control_url, yellow_card_url,
		current_mileage, fuel_consumption, created_at, updated_at`
)

type carSQL struct{ store *SQLStore }

func (r *carSQL) Create(ctx context.Context, car *entity.Car) error {
	_, err := r.store.namedExec(ctx, `
		INSERT INTO cars (`+carColumns+`)
		VALUES (:id, :driver_id, :model, :plate_no, :capacity, :frequent_location, :is_available, :created_at, :updated_at)`, car)
	return err
}

func (r *carSQL) FindByID(ctx context.Context, id string) (*entity.Car, error) {
	var car entity.Car
	if err := r.store.get(ctx, &car, `SELECT `+carColumns+` FROM cars WHERE id = ?`, id); err != nil {
		return nil, err
	}
	return &car, nil
}

func (r *carSQL) List(ctx context.Context, filter entity.CarFilter) ([]entity.Car, error) {
	var cond conditions
	if filter.ID != nil {
		cond.add("id = ?", *filter.ID)
	}
	if filter.DriverID != nil {
		cond.add("driver_id = ?", *filter.DriverID)
	}
	if filter.ClientID != nil {
		cond.add("id IN (SELECT car_id FROM job_offers WHERE client_id = ?)", *filter.ClientID)
	}
	cars := []entity.Car{}
	query := `SELECT ` + carColumns + ` FROM cars` + cond.String() + ` ORDER BY created_at, id`
	if err := r.store.selectAll(ctx, &cars, query, cond.args...); err != nil {
		return nil, err
	}
	return cars, nil
}

func (r *carSQL) Update(ctx context.Context, car *entity.Car) error {
	return mustAffect(r.store.namedExec(ctx, `
		UPDATE cars SET model = :model, plate_no = :plate_no, capacity = :capacity,
			frequent_location = :frequent_location, is_available = :is_available, updated_at = :updated_at
		WHERE id = :id`, car))
}

func (r *carSQL) Delete(ctx context.Context, id string) error {
	return mustAffect(r.store.exec(ctx, `DELETE FROM cars WHERE id = ?`, id))
}

type carDocSQL struct{ store *SQLStore }

func (r *carDocSQL) Create(ctx context.Context, doc *entity.CarDoc) error {
	_, err := r.store.namedExec(ctx, `
		INSERT INTO car_docs (`+carDocColumns+`)
		VALUES (:id, :driver_id, :car_id, :car_insurance_url, :car_license_url, :technical_control_url,
			:yellow_card_url, :current_mileage, :fuel_consumption, :created_at, :updated_at)`, doc)
	return err
}

func (r *carDocSQL) FindByID(ctx context.Context, id string) (*entity.CarDoc, error) {
	var doc entity.CarDoc
	if err := r.store.get(ctx, &doc, `SELECT `+carDocColumns+` FROM car_docs WHERE id = ?`, id); err != nil {
		return nil, err
	}
	return &doc, nil
}

func (r *carDocSQL) List(ctx context.Context, filter entity.CarDocFilter) ([]entity.CarDoc, error) {
	var cond conditions
	if filter.DriverID != nil {
		cond.add("driver_id = ?", *filter.DriverID)
	}
	if filter.CarID != nil {
		cond.add("car_id = ?", *filter.CarID)
	}
	if filter.ClientID != nil {
		cond.add("car_id IN (SELECT car_id FROM job_offers WHERE client_id = ?)", *filter.ClientID)
	}
	docs := []entity.CarDoc{}
	query := `SELECT ` + carDocColumns + ` FROM car_docs` + cond.String() + ` ORDER BY created_at, id`
	if err := r.store.selectAll(ctx, &docs, query, cond.args...); err != nil {
		return nil, err
	}
	return docs, nil
}

func (r *carDocSQL) Update(ctx context.Context, doc *entity.CarDoc) error {
	return mustAffect(r.store.namedExec(ctx, `
		UPDATE car_docs SET car_insurance_url = :car_insurance_url, car_license_url = :car_license_url,
			technical_control_url = :technical_control_url, yellow_card_url = :yellow_card_url,
			current_mileage = :current_mileage, fuel_consumption = :fuel_consumption, updated_at = :updated_at
		WHERE id = :id`, doc))
}

func (r *carDocSQL) Delete(ctx context.Context, id string) error {
	return mustAffect(r.store.exec(ctx, `DELETE FROM car_docs WHERE id = ?`, id))
}
