package memory

import (
	"context"
	"strings"
	"time"

	"marketplace-service/src/internal/entity"
	"marketplace-service/src/internal/repository"
)

type carRepo struct{ s *Store }

func (r *carRepo) unique(car *entity.Car) error {
	for _, c := range r.s.data.cars {
		if c.ID != car.ID && c.DriverID == car.DriverID && strings.EqualFold(c.PlateNo, car.PlateNo) {
			return repository.ErrDuplicate
		}
	}
	return nil
}

func (r *carRepo) Create(_ context.Context, car *entity.Car) error {
	defer r.s.lock()()
	if _, ok := r.s.data.drivers[car.DriverID]; !ok {
		return repository.ErrReference
	}
	if _, ok := r.s.data.cars[car.ID]; ok {
		return repository.ErrDuplicate
	}
	if err := r.unique(car); err != nil {
		return err
	}
	r.s.data.cars[car.ID] = *car
	return nil
}

func (r *carRepo) FindByID(_ context.Context, id string) (*entity.Car, error) {
	defer r.s.lock()()
	c, ok := r.s.data.cars[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &c, nil
}

func (r *carRepo) List(_ context.Context, filter entity.CarFilter) ([]entity.Car, error) {
	defer r.s.lock()()
	offered := r.s.offeredCars(filter.ClientID)
	return collect(r.s.data.cars, func(c entity.Car) bool {
		return matches(filter.ID, c.ID) && matches(filter.DriverID, c.DriverID) && (offered == nil || offered[c.ID])
	}, func(c entity.Car) (time.Time, string) { return c.CreatedAt, c.ID }), nil
}

// offeredCars returns the cars bound to the client's offers, or nil when clientID is nil.
func (s *Store) offeredCars(clientID *string) map[string]bool {
	if clientID == nil {
		return nil
	}
	cars := map[string]bool{}
	for _, o := range s.data.jobOffers {
		if o.ClientID == *clientID {
			cars[o.CarID] = true
		}
	}
	return cars
}

func (r *carRepo) Update(_ context.Context, car *entity.Car) error {
	defer r.s.lock()()
	if _, ok := r.s.data.cars[car.ID]; !ok {
		return repository.ErrNotFound
	}
	if err := r.unique(car); err != nil {
		return err
	}
	r.s.data.cars[car.ID] = *car
	return nil
}

func (r *carRepo) Delete(_ context.Context, id string) error {
	defer r.s.lock()()
	if _, ok := r.s.data.cars[id]; !ok {
		return repository.ErrNotFound
	}
	r.s.data.deleteCar(id)
	return nil
}

type carDocRepo struct{ s *Store }

func (r *carDocRepo) Create(_ context.Context, doc *entity.CarDoc) error {
	defer r.s.lock()()
	if _, ok := r.s.data.drivers[doc.DriverID]; !ok {
		return repository.ErrReference
	}
	if _, ok := r.s.data.cars[doc.CarID]; !ok {
		return repository.ErrReference
	}
	for _, d := range r.s.data.carDocs {
		if d.ID == doc.ID || (d.DriverID == doc.DriverID && d.CarID == doc.CarID) {
			return repository.ErrDuplicate
		}
	}
	r.s.data.carDocs[doc.ID] = *doc
	return nil
}

func (r *carDocRepo) FindByID(_ context.Context, id string) (*entity.CarDoc, error) {
	defer r.s.lock()()
	d, ok := r.s.data.carDocs[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &d, nil
}

func (r *carDocRepo) List(_ context.Context, filter entity.CarDocFilter) ([]entity.CarDoc, error) {
	defer r.s.lock()()
	offered := r.s.offeredCars(filter.ClientID)
	return collect(r.s.data.carDocs, func(d entity.CarDoc) bool {
		return matches(filter.DriverID, d.DriverID) && matches(filter.CarID, d.CarID) && (offered == nil || offered[d.CarID])
	}, func(d entity.CarDoc) (time.Time, string) { return d.CreatedAt, d.ID }), nil
}

func (r *carDocRepo) Update(_ context.Context, doc *entity.CarDoc) error {
	defer r.s.lock()()
	if _, ok := r.s.data.carDocs[doc.ID]; !ok {
		return repository.ErrNotFound
	}
	r.s.data.carDocs[doc.ID] = *doc
	return nil
}

func (r *carDocRepo) Delete(_ context.Context, id string) error {
	defer r.s.lock()()
	if _, ok := r.s.data.carDocs[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.s.data.carDocs, id)
	return nil
}
