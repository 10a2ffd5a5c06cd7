package memory

import (
	"context"
	"strings"
	"time"

	"marketplace-service/src/internal/entity"
	"marketplace-service/src/internal/repository"
)

type userRepo struct{ s *Store }

func (r *userRepo) Create(_ context.Context, user *entity.User) error {
	defer r.s.lock()()
	for _, u := range r.s.data.users {
		if u.ID == user.ID || strings.EqualFold(u.Username, user.Username) || strings.EqualFold(u.Email, user.Email) {
			return repository.ErrDuplicate
		}
	}
	r.s.data.users[user.ID] = *user
	return nil
}

func (r *userRepo) FindByID(_ context.Context, id string) (*entity.User, error) {
	defer r.s.lock()()
	u, ok := r.s.data.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &u, nil
}

func (r *userRepo) FindByIdentifier(_ context.Context, identifier string) (*entity.User, error) {
	defer r.s.lock()()
	for _, u := range r.s.data.users {
		if strings.EqualFold(u.Username, identifier) || strings.EqualFold(u.Email, identifier) {
			return &u, nil
		}
	}
	return nil, repository.ErrNotFound
}

type driverRepo struct{ s *Store }

func (r *driverRepo) Create(_ context.Context, driver *entity.Driver) error {
	defer r.s.lock()()
	if _, ok := r.s.data.users[driver.UserID]; !ok {
		return repository.ErrReference
	}
	for _, d := range r.s.data.drivers {
		if d.ID == driver.ID || d.UserID == driver.UserID {
			return repository.ErrDuplicate
		}
	}
	r.s.data.drivers[driver.ID] = *driver
	return nil
}

func (r *driverRepo) FindByID(_ context.Context, id string) (*entity.Driver, error) {
	defer r.s.lock()()
	d, ok := r.s.data.drivers[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &d, nil
}

func (r *driverRepo) FindByUserID(_ context.Context, userID string) (*entity.Driver, error) {
	defer r.s.lock()()
	for _, d := range r.s.data.drivers {
		if d.UserID == userID {
			return &d, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *driverRepo) List(_ context.Context, filter entity.DriverFilter) ([]entity.Driver, error) {
	defer r.s.lock()()
	var bidders map[string]bool
	if filter.ClientID != nil {
		bidders = map[string]bool{}
		for _, b := range r.s.data.jobBids {
			if p, ok := r.s.data.jobPosts[b.JobPostID]; ok && p.ClientID == *filter.ClientID {
				bidders[b.DriverID] = true
			}
		}
	}
	return collect(r.s.data.drivers, func(d entity.Driver) bool {
		return matches(filter.ID, d.ID) && matches(filter.UserID, d.UserID) && (bidders == nil || bidders[d.ID])
	}, func(d entity.Driver) (time.Time, string) { return d.CreatedAt, d.ID }), nil
}

func (r *driverRepo) Update(_ context.Context, driver *entity.Driver) error {
	defer r.s.lock()()
	if _, ok := r.s.data.drivers[driver.ID]; !ok {
		return repository.ErrNotFound
	}
	r.s.data.drivers[driver.ID] = *driver
	return nil
}

type clientRepo struct{ s *Store }

func (r *clientRepo) Create(_ context.Context, client *entity.Client) error {
	defer r.s.lock()()
	if _, ok := r.s.data.users[client.UserID]; !ok {
		return repository.ErrReference
	}
	for _, c := range r.s.data.clients {
		if c.ID == client.ID || c.UserID == client.UserID {
			return repository.ErrDuplicate
		}
	}
	r.s.data.clients[client.ID] = *client
	return nil
}

func (r *clientRepo) FindByID(_ context.Context, id string) (*entity.Client, error) {
	defer r.s.lock()()
	c, ok := r.s.data.clients[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &c, nil
}

func (r *clientRepo) FindByUserID(_ context.Context, userID string) (*entity.Client, error) {
	defer r.s.lock()()
	for _, c := range r.s.data.clients {
		if c.UserID == userID {
			return &c, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *clientRepo) List(_ context.Context, filter entity.ClientFilter) ([]entity.Client, error) {
	defer r.s.lock()()
	var bidOn map[string]bool
	if filter.DriverID != nil {
		bidOn = map[string]bool{}
		for _, b := range r.s.data.jobBids {
			if b.DriverID == *filter.DriverID {
				if p, ok := r.s.data.jobPosts[b.JobPostID]; ok {
					bidOn[p.ClientID] = true
				}
			}
		}
	}
	return collect(r.s.data.clients, func(c entity.Client) bool {
		return matches(filter.ID, c.ID) && matches(filter.UserID, c.UserID) && (bidOn == nil || bidOn[c.ID])
	}, func(c entity.Client) (time.Time, string) { return c.CreatedAt, c.ID }), nil
}
