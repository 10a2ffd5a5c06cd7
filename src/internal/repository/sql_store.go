package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"marketplace-service/src/pkg/databases/mysql"

	"github.com/jmoiron/sqlx"
)

// SQLStore is the MySQL-backed Store. A SQLStore carrying tx routes every query through it.
type SQLStore struct {
	DB mysql.DBInterface
	tx *sqlx.Tx
}

func NewSQLStore(db mysql.DBInterface) *SQLStore {
	return &SQLStore{DB: db}
}

func (s *SQLStore) conn() (sqlx.ExtContext, error) {
	if s.tx != nil {
		return s.tx, nil
	}
	db, err := s.DB.GetDB()
	if err != nil {
		return nil, err
	}
	return db, nil
}

func (s *SQLStore) WithTransaction(ctx context.Context, fn func(tx Store) error) error {
	if s.tx != nil {
		return fn(s)
	}
	return s.DB.WithTransaction(ctx, func(tx *sqlx.Tx) error {
		return fn(&SQLStore{DB: s.DB, tx: tx})
	})
}

func (s *SQLStore) Users() UserRepository                 { return &userSQL{s} }
func (s *SQLStore) Drivers() DriverRepository             { return &driverSQL{s} }
func (s *SQLStore) Clients() ClientRepository             { return &clientSQL{s} }
func (s *SQLStore) Cars() CarRepository                   { return &carSQL{s} }
func (s *SQLStore) CarDocs() CarDocRepository             { return &carDocSQL{s} }
func (s *SQLStore) JobPosts() JobPostRepository           { return &jobPostSQL{s} }
func (s *SQLStore) JobBids() JobBidRepository             { return &jobBidSQL{s} }
func (s *SQLStore) JobOffers() JobOfferRepository         { return &jobOfferSQL{s} }
func (s *SQLStore) Trips() TripRepository                 { return &tripSQL{s} }
func (s *SQLStore) Payments() PaymentRepository           { return &paymentSQL{s} }
func (s *SQLStore) Ratings() RatingRepository             { return &ratingSQL{s} }
func (s *SQLStore) ChatRooms() ChatRoomRepository         { return &chatRoomSQL{s} }
func (s *SQLStore) ChatMessages() ChatMessageRepository   { return &chatMessageSQL{s} }
func (s *SQLStore) Notifications() NotificationRepository { return &notificationSQL{s} }
func (s *SQLStore) DemoRequests() DemoRequestRepository   { return &demoRequestSQL{s} }

func (s *SQLStore) get(ctx context.Context, dest interface{}, query string, args ...interface{}) error {
	q, err := s.conn()
	if err != nil {
		return err
	}
	return translateError(sqlx.GetContext(ctx, q, dest, query, args...))
}

func (s *SQLStore) selectAll(ctx context.Context, dest interface{}, query string, args ...interface{}) error {
	q, err := s.conn()
	if err != nil {
		return err
	}
	return translateError(sqlx.SelectContext(ctx, q, dest, query, args...))
}

func (s *SQLStore) namedExec(ctx context.Context, query string, arg interface{}) (int64, error) {
	q, err := s.conn()
	if err != nil {
		return 0, err
	}
	res, err := sqlx.NamedExecContext(ctx, q, query, arg)
	if err != nil {
		return 0, translateError(err)
	}
	return res.RowsAffected()
}

func (s *SQLStore) exec(ctx context.Context, query string, args ...interface{}) (int64, error) {
	q, err := s.conn()
	if err != nil {
		return 0, err
	}
	res, err := q.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, translateError(err)
	}
	return res.RowsAffected()
}

// mustAffect turns a zero-row write into ErrNotFound.
func mustAffect(n int64, err error) error {
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func translateError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, sql.ErrNoRows):
		return ErrNotFound
	case mysql.IsDuplicateEntry(err):
		return fmt.Errorf("%w: %v", ErrDuplicate, err)
	case mysql.IsForeignKeyViolation(err):
		return fmt.Errorf("%w: %v", ErrReference, err)
	}
	return err
}

type conditions struct {
	clauses []string
	args    []interface{}
}

func (c *conditions) add(clause string, args ...interface{}) {
	c.clauses = append(c.clauses, clause)
	c.args = append(c.args, args...)
}

func (c *conditions) String() string {
	if len(c.clauses) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(c.clauses, " AND ")
}
