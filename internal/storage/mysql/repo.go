package mysql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/go-sql-driver/mysql"

	"wayfinder/internal/domain"
)

type Repo struct{ db *sql.DB }

func New(db *sql.DB) *Repo { return &Repo{db: db} }

// ---- users ----

func (r *Repo) CreateUser(ctx context.Context, email, username, passwordHash string) (int64, error) {
	res, err := r.db.ExecContext(ctx, createUserSQL, email, username, passwordHash)
	if err != nil {
		var me *mysql.MySQLError
		if errors.As(err, &me) && me.Number == 1062 { // duplicate key
			return 0, fmt.Errorf("user %s: %w", email, domain.ErrConflict)
		}
		return 0, err
	}
	return res.LastInsertId()
}

func (r *Repo) GetUserByEmail(ctx context.Context, email string) (domain.User, error) {
	var u domain.User
	err := r.db.QueryRowContext(ctx, getUserByEmailSQL, email).
		Scan(&u.ID, &u.Email, &u.Username, &u.PasswordHash)
	if err == sql.ErrNoRows {
		return domain.User{}, domain.ErrNotFound
	}
	if err != nil {
		return domain.User{}, err
	}
	return u, nil
}

// ---- trips ----

func (r *Repo) UpsertTrip(ctx context.Context, t domain.Trip) error {
	_, err := r.db.ExecContext(ctx, upsertTripSQL,
		t.UserID,
		t.ID,
		t.Title,
		t.Destination,
		t.StartDate,
		t.EndDate,
		t.Mood,
		t.Image,
		t.Data,
	)
	return err
}

func (r *Repo) GetTrip(ctx context.Context, userID int64, tripID string) (domain.Trip, error) {
	return r.scanTrip(r.db.QueryRowContext(ctx, getTripSQL, userID, tripID))
}

func (r *Repo) FindTripByTitle(ctx context.Context, userID int64, title string) (domain.Trip, error) {
	return r.scanTrip(r.db.QueryRowContext(ctx, findTripByTitleSQL, userID, title))
}

func (r *Repo) scanTrip(row *sql.Row) (domain.Trip, error) {
	var t domain.Trip
	var start, end, mood, image sql.NullString
	err := row.Scan(
		&t.ID,
		&t.UserID,
		&t.Title,
		&t.Destination,
		&start,
		&end,
		&mood,
		&image,
		&t.Data,
		&t.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return domain.Trip{}, domain.ErrNotFound
	}
	if err != nil {
		return domain.Trip{}, err
	}
	t.StartDate = start.String
	t.EndDate = end.String
	t.Mood = mood.String
	t.Image = image.String
	return t, nil
}

func (r *Repo) ListTrips(ctx context.Context, userID int64) ([]domain.TripSummary, error) {
	rows, err := r.db.QueryContext(ctx, listTripsSQL, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.TripSummary
	for rows.Next() {
		var s domain.TripSummary
		var start, end, mood, image sql.NullString
		if err := rows.Scan(&s.ID, &s.Title, &s.Destination, &start, &end, &mood, &image); err != nil {
			return nil, err
		}
		s.StartDate = start.String
		s.EndDate = end.String
		s.Mood = mood.String
		s.Image = image.String
		out = append(out, s)
	}
	return out, rows.Err()
}

func (r *Repo) DeleteTrip(ctx context.Context, userID int64, tripID string) error {
	_, err := r.db.ExecContext(ctx, deleteTripSQL, userID, tripID)
	return err
}
