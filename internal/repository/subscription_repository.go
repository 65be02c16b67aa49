package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/iliyamo/fanclub-membership/internal/membership"
	"github.com/iliyamo/fanclub-membership/internal/model"
)

// SubscriptionRepo provides CRUD operations for fan-club subscriptions.
// Rows are written only inside transactions opened by MembershipStore;
// the non-Tx methods are read-only views used by the HTTP layer.  Dates
// are DATE columns and are scanned as UTC midnight.
type SubscriptionRepo struct {
	db *sql.DB
}

// NewSubscriptionRepo returns a new SubscriptionRepo bound to the given database.
func NewSubscriptionRepo(db *sql.DB) *SubscriptionRepo { return &SubscriptionRepo{db: db} }

const subscriptionColumns = `id, customer_id, group_id, course_id, start_date, end_date`

func scanSubscription(row interface{ Scan(...any) error }) (model.Subscription, error) {
	var s model.Subscription
	if err := row.Scan(&s.ID, &s.CustomerID, &s.GroupID, &s.CourseID, &s.StartDate, &s.EndDate); err != nil {
		return model.Subscription{}, err
	}
	s.StartDate, s.EndDate = s.StartDate.UTC(), s.EndDate.UTC()
	return s, nil
}

// ExistsTx reports whether a subscription with id exists.
func (r *SubscriptionRepo) ExistsTx(ctx context.Context, tx *sql.Tx, id model.ID) (bool, error) {
	var one int
	err := tx.QueryRowContext(ctx, `SELECT 1 FROM Subscription WHERE id = ?`, id).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// GetByIDTx loads a subscription and locks it for the rest of tx.  It
// returns ErrSubscriptionNotFound if no row is found.
func (r *SubscriptionRepo) GetByIDTx(ctx context.Context, tx *sql.Tx, id model.ID) (model.Subscription, error) {
	q := `SELECT ` + subscriptionColumns + ` FROM Subscription WHERE id = ? FOR UPDATE`
	s, err := scanSubscription(tx.QueryRowContext(ctx, q, id))
	if errors.Is(err, sql.ErrNoRows) {
		return model.Subscription{}, ErrSubscriptionNotFound
	}
	return s, err
}

// ListForPairTx returns the subscriptions of a (customer, artist) pair and
// locks them until tx ends.
func (r *SubscriptionRepo) ListForPairTx(ctx context.Context, tx *sql.Tx, customerID, artistID model.ID) ([]model.Subscription, error) {
	q := `SELECT ` + subscriptionColumns + ` FROM Subscription
	      WHERE customer_id = ? AND group_id = ?
	      ORDER BY start_date
	      FOR UPDATE`
	rows, err := tx.QueryContext(ctx, q, customerID, artistID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Subscription
	for rows.Next() {
		s, err := scanSubscription(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// CreateTx inserts s with its client-supplied id.  A primary key collision
// is reported as membership.ErrDuplicateID.
func (r *SubscriptionRepo) CreateTx(ctx context.Context, tx *sql.Tx, s model.Subscription) error {
	const q = `INSERT INTO Subscription (id, customer_id, group_id, course_id, start_date, end_date)
	           VALUES (?, ?, ?, ?, ?, ?)`
	_, err := tx.ExecContext(ctx, q, s.ID, s.CustomerID, s.GroupID, s.CourseID,
		membership.FormatDate(s.StartDate), membership.FormatDate(s.EndDate))
	if err != nil {
		if isDuplicateKey(err) {
			return fmt.Errorf("subscription %s: %w", s.ID, membership.ErrDuplicateID)
		}
		return err
	}
	return nil
}

// DeleteTx removes the subscription.  It returns ErrSubscriptionNotFound
// when no row was affected.
func (r *SubscriptionRepo) DeleteTx(ctx context.Context, tx *sql.Tx, id model.ID) error {
	res, err := tx.ExecContext(ctx, `DELETE FROM Subscription WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrSubscriptionNotFound
	}
	return nil
}

// CountByCustomer returns how many subscriptions the customer holds.
func (r *SubscriptionRepo) CountByCustomer(ctx context.Context, customerID model.ID) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM Subscription WHERE customer_id = ?`, customerID).Scan(&n)
	return n, err
}

// DetailsByCustomer lists the customer's subscriptions joined with artist
// and course names, newest first.
func (r *SubscriptionRepo) DetailsByCustomer(ctx context.Context, customerID model.ID) ([]model.SubscriptionDetail, error) {
	const q = `SELECT s.id, a.name, c.course_name, s.start_date, s.end_date
	           FROM Subscription s
	           JOIN Artist a ON a.id = s.group_id
	           JOIN SubscriptionCourse c ON c.id = s.course_id
	           WHERE s.customer_id = ?
	           ORDER BY s.start_date DESC, s.id`
	rows, err := r.db.QueryContext(ctx, q, customerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.SubscriptionDetail
	for rows.Next() {
		var d model.SubscriptionDetail
		if err := rows.Scan(&d.SubscriptionID, &d.ArtistName, &d.CourseName, &d.StartDate, &d.EndDate); err != nil {
			return nil, err
		}
		d.StartDate, d.EndDate = d.StartDate.UTC(), d.EndDate.UTC()
		out = append(out, d)
	}
	return out, rows.Err()
}
