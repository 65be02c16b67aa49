package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/iliyamo/fanclub-membership/internal/model"
)

// EventRepo reads events, event types and event participations.
type EventRepo struct {
	db *sql.DB
}

// NewEventRepo returns a new EventRepo bound to the given database.
func NewEventRepo(db *sql.DB) *EventRepo { return &EventRepo{db: db} }

// EventRow is an event joined with its type name.
type EventRow struct {
	ID       model.ID `json:"id"`
	Name     string   `json:"name"`
	GroupID  model.ID `json:"group_id"`
	TypeID   model.ID `json:"type_id"`
	TypeName string   `json:"type_name"`
}

// ListByArtist returns the artist's events ordered by id.  When typeName is
// non-empty only events of that type are returned.
func (r *EventRepo) ListByArtist(ctx context.Context, artistID model.ID, typeName string) ([]EventRow, error) {
	q := `SELECT e.id, e.name, e.group_id, e.type_id, t.type_name
	      FROM Event e JOIN EventType t ON t.id = e.type_id
	      WHERE e.group_id = ?`
	args := []any{artistID}
	if typeName != "" {
		q += ` AND t.type_name = ?`
		args = append(args, typeName)
	}
	q += ` ORDER BY e.id`

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []EventRow
	for rows.Next() {
		var e EventRow
		if err := rows.Scan(&e.ID, &e.Name, &e.GroupID, &e.TypeID, &e.TypeName); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// ListTypes returns all event types ordered by id.
func (r *EventRepo) ListTypes(ctx context.Context) ([]model.EventType, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, type_name FROM EventType ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.EventType
	for rows.Next() {
		var t model.EventType
		if err := rows.Scan(&t.ID, &t.TypeName); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

// ParticipationsBySubscription lists the events attended under one
// subscription, oldest first.
func (r *EventRepo) ParticipationsBySubscription(ctx context.Context, subscriptionID model.ID) ([]model.ParticipationDetail, error) {
	const q = `SELECT e.name, t.type_name, p.participation_date
	           FROM EventParticipation p
	           JOIN Event e ON e.id = p.event_id
	           JOIN EventType t ON t.id = e.type_id
	           WHERE p.subscription_id = ?
	           ORDER BY p.participation_date, e.id`
	rows, err := r.db.QueryContext(ctx, q, subscriptionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.ParticipationDetail
	for rows.Next() {
		var (
			d  model.ParticipationDetail
			at time.Time
		)
		if err := rows.Scan(&d.EventName, &d.TypeName, &at); err != nil {
			return nil, err
		}
		d.ParticipationDate = at.UTC()
		out = append(out, d)
	}
	return out, rows.Err()
}

// CountBySubscriptionTx counts participation rows of a subscription.
func (r *EventRepo) CountBySubscriptionTx(ctx context.Context, tx *sql.Tx, subscriptionID model.ID) (int, error) {
	var n int
	err := tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM EventParticipation WHERE subscription_id = ?`, subscriptionID).Scan(&n)
	return n, err
}

// DeleteBySubscriptionTx removes all participation rows of a subscription
// and returns how many were deleted.
func (r *EventRepo) DeleteBySubscriptionTx(ctx context.Context, tx *sql.Tx, subscriptionID model.ID) (int64, error) {
	res, err := tx.ExecContext(ctx, `DELETE FROM EventParticipation WHERE subscription_id = ?`, subscriptionID)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
