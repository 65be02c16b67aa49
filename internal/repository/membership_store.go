package repository

import (
	"context"
	"database/sql"

	"github.com/iliyamo/fanclub-membership/internal/membership"
	"github.com/iliyamo/fanclub-membership/internal/model"
)

// MembershipStore implements membership.Store on MySQL.  Each InTx call
// opens its own transaction and hands the callback a membership.Tx bound
// to it; nothing about the transaction is kept on the store.
type MembershipStore struct {
	db            *sql.DB
	artists       *ArtistRepo
	courses       *CourseRepo
	customers     *CustomerRepo
	events        *EventRepo
	subscriptions *SubscriptionRepo
}

// NewMembershipStore wires the table repositories around db.
func NewMembershipStore(db *sql.DB) *MembershipStore {
	return &MembershipStore{
		db:            db,
		artists:       NewArtistRepo(db),
		courses:       NewCourseRepo(db),
		customers:     NewCustomerRepo(db),
		events:        NewEventRepo(db),
		subscriptions: NewSubscriptionRepo(db),
	}
}

// InTx runs fn in a new transaction.  It commits when fn returns nil and
// rolls back otherwise.
func (s *MembershipStore) InTx(ctx context.Context, fn func(tx membership.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	if err := fn(&membershipTx{store: s, tx: tx}); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	committed = true
	return nil
}

// membershipTx binds the repositories to one *sql.Tx.
type membershipTx struct {
	store *MembershipStore
	tx    *sql.Tx
}

func (t *membershipTx) SubscriptionsForPair(ctx context.Context, customerID, artistID model.ID) ([]model.Subscription, error) {
	return t.store.subscriptions.ListForPairTx(ctx, t.tx, customerID, artistID)
}

func (t *membershipTx) SubscriptionExists(ctx context.Context, id model.ID) (bool, error) {
	return t.store.subscriptions.ExistsTx(ctx, t.tx, id)
}

func (t *membershipTx) SubscriptionByID(ctx context.Context, id model.ID) (model.Subscription, error) {
	return t.store.subscriptions.GetByIDTx(ctx, t.tx, id)
}

func (t *membershipTx) InsertSubscription(ctx context.Context, sub model.Subscription) error {
	return t.store.subscriptions.CreateTx(ctx, t.tx, sub)
}

func (t *membershipTx) DeleteSubscription(ctx context.Context, id model.ID) error {
	return t.store.subscriptions.DeleteTx(ctx, t.tx, id)
}

func (t *membershipTx) CountParticipations(ctx context.Context, subscriptionID model.ID) (int, error) {
	return t.store.events.CountBySubscriptionTx(ctx, t.tx, subscriptionID)
}

func (t *membershipTx) DeleteParticipations(ctx context.Context, subscriptionID model.ID) (int64, error) {
	return t.store.events.DeleteBySubscriptionTx(ctx, t.tx, subscriptionID)
}

func (t *membershipTx) CourseByName(ctx context.Context, name string) (model.SubscriptionCourse, error) {
	return t.store.courses.GetByNameTx(ctx, t.tx, name)
}

func (t *membershipTx) ArtistByName(ctx context.Context, name string) (model.Artist, error) {
	return t.store.artists.GetByNameTx(ctx, t.tx, name)
}

func (t *membershipTx) LockCustomer(ctx context.Context, id model.ID) error {
	return t.store.customers.LockTx(ctx, t.tx, id)
}

func (t *membershipTx) CustomerByID(ctx context.Context, id model.ID) (model.Customer, error) {
	return t.store.customers.GetByIDTx(ctx, t.tx, id)
}

func (t *membershipTx) InsertCustomer(ctx context.Context, c model.Customer) error {
	return t.store.customers.CreateTx(ctx, t.tx, c)
}

func (t *membershipTx) UpdateCustomer(ctx context.Context, c model.Customer) error {
	return t.store.customers.UpdateTx(ctx, t.tx, c)
}

var (
	_ membership.Store = (*MembershipStore)(nil)
	_ membership.Tx    = (*membershipTx)(nil)
)
