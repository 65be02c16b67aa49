package membership

import (
	"context"

	"github.com/iliyamo/fanclub-membership/internal/model"
)

// Store opens transactions.  InTx commits when fn returns nil and rolls
// back otherwise; the error from fn is returned unchanged.
type Store interface {
	InTx(ctx context.Context, fn func(tx Tx) error) error
}

// PairLister loads the subscriptions a customer holds for one artist.
// Inside a transaction the rows are locked until commit.
type PairLister interface {
	SubscriptionsForPair(ctx context.Context, customerID, artistID model.ID) ([]model.Subscription, error)
}

// Tx is the set of reads and writes the membership flows perform inside
// one transaction.  Lookups by key return sql.ErrNoRows when the row does
// not exist; inserts return ErrDuplicateID on a primary key collision.
type Tx interface {
	PairLister

	SubscriptionExists(ctx context.Context, id model.ID) (bool, error)
	SubscriptionByID(ctx context.Context, id model.ID) (model.Subscription, error)
	InsertSubscription(ctx context.Context, s model.Subscription) error
	DeleteSubscription(ctx context.Context, id model.ID) error

	CountParticipations(ctx context.Context, subscriptionID model.ID) (int, error)
	DeleteParticipations(ctx context.Context, subscriptionID model.ID) (int64, error)

	CourseByName(ctx context.Context, name string) (model.SubscriptionCourse, error)
	ArtistByName(ctx context.Context, name string) (model.Artist, error)

	// LockCustomer takes a row lock on the customer for the rest of the
	// transaction.
	LockCustomer(ctx context.Context, id model.ID) error
	CustomerByID(ctx context.Context, id model.ID) (model.Customer, error)
	InsertCustomer(ctx context.Context, c model.Customer) error
	UpdateCustomer(ctx context.Context, c model.Customer) error
}

// Notifier receives committed lifecycle changes.  Implementations must not
// block for long; failures are logged by the Service and never surfaced.
type Notifier interface {
	SubscriptionJoined(ctx context.Context, s model.Subscription) error
	SubscriptionCancelled(ctx context.Context, s model.Subscription) error
}
