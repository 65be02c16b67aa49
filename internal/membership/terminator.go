package membership

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/iliyamo/fanclub-membership/internal/model"
)

// CancellationPreview returns the subscription that Terminate would remove.
func (s *Service) CancellationPreview(ctx context.Context, id model.ID) (model.Subscription, error) {
	var sub model.Subscription
	err := s.inTx(ctx, "preview cancellation", func(tx Tx) error {
		var err error
		sub, err = subscriptionByID(ctx, tx, id)
		return err
	})
	return sub, err
}

// Terminate deletes the subscription and returns the id of its customer.
// Event participations are handled according to the configured policy so
// no participation row ever outlives its subscription.
func (s *Service) Terminate(ctx context.Context, id model.ID) (model.ID, error) {
	var (
		sub     model.Subscription
		removed int64
	)
	err := s.inTx(ctx, "cancel subscription", func(tx Tx) error {
		var err error
		sub, err = subscriptionByID(ctx, tx, id)
		if err != nil {
			return err
		}

		switch s.policy {
		case PolicyRestrict:
			n, err := tx.CountParticipations(ctx, id)
			if err != nil {
				return storageErr("count participations", err)
			}
			if n > 0 {
				return fmt.Errorf("subscription %s has %d: %w", id, n, ErrHasParticipations)
			}
		default:
			removed, err = tx.DeleteParticipations(ctx, id)
			if err != nil {
				return storageErr("delete participations", err)
			}
		}

		if err := tx.DeleteSubscription(ctx, id); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return fmt.Errorf("subscription %s: %w", id, ErrNotFound)
			}
			return storageErr("delete subscription", err)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	s.log.Info().
		Stringer("subscription_id", sub.ID).
		Stringer("customer_id", sub.CustomerID).
		Int64("participations_removed", removed).
		Msg("subscription cancelled")
	if s.notifier != nil {
		if err := s.notifier.SubscriptionCancelled(ctx, sub); err != nil {
			s.log.Warn().Err(err).Stringer("subscription_id", sub.ID).Msg("publish cancelled event failed")
		}
	}
	return sub.CustomerID, nil
}

func subscriptionByID(ctx context.Context, tx Tx, id model.ID) (model.Subscription, error) {
	sub, err := tx.SubscriptionByID(ctx, id)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Subscription{}, fmt.Errorf("subscription %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return model.Subscription{}, storageErr("load subscription", err)
	}
	return sub, nil
}
