package membership

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/iliyamo/fanclub-membership/internal/model"
)

// RegisterRequest is the raw input of a fan-club join.  SubscriptionID and
// StartDate arrive as strings and are validated by Register.
type RegisterRequest struct {
	SubscriptionID string
	CustomerID     model.ID
	ArtistName     string
	CourseName     string
	StartDate      string
}

// HasOverlap reports whether any subscription of the (customer, artist)
// pair intersects p.
func HasOverlap(ctx context.Context, l PairLister, customerID, artistID model.ID, p Period) (bool, error) {
	subs, err := l.SubscriptionsForPair(ctx, customerID, artistID)
	if err != nil {
		return false, err
	}
	for _, sub := range subs {
		if p.Overlaps(Period{Start: sub.StartDate, End: sub.EndDate}) {
			return true, nil
		}
	}
	return false, nil
}

// Register validates req and inserts the subscription.  All checks after
// id parsing and the insert run in one transaction: the customer row is
// locked before the overlap scan so two joins for the same customer are
// serialized.
func (s *Service) Register(ctx context.Context, req RegisterRequest) (model.Subscription, error) {
	id, err := ParseID(req.SubscriptionID)
	if err != nil {
		return model.Subscription{}, err
	}

	var created model.Subscription
	err = s.inTx(ctx, "register subscription", func(tx Tx) error {
		exists, err := tx.SubscriptionExists(ctx, id)
		if err != nil {
			return storageErr("check subscription id", err)
		}
		if exists {
			return fmt.Errorf("subscription %s: %w", id, ErrDuplicateID)
		}

		start, err := ParseDate(req.StartDate)
		if err != nil {
			return err
		}

		course, err := tx.CourseByName(ctx, req.CourseName)
		if err != nil {
			return lookupErr("course", req.CourseName, err)
		}
		period, err := PeriodFor(start, course.DurationMonths)
		if err != nil {
			return fmt.Errorf("course %q: %w", course.CourseName, err)
		}

		artist, err := tx.ArtistByName(ctx, req.ArtistName)
		if err != nil {
			return lookupErr("artist", req.ArtistName, err)
		}

		if err := tx.LockCustomer(ctx, req.CustomerID); err != nil {
			return lookupErr("customer", req.CustomerID.String(), err)
		}
		overlap, err := HasOverlap(ctx, tx, req.CustomerID, artist.ID, period)
		if err != nil {
			return storageErr("load subscriptions", err)
		}
		if overlap {
			return fmt.Errorf("customer %s artist %q %s..%s: %w",
				req.CustomerID, artist.Name, FormatDate(period.Start), FormatDate(period.End), ErrDuplicateMembership)
		}

		sub := model.Subscription{
			ID:         id,
			CustomerID: req.CustomerID,
			GroupID:    artist.ID,
			CourseID:   course.ID,
			StartDate:  period.Start,
			EndDate:    period.End,
		}
		if err := tx.InsertSubscription(ctx, sub); err != nil {
			if errors.Is(err, ErrDuplicateID) {
				return fmt.Errorf("subscription %s: %w", id, ErrDuplicateID)
			}
			return storageErr("insert subscription", err)
		}
		created = sub
		return nil
	})
	if err != nil {
		s.log.Debug().Err(err).Str("subscription_id", req.SubscriptionID).Msg("join rejected")
		return model.Subscription{}, err
	}

	s.log.Info().
		Stringer("subscription_id", created.ID).
		Stringer("customer_id", created.CustomerID).
		Stringer("artist_id", created.GroupID).
		Str("start_date", FormatDate(created.StartDate)).
		Str("end_date", FormatDate(created.EndDate)).
		Msg("subscription created")
	if s.notifier != nil {
		if err := s.notifier.SubscriptionJoined(ctx, created); err != nil {
			s.log.Warn().Err(err).Stringer("subscription_id", created.ID).Msg("publish joined event failed")
		}
	}
	return created, nil
}

func lookupErr(entity, key string, err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%s %q: %w", entity, key, ErrLookupFailure)
	}
	return storageErr("lookup "+entity, err)
}
