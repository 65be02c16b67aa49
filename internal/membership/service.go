package membership

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
)

// ParticipationPolicy decides what happens to event participations when
// their subscription is cancelled.
type ParticipationPolicy string

const (
	// PolicyCascade deletes the participations together with the subscription.
	PolicyCascade ParticipationPolicy = "cascade"
	// PolicyRestrict refuses to cancel while participations exist.
	PolicyRestrict ParticipationPolicy = "restrict"
)

// ParsePolicy accepts "cascade" or "restrict" (case-insensitive).  An
// empty string selects PolicyCascade.
func ParsePolicy(s string) (ParticipationPolicy, error) {
	switch p := ParticipationPolicy(strings.ToLower(strings.TrimSpace(s))); p {
	case "":
		return PolicyCascade, nil
	case PolicyCascade, PolicyRestrict:
		return p, nil
	default:
		return "", fmt.Errorf("unknown participation policy %q", s)
	}
}

// Service implements the membership flows on top of a Store.
type Service struct {
	store    Store
	policy   ParticipationPolicy
	notifier Notifier
	log      zerolog.Logger
}

// Option configures a Service.
type Option func(*Service)

// WithPolicy sets the cancellation policy.
func WithPolicy(p ParticipationPolicy) Option {
	return func(s *Service) { s.policy = p }
}

// WithNotifier registers a receiver for committed changes.
func WithNotifier(n Notifier) Option {
	return func(s *Service) { s.notifier = n }
}

// WithLogger sets the logger.
func WithLogger(l zerolog.Logger) Option {
	return func(s *Service) { s.log = l }
}

// NewService returns a Service using PolicyCascade, no notifier and a
// disabled logger unless options say otherwise.
func NewService(store Store, opts ...Option) *Service {
	s := &Service{
		store:  store,
		policy: PolicyCascade,
		log:    zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Policy returns the configured cancellation policy.
func (s *Service) Policy() ParticipationPolicy { return s.policy }

// inTx runs fn and turns bare infrastructure errors (begin, commit,
// driver) into ErrStorage.
func (s *Service) inTx(ctx context.Context, op string, fn func(tx Tx) error) error {
	err := s.store.InTx(ctx, fn)
	if err == nil || isDomain(err) {
		return err
	}
	return storageErr(op, err)
}
