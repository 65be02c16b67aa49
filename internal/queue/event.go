// Package queue defines message payloads exchanged over the message broker
// and the consumer that records them.
package queue

import (
	"time"

	"github.com/google/uuid"

	"github.com/iliyamo/fanclub-membership/internal/model"
)

// MembershipQueue is the durable queue carrying MembershipEvent messages.
const MembershipQueue = "membership.events"

// Event types.
const (
	TypeSubscriptionJoined    = "subscription.joined"
	TypeSubscriptionCancelled = "subscription.cancelled"
)

// MembershipEvent is published after a subscription is created or deleted.
// It carries enough information for downstream consumers to log or notify
// without querying the primary database.
type MembershipEvent struct {
	ID             string `json:"id"`
	Type           string `json:"type"`
	SubscriptionID uint64 `json:"subscription_id"`
	CustomerID     uint64 `json:"customer_id"`
	ArtistID       uint64 `json:"artist_id"`
	CourseID       uint64 `json:"course_id"`
	StartDate      string `json:"start_date"`
	EndDate        string `json:"end_date"`
	OccurredAt     string `json:"occurred_at"`
}

// NewMembershipEvent builds an event of the given type for s with a fresh id.
func NewMembershipEvent(eventType string, s model.Subscription, at time.Time) MembershipEvent {
	return MembershipEvent{
		ID:             uuid.NewString(),
		Type:           eventType,
		SubscriptionID: uint64(s.ID),
		CustomerID:     uint64(s.CustomerID),
		ArtistID:       uint64(s.GroupID),
		CourseID:       uint64(s.CourseID),
		StartDate:      s.StartDate.Format(time.DateOnly),
		EndDate:        s.EndDate.Format(time.DateOnly),
		OccurredAt:     at.UTC().Format(time.RFC3339),
	}
}
