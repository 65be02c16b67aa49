package model

import "time"

// EventType classifies events (live, fan meeting, ...).
type EventType struct {
	ID       ID     // EventType.id
	TypeName string // EventType.type_name
}

// Event is something an artist holds that members can take part in.
//
// Fields:
//  ID      – primary key identifier.
//  Name    – event name.
//  GroupID – artist holding the event.
//  TypeID  – event type.
type Event struct {
	ID      ID     // Event.id
	Name    string // Event.name
	GroupID ID     // Event.group_id
	TypeID  ID     // Event.type_id
}

// EventParticipation records that a subscription took part in an event.
// Rows reference Subscription, so they are removed together with the
// subscription by the cancellation flow.
type EventParticipation struct {
	SubscriptionID    ID        // EventParticipation.subscription_id
	EventID           ID        // EventParticipation.event_id
	ParticipationDate time.Time // EventParticipation.participation_date
}

// ParticipationDetail is a participation joined with the event and its
// type, as shown on a customer's page.
type ParticipationDetail struct {
	EventName         string
	TypeName          string
	ParticipationDate time.Time
}
