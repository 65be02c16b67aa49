package membership_test

import (
	"context"
	"database/sql"
	"errors"
	"maps"
	"sort"

	"github.com/iliyamo/fanclub-membership/internal/membership"
	"github.com/iliyamo/fanclub-membership/internal/model"
)

// memStore is an in-memory Store.  A failed transaction restores the
// state captured when it began.
type memStore struct {
	artists        map[model.ID]model.Artist
	courses        map[model.ID]model.SubscriptionCourse
	customers      map[model.ID]model.Customer
	subscriptions  map[model.ID]model.Subscription
	participations []model.EventParticipation

	locked   []model.ID
	failNext error // returned by the next write
	commits  int
}

func newMemStore() *memStore {
	return &memStore{
		artists: map[model.ID]model.Artist{
			1: {ID: 1, Name: "Aurora", DebutYear: 2015},
			2: {ID: 2, Name: "Nova", DebutYear: 2019},
		},
		courses: map[model.ID]model.SubscriptionCourse{
			1: {ID: 1, CourseName: "Half Year", DurationMonths: 6},
			2: {ID: 2, CourseName: "Annual", DurationMonths: 12},
			3: {ID: 3, CourseName: "Broken", DurationMonths: 0},
		},
		customers: map[model.ID]model.Customer{
			10: {ID: 10, Name: "Kim", Email: "kim@example.com", Phone: "010-1234", Address: "Seoul"},
		},
		subscriptions: map[model.ID]model.Subscription{},
	}
}

func (m *memStore) InTx(ctx context.Context, fn func(tx membership.Tx) error) error {
	customers := maps.Clone(m.customers)
	subs := maps.Clone(m.subscriptions)
	parts := append([]model.EventParticipation(nil), m.participations...)
	if err := fn(m); err != nil {
		m.customers, m.subscriptions, m.participations = customers, subs, parts
		return err
	}
	m.commits++
	return nil
}

func (m *memStore) takeFailure() error {
	err := m.failNext
	m.failNext = nil
	return err
}

func (m *memStore) SubscriptionsForPair(_ context.Context, customerID, artistID model.ID) ([]model.Subscription, error) {
	var out []model.Subscription
	for _, s := range m.subscriptions {
		if s.CustomerID == customerID && s.GroupID == artistID {
			out = append(out, s)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *memStore) SubscriptionExists(_ context.Context, id model.ID) (bool, error) {
	_, ok := m.subscriptions[id]
	return ok, nil
}

func (m *memStore) SubscriptionByID(_ context.Context, id model.ID) (model.Subscription, error) {
	s, ok := m.subscriptions[id]
	if !ok {
		return model.Subscription{}, sql.ErrNoRows
	}
	return s, nil
}

func (m *memStore) InsertSubscription(_ context.Context, s model.Subscription) error {
	if err := m.takeFailure(); err != nil {
		return err
	}
	if _, ok := m.subscriptions[s.ID]; ok {
		return membership.ErrDuplicateID
	}
	m.subscriptions[s.ID] = s
	return nil
}

func (m *memStore) DeleteSubscription(_ context.Context, id model.ID) error {
	if err := m.takeFailure(); err != nil {
		return err
	}
	if _, ok := m.subscriptions[id]; !ok {
		return sql.ErrNoRows
	}
	delete(m.subscriptions, id)
	return nil
}

func (m *memStore) CountParticipations(_ context.Context, id model.ID) (int, error) {
	n := 0
	for _, p := range m.participations {
		if p.SubscriptionID == id {
			n++
		}
	}
	return n, nil
}

func (m *memStore) DeleteParticipations(_ context.Context, id model.ID) (int64, error) {
	kept := m.participations[:0:0]
	var n int64
	for _, p := range m.participations {
		if p.SubscriptionID == id {
			n++
			continue
		}
		kept = append(kept, p)
	}
	m.participations = kept
	return n, nil
}

func (m *memStore) CourseByName(_ context.Context, name string) (model.SubscriptionCourse, error) {
	for _, c := range m.courses {
		if c.CourseName == name {
			return c, nil
		}
	}
	return model.SubscriptionCourse{}, sql.ErrNoRows
}

func (m *memStore) ArtistByName(_ context.Context, name string) (model.Artist, error) {
	for _, a := range m.artists {
		if a.Name == name {
			return a, nil
		}
	}
	return model.Artist{}, sql.ErrNoRows
}

func (m *memStore) LockCustomer(_ context.Context, id model.ID) error {
	if _, ok := m.customers[id]; !ok {
		return sql.ErrNoRows
	}
	m.locked = append(m.locked, id)
	return nil
}

func (m *memStore) CustomerByID(_ context.Context, id model.ID) (model.Customer, error) {
	c, ok := m.customers[id]
	if !ok {
		return model.Customer{}, sql.ErrNoRows
	}
	return c, nil
}

func (m *memStore) InsertCustomer(_ context.Context, c model.Customer) error {
	if err := m.takeFailure(); err != nil {
		return err
	}
	m.customers[c.ID] = c
	return nil
}

func (m *memStore) UpdateCustomer(_ context.Context, c model.Customer) error {
	if err := m.takeFailure(); err != nil {
		return err
	}
	if _, ok := m.customers[c.ID]; !ok {
		return sql.ErrNoRows
	}
	m.customers[c.ID] = c
	return nil
}

// recordingNotifier collects published changes.
type recordingNotifier struct {
	joined    []model.Subscription
	cancelled []model.Subscription
	err       error
}

func (n *recordingNotifier) SubscriptionJoined(_ context.Context, s model.Subscription) error {
	n.joined = append(n.joined, s)
	return n.err
}

func (n *recordingNotifier) SubscriptionCancelled(_ context.Context, s model.Subscription) error {
	n.cancelled = append(n.cancelled, s)
	return n.err
}

var errBoom = errors.New("boom")
