package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/badgerworks/honeybadger/internal/model"
	"github.com/google/uuid"
)

// Memory is an in-memory Store used by tests and throwaway development
// runs. It honors the same contracts as the SQL store, including
// uniqueness errors and single-winner reset claims.
type Memory struct {
	mu           sync.RWMutex
	users        map[string]*model.User // keyed by id
	sessions     map[string]*model.Session
	resets       map[string]*model.PasswordReset
	contacts     map[string]*model.Contact
	specialDates map[string]*model.SpecialDate
	orders       map[string]*model.GiftOrder
}

// NewMemory creates an empty in-memory store
func NewMemory() *Memory {
	return &Memory{
		users:        make(map[string]*model.User),
		sessions:     make(map[string]*model.Session),
		resets:       make(map[string]*model.PasswordReset),
		contacts:     make(map[string]*model.Contact),
		specialDates: make(map[string]*model.SpecialDate),
		orders:       make(map[string]*model.GiftOrder),
	}
}

func (m *Memory) Users() UserStore               { return (*memUsers)(m) }
func (m *Memory) Sessions() SessionStore         { return (*memSessions)(m) }
func (m *Memory) Resets() ResetStore             { return (*memResets)(m) }
func (m *Memory) Contacts() ContactStore         { return (*memContacts)(m) }
func (m *Memory) SpecialDates() SpecialDateStore { return (*memSpecialDates)(m) }
func (m *Memory) Orders() OrderStore             { return (*memOrders)(m) }
func (m *Memory) Close() error                   { return nil }

type memUsers Memory

func (m *memUsers) Create(_ context.Context, user *model.User) (*model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, u := range m.users {
		if u.Email == user.Email {
			return nil, ErrDuplicateEmail
		}
	}

	u := *user
	u.ID = uuid.NewString()
	u.IsActive = true
	u.CreatedAt = time.Now().UTC()
	m.users[u.ID] = &u

	out := u
	return &out, nil
}

func (m *memUsers) GetByEmail(_ context.Context, email string) (*model.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, u := range m.users {
		if u.Email == email {
			out := *u
			return &out, nil
		}
	}
	return nil, ErrNotFound
}

func (m *memUsers) GetByID(_ context.Context, id string) (*model.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	u, ok := m.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	out := *u
	return &out, nil
}

func (m *memUsers) UpdatePassword(_ context.Context, email, newHash string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, u := range m.users {
		if u.Email == email {
			u.PasswordHash = newHash
			return nil
		}
	}
	return ErrNotFound
}

func (m *memUsers) SetActive(_ context.Context, id string, active bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	u, ok := m.users[id]
	if !ok {
		return ErrNotFound
	}
	u.IsActive = active
	return nil
}

type memSessions Memory

func (m *memSessions) Create(_ context.Context, userID, token string, expiresAt time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.sessions[token] = &model.Session{
		ID:        uuid.NewString(),
		UserID:    userID,
		Token:     token,
		ExpiresAt: expiresAt,
		CreatedAt: time.Now().UTC(),
	}
	return nil
}

func (m *memSessions) Get(_ context.Context, token string) (*model.Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	s, ok := m.sessions[token]
	if !ok {
		return nil, ErrNotFound
	}
	out := *s
	return &out, nil
}

func (m *memSessions) Delete(_ context.Context, token string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.sessions[token]; !ok {
		return false, nil
	}
	delete(m.sessions, token)
	return true, nil
}

func (m *memSessions) DeleteExpired(_ context.Context) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var n int64
	now := time.Now()
	for token, s := range m.sessions {
		if !s.ExpiresAt.After(now) {
			delete(m.sessions, token)
			n++
		}
	}
	return n, nil
}

type memResets Memory

func (m *memResets) Create(_ context.Context, code, email string, expiresAt time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.resets[code] = &model.PasswordReset{
		Code:      code,
		Email:     email,
		ExpiresAt: expiresAt,
		CreatedAt: time.Now().UTC(),
	}
	return nil
}

func (m *memResets) Get(_ context.Context, code string) (*model.PasswordReset, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	r, ok := m.resets[code]
	if !ok {
		return nil, ErrNotFound
	}
	out := *r
	return &out, nil
}

func (m *memResets) Claim(_ context.Context, code string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	r, ok := m.resets[code]
	if !ok || r.IsExpired() {
		return false, nil
	}
	delete(m.resets, code)
	return true, nil
}

func (m *memResets) DeleteExpired(_ context.Context) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var n int64
	for code, r := range m.resets {
		if r.IsExpired() {
			delete(m.resets, code)
			n++
		}
	}
	return n, nil
}

type memContacts Memory

func (m *memContacts) Create(_ context.Context, contact *model.Contact) (*model.Contact, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	c := *contact
	c.ID = uuid.NewString()
	c.CreatedAt = time.Now().UTC()
	m.contacts[c.ID] = &c

	out := c
	return &out, nil
}

func (m *memContacts) ListByUser(_ context.Context, userID string) ([]model.Contact, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	contacts := []model.Contact{}
	for _, c := range m.contacts {
		if c.UserID == userID {
			contacts = append(contacts, *c)
		}
	}
	sort.Slice(contacts, func(i, j int) bool {
		return contacts[i].CreatedAt.After(contacts[j].CreatedAt)
	})
	return contacts, nil
}

func (m *memContacts) Delete(_ context.Context, userID, contactID string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	c, ok := m.contacts[contactID]
	if !ok || c.UserID != userID {
		return false, nil
	}

	delete(m.contacts, contactID)
	for id, d := range m.specialDates {
		if d.ContactID == contactID {
			delete(m.specialDates, id)
		}
	}
	return true, nil
}

func (m *memContacts) Owned(_ context.Context, userID, contactID string) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	c, ok := m.contacts[contactID]
	return ok && c.UserID == userID, nil
}

type memSpecialDates Memory

func (m *memSpecialDates) Create(_ context.Context, date *model.SpecialDate) (*model.SpecialDate, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	d := *date
	d.ID = uuid.NewString()
	d.CreatedAt = time.Now().UTC()
	m.specialDates[d.ID] = &d

	out := d
	return &out, nil
}

func (m *memSpecialDates) ListByContact(_ context.Context, contactID string) ([]model.SpecialDate, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	dates := []model.SpecialDate{}
	for _, d := range m.specialDates {
		if d.ContactID == contactID {
			dates = append(dates, *d)
		}
	}
	sort.Slice(dates, func(i, j int) bool {
		return dates[i].CreatedAt.After(dates[j].CreatedAt)
	})
	return dates, nil
}

func (m *memSpecialDates) Delete(_ context.Context, userID, dateID string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	d, ok := m.specialDates[dateID]
	if !ok {
		return false, nil
	}
	c, ok := m.contacts[d.ContactID]
	if !ok || c.UserID != userID {
		return false, nil
	}

	delete(m.specialDates, dateID)
	return true, nil
}

type memOrders Memory

func (m *memOrders) Create(_ context.Context, order *model.GiftOrder) (*model.GiftOrder, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, o := range m.orders {
		if o.TrackingID == order.TrackingID {
			return nil, ErrDuplicateTrackingID
		}
	}

	o := *order
	o.ID = uuid.NewString()
	if o.Status == "" {
		o.Status = model.StatusPending
	}
	now := time.Now().UTC()
	o.CreatedAt = now
	o.UpdatedAt = now
	m.orders[o.ID] = &o

	out := o
	return &out, nil
}

func (m *memOrders) ListByUser(_ context.Context, userID string) ([]model.GiftOrder, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	orders := []model.GiftOrder{}
	for _, o := range m.orders {
		if o.UserID == userID {
			orders = append(orders, *o)
		}
	}
	sort.Slice(orders, func(i, j int) bool {
		return orders[i].CreatedAt.After(orders[j].CreatedAt)
	})
	return orders, nil
}
