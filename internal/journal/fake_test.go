package journal

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// memRepo is an in-memory Repository. Transactions run under one mutex and
// roll back by restoring a snapshot.
type memRepo struct {
	mu       sync.Mutex
	dates    map[uuid.UUID]*Date
	contacts map[uuid.UUID]*Contact
	burnout  map[uuid.UUID]int
	failTx   error
}

func newMemRepo() *memRepo {
	return &memRepo{
		dates:    make(map[uuid.UUID]*Date),
		contacts: make(map[uuid.UUID]*Contact),
		burnout:  make(map[uuid.UUID]int),
	}
}

func (m *memRepo) RunInTx(ctx context.Context, fn func(tx TxRepository) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	dates := make(map[uuid.UUID]*Date, len(m.dates))
	for k, v := range m.dates {
		cp := *v
		dates[k] = &cp
	}
	contacts := make(map[uuid.UUID]*Contact, len(m.contacts))
	for k, v := range m.contacts {
		cp := *v
		contacts[k] = &cp
	}
	burnout := make(map[uuid.UUID]int, len(m.burnout))
	for k, v := range m.burnout {
		burnout[k] = v
	}

	err := fn(memTx{m})
	if err == nil {
		err = m.failTx
	}
	if err != nil {
		m.dates, m.contacts, m.burnout = dates, contacts, burnout
	}
	return err
}

// memTx runs with memRepo.mu already held.
type memTx struct{ m *memRepo }

func (t memTx) LockContact(_ context.Context, userID, id uuid.UUID) (*Contact, error) {
	c, ok := t.m.contacts[id]
	if !ok || c.UserID != userID {
		return nil, ErrContactNotFound
	}
	cp := *c
	return &cp, nil
}

func (t memTx) LockOrCreateContact(_ context.Context, userID uuid.UUID, name string) (*Contact, bool, error) {
	for _, c := range t.m.contacts {
		if c.UserID == userID && c.Name == name {
			cp := *c
			return &cp, false, nil
		}
	}
	c := &Contact{ID: uuid.New(), UserID: userID, Name: name, Status: "new", Tags: []string{}, CreatedAt: time.Now()}
	t.m.contacts[c.ID] = c
	cp := *c
	return &cp, true, nil
}

func (t memTx) CountContactDates(_ context.Context, contactID uuid.UUID) (int, error) {
	n := 0
	for _, d := range t.m.dates {
		if d.ContactID == contactID {
			n++
		}
	}
	return n, nil
}

func (t memTx) LatestRatedDate(_ context.Context, contactID uuid.UUID) (*Date, error) {
	var latest *Date
	for _, d := range t.m.dates {
		if d.ContactID != contactID || d.Status != "completed" || d.Rating == nil {
			continue
		}
		if latest == nil || d.DateTime.After(latest.DateTime) ||
			(d.DateTime.Equal(latest.DateTime) && d.CreatedAt.After(latest.CreatedAt)) {
			latest = d
		}
	}
	if latest == nil {
		return nil, nil
	}
	cp := *latest
	return &cp, nil
}

func (t memTx) LockDate(_ context.Context, userID, id uuid.UUID) (*Date, error) {
	d, ok := t.m.dates[id]
	if !ok || d.UserID != userID {
		return nil, ErrDateNotFound
	}
	cp := *d
	return &cp, nil
}

func (t memTx) InsertDate(_ context.Context, date *Date) error {
	date.CreatedAt = time.Now()
	date.UpdatedAt = date.CreatedAt
	cp := *date
	t.m.dates[date.ID] = &cp
	return nil
}

func (t memTx) UpdateDate(_ context.Context, date *Date) error {
	if _, ok := t.m.dates[date.ID]; !ok {
		return ErrDateNotFound
	}
	date.UpdatedAt = time.Now()
	cp := *date
	t.m.dates[date.ID] = &cp
	return nil
}

func (t memTx) SetContactStatus(_ context.Context, contactID uuid.UUID, status string) error {
	if c, ok := t.m.contacts[contactID]; ok {
		c.Status = status
	}
	return nil
}

func (t memTx) BumpBurnout(_ context.Context, userID uuid.UUID) error {
	t.m.burnout[userID] = min(t.m.burnout[userID]+1, 10)
	return nil
}

func (m *memRepo) ListDates(_ context.Context, userID uuid.UUID, filter DateFilter) ([]*Date, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := []*Date{}
	for _, d := range m.dates {
		if d.UserID != userID {
			continue
		}
		if filter.Status != "" && d.Status != filter.Status {
			continue
		}
		if filter.StartDate != nil && d.DateTime.Before(*filter.StartDate) {
			continue
		}
		if filter.EndDate != nil && d.DateTime.After(*filter.EndDate) {
			continue
		}
		cp := *d
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].DateTime.After(out[j].DateTime) })
	return out, nil
}

func (m *memRepo) GetDate(_ context.Context, userID, id uuid.UUID) (*Date, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return memTx{m}.LockDate(context.Background(), userID, id)
}

func (m *memRepo) DeleteDate(_ context.Context, userID, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	d, ok := m.dates[id]
	if !ok || d.UserID != userID {
		return ErrDateNotFound
	}
	delete(m.dates, id)
	return nil
}

func (m *memRepo) ListContactDates(_ context.Context, userID, contactID uuid.UUID) ([]*Date, error) {
	all, _ := m.ListDates(context.Background(), userID, DateFilter{})
	out := []*Date{}
	for _, d := range all {
		if d.ContactID == contactID {
			out = append(out, d)
		}
	}
	return out, nil
}

func (m *memRepo) CreateContact(_ context.Context, contact *Contact) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, c := range m.contacts {
		if c.UserID == contact.UserID && c.Name == contact.Name {
			return ErrContactExists
		}
	}
	contact.CreatedAt = time.Now()
	cp := *contact
	m.contacts[contact.ID] = &cp
	return nil
}

func (m *memRepo) GetContact(_ context.Context, userID, id uuid.UUID) (*Contact, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return memTx{m}.LockContact(context.Background(), userID, id)
}

func (m *memRepo) ListContacts(_ context.Context, userID uuid.UUID, filter ContactFilter) ([]*Contact, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := []*Contact{}
	for _, c := range m.contacts {
		if c.UserID != userID {
			continue
		}
		if filter.Status != "" && c.Status != filter.Status {
			continue
		}
		if filter.Search != "" && !strings.Contains(strings.ToLower(c.Name), strings.ToLower(filter.Search)) {
			continue
		}
		if filter.Tag != "" && !contains(c.Tags, filter.Tag) {
			continue
		}
		cp := *c
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (m *memRepo) UpdateContact(_ context.Context, userID, id uuid.UUID, req *UpdateContactRequest) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.contacts[id]
	if !ok || c.UserID != userID {
		return ErrContactNotFound
	}
	if req.Name != nil {
		c.Name = *req.Name
	}
	if req.PhoneNumber != nil {
		c.PhoneNumber = *req.PhoneNumber
	}
	if req.Status != nil {
		c.Status = *req.Status
	}
	if req.Tags != nil {
		c.Tags = req.Tags
	}
	if req.Notes != nil {
		c.Notes = *req.Notes
	}
	return nil
}

func (m *memRepo) DeleteContact(_ context.Context, userID, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.contacts[id]
	if !ok || c.UserID != userID {
		return ErrContactNotFound
	}
	for _, d := range m.dates {
		if d.ContactID == id {
			return ErrContactHasDates
		}
	}
	delete(m.contacts, id)
	return nil
}

func (m *memRepo) contactStatus(id uuid.UUID) string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.contacts[id].Status
}

func (m *memRepo) burnoutOf(userID uuid.UUID) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.burnout[userID]
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

func intPtr(v int) *int { return &v }

func strPtr(v string) *string { return &v }
