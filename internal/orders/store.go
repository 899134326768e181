package orders

import (
	"errors"
	"strconv"
	"sync"
	"time"
)

var (
	ErrNoPendingOrder = errors.New("no pending order")
	ErrWrongState     = errors.New("order is in the wrong state")
	ErrNotFound       = errors.New("order not found")
)

// Store owns all order state. Everything lives in process memory and is
// lost on restart; there is deliberately no persistence behind it.
// Completed orders accumulate without eviction.
//
// Each method is a single critical section. The update loop is the only
// writer, but the HTTP status endpoint reads counts from another
// goroutine, so access is guarded anyway. The lock is never held across
// a network call.
type Store struct {
	mu        sync.Mutex
	now       func() time.Time
	pending   map[int64]*PendingOrder
	completed map[int64][]*CompletedOrder
}

func NewStore() *Store {
	return &Store{
		now:       time.Now,
		pending:   make(map[int64]*PendingOrder),
		completed: make(map[int64][]*CompletedOrder),
	}
}

// NewStoreWithClock is for tests that need deterministic timestamps.
func NewStoreWithClock(now func() time.Time) *Store {
	s := NewStore()
	s.now = now
	return s
}

// StartOrder opens a fresh pending order in awaiting_email. Any existing
// pending order for the user is silently replaced, never merged.
func (s *Store) StartOrder(userID int64, productID string) PendingOrder {
	s.mu.Lock()
	defer s.mu.Unlock()

	o := &PendingOrder{
		UserID:    userID,
		ProductID: productID,
		Status:    StatusAwaitingEmail,
		CreatedAt: s.now(),
	}
	s.pending[userID] = o
	return *o
}

// RecordEmail stores the buyer's email and advances to awaiting_phone.
// Validation happens at the boundary; the store only checks state.
func (s *Store) RecordEmail(userID int64, email string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	o, ok := s.pending[userID]
	if !ok {
		return ErrNoPendingOrder
	}
	if o.Status != StatusAwaitingEmail {
		return ErrWrongState
	}
	o.Email = email
	o.Status = StatusAwaitingPhone
	return nil
}

// RecordPhone stores the buyer's phone and advances to awaiting_payment.
func (s *Store) RecordPhone(userID int64, phone string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	o, ok := s.pending[userID]
	if !ok {
		return ErrNoPendingOrder
	}
	if o.Status != StatusAwaitingPhone {
		return ErrWrongState
	}
	o.Phone = phone
	o.Status = StatusAwaitingPayment
	return nil
}

// Pending returns a copy of the user's pending order, if any.
func (s *Store) Pending(userID int64) (PendingOrder, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	o, ok := s.pending[userID]
	if !ok {
		return PendingOrder{}, false
	}
	return *o, true
}

// Cancel discards the pending order. Reports whether one existed so the
// caller can tell the admin "not found" instead of pretending success.
func (s *Store) Cancel(userID int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.pending[userID]; !ok {
		return false
	}
	delete(s.pending, userID)
	return true
}

// Complete moves the pending order into the completed archive, stamping
// CompletedAt and generating the short order reference.
func (s *Store) Complete(userID int64) (CompletedOrder, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	o, ok := s.pending[userID]
	if !ok {
		return CompletedOrder{}, ErrNoPendingOrder
	}

	now := s.now()
	done := &CompletedOrder{
		OrderID:     newOrderID(now),
		UserID:      o.UserID,
		ProductID:   o.ProductID,
		Email:       o.Email,
		Phone:       o.Phone,
		Status:      StatusCompleted,
		CreatedAt:   o.CreatedAt,
		CompletedAt: now,
	}
	s.completed[userID] = append(s.completed[userID], done)
	delete(s.pending, userID)
	return *done, nil
}

// Completed returns the user's archive in insertion order, as copies.
func (s *Store) Completed(userID int64) []CompletedOrder {
	s.mu.Lock()
	defer s.mu.Unlock()

	list := s.completed[userID]
	out := make([]CompletedOrder, 0, len(list))
	for _, o := range list {
		out = append(out, *o)
	}
	return out
}

// AttachRecording adds a consultation recording to the user's most recent
// completed order whose product the predicate marks as a consultation.
func (s *Store) AttachRecording(userID int64, link, notes string, isConsultation func(productID string) bool) (CompletedOrder, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	list := s.completed[userID]
	for i := len(list) - 1; i >= 0; i-- {
		o := list[i]
		if !isConsultation(o.ProductID) {
			continue
		}
		o.RecordingSent = true
		o.RecordingLink = link
		o.RecordingNotes = notes
		o.RecordingSentAt = s.now()
		return *o, nil
	}
	return CompletedOrder{}, ErrNotFound
}

// Counts reports map sizes for the status endpoint and admin stats.
func (s *Store) Counts() (pending, completed int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	pending = len(s.pending)
	for _, list := range s.completed {
		completed += len(list)
	}
	return pending, completed
}

// newOrderID is the short human-readable order reference: the last six
// digits of the unix millisecond timestamp. Not globally unique across
// restarts, which matches the original system's behavior.
func newOrderID(t time.Time) string {
	ms := strconv.FormatInt(t.UnixMilli(), 10)
	return "#" + ms[len(ms)-6:]
}
