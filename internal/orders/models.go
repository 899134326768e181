package orders

import "time"

// PendingOrder is one buyer's in-progress purchase. At most one exists
// per user; starting a new purchase replaces it.
type PendingOrder struct {
	UserID    int64
	ProductID string
	Status    Status // see status.go
	Email     string // set once status reaches awaiting_phone
	Phone     string // set once status reaches awaiting_payment
	CreatedAt time.Time
}

// CompletedOrder is the archival snapshot made when the admin confirms
// payment. It is append-only except for the recording fields, which are
// attached after the fact for consultation products.
type CompletedOrder struct {
	OrderID     string
	UserID      int64
	ProductID   string
	Email       string
	Phone       string
	Status      Status
	CreatedAt   time.Time
	CompletedAt time.Time

	RecordingSent   bool
	RecordingLink   string
	RecordingNotes  string
	RecordingSentAt time.Time
}
