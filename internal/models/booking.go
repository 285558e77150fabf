package models

import "time"

// Booking statuses. WAITING is the only non-terminal state: a booking leaves it
// exactly once, to APPROVED or REJECTED.
const (
	StatusWaiting  = "WAITING"
	StatusApproved = "APPROVED"
	StatusRejected = "REJECTED"
)

type Booking struct {
	ID        int64     `json:"id"`
	Start     time.Time `json:"start"`
	End       time.Time `json:"end"`
	Status    string    `json:"status"`
	BookerID  int64     `json:"booker_id"`
	ItemID    int64     `json:"item_id"`
	ItemName  string    `json:"item_name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	Version   int64     `json:"version"`
}

// BookingView is the projection returned by the lifecycle operations.
type BookingView struct {
	ID     int64       `json:"id"`
	Start  time.Time   `json:"start"`
	End    time.Time   `json:"end"`
	Status string      `json:"status"`
	Booker BookerView  `json:"booker"`
	Item   ItemSummary `json:"item"`
}

type BookerView struct {
	ID int64 `json:"id"`
}

type ItemSummary struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// BookingRef is the minimal booking reference embedded into item views.
type BookingRef struct {
	ID       int64 `json:"id"`
	BookerID int64 `json:"booker_id"`
}

// ItemBookingInfo holds the last/next booking derived for a single item.
type ItemBookingInfo struct {
	Last *BookingRef
	Next *BookingRef
}

// ToView projects a booking onto its external shape.
func (b *Booking) ToView() *BookingView {
	return &BookingView{
		ID:     b.ID,
		Start:  b.Start,
		End:    b.End,
		Status: b.Status,
		Booker: BookerView{ID: b.BookerID},
		Item:   ItemSummary{ID: b.ItemID, Name: b.ItemName},
	}
}
