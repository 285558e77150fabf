package models

import "time"

type Item struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Available   bool      `json:"available"`
	OwnerID     int64     `json:"owner_id"`
	RequestID   int64     `json:"request_id,omitempty"` // 0 when the item answers no request
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ItemUpdate carries a partial item edit; nil fields are left untouched.
type ItemUpdate struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Available   *bool   `json:"available"`
}

// ItemView is the item projection returned to callers. Booking summaries are
// attached only when the caller owns the item.
type ItemView struct {
	ID          int64         `json:"id"`
	Name        string        `json:"name"`
	Description string        `json:"description"`
	Available   bool          `json:"available"`
	RequestID   int64         `json:"request_id,omitempty"`
	LastBooking *BookingRef   `json:"last_booking,omitempty"`
	NextBooking *BookingRef   `json:"next_booking,omitempty"`
	Comments    []CommentView `json:"comments"`
}
