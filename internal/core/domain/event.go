package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// EventDateLayout is the layout events are stored and compared with.
const EventDateLayout = "2006-01-02"

type Event struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Date         string    `json:"date"`
	Time         string    `json:"time"`
	Venue        string    `json:"venue"`
	ImageURL     *string   `json:"image_url"`
	InstagramURL *string   `json:"instagram_url"`
	FacebookURL  *string   `json:"facebook_url"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type TicketType struct {
	ID        string          `json:"id"`
	EventID   string          `json:"event_id"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	CreatedAt time.Time       `json:"created_at"`
}
