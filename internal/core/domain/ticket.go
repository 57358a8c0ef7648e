package domain

import (
	"time"
)

type TicketStatus string

const (
	TicketAvailable TicketStatus = "available"
	TicketReserved  TicketStatus = "reserved"
	TicketSold      TicketStatus = "sold"
	TicketUsed      TicketStatus = "used"
)

var ticketStatuses = []TicketStatus{TicketAvailable, TicketReserved, TicketSold, TicketUsed}

func TicketStatuses() []TicketStatus {
	out := make([]TicketStatus, len(ticketStatuses))
	copy(out, ticketStatuses)
	return out
}

func (s TicketStatus) Valid() bool {
	for _, known := range ticketStatuses {
		if s == known {
			return true
		}
	}
	return false
}

// ValidInitial reports whether a freshly created ticket may start in s.
func (s TicketStatus) ValidInitial() bool {
	return s == TicketAvailable || s == TicketReserved || s == TicketSold
}

func (s TicketStatus) Terminal() bool {
	return s == TicketUsed
}

type Ticket struct {
	ID           string       `json:"id"`
	EventID      string       `json:"event_id"`
	TicketTypeID string       `json:"ticket_type_id"`
	HolderEmail  *string      `json:"user_email"`
	Status       TicketStatus `json:"status"`
	Seat         *string      `json:"seat"`
	Version      int          `json:"version"`
	CreatedAt    time.Time    `json:"created_at"`
	UpdatedAt    time.Time    `json:"updated_at"`

	Event      *Event      `json:"event,omitempty"`
	TicketType *TicketType `json:"ticket_type,omitempty"`
}

func (t *Ticket) IsAvailable() bool {
	return t.Status == TicketAvailable
}

func (t *Ticket) HasHolder() bool {
	return t.HolderEmail != nil && *t.HolderEmail != ""
}

// TicketPatch lists the columns an update writes. Nil fields are left alone.
type TicketPatch struct {
	Status      *TicketStatus
	HolderEmail *string
}

func (p TicketPatch) Empty() bool {
	return p.Status == nil && p.HolderEmail == nil
}

// Apply returns a copy of t with the patch applied and the version bumped,
// mirroring what the store does on a successful write.
func (p TicketPatch) Apply(t Ticket) Ticket {
	if p.Status != nil {
		t.Status = *p.Status
	}
	if p.HolderEmail != nil {
		email := *p.HolderEmail
		t.HolderEmail = &email
	}
	t.Version++
	return t
}

type TicketStats struct {
	Available int `json:"available"`
	Reserved  int `json:"reserved"`
	Sold      int `json:"sold"`
	Used      int `json:"used"`
	Total     int `json:"total"`
}

func CountByStatus(tickets []Ticket) TicketStats {
	var stats TicketStats
	for _, t := range tickets {
		switch t.Status {
		case TicketAvailable:
			stats.Available++
		case TicketReserved:
			stats.Reserved++
		case TicketSold:
			stats.Sold++
		case TicketUsed:
			stats.Used++
		}
		stats.Total++
	}
	return stats
}
