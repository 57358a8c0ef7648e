//go:generate mockery --all --output ./mocks

package ports

import (
	"context"

	"github.com/srgjo27/event_ticketing/internal/core/domain"
)

type EventRepository interface {
	Create(ctx context.Context, event *domain.Event) error
	Update(ctx context.Context, event *domain.Event) error
	GetByID(ctx context.Context, eventID string) (*domain.Event, error)
	List(ctx context.Context) ([]domain.Event, error)
}

type TicketTypeRepository interface {
	Create(ctx context.Context, ticketType *domain.TicketType) error
	GetByID(ctx context.Context, ticketTypeID string) (*domain.TicketType, error)
	ListByEvent(ctx context.Context, eventID string) ([]domain.TicketType, error)
}

// TicketRepository reports a duplicate id on Insert and a stale version on
// UpdateIfVersion as domain.ErrConflict. Every write bumps the version.
type TicketRepository interface {
	Insert(ctx context.Context, ticket *domain.Ticket) error
	GetByID(ctx context.Context, ticketID string) (*domain.Ticket, error)
	ListByEvent(ctx context.Context, eventID string) ([]domain.Ticket, error)
	ListByHolder(ctx context.Context, email string) ([]domain.Ticket, error)
	Update(ctx context.Context, ticketID string, patch domain.TicketPatch) error
	UpdateIfVersion(ctx context.Context, ticketID string, version int, patch domain.TicketPatch) error
}

type ProfileRepository interface {
	GetByEmail(ctx context.Context, email string) (*domain.Profile, error)
	Upsert(ctx context.Context, profile *domain.Profile) (*domain.Profile, error)
	List(ctx context.Context) ([]domain.Principal, error)
}

// EventCache holds the public event listing. A miss is (nil, false, nil).
type EventCache interface {
	GetEvents(ctx context.Context) ([]domain.Event, bool, error)
	SetEvents(ctx context.Context, events []domain.Event) error
	InvalidateEvents(ctx context.Context) error
}
