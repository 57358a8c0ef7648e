package services

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/srgjo27/event_ticketing/internal/core/domain"
	"github.com/srgjo27/event_ticketing/internal/core/ports"
)

type EventRequest struct {
	Name         string  `json:"name"`
	Date         string  `json:"date"`
	Time         string  `json:"time"`
	Venue        string  `json:"venue"`
	ImageURL     *string `json:"image_url"`
	InstagramURL *string `json:"instagram_url"`
	FacebookURL  *string `json:"facebook_url"`
}

type TicketTypeRequest struct {
	Name  string          `json:"name"`
	Price decimal.Decimal `json:"price"`
}

// CatalogService manages events, their ticket types and the user directory
// shown to admins.
type CatalogService struct {
	events      ports.EventRepository
	ticketTypes ports.TicketTypeRepository
	profiles    ports.ProfileRepository
	cache       ports.EventCache
	logger      *slog.Logger
	now         func() time.Time
}

// NewCatalogService builds a CatalogService. cache may be nil.
func NewCatalogService(events ports.EventRepository, ticketTypes ports.TicketTypeRepository, profiles ports.ProfileRepository, cache ports.EventCache, logger *slog.Logger) *CatalogService {
	if logger == nil {
		logger = nopLogger()
	}
	return &CatalogService{
		events:      events,
		ticketTypes: ticketTypes,
		profiles:    profiles,
		cache:       cache,
		logger:      logger,
		now:         time.Now,
	}
}

func (s *CatalogService) CreateEvent(ctx context.Context, req EventRequest) (*domain.Event, error) {
	if err := validateEventRequest(&req); err != nil {
		return nil, err
	}

	now := s.now().UTC()
	event := &domain.Event{
		ID:           uuid.NewString(),
		Name:         req.Name,
		Date:         req.Date,
		Time:         req.Time,
		Venue:        req.Venue,
		ImageURL:     nonEmpty(req.ImageURL),
		InstagramURL: nonEmpty(req.InstagramURL),
		FacebookURL:  nonEmpty(req.FacebookURL),
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.events.Create(ctx, event); err != nil {
		return nil, err
	}

	s.invalidate(ctx)
	s.logger.Info("event created", "event_id", event.ID, "name", event.Name)

	return event, nil
}

func (s *CatalogService) UpdateEvent(ctx context.Context, eventID string, req EventRequest) (*domain.Event, error) {
	if err := validateEventRequest(&req); err != nil {
		return nil, err
	}

	event, err := s.events.GetByID(ctx, eventID)
	if err != nil {
		return nil, err
	}

	event.Name = req.Name
	event.Date = req.Date
	event.Time = req.Time
	event.Venue = req.Venue
	event.ImageURL = nonEmpty(req.ImageURL)
	event.InstagramURL = nonEmpty(req.InstagramURL)
	event.FacebookURL = nonEmpty(req.FacebookURL)
	event.UpdatedAt = s.now().UTC()

	if err := s.events.Update(ctx, event); err != nil {
		return nil, err
	}

	s.invalidate(ctx)
	s.logger.Info("event updated", "event_id", event.ID)

	return event, nil
}

func (s *CatalogService) GetEvent(ctx context.Context, eventID string) (*domain.Event, error) {
	if eventID == "" {
		return nil, fmt.Errorf("%w: event id is required", domain.ErrValidation)
	}
	return s.events.GetByID(ctx, eventID)
}

// ListEvents returns all events, soonest first. The listing is served from
// the cache when one is configured.
func (s *CatalogService) ListEvents(ctx context.Context) ([]domain.Event, error) {
	if s.cache != nil {
		events, ok, err := s.cache.GetEvents(ctx)
		if err != nil {
			s.logger.Warn("event cache read failed", "error", err)
		}
		if ok {
			return events, nil
		}
	}

	events, err := s.events.List(ctx)
	if err != nil {
		return nil, err
	}

	sort.SliceStable(events, func(i, j int) bool {
		if events[i].Date != events[j].Date {
			return events[i].Date < events[j].Date
		}
		return events[i].Time < events[j].Time
	})

	if s.cache != nil {
		if err := s.cache.SetEvents(ctx, events); err != nil {
			s.logger.Warn("event cache write failed", "error", err)
		}
	}

	return events, nil
}

func (s *CatalogService) CreateTicketType(ctx context.Context, eventID string, req TicketTypeRequest) (*domain.TicketType, error) {
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		return nil, fmt.Errorf("%w: ticket type name is required", domain.ErrValidation)
	}
	if req.Price.IsNegative() {
		return nil, fmt.Errorf("%w: price cannot be negative", domain.ErrValidation)
	}

	if _, err := s.GetEvent(ctx, eventID); err != nil {
		return nil, err
	}

	ticketType := &domain.TicketType{
		ID:        uuid.NewString(),
		EventID:   eventID,
		Name:      req.Name,
		Price:     req.Price.Round(2),
		CreatedAt: s.now().UTC(),
	}

	if err := s.ticketTypes.Create(ctx, ticketType); err != nil {
		return nil, err
	}

	return ticketType, nil
}

// ListTicketTypes returns the event's ticket types, cheapest first.
func (s *CatalogService) ListTicketTypes(ctx context.Context, eventID string) ([]domain.TicketType, error) {
	if eventID == "" {
		return nil, fmt.Errorf("%w: event id is required", domain.ErrValidation)
	}

	types, err := s.ticketTypes.ListByEvent(ctx, eventID)
	if err != nil {
		return nil, err
	}

	sort.SliceStable(types, func(i, j int) bool {
		return types[i].Price.LessThan(types[j].Price)
	})

	return types, nil
}

func (s *CatalogService) ListUsers(ctx context.Context) ([]domain.Principal, error) {
	users, err := s.profiles.List(ctx)
	if err != nil {
		return nil, err
	}

	sort.SliceStable(users, func(i, j int) bool {
		return strings.ToLower(users[i].Name) < strings.ToLower(users[j].Name)
	})

	return users, nil
}

func (s *CatalogService) invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.InvalidateEvents(ctx); err != nil {
		s.logger.Warn("event cache invalidation failed", "error", err)
	}
}

func validateEventRequest(req *EventRequest) error {
	req.Name = strings.TrimSpace(req.Name)
	req.Venue = strings.TrimSpace(req.Venue)
	req.Date = strings.TrimSpace(req.Date)
	req.Time = strings.TrimSpace(req.Time)

	if req.Name == "" {
		return fmt.Errorf("%w: event name is required", domain.ErrValidation)
	}
	if req.Venue == "" {
		return fmt.Errorf("%w: venue is required", domain.ErrValidation)
	}
	if _, err := time.Parse(domain.EventDateLayout, req.Date); err != nil {
		return fmt.Errorf("%w: date must be YYYY-MM-DD", domain.ErrValidation)
	}
	if req.Time != "" {
		if _, err := time.Parse("15:04", req.Time); err != nil {
			return fmt.Errorf("%w: time must be HH:MM", domain.ErrValidation)
		}
	}
	return nil
}

func nonEmpty(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}
