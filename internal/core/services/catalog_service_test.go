package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/srgjo27/event_ticketing/internal/core/domain"
	"github.com/srgjo27/event_ticketing/internal/core/ports/mocks"
	"github.com/srgjo27/event_ticketing/internal/core/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type catalogMocks struct {
	events   *mocks.EventRepository
	types    *mocks.TicketTypeRepository
	profiles *mocks.ProfileRepository
	cache    *mocks.EventCache
}

func newCatalogService(t *testing.T) (*services.CatalogService, catalogMocks) {
	m := catalogMocks{
		events:   mocks.NewEventRepository(t),
		types:    mocks.NewTicketTypeRepository(t),
		profiles: mocks.NewProfileRepository(t),
		cache:    mocks.NewEventCache(t),
	}
	return services.NewCatalogService(m.events, m.types, m.profiles, m.cache, nil), m
}

func TestCreateEvent_InvalidatesCache(t *testing.T) {
	svc, m := newCatalogService(t)
	ctx := context.Background()
	blank := "  "

	m.events.On("Create", ctx, mock.MatchedBy(func(e *domain.Event) bool {
		return e.Name == "Beto William" && e.ImageURL == nil && e.ID != ""
	})).Return(nil)
	m.cache.On("InvalidateEvents", ctx).Return(nil)

	event, err := svc.CreateEvent(ctx, services.EventRequest{
		Name:     " Beto William ",
		Date:     "2024-03-22",
		Time:     "21:00",
		Venue:    "Teatro",
		ImageURL: &blank,
	})

	require.NoError(t, err)
	assert.Equal(t, "Beto William", event.Name)
}

func TestCreateEvent_Validation(t *testing.T) {
	svc, _ := newCatalogService(t)

	tests := []services.EventRequest{
		{Date: "2024-03-22", Venue: "Teatro"},
		{Name: "Show", Date: "22/03/2024", Venue: "Teatro"},
		{Name: "Show", Date: "2024-03-22"},
		{Name: "Show", Date: "2024-03-22", Venue: "Teatro", Time: "9pm"},
	}

	for _, req := range tests {
		_, err := svc.CreateEvent(context.Background(), req)
		assert.ErrorIs(t, err, domain.ErrValidation)
	}
}

func TestUpdateEvent_NotFound(t *testing.T) {
	svc, m := newCatalogService(t)
	ctx := context.Background()

	m.events.On("GetByID", ctx, "missing").Return(nil, domain.ErrNotFound)

	_, err := svc.UpdateEvent(ctx, "missing", services.EventRequest{Name: "Show", Date: "2024-03-22", Venue: "Teatro"})

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestListEvents_CacheHit(t *testing.T) {
	svc, m := newCatalogService(t)
	ctx := context.Background()
	cached := []domain.Event{{ID: "e1"}}

	m.cache.On("GetEvents", ctx).Return(cached, true, nil)

	events, err := svc.ListEvents(ctx)

	require.NoError(t, err)
	assert.Equal(t, cached, events)
	m.events.AssertNotCalled(t, "List", mock.Anything)
}

func TestListEvents_MissSortsAndFills(t *testing.T) {
	svc, m := newCatalogService(t)
	ctx := context.Background()

	m.cache.On("GetEvents", ctx).Return(nil, false, errors.New("redis down"))
	m.events.On("List", ctx).Return([]domain.Event{
		{ID: "late", Date: "2025-02-01", Time: "20:00"},
		{ID: "early-night", Date: "2025-01-01", Time: "22:00"},
		{ID: "early", Date: "2025-01-01", Time: "18:00"},
	}, nil)
	m.cache.On("SetEvents", ctx, mock.Anything).Return(nil)

	events, err := svc.ListEvents(ctx)

	require.NoError(t, err)
	require.Len(t, events, 3)
	assert.Equal(t, "early", events[0].ID)
	assert.Equal(t, "early-night", events[1].ID)
	assert.Equal(t, "late", events[2].ID)
}

func TestCreateTicketType(t *testing.T) {
	svc, m := newCatalogService(t)
	ctx := context.Background()

	m.events.On("GetByID", ctx, "e1").Return(&domain.Event{ID: "e1"}, nil)
	m.types.On("Create", ctx, mock.AnythingOfType("*domain.TicketType")).Return(nil)

	tt, err := svc.CreateTicketType(ctx, "e1", services.TicketTypeRequest{Name: "Pista", Price: decimal.RequireFromString("80.505")})

	require.NoError(t, err)
	assert.Equal(t, "e1", tt.EventID)
	assert.True(t, decimal.RequireFromString("80.51").Equal(tt.Price))

	_, err = svc.CreateTicketType(ctx, "e1", services.TicketTypeRequest{Name: "Pista", Price: decimal.NewFromInt(-1)})
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestListTicketTypes_CheapestFirst(t *testing.T) {
	svc, m := newCatalogService(t)
	ctx := context.Background()

	m.types.On("ListByEvent", ctx, "e1").Return([]domain.TicketType{
		{ID: "vip", Price: decimal.NewFromInt(200)},
		{ID: "meia", Price: decimal.NewFromInt(40)},
		{ID: "inteira", Price: decimal.NewFromInt(80)},
	}, nil)

	types, err := svc.ListTicketTypes(ctx, "e1")

	require.NoError(t, err)
	assert.Equal(t, "meia", types[0].ID)
	assert.Equal(t, "inteira", types[1].ID)
	assert.Equal(t, "vip", types[2].ID)
}

func TestListUsers_SortedByName(t *testing.T) {
	svc, m := newCatalogService(t)
	ctx := context.Background()

	m.profiles.On("List", ctx).Return([]domain.Principal{{Name: "bruno"}, {Name: "Ana"}}, nil)

	users, err := svc.ListUsers(ctx)

	require.NoError(t, err)
	assert.Equal(t, "Ana", users[0].Name)
}
