package postgres_test

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"github.com/srgjo27/event_ticketing/internal/adapter/repository/postgres"
	"github.com/srgjo27/event_ticketing/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMock(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, mock.ExpectationsWereMet())
		db.Close()
	})

	return db, mock
}

var ticketRowColumns = []string{
	"id", "event_id", "ticket_type_id", "user_email", "status", "seat", "version", "created_at", "updated_at",
	"e_id", "e_name", "e_date", "e_time", "e_venue", "e_image_url", "e_instagram_url", "e_facebook_url", "e_created_at", "e_updated_at",
	"tt_id", "tt_event_id", "tt_name", "tt_price", "tt_created_at",
}

func ticketRow(rows *sqlmock.Rows, id string, holder any, status string, version int) *sqlmock.Rows {
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	return rows.AddRow(
		id, "evt-1", "type-1", holder, status, nil, version, now, now,
		"evt-1", "Forró Night", "2024-03-22", "21:00", "Main Hall", nil, "https://instagram.com/forro", nil, now, now,
		"type-1", "evt-1", "VIP", "120.50", now,
	)
}

func TestTicketRepository_InsertDuplicateIsConflict(t *testing.T) {
	db, mock := newMock(t)
	repo := postgres.NewTicketRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO tickets")).
		WillReturnError(&pq.Error{Code: "23505", Detail: "Key (id)=(ABC123) already exists."})

	err := repo.Insert(context.Background(), &domain.Ticket{ID: "ABC123", EventID: "evt-1", TicketTypeID: "type-1", Status: domain.TicketAvailable})

	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestTicketRepository_InsertForeignKeyIsNotFound(t *testing.T) {
	db, mock := newMock(t)
	repo := postgres.NewTicketRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO tickets")).
		WillReturnError(&pq.Error{Code: "23503"})

	err := repo.Insert(context.Background(), &domain.Ticket{ID: "ABC123", EventID: "missing", Status: domain.TicketAvailable})

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestTicketRepository_InsertDriverFailureIsPersistence(t *testing.T) {
	db, mock := newMock(t)
	repo := postgres.NewTicketRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO tickets")).
		WillReturnError(errors.New("connection reset"))

	err := repo.Insert(context.Background(), &domain.Ticket{ID: "ABC123"})

	assert.ErrorIs(t, err, domain.ErrPersistence)
}

func TestTicketRepository_GetByIDJoinsEventAndType(t *testing.T) {
	db, mock := newMock(t)
	repo := postgres.NewTicketRepository(db)

	rows := ticketRow(sqlmock.NewRows(ticketRowColumns), "ABC123", "ana@example.com", "sold", 2)
	mock.ExpectQuery(regexp.QuoteMeta("WHERE t.id = $1")).WithArgs("ABC123").WillReturnRows(rows)

	ticket, err := repo.GetByID(context.Background(), "ABC123")

	require.NoError(t, err)
	assert.Equal(t, domain.TicketSold, ticket.Status)
	assert.Equal(t, 2, ticket.Version)
	require.NotNil(t, ticket.HolderEmail)
	assert.Equal(t, "ana@example.com", *ticket.HolderEmail)
	assert.Nil(t, ticket.Seat)
	require.NotNil(t, ticket.Event)
	assert.Equal(t, "Forró Night", ticket.Event.Name)
	assert.Equal(t, "2024-03-22", ticket.Event.Date)
	assert.Nil(t, ticket.Event.ImageURL)
	require.NotNil(t, ticket.Event.InstagramURL)
	require.NotNil(t, ticket.TicketType)
	assert.True(t, decimal.RequireFromString("120.50").Equal(ticket.TicketType.Price))
}

func TestTicketRepository_GetByIDMissing(t *testing.T) {
	db, mock := newMock(t)
	repo := postgres.NewTicketRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("WHERE t.id = $1")).WithArgs("NOPE00").WillReturnError(sql.ErrNoRows)

	_, err := repo.GetByID(context.Background(), "NOPE00")

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestTicketRepository_ListByHolder(t *testing.T) {
	db, mock := newMock(t)
	repo := postgres.NewTicketRepository(db)

	rows := sqlmock.NewRows(ticketRowColumns)
	ticketRow(rows, "AAA111", "ana@example.com", "sold", 1)
	ticketRow(rows, "BBB222", "ana@example.com", "used", 2)
	mock.ExpectQuery(regexp.QuoteMeta("WHERE t.user_email = $1")).WithArgs("ana@example.com").WillReturnRows(rows)

	tickets, err := repo.ListByHolder(context.Background(), "ana@example.com")

	require.NoError(t, err)
	require.Len(t, tickets, 2)
	assert.Equal(t, "AAA111", tickets[0].ID)
	assert.Equal(t, domain.TicketUsed, tickets[1].Status)
}

func TestTicketRepository_UpdateIfVersionWritesPatch(t *testing.T) {
	db, mock := newMock(t)
	repo := postgres.NewTicketRepository(db)

	status := domain.TicketSold
	email := "ana@example.com"

	mock.ExpectExec(regexp.QuoteMeta("UPDATE tickets SET version = version + 1, updated_at = NOW(), status = $1, user_email = $2 WHERE id = $3 AND version = $4")).
		WithArgs("sold", "ana@example.com", "ABC123", 3).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.UpdateIfVersion(context.Background(), "ABC123", 3, domain.TicketPatch{Status: &status, HolderEmail: &email})

	assert.NoError(t, err)
}

func TestTicketRepository_UpdateIfVersionStale(t *testing.T) {
	db, mock := newMock(t)
	repo := postgres.NewTicketRepository(db)

	status := domain.TicketUsed

	mock.ExpectExec(regexp.QuoteMeta("WHERE id = $2 AND version = $3")).
		WithArgs("used", "ABC123", 0).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.UpdateIfVersion(context.Background(), "ABC123", 0, domain.TicketPatch{Status: &status})

	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestTicketRepository_UpdateMissingRow(t *testing.T) {
	db, mock := newMock(t)
	repo := postgres.NewTicketRepository(db)

	email := "ana@example.com"

	mock.ExpectExec(regexp.QuoteMeta("UPDATE tickets SET version = version + 1, updated_at = NOW(), user_email = $1 WHERE id = $2")).
		WithArgs("ana@example.com", "NOPE00").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Update(context.Background(), "NOPE00", domain.TicketPatch{HolderEmail: &email})

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestTicketRepository_UpdateCheckViolationIsValidation(t *testing.T) {
	db, mock := newMock(t)
	repo := postgres.NewTicketRepository(db)

	status := domain.TicketStatus("lost")

	mock.ExpectExec(regexp.QuoteMeta("UPDATE tickets")).
		WillReturnError(&pq.Error{Code: "23514", Message: "violates check constraint"})

	err := repo.Update(context.Background(), "ABC123", domain.TicketPatch{Status: &status})

	assert.ErrorIs(t, err, domain.ErrValidation)
}
