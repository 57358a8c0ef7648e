package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/srgjo27/event_ticketing/internal/core/domain"
)

const ticketSelect = `
	SELECT t.id, t.event_id, t.ticket_type_id, t.user_email, t.status, t.seat, t.version, t.created_at, t.updated_at,
		` + eventColumns + `,
		` + ticketTypeColumns + `
	FROM tickets t
	JOIN events e ON e.id = t.event_id
	JOIN ticket_types tt ON tt.id = t.ticket_type_id
	`

type TicketRepository struct {
	db *sql.DB
}

func NewTicketRepository(db *sql.DB) *TicketRepository {
	return &TicketRepository{db: db}
}

func (r *TicketRepository) Insert(ctx context.Context, ticket *domain.Ticket) error {
	query := `
	INSERT INTO tickets (id, event_id, ticket_type_id, user_email, status, seat, version, created_at, updated_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err := r.db.ExecContext(ctx, query,
		ticket.ID, ticket.EventID, ticket.TicketTypeID,
		nullString(ticket.HolderEmail), string(ticket.Status), nullString(ticket.Seat),
		ticket.Version, ticket.CreatedAt, ticket.UpdatedAt,
	)

	return translate("insert ticket", err)
}

func (r *TicketRepository) GetByID(ctx context.Context, ticketID string) (*domain.Ticket, error) {
	query := ticketSelect + `WHERE t.id = $1`

	ticket, err := scanTicket(r.db.QueryRowContext(ctx, query, ticketID))
	if err != nil {
		return nil, translate("get ticket", err)
	}

	return ticket, nil
}

func (r *TicketRepository) ListByEvent(ctx context.Context, eventID string) ([]domain.Ticket, error) {
	return r.list(ctx, "list tickets by event", ticketSelect+`WHERE t.event_id = $1 ORDER BY t.created_at ASC, t.id ASC`, eventID)
}

func (r *TicketRepository) ListByHolder(ctx context.Context, email string) ([]domain.Ticket, error) {
	return r.list(ctx, "list tickets by holder", ticketSelect+`WHERE t.user_email = $1 ORDER BY e.date ASC, t.id ASC`, email)
}

// Update writes the patch regardless of the stored version.
func (r *TicketRepository) Update(ctx context.Context, ticketID string, patch domain.TicketPatch) error {
	sets, args := patchAssignments(patch)
	args = append(args, ticketID)

	query := fmt.Sprintf(`UPDATE tickets SET %s WHERE id = $%d`, sets, len(args))

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return translate("update ticket", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return translate("update ticket", err)
	}
	if rowsAffected == 0 {
		return translate("update ticket", sql.ErrNoRows)
	}

	return nil
}

// UpdateIfVersion writes the patch only when the stored version still equals
// version. A missing row and a stale version both surface as a conflict.
func (r *TicketRepository) UpdateIfVersion(ctx context.Context, ticketID string, version int, patch domain.TicketPatch) error {
	sets, args := patchAssignments(patch)
	args = append(args, ticketID, version)

	query := fmt.Sprintf(`UPDATE tickets SET %s WHERE id = $%d AND version = $%d`, sets, len(args)-1, len(args))

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return translate("update ticket", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return translate("update ticket", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("%w: ticket %s was modified by another request", domain.ErrConflict, ticketID)
	}

	return nil
}

func (r *TicketRepository) list(ctx context.Context, op, query string, arg any) ([]domain.Ticket, error) {
	rows, err := r.db.QueryContext(ctx, query, arg)
	if err != nil {
		return nil, translate(op, err)
	}

	defer rows.Close()

	var tickets []domain.Ticket
	for rows.Next() {
		ticket, err := scanTicket(rows)
		if err != nil {
			return nil, translate("scan ticket", err)
		}

		tickets = append(tickets, *ticket)
	}

	return tickets, translate(op, rows.Err())
}

func patchAssignments(patch domain.TicketPatch) (string, []any) {
	sets := []string{"version = version + 1", "updated_at = NOW()"}
	var args []any

	if patch.Status != nil {
		args = append(args, string(*patch.Status))
		sets = append(sets, fmt.Sprintf("status = $%d", len(args)))
	}
	if patch.HolderEmail != nil {
		args = append(args, *patch.HolderEmail)
		sets = append(sets, fmt.Sprintf("user_email = $%d", len(args)))
	}

	return strings.Join(sets, ", "), args
}

func scanTicket(row rowScanner) (*domain.Ticket, error) {
	var ticket domain.Ticket
	var event domain.Event
	var ticketType domain.TicketType
	var holder, seat, imageURL, instagramURL, facebookURL sql.NullString
	var status string

	err := row.Scan(
		&ticket.ID,
		&ticket.EventID,
		&ticket.TicketTypeID,
		&holder,
		&status,
		&seat,
		&ticket.Version,
		&ticket.CreatedAt,
		&ticket.UpdatedAt,
		&event.ID,
		&event.Name,
		&event.Date,
		&event.Time,
		&event.Venue,
		&imageURL,
		&instagramURL,
		&facebookURL,
		&event.CreatedAt,
		&event.UpdatedAt,
		&ticketType.ID,
		&ticketType.EventID,
		&ticketType.Name,
		&ticketType.Price,
		&ticketType.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	ticket.Status = domain.TicketStatus(status)
	ticket.HolderEmail = stringPtr(holder)
	ticket.Seat = stringPtr(seat)
	event.ImageURL = stringPtr(imageURL)
	event.InstagramURL = stringPtr(instagramURL)
	event.FacebookURL = stringPtr(facebookURL)
	ticket.Event = &event
	ticket.TicketType = &ticketType

	return &ticket, nil
}
