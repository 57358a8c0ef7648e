package postgres

import (
	"context"
	"database/sql"

	"github.com/srgjo27/event_ticketing/internal/core/domain"
)

const ticketTypeColumns = `tt.id, tt.event_id, tt.name, tt.price, tt.created_at`

type TicketTypeRepository struct {
	db *sql.DB
}

func NewTicketTypeRepository(db *sql.DB) *TicketTypeRepository {
	return &TicketTypeRepository{db: db}
}

func (r *TicketTypeRepository) Create(ctx context.Context, ticketType *domain.TicketType) error {
	query := `
	INSERT INTO ticket_types (id, event_id, name, price, created_at)
	VALUES ($1, $2, $3, $4, $5)
	`

	_, err := r.db.ExecContext(ctx, query, ticketType.ID, ticketType.EventID, ticketType.Name, ticketType.Price, ticketType.CreatedAt)

	return translate("insert ticket type", err)
}

func (r *TicketTypeRepository) GetByID(ctx context.Context, ticketTypeID string) (*domain.TicketType, error) {
	query := `SELECT ` + ticketTypeColumns + ` FROM ticket_types tt WHERE tt.id = $1`

	var tt domain.TicketType
	err := r.db.QueryRowContext(ctx, query, ticketTypeID).Scan(&tt.ID, &tt.EventID, &tt.Name, &tt.Price, &tt.CreatedAt)
	if err != nil {
		return nil, translate("get ticket type", err)
	}

	return &tt, nil
}

func (r *TicketTypeRepository) ListByEvent(ctx context.Context, eventID string) ([]domain.TicketType, error) {
	query := `SELECT ` + ticketTypeColumns + ` FROM ticket_types tt WHERE tt.event_id = $1 ORDER BY tt.price ASC`

	rows, err := r.db.QueryContext(ctx, query, eventID)
	if err != nil {
		return nil, translate("list ticket types", err)
	}

	defer rows.Close()

	var types []domain.TicketType
	for rows.Next() {
		var tt domain.TicketType
		if err := rows.Scan(&tt.ID, &tt.EventID, &tt.Name, &tt.Price, &tt.CreatedAt); err != nil {
			return nil, translate("scan ticket type", err)
		}

		types = append(types, tt)
	}

	return types, translate("list ticket types", rows.Err())
}
