package postgres

import (
	"context"
	"database/sql"

	"github.com/srgjo27/event_ticketing/internal/core/domain"
)

const eventColumns = `e.id, e.name, to_char(e.date, 'YYYY-MM-DD'), e.time, e.venue, e.image_url, e.instagram_url, e.facebook_url, e.created_at, e.updated_at`

type rowScanner interface {
	Scan(dest ...any) error
}

type EventRepository struct {
	db *sql.DB
}

func NewEventRepository(db *sql.DB) *EventRepository {
	return &EventRepository{db: db}
}

func (r *EventRepository) Create(ctx context.Context, event *domain.Event) error {
	query := `
	INSERT INTO events (id, name, date, time, venue, image_url, instagram_url, facebook_url, created_at, updated_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	_, err := r.db.ExecContext(ctx, query,
		event.ID, event.Name, event.Date, event.Time, event.Venue,
		nullString(event.ImageURL), nullString(event.InstagramURL), nullString(event.FacebookURL),
		event.CreatedAt, event.UpdatedAt,
	)

	return translate("insert event", err)
}

func (r *EventRepository) Update(ctx context.Context, event *domain.Event) error {
	query := `
	UPDATE events
	SET name = $1, date = $2, time = $3, venue = $4,
		image_url = $5, instagram_url = $6, facebook_url = $7, updated_at = $8
	WHERE id = $9
	`

	result, err := r.db.ExecContext(ctx, query,
		event.Name, event.Date, event.Time, event.Venue,
		nullString(event.ImageURL), nullString(event.InstagramURL), nullString(event.FacebookURL),
		event.UpdatedAt, event.ID,
	)
	if err != nil {
		return translate("update event", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return translate("update event", err)
	}
	if rowsAffected == 0 {
		return translate("update event", sql.ErrNoRows)
	}

	return nil
}

func (r *EventRepository) GetByID(ctx context.Context, eventID string) (*domain.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events e WHERE e.id = $1`

	event, err := scanEvent(r.db.QueryRowContext(ctx, query, eventID))
	if err != nil {
		return nil, translate("get event", err)
	}

	return event, nil
}

func (r *EventRepository) List(ctx context.Context) ([]domain.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events e ORDER BY e.date ASC, e.time ASC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, translate("list events", err)
	}

	defer rows.Close()

	var events []domain.Event
	for rows.Next() {
		event, err := scanEvent(rows)
		if err != nil {
			return nil, translate("scan event", err)
		}

		events = append(events, *event)
	}

	return events, translate("list events", rows.Err())
}

func scanEvent(row rowScanner) (*domain.Event, error) {
	var event domain.Event
	var imageURL, instagramURL, facebookURL sql.NullString

	err := row.Scan(
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
	)
	if err != nil {
		return nil, err
	}

	event.ImageURL = stringPtr(imageURL)
	event.InstagramURL = stringPtr(instagramURL)
	event.FacebookURL = stringPtr(facebookURL)

	return &event, nil
}
