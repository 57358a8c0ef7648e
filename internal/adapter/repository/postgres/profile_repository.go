package postgres

import (
	"context"
	"database/sql"

	"github.com/srgjo27/event_ticketing/internal/core/domain"
)

type ProfileRepository struct {
	db *sql.DB
}

func NewProfileRepository(db *sql.DB) *ProfileRepository {
	return &ProfileRepository{db: db}
}

func (r *ProfileRepository) GetByEmail(ctx context.Context, email string) (*domain.Profile, error) {
	query := `SELECT id, email, name, profile, password_hash, created_at FROM profiles WHERE email = $1`

	profile, err := scanProfile(r.db.QueryRowContext(ctx, query, email))
	if err != nil {
		return nil, translate("get profile", err)
	}

	return profile, nil
}

// Upsert inserts the profile or refreshes the name of an existing one. The
// stored role and password hash are never overwritten by a sign-in.
func (r *ProfileRepository) Upsert(ctx context.Context, profile *domain.Profile) (*domain.Profile, error) {
	role := profile.Role
	if role == "" {
		role = domain.RoleUser
	}

	query := `
	INSERT INTO profiles (id, email, name, profile, password_hash, created_at)
	VALUES ($1, $2, $3, $4, $5, $6)
	ON CONFLICT (email) DO UPDATE SET name = EXCLUDED.name
	RETURNING id, email, name, profile, password_hash, created_at
	`

	stored, err := scanProfile(r.db.QueryRowContext(ctx, query,
		profile.ID, profile.Email, profile.Name, string(role), profile.PasswordHash, profile.CreatedAt,
	))
	if err != nil {
		return nil, translate("upsert profile", err)
	}

	return stored, nil
}

func (r *ProfileRepository) List(ctx context.Context) ([]domain.Principal, error) {
	query := `SELECT id, email, name, profile FROM profiles ORDER BY name ASC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, translate("list profiles", err)
	}

	defer rows.Close()

	var principals []domain.Principal
	for rows.Next() {
		var p domain.Principal
		var role string
		if err := rows.Scan(&p.ID, &p.Email, &p.Name, &role); err != nil {
			return nil, translate("scan profile", err)
		}

		p.Role = domain.Role(role)
		principals = append(principals, p)
	}

	return principals, translate("list profiles", rows.Err())
}

func scanProfile(row rowScanner) (*domain.Profile, error) {
	var profile domain.Profile
	var role string

	err := row.Scan(&profile.ID, &profile.Email, &profile.Name, &role, &profile.PasswordHash, &profile.CreatedAt)
	if err != nil {
		return nil, err
	}

	profile.Role = domain.Role(role)

	return &profile, nil
}
