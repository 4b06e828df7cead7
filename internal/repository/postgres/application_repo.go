package postgres

import (
	"context"
	"errors"
	"time"

	"studio-site-backend/internal/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type applicationRepo struct {
	db *pgxpool.Pool
}

// NewApplicationRepository creates a new application repository
func NewApplicationRepository(db *pgxpool.Pool) domain.ApplicationRepository {
	return &applicationRepo{db: db}
}

const applicationColumns = `id, name, email, phone, role, other_role, experience, portfolio, message, status, admin_notes, created_at, updated_at`

// Create inserts a new application
func (r *applicationRepo) Create(ctx context.Context, app *domain.Application) error {
	query := `
		INSERT INTO applications (id, name, email, phone, role, other_role, experience, portfolio, message, status, admin_notes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`

	now := time.Now()
	app.ID = uuid.New().String()
	app.CreatedAt = now
	app.UpdatedAt = now
	if app.Status == "" {
		app.Status = domain.ApplicationStatusNew
	}

	_, err := r.db.Exec(ctx, query,
		app.ID,
		app.Name,
		app.Email,
		app.Phone,
		app.Role,
		app.OtherRole,
		app.Experience,
		app.Portfolio,
		app.Message,
		app.Status,
		app.AdminNotes,
		app.CreatedAt,
		app.UpdatedAt,
	)
	return err
}

// GetByID retrieves an application by id
func (r *applicationRepo) GetByID(ctx context.Context, id string) (*domain.Application, error) {
	query := `SELECT ` + applicationColumns + ` FROM applications WHERE id = $1`

	var app domain.Application
	err := r.db.QueryRow(ctx, query, id).Scan(
		&app.ID, &app.Name, &app.Email, &app.Phone, &app.Role, &app.OtherRole,
		&app.Experience, &app.Portfolio, &app.Message, &app.Status, &app.AdminNotes,
		&app.CreatedAt, &app.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &app, nil
}

// List retrieves all applications, newest first
func (r *applicationRepo) List(ctx context.Context) ([]domain.Application, error) {
	query := `SELECT ` + applicationColumns + ` FROM applications ORDER BY created_at DESC`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var applications []domain.Application
	for rows.Next() {
		var app domain.Application
		if err := rows.Scan(
			&app.ID, &app.Name, &app.Email, &app.Phone, &app.Role, &app.OtherRole,
			&app.Experience, &app.Portfolio, &app.Message, &app.Status, &app.AdminNotes,
			&app.CreatedAt, &app.UpdatedAt,
		); err != nil {
			return nil, err
		}
		applications = append(applications, app)
	}
	return applications, rows.Err()
}

// Update persists status/adminNotes changes and bumps updated_at
func (r *applicationRepo) Update(ctx context.Context, app *domain.Application) error {
	query := `UPDATE applications SET status = $2, admin_notes = $3, updated_at = $4 WHERE id = $1`

	app.UpdatedAt = time.Now()
	result, err := r.db.Exec(ctx, query, app.ID, app.Status, app.AdminNotes, app.UpdatedAt)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete removes an application by id
func (r *applicationRepo) Delete(ctx context.Context, id string) error {
	result, err := r.db.Exec(ctx, `DELETE FROM applications WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
