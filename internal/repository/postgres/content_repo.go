package postgres

import (
	"context"
	"errors"
	"time"

	"studio-site-backend/internal/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type contentRepo struct {
	db *pgxpool.Pool
}

// NewContentRepository creates a new content repository
func NewContentRepository(db *pgxpool.Pool) domain.ContentRepository {
	return &contentRepo{db: db}
}

const contentColumns = `id, section, title, subtitle, content, image_url, button_text, button_link, "order", is_active, created_at, updated_at`

// Create inserts a new content block. The section column carries a unique
// constraint; violations surface as domain.ErrDuplicate.
func (r *contentRepo) Create(ctx context.Context, block *domain.ContentBlock) error {
	query := `
		INSERT INTO content (id, section, title, subtitle, content, image_url, button_text, button_link, "order", is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`

	now := time.Now()
	block.ID = uuid.New().String()
	block.CreatedAt = now
	block.UpdatedAt = now

	_, err := r.db.Exec(ctx, query,
		block.ID,
		block.Section,
		block.Title,
		block.Subtitle,
		block.Content,
		block.ImageURL,
		block.ButtonText,
		block.ButtonLink,
		block.Order,
		block.IsActive,
		block.CreatedAt,
		block.UpdatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return domain.ErrDuplicate
		}
		return err
	}
	return nil
}

// GetByID retrieves a content block by id
func (r *contentRepo) GetByID(ctx context.Context, id string) (*domain.ContentBlock, error) {
	query := `SELECT ` + contentColumns + ` FROM content WHERE id = $1`

	var block domain.ContentBlock
	err := r.db.QueryRow(ctx, query, id).Scan(
		&block.ID, &block.Section, &block.Title, &block.Subtitle, &block.Content,
		&block.ImageURL, &block.ButtonText, &block.ButtonLink, &block.Order,
		&block.IsActive, &block.CreatedAt, &block.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &block, nil
}

// GetBySection retrieves a content block by section key, active or not
func (r *contentRepo) GetBySection(ctx context.Context, section string) (*domain.ContentBlock, error) {
	query := `SELECT ` + contentColumns + ` FROM content WHERE section = $1`

	var block domain.ContentBlock
	err := r.db.QueryRow(ctx, query, section).Scan(
		&block.ID, &block.Section, &block.Title, &block.Subtitle, &block.Content,
		&block.ImageURL, &block.ButtonText, &block.ButtonLink, &block.Order,
		&block.IsActive, &block.CreatedAt, &block.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &block, nil
}

// ListActive retrieves active blocks sorted ascending by display order
func (r *contentRepo) ListActive(ctx context.Context) ([]domain.ContentBlock, error) {
	query := `SELECT ` + contentColumns + ` FROM content WHERE is_active = true ORDER BY "order" ASC`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var blocks []domain.ContentBlock
	for rows.Next() {
		var block domain.ContentBlock
		if err := rows.Scan(
			&block.ID, &block.Section, &block.Title, &block.Subtitle, &block.Content,
			&block.ImageURL, &block.ButtonText, &block.ButtonLink, &block.Order,
			&block.IsActive, &block.CreatedAt, &block.UpdatedAt,
		); err != nil {
			return nil, err
		}
		blocks = append(blocks, block)
	}
	return blocks, rows.Err()
}

// Update persists the full state of a content block and bumps updated_at
func (r *contentRepo) Update(ctx context.Context, block *domain.ContentBlock) error {
	query := `
		UPDATE content
		SET title = $2, subtitle = $3, content = $4, image_url = $5,
		    button_text = $6, button_link = $7, "order" = $8, is_active = $9, updated_at = $10
		WHERE id = $1`

	block.UpdatedAt = time.Now()
	result, err := r.db.Exec(ctx, query,
		block.ID,
		block.Title,
		block.Subtitle,
		block.Content,
		block.ImageURL,
		block.ButtonText,
		block.ButtonLink,
		block.Order,
		block.IsActive,
		block.UpdatedAt,
	)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete removes a content block by id
func (r *contentRepo) Delete(ctx context.Context, id string) error {
	result, err := r.db.Exec(ctx, `DELETE FROM content WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
