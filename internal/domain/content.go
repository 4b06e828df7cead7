package domain

import (
	"context"
	"time"
)

// Content sections form a closed set. A section holds at most one block:
// repeated "features" items live inside the single features block's rich
// text rather than as separate rows.
const (
	SectionHero     = "hero"
	SectionAbout    = "about"
	SectionFeatures = "features"
	SectionTeam     = "team"
	SectionContact  = "contact"
	SectionFooter   = "footer"
)

// ValidSections enumerates the allowed content section keys.
var ValidSections = map[string]bool{
	SectionHero:     true,
	SectionAbout:    true,
	SectionFeatures: true,
	SectionTeam:     true,
	SectionContact:  true,
	SectionFooter:   true,
}

// ContentBlock is a named, orderable unit of page copy/media managed by
// admins and rendered on the public site.
type ContentBlock struct {
	ID         string    `json:"id"`
	Section    string    `json:"section"`
	Title      string    `json:"title"`
	Subtitle   string    `json:"subtitle,omitempty"`
	Content    string    `json:"content"`
	ImageURL   string    `json:"imageUrl,omitempty"`
	ButtonText string    `json:"buttonText,omitempty"`
	ButtonLink string    `json:"buttonLink,omitempty"`
	Order      int       `json:"order"`
	IsActive   bool      `json:"isActive"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// ContentUpdate carries a partial update: nil fields are left unchanged.
type ContentUpdate struct {
	Title      *string `json:"title"`
	Subtitle   *string `json:"subtitle"`
	Content    *string `json:"content"`
	ImageURL   *string `json:"imageUrl"`
	ButtonText *string `json:"buttonText"`
	ButtonLink *string `json:"buttonLink"`
	Order      *int    `json:"order"`
	IsActive   *bool   `json:"isActive"`
}

type ContentRepository interface {
	Create(ctx context.Context, block *ContentBlock) error
	GetByID(ctx context.Context, id string) (*ContentBlock, error)
	// GetBySection looks up a block by section key regardless of is_active.
	GetBySection(ctx context.Context, section string) (*ContentBlock, error)
	// ListActive returns is_active blocks sorted ascending by display order.
	ListActive(ctx context.Context) ([]ContentBlock, error)
	Update(ctx context.Context, block *ContentBlock) error
	Delete(ctx context.Context, id string) error
}

type ContentUsecase interface {
	ListActive(ctx context.Context) ([]ContentBlock, error)
	GetBySection(ctx context.Context, section string) (*ContentBlock, error)
	Create(ctx context.Context, block *ContentBlock) (*ContentBlock, error)
	Update(ctx context.Context, id string, upd *ContentUpdate) (*ContentBlock, error)
	Delete(ctx context.Context, id string) error
	UploadImage(ctx context.Context, filename string, data []byte) (string, error)
}
