package domain

import (
	"context"
	"time"
)

// Application status values. User-facing, stored as-is; any status may
// transition to any other, the admin is fully trusted.
const (
	ApplicationStatusNew      = "Новая"
	ApplicationStatusReviewed = "Рассмотрена"
	ApplicationStatusAccepted = "Принята"
	ApplicationStatusRejected = "Отклонена"
)

// ValidStatuses enumerates the allowed application status values.
var ValidStatuses = map[string]bool{
	ApplicationStatusNew:      true,
	ApplicationStatusReviewed: true,
	ApplicationStatusAccepted: true,
	ApplicationStatusRejected: true,
}

// RoleOther requires the applicant to spell out the role in OtherRole.
const RoleOther = "Другое"

// ValidRoles enumerates the positions an applicant may apply for.
var ValidRoles = map[string]bool{
	"Программист":   true,
	"Дизайнер":      true,
	"Художник":      true,
	"3D-моделлер":   true,
	"Геймдизайнер":  true,
	"Звукорежиссер": true,
	"Композитор":    true,
	"Сценарист":     true,
	"Маркетолог":    true,
	RoleOther:       true,
}

// Application is a job-application submission from a prospective team member.
type Application struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	Phone      string    `json:"phone"`
	Role       string    `json:"role"`
	OtherRole  string    `json:"otherRole,omitempty"`
	Experience string    `json:"experience"`
	Portfolio  string    `json:"portfolio,omitempty"`
	Message    string    `json:"message,omitempty"`
	Status     string    `json:"status"`
	AdminNotes string    `json:"adminNotes,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// ApplicationSummary is the minimal echo returned to the public submitter.
type ApplicationSummary struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Status string `json:"status"`
}

// ApplicationStatusUpdate carries a partial admin update: nil fields are
// left unchanged.
type ApplicationStatusUpdate struct {
	Status     *string `json:"status"`
	AdminNotes *string `json:"adminNotes"`
}

type ApplicationRepository interface {
	Create(ctx context.Context, app *Application) error
	GetByID(ctx context.Context, id string) (*Application, error)
	// List returns all applications, newest first.
	List(ctx context.Context) ([]Application, error)
	Update(ctx context.Context, app *Application) error
	Delete(ctx context.Context, id string) error
}

type ApplicationUsecase interface {
	Submit(ctx context.Context, app *Application) (*ApplicationSummary, error)
	List(ctx context.Context) ([]Application, error)
	Get(ctx context.Context, id string) (*Application, error)
	UpdateStatus(ctx context.Context, id string, upd *ApplicationStatusUpdate) (*Application, error)
	Delete(ctx context.Context, id string) error
}
