package usecase

import (
	"context"
	"errors"

	"studio-site-backend/internal/domain"
	"studio-site-backend/pkg/apperror"
	"studio-site-backend/pkg/email"
	"studio-site-backend/pkg/logger"
	"studio-site-backend/pkg/sanitize"

	"github.com/go-playground/validator/v10"
)

type applicationUsecase struct {
	applicationRepo domain.ApplicationRepository
	validate        *validator.Validate
	notifier        *email.Service
}

// NewApplicationUsecase creates a new application usecase. The notifier is
// optional: when it is nil or unconfigured, submissions simply skip the
// email notification.
func NewApplicationUsecase(appRepo domain.ApplicationRepository, validate *validator.Validate, notifier *email.Service) domain.ApplicationUsecase {
	return &applicationUsecase{
		applicationRepo: appRepo,
		validate:        validate,
		notifier:        notifier,
	}
}

// Submit validates, sanitizes and persists a public job application.
// Status is always forced to "Новая" regardless of the payload.
func (uc *applicationUsecase) Submit(ctx context.Context, app *domain.Application) (*domain.ApplicationSummary, error) {
	if app.Name == "" || app.Email == "" || app.Phone == "" || app.Role == "" || app.Experience == "" {
		return nil, apperror.BadRequest("Пожалуйста, заполните все обязательные поля")
	}
	if err := uc.validate.Var(app.Email, "required,email"); err != nil {
		return nil, apperror.BadRequest("Пожалуйста, укажите корректный email")
	}
	if !domain.ValidRoles[app.Role] {
		return nil, apperror.BadRequest("Пожалуйста, укажите желаемую роль")
	}
	if app.Role == domain.RoleOther && app.OtherRole == "" {
		return nil, apperror.BadRequest("Пожалуйста, укажите вашу роль")
	}

	app.Experience = sanitize.Strict(app.Experience)
	app.Message = sanitize.Strict(app.Message)
	app.Status = domain.ApplicationStatusNew
	app.AdminNotes = ""

	if err := uc.applicationRepo.Create(ctx, app); err != nil {
		return nil, apperror.Internal(err)
	}

	uc.notifyAsync(app)

	return &domain.ApplicationSummary{
		ID:     app.ID,
		Name:   app.Name,
		Email:  app.Email,
		Status: app.Status,
	}, nil
}

// List returns all applications, newest first
func (uc *applicationUsecase) List(ctx context.Context) ([]domain.Application, error) {
	apps, err := uc.applicationRepo.List(ctx)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return apps, nil
}

// Get returns a single application
func (uc *applicationUsecase) Get(ctx context.Context, id string) (*domain.Application, error) {
	app, err := uc.applicationRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.NotFound("Заявка не найдена")
		}
		return nil, apperror.Internal(err)
	}
	return app, nil
}

// UpdateStatus applies a partial admin update. Repeating the same status
// is a no-op on the stored value, so the call is idempotent.
func (uc *applicationUsecase) UpdateStatus(ctx context.Context, id string, upd *domain.ApplicationStatusUpdate) (*domain.Application, error) {
	app, err := uc.applicationRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.NotFound("Заявка не найдена")
		}
		return nil, apperror.Internal(err)
	}

	if upd.Status != nil {
		if !domain.ValidStatuses[*upd.Status] {
			return nil, apperror.BadRequest("Недопустимый статус")
		}
		app.Status = *upd.Status
	}
	if upd.AdminNotes != nil {
		app.AdminNotes = sanitize.Strict(*upd.AdminNotes)
	}

	if err := uc.applicationRepo.Update(ctx, app); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.NotFound("Заявка не найдена")
		}
		return nil, apperror.Internal(err)
	}
	return app, nil
}

// Delete removes an application
func (uc *applicationUsecase) Delete(ctx context.Context, id string) error {
	if err := uc.applicationRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return apperror.NotFound("Заявка не найдена")
		}
		return apperror.Internal(err)
	}
	return nil
}

// notifyAsync fires the studio-inbox notification without blocking the
// submission response. Failures are logged and swallowed.
func (uc *applicationUsecase) notifyAsync(app *domain.Application) {
	if uc.notifier == nil || !uc.notifier.IsConfigured() {
		return
	}

	role := app.Role
	if app.Role == domain.RoleOther && app.OtherRole != "" {
		role = app.OtherRole
	}
	data := email.ApplicationEmailData{
		Name:  app.Name,
		Email: app.Email,
		Phone: app.Phone,
		Role:  role,
	}

	go func() {
		if err := uc.notifier.SendApplicationNotification(data); err != nil {
			logger.Log.Warn("Failed to send application notification", "error", err)
		}
	}()
}
