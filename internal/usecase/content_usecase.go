package usecase

import (
	"context"
	"errors"

	"studio-site-backend/internal/domain"
	"studio-site-backend/pkg/apperror"
	"studio-site-backend/pkg/logger"
	"studio-site-backend/pkg/sanitize"
	"studio-site-backend/pkg/upload"
)

// ImageStorage is the slice of pkg/upload the content usecase needs:
// storing a validated image and removing the file behind a public URL.
type ImageStorage interface {
	Save(filename string, data []byte) (string, error)
	Remove(publicURL string) error
}

type contentUsecase struct {
	contentRepo domain.ContentRepository
	storage     ImageStorage
}

// NewContentUsecase creates a new content usecase
func NewContentUsecase(contentRepo domain.ContentRepository, storage ImageStorage) domain.ContentUsecase {
	return &contentUsecase{
		contentRepo: contentRepo,
		storage:     storage,
	}
}

// ListActive returns visible blocks in display order
func (uc *contentUsecase) ListActive(ctx context.Context) ([]domain.ContentBlock, error) {
	blocks, err := uc.contentRepo.ListActive(ctx)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return blocks, nil
}

// GetBySection returns a single visible block. Inactive blocks are hidden
// from the public read path.
func (uc *contentUsecase) GetBySection(ctx context.Context, section string) (*domain.ContentBlock, error) {
	block, err := uc.contentRepo.GetBySection(ctx, section)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.NotFound("Контент не найден")
		}
		return nil, apperror.Internal(err)
	}
	if !block.IsActive {
		return nil, apperror.NotFound("Контент не найден")
	}
	return block, nil
}

// Create sanitizes and persists a new content block. A section holds at
// most one block, active or not.
func (uc *contentUsecase) Create(ctx context.Context, block *domain.ContentBlock) (*domain.ContentBlock, error) {
	if !domain.ValidSections[block.Section] {
		return nil, apperror.BadRequest("Недопустимая секция")
	}
	if block.Title == "" || block.Content == "" {
		return nil, apperror.BadRequest("Некорректные данные")
	}

	block.Title = sanitize.Strict(block.Title)
	block.Subtitle = sanitize.Strict(block.Subtitle)
	block.Content = sanitize.Rich(block.Content)

	if err := uc.contentRepo.Create(ctx, block); err != nil {
		if errors.Is(err, domain.ErrDuplicate) {
			return nil, apperror.Conflict("Секция уже существует")
		}
		return nil, apperror.Internal(err)
	}
	return block, nil
}

// Update merges the provided fields over the stored block, re-sanitizing
// any replaced rich-text fields
func (uc *contentUsecase) Update(ctx context.Context, id string, upd *domain.ContentUpdate) (*domain.ContentBlock, error) {
	block, err := uc.contentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.NotFound("Контент не найден")
		}
		return nil, apperror.Internal(err)
	}

	if upd.Title != nil {
		block.Title = sanitize.Strict(*upd.Title)
	}
	if upd.Subtitle != nil {
		block.Subtitle = sanitize.Strict(*upd.Subtitle)
	}
	if upd.Content != nil {
		block.Content = sanitize.Rich(*upd.Content)
	}
	if upd.ImageURL != nil {
		block.ImageURL = *upd.ImageURL
	}
	if upd.ButtonText != nil {
		block.ButtonText = *upd.ButtonText
	}
	if upd.ButtonLink != nil {
		block.ButtonLink = *upd.ButtonLink
	}
	if upd.Order != nil {
		block.Order = *upd.Order
	}
	if upd.IsActive != nil {
		block.IsActive = *upd.IsActive
	}

	if err := uc.contentRepo.Update(ctx, block); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.NotFound("Контент не найден")
		}
		return nil, apperror.Internal(err)
	}
	return block, nil
}

// Delete removes a block and, best-effort, the uploaded image behind it.
// A failed file removal never fails the delete.
func (uc *contentUsecase) Delete(ctx context.Context, id string) error {
	block, err := uc.contentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return apperror.NotFound("Контент не найден")
		}
		return apperror.Internal(err)
	}

	if err := uc.contentRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return apperror.NotFound("Контент не найден")
		}
		return apperror.Internal(err)
	}

	if block.ImageURL != "" {
		if err := uc.storage.Remove(block.ImageURL); err != nil {
			logger.Log.Warn("Failed to remove content image", "url", block.ImageURL, "error", err)
		}
	}
	return nil
}

// UploadImage validates and stores an admin-uploaded image, returning its
// public URL
func (uc *contentUsecase) UploadImage(ctx context.Context, filename string, data []byte) (string, error) {
	if len(data) == 0 {
		return "", apperror.BadRequest("Пожалуйста, загрузите файл")
	}

	result := upload.ValidateImage(filename, data)
	if !result.Valid {
		return "", apperror.BadRequest("Только изображения: " + result.Error)
	}

	url, err := uc.storage.Save(filename, data)
	if err != nil {
		return "", apperror.Internal(err)
	}
	return url, nil
}
