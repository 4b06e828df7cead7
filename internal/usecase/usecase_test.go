package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"studio-site-backend/internal/domain"
	"studio-site-backend/internal/repository/memory"
	"studio-site-backend/internal/usecase"
	"studio-site-backend/pkg/apperror"
	"studio-site-backend/pkg/token"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// Mock image storage
type MockStorage struct {
	mock.Mock
}

func (m *MockStorage) Save(filename string, data []byte) (string, error) {
	args := m.Called(filename, data)
	return args.String(0), args.Error(1)
}

func (m *MockStorage) Remove(publicURL string) error {
	return m.Called(publicURL).Error(0)
}

func newContentUC(t *testing.T) (domain.ContentUsecase, *memory.ContentRepository, *MockStorage) {
	t.Helper()
	repo := memory.NewContentRepository()
	storage := new(MockStorage)
	return usecase.NewContentUsecase(repo, storage), repo, storage
}

func validBlock(section string) *domain.ContentBlock {
	return &domain.ContentBlock{
		Section:  section,
		Title:    "Заголовок",
		Content:  "<p>Текст</p>",
		IsActive: true,
	}
}

func TestContentSectionUniqueness(t *testing.T) {
	ctx := context.Background()

	t.Run("Should reject a second block for an existing section", func(t *testing.T) {
		uc, _, _ := newContentUC(t)
		first, err := uc.Create(ctx, validBlock(domain.SectionHero))
		assert.NoError(t, err)

		dup := validBlock(domain.SectionHero)
		dup.Title = "Другой заголовок"
		_, err = uc.Create(ctx, dup)
		assert.Error(t, err)

		var appErr *apperror.AppError
		assert.True(t, errors.As(err, &appErr))
		assert.Equal(t, 409, appErr.Code)

		// original record untouched
		stored, err := uc.GetBySection(ctx, domain.SectionHero)
		assert.NoError(t, err)
		assert.Equal(t, first.Title, stored.Title)
	})

	t.Run("Should reject even when the existing block is inactive", func(t *testing.T) {
		uc, _, _ := newContentUC(t)
		inactive := validBlock(domain.SectionAbout)
		inactive.IsActive = false
		_, err := uc.Create(ctx, inactive)
		assert.NoError(t, err)

		_, err = uc.Create(ctx, validBlock(domain.SectionAbout))
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "Секция уже существует")
	})

	t.Run("Should reject an unknown section", func(t *testing.T) {
		uc, _, _ := newContentUC(t)
		_, err := uc.Create(ctx, validBlock("sidebar"))
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "Недопустимая секция")
	})
}

func TestContentSanitization(t *testing.T) {
	ctx := context.Background()
	uc, _, _ := newContentUC(t)

	t.Run("Should strip disallowed tags and keep allowed ones", func(t *testing.T) {
		block := validBlock(domain.SectionFeatures)
		block.Content = `<p>Наши <strong>фичи</strong><script>alert(1)</script><img src="x.jpg"></p>`

		created, err := uc.Create(ctx, block)
		assert.NoError(t, err)
		assert.NotContains(t, created.Content, "<script>")
		assert.NotContains(t, created.Content, "alert(1)")
		assert.Contains(t, created.Content, "<strong>")
		assert.Contains(t, created.Content, "x.jpg")

		// round-trip: the stored value is the sanitized one
		stored, err := uc.GetBySection(ctx, domain.SectionFeatures)
		assert.NoError(t, err)
		assert.Equal(t, created.Content, stored.Content)
	})

	t.Run("Should strip markup from the title entirely", func(t *testing.T) {
		block := validBlock(domain.SectionTeam)
		block.Title = `Команда<script>alert(1)</script>`
		created, err := uc.Create(ctx, block)
		assert.NoError(t, err)
		assert.Equal(t, "Команда", created.Title)
	})

	t.Run("Should re-sanitize replaced content on update", func(t *testing.T) {
		created, err := uc.Create(ctx, validBlock(domain.SectionContact))
		assert.NoError(t, err)

		evil := `<p>Пишите нам<script>steal()</script></p>`
		updated, err := uc.Update(ctx, created.ID, &domain.ContentUpdate{Content: &evil})
		assert.NoError(t, err)
		assert.NotContains(t, updated.Content, "script")
		assert.Contains(t, updated.Content, "Пишите нам")
	})
}

func TestContentVisibility(t *testing.T) {
	ctx := context.Background()
	uc, _, _ := newContentUC(t)

	t.Run("Should hide inactive blocks from the public section read", func(t *testing.T) {
		block := validBlock(domain.SectionFooter)
		block.IsActive = false
		_, err := uc.Create(ctx, block)
		assert.NoError(t, err)

		_, err = uc.GetBySection(ctx, domain.SectionFooter)
		assert.Error(t, err)
		var appErr *apperror.AppError
		assert.True(t, errors.As(err, &appErr))
		assert.Equal(t, 404, appErr.Code)
	})

	t.Run("Should list only active blocks sorted by order", func(t *testing.T) {
		second := validBlock(domain.SectionAbout)
		second.Order = 2
		_, err := uc.Create(ctx, second)
		assert.NoError(t, err)

		first := validBlock(domain.SectionHero)
		first.Order = 1
		_, err = uc.Create(ctx, first)
		assert.NoError(t, err)

		blocks, err := uc.ListActive(ctx)
		assert.NoError(t, err)
		assert.Len(t, blocks, 2) // footer is inactive
		assert.Equal(t, domain.SectionHero, blocks[0].Section)
		assert.Equal(t, domain.SectionAbout, blocks[1].Section)
	})
}

func TestContentDelete(t *testing.T) {
	ctx := context.Background()

	t.Run("Should remove the stored image best-effort", func(t *testing.T) {
		uc, _, storage := newContentUC(t)
		block := validBlock(domain.SectionHero)
		block.ImageURL = "/uploads/image-1.png"
		created, err := uc.Create(ctx, block)
		assert.NoError(t, err)

		storage.On("Remove", "/uploads/image-1.png").Return(errors.New("gone already"))
		err = uc.Delete(ctx, created.ID)
		assert.NoError(t, err) // file removal failure never fails the delete
		storage.AssertExpectations(t)

		_, err = uc.GetBySection(ctx, domain.SectionHero)
		assert.Error(t, err)
	})

	t.Run("Should 404 on a missing id", func(t *testing.T) {
		uc, _, _ := newContentUC(t)
		err := uc.Delete(ctx, "missing")
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "Контент не найден")
	})
}

func TestContentUploadValidation(t *testing.T) {
	ctx := context.Background()
	uc, _, storage := newContentUC(t)

	t.Run("Should reject an empty upload", func(t *testing.T) {
		_, err := uc.UploadImage(ctx, "logo.png", nil)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "Пожалуйста, загрузите файл")
	})

	t.Run("Should reject a disallowed extension", func(t *testing.T) {
		_, err := uc.UploadImage(ctx, "evil.svg", []byte("<svg/>"))
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "Только изображения")
	})

	t.Run("Should reject spoofed content", func(t *testing.T) {
		_, err := uc.UploadImage(ctx, "fake.png", []byte("definitely not a png"))
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "Только изображения")
	})

	t.Run("Should store a valid image and return its URL", func(t *testing.T) {
		data := []byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A, 0x00}
		storage.On("Save", "logo.png", data).Return("/uploads/image-1-logo.png", nil)

		url, err := uc.UploadImage(ctx, "logo.png", data)
		assert.NoError(t, err)
		assert.Equal(t, "/uploads/image-1-logo.png", url)
		storage.AssertExpectations(t)
	})
}

func newApplicationUC() (domain.ApplicationUsecase, *memory.ApplicationRepository) {
	repo := memory.NewApplicationRepository()
	return usecase.NewApplicationUsecase(repo, validator.New(), nil), repo
}

func validApplication() *domain.Application {
	return &domain.Application{
		Name:       "A",
		Email:      "a@b.com",
		Phone:      "123",
		Role:       "Программист",
		Experience: "5 years",
	}
}

func TestApplicationSubmit(t *testing.T) {
	ctx := context.Background()

	t.Run("Should reject when a required field is missing and persist nothing", func(t *testing.T) {
		uc, repo := newApplicationUC()
		for _, mutate := range []func(*domain.Application){
			func(a *domain.Application) { a.Name = "" },
			func(a *domain.Application) { a.Email = "" },
			func(a *domain.Application) { a.Phone = "" },
			func(a *domain.Application) { a.Role = "" },
			func(a *domain.Application) { a.Experience = "" },
		} {
			app := validApplication()
			mutate(app)
			_, err := uc.Submit(ctx, app)
			assert.Error(t, err)
			assert.Contains(t, err.Error(), "обязательные поля")
		}

		apps, err := repo.List(ctx)
		assert.NoError(t, err)
		assert.Empty(t, apps)
	})

	t.Run("Should reject a malformed email", func(t *testing.T) {
		uc, _ := newApplicationUC()
		app := validApplication()
		app.Email = "not-an-email"
		_, err := uc.Submit(ctx, app)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "корректный email")
	})

	t.Run("Should reject an unknown role", func(t *testing.T) {
		uc, _ := newApplicationUC()
		app := validApplication()
		app.Role = "Космонавт"
		_, err := uc.Submit(ctx, app)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "желаемую роль")
	})

	t.Run("Should require otherRole when role is Другое", func(t *testing.T) {
		uc, _ := newApplicationUC()
		app := validApplication()
		app.Role = domain.RoleOther
		app.OtherRole = ""
		_, err := uc.Submit(ctx, app)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "укажите вашу роль")
	})

	t.Run("Should force status to Новая and drop client admin notes", func(t *testing.T) {
		uc, _ := newApplicationUC()
		app := validApplication()
		app.Status = domain.ApplicationStatusAccepted
		app.AdminNotes = "self-approved"

		summary, err := uc.Submit(ctx, app)
		assert.NoError(t, err)
		assert.Equal(t, domain.ApplicationStatusNew, summary.Status)

		stored, err := uc.Get(ctx, summary.ID)
		assert.NoError(t, err)
		assert.Equal(t, domain.ApplicationStatusNew, stored.Status)
		assert.Empty(t, stored.AdminNotes)
	})

	t.Run("Should sanitize free-text fields", func(t *testing.T) {
		uc, _ := newApplicationUC()
		app := validApplication()
		app.Experience = `10 лет<script>alert(1)</script>`
		app.Message = `Привет<img src=x onerror=alert(1)>`

		summary, err := uc.Submit(ctx, app)
		assert.NoError(t, err)

		stored, err := uc.Get(ctx, summary.ID)
		assert.NoError(t, err)
		assert.NotContains(t, stored.Experience, "script")
		assert.NotContains(t, stored.Message, "onerror")
	})
}

func TestApplicationStatusUpdate(t *testing.T) {
	ctx := context.Background()

	t.Run("Should be idempotent for a repeated status", func(t *testing.T) {
		uc, _ := newApplicationUC()
		summary, err := uc.Submit(ctx, validApplication())
		assert.NoError(t, err)

		reviewed := domain.ApplicationStatusReviewed
		first, err := uc.UpdateStatus(ctx, summary.ID, &domain.ApplicationStatusUpdate{Status: &reviewed})
		assert.NoError(t, err)
		second, err := uc.UpdateStatus(ctx, summary.ID, &domain.ApplicationStatusUpdate{Status: &reviewed})
		assert.NoError(t, err)
		assert.Equal(t, first.Status, second.Status)
		assert.Equal(t, domain.ApplicationStatusReviewed, second.Status)
	})

	t.Run("Should reject an invalid status", func(t *testing.T) {
		uc, _ := newApplicationUC()
		summary, err := uc.Submit(ctx, validApplication())
		assert.NoError(t, err)

		bad := "В работе"
		_, err = uc.UpdateStatus(ctx, summary.ID, &domain.ApplicationStatusUpdate{Status: &bad})
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "Недопустимый статус")
	})

	t.Run("Should sanitize admin notes", func(t *testing.T) {
		uc, _ := newApplicationUC()
		summary, err := uc.Submit(ctx, validApplication())
		assert.NoError(t, err)

		notes := `созвон в пятницу<script>alert(1)</script>`
		app, err := uc.UpdateStatus(ctx, summary.ID, &domain.ApplicationStatusUpdate{AdminNotes: &notes})
		assert.NoError(t, err)
		assert.Equal(t, "созвон в пятницу", app.AdminNotes)
	})

	t.Run("Should 404 on a missing application", func(t *testing.T) {
		uc, _ := newApplicationUC()
		reviewed := domain.ApplicationStatusReviewed
		_, err := uc.UpdateStatus(ctx, "missing", &domain.ApplicationStatusUpdate{Status: &reviewed})
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "Заявка не найдена")
	})
}

func newAuthUC(adminSecret string) (domain.AuthUsecase, *memory.UserRepository) {
	repo := memory.NewUserRepository()
	tokens := token.NewManager("test-secret", time.Hour)
	return usecase.NewAuthUsecase(repo, tokens, adminSecret), repo
}

func TestAuthRegisterLogin(t *testing.T) {
	ctx := context.Background()

	t.Run("Should register and issue a token", func(t *testing.T) {
		uc, _ := newAuthUC("")
		payload, err := uc.Register(ctx, "Ivan", "ivan@studio.dev", "secret123")
		assert.NoError(t, err)
		assert.NotEmpty(t, payload.Token)
		assert.False(t, payload.IsAdmin)
	})

	t.Run("Should reject short passwords", func(t *testing.T) {
		uc, _ := newAuthUC("")
		_, err := uc.Register(ctx, "Ivan", "ivan@studio.dev", "123")
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "минимум 6 символов")
	})

	t.Run("Should conflict on a duplicate email", func(t *testing.T) {
		uc, _ := newAuthUC("")
		_, err := uc.Register(ctx, "Ivan", "ivan@studio.dev", "secret123")
		assert.NoError(t, err)
		_, err = uc.Register(ctx, "Ivan2", "ivan@studio.dev", "secret456")
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "Пользователь уже существует")
	})

	t.Run("Should return the same message for unknown email and wrong password", func(t *testing.T) {
		uc, _ := newAuthUC("")
		_, err := uc.Register(ctx, "Ivan", "ivan@studio.dev", "secret123")
		assert.NoError(t, err)

		_, errUnknown := uc.Login(ctx, "nobody@studio.dev", "secret123")
		_, errWrongPass := uc.Login(ctx, "ivan@studio.dev", "wrong-pass")
		assert.Error(t, errUnknown)
		assert.Error(t, errWrongPass)
		assert.Equal(t, errUnknown.Error(), errWrongPass.Error())
	})

	t.Run("Should fail safe when the context carries no identity", func(t *testing.T) {
		uc, _ := newAuthUC("")
		_, err := uc.GetProfile(context.Background())
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "Требуется авторизация")
	})
}

func TestAdminBootstrap(t *testing.T) {
	ctx := context.Background()

	t.Run("Should refuse a wrong secret", func(t *testing.T) {
		uc, _ := newAuthUC("real-secret")
		_, err := uc.CreateAdmin(ctx, "Boss", "boss@studio.dev", "secret123", "guess")
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "Неверный секретный ключ")
	})

	t.Run("Should refuse when no secret is configured", func(t *testing.T) {
		uc, _ := newAuthUC("")
		_, err := uc.CreateAdmin(ctx, "Boss", "boss@studio.dev", "secret123", "")
		assert.Error(t, err)
	})

	t.Run("Should create the first admin and close the window afterwards", func(t *testing.T) {
		uc, _ := newAuthUC("real-secret")
		payload, err := uc.CreateAdmin(ctx, "Boss", "boss@studio.dev", "secret123", "real-secret")
		assert.NoError(t, err)
		assert.True(t, payload.IsAdmin)

		_, err = uc.CreateAdmin(ctx, "Boss2", "boss2@studio.dev", "secret123", "real-secret")
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "Администратор уже создан")
	})

	t.Run("Should refuse once any regular user exists", func(t *testing.T) {
		uc, _ := newAuthUC("real-secret")
		_, err := uc.Register(ctx, "Ivan", "ivan@studio.dev", "secret123")
		assert.NoError(t, err)

		_, err = uc.CreateAdmin(ctx, "Boss", "boss@studio.dev", "secret123", "real-secret")
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "Администратор уже создан")
	})
}
