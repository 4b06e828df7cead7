package client_test

import (
	"context"
	"net/http/httptest"
	"testing"
	"time"

	"studio-site-backend/config"
	v1 "studio-site-backend/internal/delivery/http/v1"
	"studio-site-backend/internal/domain"
	"studio-site-backend/internal/repository/memory"
	"studio-site-backend/internal/usecase"
	"studio-site-backend/pkg/client"
	"studio-site-backend/pkg/token"
	"studio-site-backend/pkg/upload"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// startAPI spins up the real router over httptest and returns a connected
// client with an admin session.
func startAPI(t *testing.T) *client.Client {
	t.Helper()

	cfg := &config.Config{
		Env:                      "test",
		FrontendURL:              "http://localhost:3000",
		JWTSecret:                "test-secret",
		JWTExpiresDays:           1,
		AdminSecretKey:           "bootstrap-secret",
		RateLimitWindowSeconds:   60,
		RateLimitGlobalThreshold: 1000,
		RateLimitAuthThreshold:   1000,
		RateLimitUploadThreshold: 1000,
	}

	storage, err := upload.NewStorage(t.TempDir())
	require.NoError(t, err)

	tokens := token.NewManager(cfg.JWTSecret, 24*time.Hour)
	authUC := usecase.NewAuthUsecase(memory.NewUserRepository(), tokens, cfg.AdminSecretKey)
	contentUC := usecase.NewContentUsecase(memory.NewContentRepository(), storage)
	applicationUC := usecase.NewApplicationUsecase(memory.NewApplicationRepository(), validator.New(), nil)

	router := v1.NewRouter(v1.RouterDeps{
		AuthUC:        authUC,
		ContentUC:     contentUC,
		ApplicationUC: applicationUC,
		Tokens:        tokens,
		UploadDir:     storage.Dir(),
		Config:        cfg,
	})

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)

	admin, err := authUC.CreateAdmin(context.Background(), "Admin", "admin@studio.dev", "secret123", cfg.AdminSecretKey)
	require.NoError(t, err)

	api := client.New(srv.URL)
	api.SetToken(admin.Token)
	return api
}

func TestClientErrors(t *testing.T) {
	api := startAPI(t)
	ctx := context.Background()

	t.Run("Should surface the server message on failure", func(t *testing.T) {
		_, err := api.GetContentBySection(ctx, "hero")
		require.Error(t, err)

		apiErr, ok := err.(*client.APIError)
		require.True(t, ok)
		assert.Equal(t, 404, apiErr.Status)
		assert.Equal(t, "Контент не найден", apiErr.Message)
	})

	t.Run("Should remember the token from login", func(t *testing.T) {
		api.ClearToken()
		_, err := api.ListApplications(ctx)
		require.Error(t, err)

		_, err = api.Login(ctx, "admin@studio.dev", "secret123")
		require.NoError(t, err)
		_, err = api.ListApplications(ctx)
		assert.NoError(t, err)
	})
}

func TestContentSliceLifecycle(t *testing.T) {
	api := startAPI(t)
	ctx := context.Background()
	content := client.NewContentSlice(api)

	// create without an explicit isActive flag: the server default (active)
	// must apply, so the block shows up on the public listing right away
	err := content.Create(ctx, &client.ContentCreate{
		Section: domain.SectionHero,
		Title:   "Привет",
		Content: "<p>Мы делаем игры</p>",
	})
	require.NoError(t, err)
	require.Len(t, content.Blocks(), 1)
	assert.True(t, content.Blocks()[0].IsActive)
	assert.True(t, content.Status().IsSuccess)

	public, err := api.ListContent(ctx)
	require.NoError(t, err)
	require.Len(t, public, 1)

	id := content.Blocks()[0].ID

	// update in place
	title := "Здравствуйте"
	err = content.Update(ctx, id, &domain.ContentUpdate{Title: &title})
	require.NoError(t, err)
	require.Len(t, content.Blocks(), 1)
	assert.Equal(t, "Здравствуйте", content.Blocks()[0].Title)

	// rejected mutation sets the error state with the server message
	err = content.Create(ctx, &client.ContentCreate{
		Section: domain.SectionHero,
		Title:   "Дубль",
		Content: "<p>x</p>",
	})
	require.Error(t, err)
	st := content.Status()
	assert.True(t, st.IsError)
	assert.Equal(t, "Секция уже существует", st.Message)
	assert.Len(t, content.Blocks(), 1) // data untouched

	// Reset clears flags but not data
	content.Reset()
	st = content.Status()
	assert.False(t, st.IsError)
	assert.Empty(t, st.Message)
	assert.Len(t, content.Blocks(), 1)

	// fetch replaces the list with the server state
	err = content.Fetch(ctx)
	require.NoError(t, err)
	require.Len(t, content.Blocks(), 1)

	// delete removes by id
	err = content.Delete(ctx, id)
	require.NoError(t, err)
	assert.Empty(t, content.Blocks())
}

func TestContentCreateInactive(t *testing.T) {
	api := startAPI(t)
	ctx := context.Background()

	// an explicit false still wins over the server default
	inactive := false
	block, err := api.CreateContent(ctx, &client.ContentCreate{
		Section:  domain.SectionFooter,
		Title:    "Подвал",
		Content:  "<p>x</p>",
		IsActive: &inactive,
	})
	require.NoError(t, err)
	assert.False(t, block.IsActive)

	public, err := api.ListContent(ctx)
	require.NoError(t, err)
	assert.Empty(t, public)
}

func TestApplicationSliceLifecycle(t *testing.T) {
	api := startAPI(t)
	ctx := context.Background()
	apps := client.NewApplicationSlice(api)

	summary, err := apps.Submit(ctx, &domain.Application{
		Name:       "A",
		Email:      "a@b.com",
		Phone:      "123",
		Role:       "Программист",
		Experience: "5 years",
	})
	require.NoError(t, err)
	assert.Equal(t, domain.ApplicationStatusNew, summary.Status)

	require.NoError(t, apps.Fetch(ctx))
	require.Len(t, apps.Applications(), 1)

	accepted := domain.ApplicationStatusAccepted
	err = apps.UpdateStatus(ctx, summary.ID, &domain.ApplicationStatusUpdate{Status: &accepted})
	require.NoError(t, err)
	assert.Equal(t, accepted, apps.Applications()[0].Status)

	require.NoError(t, apps.Delete(ctx, summary.ID))
	assert.Empty(t, apps.Applications())
}

func TestAuthSlice(t *testing.T) {
	api := startAPI(t)
	ctx := context.Background()
	api.ClearToken()
	auth := client.NewAuthSlice(api)

	t.Run("Should set the error state on a failed login", func(t *testing.T) {
		err := auth.Login(ctx, "nobody@studio.dev", "wrong")
		require.Error(t, err)
		st := auth.Status()
		assert.True(t, st.IsError)
		assert.Equal(t, "Неверный email или пароль", st.Message)
		assert.Nil(t, auth.User())
	})

	t.Run("Should hold the user after registration", func(t *testing.T) {
		err := auth.Register(ctx, "Ivan", "ivan@studio.dev", "secret123")
		require.NoError(t, err)
		require.NotNil(t, auth.User())
		assert.Equal(t, "Ivan", auth.User().Name)
		assert.True(t, auth.Status().IsSuccess)

		// the client token works against protected routes now
		profile, err := api.GetProfile(ctx)
		require.NoError(t, err)
		assert.Equal(t, "ivan@studio.dev", profile.Email)
	})

	t.Run("Should drop the session on logout", func(t *testing.T) {
		auth.Logout()
		assert.Nil(t, auth.User())
		_, err := api.GetProfile(ctx)
		assert.Error(t, err)
	})
}
