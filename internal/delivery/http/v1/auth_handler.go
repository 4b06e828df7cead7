package v1

import (
	"net/http"

	"studio-site-backend/config"
	"studio-site-backend/internal/delivery/http/response"
	"studio-site-backend/internal/domain"
	"studio-site-backend/pkg/apperror"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	authUC domain.AuthUsecase
}

// NewAuthHandler registers the auth routes. The create-admin HTTP route is
// mounted only when explicitly enabled; the cmd/createadmin CLI is the
// default bootstrap path.
func NewAuthHandler(public *gin.RouterGroup, protected *gin.RouterGroup, admin *gin.RouterGroup, authUC domain.AuthUsecase, cfg *config.Config) {
	handler := &AuthHandler{authUC: authUC}

	publicAuth := public.Group("/auth")
	{
		publicAuth.POST("/register", handler.Register)
		publicAuth.POST("/login", handler.Login)
		if cfg.AdminBootstrapHTTP {
			publicAuth.POST("/create-admin", handler.CreateAdmin)
		}
	}

	protectedAuth := protected.Group("/auth")
	{
		protectedAuth.GET("/profile", handler.GetProfile)
		protectedAuth.PUT("/profile", handler.UpdateProfile)
	}

	adminAuth := admin.Group("/auth")
	{
		adminAuth.GET("/users", handler.ListUsers)
	}
}

type RegisterRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type UpdateProfileRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email" binding:"omitempty,email"`
	Password string `json:"password" binding:"omitempty,min=6"`
}

type CreateAdminRequest struct {
	Name      string `json:"name" binding:"required"`
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required,min=6"`
	SecretKey string `json:"secretKey" binding:"required"`
}

// Register creates a regular account and returns the identity plus token
func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest("Пожалуйста, заполните все поля"))
		return
	}

	payload, err := h.authUC.Register(c.Request.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusCreated, "Регистрация выполнена", payload)
}

// Login authenticates a user and returns the identity plus token
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest("Пожалуйста, укажите email и пароль"))
		return
	}

	payload, err := h.authUC.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Вход выполнен", payload)
}

// GetProfile returns the authenticated user's own profile
func (h *AuthHandler) GetProfile(c *gin.Context) {
	payload, err := h.authUC.GetProfile(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Профиль получен", payload)
}

// UpdateProfile applies a partial self-service update
func (h *AuthHandler) UpdateProfile(c *gin.Context) {
	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest("Некорректные данные"))
		return
	}

	payload, err := h.authUC.UpdateProfile(c.Request.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Профиль обновлен", payload)
}

// ListUsers returns all accounts (admin only)
func (h *AuthHandler) ListUsers(c *gin.Context) {
	users, err := h.authUC.ListUsers(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Пользователи получены", users)
}

// CreateAdmin bootstraps the first admin account over HTTP. Gated by the
// shared secret and refused once any user exists.
func (h *AuthHandler) CreateAdmin(c *gin.Context) {
	var req CreateAdminRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest("Некорректные данные администратора"))
		return
	}

	payload, err := h.authUC.CreateAdmin(c.Request.Context(), req.Name, req.Email, req.Password, req.SecretKey)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusCreated, "Администратор создан", payload)
}
