package v1

import (
	"net/http"

	"studio-site-backend/internal/delivery/http/response"
	"studio-site-backend/internal/domain"
	"studio-site-backend/pkg/apperror"

	"github.com/gin-gonic/gin"
)

type ApplicationHandler struct {
	applicationUC domain.ApplicationUsecase
}

// NewApplicationHandler registers the application routes: public
// submission plus the admin review endpoints.
func NewApplicationHandler(public *gin.RouterGroup, admin *gin.RouterGroup, applicationUC domain.ApplicationUsecase) {
	handler := &ApplicationHandler{applicationUC: applicationUC}

	public.POST("/applications", handler.Submit)

	adminApps := admin.Group("/applications")
	{
		adminApps.GET("", handler.List)
		adminApps.GET("/:id", handler.Get)
		adminApps.PUT("/:id", handler.UpdateStatus)
		adminApps.DELETE("/:id", handler.Delete)
	}
}

// SubmitApplicationRequest carries a public job application. Field
// presence is validated in the usecase so failures come back with
// user-facing messages.
type SubmitApplicationRequest struct {
	Name       string `json:"name"`
	Email      string `json:"email"`
	Phone      string `json:"phone"`
	Role       string `json:"role"`
	OtherRole  string `json:"otherRole"`
	Experience string `json:"experience"`
	Portfolio  string `json:"portfolio"`
	Message    string `json:"message"`
}

// Submit accepts a public job application
func (h *ApplicationHandler) Submit(c *gin.Context) {
	var req SubmitApplicationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest("Некорректные данные"))
		return
	}

	app := &domain.Application{
		Name:       req.Name,
		Email:      req.Email,
		Phone:      req.Phone,
		Role:       req.Role,
		OtherRole:  req.OtherRole,
		Experience: req.Experience,
		Portfolio:  req.Portfolio,
		Message:    req.Message,
	}

	summary, err := h.applicationUC.Submit(c.Request.Context(), app)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusCreated, "Заявка успешно отправлена", gin.H{"application": summary})
}

// List returns all applications, newest first (admin only)
func (h *ApplicationHandler) List(c *gin.Context) {
	apps, err := h.applicationUC.List(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}
	if apps == nil {
		apps = []domain.Application{}
	}

	response.Success(c, http.StatusOK, "Заявки получены", apps)
}

// Get returns a single application (admin only)
func (h *ApplicationHandler) Get(c *gin.Context) {
	app, err := h.applicationUC.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Заявка получена", app)
}

// UpdateStatus applies a partial status/notes update (admin only)
func (h *ApplicationHandler) UpdateStatus(c *gin.Context) {
	var upd domain.ApplicationStatusUpdate
	if err := c.ShouldBindJSON(&upd); err != nil {
		c.Error(apperror.BadRequest("Некорректные данные"))
		return
	}

	app, err := h.applicationUC.UpdateStatus(c.Request.Context(), c.Param("id"), &upd)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Заявка обновлена", app)
}

// Delete removes an application (admin only)
func (h *ApplicationHandler) Delete(c *gin.Context) {
	if err := h.applicationUC.Delete(c.Request.Context(), c.Param("id")); err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Заявка удалена", nil)
}
