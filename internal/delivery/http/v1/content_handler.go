package v1

import (
	"io"
	"net/http"

	"studio-site-backend/internal/delivery/http/response"
	"studio-site-backend/internal/domain"
	"studio-site-backend/pkg/apperror"
	"studio-site-backend/pkg/upload"

	"github.com/gin-gonic/gin"
)

type ContentHandler struct {
	contentUC domain.ContentUsecase
}

// NewContentHandler registers the content routes: public reads, admin
// mutations and the image upload endpoint.
func NewContentHandler(public *gin.RouterGroup, admin *gin.RouterGroup, uploadLimiter gin.HandlerFunc, contentUC domain.ContentUsecase) {
	handler := &ContentHandler{contentUC: contentUC}

	content := public.Group("/content")
	{
		content.GET("", handler.ListActive)
		content.GET("/:section", handler.GetBySection)
	}

	adminContent := admin.Group("/content")
	{
		adminContent.POST("", handler.Create)
		adminContent.PUT("/:id", handler.Update)
		adminContent.DELETE("/:id", handler.Delete)
		adminContent.POST("/upload", uploadLimiter, handler.UploadImage)
	}
}

type CreateContentRequest struct {
	Section    string `json:"section" binding:"required"`
	Title      string `json:"title" binding:"required"`
	Subtitle   string `json:"subtitle"`
	Content    string `json:"content" binding:"required"`
	ImageURL   string `json:"imageUrl"`
	ButtonText string `json:"buttonText"`
	ButtonLink string `json:"buttonLink"`
	Order      int    `json:"order"`
	IsActive   *bool  `json:"isActive"`
}

// ListActive returns visible content blocks in display order
func (h *ContentHandler) ListActive(c *gin.Context) {
	blocks, err := h.contentUC.ListActive(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}
	if blocks == nil {
		blocks = []domain.ContentBlock{}
	}

	response.Success(c, http.StatusOK, "Контент получен", blocks)
}

// GetBySection returns a single visible block by its section key
func (h *ContentHandler) GetBySection(c *gin.Context) {
	block, err := h.contentUC.GetBySection(c.Request.Context(), c.Param("section"))
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Контент получен", block)
}

// Create adds a new content block (admin only)
func (h *ContentHandler) Create(c *gin.Context) {
	var req CreateContentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest("Некорректные данные"))
		return
	}

	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}

	block := &domain.ContentBlock{
		Section:    req.Section,
		Title:      req.Title,
		Subtitle:   req.Subtitle,
		Content:    req.Content,
		ImageURL:   req.ImageURL,
		ButtonText: req.ButtonText,
		ButtonLink: req.ButtonLink,
		Order:      req.Order,
		IsActive:   isActive,
	}

	created, err := h.contentUC.Create(c.Request.Context(), block)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusCreated, "Контент создан", created)
}

// Update merges provided fields over an existing block (admin only)
func (h *ContentHandler) Update(c *gin.Context) {
	var upd domain.ContentUpdate
	if err := c.ShouldBindJSON(&upd); err != nil {
		c.Error(apperror.BadRequest("Некорректные данные"))
		return
	}

	block, err := h.contentUC.Update(c.Request.Context(), c.Param("id"), &upd)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Контент обновлен", block)
}

// Delete removes a block and its uploaded image (admin only)
func (h *ContentHandler) Delete(c *gin.Context) {
	if err := h.contentUC.Delete(c.Request.Context(), c.Param("id")); err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Контент удален", nil)
}

// UploadImage accepts a multipart image and returns its public URL
// (admin only)
func (h *ContentHandler) UploadImage(c *gin.Context) {
	file, err := c.FormFile("image")
	if err != nil {
		c.Error(apperror.BadRequest("Пожалуйста, загрузите файл"))
		return
	}
	if file.Size > upload.MaxFileSize {
		c.Error(apperror.BadRequest("Файл превышает лимит 5MB"))
		return
	}

	f, err := file.Open()
	if err != nil {
		c.Error(apperror.Internal(err))
		return
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, upload.MaxFileSize+1))
	if err != nil {
		c.Error(apperror.Internal(err))
		return
	}

	url, err := h.contentUC.UploadImage(c.Request.Context(), file.Filename, data)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Изображение загружено", gin.H{"imageUrl": url})
}
