package validations

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"apacheck-backend/internal/documents"
	"apacheck-backend/internal/shared/server/middleware"
	"apacheck-backend/internal/shared/server/respond"
)

// Handler wires HTTP handlers to the service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches validation routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/validations", h.run)
	rg.POST("/validations/upload", h.runUpload)
	rg.GET("/validations", h.list)
	rg.GET("/validations/:id", h.get)
}

type runRequest struct {
	DocumentID string `json:"documentId"`
}

func (h *Handler) run(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	var req runRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}
	req.DocumentID = strings.TrimSpace(req.DocumentID)
	if req.DocumentID == "" {
		respond.Error(c, http.StatusBadRequest, "validation_error", "documentId is required", nil)
		return
	}

	v, err := h.Svc.Run(c.Request.Context(), userID, req.DocumentID)
	if err != nil {
		h.respondRunError(c, err)
		return
	}

	c.Set("validationId", v.ID)
	respond.JSON(c, http.StatusCreated, v)
}

func (h *Handler) runUpload(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, documents.MaxUploadBytes)

	fileHeader, err := c.FormFile("file")
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "file is required", nil)
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "unable to read file", nil)
		return
	}
	defer file.Close()

	v, err := h.Svc.RunUpload(c.Request.Context(), userID, fileHeader.Filename, file)
	if err != nil {
		h.respondRunError(c, err)
		return
	}

	c.Set("validationId", v.ID)
	respond.JSON(c, http.StatusCreated, v)
}

func (h *Handler) get(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	v, err := h.Svc.Get(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "validation not found", nil)
		case errors.Is(err, ErrInvalidInput):
			respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to fetch validation", nil)
		}
		return
	}

	respond.JSON(c, http.StatusOK, v)
}

func (h *Handler) list(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	limit := 20
	if v := c.Query("limit"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			limit = parsed
		}
	}

	items, err := h.Svc.List(c.Request.Context(), userID, strings.TrimSpace(c.Query("documentId")), limit)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to list validations", nil)
		return
	}

	respond.JSON(c, http.StatusOK, items)
}

func (h *Handler) respondRunError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, documents.ErrNotFound):
		respond.Error(c, http.StatusNotFound, "not_found", "document not found", nil)
	case errors.Is(err, ErrInvalidInput), errors.Is(err, documents.ErrInvalidInput):
		respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
	default:
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to run validation", nil)
	}
}
