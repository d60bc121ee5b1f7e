package handlers

import (
	"net/http"

	"github.com/anonto42/recipebook/backend/internal/models"
	"github.com/anonto42/recipebook/backend/internal/services"
	"github.com/labstack/echo/v4"
)

// ReportHandler lets users report accounts and recipes and request verification
type ReportHandler struct {
	moderation *services.ModerationService
}

// NewReportHandler creates a new ReportHandler
func NewReportHandler(moderation *services.ModerationService) *ReportHandler {
	return &ReportHandler{moderation: moderation}
}

// RegisterReportRoutes registers report and verification routes
func (h *ReportHandler) RegisterReportRoutes(g *echo.Group) {
	g.POST("/reports/account", h.ReportAccount)
	g.POST("/reports/post", h.ReportPost)
	g.POST("/verification", h.RequestVerification)
}

func (h *ReportHandler) ReportAccount(c echo.Context) error {
	var req models.ReportAccountRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	report, err := h.moderation.ReportAccount(c.Request().Context(), getUserIDFromContext(c), req)
	if err != nil {
		return toHTTPError(err)
	}
	return success(c, http.StatusCreated, report)
}

func (h *ReportHandler) ReportPost(c echo.Context) error {
	var req models.ReportPostRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	report, err := h.moderation.ReportPost(c.Request().Context(), getUserIDFromContext(c), req)
	if err != nil {
		return toHTTPError(err)
	}
	return success(c, http.StatusCreated, report)
}

// RequestVerification takes a multipart form with "id_front" and "id_back" images
func (h *ReportHandler) RequestVerification(c echo.Context) error {
	var req models.CreateVerificationRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	front, frontCloser, err := formFile(c, "id_front")
	if err != nil {
		return err
	}
	defer frontCloser.Close()
	back, backCloser, err := formFile(c, "id_back")
	if err != nil {
		return err
	}
	defer backCloser.Close()

	request, err := h.moderation.SubmitVerification(c.Request().Context(), getUserIDFromContext(c), req, front, back)
	if err != nil {
		return toHTTPError(err)
	}
	return success(c, http.StatusCreated, request)
}
