package handlers

import (
	"net/http"

	"github.com/anonto42/recipebook/backend/internal/models"
	"github.com/anonto42/recipebook/backend/internal/services"
	"github.com/labstack/echo/v4"
)

// AdminHandler serves moderation actions; the group it is registered on must
// require the admin role.
type AdminHandler struct {
	moderation *services.ModerationService
}

// NewAdminHandler creates a new AdminHandler
func NewAdminHandler(moderation *services.ModerationService) *AdminHandler {
	return &AdminHandler{moderation: moderation}
}

// RegisterAdminRoutes registers admin routes
func (h *AdminHandler) RegisterAdminRoutes(g *echo.Group) {
	g.GET("/reports", h.ListReports)
	g.POST("/reports/:id/ban", h.BanUser)
	g.POST("/reports/:id/delete-recipe", h.DeleteRecipe)
	g.GET("/verifications", h.ListVerifications)
	g.POST("/verifications/:id/approve", h.ApproveVerification)
	g.POST("/verifications/:id/reject", h.RejectVerification)
}

// ListReports filters by ?type=account|post and ?status=pending|finished
func (h *AdminHandler) ListReports(c echo.Context) error {
	status := c.QueryParam("status")
	if status == "" {
		status = models.ReportPending
	}
	reports, err := h.moderation.ListReports(c.Request().Context(), c.QueryParam("type"), status)
	if err != nil {
		return toHTTPError(err)
	}
	return success(c, http.StatusOK, echo.Map{"reports": reports})
}

func (h *AdminHandler) BanUser(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}
	finished, err := h.moderation.BanFromReport(c.Request().Context(), id)
	if err != nil {
		return toHTTPError(err)
	}
	return success(c, http.StatusOK, echo.Map{"banned": true, "reports_finished": finished})
}

func (h *AdminHandler) DeleteRecipe(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}
	finished, err := h.moderation.DeleteRecipeFromReport(c.Request().Context(), id)
	if err != nil {
		return toHTTPError(err)
	}
	return success(c, http.StatusOK, echo.Map{"deleted": true, "reports_finished": finished})
}

func (h *AdminHandler) ListVerifications(c echo.Context) error {
	status := c.QueryParam("status")
	if status == "" {
		status = models.VerificationPending
	}
	requests, err := h.moderation.ListVerifications(c.Request().Context(), status)
	if err != nil {
		return toHTTPError(err)
	}
	return success(c, http.StatusOK, echo.Map{"requests": requests})
}

func (h *AdminHandler) ApproveVerification(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}
	if err := h.moderation.ApproveVerification(c.Request().Context(), id); err != nil {
		return toHTTPError(err)
	}
	return success(c, http.StatusOK, echo.Map{"status": models.VerificationApproved})
}

func (h *AdminHandler) RejectVerification(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}
	if err := h.moderation.RejectVerification(c.Request().Context(), id); err != nil {
		return toHTTPError(err)
	}
	return success(c, http.StatusOK, echo.Map{"status": models.VerificationRejected})
}
