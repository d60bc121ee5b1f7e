package handlers

import (
	"net/http"

	"github.com/anonto42/recipebook/backend/internal/models"
	"github.com/anonto42/recipebook/backend/internal/services"
	"github.com/labstack/echo/v4"
)

// CommentHandler handles HTTP requests related to comments
type CommentHandler struct {
	comments *services.CommentService
}

// NewCommentHandler creates a new CommentHandler
func NewCommentHandler(comments *services.CommentService) *CommentHandler {
	return &CommentHandler{comments: comments}
}

// RegisterCommentRoutes registers comment-related routes
func (h *CommentHandler) RegisterCommentRoutes(g *echo.Group) {
	g.POST("/recipes/:id/comments", h.CreateComment)
	g.GET("/recipes/:id/comments", h.GetComments)
	g.PUT("/recipes/:id/comments/:comment_id", h.UpdateComment)
	g.DELETE("/recipes/:id/comments/:comment_id", h.DeleteComment)
}

// CreateComment adds a comment to a recipe
func (h *CommentHandler) CreateComment(c echo.Context) error {
	var req models.CreateCommentRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	comment, err := h.comments.Add(c.Request().Context(), getUserIDFromContext(c), c.Param("id"), req.Text)
	if err != nil {
		return toHTTPError(err)
	}
	return success(c, http.StatusCreated, comment)
}

func (h *CommentHandler) GetComments(c echo.Context) error {
	comments, err := h.comments.List(c.Request().Context(), c.Param("id"))
	if err != nil {
		return toHTTPError(err)
	}
	return success(c, http.StatusOK, echo.Map{"comments": comments})
}

// UpdateComment edits a comment; only its author may do so
func (h *CommentHandler) UpdateComment(c echo.Context) error {
	var req models.UpdateCommentRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	err := h.comments.Edit(c.Request().Context(), getUserIDFromContext(c), c.Param("id"), c.Param("comment_id"), req.Text)
	if err != nil {
		return toHTTPError(err)
	}
	return success(c, http.StatusOK, echo.Map{"id": c.Param("comment_id"), "text": req.Text})
}

// DeleteComment removes a comment; its author or the recipe owner may do so
func (h *CommentHandler) DeleteComment(c echo.Context) error {
	err := h.comments.Delete(c.Request().Context(), getUserIDFromContext(c), c.Param("id"), c.Param("comment_id"))
	if err != nil {
		return toHTTPError(err)
	}
	return c.NoContent(http.StatusNoContent)
}
