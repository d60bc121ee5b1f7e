// Package validators plugs go-playground/validator into echo.
package validators

import (
	"net/http"

	"github.com/anonto42/recipebook/backend/internal/models"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

// CustomValidator implements echo.Validator
type CustomValidator struct {
	validator *validator.Validate
}

// NewValidator returns a validator with the recipe tags registered
func NewValidator() *CustomValidator {
	v := validator.New()
	_ = v.RegisterValidation("category", validateCategory)
	return &CustomValidator{validator: v}
}

func (cv *CustomValidator) Validate(i interface{}) error {
	if err := cv.validator.Struct(i); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return nil
}

func validateCategory(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	for _, c := range models.Categories {
		if c == value {
			return true
		}
	}
	return false
}
