package handler

import (
	"net/http"

	"github.com/Astemirdum/rental-service/gateway/internal/errs"
	"github.com/Astemirdum/rental-service/gateway/internal/validation"
	"github.com/labstack/echo/v4"
)

func decodeCandidate(c echo.Context) (validation.Candidate, error) {
	cand, err := validation.DecodeCandidate(c.Request().Body)
	if err != nil {
		return nil, echo.NewHTTPError(http.StatusBadRequest, "request body must be a JSON object")
	}
	return cand, nil
}

// Login godoc
// @Summary sign in and keep the session token
// @Tags auth
// @Accept json
// @Produce json
// @Success 200 {object} model.AuthResponse
// @Router /auth/login [post]
func (h *Handler) Login(c echo.Context) error {
	cand, err := decodeCandidate(c)
	if err != nil {
		return err
	}
	cr, res := validation.ParseLogin(cand)
	if !res.IsValid {
		return h.fail(errs.NewValidationError(res.Errors))
	}
	auth, err := h.authSvc.Login(c.Request().Context(), cr)
	if err != nil {
		return h.fail(err)
	}
	return c.JSON(http.StatusOK, auth)
}

// Register godoc
// @Summary create an account and sign in
// @Tags auth
// @Router /auth/register [post]
func (h *Handler) Register(c echo.Context) error {
	cand, err := decodeCandidate(c)
	if err != nil {
		return err
	}
	reg, res := validation.ParseRegistration(cand)
	if !res.IsValid {
		return h.fail(errs.NewValidationError(res.Errors))
	}
	auth, err := h.authSvc.Register(c.Request().Context(), reg)
	if err != nil {
		return h.fail(err)
	}
	return c.JSON(http.StatusCreated, auth)
}

func (h *Handler) Logout(c echo.Context) error {
	if err := h.authSvc.Logout(c.Request().Context()); err != nil {
		return h.fail(err)
	}
	return c.NoContent(http.StatusNoContent)
}
