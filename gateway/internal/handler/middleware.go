package handler

import (
	"errors"
	"net/http"

	"github.com/Astemirdum/rental-service/gateway/internal/errs"
	"github.com/Astemirdum/rental-service/gateway/internal/model"
	"github.com/Astemirdum/rental-service/gateway/internal/tokenstore"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

const actorKey = "actor"

// session attaches the signed-in user, if any, to the request context.
func (h *Handler) session(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		token, err := h.sessions.Get(c.Request().Context())
		switch {
		case errors.Is(err, tokenstore.ErrNoToken):
			return next(c)
		case err != nil:
			h.log.Error("session store", zap.Error(err))
			return echo.NewHTTPError(http.StatusInternalServerError, "session store unavailable")
		}
		actor, err := tokenstore.ParseClaims(token)
		if err != nil {
			h.log.Warn("stored token unreadable", zap.Error(err))
			return next(c)
		}
		c.Set(actorKey, actor)
		return next(c)
	}
}

func requireActor(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if _, ok := actorFrom(c); !ok {
			return echo.NewHTTPError(http.StatusUnauthorized, errs.DefaultMessage(http.StatusUnauthorized))
		}
		return next(c)
	}
}

func actorFrom(c echo.Context) (model.Actor, bool) {
	actor, ok := c.Get(actorKey).(model.Actor)
	return actor, ok
}
