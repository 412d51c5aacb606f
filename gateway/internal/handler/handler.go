package handler

import (
	"errors"
	"net/http"

	"github.com/Astemirdum/rental-service/gateway/internal/errs"
	"github.com/Astemirdum/rental-service/gateway/internal/tokenstore"
	"github.com/Astemirdum/rental-service/gateway/internal/validation"
	md "github.com/Astemirdum/rental-service/pkg/middleware"
	"github.com/Astemirdum/rental-service/pkg/validate"
	_ "github.com/Astemirdum/rental-service/swagger"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.uber.org/zap"
)

type Services struct {
	Auth       AuthService
	Properties PropertyService
	Bookings   BookingService
	Predict    PredictService
	Sessions   tokenstore.Store
}

type Handler struct {
	authSvc     AuthService
	propertySvc PropertyService
	bookingSvc  BookingService
	predictSvc  PredictService
	sessions    tokenstore.Store
	log         *zap.Logger
}

func New(log *zap.Logger, svc Services) *Handler {
	return &Handler{
		authSvc:     svc.Auth,
		propertySvc: svc.Properties,
		bookingSvc:  svc.Bookings,
		predictSvc:  svc.Predict,
		sessions:    svc.Sessions,
		log:         log,
	}
}

// @title Rental gateway API
// @version 1.0
// @BasePath /api/v1
func (h *Handler) NewRouter() *echo.Echo {
	e := echo.New()
	const (
		baseRPS = 10
		apiRPS  = 100
	)
	e.Use(md.Recover())
	e.Use(md.CORS())

	base := e.Group("", md.NewRateLimiter(baseRPS))
	base.GET("/manage/health", h.Health)
	base.GET("/swagger/*", echoSwagger.WrapHandler)

	e.Validator = validate.NewCustomValidator(validation.RegisterTags)

	api := e.Group("/api/v1",
		middleware.RequestLoggerWithConfig(md.RequestLoggerConfig(h.log)),
		middleware.RequestID(),
		md.NewRateLimiter(apiRPS),
		h.session,
	)
	api.POST("/auth/login", h.Login)
	api.POST("/auth/register", h.Register)
	api.POST("/auth/logout", h.Logout)

	api.GET("/properties", h.ListProperties)
	api.GET("/properties/:id", h.GetProperty)
	api.POST("/listings/validate", h.ValidateListing)
	api.POST("/predict", h.Predict)

	private := api.Group("", requireActor)
	private.GET("/bookings", h.ListBookings)
	private.GET("/bookings/:id", h.GetBooking)
	private.POST("/bookings", h.CreateBooking)
	private.POST("/bookings/:id/approve", h.ApproveBooking)
	private.POST("/bookings/:id/reject", h.RejectBooking)
	private.POST("/bookings/:id/cancel", h.CancelBooking)
	private.GET("/dashboard", h.Dashboard)

	return e
}

func (h *Handler) Health(c echo.Context) error {
	return c.String(http.StatusOK, "OK")
}

// fail turns a service error into the HTTP error the client sees.
func (h *Handler) fail(err error) error {
	var verr *errs.ValidationError
	if errors.As(err, &verr) {
		return echo.NewHTTPError(http.StatusBadRequest, echo.Map{"code": verr.Code, "errors": verr.Errors})
	}
	status := errs.HTTPStatus(err)
	if status >= http.StatusInternalServerError {
		h.log.Error("request failed", zap.Int("status", status), zap.Error(err))
	}
	return echo.NewHTTPError(status, errs.Message(err))
}
