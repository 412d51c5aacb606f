package handler

import (
	"net/http"
	"strings"

	"github.com/Astemirdum/rental-service/gateway/internal/errs"
	"github.com/Astemirdum/rental-service/gateway/internal/filter"
	"github.com/Astemirdum/rental-service/gateway/internal/format"
	"github.com/Astemirdum/rental-service/gateway/internal/model"
	"github.com/Astemirdum/rental-service/gateway/internal/validation"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

type propertyQuery struct {
	Q        string `query:"q"`
	Category string `query:"category"`
	MinPrice string `query:"minPrice"`
	MaxPrice string `query:"maxPrice"`
	Status   string `query:"status" validate:"omitempty,oneof=PENDING_REVIEW APPROVED REJECTED"`
	Page     int    `query:"page" validate:"gte=0"`
	Limit    int    `query:"limit" validate:"gte=0,lte=100"`
}

func parseBound(s string) (decimal.NullDecimal, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.NullDecimal{}, nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.NullDecimal{}, err
	}
	return decimal.NewNullDecimal(d), nil
}

func (q propertyQuery) criteria() (filter.Criteria, error) {
	lo, err := parseBound(q.MinPrice)
	if err != nil {
		return filter.Criteria{}, echo.NewHTTPError(http.StatusBadRequest, "minPrice must be a number")
	}
	hi, err := parseBound(q.MaxPrice)
	if err != nil {
		return filter.Criteria{}, echo.NewHTTPError(http.StatusBadRequest, "maxPrice must be a number")
	}
	return filter.Criteria{
		Query:    q.Q,
		Category: q.Category,
		Price:    filter.PriceRange{Min: lo, Max: hi},
		Status:   model.PropertyStatus(q.Status),
	}, nil
}

// ListProperties godoc
// @Summary list properties narrowed by search, category, price range and status
// @Tags properties
// @Param q query string false "free text over title, address, city and state"
// @Param category query string false "property type name"
// @Param minPrice query number false "inclusive"
// @Param maxPrice query number false "inclusive"
// @Param status query string false "PENDING_REVIEW | APPROVED | REJECTED"
// @Router /properties [get]
func (h *Handler) ListProperties(c echo.Context) error {
	var q propertyQuery
	if err := (&echo.DefaultBinder{}).BindQueryParams(c, &q); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := c.Validate(q); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	crit, err := q.criteria()
	if err != nil {
		return err
	}

	ctx := c.Request().Context()
	_, signedIn := actorFrom(c)
	var (
		list      model.PropertyList
		favorites []string
	)
	gg, gctx := errgroup.WithContext(ctx)
	gg.Go(func() error {
		var err error
		list, err = h.propertySvc.ListProperties(gctx, q.Page, q.Limit)
		return err
	})
	if signedIn {
		gg.Go(func() error {
			ids, err := h.propertySvc.ListFavorites(gctx)
			if err != nil {
				// favorites only decorate the list
				h.log.Warn("list favorites", zap.Error(err))
				return nil
			}
			favorites = ids
			return nil
		})
	}
	if err := gg.Wait(); err != nil {
		return h.fail(err)
	}

	items := filter.Apply(list.Items, crit)
	if favorites != nil {
		items = filter.Favorites(items, favorites)
	}
	return c.JSON(http.StatusOK, propertyListResponse{
		Items:      newPropertyViews(items),
		Pagination: list.Pagination,
	})
}

func (h *Handler) GetProperty(c echo.Context) error {
	id := c.Param("id")
	if id == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "empty id")
	}
	p, err := h.propertySvc.GetProperty(c.Request().Context(), id)
	if err != nil {
		return h.fail(err)
	}
	return c.JSON(http.StatusOK, newPropertyView(p))
}

type listingValidationResponse struct {
	validation.FieldResult
	Listing *model.Listing `json:"listing,omitempty"`
}

// ValidateListing checks a listing draft field by field.
func (h *Handler) ValidateListing(c echo.Context) error {
	cand, err := decodeCandidate(c)
	if err != nil {
		return err
	}
	listing, res := validation.ParseListing(cand)
	out := listingValidationResponse{FieldResult: res}
	if res.IsValid {
		out.Listing = &listing
	}
	return c.JSON(http.StatusOK, out)
}

// Predict godoc
// @Summary estimate the monthly rent for a property
// @Tags predict
// @Router /predict [post]
func (h *Handler) Predict(c echo.Context) error {
	cand, err := decodeCandidate(c)
	if err != nil {
		return err
	}
	req, res := validation.ParsePrediction(cand)
	if !res.IsValid {
		return h.fail(errs.NewValidationError(res.Errors))
	}
	out, err := h.predictSvc.Predict(c.Request().Context(), req)
	if err != nil {
		return h.fail(err)
	}
	resp := predictionResponse{
		PredictionResponse: out,
		PriceDisplay:       format.Currency(out.PredictedPrice),
	}
	if out.LowerBound != nil && out.UpperBound != nil {
		resp.RangeDisplay = format.Currency(*out.LowerBound) + " - " + format.Currency(*out.UpperBound)
	}
	return c.JSON(http.StatusOK, resp)
}
