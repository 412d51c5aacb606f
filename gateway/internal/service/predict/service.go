package predict

import (
	"context"
	"fmt"
	"math"

	"github.com/Astemirdum/rental-service/gateway/config"
	"github.com/Astemirdum/rental-service/gateway/internal/errs"
	"github.com/Astemirdum/rental-service/gateway/internal/model"
	"github.com/Astemirdum/rental-service/gateway/internal/validation"
	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

type Service struct {
	log    *zap.Logger
	client *resty.Client
}

func NewService(log *zap.Logger, cfg config.Config) *Service {
	client := resty.New().
		SetBaseURL(cfg.PredictAPI.BaseURL).
		SetTimeout(cfg.PredictAPI.Timeout).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json")
	return &Service{
		log:    log.Named("predict"),
		client: client,
	}
}

func (s *Service) Predict(ctx context.Context, req model.PredictionRequest) (model.PredictionResponse, error) {
	if res := validation.ValidatePrediction(req); !res.IsValid {
		return model.PredictionResponse{}, errs.NewValidationError(res.Errors)
	}

	var out model.PredictionResponse
	resp, err := s.client.R().
		SetContext(ctx).
		SetBody(req).
		SetResult(&out).
		Post("/predict")
	if apiErr := errs.Classify(resp, err); apiErr != nil {
		s.log.Error("predict call failed", zap.Int("status", apiErr.Status), zap.Error(apiErr))
		return model.PredictionResponse{}, apiErr
	}
	if err = checkResponse(out); err != nil {
		return model.PredictionResponse{}, &errs.APIError{
			Status:  errs.StatusUnknown,
			Code:    errs.CodeUnknown,
			Message: "The price prediction service returned an invalid result.",
			Err:     err,
		}
	}
	s.log.Debug("predicted", zap.Float64("price", out.PredictedPrice), zap.String("location", req.Location))
	return out, nil
}

func checkResponse(r model.PredictionResponse) error {
	if math.IsNaN(r.PredictedPrice) || math.IsInf(r.PredictedPrice, 0) || r.PredictedPrice <= 0 {
		return fmt.Errorf("predicted price %v", r.PredictedPrice)
	}
	if r.LowerBound != nil && r.UpperBound != nil && *r.LowerBound > *r.UpperBound {
		return fmt.Errorf("bounds %v > %v", *r.LowerBound, *r.UpperBound)
	}
	return nil
}
