package generation

import (
	"context"
	"errors"
	"net/http"

	"github.com/2beens/fitcoach/internal/plan"
	"github.com/2beens/fitcoach/internal/profile"
	"github.com/2beens/fitcoach/internal/telemetry/tracing"
	"github.com/2beens/fitcoach/pkg"

	log "github.com/sirupsen/logrus"
)

const (
	msgInvalidProfile = "Invalid user data provided"
	msgParseFailure   = "Failed to parse AI response. Please try again."
	msgInvalidPlan    = "AI returned an incomplete plan. Please try again."
	msgGenericFailure = "Failed to generate plan. Please check your API key and try again."
)

//go:generate mockgen -source=handler.go -destination=handler_mock_test.go -package=generation_test
type planGenerator interface {
	Generate(ctx context.Context, p profile.Profile) (*plan.GeneratedPlan, error)
}

type Handler struct {
	generator planGenerator
	validator *profile.Validator
}

func NewHandler(generator planGenerator, validator *profile.Validator) *Handler {
	return &Handler{
		generator: generator,
		validator: validator,
	}
}

func (h *Handler) HandleGeneratePlan(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.generation.generateplan")
	defer span.End()

	p, err := h.validator.Decode(r.Body)
	if err != nil {
		writeValidationError(w, err)
		return
	}

	generated, err := h.generator.Generate(ctx, p)
	if err != nil {
		span.RecordError(err)
		var verr *profile.ValidationError
		switch {
		case errors.As(err, &verr):
			writeValidationError(w, err)
		case errors.Is(err, ErrParse):
			pkg.WriteJSONError(w, msgParseFailure, http.StatusInternalServerError)
		case errors.Is(err, ErrInvalidPlan):
			pkg.WriteJSONError(w, msgInvalidPlan, http.StatusInternalServerError)
		default:
			log.Errorf("generate plan for [%s]: %s", p.Name, err)
			pkg.WriteJSONError(w, providerMessage(err), http.StatusInternalServerError)
		}
		return
	}

	pkg.WriteJSON(w, generated, http.StatusOK)
}

func writeValidationError(w http.ResponseWriter, err error) {
	var verr *profile.ValidationError
	if !errors.As(err, &verr) {
		pkg.WriteJSONError(w, msgInvalidProfile, http.StatusBadRequest)
		return
	}
	pkg.WriteJSON(w, pkg.ErrorBody{
		Error:   msgInvalidProfile,
		Details: verr.Fields,
	}, http.StatusBadRequest)
}

// providerMessage surfaces what the provider said, when it said anything.
func providerMessage(err error) string {
	var perr *ProviderError
	if errors.As(err, &perr) {
		return perr.Error()
	}
	if errors.Is(err, ErrNotConfigured) {
		return err.Error()
	}
	return msgGenericFailure
}
