package generation

import (
	"context"
	"errors"
	"time"

	"github.com/2beens/fitcoach/internal/plan"
	"github.com/2beens/fitcoach/internal/profile"
	"github.com/2beens/fitcoach/internal/telemetry/metrics"
	"github.com/2beens/fitcoach/internal/telemetry/tracing"

	log "github.com/sirupsen/logrus"
)

type textGenerator interface {
	GenerateText(ctx context.Context, prompt string) (string, error)
}

// Service runs the whole pipeline: validate, prompt, generate, normalize.
type Service struct {
	validator *profile.Validator
	generator textGenerator
	metrics   *metrics.Manager
	now       func() time.Time
}

func NewService(
	validator *profile.Validator,
	generator textGenerator,
	metricsManager *metrics.Manager,
) *Service {
	return &Service{
		validator: validator,
		generator: generator,
		metrics:   metricsManager,
		now:       time.Now,
	}
}

func (s *Service) Generate(ctx context.Context, p profile.Profile) (_ *plan.GeneratedPlan, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.generation.generate")
	defer tracing.EndSpan(span, &err)

	if err := s.validator.Validate(p); err != nil {
		return nil, err
	}

	started := s.now()
	raw, err := s.generator.GenerateText(ctx, BuildPrompt(p))
	if s.metrics != nil {
		s.metrics.HistGenerationDuration.Observe(time.Since(started).Seconds())
	}
	if err != nil {
		return nil, err
	}

	generated, err := Normalize(raw, p, s.now())
	if err != nil {
		reason := "shape"
		if errors.Is(err, ErrParse) {
			reason = "json"
		}
		log.Errorf("normalize model output (%s): %s", reason, err)
		if s.metrics != nil {
			s.metrics.CounterPlanParseFailures.WithLabelValues(reason).Inc()
		}
		return nil, err
	}

	if s.metrics != nil {
		s.metrics.CounterPlansGenerated.Inc()
	}
	log.Debugf("generated plan for [%s]: %s", p.Name, plan.Summary(generated))
	return generated, nil
}
