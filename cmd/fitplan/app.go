package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/2beens/fitcoach/internal/config"
	"github.com/2beens/fitcoach/internal/db"
	"github.com/2beens/fitcoach/internal/export"
	"github.com/2beens/fitcoach/internal/generation"
	"github.com/2beens/fitcoach/internal/illustration"
	"github.com/2beens/fitcoach/internal/plan"
	"github.com/2beens/fitcoach/internal/planstore"
	"github.com/2beens/fitcoach/internal/profile"
	"github.com/2beens/fitcoach/internal/speech"
	"github.com/2beens/fitcoach/internal/telemetry/metrics"
	"github.com/2beens/fitcoach/pkg"

	"github.com/jackc/pgx/v5/pgxpool"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

type planGenerator interface {
	Generate(ctx context.Context, p profile.Profile) (*plan.GeneratedPlan, error)
}

type synthesizer interface {
	Synthesize(ctx context.Context, text, voiceID string) (*speech.Audio, error)
}

type illustrator interface {
	Illustrate(ctx context.Context, subject string, category illustration.Category) (*illustration.Image, error)
}

type modelLister interface {
	ListModels(ctx context.Context) ([]string, error)
}

// app holds everything a command may need. Collaborators that are not
// configured stay nil and the commands using them fail with a clear message.
type app struct {
	out       io.Writer
	validator *profile.Validator
	store     *planstore.Store
	generator planGenerator
	synth     synthesizer
	illus     illustrator
	models    modelLister
	exporter  *export.Exporter

	closers []func()
}

func newApp(ctx context.Context, cfg *config.Config, secrets *config.Secrets, out io.Writer) (*app, error) {
	a := &app{
		out:       out,
		validator: profile.NewValidator(),
		exporter:  export.NewExporter(),
	}

	if err := ensureDir(filepath.Dir(cfg.LocalStorePath)); err != nil {
		return nil, err
	}
	local, err := planstore.OpenSQLiteKV(cfg.LocalStorePath)
	if err != nil {
		return nil, err
	}
	a.closers = append(a.closers, func() {
		if err := local.Close(); err != nil {
			log.Errorf("close local store: %s", err)
		}
	})

	deviceID, err := planstore.LoadOrCreateDeviceID(ctx, local, time.Now())
	if err != nil {
		a.close()
		return nil, err
	}
	log.Debugf("device id: %s", deviceID)

	metricsManager := metrics.NewManager("fitplan", "cli", metrics.SetupPrometheus())

	var remote planstore.Remote
	if secrets.RemoteStoreEnabled() {
		pool, err := openRemote(ctx, secrets)
		if err != nil {
			log.Warnf("remote plan store unavailable, using local store only: %s", err)
		} else {
			a.closers = append(a.closers, pool.Close)
			remote = planstore.NewPostgresRemote(pool)
		}
	}

	a.store = planstore.NewStore(planstore.NewStoreParams{
		Local:   local,
		Remote:  remote,
		UserID:  deviceID,
		Metrics: metricsManager,
	})

	tracedHttpClient := &http.Client{
		Transport: otelhttp.NewTransport(http.DefaultTransport),
	}

	genClient := generation.NewClient(nil, cfg.GenerationModels, metricsManager)
	geminiCaller, err := generation.NewGeminiCaller(ctx, secrets.GeminiAPIKey, cfg.GeminiBaseURL)
	switch {
	case err == nil:
		genClient = generation.NewClient(geminiCaller, cfg.GenerationModels, metricsManager)
		a.models = geminiCaller
	case errors.Is(err, generation.ErrNotConfigured):
		log.Debugln("GEMINI_API_KEY not set")
	default:
		a.close()
		return nil, fmt.Errorf("new gemini caller: %w", err)
	}
	a.generator = generation.NewService(a.validator, genClient, metricsManager)

	a.synth = speech.NewClient(speech.NewClientParams{
		BaseURL:        cfg.ElevenLabsBaseURL,
		APIKey:         secrets.ElevenLabsAPIKey,
		ModelID:        cfg.TTSModelID,
		DefaultVoiceID: cfg.DefaultVoiceID,
		MaxCharacters:  cfg.TTSMaxCharacters,
		HTTPClient:     tracedHttpClient,
	})
	a.illus = illustration.NewClient(illustration.NewClientParams{
		BaseURL:    cfg.ImageBaseURL,
		APIKey:     secrets.ImageAPIKey,
		Model:      cfg.ImageModel,
		HTTPClient: tracedHttpClient,
	})

	return a, nil
}

func openRemote(ctx context.Context, secrets *config.Secrets) (*pgxpool.Pool, error) {
	pool, err := db.NewDBPool(ctx, db.NewDBPoolParams{
		ConnString: secrets.RemoteStoreURL,
		Password:   secrets.RemoteStoreKey,
		MaxConns:   2,
	})
	if err != nil {
		return nil, err
	}
	if err := planstore.NewPostgresRemote(pool).EnsureSchema(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	return pool, nil
}

func ensureDir(dir string) error {
	exists, err := pkg.PathExists(dir, true)
	if err != nil {
		return fmt.Errorf("check local store dir: %w", err)
	}
	if exists {
		return nil
	}
	log.Debugf("creating local store dir [%s]", dir)
	return os.MkdirAll(dir, 0o755)
}

func (a *app) close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
	a.closers = nil
}
