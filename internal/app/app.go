package app

import (
	"context"

	"go.uber.org/zap"

	"github.com/pyrosense/sentinel/internal/bus"
	"github.com/pyrosense/sentinel/internal/config"
	"github.com/pyrosense/sentinel/internal/pipeline"
	"github.com/pyrosense/sentinel/pkg/logger"
)

type App struct {
	ctx        context.Context
	cancelFunc context.CancelFunc
	config     *config.Config

	Logger  *zap.Logger
	Bus     *bus.Bus
	Metrics *pipeline.Metrics

	loop *pipeline.Loop
}

// Option funcs used to initialize the App struct
type OptionFunc func(app *App) error

func WithLogger(l *zap.Logger) OptionFunc {
	return func(app *App) error {
		app.Logger = l
		return nil
	}
}

func WithBus(b *bus.Bus) OptionFunc {
	return func(app *App) error {
		app.Bus = b
		return nil
	}
}

func NewApp(cfg *config.Config, opts ...OptionFunc) (*App, error) {
	ctx, cancel := context.WithCancel(context.Background())

	app := &App{
		ctx:        ctx,
		cancelFunc: cancel,
		config:     cfg,
		Metrics:    pipeline.NewMetrics(),
	}

	for _, opt := range opts {
		if err := opt(app); err != nil {
			cancel()
			return nil, err
		}
	}

	if app.Logger == nil {
		l, err := logger.NewLogger(cfg)
		if err != nil {
			cancel()
			return nil, err
		}
		app.Logger = l
	}

	if app.Bus == nil {
		app.Bus = bus.New()
	}

	return app, nil
}

func (app *App) Config() *config.Config {
	return app.config
}

func (app *App) Context() context.Context {
	return app.ctx
}

func (app *App) SetLoop(loop *pipeline.Loop) {
	app.loop = loop
}

func (app *App) Loop() *pipeline.Loop {
	return app.loop
}

func (app *App) Close() {
	app.cancelFunc()
	app.Bus.Close()
	app.Logger.Sync()
}
