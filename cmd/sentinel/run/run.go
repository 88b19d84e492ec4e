package cmd

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/pyrosense/sentinel/internal/actuator"
	"github.com/pyrosense/sentinel/internal/app"
	"github.com/pyrosense/sentinel/internal/config"
	"github.com/pyrosense/sentinel/internal/eventlog"
	"github.com/pyrosense/sentinel/internal/hwclock"
	"github.com/pyrosense/sentinel/internal/model"
	"github.com/pyrosense/sentinel/internal/pipeline"
	"github.com/pyrosense/sentinel/internal/sensor"
	"github.com/pyrosense/sentinel/internal/server"
)

var Cmd = &cobra.Command{
	Use:   "run",
	Short: "Start the fire-detection pipeline and status server",
	RunE:  runApp,
}

func init() {
	flags := Cmd.Flags()

	flags.Int("port", config.DefaultPort, "Port for the status server")
	flags.String("host", "localhost", "Host for the status server")
	flags.String("environment", "dev", "Environment configuration")
	flags.String("predictor", config.PredictorMean, "Predictor backend: 'mean' or 'onnx'")
	flags.String("model-path", "", "Path to the model blob")
	flags.Uint32("frame-period-ms", config.DefaultFramePeriodMS, "Target loop period in milliseconds")
	flags.String("event-sink", "stdout", "Event-line sink: 'stdout' or a device/file path")
	flags.String("sensor-mode", config.SensorSynthetic, "Sensor source: 'synthetic' or 'image'")
	flags.String("sensor-image", "", "Image file replayed by the image sensor")
	flags.String("actuator-mode", config.ActuatorMemory, "Actuator line: 'memory' or 'gpio'")
	flags.String("gpio-value-path", "", "Value file driven by the gpio actuator")
	flags.Bool("actuator-active-high", true, "Polarity of the alert line")

	viper.BindPFlag("port", flags.Lookup("port"))
	viper.BindPFlag("host", flags.Lookup("host"))
	viper.BindPFlag("environment", flags.Lookup("environment"))
	viper.BindPFlag("predictor", flags.Lookup("predictor"))
	viper.BindPFlag("model_path", flags.Lookup("model-path"))
	viper.BindPFlag("frame_period_ms", flags.Lookup("frame-period-ms"))
	viper.BindPFlag("event_sink", flags.Lookup("event-sink"))
	viper.BindPFlag("sensor.mode", flags.Lookup("sensor-mode"))
	viper.BindPFlag("sensor.image_path", flags.Lookup("sensor-image"))
	viper.BindPFlag("actuator.mode", flags.Lookup("actuator-mode"))
	viper.BindPFlag("actuator.value_path", flags.Lookup("gpio-value-path"))
	viper.BindPFlag("actuator.active_high", flags.Lookup("actuator-active-high"))
}

func runApp(_ *cobra.Command, _ []string) error {
	errc := make(chan error, 2)
	signalc := make(chan os.Signal, 1)

	a, err := app.NewApp(config.MustGetConfig())
	if err != nil {
		return err
	}
	defer a.Close()

	ctx := a.Context()

	loop, cleanup, err := buildLoop(a)
	if err != nil {
		return err
	}
	defer cleanup()

	a.SetLoop(loop)

	srv, err := runServer(a)
	if err != nil {
		return err
	}

	go func() {
		errc <- loop.Run(ctx)
	}()

	signal.Notify(signalc, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errc:
		srv.Stop(ctx)
		if errors.Is(err, ctx.Err()) {
			return nil
		}
		return err
	case <-signalc:
		a.Logger.Info("shutdown signal received")
		srv.Stop(ctx)
		return nil
	}
}

func buildLoop(a *app.App) (*pipeline.Loop, func(), error) {
	cfg := a.Config()
	cleanup := func() {}

	src, err := sensor.NewFromConfig(cfg)
	if err != nil {
		return nil, cleanup, err
	}

	line, err := actuator.NewFromConfig(cfg)
	if err != nil {
		return nil, cleanup, err
	}

	sink, err := eventlog.NewFromConfig(cfg)
	if err != nil {
		return nil, cleanup, err
	}

	predictor, err := model.NewPredictor(cfg)
	if err != nil {
		return nil, cleanup, err
	}
	if closer, ok := predictor.(io.Closer); ok {
		cleanup = func() { closer.Close() }
	}

	loop := pipeline.NewLoop(cfg, pipeline.Deps{
		Log:       a.Logger,
		Model:     &model.Model{},
		Predictor: predictor,
		Sensor:    src,
		Actuator:  line,
		Clock:     hwclock.NewSystem(),
		Metrics:   a.Metrics,
		Sink:      sink,
		Bus:       a.Bus,
	})

	return loop, cleanup, nil
}

func runServer(a *app.App) (*server.Server, error) {
	srv, err := server.NewServer(a.Config())
	if err != nil {
		return nil, err
	}

	srv.SetupRoutes(a)

	errc := make(chan error, 1)
	go func() {
		a.Logger.Info("status server started", zap.Int("port", a.Config().Port))
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errc <- err
		}
	}()

	select {
	case err := <-errc:
		return nil, fmt.Errorf("status server: %w", err)
	default:
		return srv, nil
	}
}
