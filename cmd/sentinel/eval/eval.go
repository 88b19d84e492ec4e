package cmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/gammazero/workerpool"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/pyrosense/sentinel/internal/config"
	"github.com/pyrosense/sentinel/internal/hwclock"
	"github.com/pyrosense/sentinel/internal/model"
	"github.com/pyrosense/sentinel/internal/pipeline"
	"github.com/pyrosense/sentinel/pkg/logger"
)

var Cmd = &cobra.Command{
	Use:   "eval",
	Short: "Score a predictor against a labeled frame set",
	Long: "Runs every *.raw frame in the dataset directory through the " +
		"pipeline and reports accuracy. Files named fire_*.raw are labeled " +
		"fire, safe_*.raw are labeled safe; anything else is skipped.",
	RunE: runEval,
}

func init() {
	flags := Cmd.Flags()

	flags.String("dataset", "", "Directory holding labeled .raw frames")
	flags.Int("workers", 4, "Concurrent evaluation workers")
	flags.String("predictor", config.PredictorMean, "Predictor backend: 'mean' or 'onnx'")
	flags.String("model-path", "", "Path to the model blob")

	Cmd.MarkFlagRequired("dataset")

	viper.BindPFlag("eval.dataset", flags.Lookup("dataset"))
	viper.BindPFlag("eval.workers", flags.Lookup("workers"))
	viper.BindPFlag("predictor", flags.Lookup("predictor"))
	viper.BindPFlag("model_path", flags.Lookup("model-path"))
}

func runEval(_ *cobra.Command, _ []string) error {
	cfg := config.MustGetConfig()
	log := logger.MustNewLogger(cfg)
	defer log.Sync()

	dataset := viper.GetString("eval.dataset")
	workers := viper.GetInt("eval.workers")
	if workers < 1 {
		workers = 1
	}

	m := &model.Model{}
	if err := m.Init(cfg.ModelPath); err != nil {
		return err
	}

	predictor, err := model.NewPredictor(cfg)
	if err != nil {
		return err
	}
	if err := predictor.Init(m); err != nil {
		return err
	}
	if closer, ok := predictor.(io.Closer); ok {
		defer closer.Close()
	}

	files, err := filepath.Glob(filepath.Join(dataset, "*.raw"))
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return fmt.Errorf("no .raw frames found in %s", dataset)
	}

	var (
		metrics = pipeline.NewMetrics()
		post    = pipeline.NewPostprocessor(cfg.ThresholdWarning, cfg.ThresholdCritical)
		clock   = hwclock.NewSystem()

		// The model context and predictor session are single-frame devices;
		// only file reads and preprocessing run concurrently.
		inferMu sync.Mutex

		fireFrames, safeFrames int
		countMu                sync.Mutex
	)

	pool := workerpool.New(workers)

	for _, path := range files {
		groundTruth, ok := labelFor(path)
		if !ok {
			log.Warn("skipping unlabeled frame", zap.String("file", path))
			continue
		}

		path := path
		pool.Submit(func() {
			raw, err := os.ReadFile(path)
			if err != nil {
				log.Warn("skipping unreadable frame", zap.String("file", path), zap.Error(err))
				return
			}

			var input [model.InputLen]float32
			pipeline.Preprocess(raw, &input)

			inferMu.Lock()
			m.Input = input
			t0 := clock.NowMS()
			_, inferErr := predictor.Infer(m)
			dt := hwclock.Elapsed(t0, clock.NowMS())
			if inferErr != nil {
				m.SafeDefault()
			}
			result := post.Process(m)
			inferMu.Unlock()

			if inferErr != nil {
				log.Warn("inference failed, scored as safe", zap.String("file", path), zap.Error(inferErr))
			}

			metrics.RecordLabeled(result, groundTruth, dt)

			countMu.Lock()
			if groundTruth {
				fireFrames++
			} else {
				safeFrames++
			}
			countMu.Unlock()
		})
	}

	pool.StopWait()

	snap := metrics.Snapshot()
	fmt.Printf("Evaluated %d frames (%d fire, %d safe)\n", snap.TotalInferences, fireFrames, safeFrames)
	fmt.Printf("  True positives:  %d\n", snap.TruePositives)
	fmt.Printf("  False positives: %d\n", snap.FalsePositives)
	fmt.Printf("  Accuracy:        %.2f%%\n", snap.Accuracy*100)
	fmt.Printf("  Avg inference:   %dms\n", snap.AvgInferenceTimeMS)

	return nil
}

func labelFor(path string) (fire bool, ok bool) {
	base := filepath.Base(path)
	switch {
	case strings.HasPrefix(base, "fire_"):
		return true, true
	case strings.HasPrefix(base, "safe_"):
		return false, true
	default:
		return false, false
	}
}
