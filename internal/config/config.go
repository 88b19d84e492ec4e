package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Environment string `mapstructure:"environment"`
	Host        string `mapstructure:"host"`
	Port        int    `mapstructure:"port"`

	ModelPath string `mapstructure:"model_path"`
	Predictor string `mapstructure:"predictor"`

	FramePeriodMS     uint32  `mapstructure:"frame_period_ms"`
	ThresholdWarning  float64 `mapstructure:"threshold_warning"`
	ThresholdCritical float64 `mapstructure:"threshold_critical"`

	EventSink string `mapstructure:"event_sink"`

	Sensor   *SensorConfig   `mapstructure:"sensor"`
	Actuator *ActuatorConfig `mapstructure:"actuator"`
}

type SensorConfig struct {
	Mode      string `mapstructure:"mode"`
	ImagePath string `mapstructure:"image_path"`
}

type ActuatorConfig struct {
	Mode       string `mapstructure:"mode"`
	ActiveHigh bool   `mapstructure:"active_high"`
	ValuePath  string `mapstructure:"value_path"`
}

var config *Config

func LoadEnvAndConfigFiles() error {
	envFile := viper.GetString("env_file")
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			return fmt.Errorf("failed to load env file: %w", err)
		}
	} else if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(".env"); err != nil {
			return fmt.Errorf("failed to load env file: %w", err)
		}
	}

	setDefaults()

	configFile := viper.GetString("config_file")
	if configFile != "" {
		viper.SetConfigFile(configFile)
	} else {
		viper.SetConfigType("yaml")
		viper.SetConfigName("sentinel")
		viper.AddConfigPath(".")
	}

	if err := LoadConfig(false); err != nil {
		if errors.As(err, &viper.ConfigFileNotFoundError{}) {
			// Flags, env vars and defaults still apply.
			return loadFromViper()
		}
		return err
	}

	return nil
}

func LoadConfig(reload bool) error {
	if config != nil && !reload {
		return fmt.Errorf("config already loaded")
	}

	if err := viper.ReadInConfig(); err != nil {
		return fmt.Errorf("error reading config: %w", err)
	}

	return loadFromViper()
}

func loadFromViper() error {
	config = &Config{}
	if err := viper.Unmarshal(config); err != nil {
		return fmt.Errorf("error unmarshalling config: %w", err)
	}

	if config.Sensor == nil {
		config.Sensor = &SensorConfig{Mode: SensorSynthetic}
	}
	if config.Actuator == nil {
		config.Actuator = &ActuatorConfig{Mode: ActuatorMemory, ActiveHigh: true}
	}

	return validate(config)
}

func validate(cfg *Config) error {
	if cfg.FramePeriodMS == 0 {
		return ErrZeroFramePeriod
	}
	if cfg.ThresholdWarning >= cfg.ThresholdCritical {
		return ErrThresholdOrder
	}
	if cfg.ThresholdWarning <= 0 || cfg.ThresholdCritical > 1 {
		return ErrThresholdRange
	}
	switch cfg.Predictor {
	case PredictorMean:
	case PredictorONNX:
		if cfg.ModelPath == "" {
			return ErrModelPathRequired
		}
	default:
		return fmt.Errorf("unknown predictor %q", cfg.Predictor)
	}
	return nil
}

func setDefaults() {
	viper.SetDefault("environment", "dev")
	viper.SetDefault("host", "localhost")
	viper.SetDefault("port", DefaultPort)
	viper.SetDefault("predictor", PredictorMean)
	viper.SetDefault("frame_period_ms", DefaultFramePeriodMS)
	viper.SetDefault("threshold_warning", DefaultThresholdWarning)
	viper.SetDefault("threshold_critical", DefaultThresholdCritical)
	viper.SetDefault("event_sink", "stdout")
}

func GetConfig() *Config {
	if config == nil {
		panic("config not loaded")
	}

	return config
}

func MustGetConfig() *Config {
	return GetConfig()
}

func IsLoaded() bool {
	return config != nil
}
