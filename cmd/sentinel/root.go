package cmd

import (
	"fmt"
	"os"
	"strings"

	eval "github.com/pyrosense/sentinel/cmd/sentinel/eval"
	run "github.com/pyrosense/sentinel/cmd/sentinel/run"
	"github.com/pyrosense/sentinel/internal/config"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const envPrefix = "SENTINEL"

// Version is stamped by the build via -ldflags.
var Version = "dev"

var Cmd = &cobra.Command{
	Use:     "sentinel",
	Short:   "Pyrosense fire-detection sentinel",
	Long:    "A real-time fire-detection pipeline: grayscale frames in, graded alerts and an indicator line out",
	Version: Version,

	// Runs before this command and any subcommands
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		viper.SetEnvPrefix(envPrefix)
		viper.SetEnvKeyReplacer(strings.NewReplacer(
			`-`, `_`,
			`.`, `_`,
		))
		viper.AutomaticEnv()

		if err := viper.BindPFlags(cmd.Flags()); err != nil {
			return err
		}

		if err := viper.BindPFlags(cmd.PersistentFlags()); err != nil {
			return err
		}

		return config.LoadEnvAndConfigFiles()
	},
}

func Execute() {
	if err := Cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	pflags := Cmd.PersistentFlags()

	pflags.String("config-file", "", "Path to the config file")
	pflags.String("env-file", "", "Path to the env file")

	viper.BindPFlag("config_file", pflags.Lookup("config-file"))
	viper.BindPFlag("env_file", pflags.Lookup("env-file"))

	Cmd.AddCommand(run.Cmd, eval.Cmd)
	Cmd.CompletionOptions.HiddenDefaultCmd = true
}
