package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/weftdev/weft/pkg/config"
	"github.com/weftdev/weft/pkg/headless"
	"github.com/weftdev/weft/pkg/logger"
	"github.com/weftdev/weft/pkg/tui"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "weft",
	Short: "Build websites by describing them",
	Long: `Weft is a terminal website builder. Describe the site you want in
plain language and watch the HTML, CSS and JavaScript get written in
front of you, then preview and export the result.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(cfgFile)
		if err != nil {
			return fmt.Errorf("loading configuration: %w", err)
		}

		if err := logger.Init(); err != nil {
			return fmt.Errorf("initializing logger: %w", err)
		}
		defer logger.Close()

		if viper.GetBool("headless") {
			return runHeadless(cfg)
		}
		return tui.StartApp()
	},
	SilenceUsage: true,
}

func runHeadless(cfg *config.Config) error {
	request := viper.GetString("prompt")
	if request == "" {
		return fmt.Errorf("headless mode requires --prompt")
	}

	outputDir := viper.GetString("output")
	if outputDir == "" {
		outputDir = cfg.Export.Directory
	}

	runner, err := headless.NewRunner(outputDir)
	if err != nil {
		return fmt.Errorf("initializing headless mode: %w", err)
	}
	return runner.Run(context.Background(), request)
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", config.BuildSettingsPath("settings.yaml"), "config file")

	rootCmd.PersistentFlags().StringP("log-level", "l", "info", "log level")
	viper.BindPFlag("logging.level", rootCmd.PersistentFlags().Lookup("log-level"))

	rootCmd.PersistentFlags().StringP("prompt", "p", "", "build a site from a prompt without entering the TUI")
	viper.BindPFlag("prompt", rootCmd.PersistentFlags().Lookup("prompt"))

	rootCmd.PersistentFlags().BoolP("headless", "H", false, "run without TUI (requires --prompt)")
	viper.BindPFlag("headless", rootCmd.PersistentFlags().Lookup("headless"))

	rootCmd.PersistentFlags().StringP("output", "o", "", "directory to write the exported site to")
	viper.BindPFlag("output", rootCmd.PersistentFlags().Lookup("output"))
}
