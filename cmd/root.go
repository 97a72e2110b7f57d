package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/burgertron6/Guilded-NET.github.io/internal/config"
	"github.com/burgertron6/Guilded-NET.github.io/internal/logging"
	"github.com/burgertron6/Guilded-NET.github.io/internal/markdown"
	"github.com/burgertron6/Guilded-NET.github.io/internal/model"
	"github.com/burgertron6/Guilded-NET.github.io/internal/site"
)

var cfgFile string
var debug bool
var appConfig config.Config
var logger = logging.NoOp()

var rootCmd = &cobra.Command{
	Use:   "guilded-site [source]",
	Short: "Builds template pages from directories of Markdown parts",
	Long: `guilded-site walks the source directory (default ./src) for directories
holding Markdown files, renders every file in them to HTML and fills the
<!-- Template: <file> --> markers of <source>/template.html with the results.
One page per directory is written under ./page, mirroring the source tree.`,
	Args:          cobra.MaximumNArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initializeConfig(cmd)
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		_, err := runBuild(args)
		return err
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
}

func initializeConfig(_ *cobra.Command) error {
	v := viper.New()

	defaults := config.Defaults()
	v.SetDefault("sourceDir", defaults.SourceDir)
	v.SetDefault("outputDir", defaults.OutputDir)
	v.SetDefault("template", defaults.Template)
	v.SetDefault("rootName", defaults.RootName)
	v.SetDefault("frontMatter", defaults.FrontMatter)
	v.SetDefault("highlightStyle", defaults.HighlightStyle)
	v.SetDefault("logLevel", defaults.LogLevel)
	v.SetDefault("logFormat", defaults.LogFormat)

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.AddConfigPath(".")
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}

	v.SetEnvPrefix("GUILDED")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	usedFile := ""
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return fmt.Errorf("failed to read config file: %w", err)
		}
	} else {
		usedFile = v.ConfigFileUsed()
	}

	cfg := config.Defaults()
	if err := v.Unmarshal(&cfg); err != nil {
		return fmt.Errorf("unable to decode config into struct: %w", err)
	}
	appConfig = cfg

	l, err := logging.New(logging.Options{
		Level:  appConfig.LogLevel,
		Format: appConfig.LogFormat,
		Debug:  debug,
	})
	if err != nil {
		return err
	}
	logger = l

	if usedFile != "" {
		logger.Debug("using config file", "path", usedFile)
	} else {
		logger.Debug("no config file found, using defaults and environment")
	}
	return nil
}

// runBuild performs one full generation pass. The optional argument names
// the source directory and wins over the sourceDir setting.
func runBuild(args []string) (*model.Report, error) {
	source := ""
	if len(args) > 0 {
		source = args[0]
	}

	conv := markdown.New(markdown.Options{
		FrontMatter:    appConfig.FrontMatter,
		HighlightStyle: appConfig.HighlightStyle,
	})
	report, err := site.New(appConfig, conv, logger).Build(source)
	if err != nil {
		return report, err
	}
	logger.Info("build completed", "documents", len(report.Pages), "output", report.OutputDir)
	logger.Debug("pages written", "paths", report.Written())
	return report, nil
}
