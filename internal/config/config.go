package config

import (
	"path/filepath"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

const (
	DefaultSourceDir = "src"
	DefaultOutputDir = "page"
	DefaultTemplate  = "template.html"
	DefaultRootName  = "index"
)

type Config struct {
	SourceDir      string `mapstructure:"sourceDir"`
	OutputDir      string `mapstructure:"outputDir"`
	Template       string `mapstructure:"template"`
	// RootName names the page written for the source root itself,
	// <outputDir>/<rootName>.html. The legacy generator always wrote that
	// page as "..html"; rootName "." reproduces it.
	RootName       string `mapstructure:"rootName"`
	FrontMatter    bool   `mapstructure:"frontMatter"`
	HighlightStyle string `mapstructure:"highlightStyle"`
	LogLevel       string `mapstructure:"logLevel"`
	LogFormat      string `mapstructure:"logFormat"`
}

// Defaults returns the configuration used when neither a config file nor
// environment variables override anything.
func Defaults() Config {
	return Config{
		SourceDir: DefaultSourceDir,
		OutputDir: DefaultOutputDir,
		Template:  DefaultTemplate,
		RootName:  DefaultRootName,
		LogLevel:  "info",
		LogFormat: "console",
	}
}

// Validate checks the values a build depends on before any file is touched.
func (c Config) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.OutputDir, validation.Required),
		validation.Field(&c.Template, validation.Required, validation.By(bareFileName("config.template.bare_name", ""))),
		validation.Field(&c.RootName, validation.Required, validation.By(bareFileName("config.root_name.bare_name", ".html"))),
		validation.Field(&c.LogLevel, validation.In("trace", "debug", "info", "warn", "error")),
		validation.Field(&c.LogFormat, validation.In("console", "json", "pretty")),
	)
}

// bareFileName rejects values that, with suffix appended, are not a plain
// file name inside one directory.
func bareFileName(code, suffix string) validation.RuleFunc {
	return func(value any) error {
		name, _ := value.(string)
		name = strings.TrimSpace(name)
		if name == "" {
			return nil
		}
		name += suffix
		if name == "." || name == ".." || filepath.Base(name) != name || strings.ContainsAny(name, `/\`) {
			return validation.NewError(code, "must be a file name without directories")
		}
		return nil
	}
}
