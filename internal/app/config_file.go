package app

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	yaml "gopkg.in/yaml.v3"
)

// ErrInvalidConfig wraps every configuration validation failure.
var ErrInvalidConfig = errors.New("invalid configuration")

// FileConfig represents the single-file configuration schema.
type FileConfig struct {
	URL       string `yaml:"url" json:"url"`
	Output    string `yaml:"output" json:"output"`
	OutputPDF string `yaml:"outputPDF" json:"outputPDF"`
	PDFFont   string `yaml:"pdfFont" json:"pdfFont"`
	Width     int    `yaml:"width" json:"width"`
	Verbose   bool   `yaml:"verbose" json:"verbose"`

	HTTP struct {
		UserAgent   string   `yaml:"userAgent" json:"userAgent"`
		Timeout     Duration `yaml:"timeout" json:"timeout"`
		MaxAttempts int      `yaml:"maxAttempts" json:"maxAttempts"`
		Backoff     Duration `yaml:"backoff" json:"backoff"`
	} `yaml:"http" json:"http"`

	Extract struct {
		Mode     string `yaml:"mode" json:"mode"`
		Selector string `yaml:"selector" json:"selector"`
	} `yaml:"extract" json:"extract"`
}

// Duration accepts Go duration strings ("10s", "1m30s") in YAML and JSON.
type Duration time.Duration

func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	return d.set(s)
}

func (d *Duration) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	return d.set(s)
}

func (d *Duration) set(s string) error {
	v, err := time.ParseDuration(strings.TrimSpace(s))
	if err != nil {
		return err
	}
	*d = Duration(v)
	return nil
}

// LoadConfigFile reads YAML or JSON into FileConfig.
func LoadConfigFile(path string) (FileConfig, error) {
	var fc FileConfig
	b, err := os.ReadFile(path)
	if err != nil {
		return fc, err
	}
	switch ext := filepath.Ext(path); ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(b, &fc); err != nil {
			return fc, fmt.Errorf("parse yaml: %w", err)
		}
	case ".json":
		if err := json.Unmarshal(b, &fc); err != nil {
			return fc, fmt.Errorf("parse json: %w", err)
		}
	default:
		// Try YAML then JSON
		if err := yaml.Unmarshal(b, &fc); err != nil {
			if jerr := json.Unmarshal(b, &fc); jerr != nil {
				return fc, fmt.Errorf("parse config: %v (yaml) / %v (json)", err, jerr)
			}
		}
	}
	return fc, nil
}

// ApplyFileConfig overlays every value set in fc onto cfg. It runs after
// defaults and before env and flags.
func ApplyFileConfig(cfg *Config, fc FileConfig) {
	if cfg == nil {
		return
	}
	if fc.URL != "" {
		cfg.URL = fc.URL
	}
	if fc.Output != "" {
		cfg.OutputPath = fc.Output
	}
	if fc.OutputPDF != "" {
		cfg.OutputPDFPath = fc.OutputPDF
	}
	if fc.PDFFont != "" {
		cfg.PDFFontPath = fc.PDFFont
	}
	if fc.Width > 0 {
		cfg.Width = fc.Width
	}
	if fc.Verbose {
		cfg.Verbose = true
	}
	if fc.HTTP.UserAgent != "" {
		cfg.UserAgent = fc.HTTP.UserAgent
	}
	if fc.HTTP.Timeout > 0 {
		cfg.Timeout = time.Duration(fc.HTTP.Timeout)
	}
	if fc.HTTP.MaxAttempts > 0 {
		cfg.MaxAttempts = fc.HTTP.MaxAttempts
	}
	if fc.HTTP.Backoff > 0 {
		cfg.Backoff = time.Duration(fc.HTTP.Backoff)
	}
	if fc.Extract.Mode != "" {
		cfg.Mode = fc.Extract.Mode
	}
	if fc.Extract.Selector != "" {
		cfg.Selector = fc.Extract.Selector
	}
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// ValidateConfig checks required settings and value ranges.
func ValidateConfig(cfg Config) error {
	err := validate.Struct(cfg)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fmt.Sprintf("%s failed %q (value %v)", fe.Field(), fe.ActualTag(), fe.Value()))
	}
	return fmt.Errorf("%w: %s", ErrInvalidConfig, strings.Join(msgs, "; "))
}
