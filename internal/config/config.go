package config

import (
	"errors"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/XII-A/Edit-KML-Files/internal/pipeline"
	"github.com/XII-A/Edit-KML-Files/internal/sheet"
)

// Config holds the operator's defaults for an editing job. Everything here
// is per-run configuration, pre-filled into the update form; nothing is
// global state.
type Config struct {
	KMLPath      string `yaml:"kml_path,omitempty"`
	WorkbookPath string `yaml:"workbook_path,omitempty"`

	Sheet      sheet.Selector `yaml:"sheet,omitempty"`
	NameColumn string         `yaml:"name_column"`
	// NumberColumn enables sector-style keys (first ASCII letter of the
	// name cell + "-" + this column's cell). Empty keys rows by name alone.
	NumberColumn       string   `yaml:"number_column,omitempty"`
	ImageColumns       []string `yaml:"image_columns"`
	DescriptionColumns []string `yaml:"description_columns"`

	Merge       bool   `yaml:"merge"`
	BorderColor string `yaml:"border_color,omitempty"`

	Stats  *pipeline.StatMapping `yaml:"stats,omitempty"`
	Labels pipeline.StatLabels   `yaml:"labels,omitempty"`
}

// DefaultConfig matches the blank survey template layout.
func DefaultConfig() *Config {
	return &Config{
		NameColumn:         "Polygon_Name",
		ImageColumns:       []string{"Image_URL_1", "Image_URL_2", "Image_URL_3"},
		DescriptionColumns: []string{"Description_1", "Description_2", "Notes"},
		Merge:              true,
		Labels:             pipeline.DefaultStatLabels(),
	}
}

// Job builds the pipeline job from the configured defaults.
func (c *Config) Job() pipeline.Job {
	return pipeline.Job{
		WorkbookPath: c.WorkbookPath,
		Sheet:        c.Sheet,
		NameColumn:   c.NameColumn,
		NumberColumn: c.NumberColumn,
		ImageColumns: c.ImageColumns,
		DescColumns:  c.DescriptionColumns,
		Stats:        c.Stats,
		Labels:       c.Labels,
		Merge:        c.Merge,
		BorderColor:  c.BorderColor,
	}
}

func ConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "kmledit"), nil
}

func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yaml"), nil
}

func Exists() bool {
	path, err := ConfigPath()
	if err != nil {
		return false
	}
	_, err = os.Stat(path)
	return err == nil
}

func Load() (*Config, error) {
	path, err := ConfigPath()
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) Save() error {
	dir, err := ConfigDir()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	path, err := ConfigPath()
	if err != nil {
		return err
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0600)
}
