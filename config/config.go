package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/midbel/gridcalc/format"
	"github.com/midbel/gridcalc/layout"
	"gopkg.in/yaml.v3"
)

const (
	FormatTable = "table"
	FormatCSV   = "csv"
)

var ErrOption = errors.New("option not found")

type GridConfig struct {
	Rows int `yaml:"rows"`
	Cols int `yaml:"cols"`
}

type PrintConfig struct {
	Format    string `yaml:"format"`
	Width     int    `yaml:"width"`
	Separator string `yaml:"separator"`
	Number    string `yaml:"number"`
	Header    bool   `yaml:"header"`
}

type LogConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
}

type Config struct {
	Grid  GridConfig  `yaml:"grid"`
	Print PrintConfig `yaml:"print"`
	Log   LogConfig   `yaml:"log"`
}

func Default() Config {
	return Config{
		Grid: GridConfig{
			Rows: layout.DefaultDimension.Lines,
			Cols: layout.DefaultDimension.Columns,
		},
		Print: PrintConfig{
			Format:    FormatTable,
			Width:     12,
			Separator: ",",
			Header:    true,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Load reads the configuration file. Options missing from the file keep
// their default value.
func Load(file string) (Config, error) {
	r, err := os.Open(file)
	if err != nil {
		return Default(), err
	}
	defer r.Close()
	return Decode(r)
}

func Decode(r io.Reader) (Config, error) {
	cfg := Default()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return cfg, err
	}
	return cfg, cfg.Validate()
}

func (c Config) Encode(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	defer enc.Close()
	return enc.Encode(c)
}

func (c Config) Dimension() layout.Dimension {
	return layout.Dimension{
		Lines:   c.Grid.Rows,
		Columns: c.Grid.Cols,
	}
}

func (c Config) Validate() error {
	if err := c.Dimension().Validate(); err != nil {
		return err
	}
	switch c.Print.Format {
	case FormatTable, FormatCSV:
	default:
		return fmt.Errorf("%s: unsupported print format", c.Print.Format)
	}
	if len(c.Print.Separator) != 1 {
		return fmt.Errorf("separator should be a single character")
	}
	if c.Print.Number != "" {
		if _, err := format.ParseNumberFormatter(c.Print.Number); err != nil {
			return fmt.Errorf("%s: %w", c.Print.Number, err)
		}
	}
	return nil
}

// Set changes the option at the dotted path.
func (c *Config) Set(path string, value any) error {
	return directives.Configure(path, value, c)
}

// Apply changes an option given as path=value.
func (c *Config) Apply(str string) error {
	path, value, ok := strings.Cut(str, "=")
	if !ok {
		return fmt.Errorf("%s: expected path=value", str)
	}
	return c.Set(strings.TrimSpace(path), strings.TrimSpace(value))
}

// Options lists the paths accepted by Set.
func Options() []string {
	return directives.Paths()
}
