package config

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/midbel/gridcalc/internal/ds"
)

type ConfigFunc func(*Config, any) error

type directiveTrie struct {
	trie *ds.Trie[ConfigFunc]
}

var directives = directiveTrie{
	trie: ds.NewTrie[ConfigFunc](),
}

func init() {
	directives.Register("grid.rows", configureGridRows)
	directives.Register("grid.cols", configureGridCols)
	directives.Register("print.format", configurePrintFormat)
	directives.Register("print.width", configurePrintWidth)
	directives.Register("print.separator", configurePrintSeparator)
	directives.Register("print.number", configurePrintNumber)
	directives.Register("print.header", configurePrintHeader)
	directives.Register("log.level", configureLogLevel)
	directives.Register("log.file", configureLogFile)
}

func (d directiveTrie) Register(path string, fn ConfigFunc) {
	d.trie.Register(ds.Split(path), fn)
}

func (d directiveTrie) Configure(path string, value any, cfg *Config) error {
	fn, ok := d.trie.Get(ds.Split(path))
	if !ok {
		return fmt.Errorf("%s: %w", path, ErrOption)
	}
	if err := fn(cfg, value); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	return nil
}

func (d directiveTrie) Paths() []string {
	var list []string
	d.trie.Walk(nil, func(path []string, _ ConfigFunc) {
		list = append(list, strings.Join(path, "."))
	})
	return list
}

func configureGridRows(cfg *Config, value any) error {
	n, err := toInt(value)
	if err == nil {
		cfg.Grid.Rows = n
	}
	return err
}

func configureGridCols(cfg *Config, value any) error {
	n, err := toInt(value)
	if err == nil {
		cfg.Grid.Cols = n
	}
	return err
}

func configurePrintWidth(cfg *Config, value any) error {
	n, err := toInt(value)
	if err == nil {
		cfg.Print.Width = n
	}
	return err
}

func configurePrintFormat(cfg *Config, value any) error {
	str, err := toString(value)
	if err != nil {
		return err
	}
	switch str {
	case FormatTable, FormatCSV:
		cfg.Print.Format = str
	default:
		return fmt.Errorf("%s: unsupported print format", str)
	}
	return nil
}

func configurePrintSeparator(cfg *Config, value any) error {
	str, err := toString(value)
	if err != nil {
		return err
	}
	if str == "tab" || str == `\t` {
		str = "\t"
	}
	if len(str) != 1 {
		return fmt.Errorf("separator should be a single character")
	}
	cfg.Print.Separator = str
	return nil
}

func configurePrintNumber(cfg *Config, value any) error {
	str, err := toString(value)
	if err == nil {
		cfg.Print.Number = str
	}
	return err
}

func configurePrintHeader(cfg *Config, value any) error {
	switch v := value.(type) {
	case bool:
		cfg.Print.Header = v
	case string:
		b, err := strconv.ParseBool(v)
		if err != nil {
			return err
		}
		cfg.Print.Header = b
	default:
		return fmt.Errorf("boolean expected")
	}
	return nil
}

func configureLogLevel(cfg *Config, value any) error {
	str, err := toString(value)
	if err == nil {
		cfg.Log.Level = strings.ToLower(str)
	}
	return err
}

func configureLogFile(cfg *Config, value any) error {
	str, err := toString(value)
	if err == nil {
		cfg.Log.File = str
	}
	return err
}

func toInt(value any) (int, error) {
	switch v := value.(type) {
	case int:
		return v, nil
	case int64:
		return int(v), nil
	case float64:
		return int(v), nil
	case string:
		return strconv.Atoi(v)
	default:
		return 0, fmt.Errorf("number expected")
	}
}

func toString(value any) (string, error) {
	str, ok := value.(string)
	if !ok {
		return "", fmt.Errorf("string expected")
	}
	return str, nil
}
