package catlog

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/pelletier/go-toml/v2"
)

// LoadConfig reads a TOML category table from path.
//
// Example file:
//
//	enable_all_logs = true
//	editor_only = false
//
//	[[categories]]
//	category = "Network"
//	enabled = true
//	color = "#00FF00"
//	emoji = "🌐"
func LoadConfig(path string) (*Config, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()
	return ParseConfig(file)
}

// fileDescriptor is a [[categories]] entry as written; nil means the key
// was omitted.
type fileDescriptor struct {
	Category Category `toml:"category"`
	Enabled  *bool    `toml:"enabled"`
	Color    *string  `toml:"color"`
	Emoji    *string  `toml:"emoji"`
}

type fileConfig struct {
	EnableAllLogs *bool            `toml:"enable_all_logs"`
	EditorOnly    *bool            `toml:"editor_only"`
	Categories    []fileDescriptor `toml:"categories"`
}

// ParseConfig decodes a TOML category table. Missing top-level flags keep
// the DefaultConfig values (both true) and missing descriptor keys those of
// NewDescriptor. A malformed color becomes DefaultColor and is kept for
// Validate to report. Unknown keys and bad syntax are rejected.
func ParseConfig(r io.Reader) (*Config, error) {
	var raw fileConfig
	decoder := toml.NewDecoder(r)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&raw); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	cfg := &Config{EnableAllLogs: true, EditorOnly: true}
	if raw.EnableAllLogs != nil {
		cfg.EnableAllLogs = *raw.EnableAllLogs
	}
	if raw.EditorOnly != nil {
		cfg.EditorOnly = *raw.EditorOnly
	}
	cfg.Categories = make([]CategoryDescriptor, 0, len(raw.Categories))
	for i, fd := range raw.Categories {
		d := NewDescriptor(fd.Category)
		if fd.Enabled != nil {
			d.Enabled = *fd.Enabled
		}
		if fd.Emoji != nil {
			d.Emoji = *fd.Emoji
		}
		if fd.Color != nil {
			color, err := ParseColor(*fd.Color)
			if err != nil {
				cfg.issues = append(cfg.issues, fmt.Errorf("categories[%d]: %w", i, err))
			} else {
				d.Color = color
			}
		}
		cfg.Categories = append(cfg.Categories, d)
	}
	return cfg, nil
}

// WriteTo encodes the config as TOML.
func (c *Config) WriteTo(w io.Writer) (int64, error) {
	data, err := toml.Marshal(c)
	if err != nil {
		return 0, fmt.Errorf("encode config: %w", err)
	}
	n, err := w.Write(data)
	return int64(n), err
}

// Validate reports malformed colors met by ParseConfig, empty identifiers
// and duplicate identifiers. The logger itself tolerates all of them (first
// descriptor wins); this is for authoring tools.
func (c *Config) Validate() error {
	if c == nil {
		return nil
	}
	errs := append([]error(nil), c.issues...)
	seen := make(map[Category]int, len(c.Categories))
	for i, d := range c.Categories {
		if d.Category == "" {
			errs = append(errs, fmt.Errorf("categories[%d]: %s", i, _ERROR_MESSAGE_EMPTY_CATEGORY))
			continue
		}
		if first, ok := seen[d.Category]; ok {
			errs = append(errs, fmt.Errorf("categories[%d]: %s %q (first at %d)", i, _ERROR_MESSAGE_DUP_CATEGORY, d.Category, first))
			continue
		}
		seen[d.Category] = i
	}
	return errors.Join(errs...)
}
