package config

import (
	"io"
	"os"
	"strconv"

	"github.com/pkg/errors"
	"github.com/pseudomuto/sqlfmt/pkg/format"
	"gopkg.in/yaml.v3"
)

// File is the default config file name looked up by the CLI.
const File = ".sqlfmt.yaml"

// Config represents the formatting configuration loaded from a
// .sqlfmt.yaml file. Every field is optional; absent fields fall back
// to format.Defaults.
//
// Example:
//
//	indent: 4
//	uppercase: true
//	lines_between_queries: 2
//	max_inline_block: 80
//	max_inline_arguments: 60
//	max_inline_top_level: 60
//	joins_as_top_level: true
//	ignore_case_convert:
//	  - from
type Config struct {
	// Indent is either a number of spaces or the string "tabs".
	Indent string `yaml:"indent,omitempty"`

	// Uppercase converts keywords to upper case (true), lower case
	// (false), or preserves them (absent).
	Uppercase *bool `yaml:"uppercase,omitempty"`

	// IgnoreCaseConvert lists keywords exempt from case conversion.
	IgnoreCaseConvert []string `yaml:"ignore_case_convert,omitempty"`

	// LinesBetweenQueries is the number of blank lines after each
	// statement.
	LinesBetweenQueries *int `yaml:"lines_between_queries,omitempty"`

	// Inline renders each statement on a single line.
	Inline bool `yaml:"inline,omitempty"`

	// MaxInlineBlock is the width limit for inline parenthesized
	// blocks.
	MaxInlineBlock int `yaml:"max_inline_block,omitempty"`

	// MaxInlineArguments is the width limit for inline argument lists.
	MaxInlineArguments *int `yaml:"max_inline_arguments,omitempty"`

	// MaxInlineTopLevel is the width limit for inline top-level
	// clauses.
	MaxInlineTopLevel *int `yaml:"max_inline_top_level,omitempty"`

	// JoinsAsTopLevel treats JOIN variants as top-level keywords.
	JoinsAsTopLevel bool `yaml:"joins_as_top_level,omitempty"`
}

// Load reads a Config from the provided reader.
func Load(r io.Reader) (*Config, error) {
	var cfg Config
	if err := yaml.NewDecoder(r).Decode(&cfg); err != nil {
		return nil, errors.Wrap(err, "failed to decode config")
	}
	return &cfg, nil
}

// LoadFile reads a Config from the file at path.
func LoadFile(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open config file: %s", path)
	}
	defer func() { _ = f.Close() }()

	cfg, err := Load(f)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to load config file: %s", path)
	}
	return cfg, nil
}

// Options converts the configuration into format.Options, applying
// format.Defaults for absent fields.
func (c *Config) Options() (format.Options, error) {
	opts := format.Defaults

	switch c.Indent {
	case "":
	case "tabs", "tab":
		opts.Indent = format.Tabs()
	default:
		n, err := strconv.Atoi(c.Indent)
		if err != nil || n < 0 {
			return opts, errors.Errorf("invalid indent: %q (expected a number of spaces or \"tabs\")", c.Indent)
		}
		opts.Indent = format.Spaces(n)
	}

	opts.Uppercase = c.Uppercase
	opts.IgnoreCaseConvert = c.IgnoreCaseConvert
	if c.LinesBetweenQueries != nil {
		opts.LinesBetweenQueries = *c.LinesBetweenQueries
	}
	opts.Inline = c.Inline
	if c.MaxInlineBlock > 0 {
		opts.MaxInlineBlock = c.MaxInlineBlock
	}
	opts.MaxInlineArguments = c.MaxInlineArguments
	opts.MaxInlineTopLevel = c.MaxInlineTopLevel
	opts.JoinsAsTopLevel = c.JoinsAsTopLevel
	return opts, nil
}

// Formatter builds a format.Formatter from the configuration.
func (c *Config) Formatter() (*format.Formatter, error) {
	opts, err := c.Options()
	if err != nil {
		return nil, err
	}
	return format.New(opts), nil
}
