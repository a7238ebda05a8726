// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

// Package config defines the settings of the jstream command-line tool.
//
// Settings are taken from an optional YAML file named by -config and then
// from command-line flags, with flags taking precedence.
package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/creachadair/jstream"
	yaml "github.com/goccy/go-yaml"
)

var (
	ErrBufferSize = fmt.Errorf("buffer size must be at least %d", jstream.MinBufferSize)
	ErrDepth      = errors.New("nesting depth must be positive")
	ErrChunk      = errors.New("chunk size must be positive")
	ErrRate       = errors.New("rate must not be negative")
	ErrColor      = errors.New(`color must be "auto", "always", or "never"`)
)

// Color modes.
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// Config holds the settings for a run of the tool.
type Config struct {
	Files []string // input files; empty means standard input

	BufferSize int     // token buffer capacity
	MaxDepth   int     // maximum nesting depth
	Chunk      int     // bytes per read
	Rate       float64 // bytes per second, 0 for unlimited
	Color      string  // one of the Color modes
	JWCC       bool    // accept comments and trailing commas
	Quiet      bool    // validate only, print nothing
}

// Default returns a Config with default settings.
func Default() *Config {
	return &Config{
		BufferSize: jstream.DefaultBufferSize,
		MaxDepth:   jstream.DefaultMaxDepth,
		Chunk:      jstream.DefaultReadSize,
		Color:      ColorAuto,
	}
}

// Options returns parser options reflecting c.
func (c *Config) Options() *jstream.Options {
	return &jstream.Options{
		BufferSize: c.BufferSize,
		MaxDepth:   c.MaxDepth,
		ReadSize:   c.Chunk,
	}
}

// Validate reports an error if c is not a usable configuration.
func (c *Config) Validate() error {
	switch {
	case c.BufferSize < jstream.MinBufferSize:
		return fmt.Errorf("%w, got %d", ErrBufferSize, c.BufferSize)
	case c.MaxDepth < 1:
		return fmt.Errorf("%w, got %d", ErrDepth, c.MaxDepth)
	case c.Chunk < 1:
		return fmt.Errorf("%w, got %d", ErrChunk, c.Chunk)
	case c.Rate < 0:
		return fmt.Errorf("%w, got %v", ErrRate, c.Rate)
	}
	switch c.Color {
	case ColorAuto, ColorAlways, ColorNever:
	default:
		return fmt.Errorf("%w, got %q", ErrColor, c.Color)
	}
	return nil
}

// fileConfig is the YAML form of a Config. Pointer fields distinguish
// settings that are absent from the file.
type fileConfig struct {
	BufferSize *int     `yaml:"buffer"`
	MaxDepth   *int     `yaml:"depth"`
	Chunk      *int     `yaml:"chunk"`
	Rate       *float64 `yaml:"rate"`
	Color      *string  `yaml:"color"`
	JWCC       *bool    `yaml:"jwcc"`
	Quiet      *bool    `yaml:"quiet"`
}

// Load reads YAML settings from r into c. Fields not mentioned in the input
// are not changed, and an empty document changes nothing. Unknown fields are
// an error.
func (c *Config) Load(r io.Reader) error {
	var fc fileConfig
	dec := yaml.NewDecoder(r, yaml.DisallowUnknownField())
	if err := dec.Decode(&fc); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("decode config: %w", err)
	}
	setIf(&c.BufferSize, fc.BufferSize)
	setIf(&c.MaxDepth, fc.MaxDepth)
	setIf(&c.Chunk, fc.Chunk)
	setIf(&c.Rate, fc.Rate)
	setIf(&c.Color, fc.Color)
	setIf(&c.JWCC, fc.JWCC)
	setIf(&c.Quiet, fc.Quiet)
	return nil
}

func setIf[T any](dst *T, src *T) {
	if src != nil {
		*dst = *src
	}
}

// LoadFile reads YAML settings from the named file into c.
func (c *Config) LoadFile(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := c.Load(f); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	return nil
}

// Parse parses command-line arguments, not including the program name, and
// returns a validated Config. If the arguments request help, Parse returns
// flag.ErrHelp after writing usage to out.
func Parse(name string, args []string, out io.Writer) (*Config, error) {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(out)
	fs.Usage = func() {
		fmt.Fprintf(out, "Usage: %s [options] [file ...]\n\n", name)
		fmt.Fprint(out, `Parse each JSON document and print the events reported by the parser.
With no files, standard input is read.

Options:
`)
		fs.PrintDefaults()
	}

	def := Default()
	var (
		path   = fs.String("config", "", "Read settings from this YAML file")
		buffer = fs.Int("buffer", def.BufferSize, "Token buffer size in bytes")
		depth  = fs.Int("depth", def.MaxDepth, "Maximum nesting depth")
		chunk  = fs.Int("chunk", def.Chunk, "Bytes per read from the input")
		rate   = fs.Float64("rate", def.Rate, "Input rate limit in bytes per second (0 for unlimited)")
		color  = fs.String("color", def.Color, "Colorize output: auto, always, never")
		jwcc   = fs.Bool("jwcc", false, "Accept JSON with comments and trailing commas")
		quiet  = fs.Bool("quiet", false, "Validate only; print nothing but errors")
	)
	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	cfg := Default()
	if *path != "" {
		if err := cfg.LoadFile(*path); err != nil {
			return nil, err
		}
	}

	// Flags set explicitly override the file.
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "buffer":
			cfg.BufferSize = *buffer
		case "depth":
			cfg.MaxDepth = *depth
		case "chunk":
			cfg.Chunk = *chunk
		case "rate":
			cfg.Rate = *rate
		case "color":
			cfg.Color = *color
		case "jwcc":
			cfg.JWCC = *jwcc
		case "quiet":
			cfg.Quiet = *quiet
		}
	})
	cfg.Files = fs.Args()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
