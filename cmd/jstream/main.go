// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

// Program jstream parses JSON documents incrementally and prints the events
// reported by the parser as an indented outline.
//
// Usage:
//
//	jstream [options] [file ...]
//
// With no files, or a file named "-", standard input is read. The exit
// status is 0 if every input was a complete, valid document, and 1
// otherwise.
package main

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/creachadair/jstream"
	"github.com/creachadair/jstream/internal/config"
	"github.com/creachadair/jstream/internal/throttle"
	"github.com/google/uuid"
	"github.com/mattn/go-colorable"
	"github.com/mattn/go-isatty"
	"github.com/tailscale/hujson"
)

func main() { os.Exit(run()) }

func run() int {
	log.SetFlags(0)
	log.SetPrefix("jstream: ")

	cfg, err := config.Parse("jstream", os.Args[1:], os.Stderr)
	if errors.Is(err, flag.ErrHelp) {
		return 0
	} else if err != nil {
		log.Printf("invalid arguments: %v", err)
		return 1
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	var out io.Writer = os.Stdout
	var colors *jstream.Colors
	if useColor(cfg.Color) {
		out = colorable.NewColorableStdout()
		colors = jstream.DefaultColors
	}
	w := bufio.NewWriter(out)
	defer w.Flush()

	files := cfg.Files
	if len(files) == 0 {
		files = []string{"-"}
	}
	code := 0
	for _, name := range files {
		if err := processFile(ctx, cfg, name, w, colors); err != nil {
			code = 1
			if ctx.Err() != nil {
				break
			}
		}
	}
	return code
}

func useColor(mode string) bool {
	switch mode {
	case config.ColorAlways:
		return true
	case config.ColorNever:
		return false
	}
	fd := os.Stdout.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

func processFile(ctx context.Context, cfg *config.Config, name string, w *bufio.Writer, colors *jstream.Colors) error {
	var in io.Reader = os.Stdin
	if name != "-" {
		f, err := os.Open(name)
		if err != nil {
			log.Printf("open input: %v", err)
			return err
		}
		defer f.Close()
		in = f
	}
	return process(ctx, cfg, name, in, w, colors)
}

// process parses a single document from in and writes its outline to out.
// Errors are logged with the name of the input and the tag of the stream.
func process(ctx context.Context, cfg *config.Config, name string, in io.Reader, out io.Writer, colors *jstream.Colors) error {
	tag := uuid.New()
	logf := func(msg string, args ...any) {
		log.Printf("%s [%s]: %s", name, tag, fmt.Sprintf(msg, args...))
	}

	if cfg.JWCC {
		data, err := io.ReadAll(in)
		if err != nil {
			logf("read input: %v", err)
			return err
		}
		std, err := hujson.Standardize(data)
		if err != nil {
			logf("standardize: %v", err)
			return err
		}
		in = bytes.NewReader(std)
	}

	opts := cfg.Options()
	opts.Tag = tag
	var pr *jstream.Printer
	var l jstream.Listener
	if !cfg.Quiet {
		pr = jstream.NewPrinter(out, colors)
		l = pr
	}
	p := jstream.New(l, opts)

	err := p.ParseContext(ctx, throttle.NewReader(ctx, in, cfg.Rate, cfg.Chunk))
	if errors.Is(err, jstream.ErrCancelled) && pr != nil && pr.Err() != nil {
		err = fmt.Errorf("write output: %w", pr.Err())
	}
	if err != nil {
		logf("%v", err)
		return err
	}
	return nil
}
