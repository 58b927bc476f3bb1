// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package log

import (
	"io"
	"os"

	"github.com/cockroachdb/errors"
	"gopkg.in/yaml.v3"
)

// Config is the logging configuration. It is typically embedded in a
// YAML configuration file under the `log` key.
type Config struct {
	// Verbosity is the V() threshold.
	Verbosity int32 `yaml:"verbosity"`
	// Redactable, when set, keeps redaction markers in the output.
	Redactable bool `yaml:"redactable"`
	// MinSeverity is the lowest severity written out.
	MinSeverity string `yaml:"min-severity"`
	// File, if non-empty, sends the output to this file instead of
	// stderr.
	File string `yaml:"file"`
}

// DefaultConfig returns the configuration in effect at process start.
func DefaultConfig() Config {
	return Config{MinSeverity: SeverityInfo.String()}
}

// ParseConfig parses a YAML logging configuration.
func ParseConfig(data []byte) (Config, error) {
	c := DefaultConfig()
	if err := yaml.Unmarshal(data, &c); err != nil {
		return Config{}, errors.Wrap(err, "parsing log configuration")
	}
	if _, err := SeverityByName(c.MinSeverity); err != nil {
		return Config{}, err
	}
	return c, nil
}

// ApplyConfig applies the given configuration. The returned function
// restores the previous configuration and closes any file opened.
func ApplyConfig(config Config) (resFn func(), err error) {
	sev, err := SeverityByName(config.MinSeverity)
	if err != nil {
		return nil, err
	}
	var f *os.File
	mainLog.mu.Lock()
	out := mainLog.mu.out
	mainLog.mu.Unlock()
	if config.File != "" {
		f, err = os.OpenFile(config.File, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
		if err != nil {
			return nil, errors.Wrapf(err, "opening log file %q", config.File)
		}
		out = f
	}

	mainLog.mu.Lock()
	prevOut, prevRedactable, prevSev := mainLog.mu.out, mainLog.mu.redactable, mainLog.mu.minSev
	mainLog.mu.out, mainLog.mu.redactable, mainLog.mu.minSev = out, config.Redactable, sev
	mainLog.mu.Unlock()
	prevVerbosity := SetVerbosity(config.Verbosity)

	return func() {
		mainLog.mu.Lock()
		mainLog.mu.out, mainLog.mu.redactable, mainLog.mu.minSev = prevOut, prevRedactable, prevSev
		mainLog.mu.Unlock()
		SetVerbosity(prevVerbosity)
		if f != nil {
			_ = f.Close()
		}
	}, nil
}

// setOutput swaps the output writer and returns the previous one.
func setOutput(w io.Writer) io.Writer {
	mainLog.mu.Lock()
	defer mainLog.mu.Unlock()
	prev := mainLog.mu.out
	mainLog.mu.out = w
	return prev
}
