// Package common holds the setup shared by the kycreport commands
package common

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/joho/godotenv"
	"github.com/rs/xid"

	"github.com/sig-0/kycreport/rules"
)

// NewLogger creates the command logger, tagged with a fresh run ID
func NewLogger(w io.Writer) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, nil)).With("run_id", xid.New().String())
}

// LoadEnv loads the given env files (.env if none are given) into the
// process environment. Variables that are already set are kept.
// It needs to run before the flags are parsed, for the env-backed flags to see them
func LoadEnv(filenames ...string) error {
	if err := godotenv.Load(filenames...); err != nil {
		return fmt.Errorf("unable to load .env vars, %w", err)
	}

	return nil
}

// LoadRules reads the rule set at path, or the embedded defaults if path is empty
func LoadRules(path string) (*rules.Rules, error) {
	if path == "" {
		return rules.Default()
	}

	r, err := rules.Read(path)
	if err != nil {
		return nil, fmt.Errorf("unable to read rules, %w", err)
	}

	return r, nil
}
