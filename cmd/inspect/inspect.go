package inspect

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/peterbourgon/ff/v3/ffcli"

	"github.com/sig-0/kycreport/report"
)

var errNoReport = errors.New("no report file provided")

// inspectCfg wraps the inspect configuration
type inspectCfg struct {
	stdout io.Writer
}

// NewInspectCmd creates the inspect subcommand
func NewInspectCmd() *ffcli.Command {
	cfg := &inspectCfg{
		stdout: os.Stdout,
	}

	fs := flag.NewFlagSet("inspect", flag.ExitOnError)

	return &ffcli.Command{
		Name:       "inspect",
		ShortUsage: "inspect <report.html>",
		LongHelp:   "Prints the listed exchanges and the fingerprint of an existing report",
		FlagSet:    fs,
		Exec:       cfg.exec,
	}
}

func (c *inspectCfg) exec(_ context.Context, args []string) error {
	if len(args) != 1 {
		return errNoReport
	}

	f, err := os.Open(args[0])
	if err != nil {
		return fmt.Errorf("unable to open report, %w", err)
	}
	defer f.Close()

	snapshot, err := report.Inspect(f)
	if err != nil {
		return err
	}

	encoder := json.NewEncoder(c.stdout)
	encoder.SetIndent("", "  ")

	return encoder.Encode(snapshot)
}
