package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/peterbourgon/ff/v3/ffcli"

	"github.com/sig-0/kycreport/cmd/common"
	"github.com/sig-0/kycreport/cmd/generate"
	"github.com/sig-0/kycreport/cmd/inspect"
	"github.com/sig-0/kycreport/cmd/serve"
)

func main() {
	// Load .env, so its values reach the env-backed flags.
	// The file is optional
	if err := common.LoadEnv(); err != nil && !errors.Is(err, os.ErrNotExist) {
		_, _ = fmt.Fprintln(os.Stderr, err)

		os.Exit(1)
	}

	fs := flag.NewFlagSet("root", flag.ExitOnError)

	// Create the root command
	cmd := &ffcli.Command{
		ShortUsage: "<sub-command> [flags] [<arg>...]",
		LongHelp:   "Builds the KYC-free exchange report",
		FlagSet:    fs,
		Exec: func(_ context.Context, _ []string) error {
			return flag.ErrHelp
		},
	}

	// Add the subcommands
	cmd.Subcommands = []*ffcli.Command{
		generate.NewGenerateCmd(),
		inspect.NewInspectCmd(),
		serve.NewServeCmd(),
	}

	if err := cmd.ParseAndRun(context.Background(), os.Args[1:]); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)

		os.Exit(1)
	}
}
