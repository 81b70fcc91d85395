package generate

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/peterbourgon/ff/v3"
	"github.com/peterbourgon/ff/v3/ffcli"
	"golang.org/x/term"

	"github.com/sig-0/kycreport/cmd/common"
	"github.com/sig-0/kycreport/cmd/env"
	"github.com/sig-0/kycreport/report"
)

const (
	DefaultInput  = "exchanges.json"
	DefaultOutput = "exchanges.html"

	confirmPrompt = "overwrite current file (y/n)? "
)

// generateCfg wraps the generate configuration
type generateCfg struct {
	stdin  io.Reader
	stdout io.Writer

	inputPath  string
	outputPath string
	rulesPath  string
	yes        bool
}

// NewGenerateCmd creates the generate subcommand
func NewGenerateCmd() *ffcli.Command {
	cfg := &generateCfg{
		stdin:  os.Stdin,
		stdout: os.Stdout,
	}

	fs := flag.NewFlagSet("generate", flag.ExitOnError)
	cfg.registerFlags(fs)

	return &ffcli.Command{
		Name:       "generate",
		ShortUsage: "generate [flags]",
		LongHelp:   "Generates the exchange report, overwriting the output file",
		FlagSet:    fs,
		Exec:       cfg.exec,
		Options: []ff.Option{
			// Allow using ENV variables
			ff.WithEnvVars(),
			ff.WithEnvVarPrefix(env.Prefix),
		},
	}
}

func (c *generateCfg) registerFlags(fs *flag.FlagSet) {
	fs.StringVar(
		&c.inputPath,
		"input",
		DefaultInput,
		"the path to the JSON exchange list",
	)

	fs.StringVar(
		&c.outputPath,
		"output",
		DefaultOutput,
		"the path of the generated HTML report",
	)

	fs.StringVar(
		&c.rulesPath,
		"rules",
		"",
		"the path to the TOML listing rules, if any (defaults to the built-in rules)",
	)

	fs.BoolVar(
		&c.yes,
		"yes",
		false,
		"overwrite the output file without asking",
	)
}

// exec executes the generate command
func (c *generateCfg) exec(_ context.Context, _ []string) error {
	logger := common.NewLogger(c.stdout)

	if !c.yes {
		if f, ok := c.stdin.(*os.File); ok && !term.IsTerminal(int(f.Fd())) {
			logger.Warn("stdin is not a terminal, reading the confirmation from input")
		}

		confirmed, err := confirm(c.stdin, c.stdout)
		if err != nil {
			return fmt.Errorf("unable to read confirmation, %w", err)
		}

		if !confirmed {
			logger.Info("report not generated")

			return nil
		}
	}

	r, err := common.LoadRules(c.rulesPath)
	if err != nil {
		return err
	}

	g := report.New(r, report.WithLogger(logger))

	rep, err := g.GenerateFile(c.inputPath)
	if err != nil {
		return fmt.Errorf("unable to generate report, %w", err)
	}

	logChanges(logger, c.outputPath, rep)

	return g.Write(rep, c.outputPath)
}

// confirm asks whether the output file should be overwritten.
// Only an exact "y" confirms
func confirm(in io.Reader, out io.Writer) (bool, error) {
	if _, err := fmt.Fprint(out, confirmPrompt); err != nil {
		return false, err
	}

	answer, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return false, err
	}

	answer = strings.TrimRight(answer, "\r\n")

	return answer == "y", nil
}

// logChanges logs how the new report differs from the one at path, if any
func logChanges(logger *slog.Logger, path string, rep *report.Report) {
	f, err := os.Open(path)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			logger.Warn(
				"unable to open existing report",
				"path", path,
				"err", err,
			)
		}

		return
	}
	defer f.Close()

	prev, err := report.Inspect(f)
	if err != nil {
		logger.Warn(
			"unable to inspect existing report",
			"path", path,
			"err", err,
		)

		return
	}

	changes := report.Diff(prev, rep.Snapshot())
	if changes.Empty() {
		logger.Info("report unchanged")

		return
	}

	logger.Info(
		"report changed",
		"added", changes.Added,
		"removed", changes.Removed,
		"fingerprint_changed", changes.FingerprintChanged,
	)
}
