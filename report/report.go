package report

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/sig-0/kycreport/exchange"
	"github.com/sig-0/kycreport/filter"
	"github.com/sig-0/kycreport/loader"
	"github.com/sig-0/kycreport/normalize"
	"github.com/sig-0/kycreport/render"
	"github.com/sig-0/kycreport/rules"
)

// Report is a rendered exchange report
type Report struct {
	// The listed exchanges, by descending score
	Exchanges []*exchange.Exchange

	// The HTML lines, written one per line
	Lines []string

	// The trailing content fingerprint
	Fingerprint string
}

// Snapshot returns the inspectable summary of the report
func (r *Report) Snapshot() *Snapshot {
	names := make([]string, 0, len(r.Exchanges))

	fiat, crypto := render.Partition(r.Exchanges)
	for _, e := range append(fiat, crypto...) {
		names = append(names, e.Name)
	}

	return &Snapshot{
		Names:       names,
		Fingerprint: r.Fingerprint,
	}
}

// Generator runs the report pipeline: load, filter, normalize, render
type Generator struct {
	logger *slog.Logger
	rules  *rules.Rules
}

// New creates a new report generator over the given rule set
func New(r *rules.Rules, opts ...Option) *Generator {
	g := &Generator{
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
		rules:  r,
	}

	for _, opt := range opts {
		opt(g)
	}

	return g
}

// GenerateFile generates the report from the JSON document at the given path
func (g *Generator) GenerateFile(path string) (*Report, error) {
	records, err := loader.Load(path)
	if err != nil {
		return nil, err
	}

	return g.generate(records)
}

// Generate generates the report from the given JSON document
func (g *Generator) Generate(r io.Reader) (*Report, error) {
	records, err := loader.Decode(r)
	if err != nil {
		return nil, err
	}

	return g.generate(records)
}

func (g *Generator) generate(records []*exchange.Raw) (*Report, error) {
	g.logger.Info(
		"loaded exchanges",
		"count", len(records),
	)

	passed := filter.New(g.rules, filter.WithLogger(g.logger)).Apply(records)

	g.logger.Info(
		"filtered exchanges",
		"listed", len(passed),
		"dropped", len(records)-len(passed),
	)

	exchanges, err := normalize.New(g.rules, normalize.WithLogger(g.logger)).NormalizeAll(passed)
	if err != nil {
		return nil, err
	}

	page, err := render.Render(exchanges)
	if err != nil {
		return nil, fmt.Errorf("unable to render report, %w", err)
	}

	return &Report{
		Exchanges:   page.Exchanges,
		Lines:       page.Lines,
		Fingerprint: page.Fingerprint,
	}, nil
}

// Write writes the report to the file at the given path, replacing it
func (g *Generator) Write(r *Report, path string) error {
	if err := render.Write(path, r.Lines); err != nil {
		return err
	}

	g.logger.Info(
		"report written",
		"path", path,
		"exchanges", len(r.Exchanges),
		"fingerprint", r.Fingerprint,
	)

	return nil
}
