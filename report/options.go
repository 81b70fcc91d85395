package report

import "log/slog"

type Option func(g *Generator)

// WithLogger specifies the logger for the generator and its stages
func WithLogger(l *slog.Logger) Option {
	return func(g *Generator) {
		g.logger = l
	}
}
