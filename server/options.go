package server

import (
	"log/slog"

	"github.com/sig-0/kycreport/server/config"
)

// Option configures the preview server
type Option func(s *Server)

// WithLogger specifies the logger for the server, and its request log
func WithLogger(l *slog.Logger) Option {
	return func(s *Server) {
		s.logger = l
	}
}

// WithConfig specifies the listen address and CORS policy of the server.
// The config is validated by New
func WithConfig(c *config.Config) Option {
	return func(s *Server) {
		s.config = c
	}
}
