package server

import (
	"context"

	"github.com/sig-0/kycreport/exchange"
	"github.com/sig-0/kycreport/report"
)

// Source provides the report to preview
type Source interface {
	// Report generates the current report
	Report(context.Context) (*report.Report, error)
}

// ExchangesResponse is the listing served at /exchanges
type ExchangesResponse struct {
	Results     []*exchange.Exchange `json:"results"`
	Fingerprint string               `json:"fingerprint"`
}

// ErrorResponse is the body of any failed request
type ErrorResponse struct {
	Error string `json:"error"`
}
