package mock

import (
	"context"

	"github.com/sig-0/kycreport/report"
)

type ReportDelegate func(context.Context) (*report.Report, error)

type Source struct {
	ReportFn ReportDelegate
}

func (m *Source) Report(ctx context.Context) (*report.Report, error) {
	if m.ReportFn != nil {
		return m.ReportFn(ctx)
	}

	return nil, nil
}
