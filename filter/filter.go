package filter

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/sig-0/kycreport/exchange"
	"github.com/sig-0/kycreport/rules"
)

var (
	errFieldNotComparable = errors.New("field not comparable")
	errKindMismatch       = errors.New("field kind mismatch")
	errUnknownOperator    = errors.New("unknown operator")
)

// Filter drops exchanges that are banned, or that fail a listing requirement
type Filter struct {
	rules  *rules.Rules
	logger *slog.Logger
}

// Option configures the filter
type Option func(f *Filter)

// WithLogger specifies the logger for the filter
func WithLogger(l *slog.Logger) Option {
	return func(f *Filter) {
		f.logger = l
	}
}

// New creates a new filter over the given rule set
func New(r *rules.Rules, opts ...Option) *Filter {
	f := &Filter{
		rules:  r,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}

	for _, opt := range opts {
		opt(f)
	}

	return f
}

// Apply returns the records that pass, in their original order
func (f *Filter) Apply(records []*exchange.Raw) []*exchange.Raw {
	passed := make([]*exchange.Raw, 0, len(records))

	for _, record := range records {
		if f.rules.IsBanned(record.Name) {
			f.logger.Debug(
				"dropping banned exchange",
				"name", record.Name,
			)

			continue
		}

		if failed, err := f.firstFailure(record); failed != nil {
			args := []any{
				"name", record.Name,
				"requirement", failed.String(),
			}

			if err != nil {
				args = append(args, "err", err)
			}

			f.logger.Debug("dropping exchange", args...)

			continue
		}

		passed = append(passed, record)
	}

	return passed
}

// Passes checks if a single record would be listed
func (f *Filter) Passes(record *exchange.Raw) bool {
	if f.rules.IsBanned(record.Name) {
		return false
	}

	failed, _ := f.firstFailure(record)

	return failed == nil
}

// firstFailure returns the first requirement the record fails, if any.
// Evaluation stops at the first failure
func (f *Filter) firstFailure(record *exchange.Raw) (*rules.Requirement, error) {
	for _, req := range f.rules.Requirements() {
		value, ok := record.Field(req.Field)
		if !ok {
			return &req, errFieldNotComparable
		}

		pass, err := Compare(value, req.Op, req.Threshold)
		if err != nil || !pass {
			return &req, err
		}
	}

	return nil, nil
}

// Compare evaluates <value> <op> <threshold>.
// Booleans support equality only, numbers support every operator
func Compare(value exchange.Value, op rules.Operator, threshold exchange.Value) (bool, error) {
	if value.Kind != threshold.Kind {
		return false, fmt.Errorf("%w: %s against %s", errKindMismatch, value.Kind, threshold.Kind)
	}

	if value.Kind == exchange.KindBool {
		switch op {
		case rules.OpEq:
			return value.Bool == threshold.Bool, nil
		case rules.OpNe:
			return value.Bool != threshold.Bool, nil
		default:
			return false, fmt.Errorf("%w %q for booleans", errUnknownOperator, op)
		}
	}

	a, b := value.Number, threshold.Number

	switch op {
	case rules.OpEq:
		return a == b, nil
	case rules.OpNe:
		return a != b, nil
	case rules.OpLt:
		return a < b, nil
	case rules.OpLe:
		return a <= b, nil
	case rules.OpGt:
		return a > b, nil
	case rules.OpGe:
		return a >= b, nil
	default:
		return false, fmt.Errorf("%w %q", errUnknownOperator, op)
	}
}
