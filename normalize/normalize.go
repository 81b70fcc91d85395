package normalize

import (
	"fmt"
	"io"
	"log/slog"
	"math"
	"strings"

	"github.com/sig-0/kycreport/exchange"
	"github.com/sig-0/kycreport/rules"
)

// MissingCurrencies is shown in place of an exchange's
// currency list when the currency table has no entry for it
const MissingCurrencies = "ERROR"

// paragraphBreak marks the end of the short description
const paragraphBreak = "<br>"

// Normalizer maps filtered raw records into canonical exchanges
type Normalizer struct {
	rules  *rules.Rules
	logger *slog.Logger
}

// Option configures the normalizer
type Option func(n *Normalizer)

// WithLogger specifies the logger for the normalizer
func WithLogger(l *slog.Logger) Option {
	return func(n *Normalizer) {
		n.logger = l
	}
}

// New creates a new normalizer over the given rule set
func New(r *rules.Rules, opts ...Option) *Normalizer {
	n := &Normalizer{
		rules:  r,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}

	for _, opt := range opts {
		opt(n)
	}

	return n
}

// Normalize maps a single raw record into its canonical exchange
func (n *Normalizer) Normalize(raw *exchange.Raw) (*exchange.Exchange, error) {
	l, err := raw.Listing()
	if err != nil {
		return nil, err
	}

	currencies, ok := n.rules.Currencies(raw.Name)
	if !ok {
		n.logger.Warn(
			"no supported currencies listed",
			"name", raw.Name,
		)

		currencies = MissingCurrencies
	}

	url := l.URL.First()

	// Onion-only exchanges don't repeat the onion url as the clearweb url
	onion := l.Onion.String()
	if onion != "" && l.URL.Matches(onion) {
		url = ""
	}

	return &exchange.Exchange{
		Name:        raw.Name,
		Description: Description(l.LongDescription),
		Score:       Score(l.Score) + n.rules.Boost(raw.Name),
		Currencies:  currencies,
		Fiat:        l.Cash,
		TradeType:   exchange.NewTradeType(l.P2P, l.Custodial),
		URL:         url,
		Onion:       onion,
	}, nil
}

// NormalizeAll normalizes every record, keeping their order
func (n *Normalizer) NormalizeAll(records []*exchange.Raw) ([]*exchange.Exchange, error) {
	out := make([]*exchange.Exchange, 0, len(records))

	for _, raw := range records {
		e, err := n.Normalize(raw)
		if err != nil {
			return nil, fmt.Errorf("unable to normalize exchange, %w", err)
		}

		out = append(out, e)
	}

	return out, nil
}

// Description returns the first paragraph of the long description, on one line
func Description(long string) string {
	long = strings.ReplaceAll(long, "\n", " ")

	short, _, _ := strings.Cut(long, paragraphBreak)

	return short
}

// Score converts a 0-10 source score to the listed 0-5 scale, before boosts.
// The source score is rounded (half to even) before it is halved
func Score(raw float64) float64 {
	return math.RoundToEven(raw)/2 - 0.5
}
