// Package rules holds the static tables that decide which exchanges
// are listed, and how they are presented: the requirement table,
// the ban list, manual score boosts and the supported currency strings.
//
// The default tables are embedded (default.toml), and can be replaced
// by a user supplied TOML file of the same shape.
package rules

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/pelletier/go-toml"

	"github.com/sig-0/kycreport/exchange"
)

var (
	ErrInvalidRequirement = errors.New("invalid requirement")
	ErrInvalidOperator    = errors.New("invalid operator")
	ErrInvalidValue       = errors.New("invalid requirement value")
)

//go:embed default.toml
var defaultRules []byte

// Operator is a requirement comparison operator
type Operator string

const (
	OpEq Operator = "=="
	OpNe Operator = "!="
	OpLt Operator = "<"
	OpLe Operator = "<="
	OpGt Operator = ">"
	OpGe Operator = ">="
)

func (o Operator) String() string {
	return string(o)
}

// ordered reports whether the operator needs numeric operands
func (o Operator) ordered() bool {
	switch o {
	case OpLt, OpLe, OpGt, OpGe:
		return true
	default:
		return false
	}
}

func (o Operator) valid() bool {
	return o == OpEq || o == OpNe || o.ordered()
}

// Requirement is a single listing rule: <field> <op> <threshold>
type Requirement struct {
	Field     string
	Op        Operator
	Threshold exchange.Value
}

func (r Requirement) String() string {
	return fmt.Sprintf("%s %s %s", r.Field, r.Op, r.Threshold)
}

// Rules is the immutable set of listing tables
type Rules struct {
	banned       map[string]struct{}
	boosts       map[string]float64
	currencies   map[string]string
	requirements []Requirement
}

// New creates a rule set from the given tables. The tables are copied
func New(
	requirements []Requirement,
	banned []string,
	boosts map[string]float64,
	currencies map[string]string,
) (*Rules, error) {
	for _, req := range requirements {
		if err := validateRequirement(req); err != nil {
			return nil, err
		}
	}

	r := &Rules{
		banned:       make(map[string]struct{}, len(banned)),
		boosts:       make(map[string]float64, len(boosts)),
		currencies:   make(map[string]string, len(currencies)),
		requirements: append([]Requirement(nil), requirements...),
	}

	for _, name := range banned {
		r.banned[name] = struct{}{}
	}

	for name, boost := range boosts {
		r.boosts[name] = boost
	}

	for name, list := range currencies {
		r.currencies[name] = list
	}

	return r, nil
}

// Default returns the embedded rule set
func Default() (*Rules, error) {
	r, err := Parse(defaultRules)
	if err != nil {
		return nil, fmt.Errorf("unable to parse default rules, %w", err)
	}

	return r, nil
}

// Read reads a rule set from the TOML file at the given path
func Read(path string) (*Rules, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	return Parse(content)
}

// Parse parses a TOML encoded rule set
func Parse(content []byte) (*Rules, error) {
	var f file

	if err := toml.Unmarshal(content, &f); err != nil {
		return nil, err
	}

	requirements := make([]Requirement, 0, len(f.Requirements))

	for _, entry := range f.Requirements {
		req, err := entry.requirement()
		if err != nil {
			return nil, err
		}

		requirements = append(requirements, req)
	}

	return New(requirements, f.Banned, f.ScoreBoosts, f.Currencies)
}

// Requirements returns the requirement table, in evaluation order
func (r *Rules) Requirements() []Requirement {
	return append([]Requirement(nil), r.requirements...)
}

// IsBanned checks if the exchange was manually removed
func (r *Rules) IsBanned(name string) bool {
	_, ok := r.banned[name]

	return ok
}

// Boost returns the manual score change for the exchange, if any
func (r *Rules) Boost(name string) float64 {
	return r.boosts[name]
}

// Currencies returns the supported currencies string for the exchange
func (r *Rules) Currencies(name string) (string, bool) {
	list, ok := r.currencies[name]

	return list, ok
}

// file is the TOML shape of a rule set
type file struct {
	ScoreBoosts  map[string]float64 `toml:"score_boosts"`
	Currencies   map[string]string  `toml:"currencies"`
	Banned       []string           `toml:"banned"`
	Requirements []requirementEntry `toml:"requirements"`
}

type requirementEntry struct {
	Field string `toml:"field"`
	Op    string `toml:"op"`
	Value string `toml:"value"`
}

func (e requirementEntry) requirement() (Requirement, error) {
	threshold, err := parseValue(e.Value)
	if err != nil {
		return Requirement{}, fmt.Errorf("%q: %w", e.Field, err)
	}

	req := Requirement{
		Field:     e.Field,
		Op:        Operator(e.Op),
		Threshold: threshold,
	}

	return req, validateRequirement(req)
}

// parseValue parses a threshold literal into a bool or a number
func parseValue(raw string) (exchange.Value, error) {
	switch raw {
	case "true":
		return exchange.BoolValue(true), nil
	case "false":
		return exchange.BoolValue(false), nil
	}

	n, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return exchange.Value{}, fmt.Errorf("%w %q", ErrInvalidValue, raw)
	}

	return exchange.NumberValue(n), nil
}

func validateRequirement(req Requirement) error {
	if req.Field == "" {
		return fmt.Errorf("%w: missing field", ErrInvalidRequirement)
	}

	if !req.Op.valid() {
		return fmt.Errorf("%w %q for %q", ErrInvalidOperator, req.Op, req.Field)
	}

	switch req.Threshold.Kind {
	case exchange.KindBool:
		if req.Op.ordered() {
			return fmt.Errorf("%w %q for boolean %q", ErrInvalidOperator, req.Op, req.Field)
		}
	case exchange.KindNumber:
	default:
		return fmt.Errorf("%w for %q", ErrInvalidValue, req.Field)
	}

	return nil
}
