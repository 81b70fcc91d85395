package exchange

import (
	"encoding/json"
	"errors"
	"fmt"
)

var (
	ErrInvalidCustody = errors.New("invalid custodial value")
	ErrInvalidURL     = errors.New("invalid url value")
	ErrInvalidOnion   = errors.New("invalid tor-onion value")
)

// falseOnion is the literal the source data uses for "no onion service"
const falseOnion = "false"

// Custody describes whether the exchange holds user funds during a trade
type Custody uint8

const (
	custodyUnset Custody = iota
	CustodyFull
	CustodySemi
	CustodyNone
)

func (c Custody) String() string {
	switch c {
	case CustodyFull:
		return "custodial"
	case CustodySemi:
		return "semi-custodial"
	case CustodyNone:
		return "non-custodial"
	default:
		return "unset"
	}
}

// UnmarshalJSON accepts true, false or the literal "semi"
func (c *Custody) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		return fmt.Errorf("%w: null", ErrInvalidCustody)
	}

	var b bool
	if err := json.Unmarshal(data, &b); err == nil {
		if b {
			*c = CustodyFull
		} else {
			*c = CustodyNone
		}

		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err == nil && s == "semi" {
		*c = CustodySemi

		return nil
	}

	return fmt.Errorf("%w: %s", ErrInvalidCustody, string(data))
}

// URLs is the clearweb url field, given either as a string or a list of strings
type URLs struct {
	values []string
	list   bool
}

// SingleURL creates a url field that was given as a plain string
func SingleURL(url string) URLs {
	return URLs{values: []string{url}}
}

// URLList creates a url field that was given as a list
func URLList(urls ...string) URLs {
	return URLs{values: urls, list: true}
}

// First returns the url to display, which is the first list element for lists
func (u URLs) First() string {
	if len(u.values) == 0 {
		return ""
	}

	return u.values[0]
}

// Matches reports whether the field was given as the plain string s.
// A list never matches, even if it holds only s
func (u URLs) Matches(s string) bool {
	return !u.list && len(u.values) == 1 && u.values[0] == s
}

func (u *URLs) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*u = URLs{}

		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*u = SingleURL(s)

		return nil
	}

	var list []string
	if err := json.Unmarshal(data, &list); err != nil || len(list) == 0 {
		return fmt.Errorf("%w: %s", ErrInvalidURL, string(data))
	}

	*u = URLList(list...)

	return nil
}

// Onion is the onion service url. Empty when the source gave
// nothing, null, false or the literal "false"
type Onion string

func (o Onion) String() string {
	return string(o)
}

func (o *Onion) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		if s == falseOnion {
			s = ""
		}

		*o = Onion(s)

		return nil
	}

	var b *bool
	if err := json.Unmarshal(data, &b); err == nil && (b == nil || !*b) {
		*o = ""

		return nil
	}

	return fmt.Errorf("%w: %s", ErrInvalidOnion, string(data))
}

// TradeType labels an exchange as p2p or centralized, plus its custody model
type TradeType string

// NewTradeType builds the label, ex. "p2p semi-custodial"
func NewTradeType(p2p bool, custody Custody) TradeType {
	kind := "centralized"
	if p2p {
		kind = "p2p"
	}

	return TradeType(kind + " " + custody.String())
}

func (t TradeType) String() string {
	return string(t)
}

// Exchange is the canonical, display-ready exchange entity
type Exchange struct {
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Currencies  string    `json:"currencies"`
	TradeType   TradeType `json:"trade_type"`
	URL         string    `json:"url"`
	Onion       string    `json:"onion"`
	Score       float64   `json:"score"`
	Fiat        bool      `json:"fiat"`
}

// Rating returns the displayed rating. Crypto-only exchanges
// are shown half a point higher than their score
func (e *Exchange) Rating() float64 {
	if e.Fiat {
		return e.Score
	}

	return e.Score + 0.5
}
