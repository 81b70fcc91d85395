// Package render turns the listed exchanges into the static HTML report.
// The report is produced as a sequence of lines, written verbatim
package render

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/sig-0/kycreport/exchange"
)

var ErrOutputWrite = errors.New("unable to write output")

var preamble = []string{
	`<!DOCTYPE HTML PUBLIC><body style="background-color:#d3d3d3;"><link rel = "icon" href = "images/anon.png"><title>BASH KYC - Fiat Exchanges</title>`,
	`<style>`,
	`h2{text-align:center;display: block;font-size: 1.75em;margin-top: 0.67em;margin-bottom: 0.67em;margin-left: 0;margin-right: 0;font-weight: bold;}`,
	`img {float: left;}`,
	`body{margin:40px auto;max-width:1000px;line-height:1.6;font-size:18px;color:#444;padding:0 10px}`,
	`</style>`,
	`<strong>Note</strong>: Some exchanges "unofficially" support certain currencies.`,
	`For example, Bisq can be used to indirectly trade Monero and Litecoin (XMR -> BTC -> LTC), even though it technically only supports Bitcoin.`,
	`Currencies which can be traded indirectly will be marked with "(i)".`,
	`For example, XMR(i) or LTC(i).`,
	`<br><br>`,
}

var fiatSection = []string{
	`<h1 style="font-size:250%;" id="fiat">Buy/Sell Cryptocurrency With Fiat</h1>`,
	`These exchanges provide KYC-free methods to buy cryptocurrency with fiat, or with other cryptocurrencies.<br><br>`,
}

var cryptoSection = []string{
	`<h1 style="font-size:250%;" id="crypto">Cryptocurrency-Only Exchanges/Swaps</h1>`,
	`These exchanges support KYC-free trading between cryptocurrencies, but cannot be used to convert to/from fiat.<br><br>`,
}

var footer = []string{
	`<br><br><br><strong>This list was not created by me</strong>, it is from <a href="https://kycnot.me/" target="_blank" rel="nofollow noreferrer noopener">kycnot.me</a>.`,
	`It has been modified, by removing exchanges which are too KYC-friendly, tweaking some rankings, and simplifying by reducing the amount of information shown.`,
	`Full credit goes to kycnotme.`,
}

// entrySeparator closes every exchange block
const entrySeparator = `<br><br>`

// Sort orders the exchanges by descending score.
// Exchanges with equal scores keep their input order
func Sort(exchanges []*exchange.Exchange) []*exchange.Exchange {
	sorted := append([]*exchange.Exchange(nil), exchanges...)

	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Score > sorted[j].Score
	})

	return sorted
}

// Partition splits the exchanges into fiat-accepting and crypto-only groups, keeping order
func Partition(exchanges []*exchange.Exchange) (fiat, crypto []*exchange.Exchange) {
	for _, e := range exchanges {
		if e.Fiat {
			fiat = append(fiat, e)

			continue
		}

		crypto = append(crypto, e)
	}

	return fiat, crypto
}

// Page is a rendered report document
type Page struct {
	// The exchanges, by descending score
	Exchanges []*exchange.Exchange

	// The HTML lines, written one per line
	Lines []string

	// The content fingerprint closing the document
	Fingerprint string
}

// Render renders the full report. The exchanges are sorted first
func Render(exchanges []*exchange.Exchange) (*Page, error) {
	sorted := Sort(exchanges)

	fingerprint, err := Fingerprint(sorted)
	if err != nil {
		return nil, fmt.Errorf("unable to fingerprint exchanges, %w", err)
	}

	fiat, crypto := Partition(sorted)

	lines := make([]string, 0, len(preamble)+len(footer)+8*len(sorted)+5)

	lines = append(lines, preamble...)

	lines = append(lines, fiatSection...)
	for _, e := range fiat {
		lines = append(lines, Entry(e)...)
	}

	lines = append(lines, cryptoSection...)
	for _, e := range crypto {
		lines = append(lines, Entry(e)...)
	}

	lines = append(lines, footer...)
	lines = append(lines, fmt.Sprintf("<!--%s-->", fingerprint))

	return &Page{
		Exchanges:   sorted,
		Lines:       lines,
		Fingerprint: fingerprint,
	}, nil
}

// Entry renders a single exchange block
func Entry(e *exchange.Exchange) []string {
	lines := []string{
		fmt.Sprintf(`<h2 style="display: inline;" id="%s">%s</h2><br>`, e.Name, e.Name),
		fmt.Sprintf(`%s<br>`, e.Description),
		fmt.Sprintf(`<strong>rating</strong>: %s/5&emsp;`, FormatRating(e.Rating())),
		fmt.Sprintf(`<strong>type</strong>: %s&emsp;`, e.TradeType),
		fmt.Sprintf(`<br><strong>supported currencies</strong>: %s`, e.Currencies),
	}

	if e.URL != "" {
		lines = append(lines, fmt.Sprintf(
			`<br><strong>website</strong>: <a href="%s" target="_blank" rel="nofollow noreferrer noopener">%s</a>`,
			e.URL,
			e.URL,
		))
	}

	if e.Onion != "" {
		lines = append(lines, fmt.Sprintf(
			`<br><strong>onionsite</strong>: <a href="%s" target="_blank" rel="nofollow noreferrer noopener">%s</a></a>`,
			e.Onion,
			e.Onion,
		))
	}

	return append(lines, entrySeparator)
}

// FormatRating formats a rating with at least one decimal place (3.0, 4.5)
func FormatRating(rating float64) string {
	s := strconv.FormatFloat(rating, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}

	return s
}

// Write writes the lines to the file at path, one per line, replacing any existing file
func Write(path string, lines []string) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrOutputWrite, err)
	}

	defer func() {
		if closeErr := f.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("%w: %w", ErrOutputWrite, closeErr)
		}
	}()

	w := bufio.NewWriter(f)

	for _, line := range lines {
		if _, err = w.WriteString(line + "\n"); err != nil {
			return fmt.Errorf("%w: %w", ErrOutputWrite, err)
		}
	}

	if err = w.Flush(); err != nil {
		return fmt.Errorf("%w: %w", ErrOutputWrite, err)
	}

	return nil
}
