package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// Snapshot is the inspectable summary of a written report
type Snapshot struct {
	// Exchange names, in document order
	Names []string `json:"names"`

	// The trailing content fingerprint, if any
	Fingerprint string `json:"fingerprint"`
}

// Changes are the differences between two report snapshots
type Changes struct {
	Added              []string `json:"added"`
	Removed            []string `json:"removed"`
	FingerprintChanged bool     `json:"fingerprint_changed"`
}

// Empty checks if the snapshots describe the same report
func (c Changes) Empty() bool {
	return len(c.Added) == 0 && len(c.Removed) == 0 && !c.FingerprintChanged
}

// Inspect parses a previously written report
func Inspect(r io.Reader) (*Snapshot, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("unable to parse report, %w", err)
	}

	snapshot := &Snapshot{
		Names: make([]string, 0),
	}

	doc.Find("h2[id]").Each(func(_ int, s *goquery.Selection) {
		id, _ := s.Attr("id")
		snapshot.Names = append(snapshot.Names, id)
	})

	// The fingerprint is the last comment in the document
	for _, n := range doc.Nodes {
		if c := lastComment(n); c != nil {
			snapshot.Fingerprint = strings.TrimSpace(c.Data)
		}
	}

	return snapshot, nil
}

// lastComment returns the last comment node under n, in document order
func lastComment(n *html.Node) *html.Node {
	for child := n.LastChild; child != nil; child = child.PrevSibling {
		if found := lastComment(child); found != nil {
			return found
		}

		if child.Type == html.CommentNode {
			return child
		}
	}

	return nil
}

// Diff compares a previous report snapshot against the next one
func Diff(prev, next *Snapshot) Changes {
	var (
		changes = Changes{
			FingerprintChanged: prev.Fingerprint != next.Fingerprint,
		}

		prevNames = make(map[string]struct{}, len(prev.Names))
		nextNames = make(map[string]struct{}, len(next.Names))
	)

	for _, name := range prev.Names {
		prevNames[name] = struct{}{}
	}

	for _, name := range next.Names {
		nextNames[name] = struct{}{}

		if _, ok := prevNames[name]; !ok {
			changes.Added = append(changes.Added, name)
		}
	}

	for _, name := range prev.Names {
		if _, ok := nextNames[name]; !ok {
			changes.Removed = append(changes.Removed, name)
		}
	}

	return changes
}
