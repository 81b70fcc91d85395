package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/sig-0/kycreport/report"
)

var errUnableToGenerate = errors.New("unable to generate report")

// Page serves the rendered HTML report, byte-identical to the written file.
// The report fingerprint is the page ETag
func (s *Server) Page(w http.ResponseWriter, r *http.Request) {
	rep, ok := s.generate(w, r)
	if !ok {
		return
	}

	if notModified(w, r, rep.Fingerprint) {
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)

	//nolint:errcheck // Fine to ignore
	_, _ = w.Write([]byte(strings.Join(rep.Lines, "\n") + "\n"))
}

// Exchanges serves the listed exchanges, by descending score
func (s *Server) Exchanges(w http.ResponseWriter, r *http.Request) {
	rep, ok := s.generate(w, r)
	if !ok {
		return
	}

	writeJSON(w, http.StatusOK, &ExchangesResponse{
		Results:     rep.Exchanges,
		Fingerprint: rep.Fingerprint,
	})
}

// Snapshot serves the report summary, in the same shape the inspect command prints
func (s *Server) Snapshot(w http.ResponseWriter, r *http.Request) {
	rep, ok := s.generate(w, r)
	if !ok {
		return
	}

	if notModified(w, r, rep.Fingerprint) {
		return
	}

	writeJSON(w, http.StatusOK, rep.Snapshot())
}

// generate fetches the current report, writing an error response on failure
func (s *Server) generate(w http.ResponseWriter, r *http.Request) (*report.Report, bool) {
	rep, err := s.source.Report(r.Context())
	if err != nil || rep == nil {
		s.logger.Error(
			"unable to generate report",
			"err", err,
		)

		writeError(
			w,
			http.StatusInternalServerError,
			errUnableToGenerate,
		)

		return nil, false
	}

	return rep, true
}

// notModified sets the fingerprint ETag, and answers 304
// if the client already holds the same report
func notModified(w http.ResponseWriter, r *http.Request, fingerprint string) bool {
	if fingerprint == "" {
		return false
	}

	etag := fmt.Sprintf("%q", fingerprint)
	w.Header().Set("ETag", etag)

	if r.Header.Get("If-None-Match") != etag {
		return false
	}

	w.WriteHeader(http.StatusNotModified)

	return true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	_ = json.NewEncoder(w).Encode(v) //nolint:errcheck // Fine to ignore
}

func writeError(w http.ResponseWriter, status int, err error) {
	resp := &ErrorResponse{
		Error: err.Error(),
	}

	writeJSON(w, status, resp)
}
