package errs

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
)

// Report is the canonical structured error value produced anywhere in the
// analysis core. It carries enough context — the span, and a Data bag of
// involved types/names/indices — for a driver to render a human-readable
// message; the core itself never formats one (spec §6).
type Report struct {
	Code    Code
	Phase   Phase
	Message string
	Span    Span
	Data    map[string]any
}

// Error implements the error interface with a compact one-line rendering.
// This is NOT the human-readable message spec §6 asks drivers to produce;
// it exists so *Report satisfies error and composes with errors.Is/As.
func (r *Report) Error() string {
	if r == nil {
		return "<nil report>"
	}
	if r.Message != "" {
		return fmt.Sprintf("%s: %s (%s)", r.Code, r.Message, r.Span)
	}
	return fmt.Sprintf("%s (%s)", r.Code, r.Span)
}

// New constructs a Report, copying data so later mutation of the caller's
// map doesn't retroactively change an already-returned error.
func New(code Code, phase Phase, span Span, message string, data map[string]any) *Report {
	cp := make(map[string]any, len(data))
	for k, v := range data {
		cp[k] = v
	}
	return &Report{Code: code, Phase: phase, Message: message, Span: span, Data: cp}
}

// As extracts a *Report from an error chain, mirroring ailang's
// errors.AsReport helper.
func As(err error) (*Report, bool) {
	var r *Report
	if errors.As(err, &r) {
		return r, true
	}
	return nil, false
}

// jsonReport is Report's wire shape: Data keys are sorted so repeated runs
// over the same program produce byte-identical diagnostics (U8 in spec §8
// demands structurally identical Program values across runs; diagnostics
// should be no less deterministic).
type jsonReport struct {
	Code    Code           `json:"code"`
	Phase   Phase          `json:"phase"`
	Message string         `json:"message"`
	Span    Span           `json:"span"`
	Data    map[string]any `json:"data,omitempty"`
}

// ToJSON renders the report as deterministic JSON.
func (r *Report) ToJSON() (string, error) {
	keys := make([]string, 0, len(r.Data))
	for k := range r.Data {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	ordered := make(map[string]any, len(r.Data))
	for _, k := range keys {
		ordered[k] = r.Data[k]
	}
	b, err := json.MarshalIndent(jsonReport{
		Code: r.Code, Phase: r.Phase, Message: r.Message, Span: r.Span, Data: ordered,
	}, "", "  ")
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// Set is a deduplicating, position-sorted collection of reports, mirroring
// the teacher's walker.errorSet / walker.getErrors pattern
// (internal/analyzer/analyzer.go) but keyed on (span, code) instead of
// (line, column, code) since Span already carries the file.
type Set struct {
	byKey map[string]*Report
	order []string
}

func NewSet() *Set { return &Set{byKey: make(map[string]*Report)} }

func (s *Set) Add(r *Report) {
	if r == nil {
		return
	}
	key := fmt.Sprintf("%s:%d:%d:%s", r.Span.File, r.Span.StartLine, r.Span.StartCol, r.Code)
	if _, exists := s.byKey[key]; !exists {
		s.order = append(s.order, key)
	}
	s.byKey[key] = r
}

func (s *Set) Empty() bool { return len(s.byKey) == 0 }

// Reports returns every report, sorted by source position then code.
func (s *Set) Reports() []*Report {
	out := make([]*Report, 0, len(s.byKey))
	for _, k := range s.order {
		out = append(out, s.byKey[k])
	}
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.Span.StartLine != b.Span.StartLine {
			return a.Span.StartLine < b.Span.StartLine
		}
		if a.Span.StartCol != b.Span.StartCol {
			return a.Span.StartCol < b.Span.StartCol
		}
		return a.Code < b.Code
	})
	return out
}
