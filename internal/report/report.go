package report

import (
	"bytes"
	"encoding/json"
	"fmt"

	"invoicecheck/internal/domain"
)

// Kind identifies which variant a Report holds.
type Kind int

const (
	KindStructured Kind = iota + 1
	KindLog
)

func (k Kind) String() string {
	switch k {
	case KindStructured:
		return "structured"
	case KindLog:
		return "log"
	default:
		return "unknown"
	}
}

// LogReport is the legacy text rendering of an upstream analysis.
type LogReport struct {
	Status  string `json:"status"`
	Logs    string `json:"logs"`
	Summary string `json:"summary,omitempty"`
}

// Report is an upstream analysis in one of its two shapes.
// Build it with Structured or FromLog, or decode it with Decode.
type Report struct {
	kind       Kind
	structured domain.ValidationResult
	log        LogReport
}

// Structured wraps a report that already satisfies the ValidationResult contract.
func Structured(r domain.ValidationResult) Report {
	return Report{kind: KindStructured, structured: r}
}

// FromLog wraps a legacy log report.
func FromLog(l LogReport) Report {
	return Report{kind: KindLog, log: l}
}

// Kind returns the variant held by r.
func (r Report) Kind() Kind { return r.kind }

// StructuredResult returns the structured payload and true when r is structured.
func (r Report) StructuredResult() (domain.ValidationResult, bool) {
	return r.structured, r.kind == KindStructured
}

// Log returns the log payload and true when r is a log report.
func (r Report) Log() (LogReport, bool) {
	return r.log, r.kind == KindLog
}

// Decode classifies a JSON payload. An object carrying both "status" and
// "logs" keys is a log report; any other object is taken as structured.
// Log report fields that are not JSON strings read as empty. Payloads that
// are not JSON objects fail with ErrInvalidReport; structured objects whose
// fields have the wrong JSON types fail with ErrMalformedReport.
func Decode(data []byte) (Report, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return Report{}, domain.ErrInvalidReport
	}

	var keys map[string]json.RawMessage
	if err := json.Unmarshal(trimmed, &keys); err != nil {
		return Report{}, fmt.Errorf("%w: %v", domain.ErrInvalidReport, err)
	}

	status, hasStatus := keys["status"]
	logs, hasLogs := keys["logs"]
	if hasStatus && hasLogs {
		return FromLog(LogReport{
			Status:  stringField(status),
			Logs:    stringField(logs),
			Summary: stringField(keys["summary"]),
		}), nil
	}

	var vr domain.ValidationResult
	if err := json.Unmarshal(trimmed, &vr); err != nil {
		return Report{}, fmt.Errorf("%w: %v", domain.ErrMalformedReport, err)
	}
	return Structured(vr), nil
}

// stringField returns raw as a string when it holds a JSON string.
func stringField(raw json.RawMessage) string {
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return ""
	}
	return s
}
