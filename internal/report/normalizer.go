package report

import (
	"fmt"

	"invoicecheck/internal/domain"
)

// passStatus is the upstream pass/fail value that maps to an approved result.
const passStatus = "pass"

// LinePolicy decides what happens to log lines no parsing rule matched.
type LinePolicy int

const (
	// SkipUnrecognized drops unmatched lines silently.
	SkipUnrecognized LinePolicy = iota
	// WarnUnrecognized surfaces each unmatched line as a warning.
	WarnUnrecognized
)

func (p LinePolicy) String() string {
	switch p {
	case SkipUnrecognized:
		return "skip"
	case WarnUnrecognized:
		return "warn"
	default:
		return fmt.Sprintf("LinePolicy(%d)", int(p))
	}
}

// ParseLinePolicy converts "skip" or "warn" into a LinePolicy.
func ParseLinePolicy(s string) (LinePolicy, error) {
	switch s {
	case "", "skip":
		return SkipUnrecognized, nil
	case "warn":
		return WarnUnrecognized, nil
	default:
		return SkipUnrecognized, fmt.Errorf("unknown unrecognized-line policy %q", s)
	}
}

// Options configures a Normalizer.
type Options struct {
	OnUnrecognizedLine LinePolicy
	// Observer, when set, is called for every unmatched non-blank line
	// regardless of policy.
	Observer func(UnrecognizedLine)
}

// Normalizer turns reports into ValidationResults. The zero value skips
// unrecognized lines. It holds no mutable state and is safe for concurrent use.
type Normalizer struct {
	opts Options
}

// NewNormalizer creates a Normalizer with the given options.
func NewNormalizer(opts Options) *Normalizer {
	return &Normalizer{opts: opts}
}

// Normalize normalizes r with the default options.
func Normalize(r Report, invoiceType domain.InvoiceType) domain.ValidationResult {
	var n Normalizer
	return n.Normalize(r, invoiceType)
}

// Normalize produces the canonical result for r. It never fails: content
// it cannot interpret is handled by the unrecognized-line policy.
func (n *Normalizer) Normalize(r Report, invoiceType domain.InvoiceType) domain.ValidationResult {
	switch r.kind {
	case KindLog:
		return n.fromLog(r.log, invoiceType)
	case KindStructured:
		out := r.structured
		out.InvoiceType = invoiceType
		return out
	default:
		return n.fromLog(LogReport{}, invoiceType)
	}
}

func (n *Normalizer) fromLog(l LogReport, invoiceType domain.InvoiceType) domain.ValidationResult {
	parsed := parseLog(l.Logs, n.opts.OnUnrecognizedLine)
	if n.opts.Observer != nil {
		for _, u := range parsed.unrecognized {
			n.opts.Observer(u)
		}
	}

	status := domain.OverallStatusMissingInformation
	if l.Status == passStatus {
		status = domain.OverallStatusApproved
	}

	return domain.ValidationResult{
		OverallStatus:     status,
		InvoiceType:       invoiceType,
		Checks:            parsed.checks,
		MissingItems:      parsed.missingItems,
		Warnings:          parsed.warnings,
		LayoutSuggestions: []domain.LayoutSuggestion{},
		Summary:           l.Summary,
	}
}
