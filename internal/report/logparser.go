package report

import (
	"fmt"
	"strings"

	"invoicecheck/internal/domain"
)

const (
	errorsHeader   = "Errors ("
	approvedHeader = "Approved ("
	missingPrefix  = "- MISSING:"
	errorPrefix    = "- ERROR:"
	warningPrefix  = "- WARNING:"
	itemPrefix     = "- "
	foundMarker    = " (found:"
	valueSeparator = ": "
)

type section int

const (
	sectionNone section = iota
	sectionErrors
	sectionApproved
)

// UnrecognizedLine is a non-blank log line no rule matched.
type UnrecognizedLine struct {
	Number int
	Text   string
}

// parsedLog accumulates the facts recovered from a log, in encounter order.
type parsedLog struct {
	checks       []domain.CheckResult
	missingItems []string
	warnings     []string
	unrecognized []UnrecognizedLine
}

// parseLog runs the section state machine over logs one line at a time.
// Under WarnUnrecognized, unmatched lines become warnings at the position
// they were encountered.
func parseLog(logs string, policy LinePolicy) parsedLog {
	out := parsedLog{
		checks:       []domain.CheckResult{},
		missingItems: []string{},
		warnings:     []string{},
	}
	current := sectionNone

	for i, raw := range strings.Split(logs, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}

		switch {
		case strings.HasPrefix(line, errorsHeader):
			current = sectionErrors
			continue
		case strings.HasPrefix(line, approvedHeader):
			current = sectionApproved
			continue
		}

		if out.apply(line, current) {
			continue
		}
		u := UnrecognizedLine{Number: i + 1, Text: line}
		out.unrecognized = append(out.unrecognized, u)
		if policy == WarnUnrecognized {
			out.warnings = append(out.warnings, fmt.Sprintf("unrecognized line %d: %s", u.Number, u.Text))
		}
	}
	return out
}

// apply emits whatever line contributes and reports whether any rule matched.
func (p *parsedLog) apply(line string, current section) bool {
	switch {
	case strings.HasPrefix(line, missingPrefix):
		requirement := strings.TrimSpace(strings.TrimPrefix(line, missingPrefix))
		if requirement == "" {
			return false
		}
		p.checks = append(p.checks, domain.CheckResult{
			Requirement: requirement,
			Status:      domain.CheckStatusMissing,
		})
		p.missingItems = append(p.missingItems, requirement)
		return true

	case strings.HasPrefix(line, errorPrefix):
		rest := strings.TrimSpace(strings.TrimPrefix(line, errorPrefix))
		requirement, _, _ := strings.Cut(rest, foundMarker)
		if requirement == "" {
			return false
		}
		p.checks = append(p.checks, domain.CheckResult{
			Requirement: requirement,
			Status:      domain.CheckStatusUnclear,
		})
		return true

	case strings.HasPrefix(line, warningPrefix):
		p.warnings = append(p.warnings, strings.TrimSpace(strings.TrimPrefix(line, warningPrefix)))
		return true

	case current == sectionApproved && strings.HasPrefix(line, itemPrefix):
		requirement, value, hasValue := strings.Cut(line[len(itemPrefix):], valueSeparator)
		if requirement == "" {
			return false
		}
		check := domain.CheckResult{
			Requirement: requirement,
			Status:      domain.CheckStatusPresent,
		}
		if hasValue {
			check.FoundValue = &value
		}
		p.checks = append(p.checks, check)
		return true
	}
	return false
}
