// Package render formats validation results as plain text for e-mail
// bodies and terminal output.
package render

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"invoicecheck/internal/domain"
)

// MaxSectionLen caps each grouped section so a rendered result fits in
// chat and mail previews.
const MaxSectionLen = 2900

type labels struct {
	status  map[domain.OverallStatus]string
	passed  string
	present string
	missing string
	unclear string
	found   string
	heading string
	fix     string
}

var textLabels = map[domain.Language]labels{
	domain.LanguageEnglish: {
		status: map[domain.OverallStatus]string{
			domain.OverallStatusApproved:           "Approved",
			domain.OverallStatusMissingInformation: "Missing information",
			domain.OverallStatusInvalid:            "Invalid",
		},
		passed:  "%d/%d checks passed",
		present: "Found and OK:",
		missing: "Missing:",
		unclear: "Unclear:",
		found:   "found",
		heading: "Status",
		fix:     "Fix",
	},
	domain.LanguageDanish: {
		status: map[domain.OverallStatus]string{
			domain.OverallStatusApproved:           "Godkendt",
			domain.OverallStatusMissingInformation: "Mangler information",
			domain.OverallStatusInvalid:            "Ugyldig",
		},
		passed:  "%d/%d tjek bestået",
		present: "Fundet og OK:",
		missing: "Mangler:",
		unclear: "Uklart:",
		found:   "fundet",
		heading: "Status",
		fix:     "Rettelse",
	},
}

// StatusMarker returns the ASCII marker used for a check status.
func StatusMarker(s domain.CheckStatus) string {
	switch s {
	case domain.CheckStatusPresent:
		return "[OK]"
	case domain.CheckStatusMissing:
		return "[X]"
	default:
		return "[?]"
	}
}

// Text renders result in English under the given label.
func Text(result *domain.ValidationResult, label string) string {
	return Localized(result, label, domain.LanguageEnglish)
}

// Localized renders result with headings in lang. Unknown languages use English.
func Localized(result *domain.ValidationResult, label string, lang domain.Language) string {
	l, ok := textLabels[lang]
	if !ok {
		l = textLabels[domain.LanguageEnglish]
	}

	var present, missing, unclear []domain.CheckResult
	for _, c := range result.Checks {
		switch c.Status {
		case domain.CheckStatusPresent:
			present = append(present, c)
		case domain.CheckStatusMissing:
			missing = append(missing, c)
		case domain.CheckStatusUnclear:
			unclear = append(unclear, c)
		}
	}
	total := len(present) + len(missing) + len(unclear)

	status, ok := l.status[result.OverallStatus]
	if !ok {
		status = string(result.OverallStatus)
	}

	var sections []string
	sections = append(sections, fmt.Sprintf("%s\n%s: %s\n"+l.passed,
		label, l.heading, status, len(present), total))

	if len(present) > 0 {
		lines := []string{l.present}
		for _, c := range present {
			line := StatusMarker(c.Status) + " " + c.Requirement
			if c.FoundValue != nil && *c.FoundValue != "" {
				line += ": " + *c.FoundValue
			}
			lines = append(lines, line)
		}
		sections = append(sections, truncate(strings.Join(lines, "\n")))
	}

	if len(missing) > 0 {
		lines := []string{l.missing}
		for _, c := range missing {
			lines = append(lines, StatusMarker(c.Status)+" "+c.Requirement)
			if c.FixRecommendation != nil && *c.FixRecommendation != "" {
				lines = append(lines, "    "+l.fix+": "+*c.FixRecommendation)
			}
		}
		sections = append(sections, truncate(strings.Join(lines, "\n")))
	}

	if len(unclear) > 0 {
		lines := []string{l.unclear}
		for _, c := range unclear {
			line := StatusMarker(c.Status) + " " + c.Requirement
			if c.FoundValue != nil && *c.FoundValue != "" {
				line += " (" + l.found + ": " + *c.FoundValue + ")"
			}
			lines = append(lines, line)
			if c.FixRecommendation != nil && *c.FixRecommendation != "" {
				lines = append(lines, "    "+l.fix+": "+*c.FixRecommendation)
			}
		}
		sections = append(sections, truncate(strings.Join(lines, "\n")))
	}

	if result.Summary != "" {
		sections = append(sections, result.Summary)
	}

	return strings.Join(sections, "\n\n") + "\n"
}

// truncate cuts s to MaxSectionLen bytes on a rune boundary and marks the cut.
func truncate(s string) string {
	if len(s) <= MaxSectionLen {
		return s
	}
	cut := MaxSectionLen
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut] + "\n..."
}
