package report

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"invoicecheck/internal/domain"
)

func TestParseLog_ErrorLine(t *testing.T) {
	t.Run("found_suffix_stripped", func(t *testing.T) {
		p := parseLog("- ERROR: Sender email (found: not an email)", SkipUnrecognized)
		require.Len(t, p.checks, 1)
		assert.Equal(t, "Sender email", p.checks[0].Requirement)
		assert.Equal(t, domain.CheckStatusUnclear, p.checks[0].Status)
		assert.Nil(t, p.checks[0].FoundValue)
		assert.Empty(t, p.missingItems)
	})

	t.Run("no_found_suffix", func(t *testing.T) {
		p := parseLog("-   ERROR ignored\n- ERROR:   Due date looks odd  ", SkipUnrecognized)
		require.Len(t, p.checks, 1)
		assert.Equal(t, "Due date looks odd", p.checks[0].Requirement)
	})

	t.Run("first_found_marker_wins", func(t *testing.T) {
		p := parseLog("- ERROR: IBAN (found: DK (found: twice))", SkipUnrecognized)
		require.Len(t, p.checks, 1)
		assert.Equal(t, "IBAN", p.checks[0].Requirement)
	})
}

func TestParseLog_MissingLine(t *testing.T) {
	p := parseLog("  - MISSING:   Tax number  \n- MISSING: Tax number", SkipUnrecognized)

	require.Len(t, p.checks, 2)
	assert.Equal(t, "Tax number", p.checks[0].Requirement)
	assert.Equal(t, domain.CheckStatusMissing, p.checks[0].Status)
	assert.Equal(t, []string{"Tax number", "Tax number"}, p.missingItems, "duplicates are kept")
}

func TestParseLog_ApprovedLines(t *testing.T) {
	logs := "Approved (4)\n- Signed\n- Invoice date: 2024-01-15\n- Note: see: attached: file\n- Amount:100"
	p := parseLog(logs, SkipUnrecognized)

	require.Len(t, p.checks, 4)

	assert.Equal(t, "Signed", p.checks[0].Requirement)
	assert.Nil(t, p.checks[0].FoundValue)

	assert.Equal(t, "Invoice date", p.checks[1].Requirement)
	require.NotNil(t, p.checks[1].FoundValue)
	assert.Equal(t, "2024-01-15", *p.checks[1].FoundValue)

	assert.Equal(t, "Note", p.checks[2].Requirement)
	require.NotNil(t, p.checks[2].FoundValue)
	assert.Equal(t, "see: attached: file", *p.checks[2].FoundValue)

	assert.Equal(t, "Amount:100", p.checks[3].Requirement, "split requires colon followed by space")
	assert.Nil(t, p.checks[3].FoundValue)

	for _, c := range p.checks {
		assert.Equal(t, domain.CheckStatusPresent, c.Status)
		assert.Equal(t, "", c.Comment)
	}
}

func TestParseLog_Sections(t *testing.T) {
	t.Run("item_outside_approved_is_ignored", func(t *testing.T) {
		p := parseLog("- Invoice date: 2024-01-15\nErrors (1)\n- Sender: Bob", SkipUnrecognized)
		assert.Empty(t, p.checks)
		assert.Len(t, p.unrecognized, 2)
	})

	t.Run("blank_lines_keep_section", func(t *testing.T) {
		p := parseLog("Approved (2)\n\n\n- A: 1\n   \n- B", SkipUnrecognized)
		require.Len(t, p.checks, 2)
		assert.Empty(t, p.unrecognized)
	})

	t.Run("switch_back_to_errors", func(t *testing.T) {
		p := parseLog("Approved (1)\n- A: 1\nErrors (1)\n- B: 2", SkipUnrecognized)
		require.Len(t, p.checks, 1)
		assert.Equal(t, "A", p.checks[0].Requirement)
	})

	t.Run("prefixed_lines_work_in_any_section", func(t *testing.T) {
		p := parseLog("- MISSING: A\nApproved (1)\n- ERROR: B (found: x)\n- WARNING: C", SkipUnrecognized)
		require.Len(t, p.checks, 2)
		assert.Equal(t, domain.CheckStatusMissing, p.checks[0].Status)
		assert.Equal(t, domain.CheckStatusUnclear, p.checks[1].Status)
		assert.Equal(t, []string{"C"}, p.warnings)
	})

	t.Run("header_needs_parenthesis", func(t *testing.T) {
		p := parseLog("Approved\n- A: 1", SkipUnrecognized)
		assert.Empty(t, p.checks)
	})
}

func TestParseLog_OrderAcrossSections(t *testing.T) {
	logs := "Approved (1)\n- First: 1\nErrors (2)\n- MISSING: Second\n- ERROR: Third\nApproved (1)\n- Fourth"
	p := parseLog(logs, SkipUnrecognized)

	var got []string
	for _, c := range p.checks {
		got = append(got, c.Requirement)
	}
	assert.Equal(t, []string{"First", "Second", "Third", "Fourth"}, got)
}

func TestParseLog_EmptyRequirementsAreUnrecognized(t *testing.T) {
	p := parseLog("- MISSING:\n- ERROR:   \nApproved (1)\n- : value", SkipUnrecognized)

	assert.Empty(t, p.checks)
	assert.Empty(t, p.warnings)
	assert.Len(t, p.unrecognized, 3)
}

func TestParseLog_EmptyWarningIsKept(t *testing.T) {
	p := parseLog("- WARNING:\n- MISSING:\nApproved (1)\n- : v\n- WARNING:   ", SkipUnrecognized)

	assert.Empty(t, p.checks)
	assert.Equal(t, []string{"", ""}, p.warnings)
	assert.Len(t, p.unrecognized, 2)
}

func TestParseLog_CRLF(t *testing.T) {
	p := parseLog("Approved (1)\r\n- Invoice number: INV-1\r\n", SkipUnrecognized)
	require.Len(t, p.checks, 1)
	require.NotNil(t, p.checks[0].FoundValue)
	assert.Equal(t, "INV-1", *p.checks[0].FoundValue)
}
