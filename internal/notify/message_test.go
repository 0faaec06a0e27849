package notify_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"invoicecheck/internal/domain"
	"invoicecheck/internal/notify"
)

func TestBuildMessage_Danish(t *testing.T) {
	a := &domain.Analysis{
		ID:            uuid.New(),
		InvoiceType:   domain.InvoiceTypeBankTransfer,
		Language:      domain.LanguageDanish,
		OverallStatus: domain.OverallStatusMissingInformation,
		Result: domain.ValidationResult{
			OverallStatus: domain.OverallStatusMissingInformation,
			Checks:        []domain.CheckResult{{Requirement: "IBAN", Status: domain.CheckStatusMissing}},
			Summary:       "Mangler <IBAN>",
		},
	}

	msg, err := notify.BuildMessage(a)

	require.NoError(t, err)
	assert.Equal(t, "Din faktura mangler information", msg.Subject)
	assert.Contains(t, msg.Text, "Bankoverførsel faktura\nStatus: Mangler information\n0/1 tjek bestået")
	assert.Contains(t, msg.HTML, "Mangler &lt;IBAN&gt;")
	assert.Contains(t, msg.HTML, a.ID.String())
}

func TestBuildMessage_UnknownLanguageUsesEnglish(t *testing.T) {
	msg, err := notify.BuildMessage(&domain.Analysis{
		InvoiceType:   domain.InvoiceTypePayPal,
		Language:      domain.Language("sv"),
		OverallStatus: domain.OverallStatusApproved,
	})

	require.NoError(t, err)
	assert.Equal(t, "Your invoice was approved", msg.Subject)
	assert.Contains(t, msg.Text, "PayPal invoice")
}
