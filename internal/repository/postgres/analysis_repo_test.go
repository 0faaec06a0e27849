package postgres

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"invoicecheck/internal/domain"
)

func TestListQuery_NoFilter(t *testing.T) {
	query, args, err := listQuery(filterConditions(domain.AnalysisFilter{}), 0, 20).ToSql()

	require.NoError(t, err)
	assert.Equal(t,
		"SELECT "+analysisColumns+" FROM analyses ORDER BY created_at DESC LIMIT 20 OFFSET 0",
		query)
	assert.Empty(t, args)
}

func TestListQuery_AllFilters(t *testing.T) {
	since := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	where := filterConditions(domain.AnalysisFilter{
		OverallStatus: domain.OverallStatusApproved,
		InvoiceType:   domain.InvoiceTypePayPal,
		Source:        domain.AnalysisSourceUpload,
		Since:         &since,
	})

	query, args, err := listQuery(where, 40, 20).ToSql()

	require.NoError(t, err)
	assert.Equal(t,
		"SELECT "+analysisColumns+" FROM analyses WHERE (overall_status = $1 AND invoice_type = $2 AND source = $3 AND created_at >= $4) ORDER BY created_at DESC LIMIT 20 OFFSET 40",
		query)
	assert.Equal(t, []interface{}{
		domain.OverallStatusApproved, domain.InvoiceTypePayPal, domain.AnalysisSourceUpload, since,
	}, args)
}

func TestCountQuery_NoFilter(t *testing.T) {
	query, _, err := countQuery(filterConditions(domain.AnalysisFilter{})).ToSql()

	require.NoError(t, err)
	assert.Equal(t, "SELECT COUNT(*) FROM analyses", query)
}

func TestCountQuery_Filtered(t *testing.T) {
	where := filterConditions(domain.AnalysisFilter{InvoiceType: domain.InvoiceTypeBankTransfer})

	query, args, err := countQuery(where).ToSql()

	require.NoError(t, err)
	assert.Equal(t, "SELECT COUNT(*) FROM analyses WHERE (invoice_type = $1)", query)
	assert.Equal(t, []interface{}{domain.InvoiceTypeBankTransfer}, args)
}
