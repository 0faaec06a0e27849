package domain

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// CheckResult is one evaluated requirement.
// FoundValue is not tied to Status: a missing or unclear check may carry one.
type CheckResult struct {
	Requirement       string      `json:"requirement"`
	Status            CheckStatus `json:"status"`
	FoundValue        *string     `json:"found_value"`
	Comment           string      `json:"comment"`
	FixRecommendation *string     `json:"fix_recommendation,omitempty"`
}

// LayoutSuggestion is a presentation hint for one section of the invoice.
type LayoutSuggestion struct {
	Section    string `json:"section"`
	Issue      string `json:"issue"`
	Suggestion string `json:"suggestion"`
}

// ExtractedInvoiceData holds the invoice fields an analyzer was able to read.
type ExtractedInvoiceData struct {
	SenderName    *string `json:"sender_name,omitempty"`
	SenderAddress *string `json:"sender_address,omitempty"`
	SenderEmail   *string `json:"sender_email,omitempty"`
	SenderPhone   *string `json:"sender_phone,omitempty"`

	InvoiceNumber *string `json:"invoice_number,omitempty"`
	InvoiceDate   *string `json:"invoice_date,omitempty"`
	DueDate       *string `json:"due_date,omitempty"`

	RecipientEmail   *string `json:"recipient_email,omitempty"`
	RecipientCompany *string `json:"recipient_company,omitempty"`
	RecipientAddress *string `json:"recipient_address,omitempty"`

	ServiceDescription *string `json:"service_description,omitempty"`
	Quantity           *string `json:"quantity,omitempty"`
	UnitPrice          *string `json:"unit_price,omitempty"`
	TotalAmount        *string `json:"total_amount,omitempty"`
	Currency           *string `json:"currency,omitempty"`

	CreatorName *string `json:"creator_name,omitempty"`
	ArtistName  *string `json:"artist_name,omitempty"`
	BirthDate   *string `json:"birth_date,omitempty"`
	TaxNumber   *string `json:"tax_number,omitempty"`
	TaxCountry  *string `json:"tax_country,omitempty"`
	VATStatus   *string `json:"vat_status,omitempty"`

	BankName      *string `json:"bank_name,omitempty"`
	IBAN          *string `json:"iban,omitempty"`
	SwiftBIC      *string `json:"swift_bic,omitempty"`
	AccountHolder *string `json:"account_holder,omitempty"`
}

// ValidationResult is the canonical outcome of one invoice analysis.
// It is built once per request and never mutated afterwards.
type ValidationResult struct {
	OverallStatus     OverallStatus         `json:"overall_status"`
	InvoiceType       InvoiceType           `json:"invoice_type"`
	Checks            []CheckResult         `json:"checks"`
	MissingItems      []string              `json:"missing_items"`
	Warnings          []string              `json:"warnings"`
	LayoutSuggestions []LayoutSuggestion    `json:"layout_suggestions"`
	Summary           string                `json:"summary"`
	ExtractedData     *ExtractedInvoiceData `json:"extracted_data,omitempty"`
}

// MarshalJSON emits empty arrays instead of null for the sequence fields.
func (r ValidationResult) MarshalJSON() ([]byte, error) {
	type plain ValidationResult
	out := plain(r)
	if out.Checks == nil {
		out.Checks = []CheckResult{}
	}
	if out.MissingItems == nil {
		out.MissingItems = []string{}
	}
	if out.Warnings == nil {
		out.Warnings = []string{}
	}
	if out.LayoutSuggestions == nil {
		out.LayoutSuggestions = []LayoutSuggestion{}
	}
	return json.Marshal(out)
}

// Value implements driver.Valuer so the result is stored as JSONB.
func (r ValidationResult) Value() (driver.Value, error) {
	return json.Marshal(r)
}

// Scan implements sql.Scanner for JSONB columns.
func (r *ValidationResult) Scan(src interface{}) error {
	var data []byte
	switch v := src.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	case nil:
		*r = ValidationResult{}
		return nil
	default:
		return fmt.Errorf("scanning validation result: unsupported type %T", src)
	}
	return json.Unmarshal(data, r)
}

// CountByStatus returns how many checks carry each status.
func (r *ValidationResult) CountByStatus() map[CheckStatus]int {
	counts := make(map[CheckStatus]int, 3)
	for i := range r.Checks {
		counts[r.Checks[i].Status]++
	}
	return counts
}

// Analysis is a persisted invoice analysis.
type Analysis struct {
	ID            uuid.UUID        `db:"id" json:"id"`
	InvoiceType   InvoiceType      `db:"invoice_type" json:"invoice_type"`
	Language      Language         `db:"language" json:"language"`
	Source        AnalysisSource   `db:"source" json:"source"`
	FileName      string           `db:"file_name" json:"file_name"`
	StorageKey    string           `db:"storage_key" json:"-"`
	OverallStatus OverallStatus    `db:"overall_status" json:"overall_status"`
	Result        ValidationResult `db:"result" json:"result"`
	ModelUsed     string           `db:"model_used" json:"model_used"`
	CreatedAt     time.Time        `db:"created_at" json:"created_at"`
}

// AnalysisFilter narrows analysis listings.
type AnalysisFilter struct {
	OverallStatus OverallStatus
	InvoiceType   InvoiceType
	Source        AnalysisSource
	Since         *time.Time
}
