package domain

// FileType represents the allowed file types for upload.
type FileType string

const (
	FileTypePDF FileType = "pdf"
	FileTypeJPG FileType = "jpg"
	FileTypePNG FileType = "png"
)

// AllowedFileTypes maps FileType to its MIME content type.
var AllowedFileTypes = map[FileType]string{
	FileTypePDF: "application/pdf",
	FileTypeJPG: "image/jpeg",
	FileTypePNG: "image/png",
}

// AllowedContentTypes maps MIME content types back to FileType.
var AllowedContentTypes = map[string]FileType{
	"application/pdf": FileTypePDF,
	"image/jpeg":      FileTypeJPG,
	"image/png":       FileTypePNG,
}

// AllowedExtensions maps file extensions (without dot) to FileType.
var AllowedExtensions = map[string]FileType{
	"pdf":  FileTypePDF,
	"jpg":  FileTypeJPG,
	"jpeg": FileTypeJPG,
	"png":  FileTypePNG,
}

// InvoiceType selects which payout requirements an invoice is checked against.
type InvoiceType string

const (
	InvoiceTypePayPal       InvoiceType = "paypal"
	InvoiceTypeBankTransfer InvoiceType = "bank_transfer"
)

// Valid reports whether t is a known invoice type.
func (t InvoiceType) Valid() bool {
	return t == InvoiceTypePayPal || t == InvoiceTypeBankTransfer
}

// ParseInvoiceType converts a caller-supplied string into an InvoiceType.
func ParseInvoiceType(s string) (InvoiceType, error) {
	t := InvoiceType(s)
	if !t.Valid() {
		return "", ErrInvalidInvoiceType
	}
	return t, nil
}

// Language is the display language requested by the caller.
type Language string

const (
	LanguageDanish  Language = "da"
	LanguageEnglish Language = "en"
)

// Valid reports whether l is a supported language.
func (l Language) Valid() bool {
	return l == LanguageDanish || l == LanguageEnglish
}

// ParseLanguage converts a caller-supplied string into a Language.
func ParseLanguage(s string) (Language, error) {
	l := Language(s)
	if !l.Valid() {
		return "", ErrInvalidLanguage
	}
	return l, nil
}

// CheckStatus is the tri-state outcome of a single requirement check.
type CheckStatus string

const (
	CheckStatusPresent CheckStatus = "present"
	CheckStatusMissing CheckStatus = "missing"
	CheckStatusUnclear CheckStatus = "unclear"
)

// OverallStatus is the final disposition of an analysed invoice.
type OverallStatus string

const (
	OverallStatusApproved           OverallStatus = "approved"
	OverallStatusMissingInformation OverallStatus = "missing_information"
	OverallStatusInvalid            OverallStatus = "invalid"
)

// Valid reports whether s is a known overall status.
func (s OverallStatus) Valid() bool {
	switch s {
	case OverallStatusApproved, OverallStatusMissingInformation, OverallStatusInvalid:
		return true
	}
	return false
}

// AnalysisSource records how an analysis entered the system.
type AnalysisSource string

const (
	AnalysisSourceUpload AnalysisSource = "upload"
	AnalysisSourceReport AnalysisSource = "report"
)
