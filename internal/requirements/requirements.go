// Package requirements holds the catalogue of fields an invoice must carry
// for each payout method.
package requirements

import (
	_ "embed"
	"fmt"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"

	"invoicecheck/internal/domain"
)

//go:embed catalogue.yaml
var catalogueYAML []byte

// Item is a single required field.
type Item struct {
	ID          string `yaml:"id" json:"id"`
	Name        string `yaml:"name" json:"name"`
	Description string `yaml:"description" json:"description"`
}

// Group is a titled list of required fields.
type Group struct {
	ID              string   `yaml:"id" json:"id"`
	Title           string   `yaml:"title" json:"title"`
	Description     string   `yaml:"description" json:"description"`
	ExpectedNames   []string `yaml:"expected_names" json:"expected_names,omitempty"`
	ExpectedAddress string   `yaml:"expected_address" json:"expected_address,omitempty"`
	Items           []Item   `yaml:"items" json:"items"`
}

// TypeRequirements are the groups that only apply to one invoice type.
type TypeRequirements struct {
	Title       string  `yaml:"title" json:"title"`
	Heading     string  `yaml:"heading" json:"-"`
	Description string  `yaml:"description" json:"description"`
	Groups      []Group `yaml:"groups" json:"groups"`
}

// Catalogue is the full requirement set for every invoice type.
type Catalogue struct {
	Common       []Group          `yaml:"common"`
	PayPal       TypeRequirements `yaml:"paypal"`
	BankTransfer TypeRequirements `yaml:"bank_transfer"`
}

// Set is the requirement list that applies to one invoice type.
type Set struct {
	InvoiceType  domain.InvoiceType `json:"invoice_type"`
	Common       []Group            `json:"common"`
	TypeSpecific TypeRequirements   `json:"type_specific"`
}

var (
	loadOnce  sync.Once
	catalogue *Catalogue
	loadErr   error
)

// Load parses a catalogue from YAML.
func Load(data []byte) (*Catalogue, error) {
	var c Catalogue
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("parsing requirements catalogue: %w", err)
	}
	if len(c.Common) == 0 {
		return nil, fmt.Errorf("requirements catalogue has no common groups")
	}
	return &c, nil
}

// Default returns the embedded catalogue.
func Default() (*Catalogue, error) {
	loadOnce.Do(func() {
		catalogue, loadErr = Load(catalogueYAML)
	})
	return catalogue, loadErr
}

// ForType returns the requirements for t.
func (c *Catalogue) ForType(t domain.InvoiceType) (*Set, error) {
	var specific TypeRequirements
	switch t {
	case domain.InvoiceTypePayPal:
		specific = c.PayPal
	case domain.InvoiceTypeBankTransfer:
		specific = c.BankTransfer
	default:
		return nil, domain.ErrInvalidInvoiceType
	}
	return &Set{InvoiceType: t, Common: c.Common, TypeSpecific: specific}, nil
}

// ForType returns the embedded requirements for t.
func ForType(t domain.InvoiceType) (*Set, error) {
	c, err := Default()
	if err != nil {
		return nil, err
	}
	return c.ForType(t)
}

// Text renders the set as the markdown block embedded in analyzer prompts.
func (s *Set) Text() string {
	var b strings.Builder

	fmt.Fprintf(&b, "# FAKTURAKRAV FOR %s\n\n", strings.ToUpper(s.TypeSpecific.Title))
	b.WriteString("## GRUNDLÆGGENDE FAKTURAINFORMATION (PÅKRÆVET)\n\n")
	for _, g := range s.Common {
		writeGroup(&b, g)
	}

	fmt.Fprintf(&b, "## %s\n\n", s.TypeSpecific.Heading)
	for _, g := range s.TypeSpecific.Groups {
		writeGroup(&b, g)
	}
	return strings.TrimRight(b.String(), "\n")
}

func writeGroup(b *strings.Builder, g Group) {
	fmt.Fprintf(b, "### %s:\n", g.Title)
	for _, it := range g.Items {
		fmt.Fprintf(b, "- **%s**: %s\n", it.Name, it.Description)
	}
	if len(g.ExpectedNames) > 0 {
		fmt.Fprintf(b, "  - Forventede navne: %s\n", strings.Join(g.ExpectedNames, ", "))
	}
	if g.ExpectedAddress != "" {
		fmt.Fprintf(b, "  - Forventet adresse: %s\n", g.ExpectedAddress)
	}
	b.WriteString("\n")
}

// AsText renders the embedded requirements for t, or "" for an unknown type.
func AsText(t domain.InvoiceType) string {
	s, err := ForType(t)
	if err != nil {
		return ""
	}
	return s.Text()
}
