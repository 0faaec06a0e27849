package analyzer

import (
	"fmt"
	"strings"

	"invoicecheck/internal/domain"
	"invoicecheck/internal/requirements"
)

// phrases holds the language-specific fragments of the validation prompt.
type phrases struct {
	intro          string
	typeNames      map[domain.InvoiceType]string
	checkAgainst   string
	rules          []string
	bankContext    string
	fixHeading     string
	fixInstruction string
	formatHeading  string
	formatLead     string
	statusHeading  string
	statusLines    []string
	reqHeading     string
	closing        string
}

var promptPhrases = map[domain.Language]phrases{
	domain.LanguageDanish: {
		intro: "Du er en fakturavalidator for The Label Sunday ApS.",
		typeNames: map[domain.InvoiceType]string{
			domain.InvoiceTypePayPal:       "PayPal",
			domain.InvoiceTypeBankTransfer: "Bankoverførsel",
		},
		checkAgainst: "Du skal analysere den vedhæftede faktura og verificere om den opfylder alle krav for en **%s**-faktura.",
		rules: []string{
			"Gæt IKKE på manglende information",
			"Basér din vurdering UDELUKKENDE på det vedhæftede dokument",
			"Hvis noget ikke er tydeligt angivet, markér det som \"missing\" eller \"unclear\"",
			"Vær striks men fair i din vurdering",
			"Alle tekster skal være på DANSK",
			"VIGTIGT: Skattenummer/TIN kan være angivet som \"skattenummer\", \"tax number\", \"TIN\", \"CPR\", \"personnummer\" osv. Alle opfylder kravet.",
			"VIGTIGT: Fremtidige datoer er acceptable.",
		},
		bankContext: "For bankoverførsler er betalingsmodtageren OGSÅ fakturaafsenderen. Adresse og Postnummer+by er TO SEPARATE felter. Fakturanummer, forfaldsdato, telefon og email er ikke påkrævet.",
		fixHeading:  "## VIGTIGT: RETTELSESANBEFALINGER",
		fixInstruction: "For HVERT tjek der er \"missing\" eller \"unclear\", SKAL du give en specifik fix_recommendation der fortæller brugeren PRÆCIS hvad de skal skrive og hvor, " +
			"f.eks.: \"Tilføj dit skattenummer med landekode i bemærkninger, f.eks.: 'Skattenummer (SE): 123456-7890'\".",
		formatHeading: "## PÅKRÆVET OUTPUT FORMAT (KUN JSON)",
		formatLead:    "Du SKAL svare med UDELUKKENDE valid JSON i dette præcise format:",
		statusHeading: "## STATUS DEFINITIONER",
		statusLines: []string{
			"\"approved\": Alle påkrævede felter er til stede og gyldige",
			"\"missing_information\": Nogle påkrævede felter mangler, men fakturaen er ellers gyldig",
			"\"invalid\": Kritiske problemer fundet (forkert køber, inkonsistente data, etc.)",
		},
		reqHeading: "## FAKTURAKRAV DER SKAL TJEKKES",
		closing:    "Analysér nu fakturaen og svar med UDELUKKENDE JSON-resultatet. Inkludér ingen tekst før eller efter JSON.",
	},
	domain.LanguageEnglish: {
		intro: "You are an invoice validator for The Label Sunday ApS.",
		typeNames: map[domain.InvoiceType]string{
			domain.InvoiceTypePayPal:       "PayPal",
			domain.InvoiceTypeBankTransfer: "Bank Transfer",
		},
		checkAgainst: "You need to analyze the attached invoice and verify if it meets all requirements for a **%s** invoice.",
		rules: []string{
			"Do NOT guess missing information",
			"Base your evaluation STRICTLY on the attached document",
			"If something is not clearly stated, mark it as \"missing\" or \"unclear\"",
			"Be strict but fair in your evaluation",
			"All text responses must be in ENGLISH",
			"IMPORTANT: Tax number/TIN can be indicated as \"skattenummer\", \"tax number\", \"TIN\", \"CPR\", \"personnummer\", etc. All of these fulfill the requirement.",
			"IMPORTANT: Future dates are acceptable.",
		},
		bankContext: "For bank transfers the payment recipient IS ALSO the invoice sender. Address and Postal code+city are TWO SEPARATE fields. Invoice number, due date, phone and email are not required.",
		fixHeading:  "## CRITICAL: FIX RECOMMENDATIONS",
		fixInstruction: "For EVERY check that is \"missing\" or \"unclear\", you MUST provide a specific fix_recommendation that tells the creator EXACTLY what to write and where, " +
			"e.g.: \"Add your tax identification number with country code in the Notes section, e.g.: 'Personal tax number (SE): 123456-7890'\".",
		formatHeading: "## REQUIRED OUTPUT FORMAT (JSON ONLY)",
		formatLead:    "You MUST respond with ONLY valid JSON in this exact format:",
		statusHeading: "## STATUS DEFINITIONS",
		statusLines: []string{
			"\"approved\": All mandatory fields are present and valid",
			"\"missing_information\": Some required fields are missing but invoice is otherwise valid",
			"\"invalid\": Critical issues found (wrong buyer, inconsistent data, etc.)",
		},
		reqHeading: "## INVOICE REQUIREMENTS TO CHECK",
		closing:    "Now analyze the invoice and respond with ONLY the JSON result. Do not include any text before or after the JSON.",
	},
}

const outputSchema = `{
  "overall_status": "approved" | "missing_information" | "invalid",
  "checks": [
    {
      "requirement": "...",
      "status": "present" | "missing" | "unclear",
      "found_value": "... or null",
      "comment": "...",
      "fix_recommendation": "... or null if status is present"
    }
  ],
  "missing_items": ["..."],
  "warnings": ["..."],
  "layout_suggestions": [],
  "summary": "...",
  "extracted_data": {
    "sender_name": null, "sender_address": null, "sender_email": null, "sender_phone": null,
    "invoice_number": null, "invoice_date": null, "due_date": null,
    "recipient_email": null, "recipient_company": null, "recipient_address": null,
    "service_description": null, "quantity": null, "unit_price": null,
    "total_amount": null, "currency": null,
    "creator_name": null, "artist_name": null, "birth_date": null,
    "tax_number": null, "tax_country": null, "vat_status": null,
    "bank_name": null, "iban": null, "swift_bic": null, "account_holder": null
  }
}`

// BuildValidationPrompt returns the instruction sent alongside the invoice
// document. Unknown languages fall back to Danish.
func BuildValidationPrompt(invoiceType domain.InvoiceType, language domain.Language) string {
	p, ok := promptPhrases[language]
	if !ok {
		p = promptPhrases[domain.LanguageDanish]
	}

	var b strings.Builder
	b.WriteString(p.intro)
	b.WriteString("\n\n")
	fmt.Fprintf(&b, p.checkAgainst, p.typeNames[invoiceType])
	b.WriteString("\n\n")
	if invoiceType == domain.InvoiceTypeBankTransfer {
		b.WriteString(p.bankContext)
		b.WriteString("\n\n")
	}
	for _, r := range p.rules {
		b.WriteString("- ")
		b.WriteString(r)
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(p.fixHeading)
	b.WriteString("\n")
	b.WriteString(p.fixInstruction)
	b.WriteString("\n\n")
	b.WriteString(p.formatHeading)
	b.WriteString("\n\n")
	b.WriteString(p.formatLead)
	b.WriteString("\n\n")
	b.WriteString(outputSchema)
	b.WriteString("\n\n")
	b.WriteString(p.statusHeading)
	b.WriteString("\n")
	for _, s := range p.statusLines {
		b.WriteString("- ")
		b.WriteString(s)
		b.WriteString("\n")
	}
	if reqs := requirements.AsText(invoiceType); reqs != "" {
		b.WriteString("\n")
		b.WriteString(p.reqHeading)
		b.WriteString("\n\n")
		b.WriteString(reqs)
		b.WriteString("\n")
	}
	b.WriteString("\n---\n\n")
	b.WriteString(p.closing)
	return b.String()
}
