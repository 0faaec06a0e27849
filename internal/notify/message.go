// Package notify builds the result e-mail shared by the notifier backends.
package notify

import (
	"bytes"
	"fmt"
	"html/template"

	"invoicecheck/internal/domain"
	"invoicecheck/internal/render"
)

// Message is a rendered result notification.
type Message struct {
	Subject string
	Text    string
	HTML    string
}

var subjects = map[domain.Language]map[domain.OverallStatus]string{
	domain.LanguageDanish: {
		domain.OverallStatusApproved:           "Din faktura er godkendt",
		domain.OverallStatusMissingInformation: "Din faktura mangler information",
		domain.OverallStatusInvalid:            "Din faktura kunne ikke godkendes",
	},
	domain.LanguageEnglish: {
		domain.OverallStatusApproved:           "Your invoice was approved",
		domain.OverallStatusMissingInformation: "Your invoice is missing information",
		domain.OverallStatusInvalid:            "Your invoice could not be approved",
	},
}

var typeLabels = map[domain.Language]map[domain.InvoiceType]string{
	domain.LanguageDanish: {
		domain.InvoiceTypePayPal:       "PayPal faktura",
		domain.InvoiceTypeBankTransfer: "Bankoverførsel faktura",
	},
	domain.LanguageEnglish: {
		domain.InvoiceTypePayPal:       "PayPal invoice",
		domain.InvoiceTypeBankTransfer: "Bank transfer invoice",
	},
}

var htmlTemplate = template.Must(template.New("result").Parse(`<!DOCTYPE html>
<html>
<head><meta charset="UTF-8"></head>
<body style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto; padding: 20px;">
  <h2 style="color: #333;">{{.Subject}}</h2>
  <pre style="white-space: pre-wrap; font-family: inherit; color: #333;">{{.Text}}</pre>
  <hr style="border: none; border-top: 1px solid #eee; margin: 20px 0;">
  <p style="color: #999; font-size: 12px;">The Label Sunday ApS - {{.Reference}}</p>
</body>
</html>`))

// Label returns the heading used for an analysis in lang.
func Label(t domain.InvoiceType, lang domain.Language) string {
	labels, ok := typeLabels[lang]
	if !ok {
		labels = typeLabels[domain.LanguageEnglish]
	}
	if l, ok := labels[t]; ok {
		return l
	}
	return string(t)
}

// BuildMessage renders the notification for a finished analysis in the
// analysis' own language.
func BuildMessage(a *domain.Analysis) (Message, error) {
	lang := a.Language
	subjectsFor, ok := subjects[lang]
	if !ok {
		lang = domain.LanguageEnglish
		subjectsFor = subjects[lang]
	}
	subject, ok := subjectsFor[a.OverallStatus]
	if !ok {
		subject = fmt.Sprintf("Invoice check: %s", a.OverallStatus)
	}

	text := render.Localized(&a.Result, Label(a.InvoiceType, lang), lang)

	var buf bytes.Buffer
	err := htmlTemplate.Execute(&buf, struct {
		Subject   string
		Text      string
		Reference string
	}{subject, text, a.ID.String()})
	if err != nil {
		return Message{}, fmt.Errorf("rendering result e-mail: %w", err)
	}

	return Message{Subject: subject, Text: text, HTML: buf.String()}, nil
}
