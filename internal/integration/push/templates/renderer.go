// Package templates provides reminder message rendering.
package templates

import (
	"bytes"
	"embed"
	"fmt"
	htmltemplate "html/template"
	texttemplate "text/template"
)

//go:embed *.html *.txt
var templateFS embed.FS

// BillReminderTemplate is the template used for bill reminders.
const BillReminderTemplate = "bill_reminder"

// Renderer holds the parsed HTML and plain text reminder templates.
type Renderer struct {
	htmlTemplates *htmltemplate.Template
	textTemplates *texttemplate.Template
}

// NewRenderer creates a new template renderer.
func NewRenderer() (*Renderer, error) {
	htmlTmpl, err := htmltemplate.ParseFS(templateFS, "*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML templates: %w", err)
	}

	textTmpl, err := texttemplate.ParseFS(templateFS, "*.txt")
	if err != nil {
		return nil, fmt.Errorf("failed to parse text templates: %w", err)
	}

	return &Renderer{
		htmlTemplates: htmlTmpl,
		textTemplates: textTmpl,
	}, nil
}

// RenderBillReminder renders the bill reminder in both formats.
func (r *Renderer) RenderBillReminder(data BillReminderData) (html string, text string, err error) {
	return r.Render(BillReminderTemplate, data)
}

// Render executes the named template pair.
func (r *Renderer) Render(templateName string, data any) (html string, text string, err error) {
	var htmlBuf bytes.Buffer
	if err := r.htmlTemplates.ExecuteTemplate(&htmlBuf, templateName+".html", data); err != nil {
		return "", "", fmt.Errorf("failed to render HTML template %s: %w", templateName, err)
	}

	var textBuf bytes.Buffer
	if err := r.textTemplates.ExecuteTemplate(&textBuf, templateName+".txt", data); err != nil {
		return "", "", fmt.Errorf("failed to render text template %s: %w", templateName, err)
	}

	return htmlBuf.String(), textBuf.String(), nil
}

// BillReminderData contains data for the bill reminder template.
type BillReminderData struct {
	Title        string
	Body         string
	Amount       string
	DueDate      string
	Category     string
	DaysUntilDue string
}
