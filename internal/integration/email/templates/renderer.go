// Package templates holds the embedded email templates.
package templates

import (
	"embed"
	"fmt"
	htmltemplate "html/template"
	"strings"
	texttemplate "text/template"
)

//go:embed *.html *.txt
var templateFS embed.FS

// Renderer executes the embedded email templates. Each template has an HTML
// body and may have a plain-text alternative of the same name.
type Renderer struct {
	html *htmltemplate.Template
	text *texttemplate.Template
}

// NewRenderer parses every embedded template.
func NewRenderer() (*Renderer, error) {
	html, err := htmltemplate.ParseFS(templateFS, "*.html")
	if err != nil {
		return nil, fmt.Errorf("parse html templates: %w", err)
	}
	text, err := texttemplate.ParseFS(templateFS, "*.txt")
	if err != nil {
		return nil, fmt.Errorf("parse text templates: %w", err)
	}
	return &Renderer{html: html, text: text}, nil
}

// Has reports whether an HTML template called name exists.
func (r *Renderer) Has(name string) bool {
	return r.html.Lookup(name+".html") != nil
}

// Render returns the HTML and text bodies of name. text is empty when the
// template has no plain-text alternative.
func (r *Renderer) Render(name string, data any) (html, text string, err error) {
	var buf strings.Builder
	if err := r.html.ExecuteTemplate(&buf, name+".html", data); err != nil {
		return "", "", fmt.Errorf("render %s.html: %w", name, err)
	}
	html = buf.String()

	if r.text.Lookup(name+".txt") == nil {
		return html, "", nil
	}
	buf.Reset()
	if err := r.text.ExecuteTemplate(&buf, name+".txt", data); err != nil {
		return "", "", fmt.Errorf("render %s.txt: %w", name, err)
	}
	return html, buf.String(), nil
}

// PasswordResetData fills password_reset.
type PasswordResetData struct {
	UserName  string
	ResetURL  string
	ExpiresIn string
}

// BudgetAlertData fills budget_alert. Amounts are pre-formatted with two decimals.
type BudgetAlertData struct {
	UserName    string
	Category    string
	MonthLabel  string
	OverBudget  bool
	Budgeted    string
	Spent       string
	PercentUsed string
	BudgetsURL  string
}

// ContactMessageData fills contact_message.
type ContactMessageData struct {
	SenderName  string
	SenderEmail string
	Message     string
}
