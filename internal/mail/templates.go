package mail

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
)

//go:embed templates/*.html
var templateFS embed.FS

// Template names.
const (
	templateReceived       = "received.html"
	templateConfirmed      = "confirmed.html"
	templateRejected       = "rejected.html"
	templateLegacyVerified = "legacy_verified.html"
)

var templates = template.Must(template.ParseFS(templateFS, "templates/*.html"))

// TeamSummary is the team information shown in notifications.
type TeamSummary struct {
	Name          string
	Track         string
	TransactionID string
}

type templateData struct {
	Heading      string
	EventName    string
	DashboardURL string
	Recipient    string
	Status       string
	Reason       string
	Team         TeamSummary
}

func render(name string, data templateData) (string, error) {
	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, name, data); err != nil {
		return "", fmt.Errorf("render %s: %w", name, err)
	}
	return buf.String(), nil
}
