package email

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"time"
)

//go:embed templates/*.html
var templateFS embed.FS

var templates = template.Must(loadTemplates())

func loadTemplates() (*template.Template, error) {
	return template.ParseFS(templateFS, "templates/*.html")
}

const LeadConfirmationSubject = "Thanks for contacting A Plus Charge"

func LeadNotificationSubject(name string) string {
	return "New Lead: " + name
}

// LeadConfirmationData feeds the auto-reply sent to the lead. Empty Phone and
// Company lines are omitted; the City/State line is always shown.
type LeadConfirmationData struct {
	Name    string
	Email   string
	Phone   string
	Company string
	City    string
	State   string
}

type Field struct {
	Key   string
	Value string
}

type LeadNotificationData struct {
	Fields []Field
}

type LeadDigestData struct {
	Count int64
	Since time.Time
	Until time.Time
}

func RenderLeadConfirmation(data LeadConfirmationData) (string, error) {
	return render("lead_confirmation.html", data)
}

func RenderLeadNotification(data LeadNotificationData) (string, error) {
	return render("lead_notification.html", data)
}

func RenderLeadDigest(data LeadDigestData) (string, error) {
	return render("lead_digest.html", data)
}

func render(name string, data any) (string, error) {
	var body bytes.Buffer
	if err := templates.ExecuteTemplate(&body, name, data); err != nil {
		return "", fmt.Errorf("template execution error: %w", err)
	}
	return body.String(), nil
}
