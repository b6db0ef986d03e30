package model

// LeadCollection is the document collection leads are written to.
const LeadCollection = "lead"

const (
	DefaultCountry = "India"
	DefaultSource  = "website"
)

// LeadFields is the stable field order used when a lead is stored or echoed
// back in the internal notification.
var LeadFields = []string{
	"name", "email", "phone", "company", "message", "city", "state",
	"country", "source", "utm_source", "utm_medium", "utm_campaign",
}

// LeadInput is a website contact form submission. Only Name and Email are
// validated; everything else is free form.
type LeadInput struct {
	Name        string  `json:"name" validate:"required"`
	Email       string  `json:"email" validate:"required,email"`
	Phone       *string `json:"phone"`
	Company     *string `json:"company"`
	Message     *string `json:"message"`
	City        *string `json:"city"`
	State       *string `json:"state"`
	Country     *string `json:"country"`
	Source      *string `json:"source"`
	UTMSource   *string `json:"utm_source"`
	UTMMedium   *string `json:"utm_medium"`
	UTMCampaign *string `json:"utm_campaign"`
}

// ApplyDefaults fills country and source when the form omitted them.
func (l *LeadInput) ApplyDefaults() {
	if l.Country == nil {
		country := DefaultCountry
		l.Country = &country
	}
	if l.Source == nil {
		source := DefaultSource
		l.Source = &source
	}
}

// Document returns every field keyed by its JSON name; absent optional
// fields are stored as nil.
func (l *LeadInput) Document() map[string]any {
	return map[string]any{
		"name":         l.Name,
		"email":        l.Email,
		"phone":        deref(l.Phone),
		"company":      deref(l.Company),
		"message":      deref(l.Message),
		"city":         deref(l.City),
		"state":        deref(l.State),
		"country":      deref(l.Country),
		"source":       deref(l.Source),
		"utm_source":   deref(l.UTMSource),
		"utm_medium":   deref(l.UTMMedium),
		"utm_campaign": deref(l.UTMCampaign),
	}
}

// Value returns the field or "" when it is absent.
func Value(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func deref(s *string) any {
	if s == nil {
		return nil
	}
	return *s
}
