package salesforce

import (
	"net/http"
	"time"
)

// LeadAPIPath is the custom Apex REST resource that creates a lead.
const LeadAPIPath = "/services/apexrest/lead/createlead"

const defaultTimeout = 30 * time.Second

// Config represents the password-grant credentials and transport settings.
type Config struct {
	ClientID     string
	ClientSecret string
	Username     string
	Password     string
	TokenURL     string
	Timeout      time.Duration
}

func newHTTPClient(timeout time.Duration) *http.Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &http.Client{Timeout: timeout}
}
