package model

import (
	"strings"
	"time"
)

const (
	PlatformManual = "Manual"

	StatusSuccess = "Success"
	StatusFailed  = "Failed"

	MessageLeadSent = "Lead sent"
)

// RequiredColumns are the header cells an uploaded lead file must carry, in report order.
var RequiredColumns = []string{"Firstname", "Lastname", "Mobile", "Email"}

// AccessToken is the bearer token and instance URL issued by the token endpoint.
type AccessToken struct {
	AccessToken string `json:"access_token"`
	InstanceURL string `json:"instance_url"`
	TokenType   string `json:"token_type,omitempty"`
}

type ContactRecord struct {
	Firstname string            `json:"firstname"`
	Lastname  string            `json:"lastname"`
	Mobile    string            `json:"mobile"`
	Email     string            `json:"email"`
	Extra     map[string]string `json:"extra,omitempty"`
}

// CampaignContext is merged into every payload of a batch.
type CampaignContext struct {
	CampaignSource string `json:"campaign_source"`
	CampaignName   string `json:"campaign_name"`
	SourceSite     string `json:"source_site"`
}

func NewCampaignContext(platform, campaign string) CampaignContext {
	if platform == PlatformManual {
		return CampaignContext{
			CampaignSource: PlatformManual,
			CampaignName:   campaign,
			SourceSite:     "manual entry",
		}
	}
	return CampaignContext{
		CampaignSource: platform,
		CampaignName:   campaign,
		SourceSite:     strings.ToLower(platform) + " Ads",
	}
}

// LeadPayload is the body accepted by the createlead endpoint. Field order is fixed so
// the marshalled form is stable.
type LeadPayload struct {
	EnquiryType                   string `json:"Enquiry_Type"`
	Firstname                     string `json:"Firstname"`
	Lastname                      string `json:"Lastname"`
	Mobile                        string `json:"Mobile"`
	Email                         string `json:"Email"`
	DealerCode                    string `json:"DealerCode"`
	ShowroomServiceCenter         string `json:"Shrm_SvCtr"`
	Make                          string `json:"Make"`
	Line                          string `json:"Line"`
	EntryForm                     string `json:"Entry_Form"`
	Market                        string `json:"Market"`
	CampaignSource                string `json:"Campaign_Source"`
	CampaignName                  string `json:"Campaign_Name"`
	CampaignMedium                string `json:"Campaign_Medium"`
	TestDriveType                 string `json:"TestDriveType"`
	ExtendedPrivacy               string `json:"Extended_Privacy"`
	PurchaseTimeFrame             string `json:"Purchase_TimeFrame"`
	SourceSite                    string `json:"Source_Site"`
	MarketingCommunicationConsent string `json:"Marketing_Communication_Consent"`
	Fund                          string `json:"Fund"`
	FormCode                      string `json:"FormCode"`
	RequestOrigin                 string `json:"Request_Origin"`
	MasterKey                     string `json:"MasterKey"`
}

type OutcomeRecord struct {
	ContactRecord
	Status  string `json:"status"`
	Message string `json:"message"`
}

func (o OutcomeRecord) IsSuccess() bool {
	return o.Status == StatusSuccess
}

// Batch is one run over a manual submission or an uploaded file.
type Batch struct {
	ID           string          `json:"id"`
	Platform     string          `json:"platform"`
	Campaign     string          `json:"campaign"`
	ExtraColumns []string        `json:"extra_columns,omitempty"`
	Outcomes     []OutcomeRecord `json:"outcomes"`
	CreatedAt    time.Time       `json:"created_at"`
}

func (b *Batch) Succeeded() int {
	n := 0
	for _, o := range b.Outcomes {
		if o.IsSuccess() {
			n++
		}
	}
	return n
}

func (b *Batch) Failed() int {
	return len(b.Outcomes) - b.Succeeded()
}

// Failures returns the failed outcomes in input order.
func (b *Batch) Failures() []OutcomeRecord {
	out := make([]OutcomeRecord, 0, b.Failed())
	for _, o := range b.Outcomes {
		if !o.IsSuccess() {
			out = append(out, o)
		}
	}
	return out
}

type ErrorLogEntry struct {
	Timestamp time.Time `json:"timestamp"`
	Section   string    `json:"section"`
	Error     string    `json:"error"`
}
