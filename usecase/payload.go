package usecase

import "leadbridge/domain/model"

// Business-fixed values expected by the receiving lead endpoint.
const (
	EnquiryType                   = "Book_a_Test_Drive"
	DealerCode                    = "PTC"
	ShowroomServiceCenter         = "PETROMIN Jubail"
	Make                          = "Jeep"
	Line                          = "Wrangler"
	EntryForm                     = "EN"
	Market                        = "Saudi Arabia"
	CampaignMedium                = "Boopin"
	TestDriveType                 = "In Showroom"
	ExtendedPrivacy               = "true"
	PurchaseTimeFrame             = "More than 3 months"
	MarketingCommunicationConsent = "1"
	Fund                          = "DD"
	FormCode                      = "PET_Q2_25"
	RequestOrigin                 = "https://www.jeep-saudi.com"
	MasterKey                     = "Jeep_EN_GENERIC_RI:RP:TD_0_8_1_6_50_42"
)

// BuildPayload maps a contact and its campaign onto the lead payload. Contact values are
// passed through verbatim.
func BuildPayload(record model.ContactRecord, campaign model.CampaignContext) model.LeadPayload {
	return model.LeadPayload{
		EnquiryType:                   EnquiryType,
		Firstname:                     record.Firstname,
		Lastname:                      record.Lastname,
		Mobile:                        record.Mobile,
		Email:                         record.Email,
		DealerCode:                    DealerCode,
		ShowroomServiceCenter:         ShowroomServiceCenter,
		Make:                          Make,
		Line:                          Line,
		EntryForm:                     EntryForm,
		Market:                        Market,
		CampaignSource:                campaign.CampaignSource,
		CampaignName:                  campaign.CampaignName,
		CampaignMedium:                CampaignMedium,
		TestDriveType:                 TestDriveType,
		ExtendedPrivacy:               ExtendedPrivacy,
		PurchaseTimeFrame:             PurchaseTimeFrame,
		SourceSite:                    campaign.SourceSite,
		MarketingCommunicationConsent: MarketingCommunicationConsent,
		Fund:                          Fund,
		FormCode:                      FormCode,
		RequestOrigin:                 RequestOrigin,
		MasterKey:                     MasterKey,
	}
}
