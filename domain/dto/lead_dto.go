package dto

import "leadbridge/domain/model"

// Res is the generic error envelope returned by middleware.
type Res struct {
	ResponseCode    string `json:"responseCode"`
	ResponseMessage string `json:"responseMessage"`
}

// ManualLeadRequest is a single lead typed into the manual submission form.
type ManualLeadRequest struct {
	Firstname string `json:"firstname" binding:"required"`
	Lastname  string `json:"lastname" binding:"required"`
	Mobile    string `json:"mobile" binding:"required"`
	Email     string `json:"email" binding:"required"`
	Campaign  string `json:"campaign" binding:"required"`
}

type UploadLeadRequest struct {
	Campaign string `form:"campaign" binding:"required"`
}

// ReportQuery selects which rows of a batch report are downloaded. Name prefixes the
// attachment filename.
type ReportQuery struct {
	Status string `form:"status" url:"status,omitempty"`
	Name   string `form:"name" url:"name,omitempty"`
}

type ReportLinks struct {
	Log    string `json:"log"`
	Failed string `json:"failed,omitempty"`
}

type BatchSummary struct {
	BatchID   string                `json:"batch_id"`
	Platform  string                `json:"platform"`
	Campaign  string                `json:"campaign"`
	Total     int                   `json:"total"`
	Succeeded int                   `json:"succeeded"`
	Failed    int                   `json:"failed"`
	Message   string                `json:"message"`
	Outcomes  []model.OutcomeRecord `json:"outcomes"`
	Reports   ReportLinks           `json:"reports"`
}

type OptionsResponse struct {
	Campaigns []string `json:"campaigns"`
	Platforms []string `json:"platforms"`
}
