package usecase

import (
	"context"
	"net/http"

	"leadbridge/domain/model"
	"leadbridge/domain/repository"
	"leadbridge/infrastructure/logger"
)

// RunBatch sends every record in input order, one request at a time, with the same
// token. A failing row becomes a Failed outcome and processing moves on to the next
// row. The returned row errors are numbered from 1 and follow input order.
func RunBatch(
	ctx context.Context,
	sender repository.ILeadSender,
	records []model.ContactRecord,
	campaign model.CampaignContext,
	token *model.AccessToken,
) ([]model.OutcomeRecord, []*model.RowSendError) {
	outcomes := make([]model.OutcomeRecord, 0, len(records))
	var failures []*model.RowSendError

	for i, record := range records {
		row := i + 1
		payload := BuildPayload(record, campaign)

		status, body, err := sender.Send(ctx, token, payload)
		switch {
		case err != nil:
			rowErr := &model.RowSendError{Row: row, Err: err}
			failures = append(failures, rowErr)
			outcomes = append(outcomes, model.OutcomeRecord{ContactRecord: record, Status: model.StatusFailed, Message: err.Error()})
			logger.GetLogger().WithField("row", row).WithField("error", err).Warn("Lead send failed")
		case status != http.StatusOK:
			rowErr := &model.RowSendError{Row: row, Status: status, Body: body}
			failures = append(failures, rowErr)
			outcomes = append(outcomes, model.OutcomeRecord{ContactRecord: record, Status: model.StatusFailed, Message: body})
			logger.GetLogger().WithField("row", row).WithField("status", status).Warn("Lead rejected")
		default:
			outcomes = append(outcomes, model.OutcomeRecord{ContactRecord: record, Status: model.StatusSuccess, Message: model.MessageLeadSent})
		}
	}

	return outcomes, failures
}
