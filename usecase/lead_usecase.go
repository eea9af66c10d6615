package usecase

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"leadbridge/domain/model"
	"leadbridge/domain/repository"
	"leadbridge/infrastructure/filecsv"
	"leadbridge/infrastructure/logger"
	"leadbridge/infrastructure/utils"

	"github.com/google/uuid"
)

type ILeadUsecase interface {
	Campaigns() []string
	Platforms() []string
	SubmitManual(ctx context.Context, record model.ContactRecord, campaign string) (*model.Batch, error)
	SubmitUpload(ctx context.Context, platform, campaign string, file io.Reader) (*model.Batch, error)
	Report(ctx context.Context, batchID string, onlyFailed bool) ([]byte, error)
	ErrorLog() []model.ErrorLogEntry
	ExportErrorLog() ([]byte, error)
}

// LeadSettings are the operator-facing choices and limits.
type LeadSettings struct {
	Campaigns []string
	Platforms []string
	MaxRows   int
}

type leadUsecase struct {
	tokenProvider repository.ITokenProvider
	sender        repository.ILeadSender
	reports       repository.IReportStore
	errorLog      repository.IErrorLog
	settings      LeadSettings
	newID         func() string
	now           func() time.Time
}

func NewLeadUsecase(
	tokenProvider repository.ITokenProvider,
	sender repository.ILeadSender,
	reports repository.IReportStore,
	errorLog repository.IErrorLog,
	settings LeadSettings,
) ILeadUsecase {
	return &leadUsecase{
		tokenProvider: tokenProvider,
		sender:        sender,
		reports:       reports,
		errorLog:      errorLog,
		settings:      settings,
		newID:         uuid.NewString,
		now:           utils.GetCurrentTime,
	}
}

func (u *leadUsecase) Campaigns() []string {
	return append([]string(nil), u.settings.Campaigns...)
}

func (u *leadUsecase) Platforms() []string {
	return append([]string(nil), u.settings.Platforms...)
}

// SubmitManual sends a single typed-in lead as a one-row batch.
func (u *leadUsecase) SubmitManual(ctx context.Context, record model.ContactRecord, campaign string) (*model.Batch, error) {
	section := model.PlatformManual
	campaign, err := u.resolveCampaign(section, campaign)
	if err != nil {
		u.errorLog.Append(section, err.Error())
		return nil, err
	}

	token, err := u.tokenProvider.AcquireToken(ctx)
	if err != nil {
		u.errorLog.Append(section, fmt.Sprintf("Manual Submission Error: %v", err))
		return nil, err
	}

	record.Extra = nil
	outcomes, failures := RunBatch(ctx, u.sender, []model.ContactRecord{record}, model.NewCampaignContext(section, campaign), token)
	for _, f := range failures {
		if f.Err != nil {
			u.errorLog.Append(section, fmt.Sprintf("Manual Submission Error: %v", f.Err))
		} else {
			u.errorLog.Append(section, fmt.Sprintf("Failed. Status %d, Response: %s", f.Status, f.Body))
		}
	}

	return u.complete(ctx, section, campaign, nil, outcomes), nil
}

// SubmitUpload validates an uploaded CSV, then sends each row. Shape errors and token
// failures stop the batch before anything is sent; row failures do not.
func (u *leadUsecase) SubmitUpload(ctx context.Context, platform, campaign string, file io.Reader) (*model.Batch, error) {
	platform, err := u.resolvePlatform(platform)
	if err != nil {
		return nil, err
	}
	campaign, err = u.resolveCampaign(platform, campaign)
	if err != nil {
		u.errorLog.Append(platform, err.Error())
		return nil, err
	}

	sheet, err := filecsv.ReadContacts(file, platform, u.settings.MaxRows)
	if err != nil {
		u.errorLog.Append(platform, err.Error())
		logger.GetLogger().WithField("platform", platform).WithField("error", err).Warn("Upload rejected")
		return nil, err
	}

	token, err := u.tokenProvider.AcquireToken(ctx)
	if err != nil {
		u.errorLog.Append(platform, fmt.Sprintf("%s Token Error: %v", platform, err))
		return nil, err
	}

	outcomes, failures := RunBatch(ctx, u.sender, sheet.Records, model.NewCampaignContext(platform, campaign), token)
	for _, f := range failures {
		if f.Err != nil {
			u.errorLog.Append(platform, fmt.Sprintf("%s Lead Error (row %d): %v", platform, f.Row, f.Err))
		} else {
			u.errorLog.Append(platform, fmt.Sprintf("Row %d: %s", f.Row, f.Body))
		}
	}

	return u.complete(ctx, platform, campaign, sheet.ExtraColumns, outcomes), nil
}

func (u *leadUsecase) complete(ctx context.Context, platform, campaign string, extraColumns []string, outcomes []model.OutcomeRecord) *model.Batch {
	batch := &model.Batch{
		ID:           u.newID(),
		Platform:     platform,
		Campaign:     campaign,
		ExtraColumns: extraColumns,
		Outcomes:     outcomes,
		CreatedAt:    u.now(),
	}
	// The batch result is still returned when the report cannot be stored; only the
	// later download is affected.
	if err := u.reports.Save(ctx, batch); err != nil {
		u.errorLog.Append(platform, fmt.Sprintf("Report not stored for batch %s: %v", batch.ID, err))
	}

	logger.GetLogger().WithFields(map[string]interface{}{
		"batch_id":  batch.ID,
		"platform":  platform,
		"campaign":  campaign,
		"succeeded": batch.Succeeded(),
		"failed":    batch.Failed(),
	}).Info("Batch completed")
	return batch
}

func (u *leadUsecase) Report(ctx context.Context, batchID string, onlyFailed bool) ([]byte, error) {
	batch, err := u.reports.Get(ctx, batchID)
	if err != nil {
		return nil, err
	}
	if onlyFailed {
		return filecsv.ExportFailures(batch)
	}
	return filecsv.ExportOutcomes(batch)
}

func (u *leadUsecase) ErrorLog() []model.ErrorLogEntry {
	return u.errorLog.Entries()
}

func (u *leadUsecase) ExportErrorLog() ([]byte, error) {
	return filecsv.ExportErrorLog(u.errorLog.Entries())
}

func (u *leadUsecase) resolvePlatform(platform string) (string, error) {
	for _, p := range u.settings.Platforms {
		if strings.EqualFold(p, strings.TrimSpace(platform)) {
			return p, nil
		}
	}
	return "", &model.ValidationError{
		Section: platform,
		Message: fmt.Sprintf("unsupported platform %q, expected one of: %s", platform, strings.Join(u.settings.Platforms, ", ")),
	}
}

func (u *leadUsecase) resolveCampaign(section, campaign string) (string, error) {
	campaign = strings.TrimSpace(campaign)
	for _, c := range u.settings.Campaigns {
		if c == campaign {
			return c, nil
		}
	}
	return "", &model.ValidationError{
		Section: section,
		Message: fmt.Sprintf("unknown campaign %q, expected one of: %s", campaign, strings.Join(u.settings.Campaigns, ", ")),
	}
}
