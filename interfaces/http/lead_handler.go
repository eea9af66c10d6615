package http

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"leadbridge/domain/dto"
	"leadbridge/domain/model"
	"leadbridge/infrastructure/logger"
	"leadbridge/usecase"

	"github.com/gin-gonic/gin"
	"github.com/google/go-querystring/query"
)

const (
	ErrorBind = "Error while binding request"

	csvContentType = "text/csv; charset=utf-8"
)

type ILeadHandler interface {
	Options(c *gin.Context)
	SubmitManual(c *gin.Context)
	SubmitUpload(c *gin.Context)
	DownloadReport(c *gin.Context)
	ErrorLog(c *gin.Context)
	ExportErrorLog(c *gin.Context)
}

type LeadHandler struct {
	leadUsecase usecase.ILeadUsecase
}

func NewLeadHandler(leadUsecase usecase.ILeadUsecase) ILeadHandler {
	return &LeadHandler{leadUsecase: leadUsecase}
}

func (h *LeadHandler) Options(c *gin.Context) {
	c.JSON(http.StatusOK, dto.OptionsResponse{
		Campaigns: h.leadUsecase.Campaigns(),
		Platforms: h.leadUsecase.Platforms(),
	})
}

func (h *LeadHandler) SubmitManual(c *gin.Context) {
	var req dto.ManualLeadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.GetLogger().WithField("error", err).Warn(ErrorBind)
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("%s: %v", ErrorBind, err)})
		return
	}

	record := model.ContactRecord{
		Firstname: strings.TrimSpace(req.Firstname),
		Lastname:  strings.TrimSpace(req.Lastname),
		Mobile:    strings.TrimSpace(req.Mobile),
		Email:     strings.TrimSpace(req.Email),
	}
	batch, err := h.leadUsecase.SubmitManual(c.Request.Context(), record, req.Campaign)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, summarize(batch))
}

func (h *LeadHandler) SubmitUpload(c *gin.Context) {
	platform := c.Param("platform")

	var req dto.UploadLeadRequest
	if err := c.ShouldBind(&req); err != nil {
		logger.GetLogger().WithField("error", err).Warn(ErrorBind)
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("%s: %v", ErrorBind, err)})
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "a CSV file is required in the \"file\" field"})
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		logger.GetLogger().WithField("error", err).Error("Error while opening uploaded file")
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	defer file.Close()

	logger.GetLogger().WithFields(map[string]interface{}{
		"platform": platform,
		"campaign": req.Campaign,
		"filename": fileHeader.Filename,
		"size":     fileHeader.Size,
	}).Info("Lead file received")

	batch, err := h.leadUsecase.SubmitUpload(c.Request.Context(), platform, req.Campaign, file)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, summarize(batch))
}

func (h *LeadHandler) DownloadReport(c *gin.Context) {
	var q dto.ReportQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("%s: %v", ErrorBind, err)})
		return
	}
	onlyFailed := strings.EqualFold(q.Status, model.StatusFailed)

	batchID := c.Param("id")
	data, err := h.leadUsecase.Report(c.Request.Context(), batchID, onlyFailed)
	if err != nil {
		respondError(c, err)
		return
	}

	name := q.Name
	if name == "" {
		name = "lead"
	}
	suffix := "submission_log"
	if onlyFailed {
		suffix = "failed"
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", fmt.Sprintf("%s_%s.csv", strings.ToLower(name), suffix)))
	c.Data(http.StatusOK, csvContentType, data)
}

func (h *LeadHandler) ErrorLog(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"errors": h.leadUsecase.ErrorLog()})
}

func (h *LeadHandler) ExportErrorLog(c *gin.Context) {
	data, err := h.leadUsecase.ExportErrorLog()
	if err != nil {
		respondError(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="error_log.csv"`)
	c.Data(http.StatusOK, csvContentType, data)
}

func summarize(batch *model.Batch) dto.BatchSummary {
	return dto.BatchSummary{
		BatchID:   batch.ID,
		Platform:  batch.Platform,
		Campaign:  batch.Campaign,
		Total:     len(batch.Outcomes),
		Succeeded: batch.Succeeded(),
		Failed:    batch.Failed(),
		Message:   fmt.Sprintf("%d succeeded / %d failed", batch.Succeeded(), batch.Failed()),
		Outcomes:  batch.Outcomes,
		Reports:   reportLinks(batch),
	}
}

func reportLinks(batch *model.Batch) dto.ReportLinks {
	base := "/api/batches/" + batch.ID + "/report"
	links := dto.ReportLinks{Log: reportLink(base, dto.ReportQuery{Name: batch.Platform})}
	if batch.Failed() > 0 {
		links.Failed = reportLink(base, dto.ReportQuery{Status: model.StatusFailed, Name: batch.Platform})
	}
	return links
}

func reportLink(base string, q dto.ReportQuery) string {
	v, err := query.Values(q)
	if err != nil {
		logger.GetLogger().WithField("error", err).Warn("Error while encoding report query")
		return base
	}
	return base + "?" + v.Encode()
}

func respondError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case model.IsValidationError(err):
		status = http.StatusBadRequest
	case model.IsAuthError(err):
		status = http.StatusBadGateway
	case errors.Is(err, model.ErrBatchNotFound):
		status = http.StatusNotFound
	}
	if status == http.StatusInternalServerError {
		logger.GetLogger().WithField("error", err).Error("Request failed")
	}
	c.JSON(status, gin.H{"error": err.Error()})
}
