package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"leadbridge/domain/dto"
	"leadbridge/domain/model"
	httpHandler "leadbridge/interfaces/http"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockLeadUsecase struct {
	mock.Mock
}

func (m *MockLeadUsecase) Campaigns() []string {
	return m.Called().Get(0).([]string)
}

func (m *MockLeadUsecase) Platforms() []string {
	return m.Called().Get(0).([]string)
}

func (m *MockLeadUsecase) SubmitManual(ctx context.Context, record model.ContactRecord, campaign string) (*model.Batch, error) {
	args := m.Called(ctx, record, campaign)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Batch), args.Error(1)
}

func (m *MockLeadUsecase) SubmitUpload(ctx context.Context, platform, campaign string, file io.Reader) (*model.Batch, error) {
	body, _ := io.ReadAll(file)
	args := m.Called(ctx, platform, campaign, string(body))
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Batch), args.Error(1)
}

func (m *MockLeadUsecase) Report(ctx context.Context, batchID string, onlyFailed bool) ([]byte, error) {
	args := m.Called(ctx, batchID, onlyFailed)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func (m *MockLeadUsecase) ErrorLog() []model.ErrorLogEntry {
	return m.Called().Get(0).([]model.ErrorLogEntry)
}

func (m *MockLeadUsecase) ExportErrorLog() ([]byte, error) {
	args := m.Called()
	return args.Get(0).([]byte), args.Error(1)
}

func newRouter(uc *MockLeadUsecase) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := httpHandler.NewLeadHandler(uc)
	r := gin.New()
	r.GET("/api/options", h.Options)
	r.POST("/api/leads", h.SubmitManual)
	r.POST("/api/leads/upload/:platform", h.SubmitUpload)
	r.GET("/api/batches/:id/report", h.DownloadReport)
	r.GET("/api/errors", h.ErrorLog)
	r.GET("/api/errors/export", h.ExportErrorLog)
	return r
}

func mixedBatch() *model.Batch {
	return &model.Batch{
		ID:       "batch-1",
		Platform: "TikTok",
		Campaign: "PET-Q2-2025",
		Outcomes: []model.OutcomeRecord{
			{ContactRecord: model.ContactRecord{Firstname: "Ali", Email: "ali@example.com"}, Status: model.StatusSuccess, Message: "Lead sent"},
			{ContactRecord: model.ContactRecord{Firstname: "Sara", Email: "sara@example.com"}, Status: model.StatusFailed, Message: "Bad mobile"},
		},
	}
}

func uploadRequest(t *testing.T, platform, campaign, content string) *http.Request {
	t.Helper()
	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	require.NoError(t, w.WriteField("campaign", campaign))
	part, err := w.CreateFormFile("file", "leads.csv")
	require.NoError(t, err)
	_, err = part.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/leads/upload/"+platform, &body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	return req
}

func TestLeadHandler_Options(t *testing.T) {
	uc := new(MockLeadUsecase)
	uc.On("Campaigns").Return([]string{"PET-Q2-2025"})
	uc.On("Platforms").Return([]string{"TikTok", "Snapchat"})

	rec := httptest.NewRecorder()
	newRouter(uc).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/options", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var res dto.OptionsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	assert.Equal(t, []string{"PET-Q2-2025"}, res.Campaigns)
	assert.Equal(t, []string{"TikTok", "Snapchat"}, res.Platforms)
}

func TestLeadHandler_SubmitUpload(t *testing.T) {
	content := "Firstname,Lastname,Mobile,Email\nAli,Naveed,0512345678,ali@example.com\n"
	uc := new(MockLeadUsecase)
	uc.On("SubmitUpload", mock.Anything, "TikTok", "PET-Q2-2025", content).Return(mixedBatch(), nil).Once()

	rec := httptest.NewRecorder()
	newRouter(uc).ServeHTTP(rec, uploadRequest(t, "TikTok", "PET-Q2-2025", content))

	require.Equal(t, http.StatusOK, rec.Code)
	var res dto.BatchSummary
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	assert.Equal(t, "batch-1", res.BatchID)
	assert.Equal(t, 2, res.Total)
	assert.Equal(t, 1, res.Succeeded)
	assert.Equal(t, 1, res.Failed)
	assert.Equal(t, "1 succeeded / 1 failed", res.Message)
	assert.Equal(t, "/api/batches/batch-1/report?name=TikTok", res.Reports.Log)
	assert.Equal(t, "/api/batches/batch-1/report?name=TikTok&status=Failed", res.Reports.Failed)
	uc.AssertExpectations(t)
}

func TestLeadHandler_SubmitUpload_Errors(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code int
	}{
		{name: "validation", err: model.NewMissingColumnsError("TikTok", []string{"Email"}), code: http.StatusBadRequest},
		{name: "auth", err: &model.AuthError{Err: errors.New("invalid_grant")}, code: http.StatusBadGateway},
		{name: "other", err: errors.New("boom"), code: http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := new(MockLeadUsecase)
			uc.On("SubmitUpload", mock.Anything, "TikTok", "PET-Q2-2025", mock.Anything).Return(nil, tt.err).Once()

			rec := httptest.NewRecorder()
			newRouter(uc).ServeHTTP(rec, uploadRequest(t, "TikTok", "PET-Q2-2025", "Firstname\n"))

			assert.Equal(t, tt.code, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.err.Error())
		})
	}
}

func TestLeadHandler_SubmitUpload_MissingFile(t *testing.T) {
	uc := new(MockLeadUsecase)

	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	require.NoError(t, w.WriteField("campaign", "PET-Q2-2025"))
	require.NoError(t, w.Close())
	req := httptest.NewRequest(http.MethodPost, "/api/leads/upload/TikTok", &body)
	req.Header.Set("Content-Type", w.FormDataContentType())

	rec := httptest.NewRecorder()
	newRouter(uc).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	uc.AssertNotCalled(t, "SubmitUpload", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestLeadHandler_SubmitManual(t *testing.T) {
	record := model.ContactRecord{Firstname: "Ali", Lastname: "Naveed", Mobile: "0512345678", Email: "ali@example.com"}
	batch := &model.Batch{
		ID:       "batch-2",
		Platform: model.PlatformManual,
		Campaign: "PET-Summer-2025",
		Outcomes: []model.OutcomeRecord{{ContactRecord: record, Status: model.StatusSuccess, Message: "Lead sent"}},
	}
	uc := new(MockLeadUsecase)
	uc.On("SubmitManual", mock.Anything, record, "PET-Summer-2025").Return(batch, nil).Once()

	body := `{"firstname":" Ali ","lastname":"Naveed","mobile":"0512345678","email":"ali@example.com","campaign":"PET-Summer-2025"}`
	rec := httptest.NewRecorder()
	newRouter(uc).ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/leads", bytes.NewBufferString(body)))

	require.Equal(t, http.StatusOK, rec.Code)
	var res dto.BatchSummary
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	assert.Equal(t, "1 succeeded / 0 failed", res.Message)
	assert.Empty(t, res.Reports.Failed)
	uc.AssertExpectations(t)
}

func TestLeadHandler_SubmitManual_MissingField(t *testing.T) {
	uc := new(MockLeadUsecase)

	rec := httptest.NewRecorder()
	newRouter(uc).ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/leads", bytes.NewBufferString(`{"firstname":"Ali"}`)))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	uc.AssertNotCalled(t, "SubmitManual", mock.Anything, mock.Anything, mock.Anything)
}

func TestLeadHandler_DownloadReport(t *testing.T) {
	t.Run("failures_only", func(t *testing.T) {
		uc := new(MockLeadUsecase)
		uc.On("Report", mock.Anything, "batch-1", true).Return([]byte("Firstname\nSara\n"), nil).Once()

		rec := httptest.NewRecorder()
		newRouter(uc).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/batches/batch-1/report?status=Failed&name=TikTok", nil))

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, `attachment; filename="tiktok_failed.csv"`, rec.Header().Get("Content-Disposition"))
		assert.Equal(t, "Firstname\nSara\n", rec.Body.String())
	})

	t.Run("full_log", func(t *testing.T) {
		uc := new(MockLeadUsecase)
		uc.On("Report", mock.Anything, "batch-1", false).Return([]byte("Firstname\n"), nil).Once()

		rec := httptest.NewRecorder()
		newRouter(uc).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/batches/batch-1/report?name=Snapchat", nil))

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, `attachment; filename="snapchat_submission_log.csv"`, rec.Header().Get("Content-Disposition"))
	})

	t.Run("unknown_batch", func(t *testing.T) {
		uc := new(MockLeadUsecase)
		uc.On("Report", mock.Anything, "missing", false).Return(nil, model.ErrBatchNotFound).Once()

		rec := httptest.NewRecorder()
		newRouter(uc).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/batches/missing/report", nil))

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestLeadHandler_ErrorLog(t *testing.T) {
	uc := new(MockLeadUsecase)
	uc.On("ErrorLog").Return([]model.ErrorLogEntry{{Section: "TikTok", Error: "Row 2: Bad mobile"}})
	uc.On("ExportErrorLog").Return([]byte("Timestamp,Section,Error\n"), nil)
	router := newRouter(uc)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/errors", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Row 2: Bad mobile")

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/errors/export", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, `attachment; filename="error_log.csv"`, rec.Header().Get("Content-Disposition"))
	assert.Equal(t, "Timestamp,Section,Error\n", rec.Body.String())
}
