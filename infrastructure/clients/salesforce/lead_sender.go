package salesforce

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"leadbridge/domain/model"
	"leadbridge/domain/repository"
)

type LeadSender struct {
	httpClient *http.Client
}

func NewLeadSender(timeout time.Duration) repository.ILeadSender {
	return &LeadSender{httpClient: newHTTPClient(timeout)}
}

// Send posts the payload to the instance's createlead resource and returns the status
// code and raw body. Only transport failures are returned as errors.
func (s *LeadSender) Send(ctx context.Context, token *model.AccessToken, payload model.LeadPayload) (int, string, error) {
	if token == nil || token.AccessToken == "" {
		return 0, "", errors.New("no access token")
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return 0, "", fmt.Errorf("encode lead payload: %w", err)
	}

	url := strings.TrimRight(token.InstanceURL, "/") + LeadAPIPath
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return 0, "", fmt.Errorf("build lead request: %w", err)
	}
	req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", token.AccessToken))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return 0, "", err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, "", fmt.Errorf("read lead response: %w", err)
	}
	return resp.StatusCode, string(respBody), nil
}
