package repository

import (
	"context"

	"leadbridge/domain/model"
)

// ITokenProvider exchanges the configured credentials for a bearer token.
type ITokenProvider interface {
	AcquireToken(ctx context.Context) (*model.AccessToken, error)
}

// ILeadSender posts one payload. A non-2xx status is returned as data, not as an error.
type ILeadSender interface {
	Send(ctx context.Context, token *model.AccessToken, payload model.LeadPayload) (int, string, error)
}
