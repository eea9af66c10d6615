package usecase_test

import (
	"context"

	"leadbridge/domain/model"

	"github.com/stretchr/testify/mock"
)

type MockTokenProvider struct {
	mock.Mock
}

func (m *MockTokenProvider) AcquireToken(ctx context.Context) (*model.AccessToken, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.AccessToken), args.Error(1)
}

type MockLeadSender struct {
	mock.Mock
}

func (m *MockLeadSender) Send(ctx context.Context, token *model.AccessToken, payload model.LeadPayload) (int, string, error) {
	args := m.Called(ctx, token, payload)
	return args.Int(0), args.String(1), args.Error(2)
}

type MockReportStore struct {
	mock.Mock
}

func (m *MockReportStore) Save(ctx context.Context, batch *model.Batch) error {
	args := m.Called(ctx, batch)
	return args.Error(0)
}

func (m *MockReportStore) Get(ctx context.Context, id string) (*model.Batch, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Batch), args.Error(1)
}

// byEmail matches the payload sent for a given contact.
func byEmail(email string) interface{} {
	return mock.MatchedBy(func(p model.LeadPayload) bool { return p.Email == email })
}
