package salesforce

import (
	"context"
	"errors"
	"net/http"

	"leadbridge/domain/model"
	"leadbridge/domain/repository"
	"leadbridge/infrastructure/logger"

	"golang.org/x/oauth2"
)

type TokenProvider struct {
	oauthConfig *oauth2.Config
	username    string
	password    string
	httpClient  *http.Client
}

// NewTokenProvider builds a provider for the OAuth password grant. Client credentials are
// sent in the form body alongside the user credentials.
func NewTokenProvider(config Config) repository.ITokenProvider {
	return &TokenProvider{
		oauthConfig: &oauth2.Config{
			ClientID:     config.ClientID,
			ClientSecret: config.ClientSecret,
			Endpoint: oauth2.Endpoint{
				TokenURL:  config.TokenURL,
				AuthStyle: oauth2.AuthStyleInParams,
			},
		},
		username:   config.Username,
		password:   config.Password,
		httpClient: newHTTPClient(config.Timeout),
	}
}

// AcquireToken requests a fresh token. Every failure is a *model.AuthError.
func (p *TokenProvider) AcquireToken(ctx context.Context) (*model.AccessToken, error) {
	ctx = context.WithValue(ctx, oauth2.HTTPClient, p.httpClient)

	token, err := p.oauthConfig.PasswordCredentialsToken(ctx, p.username, p.password)
	if err != nil {
		logger.GetLogger().WithField("error", err).Error("Error while requesting access token")
		return nil, &model.AuthError{Err: err}
	}

	instanceURL, _ := token.Extra("instance_url").(string)
	if instanceURL == "" {
		logger.GetLogger().Error("Token response has no instance_url")
		return nil, &model.AuthError{Err: errors.New("server response missing instance_url")}
	}

	logger.GetLogger().WithField("instance_url", instanceURL).Debug("Access token acquired")
	return &model.AccessToken{
		AccessToken: token.AccessToken,
		InstanceURL: instanceURL,
		TokenType:   token.TokenType,
	}, nil
}
