// Package auth holds the session payloads carried by the Auth cookie.
package auth

import (
	"strings"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

// GoogleToken is the Google OAuth payload of an authenticated session.
// The JSON shape follows Google's token response fields.
type GoogleToken struct {
	Token        string   `json:"token" masq:"secret"`
	RefreshToken string   `json:"refresh_token,omitempty" masq:"secret"`
	TokenURI     string   `json:"token_uri"`
	ClientID     string   `json:"client_id"`
	ClientSecret string   `json:"client_secret,omitempty" masq:"secret"`
	Scopes       []string `json:"scopes,omitempty"`
}

// NewGoogleToken builds the session payload from an OAuth exchange result.
// Scopes granted by the provider win over the requested ones.
func NewGoogleToken(tok *oauth2.Token, cfg *oauth2.Config) *GoogleToken {
	scopes := cfg.Scopes
	if raw, ok := tok.Extra("scope").(string); ok && raw != "" {
		scopes = strings.Fields(raw)
	}

	return &GoogleToken{
		Token:        tok.AccessToken,
		RefreshToken: tok.RefreshToken,
		TokenURI:     google.Endpoint.TokenURL,
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		Scopes:       scopes,
	}
}

// OAuth2Token converts the payload back to an oauth2 token
func (x *GoogleToken) OAuth2Token() *oauth2.Token {
	return &oauth2.Token{
		AccessToken:  x.Token,
		RefreshToken: x.RefreshToken,
	}
}

// OAuth2Config builds the client config used to refresh the token
func (x *GoogleToken) OAuth2Config() *oauth2.Config {
	return &oauth2.Config{
		ClientID:     x.ClientID,
		ClientSecret: x.ClientSecret,
		Scopes:       x.Scopes,
		Endpoint: oauth2.Endpoint{
			AuthURL:  google.Endpoint.AuthURL,
			TokenURL: x.TokenURI,
		},
	}
}
