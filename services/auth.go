package services

import (
	"fmt"
	"net/http"
	"os"
)

// AuthProvider resolves the caller's userId (email-as-username) for a
// request. The workflow trusts the resolved value as-is.
type AuthProvider interface {
	UserID(r *http.Request) (string, error)
}

// AWSAuthProvider trusts the identity header injected by an upstream AWS
// authorizer (API Gateway / ALB OIDC).
type AWSAuthProvider struct {
	Header string
}

func (p *AWSAuthProvider) UserID(r *http.Request) (string, error) {
	userID := r.Header.Get(p.Header)
	if userID == "" {
		return "", fmt.Errorf("missing %s header: %w", p.Header, ErrAccessDenied)
	}
	return userID, nil
}

// LocalAuthProvider is the dev fallback: the X-User-Email header if present,
// otherwise a configured static user.
type LocalAuthProvider struct {
	DefaultUser string
}

func (p *LocalAuthProvider) UserID(r *http.Request) (string, error) {
	if userID := r.Header.Get("X-User-Email"); userID != "" {
		return userID, nil
	}
	if p.DefaultUser == "" {
		return "", fmt.Errorf("no user identity available: %w", ErrAccessDenied)
	}
	return p.DefaultUser, nil
}

// NewAuthProviderFromEnv selects the provider at startup via
// SYNTRA_AUTH_PROVIDER ("aws" or "local", default "aws").
func NewAuthProviderFromEnv() AuthProvider {
	switch os.Getenv("SYNTRA_AUTH_PROVIDER") {
	case "local":
		return &LocalAuthProvider{DefaultUser: os.Getenv("SYNTRA_LOCAL_USER")}
	default:
		header := os.Getenv("SYNTRA_IDENTITY_HEADER")
		if header == "" {
			header = "X-Amzn-Oidc-Identity"
		}
		return &AWSAuthProvider{Header: header}
	}
}
