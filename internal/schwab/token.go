package schwab

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"golang.org/x/oauth2"
)

// Token is the bundle persisted for the collector. The collector refreshes
// it on its own; this tool only writes the initial bundle.
type Token struct {
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token"`
	TokenType    string    `json:"token_type"`
	Scope        string    `json:"scope"`
	ExpiresAt    time.Time `json:"expires_at"`
}

// Valid reports whether the bundle holds an unexpired access token.
func (t *Token) Valid() bool {
	return t != nil && t.AccessToken != "" && time.Now().Before(t.ExpiresAt)
}

// fromOAuth2 converts the vendor token response into the persisted bundle.
// Token strings are copied verbatim, never transformed.
func fromOAuth2(tok *oauth2.Token) *Token {
	scope, _ := tok.Extra("scope").(string)
	return &Token{
		AccessToken:  tok.AccessToken,
		RefreshToken: tok.RefreshToken,
		TokenType:    tok.TokenType,
		Scope:        scope,
		ExpiresAt:    tok.Expiry,
	}
}

// EnsureParentDir creates the token file's parent directory if absent.
// An existing directory is left untouched.
func EnsureParentDir(path string) error {
	dir := filepath.Dir(path)
	if dir == "" || dir == "." {
		return nil
	}
	return os.MkdirAll(dir, 0o755)
}

// LoadToken reads a previously saved bundle. A missing file is not an error
// for the caller to treat specially; os.IsNotExist applies.
func LoadToken(path string) (*Token, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var tok Token
	if err := json.Unmarshal(raw, &tok); err != nil {
		return nil, fmt.Errorf("parse token file %s: %w", path, err)
	}
	return &tok, nil
}

// SaveToken writes the bundle to path with owner-only permissions.
func SaveToken(path string, tok *Token) error {
	if err := EnsureParentDir(path); err != nil {
		return fmt.Errorf("create token directory: %w", err)
	}
	raw, err := json.MarshalIndent(tok, "", "  ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, raw, 0o600); err != nil {
		return fmt.Errorf("write token file %s: %w", path, err)
	}
	return nil
}
