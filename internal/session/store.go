// Package session stores the credential pair and user profile.
//
// The store is injected into the HTTP client at construction so tests can
// substitute an in-memory double; nothing reads credentials through package
// globals.
package session

import (
	"fmt"
	"os"

	"github.com/bytedance/sonic"
	"golang.org/x/oauth2"

	"taskhub/internal/service"
)

// Store provides get/set/clear access to the session state.
// A nil token with a nil error means "not logged in".
type Store interface {
	// Token returns the stored credential pair, or nil when absent.
	Token() (*oauth2.Token, error)

	// SetToken replaces the stored credential pair.
	SetToken(tok *oauth2.Token) error

	// SetAccessToken replaces only the access token, preserving the
	// refresh token. Used by the silent refresh flow.
	SetAccessToken(access string) error

	// User returns the stored profile, or nil when absent.
	User() (*service.User, error)

	// SetUser replaces the stored profile.
	SetUser(u *service.User) error

	// Clear removes the credential pair and profile.
	Clear() error
}

// FileStore persists the session under the config directory.
// token.json holds an oauth2.Token (keys access_token / refresh_token),
// user.json the JSON-serialized profile. Files are written with mode 0600.
type FileStore struct {
	tokenPath string
	userPath  string
}

// NewFileStore creates a store over the given file paths.
func NewFileStore(tokenPath, userPath string) *FileStore {
	return &FileStore{tokenPath: tokenPath, userPath: userPath}
}

// Token implements Store.
func (s *FileStore) Token() (*oauth2.Token, error) {
	data, err := os.ReadFile(s.tokenPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read token: %w", err)
	}
	var tok oauth2.Token
	if err := sonic.Unmarshal(data, &tok); err != nil {
		return nil, fmt.Errorf("invalid token file: %w", err)
	}
	return &tok, nil
}

// SetToken implements Store.
func (s *FileStore) SetToken(tok *oauth2.Token) error {
	data, err := sonic.MarshalIndent(tok, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(s.tokenPath, data, 0600)
}

// SetAccessToken implements Store.
func (s *FileStore) SetAccessToken(access string) error {
	tok, err := s.Token()
	if err != nil {
		return err
	}
	if tok == nil {
		tok = &oauth2.Token{}
	}
	tok.AccessToken = access
	return s.SetToken(tok)
}

// User implements Store.
func (s *FileStore) User() (*service.User, error) {
	data, err := os.ReadFile(s.userPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read user: %w", err)
	}
	var u service.User
	if err := sonic.Unmarshal(data, &u); err != nil {
		return nil, fmt.Errorf("invalid user file: %w", err)
	}
	return &u, nil
}

// SetUser implements Store.
func (s *FileStore) SetUser(u *service.User) error {
	data, err := sonic.MarshalIndent(u, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(s.userPath, data, 0600)
}

// Clear implements Store.
func (s *FileStore) Clear() error {
	var firstErr error
	for _, p := range []string{s.tokenPath, s.userPath} {
		if err := os.Remove(p); err != nil && !os.IsNotExist(err) && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
