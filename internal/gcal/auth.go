package gcal

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"os"
	"path/filepath"
	"sync"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"
)

const (
	CredentialsFile = "credentials.json"
	TokenFile       = "token.json"

	oobRedirect = "urn:ietf:wg:oauth:2.0:oob"
)

// Authorizer runs the installed-app OAuth flow against the client secrets
// stored in Dir and persists the resulting token next to them.
type Authorizer struct {
	Dir    string
	config *oauth2.Config
}

func NewAuthorizer(dir string) (*Authorizer, error) {
	path := filepath.Join(dir, CredentialsFile)
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading client secrets %s: %w", path, err)
	}
	cfg, err := google.ConfigFromJSON(b, calendar.CalendarScope)
	if err != nil {
		return nil, fmt.Errorf("parsing client secrets: %w", err)
	}
	// Google retired the out-of-band flow; the code is read from the
	// localhost redirect instead.
	if cfg.RedirectURL == "" || cfg.RedirectURL == oobRedirect {
		cfg.RedirectURL = "http://localhost"
	}
	return &Authorizer{Dir: dir, config: cfg}, nil
}

func (a *Authorizer) tokenPath() string {
	return filepath.Join(a.Dir, TokenFile)
}

// AuthURL is the consent page the user opens to obtain a code.
func (a *Authorizer) AuthURL() string {
	return a.config.AuthCodeURL("state-token", oauth2.AccessTypeOffline,
		oauth2.SetAuthURLParam("prompt", "consent"))
}

// Exchange trades an authorization code for a token and saves it.
func (a *Authorizer) Exchange(ctx context.Context, code string) error {
	tok, err := a.config.Exchange(ctx, code)
	if err != nil {
		return fmt.Errorf("exchanging authorization code: %w", err)
	}
	return SaveToken(a.tokenPath(), tok)
}

// Client returns an HTTP client that refreshes the stored token and writes
// refreshed tokens back to disk.
func (a *Authorizer) Client(ctx context.Context) (*http.Client, error) {
	tok, err := TokenFromFile(a.tokenPath())
	if errors.Is(err, fs.ErrNotExist) {
		return nil, ErrNotAuthorized
	}
	if err != nil {
		return nil, err
	}
	src := &savingTokenSource{
		base: a.config.TokenSource(ctx, tok),
		path: a.tokenPath(),
		last: tok.AccessToken,
	}
	return oauth2.NewClient(ctx, oauth2.ReuseTokenSource(tok, src)), nil
}

// Service builds a Calendar API client from the stored token.
func (a *Authorizer) Service(ctx context.Context) (*calendar.Service, error) {
	client, err := a.Client(ctx)
	if err != nil {
		return nil, err
	}
	srv, err := calendar.NewService(ctx, option.WithHTTPClient(client))
	if err != nil {
		return nil, fmt.Errorf("creating calendar service: %w", err)
	}
	return srv, nil
}

type savingTokenSource struct {
	base oauth2.TokenSource
	path string

	mu   sync.Mutex
	last string
}

func (s *savingTokenSource) Token() (*oauth2.Token, error) {
	tok, err := s.base.Token()
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if tok.AccessToken != s.last {
		if err := SaveToken(s.path, tok); err != nil {
			return nil, err
		}
		s.last = tok.AccessToken
	}
	return tok, nil
}

func TokenFromFile(path string) (*oauth2.Token, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	tok := &oauth2.Token{}
	if err := json.NewDecoder(f).Decode(tok); err != nil {
		return nil, fmt.Errorf("decoding token %s: %w", path, err)
	}
	return tok, nil
}

// SaveToken writes tok to path with owner-only permissions.
func SaveToken(path string, tok *oauth2.Token) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("creating token dir: %w", err)
	}
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("saving token: %w", err)
	}
	defer f.Close()
	return json.NewEncoder(f).Encode(tok)
}
