package upload

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"sync"
	"time"

	json "github.com/goccy/go-json"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/drive/v3"
)

const defaultListenAddr = "localhost:8080"

// OAuthConfig returns the installed-app OAuth client for the settings
func (c *DriveConfig) OAuthConfig() *oauth2.Config {
	return &oauth2.Config{
		ClientID:     c.ClientConfig.ClientID,
		ClientSecret: c.ClientConfig.ClientSecret,
		Endpoint:     google.Endpoint,
		Scopes:       []string{drive.DriveScope},
	}
}

// Authorizer obtains Drive credentials. Saved credentials are reused and
// refreshed; without them the user is sent through the browser consent
// page and the code comes back to a local listener.
type Authorizer struct {
	oauth           *oauth2.Config
	credentialsFile string
	save            bool
	listenAddr      string
	openURL         func(authURL string)
	logger          *zap.Logger
}

// NewAuthorizer creates an Authorizer that prints the consent link to prompt
func NewAuthorizer(cfg *DriveConfig, prompt io.Writer, logger *zap.Logger) *Authorizer {
	return &Authorizer{
		oauth:           cfg.OAuthConfig(),
		credentialsFile: cfg.CredentialsFile,
		save:            cfg.SaveCredentials,
		listenAddr:      defaultListenAddr,
		openURL: func(authURL string) {
			fmt.Fprintf(prompt, "Go to the following link in your browser:\n\n    %s\n\n", authURL)
		},
		logger: logger,
	}
}

// TokenSource returns a refreshing token source. Refreshed tokens are
// written back to the credentials file when saving is enabled.
func (a *Authorizer) TokenSource(ctx context.Context) (oauth2.TokenSource, error) {
	tok, err := LoadToken(a.credentialsFile)
	switch {
	case err == nil:
		a.logger.Debug("Using saved Drive credentials", zap.String("file", a.credentialsFile))
	case errors.Is(err, os.ErrNotExist):
		tok, err = a.authorize(ctx)
		if err != nil {
			return nil, err
		}
		if err := a.persist(tok); err != nil {
			return nil, err
		}
	default:
		return nil, err
	}

	return &savingTokenSource{
		base: a.oauth.TokenSource(ctx, tok),
		last: tok.AccessToken,
		save: a.persist,
	}, nil
}

func (a *Authorizer) authorize(ctx context.Context) (*oauth2.Token, error) {
	ln, err := net.Listen("tcp", a.listenAddr)
	if err != nil {
		return nil, fmt.Errorf("failed to start auth listener: %w", err)
	}

	oauthCfg := *a.oauth
	oauthCfg.RedirectURL = "http://" + ln.Addr().String() + "/"
	state := uuid.NewString()

	codes := make(chan string, 1)
	denied := make(chan error, 1)

	srv := &http.Server{
		ReadHeaderTimeout: 10 * time.Second,
		Handler: http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			q := r.URL.Query()
			if q.Get("state") != state {
				http.Error(w, "state mismatch", http.StatusBadRequest)
				return
			}
			if reason := q.Get("error"); reason != "" {
				fmt.Fprintln(w, "Authentication failed, you may close this window.")
				select {
				case denied <- fmt.Errorf("authorization denied: %s", reason):
				default:
				}
				return
			}
			code := q.Get("code")
			if code == "" {
				http.Error(w, "missing code", http.StatusBadRequest)
				return
			}
			fmt.Fprintln(w, "Authentication successful, you may close this window.")
			select {
			case codes <- code:
			default:
			}
		}),
	}
	go func() { _ = srv.Serve(ln) }()
	defer srv.Close()

	a.logger.Info("Waiting for Google Drive authorization", zap.String("redirect_url", oauthCfg.RedirectURL))
	a.openURL(oauthCfg.AuthCodeURL(state, oauth2.AccessTypeOffline, oauth2.ApprovalForce))

	var code string
	select {
	case code = <-codes:
	case err := <-denied:
		return nil, err
	case <-ctx.Done():
		return nil, ctx.Err()
	}

	tok, err := oauthCfg.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("failed to exchange authorization code: %w", err)
	}

	a.logger.Info("Google Drive authorization completed")
	return tok, nil
}

func (a *Authorizer) persist(tok *oauth2.Token) error {
	if !a.save {
		return nil
	}
	if err := SaveToken(a.credentialsFile, tok); err != nil {
		return err
	}
	a.logger.Debug("Drive credentials saved", zap.String("file", a.credentialsFile))
	return nil
}

// LoadToken reads a token saved by SaveToken
func LoadToken(path string) (*oauth2.Token, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read credentials: %w", err)
	}

	var tok oauth2.Token
	if err := json.Unmarshal(data, &tok); err != nil {
		return nil, fmt.Errorf("failed to parse credentials %s: %w", path, err)
	}
	return &tok, nil
}

// SaveToken writes the token readable by the owner only
func SaveToken(path string, tok *oauth2.Token) error {
	data, err := json.MarshalIndent(tok, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode credentials: %w", err)
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return fmt.Errorf("failed to create credentials dir: %w", err)
		}
	}

	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write credentials: %w", err)
	}
	return nil
}

// savingTokenSource calls save whenever the access token changes
type savingTokenSource struct {
	mu   sync.Mutex
	base oauth2.TokenSource
	last string
	save func(*oauth2.Token) error
}

func (s *savingTokenSource) Token() (*oauth2.Token, error) {
	tok, err := s.base.Token()
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if tok.AccessToken != s.last {
		if err := s.save(tok); err != nil {
			return nil, err
		}
		s.last = tok.AccessToken
	}
	return tok, nil
}
