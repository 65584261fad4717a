package firebase

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/dmitrymomot/storefront/pkg/auth"
	"github.com/dmitrymomot/storefront/pkg/credentials"
	"github.com/dmitrymomot/storefront/pkg/logger"
	"github.com/dmitrymomot/storefront/pkg/sanitizer"
)

const (
	// DefaultBaseURL is the production Identity Toolkit endpoint.
	DefaultBaseURL = "https://identitytoolkit.googleapis.com/v1"

	// Default timeout for API requests
	defaultTimeout = 15 * time.Second

	// The emulator accepts any key.
	emulatorAPIKey = "emulator-api-key"
)

// Config configures the Identity Toolkit client.
type Config struct {
	// APIKey is the web API key of the project. Required unless EmulatorHost is set.
	APIKey string

	// EmulatorHost is the host:port of a local Auth emulator.
	// When set, requests go to http://<host>/identitytoolkit.googleapis.com/v1.
	EmulatorHost string

	// BaseURL overrides the endpoint. It takes precedence over EmulatorHost.
	BaseURL string

	// HTTPClient allows custom HTTP client configuration
	// Default: http.Client with Timeout
	HTTPClient *http.Client

	// Timeout applies to the default HTTP client.
	// Default: 15s
	Timeout time.Duration

	Logger *slog.Logger
}

// Client implements auth.Client against the Firebase Authentication REST API.
// The session lives in process memory only; SignOut forgets the ID token.
type Client struct {
	apiKey  string
	baseURL string
	http    *http.Client
	timeout time.Duration
	log     *slog.Logger
	feed    *auth.SessionFeed
	refresh singleflight.Group

	mu      sync.RWMutex
	current *auth.User
	idToken string
	// epoch counts sign-ins and sign-outs. A call that started in an older
	// epoch must not overwrite the session.
	epoch uint64
}

var _ auth.Client = (*Client)(nil)

// NewClient creates a Client from cfg.
func NewClient(cfg Config) (*Client, error) {
	apiKey := cfg.APIKey
	if apiKey == "" {
		if cfg.EmulatorHost == "" {
			return nil, ErrAPIKeyRequired
		}
		apiKey = emulatorAPIKey
	}

	baseURL := DefaultBaseURL
	switch {
	case cfg.BaseURL != "":
		baseURL = strings.TrimRight(cfg.BaseURL, "/")
	case cfg.EmulatorHost != "":
		baseURL = emulatorBaseURL(cfg.EmulatorHost)
	}
	if _, err := url.Parse(baseURL); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidBaseURL, err)
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	client := cfg.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: timeout}
	}

	log := cfg.Logger
	if log == nil {
		log = logger.Discard()
	}

	return &Client{
		apiKey:  apiKey,
		baseURL: baseURL,
		http:    client,
		timeout: timeout,
		log:     log.With(logger.Component("auth"), logger.Backend("firebase")),
		feed:    auth.NewSessionFeed(),
	}, nil
}

func emulatorBaseURL(host string) string {
	host = strings.TrimPrefix(host, "http://")
	host = strings.TrimRight(host, "/")
	return "http://" + host + "/identitytoolkit.googleapis.com/v1"
}

// BaseURL returns the endpoint requests are sent to.
func (c *Client) BaseURL() string {
	return c.baseURL
}

func (c *Client) SignIn(ctx context.Context, email credentials.EmailAddress, password credentials.Password) (*auth.User, error) {
	epoch := c.sessionEpoch()

	var resp tokenResponse
	err := c.call(ctx, "accounts:signInWithPassword", passwordRequest{
		Email:             email.String(),
		Password:          password.Reveal(),
		ReturnSecureToken: true,
	}, &resp)
	if err != nil {
		return nil, err
	}

	user := &auth.User{
		UID:         resp.LocalID,
		Email:       resp.Email,
		DisplayName: resp.DisplayName,
	}
	if info, err := c.lookup(ctx, resp.IDToken); err != nil {
		c.log.WarnContext(ctx, "account lookup failed after sign-in", logger.UserID(user.UID), logger.Error(err))
	} else {
		user = info
	}

	if !c.startSession(epoch, user, resp.IDToken) {
		c.log.InfoContext(ctx, "sign-in discarded after session change", logger.UserID(user.UID))
		return nil, ErrSessionChanged
	}
	c.log.InfoContext(ctx, "signed in", logger.UserID(user.UID))
	return user, nil
}

func (c *Client) SignUp(ctx context.Context, email credentials.EmailAddress, password credentials.Password, name credentials.Name) (*auth.User, error) {
	epoch := c.sessionEpoch()

	var resp tokenResponse
	err := c.call(ctx, "accounts:signUp", passwordRequest{
		Email:             email.String(),
		Password:          password.Reveal(),
		ReturnSecureToken: true,
	}, &resp)
	if err != nil {
		return nil, err
	}

	user := &auth.User{
		UID:   resp.LocalID,
		Email: resp.Email,
	}

	// The account exists from here on. A failed display name update keeps
	// the new session and leaves the name empty.
	if !name.IsZero() {
		var upd updateResponse
		err := c.call(ctx, "accounts:update", updateRequest{
			IDToken:     resp.IDToken,
			DisplayName: name.String(),
		}, &upd)
		if err != nil {
			c.log.WarnContext(ctx, "failed to set display name", logger.UserID(user.UID), logger.Error(err))
		} else {
			user.DisplayName = upd.DisplayName
		}
	}

	if !c.startSession(epoch, user, resp.IDToken) {
		c.log.InfoContext(ctx, "sign-up session discarded after session change", logger.UserID(user.UID))
		return nil, ErrSessionChanged
	}
	c.log.InfoContext(ctx, "account created", logger.UserID(user.UID))
	return user, nil
}

// SignOut forgets the local session. The hosted service keeps no server-side
// session for password sign-in, so no request is made.
func (c *Client) SignOut(ctx context.Context) error {
	prev, _ := c.endSession("")
	if prev != nil {
		c.log.InfoContext(ctx, "signed out", logger.UserID(prev.UID))
	}
	return nil
}

// DeleteAccount deletes the signed-in account with accounts:delete and ends
// the session. It does nothing when no user is signed in.
func (c *Client) DeleteAccount(ctx context.Context) error {
	c.mu.RLock()
	token := c.idToken
	c.mu.RUnlock()
	if token == "" {
		return nil
	}

	if err := c.call(ctx, "accounts:delete", deleteRequest{IDToken: token}, nil); err != nil {
		return err
	}
	if prev, ok := c.endSession(token); ok && prev != nil {
		c.log.InfoContext(ctx, "account deleted", logger.UserID(prev.UID))
	}
	return nil
}

func (c *Client) SendPasswordReset(ctx context.Context, email credentials.EmailAddress) error {
	err := c.call(ctx, "accounts:sendOobCode", oobRequest{
		RequestType: "PASSWORD_RESET",
		Email:       email.String(),
	}, nil)
	if err != nil {
		return err
	}
	c.log.InfoContext(ctx, "password reset requested", slog.String("email", sanitizer.MaskEmail(email.String())))
	return nil
}

// Refresh reloads the signed-in account, picking up changes such as a
// verified email address. Concurrent calls for the same session share one
// lookup, which outlives a caller that gives up. A session that ended during
// the lookup stays ended and Refresh returns nil.
func (c *Client) Refresh(ctx context.Context) (*auth.User, error) {
	c.mu.RLock()
	token := c.idToken
	c.mu.RUnlock()
	if token == "" {
		return nil, nil
	}

	ch := c.refresh.DoChan(token, func() (any, error) {
		lctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), c.timeout)
		defer cancel()

		user, err := c.lookup(lctx, token)
		if err != nil {
			return nil, err
		}
		if !c.updateSession(user, token) {
			return (*auth.User)(nil), nil
		}
		return user, nil
	})

	select {
	case <-ctx.Done():
		return nil, auth.ErrNetwork
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		u := res.Val.(*auth.User)
		if u == nil {
			return nil, nil
		}
		cp := *u
		return &cp, nil
	}
}

func (c *Client) CurrentUser() *auth.User {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.current == nil {
		return nil
	}
	u := *c.current
	return &u
}

func (c *Client) Sessions() *auth.SessionFeed {
	return c.feed
}

// Close ends every session subscription.
func (c *Client) Close() error {
	return c.feed.Close()
}

func (c *Client) lookup(ctx context.Context, idToken string) (*auth.User, error) {
	var resp lookupResponse
	if err := c.call(ctx, "accounts:lookup", lookupRequest{IDToken: idToken}, &resp); err != nil {
		return nil, err
	}
	if len(resp.Users) == 0 {
		return nil, auth.ErrUserNotFound
	}
	u := resp.Users[0]
	return &auth.User{
		UID:           u.LocalID,
		Email:         u.Email,
		DisplayName:   u.DisplayName,
		EmailVerified: u.EmailVerified,
	}, nil
}

func (c *Client) sessionEpoch() uint64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.epoch
}

// startSession installs a new session unless another sign-in or sign-out
// happened since epoch.
func (c *Client) startSession(epoch uint64, u *auth.User, idToken string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.epoch != epoch {
		return false
	}
	c.epoch++
	cp := *u
	c.current, c.idToken = &cp, idToken
	c.feed.Publish(u)
	return true
}

// updateSession replaces the user of the session identified by idToken.
// It reports false when that session is no longer current.
func (c *Client) updateSession(u *auth.User, idToken string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.idToken == "" || c.idToken != idToken {
		return false
	}
	cp := *u
	c.current = &cp
	c.feed.Publish(u)
	return true
}

// endSession signs out. A non-empty idToken limits it to that session.
// It returns the previous user and whether the session was ended.
func (c *Client) endSession(idToken string) (*auth.User, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if idToken != "" && c.idToken != idToken {
		return nil, false
	}
	prev := c.current
	c.epoch++
	c.current, c.idToken = nil, ""
	c.feed.Publish(nil)
	return prev, true
}

// call posts body to the method endpoint and decodes the JSON answer into out.
// Every error returned is an *auth.Error.
func (c *Client) call(ctx context.Context, method string, body, out any) error {
	start := time.Now()

	jsonData, err := json.Marshal(body)
	if err != nil {
		return auth.Unknown(fmt.Sprintf("failed to marshal request: %v", err))
	}

	endpoint := c.baseURL + "/" + method + "?key=" + url.QueryEscape(c.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(jsonData))
	if err != nil {
		return auth.Unknown(fmt.Sprintf("failed to create request: %v", err))
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		c.log.WarnContext(ctx, "identity toolkit request failed", slog.String("method", method), logger.Error(err))
		return auth.ErrNetwork
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return auth.ErrNetwork
	}

	c.log.DebugContext(ctx, "identity toolkit call",
		slog.String("method", method),
		slog.Int("status", resp.StatusCode),
		logger.Duration(time.Since(start)),
	)

	if resp.StatusCode != http.StatusOK {
		return decodeError(resp.StatusCode, data)
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return auth.Unknown(fmt.Sprintf("failed to parse response: %v", err))
	}
	return nil
}
