package auth

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/dmitrymomot/storefront/pkg/credentials"
	"github.com/dmitrymomot/storefront/pkg/logger"
	"github.com/dmitrymomot/storefront/pkg/ratelimiter"
	"github.com/dmitrymomot/storefront/pkg/sanitizer"
)

// MinBackendPasswordLength mirrors the hosted identity service, which rejects
// shorter passwords as weak regardless of the client policy.
const MinBackendPasswordLength = 6

// ResetSender delivers a password reset token for email, usually by mail.
type ResetSender func(ctx context.Context, email, token string) error

// MemoryClient is an in-process Client for development and tests.
// Accounts live in memory and are lost when the process exits.
type MemoryClient struct {
	mu       sync.RWMutex
	accounts map[string]*memoryAccount
	current  *User
	feed     *SessionFeed

	secret     []byte
	latency    time.Duration
	bcryptCost int
	resetTTL   time.Duration
	sendReset  ResetSender
	now        func() time.Time
	log        *slog.Logger
	attempts   ratelimiter.RateLimiter
}

type memoryAccount struct {
	user User
	hash []byte
}

// MemoryOption configures a MemoryClient.
type MemoryOption func(*MemoryClient)

// WithLatency delays every call, simulating a network round trip.
func WithLatency(d time.Duration) MemoryOption {
	return func(c *MemoryClient) {
		if d > 0 {
			c.latency = d
		}
	}
}

// WithBcryptCost sets the bcrypt cost for password hashing.
func WithBcryptCost(cost int) MemoryOption {
	return func(c *MemoryClient) {
		c.bcryptCost = cost
	}
}

// WithResetTTL sets how long password reset tokens stay valid.
func WithResetTTL(ttl time.Duration) MemoryOption {
	return func(c *MemoryClient) {
		if ttl > 0 {
			c.resetTTL = ttl
		}
	}
}

// WithResetSender replaces the default sender, which only logs the token.
func WithResetSender(fn ResetSender) MemoryOption {
	return func(c *MemoryClient) {
		if fn != nil {
			c.sendReset = fn
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) MemoryOption {
	return func(c *MemoryClient) {
		if l != nil {
			c.log = l
		}
	}
}

// WithClock overrides time.Now for reset token expiry.
func WithClock(now func() time.Time) MemoryOption {
	return func(c *MemoryClient) {
		if now != nil {
			c.now = now
		}
	}
}

// WithSignInLimiter locks an account once limiter runs out of tokens for it.
// Every wrong password takes a token and a successful sign-in resets the
// account.
func WithSignInLimiter(limiter ratelimiter.RateLimiter) MemoryOption {
	return func(c *MemoryClient) {
		c.attempts = limiter
	}
}

// NewMemoryClient creates an empty in-memory backend. secret signs password
// reset tokens.
func NewMemoryClient(secret string, opts ...MemoryOption) *MemoryClient {
	c := &MemoryClient{
		accounts:   make(map[string]*memoryAccount),
		feed:       NewSessionFeed(),
		secret:     []byte(secret),
		bcryptCost: bcrypt.DefaultCost,
		resetTTL:   time.Hour,
		now:        time.Now,
		log:        logger.Discard(),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.sendReset == nil {
		c.sendReset = c.logReset
	}
	c.log = c.log.With(logger.Component("auth"), logger.Backend("memory"))
	return c
}

func (c *MemoryClient) SignIn(ctx context.Context, email credentials.EmailAddress, password credentials.Password) (*User, error) {
	if err := c.roundTrip(ctx); err != nil {
		return nil, err
	}
	if email.IsZero() {
		return nil, ErrInvalidEmail
	}

	key := accountKey(email)
	if err := c.checkAttempts(ctx, key); err != nil {
		return nil, err
	}

	c.mu.Lock()
	acc, ok := c.accounts[key]
	if !ok {
		c.mu.Unlock()
		c.log.DebugContext(ctx, "sign-in for unknown account", slog.String("email", sanitizer.MaskEmail(email.String())))
		return nil, ErrUserNotFound
	}
	if err := bcrypt.CompareHashAndPassword(acc.hash, []byte(password.Reveal())); err != nil {
		uid := acc.user.UID
		c.mu.Unlock()
		c.log.DebugContext(ctx, "sign-in with wrong password", logger.UserID(uid))
		c.failedAttempt(ctx, key, uid)
		return nil, ErrWrongPassword
	}
	user := acc.user.clone()
	c.current = user
	c.mu.Unlock()

	if c.attempts != nil {
		if err := c.attempts.Reset(ctx, key); err != nil {
			c.log.WarnContext(ctx, "failed to reset sign-in attempts", logger.Error(err))
		}
	}

	c.feed.Publish(user)
	c.log.InfoContext(ctx, "signed in", logger.UserID(user.UID))
	return user.clone(), nil
}

func (c *MemoryClient) SignUp(ctx context.Context, email credentials.EmailAddress, password credentials.Password, name credentials.Name) (*User, error) {
	if err := c.roundTrip(ctx); err != nil {
		return nil, err
	}
	if email.IsZero() {
		return nil, ErrInvalidEmail
	}
	if utf8.RuneCountInString(password.Reveal()) < MinBackendPasswordLength {
		return nil, ErrWeakPassword
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password.Reveal()), c.bcryptCost)
	if err != nil {
		// bcrypt only fails for passwords over 72 bytes.
		c.log.WarnContext(ctx, "failed to hash password", logger.Error(err))
		return nil, ErrWeakPassword
	}

	key := accountKey(email)
	c.mu.Lock()
	if _, exists := c.accounts[key]; exists {
		c.mu.Unlock()
		return nil, ErrEmailAlreadyInUse
	}
	acc := &memoryAccount{
		user: User{
			UID:         uuid.NewString(),
			Email:       email.String(),
			DisplayName: name.String(),
		},
		hash: hash,
	}
	c.accounts[key] = acc
	user := acc.user.clone()
	c.current = user
	c.mu.Unlock()

	c.feed.Publish(user)
	c.log.InfoContext(ctx, "account created", logger.UserID(user.UID))
	return user.clone(), nil
}

func (c *MemoryClient) SignOut(ctx context.Context) error {
	if err := c.roundTrip(ctx); err != nil {
		return err
	}

	c.mu.Lock()
	prev := c.current
	c.current = nil
	c.mu.Unlock()

	c.feed.Publish(nil)
	if prev != nil {
		c.log.InfoContext(ctx, "signed out", logger.UserID(prev.UID))
	}
	return nil
}

// DeleteAccount removes the signed-in account and signs out. It does nothing
// when no user is signed in.
func (c *MemoryClient) DeleteAccount(ctx context.Context) error {
	if err := c.roundTrip(ctx); err != nil {
		return err
	}

	c.mu.Lock()
	prev := c.current
	if prev == nil {
		c.mu.Unlock()
		return nil
	}
	delete(c.accounts, sanitizer.NormalizeEmail(prev.Email))
	c.current = nil
	c.mu.Unlock()

	c.feed.Publish(nil)
	c.log.InfoContext(ctx, "account deleted", logger.UserID(prev.UID))
	return nil
}

func (c *MemoryClient) SendPasswordReset(ctx context.Context, email credentials.EmailAddress) error {
	if err := c.roundTrip(ctx); err != nil {
		return err
	}
	if email.IsZero() {
		return ErrInvalidEmail
	}

	c.mu.RLock()
	acc, ok := c.accounts[accountKey(email)]
	var uid string
	if ok {
		uid = acc.user.UID
	}
	c.mu.RUnlock()
	if !ok {
		return ErrUserNotFound
	}

	token, err := signResetToken(newResetClaims(uid, email.String(), c.now(), c.resetTTL), c.secret)
	if err != nil {
		return AsError(err)
	}

	if err := c.sendReset(ctx, email.String(), token); err != nil {
		c.log.WarnContext(ctx, "failed to deliver password reset", logger.UserID(uid), logger.Error(err))
		return AsError(err)
	}
	return nil
}

// ConfirmPasswordReset sets a new password using a token delivered by
// SendPasswordReset. It does not sign the user in.
func (c *MemoryClient) ConfirmPasswordReset(ctx context.Context, token string, password credentials.Password) error {
	if err := c.roundTrip(ctx); err != nil {
		return err
	}

	claims, err := parseResetToken(token, c.secret, c.now)
	if err != nil {
		c.log.DebugContext(ctx, "rejected reset token", logger.Error(err))
		if errors.Is(err, jwt.ErrTokenExpired) {
			return ErrResetLinkExpired
		}
		return ErrResetLinkInvalid
	}
	if utf8.RuneCountInString(password.Reveal()) < MinBackendPasswordLength {
		return ErrWeakPassword
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password.Reveal()), c.bcryptCost)
	if err != nil {
		return ErrWeakPassword
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	acc, ok := c.accounts[sanitizer.NormalizeEmail(claims.Email)]
	if !ok || acc.user.UID != claims.UID {
		return ErrUserNotFound
	}
	acc.hash = hash
	c.log.InfoContext(ctx, "password reset", logger.UserID(acc.user.UID))
	return nil
}

// VerifyEmail marks the account as verified, as following a verification
// link would.
func (c *MemoryClient) VerifyEmail(email credentials.EmailAddress) error {
	c.mu.Lock()
	acc, ok := c.accounts[accountKey(email)]
	if !ok {
		c.mu.Unlock()
		return ErrUserNotFound
	}
	acc.user.EmailVerified = true
	var updated *User
	if c.current != nil && c.current.UID == acc.user.UID {
		updated = acc.user.clone()
		c.current = updated
	}
	c.mu.Unlock()

	if updated != nil {
		c.feed.Publish(updated)
	}
	return nil
}

func (c *MemoryClient) CurrentUser() *User {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.current.clone()
}

func (c *MemoryClient) Sessions() *SessionFeed {
	return c.feed
}

// Close ends every session subscription.
func (c *MemoryClient) Close() error {
	return c.feed.Close()
}

// roundTrip waits for the configured latency. A cancelled or expired context
// is reported the way a dropped connection would be.
func (c *MemoryClient) roundTrip(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return ErrNetwork
	}
	if c.latency <= 0 {
		return nil
	}

	t := time.NewTimer(c.latency)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ErrNetwork
	case <-t.C:
		return nil
	}
}

// checkAttempts refuses the sign-in while the account has no attempts left.
func (c *MemoryClient) checkAttempts(ctx context.Context, key string) error {
	if c.attempts == nil {
		return nil
	}
	res, err := c.attempts.Status(ctx, key)
	if err != nil {
		return AsError(err)
	}
	if res.Exhausted() {
		c.log.InfoContext(ctx, "sign-in refused, account locked",
			slog.String("email", sanitizer.MaskEmail(key)),
			logger.Duration(res.RetryAfter(c.now())),
		)
		return ErrTooManyAttempts
	}
	return nil
}

func (c *MemoryClient) failedAttempt(ctx context.Context, key, uid string) {
	if c.attempts == nil {
		return
	}
	if _, err := c.attempts.Allow(ctx, key); err != nil {
		c.log.WarnContext(ctx, "failed to record sign-in attempt", logger.UserID(uid), logger.Error(err))
	}
}

func (c *MemoryClient) logReset(ctx context.Context, email, token string) error {
	c.log.InfoContext(ctx, "password reset token issued",
		slog.String("email", sanitizer.MaskEmail(email)),
		slog.String("token", token),
	)
	return nil
}

func accountKey(email credentials.EmailAddress) string {
	return sanitizer.NormalizeEmail(email.String())
}
