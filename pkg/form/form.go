package form

import (
	"context"
	"log/slog"
	"sync"

	"github.com/dmitrymomot/storefront/pkg/async"
	"github.com/dmitrymomot/storefront/pkg/auth"
	"github.com/dmitrymomot/storefront/pkg/broadcast"
	"github.com/dmitrymomot/storefront/pkg/credentials"
	"github.com/dmitrymomot/storefront/pkg/field"
	"github.com/dmitrymomot/storefront/pkg/logger"
	"github.com/dmitrymomot/storefront/pkg/messages"
	"github.com/dmitrymomot/storefront/pkg/statemachine"
)

// Form is a sign-in and sign-up form backed by an auth.Client.
// All methods are safe for concurrent use.
type Form struct {
	client  auth.Client
	catalog *messages.Catalog
	log     *slog.Logger

	email    *field.Controller[credentials.EmailAddress]
	password *field.Controller[credentials.Password]
	name     *field.Controller[credentials.Name]

	sm *statemachine.Machine[phase, event]

	mu        sync.Mutex
	mode      Mode
	lastErr   *auth.Error
	resetSent bool
	user      *auth.User
	closed    bool
	detach    []func()

	subs broadcast.Listeners[State]
}

// New creates a form submitting to client.
func New(client auth.Client, opts ...Option) *Form {
	cfg := newConfig(opts)
	log := cfg.log.With(logger.Component("form"))
	fieldOpts := cfg.controllerOptions()

	f := &Form{
		client:   client,
		catalog:  cfg.catalog,
		log:      log,
		email:    field.NewEmailField(fieldOpts...),
		password: field.NewPasswordField(fieldOpts...),
		name:     field.NewNameField(fieldOpts...),
		mode:     cfg.mode,
	}
	f.sm = newPhaseMachine(log)

	f.detach = []func(){
		f.email.OnChange(func(field.State[credentials.EmailAddress]) { f.changed() }),
		f.password.OnChange(func(field.State[credentials.Password]) { f.changed() }),
		f.name.OnChange(func(field.State[credentials.Name]) { f.changed() }),
	}
	return f
}

func newPhaseMachine(log *slog.Logger) *statemachine.Machine[phase, event] {
	trace := statemachine.WithAction(func(ctx context.Context, from, to phase, ev event, _ any) error {
		log.DebugContext(ctx, "form transition",
			slog.String("from", from.String()),
			logger.Status(to.String()),
			logger.Event(string(ev)),
		)
		return nil
	})
	ready := statemachine.WithGuard(func(_ context.Context, _ phase, _ event, data any) bool {
		ok, _ := data.(bool)
		return ok
	})

	return statemachine.MustNew(phaseIdle,
		statemachine.WithTransition(phaseIdle, phaseSubmitting, evSubmit, ready, trace),
		statemachine.WithTransition(phaseIdle, phaseResetting, evReset, ready, trace),
		statemachine.WithTransition(phaseSubmitting, phaseIdle, evDone, trace),
		statemachine.WithTransition(phaseResetting, phaseIdle, evDone, trace),
	)
}

// Email returns the email field controller.
func (f *Form) Email() *field.Controller[credentials.EmailAddress] { return f.email }

// Password returns the password field controller.
func (f *Form) Password() *field.Controller[credentials.Password] { return f.password }

// Name returns the display name field controller. It gates submission only
// in ModeSignUp.
func (f *Form) Name() *field.Controller[credentials.Name] { return f.name }

// Mode returns the current mode.
func (f *Form) Mode() Mode {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.mode
}

// SetMode switches between sign-in and sign-up. Field text is kept.
func (f *Form) SetMode(m Mode) {
	if !m.valid() {
		return
	}

	f.mu.Lock()
	if f.closed || f.mode == m {
		f.mu.Unlock()
		return
	}
	f.mode = m
	f.log.Debug("form mode changed", logger.Mode(m.String()))
	f.enqueueLocked()
	f.mu.Unlock()

	f.subs.Drain()
}

// ToggleMode switches to the other mode.
func (f *Form) ToggleMode() {
	f.SetMode(f.Mode().Toggle())
}

// Flush validates pending input in every field without waiting for the
// debounce delay.
func (f *Form) Flush() {
	f.email.Flush()
	f.password.Flush()
	f.name.Flush()
}

// Values returns the validated input when every field required by the
// current mode is Valid.
func (f *Form) Values() (Values, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.valuesLocked()
}

func (f *Form) valuesLocked() (Values, bool) {
	var (
		v   Values
		ok  bool
		all = true
	)
	v.Email, ok = f.email.Value()
	all = all && ok
	v.Password, ok = f.password.Value()
	all = all && ok
	if f.mode == ModeSignUp {
		v.Name, ok = f.name.Value()
		all = all && ok
	}
	if !all {
		return Values{}, false
	}
	return v, true
}

// Submittable reports whether Submit would start a request.
func (f *Form) Submittable() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.submittableLocked()
}

func (f *Form) submittableLocked() bool {
	if f.closed || !f.sm.Is(phaseIdle) {
		return false
	}
	_, ok := f.valuesLocked()
	return ok
}

// Submit signs in or signs up with the validated values. It does nothing and
// returns false when the form is not submittable. The future completes after
// the outcome has been applied to the form state.
func (f *Form) Submit(ctx context.Context) (*async.Future[*auth.User], bool) {
	f.mu.Lock()
	if f.closed {
		f.mu.Unlock()
		return nil, false
	}
	vals, ok := f.valuesLocked()
	if _, err := f.sm.Fire(ctx, evSubmit, ok); err != nil {
		f.mu.Unlock()
		return nil, false
	}
	mode := f.mode
	f.lastErr = nil
	f.enqueueLocked()
	f.mu.Unlock()
	f.subs.Drain()

	f.log.InfoContext(ctx, "submitting form", logger.Mode(mode.String()))

	fut := async.Async(ctx, vals, func(ctx context.Context, v Values) (*auth.User, error) {
		if mode == ModeSignUp {
			return f.client.SignUp(ctx, v.Email, v.Password, v.Name)
		}
		return f.client.SignIn(ctx, v.Email, v.Password)
	})
	fut.Then(func(u *auth.User, err error) {
		f.finishSubmit(ctx, mode, u, err)
	})
	return fut, true
}

func (f *Form) finishSubmit(ctx context.Context, mode Mode, u *auth.User, err error) {
	f.mu.Lock()
	f.fire(ctx, evDone)
	if err != nil {
		f.lastErr = auth.AsError(err)
		f.log.WarnContext(ctx, "form submit failed",
			logger.Mode(mode.String()),
			logger.Error(err),
		)
	} else {
		f.lastErr = nil
		f.user = u
		f.log.InfoContext(ctx, "form submitted",
			logger.Mode(mode.String()),
			slog.Any("user", u),
		)
	}
	f.enqueueLocked()
	f.mu.Unlock()

	f.subs.Drain()
}

// RequestPasswordReset sends a reset link to the entered email address. It
// does nothing and returns false unless the email field is Valid and no
// request is in flight.
func (f *Form) RequestPasswordReset(ctx context.Context) (*async.Future[struct{}], bool) {
	f.mu.Lock()
	if f.closed {
		f.mu.Unlock()
		return nil, false
	}
	email, ok := f.email.Value()
	if _, err := f.sm.Fire(ctx, evReset, ok); err != nil {
		f.mu.Unlock()
		return nil, false
	}
	f.lastErr = nil
	f.resetSent = false
	f.enqueueLocked()
	f.mu.Unlock()
	f.subs.Drain()

	f.log.InfoContext(ctx, "requesting password reset")

	fut := async.Async(ctx, email, func(ctx context.Context, e credentials.EmailAddress) (struct{}, error) {
		return struct{}{}, f.client.SendPasswordReset(ctx, e)
	})
	fut.Then(func(_ struct{}, err error) {
		f.finishReset(ctx, err)
	})
	return fut, true
}

func (f *Form) finishReset(ctx context.Context, err error) {
	f.mu.Lock()
	f.fire(ctx, evDone)
	if err != nil {
		f.lastErr = auth.AsError(err)
		f.log.WarnContext(ctx, "password reset failed", logger.Error(err))
	} else {
		f.resetSent = true
		f.log.InfoContext(ctx, "password reset sent")
	}
	f.enqueueLocked()
	f.mu.Unlock()

	f.subs.Drain()
}

func (f *Form) fire(ctx context.Context, ev event) {
	if _, err := f.sm.Fire(ctx, ev, nil); err != nil {
		f.log.ErrorContext(ctx, "unexpected form transition", logger.Event(string(ev)), logger.Error(err))
	}
}

// State returns the current state.
func (f *Form) State() State {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.stateLocked()
}

func (f *Form) stateLocked() State {
	s := State{
		Mode:        f.mode,
		Email:       f.email.Snapshot(),
		Password:    f.password.Snapshot(),
		Name:        f.name.Snapshot(),
		Submittable: f.submittableLocked(),
		Submitting:  f.sm.Is(phaseSubmitting),
		Resetting:   f.sm.Is(phaseResetting),
		Err:         f.lastErr,
		ResetSent:   f.resetSent,
		User:        f.user,
	}
	if f.lastErr != nil {
		s.LastError = f.catalog.Auth(f.lastErr)
	}
	if f.resetSent {
		s.Notice = f.catalog.PasswordResetSent()
	}
	return s
}

// OnChange registers fn for every state change and returns a function that
// removes it.
func (f *Form) OnChange(fn func(State)) (remove func()) {
	return f.subs.Add(fn)
}

func (f *Form) changed() {
	f.mu.Lock()
	if f.closed {
		f.mu.Unlock()
		return
	}
	f.enqueueLocked()
	f.mu.Unlock()

	f.subs.Drain()
}

func (f *Form) enqueueLocked() {
	if f.subs.Len() == 0 {
		return
	}
	f.subs.Enqueue(f.stateLocked())
}

// Close stops the field controllers and drops listeners. A request in
// flight still completes its future.
func (f *Form) Close() {
	f.mu.Lock()
	if f.closed {
		f.mu.Unlock()
		return
	}
	f.closed = true
	detach := f.detach
	f.detach = nil
	f.mu.Unlock()

	for _, fn := range detach {
		fn()
	}
	f.email.Close()
	f.password.Close()
	f.name.Close()
	f.subs.Close()
}
