package form_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/storefront/pkg/auth"
	"github.com/dmitrymomot/storefront/pkg/debounce"
	"github.com/dmitrymomot/storefront/pkg/field"
	"github.com/dmitrymomot/storefront/pkg/form"
)

const (
	validEmail    = "user@example.com"
	validPassword = "Passw0rd!"
	validName     = "Jane"
)

func newForm(t *testing.T, client *mockClient, opts ...form.Option) *form.Form {
	t.Helper()
	clock := debounce.NewManualClock(time.Now())
	opts = append([]form.Option{form.WithFieldOptions(field.WithClock(clock))}, opts...)
	f := form.New(client, opts...)
	t.Cleanup(f.Close)
	return f
}

func fill(f *form.Form, email, password, name string) {
	f.Email().TextChanged(email)
	f.Password().TextChanged(password)
	f.Name().TextChanged(name)
	f.Flush()
}

func TestForm_NotSubmittable(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		mode     form.Mode
		email    string
		password string
		userName string
	}{
		{name: "empty", mode: form.ModeSignIn},
		{name: "invalid email", mode: form.ModeSignIn, email: "user@", password: validPassword},
		{name: "weak password", mode: form.ModeSignIn, email: validEmail, password: "password"},
		{name: "sign up without name", mode: form.ModeSignUp, email: validEmail, password: validPassword},
		{name: "sign up with short name", mode: form.ModeSignUp, email: validEmail, password: validPassword, userName: "Al"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			client := &mockClient{}
			f := newForm(t, client, form.WithMode(tt.mode))
			fill(f, tt.email, tt.password, tt.userName)

			assert.False(t, f.Submittable())
			_, ok := f.Values()
			assert.False(t, ok)

			fut, ok := f.Submit(context.Background())
			assert.False(t, ok)
			assert.Nil(t, fut)
			client.AssertNotCalled(t, "SignIn", mock.Anything, mock.Anything, mock.Anything)
			client.AssertNotCalled(t, "SignUp", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
		})
	}
}

func TestForm_PendingInputBlocksSubmit(t *testing.T) {
	t.Parallel()

	client := &mockClient{}
	f := newForm(t, client)
	fill(f, validEmail, validPassword, "")
	require.True(t, f.Submittable())

	f.Email().TextChanged(validEmail + "x")
	assert.False(t, f.Submittable())
	assert.Equal(t, field.Pending, f.State().Email.Status)
}

func TestForm_SignIn(t *testing.T) {
	t.Parallel()

	user := &auth.User{UID: "u1", Email: validEmail}
	client := &mockClient{}
	client.On("SignIn", mock.Anything, emailIs(validEmail), passwordIs(validPassword)).Return(user, nil).Once()

	f := newForm(t, client)
	fill(f, validEmail, validPassword, "")

	vals, ok := f.Values()
	require.True(t, ok)
	assert.Equal(t, validEmail, vals.Email.String())
	assert.True(t, vals.Name.IsZero())

	fut, ok := f.Submit(context.Background())
	require.True(t, ok)
	got, err := fut.Await()
	require.NoError(t, err)
	assert.Equal(t, user, got)

	st := f.State()
	assert.False(t, st.Submitting)
	assert.True(t, st.Submittable)
	assert.Empty(t, st.LastError)
	assert.Nil(t, st.Err)
	assert.Equal(t, user, st.User)
	client.AssertExpectations(t)
}

func TestForm_SignInUserNotFound(t *testing.T) {
	t.Parallel()

	client := &mockClient{}
	client.On("SignIn", mock.Anything, mock.Anything, mock.Anything).Return(nil, auth.ErrUserNotFound).Once()

	f := newForm(t, client)
	fill(f, validEmail, validPassword, "")

	fut, ok := f.Submit(context.Background())
	require.True(t, ok)
	_, err := fut.Await()
	require.ErrorIs(t, err, auth.ErrUserNotFound)

	st := f.State()
	assert.Equal(t, "No account found with this email", st.LastError)
	assert.Equal(t, auth.KindUserNotFound, st.Err.Kind)
	assert.Equal(t, validEmail, st.Email.Raw)
	assert.Equal(t, validPassword, st.Password.Raw)
	assert.Equal(t, field.Valid, st.Email.Status)
	assert.True(t, st.Submittable)
	assert.Nil(t, st.User)
}

func TestForm_UnknownErrorPassesThrough(t *testing.T) {
	t.Parallel()

	client := &mockClient{}
	client.On("SignIn", mock.Anything, mock.Anything, mock.Anything).
		Return(nil, auth.Unknown("Too many attempts")).Once()

	f := newForm(t, client)
	fill(f, validEmail, validPassword, "")

	fut, ok := f.Submit(context.Background())
	require.True(t, ok)
	_, _ = fut.Await()

	assert.Equal(t, "Too many attempts", f.State().LastError)
}

func TestForm_SecondSubmitRefused(t *testing.T) {
	t.Parallel()

	release := make(chan struct{})
	client := &mockClient{}
	client.On("SignIn", mock.Anything, mock.Anything, mock.Anything).
		Run(func(mock.Arguments) { <-release }).
		Return(&auth.User{UID: "u1"}, nil).Once()

	f := newForm(t, client)
	fill(f, validEmail, validPassword, "")

	fut, ok := f.Submit(context.Background())
	require.True(t, ok)

	st := f.State()
	assert.True(t, st.Submitting)
	assert.False(t, st.Submittable)

	again, ok := f.Submit(context.Background())
	assert.False(t, ok)
	assert.Nil(t, again)
	_, ok = f.RequestPasswordReset(context.Background())
	assert.False(t, ok)

	close(release)
	_, err := fut.Await()
	require.NoError(t, err)
	assert.False(t, f.State().Submitting)
	client.AssertNumberOfCalls(t, "SignIn", 1)
}

func TestForm_ErrorClearedOnNextSubmit(t *testing.T) {
	t.Parallel()

	client := &mockClient{}
	client.On("SignIn", mock.Anything, mock.Anything, mock.Anything).Return(nil, auth.ErrWrongPassword).Once()
	client.On("SignIn", mock.Anything, mock.Anything, mock.Anything).Return(&auth.User{UID: "u1"}, nil).Once()

	f := newForm(t, client)
	fill(f, validEmail, validPassword, "")

	fut, _ := f.Submit(context.Background())
	_, _ = fut.Await()
	require.Equal(t, "Incorrect password", f.State().LastError)

	fut, ok := f.Submit(context.Background())
	require.True(t, ok)
	_, err := fut.Await()
	require.NoError(t, err)
	assert.Empty(t, f.State().LastError)
}

func TestForm_ModeToggle(t *testing.T) {
	t.Parallel()

	user := &auth.User{UID: "u2", DisplayName: validName}
	client := &mockClient{}
	client.On("SignUp", mock.Anything, emailIs(validEmail), passwordIs(validPassword), nameIs(validName)).
		Return(user, nil).Once()

	f := newForm(t, client)
	fill(f, validEmail, validPassword, "")
	require.True(t, f.Submittable())

	f.ToggleMode()
	assert.Equal(t, form.ModeSignUp, f.Mode())
	assert.False(t, f.Submittable())

	st := f.State()
	assert.Equal(t, validEmail, st.Email.Raw)
	assert.Equal(t, validPassword, st.Password.Raw)

	f.Name().TextChanged(validName)
	f.Flush()
	require.True(t, f.Submittable())

	fut, ok := f.Submit(context.Background())
	require.True(t, ok)
	got, err := fut.Await()
	require.NoError(t, err)
	assert.Equal(t, user, got)

	f.ToggleMode()
	st = f.State()
	assert.Equal(t, form.ModeSignIn, st.Mode)
	assert.Equal(t, validName, st.Name.Raw)
	assert.Equal(t, validEmail, st.Email.Raw)
	client.AssertExpectations(t)
	client.AssertNotCalled(t, "SignIn", mock.Anything, mock.Anything, mock.Anything)
}

func TestForm_SetModeIgnoresUnknown(t *testing.T) {
	t.Parallel()

	f := newForm(t, &mockClient{})
	f.SetMode(form.Mode(42))
	assert.Equal(t, form.ModeSignIn, f.Mode())
}

func TestForm_PasswordReset(t *testing.T) {
	t.Parallel()

	t.Run("requires a valid email", func(t *testing.T) {
		t.Parallel()
		client := &mockClient{}
		f := newForm(t, client)
		fill(f, "not-an-email", "", "")

		fut, ok := f.RequestPasswordReset(context.Background())
		assert.False(t, ok)
		assert.Nil(t, fut)
		client.AssertNotCalled(t, "SendPasswordReset", mock.Anything, mock.Anything)
	})

	t.Run("sent", func(t *testing.T) {
		t.Parallel()
		client := &mockClient{}
		client.On("SendPasswordReset", mock.Anything, emailIs(validEmail)).Return(nil).Once()

		f := newForm(t, client)
		fill(f, validEmail, "", "")

		fut, ok := f.RequestPasswordReset(context.Background())
		require.True(t, ok)
		_, err := fut.Await()
		require.NoError(t, err)

		st := f.State()
		assert.True(t, st.ResetSent)
		assert.Contains(t, st.Notice, "Password reset link has been sent")
		assert.Empty(t, st.LastError)
		assert.False(t, st.Resetting)
		client.AssertExpectations(t)
	})

	t.Run("failed", func(t *testing.T) {
		t.Parallel()
		client := &mockClient{}
		client.On("SendPasswordReset", mock.Anything, mock.Anything).Return(auth.ErrNetwork).Once()

		f := newForm(t, client)
		fill(f, validEmail, "", "")

		fut, ok := f.RequestPasswordReset(context.Background())
		require.True(t, ok)
		_, _ = fut.Await()

		st := f.State()
		assert.False(t, st.ResetSent)
		assert.Empty(t, st.Notice)
		assert.Equal(t, "Network error occurred", st.LastError)
	})
}

func TestForm_OnChange(t *testing.T) {
	t.Parallel()

	client := &mockClient{}
	client.On("SignIn", mock.Anything, mock.Anything, mock.Anything).Return(nil, auth.ErrNetwork).Once()

	f := newForm(t, client)

	var (
		mu     sync.Mutex
		states []form.State
	)
	remove := f.OnChange(func(s form.State) {
		mu.Lock()
		defer mu.Unlock()
		states = append(states, s)
	})

	fill(f, validEmail, validPassword, "")
	fut, ok := f.Submit(context.Background())
	require.True(t, ok)
	_, _ = fut.Await()

	mu.Lock()
	require.NotEmpty(t, states)
	last := states[len(states)-1]
	var sawSubmitting bool
	for _, s := range states {
		sawSubmitting = sawSubmitting || s.Submitting
	}
	count := len(states)
	mu.Unlock()

	assert.True(t, sawSubmitting)
	assert.False(t, last.Submitting)
	assert.Equal(t, "Network error occurred", last.LastError)

	remove()
	f.Email().TextChanged("other@example.com")
	mu.Lock()
	defer mu.Unlock()
	assert.Len(t, states, count)
}

func TestForm_Close(t *testing.T) {
	t.Parallel()

	client := &mockClient{}
	f := form.New(client, form.WithFieldOptions(field.WithClock(debounce.NewManualClock(time.Now()))))
	fill(f, validEmail, validPassword, "")

	calls := 0
	f.OnChange(func(form.State) { calls++ })
	f.Close()
	f.Close()

	f.Email().TextChanged("other@example.com")
	f.ToggleMode()
	_, ok := f.Submit(context.Background())

	assert.False(t, ok)
	assert.Zero(t, calls)
	assert.Equal(t, validEmail, f.State().Email.Raw)
	assert.Equal(t, form.ModeSignIn, f.Mode())
}
