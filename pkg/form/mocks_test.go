package form_test

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/dmitrymomot/storefront/pkg/auth"
	"github.com/dmitrymomot/storefront/pkg/credentials"
)

type mockClient struct {
	mock.Mock
}

var _ auth.Client = (*mockClient)(nil)

func (m *mockClient) SignIn(ctx context.Context, email credentials.EmailAddress, password credentials.Password) (*auth.User, error) {
	args := m.Called(ctx, email, password)
	u, _ := args.Get(0).(*auth.User)
	return u, args.Error(1)
}

func (m *mockClient) SignUp(ctx context.Context, email credentials.EmailAddress, password credentials.Password, name credentials.Name) (*auth.User, error) {
	args := m.Called(ctx, email, password, name)
	u, _ := args.Get(0).(*auth.User)
	return u, args.Error(1)
}

func (m *mockClient) SignOut(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *mockClient) SendPasswordReset(ctx context.Context, email credentials.EmailAddress) error {
	return m.Called(ctx, email).Error(0)
}

func (m *mockClient) DeleteAccount(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *mockClient) CurrentUser() *auth.User {
	u, _ := m.Called().Get(0).(*auth.User)
	return u
}

func (m *mockClient) Sessions() *auth.SessionFeed {
	feed, _ := m.Called().Get(0).(*auth.SessionFeed)
	return feed
}

func emailIs(want string) any {
	return mock.MatchedBy(func(e credentials.EmailAddress) bool { return e.String() == want })
}

func passwordIs(want string) any {
	return mock.MatchedBy(func(p credentials.Password) bool { return p.Reveal() == want })
}

func nameIs(want string) any {
	return mock.MatchedBy(func(n credentials.Name) bool { return n.String() == want })
}
