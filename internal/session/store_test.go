package session

import (
	"context"
	"testing"

	"github.com/aadi-anilkumar-2005/vehicle-rental-service/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAccounts struct {
	users     map[string]*Identity
	passwords map[string]string
	nextID    uint
	lastCtx   context.Context
}

func newFakeAccounts() *fakeAccounts {
	return &fakeAccounts{
		users:     make(map[string]*Identity),
		passwords: make(map[string]string),
		nextID:    1,
	}
}

func (f *fakeAccounts) VerifyCredentials(ctx context.Context, email, password string) (*Identity, error) {
	f.lastCtx = ctx
	ident, ok := f.users[email]
	if !ok || f.passwords[email] != password {
		return nil, ErrInvalidCredentials
	}
	cp := *ident
	return &cp, nil
}

func (f *fakeAccounts) CreateUser(ctx context.Context, nu NewUser) (*Identity, error) {
	f.lastCtx = ctx
	if _, exists := f.users[nu.Email]; exists {
		return nil, ErrDuplicateEmail
	}
	ident := &Identity{
		ID:    f.nextID,
		Name:  nu.Name,
		Email: nu.Email,
		Role:  nu.Role,
	}
	f.nextID++
	f.users[nu.Email] = ident
	f.passwords[nu.Email] = nu.Password
	return ident, nil
}

func (f *fakeAccounts) seed(email, password string, role models.Role) *Identity {
	ident, _ := f.CreateUser(context.Background(), NewUser{
		Name:     "Seeded User",
		Email:    email,
		Password: password,
		Role:     role,
	})
	return ident
}

func TestLoginSetsCurrentIdentity(t *testing.T) {
	accounts := newFakeAccounts()
	accounts.seed("john@example.com", "secret123", models.RoleCustomer)
	store := NewStore(accounts, accounts)

	_, ok := store.Current()
	assert.False(t, ok)

	ident, err := store.Login(context.Background(), "john@example.com", "secret123")
	require.NoError(t, err)
	assert.Equal(t, models.RoleCustomer, ident.Role)

	current, ok := store.Current()
	require.True(t, ok)
	assert.Equal(t, ident.ID, current.ID)
}

func TestLoginBadPassword(t *testing.T) {
	accounts := newFakeAccounts()
	accounts.seed("john@example.com", "secret123", models.RoleCustomer)
	store := NewStore(accounts, accounts)

	_, err := store.Login(context.Background(), "john@example.com", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, ok := store.Current()
	assert.False(t, ok)
}

func TestLoginWhileOtherIdentityActive(t *testing.T) {
	accounts := newFakeAccounts()
	accounts.seed("john@example.com", "secret123", models.RoleCustomer)
	accounts.seed("jane@example.com", "secret456", models.RoleOwner)
	store := NewStore(accounts, accounts)

	_, err := store.Login(context.Background(), "john@example.com", "secret123")
	require.NoError(t, err)

	// Switching identities requires an explicit logout first
	_, err = store.Login(context.Background(), "jane@example.com", "secret456")
	assert.ErrorIs(t, err, ErrSessionActive)

	current, ok := store.Current()
	require.True(t, ok)
	assert.Equal(t, "john@example.com", current.Email)

	store.Logout()
	_, err = store.Login(context.Background(), "jane@example.com", "secret456")
	assert.NoError(t, err)
}

func TestLogoutIsIdempotent(t *testing.T) {
	accounts := newFakeAccounts()
	accounts.seed("john@example.com", "secret123", models.RoleCustomer)
	store := NewStore(accounts, accounts)

	_, err := store.Login(context.Background(), "john@example.com", "secret123")
	require.NoError(t, err)

	store.Logout()
	store.Logout()

	_, ok := store.Current()
	assert.False(t, ok)
}

func TestSignupLogsIn(t *testing.T) {
	accounts := newFakeAccounts()
	store := NewStore(accounts, accounts)

	ident, err := store.Signup(context.Background(), NewUser{
		Name:     "Jane Doe",
		Email:    "jane@example.com",
		Password: "secret456",
		Role:     models.RoleOwner,
	})
	require.NoError(t, err)

	current, ok := store.Current()
	require.True(t, ok)
	assert.Equal(t, ident.ID, current.ID)
	assert.Equal(t, models.RoleOwner, current.Role)
}

func TestSignupDuplicateEmail(t *testing.T) {
	accounts := newFakeAccounts()
	accounts.seed("jane@example.com", "secret456", models.RoleOwner)
	store := NewStore(accounts, accounts)

	_, err := store.Signup(context.Background(), NewUser{
		Name:     "Jane Doe",
		Email:    "jane@example.com",
		Password: "secret456",
		Role:     models.RoleCustomer,
	})
	assert.ErrorIs(t, err, ErrDuplicateEmail)

	// Session untouched by the failed signup
	_, ok := store.Current()
	assert.False(t, ok)
}

func TestSignupValidation(t *testing.T) {
	cases := map[string]NewUser{
		"missing name":   {Email: "a@b.com", Password: "secret123", Role: models.RoleCustomer},
		"short password": {Name: "A", Email: "a@b.com", Password: "abc", Role: models.RoleCustomer},
		"bad email":      {Name: "A", Email: "not-an-email", Password: "secret123", Role: models.RoleCustomer},
		"unknown role":   {Name: "A", Email: "a@b.com", Password: "secret123", Role: "superuser"},
	}

	for name, nu := range cases {
		t.Run(name, func(t *testing.T) {
			store := NewStore(newFakeAccounts(), newFakeAccounts())
			_, err := store.Signup(context.Background(), nu)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestCollaboratorCallsHaveDeadline(t *testing.T) {
	accounts := newFakeAccounts()
	accounts.seed("john@example.com", "secret123", models.RoleCustomer)
	store := NewStore(accounts, accounts)

	_, err := store.Login(context.Background(), "john@example.com", "secret123")
	require.NoError(t, err)

	_, hasDeadline := accounts.lastCtx.Deadline()
	assert.True(t, hasDeadline, "credential check must be time-bounded")
}

func TestCurrentReturnsCopy(t *testing.T) {
	accounts := newFakeAccounts()
	accounts.seed("john@example.com", "secret123", models.RoleCustomer)
	store := NewStore(accounts, accounts)

	_, err := store.Login(context.Background(), "john@example.com", "secret123")
	require.NoError(t, err)

	first, _ := store.Current()
	first.Role = models.RoleAdmin

	second, _ := store.Current()
	assert.Equal(t, models.RoleCustomer, second.Role)
}
