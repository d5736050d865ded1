package auth

import (
	"context"
	"errors"
	"net/url"
	"strings"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"invoiceflow/nav"
)

func seedUser(t *testing.T, repo *fakeRepository, email, password string) User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	user := User{
		ID:           "user-1",
		Email:        email,
		FullName:     "Alice Admin",
		PasswordHash: string(hash),
		CreatedAt:    time.Now().UTC(),
	}
	repo.add(user)
	return user
}

func TestService_SignInAndCurrentUser(t *testing.T) {
	repo := newFakeRepository()
	svc := NewService(repo, NewMemoryDenylist(), "test-secret")
	user := seedUser(t, repo, "alice@example.com", "supersafe")

	ctx := context.Background()
	session, err := svc.SignIn(ctx, Credentials{Email: "alice@example.com", Password: "supersafe"})
	if err != nil {
		t.Fatalf("sign in: unexpected error: %v", err)
	}
	if session.Token == "" {
		t.Fatal("sign in: expected token, got empty string")
	}
	if session.User.ID != user.ID {
		t.Fatalf("sign in: expected user id %q got %q", user.ID, session.User.ID)
	}

	current, err := svc.CurrentUser(ctx, session.Token)
	if err != nil {
		t.Fatalf("current user: %v", err)
	}
	if current.Email != user.Email {
		t.Fatalf("current user: expected %q got %q", user.Email, current.Email)
	}
}

func TestService_SignInInvalidCredentials(t *testing.T) {
	repo := newFakeRepository()
	svc := NewService(repo, nil, "test-secret")
	seedUser(t, repo, "alice@example.com", "supersafe")

	ctx := context.Background()

	if _, err := svc.SignIn(ctx, Credentials{Email: "unknown@example.com", Password: "irrelevant"}); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for unknown email, got %v", err)
	}
	if _, err := svc.SignIn(ctx, Credentials{Email: "alice@example.com", Password: "wrong"}); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for wrong password, got %v", err)
	}
}

func TestService_SignOutRevokesSession(t *testing.T) {
	repo := newFakeRepository()
	svc := NewService(repo, NewMemoryDenylist(), "test-secret")
	seedUser(t, repo, "alice@example.com", "supersafe")

	ctx := context.Background()
	session, err := svc.SignIn(ctx, Credentials{Email: "alice@example.com", Password: "supersafe"})
	if err != nil {
		t.Fatalf("sign in: %v", err)
	}

	if err := svc.SignOut(ctx, session.Token); err != nil {
		t.Fatalf("sign out: %v", err)
	}

	if _, err := svc.CurrentUser(ctx, session.Token); !errors.Is(err, ErrSessionRevoked) {
		t.Fatalf("expected ErrSessionRevoked after sign-out, got %v", err)
	}
}

func TestService_SignOutGarbageTokenIsNil(t *testing.T) {
	svc := NewService(newFakeRepository(), NewMemoryDenylist(), "test-secret")

	if err := svc.SignOut(context.Background(), "not-a-jwt"); err != nil {
		t.Fatalf("expected nil for malformed token, got %v", err)
	}
}

func TestService_CurrentUserWrongSecret(t *testing.T) {
	repo := newFakeRepository()
	seedUser(t, repo, "alice@example.com", "supersafe")

	issuer := NewService(repo, nil, "secret-a")
	verifier := NewService(repo, nil, "secret-b")

	session, err := issuer.SignIn(context.Background(), Credentials{Email: "alice@example.com", Password: "supersafe"})
	if err != nil {
		t.Fatalf("sign in: %v", err)
	}

	if _, err := verifier.CurrentUser(context.Background(), session.Token); err == nil {
		t.Fatal("expected verification failure across secrets")
	}
}

func TestSignInForm_FailureRedirectsToLogin(t *testing.T) {
	svc := NewService(newFakeRepository(), nil, "test-secret")

	redirect := svc.SignInForm(context.Background(), Credentials{Email: "nobody@example.com", Password: "x"})

	if !strings.HasPrefix(redirect.Target, nav.RouteLogin+"?") {
		t.Fatalf("expected login redirect, got %q", redirect.Target)
	}
	parsed, err := url.Parse(redirect.Target)
	if err != nil {
		t.Fatalf("parse redirect: %v", err)
	}
	if got := parsed.Query().Get("kind"); got != "error" {
		t.Fatalf("expected kind=error, got %q", got)
	}
	if got := parsed.Query().Get("message"); got != "Invalid login credentials" {
		t.Fatalf("unexpected message %q", got)
	}
	if redirect.Token != "" {
		t.Fatal("expected no token on failed sign-in")
	}
}

func TestSignInForm_SuccessRedirectsToDashboard(t *testing.T) {
	repo := newFakeRepository()
	svc := NewService(repo, nil, "test-secret")
	seedUser(t, repo, "alice@example.com", "supersafe")

	redirect := svc.SignInForm(context.Background(), Credentials{Email: "alice@example.com", Password: "supersafe"})

	if redirect.Target != nav.RouteDashboard {
		t.Fatalf("expected dashboard redirect, got %q", redirect.Target)
	}
	if redirect.Token == "" {
		t.Fatal("expected session token on successful sign-in")
	}
}

func TestSignOutForm_AlwaysNavigatesToRoot(t *testing.T) {
	svc := NewService(newFakeRepository(), NewMemoryDenylist(), "test-secret")

	redirect := svc.SignOutForm(context.Background(), "whatever")

	if redirect.Target != nav.RouteRoot {
		t.Fatalf("expected root redirect, got %q", redirect.Target)
	}
}

type fakeRepository struct {
	usersByEmail map[string]User
	usersByID    map[string]User
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{
		usersByEmail: make(map[string]User),
		usersByID:    make(map[string]User),
	}
}

func (f *fakeRepository) add(user User) {
	f.usersByEmail[strings.ToLower(user.Email)] = user
	f.usersByID[user.ID] = user
}

func (f *fakeRepository) GetUserByEmail(_ context.Context, email string) (User, error) {
	user, ok := f.usersByEmail[strings.ToLower(email)]
	if !ok {
		return User{}, ErrUserNotFound
	}
	return user, nil
}

func (f *fakeRepository) GetUserByID(_ context.Context, userID string) (User, error) {
	user, ok := f.usersByID[userID]
	if !ok {
		return User{}, ErrUserNotFound
	}
	return user, nil
}

func (f *fakeRepository) ListUsers(_ context.Context) ([]User, error) {
	users := make([]User, 0, len(f.usersByID))
	for _, user := range f.usersByID {
		users = append(users, user)
	}
	return users, nil
}
