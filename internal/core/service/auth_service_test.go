package service

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/contactdesk/contact-api/internal/core/domain"
	"github.com/contactdesk/contact-api/internal/core/password"
	"github.com/contactdesk/contact-api/internal/core/ports"
	"github.com/contactdesk/contact-api/internal/core/token"
)

type stubUserRepo struct {
	users  map[string]*domain.User // keyed by ID
	nextID int
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[string]*domain.User)}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	return &clone
}

func (r *stubUserRepo) CountByUsername(_ context.Context, username string) (int64, error) {
	var n int64
	for _, u := range r.users {
		if u.Username == username {
			n++
		}
	}
	return n, nil
}

func (r *stubUserRepo) FindByUsername(_ context.Context, username string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Username == username {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	if u, ok := r.users[id]; ok {
		return cloneUser(u), nil
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	for _, u := range r.users {
		if u.Username == user.Username {
			return nil, domain.ErrUsernameTaken
		}
	}
	r.nextID++
	copy := cloneUser(user)
	copy.ID = fmt.Sprintf("user-%d", r.nextID)
	r.users[copy.ID] = cloneUser(copy)
	return cloneUser(copy), nil
}

func (r *stubUserRepo) Update(_ context.Context, user *domain.User) (*domain.User, error) {
	if _, ok := r.users[user.ID]; !ok {
		return nil, domain.ErrUserNotFound
	}
	r.users[user.ID] = cloneUser(user)
	return cloneUser(user), nil
}

func (r *stubUserRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.users[id]; !ok {
		return domain.ErrUserNotFound
	}
	delete(r.users, id)
	return nil
}

func newTestIssuer(t *testing.T) *token.Issuer {
	t.Helper()
	iss, err := token.NewIssuer(
		token.ClassConfig{Secret: "access-secret", TTL: time.Minute},
		token.ClassConfig{Secret: "refresh-secret", TTL: time.Hour},
	)
	if err != nil {
		t.Fatalf("NewIssuer: %v", err)
	}
	return iss
}

func newAuthService(t *testing.T) (*AuthService, *stubUserRepo, *token.Issuer) {
	t.Helper()
	repo := newStubUserRepo()
	iss := newTestIssuer(t)
	svc := NewAuthService(repo, password.NewHasher(), iss, zerolog.Nop())
	return svc, repo, iss
}

func TestAuthService_Register_Success(t *testing.T) {
	svc, repo, _ := newAuthService(t)

	result, err := svc.Register(context.Background(), ports.RegisterInput{
		Username: "alice", Password: "pw", Name: "Alice",
	})
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if result.Username != "alice" || result.Name != "Alice" {
		t.Fatalf("unexpected result: %+v", result)
	}
	if result.AccessToken != "" || result.RefreshToken != "" {
		t.Fatalf("register must not issue tokens")
	}

	stored, err := repo.FindByUsername(context.Background(), "alice")
	if err != nil {
		t.Fatalf("user not persisted: %v", err)
	}
	if stored.PasswordHash == "pw" || stored.PasswordHash == "" {
		t.Fatalf("password not hashed: %q", stored.PasswordHash)
	}
}

func TestAuthService_Register_Duplicate(t *testing.T) {
	svc, repo, _ := newAuthService(t)

	if _, err := svc.Register(context.Background(), ports.RegisterInput{Username: "bob", Password: "pw", Name: "Bob"}); err != nil {
		t.Fatalf("first register failed: %v", err)
	}
	if _, err := svc.Register(context.Background(), ports.RegisterInput{Username: "bob", Password: "other", Name: "Bobby"}); !errors.Is(err, domain.ErrUsernameTaken) {
		t.Fatalf("expected ErrUsernameTaken, got %v", err)
	}
	if len(repo.users) != 1 {
		t.Fatalf("expected exactly one record, got %d", len(repo.users))
	}
}

func TestAuthService_Login_Success(t *testing.T) {
	svc, _, iss := newAuthService(t)

	if _, err := svc.Register(context.Background(), ports.RegisterInput{Username: "carol", Password: "s3cret", Name: "Carol"}); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	result, err := svc.Login(context.Background(), ports.LoginInput{Username: "carol", Password: "s3cret"})
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if result.AccessToken == "" || result.RefreshToken == "" {
		t.Fatalf("expected both tokens, got %+v", result)
	}

	access, err := iss.Verify(result.AccessToken, token.ClassAccess)
	if err != nil {
		t.Fatalf("access token invalid: %v", err)
	}
	if access.Username != "carol" || access.Name != "Carol" {
		t.Fatalf("unexpected access claims: %+v", access)
	}

	refresh, err := iss.Verify(result.RefreshToken, token.ClassRefresh)
	if err != nil {
		t.Fatalf("refresh token invalid: %v", err)
	}
	if refresh.UserID != access.UserID {
		t.Fatalf("token pair disagrees on subject")
	}
}

func TestAuthService_Login_UniformFailureMessage(t *testing.T) {
	svc, _, _ := newAuthService(t)

	if _, err := svc.Register(context.Background(), ports.RegisterInput{Username: "dave", Password: "goodpass", Name: "Dave"}); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	_, wrongPass := svc.Login(context.Background(), ports.LoginInput{Username: "dave", Password: "badpass"})
	_, noUser := svc.Login(context.Background(), ports.LoginInput{Username: "ghost", Password: "whatever"})

	if !errors.Is(wrongPass, domain.ErrInvalidCredentials) {
		t.Fatalf("wrong password: expected ErrInvalidCredentials, got %v", wrongPass)
	}
	if !errors.Is(noUser, domain.ErrInvalidCredentials) {
		t.Fatalf("unknown username: expected ErrInvalidCredentials, got %v", noUser)
	}
	if wrongPass.Error() != noUser.Error() {
		t.Fatalf("failure messages differ: %q vs %q", wrongPass, noUser)
	}
}

func TestAuthService_RefreshAccessToken(t *testing.T) {
	svc, _, iss := newAuthService(t)

	if _, err := svc.Register(context.Background(), ports.RegisterInput{Username: "erin", Password: "pw", Name: "Erin"}); err != nil {
		t.Fatalf("register failed: %v", err)
	}
	login, err := svc.Login(context.Background(), ports.LoginInput{Username: "erin", Password: "pw"})
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}

	result, err := svc.RefreshAccessToken(context.Background(), login.RefreshToken)
	if err != nil {
		t.Fatalf("refresh failed: %v", err)
	}
	if result.AccessToken == "" {
		t.Fatalf("expected a new access token")
	}
	if result.RefreshToken != "" {
		t.Fatalf("refresh must not mint a new refresh token")
	}
	if result.Username != "erin" || result.Name != "Erin" {
		t.Fatalf("unexpected result: %+v", result)
	}
	if _, err := iss.Verify(result.AccessToken, token.ClassAccess); err != nil {
		t.Fatalf("minted access token invalid: %v", err)
	}

	// No rotation: the original refresh token keeps working.
	if _, err := svc.RefreshAccessToken(context.Background(), login.RefreshToken); err != nil {
		t.Fatalf("original refresh token rejected after use: %v", err)
	}
}

func TestAuthService_Refresh_RejectsAccessToken(t *testing.T) {
	svc, _, _ := newAuthService(t)

	if _, err := svc.Register(context.Background(), ports.RegisterInput{Username: "frank", Password: "pw", Name: "Frank"}); err != nil {
		t.Fatalf("register failed: %v", err)
	}
	login, err := svc.Login(context.Background(), ports.LoginInput{Username: "frank", Password: "pw"})
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}

	if _, err := svc.RefreshAccessToken(context.Background(), login.AccessToken); !errors.Is(err, domain.ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken for access-class token, got %v", err)
	}
}

func TestAuthService_Refresh_MalformedToken(t *testing.T) {
	svc, _, _ := newAuthService(t)

	if _, err := svc.RefreshAccessToken(context.Background(), "not-a-token"); !errors.Is(err, domain.ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestAuthService_Refresh_DeletedUser(t *testing.T) {
	svc, repo, _ := newAuthService(t)

	if _, err := svc.Register(context.Background(), ports.RegisterInput{Username: "gone", Password: "pw", Name: "Gone"}); err != nil {
		t.Fatalf("register failed: %v", err)
	}
	login, err := svc.Login(context.Background(), ports.LoginInput{Username: "gone", Password: "pw"})
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}

	stored, _ := repo.FindByUsername(context.Background(), "gone")
	if err := repo.Delete(context.Background(), stored.ID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}

	if _, err := svc.RefreshAccessToken(context.Background(), login.RefreshToken); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestAuthService_SharedSecret_CrossClassAndNoRotation(t *testing.T) {
	// With one secret for both classes the signature cannot tell an access
	// token from a refresh token; only the embedded class tag can.
	repo := newStubUserRepo()
	iss, err := token.NewIssuer(
		token.ClassConfig{Secret: "shared", TTL: time.Hour},
		token.ClassConfig{Secret: "shared", TTL: time.Hour},
	)
	if err != nil {
		t.Fatalf("NewIssuer: %v", err)
	}
	svc := NewAuthService(repo, password.NewHasher(), iss, zerolog.Nop())
	ctx := context.Background()

	if _, err := svc.Register(ctx, ports.RegisterInput{Username: "heidi", Password: "pw", Name: "Heidi"}); err != nil {
		t.Fatalf("register: %v", err)
	}
	login, err := svc.Login(ctx, ports.LoginInput{Username: "heidi", Password: "pw"})
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	if _, err := svc.RefreshAccessToken(ctx, login.AccessToken); !errors.Is(err, domain.ErrInvalidToken) {
		t.Fatalf("access token accepted as refresh under shared secret: %v", err)
	}

	first, err := svc.RefreshAccessToken(ctx, login.RefreshToken)
	if err != nil {
		t.Fatalf("refresh: %v", err)
	}
	if first.RefreshToken != "" {
		t.Fatalf("refresh must not rotate the refresh token")
	}
	if _, err := svc.RefreshAccessToken(ctx, login.RefreshToken); err != nil {
		t.Fatalf("original refresh token rejected after use: %v", err)
	}
}

func TestAuthService_EndToEnd(t *testing.T) {
	svc, _, _ := newAuthService(t)
	ctx := context.Background()

	registered, err := svc.Register(ctx, ports.RegisterInput{Username: "alice", Password: "pw", Name: "Alice"})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if registered.Username != "alice" || registered.Name != "Alice" {
		t.Fatalf("unexpected register result: %+v", registered)
	}

	login, err := svc.Login(ctx, ports.LoginInput{Username: "alice", Password: "pw"})
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if login.AccessToken == "" || login.RefreshToken == "" {
		t.Fatalf("login missing tokens: %+v", login)
	}

	refreshed, err := svc.RefreshAccessToken(ctx, login.RefreshToken)
	if err != nil {
		t.Fatalf("refresh: %v", err)
	}
	if refreshed.AccessToken == "" || refreshed.Username != "alice" || refreshed.Name != "Alice" {
		t.Fatalf("unexpected refresh result: %+v", refreshed)
	}
}
