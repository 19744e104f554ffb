package service

import (
	"context"
	"errors"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"github.com/sociopedia/server/internal/core/domain"
	"github.com/sociopedia/server/internal/core/ports"
	"github.com/sociopedia/server/internal/infrastructure/token"
)

func newTestAuthService(repo *stubUserRepo) (*AuthService, *token.Manager) {
	tokens := token.NewManager("secret", 0)
	return NewAuthService(repo, tokens, bcrypt.MinCost, discardLogger), tokens
}

func registerInput(email, password string) ports.RegisterInput {
	return ports.RegisterInput{
		FirstName:  "Ada",
		LastName:   "Lovelace",
		Email:      email,
		Password:   password,
		Location:   "London",
		Occupation: "Analyst",
	}
}

func TestAuthService_Register_Success(t *testing.T) {
	repo := newStubUserRepo()
	svc, _ := newTestAuthService(repo)

	user, err := svc.Register(context.Background(), registerInput("a@x.com", "pw1"))
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if user == nil || user.ID == "" {
		t.Fatalf("expected persisted user with id, got %+v", user)
	}
	if user.PasswordHash == "pw1" {
		t.Fatalf("expected password to be hashed")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("pw1")); err != nil {
		t.Fatalf("stored hash does not match password: %v", err)
	}
	if user.FirstName != "Ada" || user.Occupation != "Analyst" || user.Location != "London" {
		t.Fatalf("profile fields not carried through: %+v", user)
	}
	if user.Friends == nil {
		t.Fatalf("expected empty friend list, got nil")
	}
}

func TestAuthService_Register_DistinctSalts(t *testing.T) {
	repo := newStubUserRepo()
	svc, _ := newTestAuthService(repo)

	a, err := svc.Register(context.Background(), registerInput("a@x.com", "same"))
	if err != nil {
		t.Fatalf("register a: %v", err)
	}
	b, err := svc.Register(context.Background(), registerInput("b@x.com", "same"))
	if err != nil {
		t.Fatalf("register b: %v", err)
	}
	if a.PasswordHash == b.PasswordHash {
		t.Fatalf("expected different hashes for the same password")
	}
}

func TestAuthService_Register_EngagementSeedsInRange(t *testing.T) {
	repo := newStubUserRepo()
	svc, _ := newTestAuthService(repo)

	for i := 0; i < 20; i++ {
		u, err := svc.Register(context.Background(), registerInput(string(rune('a'+i))+"@x.com", "pw"))
		if err != nil {
			t.Fatalf("register: %v", err)
		}
		if u.ViewedProfile < 0 || u.ViewedProfile >= domain.MaxEngagementSeed {
			t.Fatalf("viewedProfile out of range: %d", u.ViewedProfile)
		}
		if u.Impressions < 0 || u.Impressions >= domain.MaxEngagementSeed {
			t.Fatalf("impressions out of range: %d", u.Impressions)
		}
	}
}

func TestAuthService_Register_Validation(t *testing.T) {
	repo := newStubUserRepo()
	svc, _ := newTestAuthService(repo)

	var ve *domain.ValidationError
	if _, err := svc.Register(context.Background(), registerInput("", "pass")); !errors.As(err, &ve) || ve.Field != "email" {
		t.Fatalf("expected email ValidationError, got %v", err)
	}
	if _, err := svc.Register(context.Background(), registerInput("bob@x.com", "")); !errors.As(err, &ve) || ve.Field != "password" {
		t.Fatalf("expected password ValidationError, got %v", err)
	}
	if len(repo.users) != 0 {
		t.Fatalf("nothing should be stored on validation failure")
	}
}

func TestAuthService_Register_Duplicate(t *testing.T) {
	repo := newStubUserRepo()
	svc, _ := newTestAuthService(repo)

	_, _ = svc.Register(context.Background(), registerInput("bob@x.com", "pass"))
	_, err := svc.Register(context.Background(), registerInput("bob@x.com", "pass2"))

	var se *domain.StoreError
	if !errors.As(err, &se) || !errors.Is(err, domain.ErrUserExists) {
		t.Fatalf("expected StoreError wrapping ErrUserExists, got %v", err)
	}
}

func TestAuthService_Login_Success(t *testing.T) {
	repo := newStubUserRepo()
	svc, tokens := newTestAuthService(repo)

	registered, err := svc.Register(context.Background(), registerInput("carol@x.com", "s3cret"))
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}

	tkn, user, err := svc.Login(context.Background(), "carol@x.com", "s3cret")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if tkn == "" {
		t.Fatalf("expected token, got empty")
	}
	if user == nil || user.ID != registered.ID {
		t.Fatalf("unexpected user: %+v", user)
	}
	if user.PasswordHash != "" {
		t.Fatalf("password hash must be stripped from login result")
	}

	sub, err := tokens.Verify(tkn)
	if err != nil {
		t.Fatalf("token invalid: %v", err)
	}
	if sub != registered.ID {
		t.Fatalf("expected subject %s, got %s", registered.ID, sub)
	}

	// the stored record keeps its hash
	if repo.users[registered.ID].PasswordHash == "" {
		t.Fatalf("stored hash must not be cleared")
	}
}

func TestAuthService_Login_InvalidPassword(t *testing.T) {
	repo := newStubUserRepo()
	svc, _ := newTestAuthService(repo)

	_, _ = svc.Register(context.Background(), registerInput("dave@x.com", "goodpass"))
	tkn, _, err := svc.Login(context.Background(), "dave@x.com", "badpass")

	var ae *domain.AuthenticationError
	if !errors.As(err, &ae) || !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected AuthenticationError(invalid credentials), got %v", err)
	}
	if tkn != "" {
		t.Fatalf("no token may be issued on failure")
	}
}

func TestAuthService_Login_UserNotFound(t *testing.T) {
	repo := newStubUserRepo()
	svc, _ := newTestAuthService(repo)

	_, _, err := svc.Login(context.Background(), "ghost@x.com", "pass")

	var ae *domain.AuthenticationError
	if !errors.As(err, &ae) || !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected AuthenticationError(user not found), got %v", err)
	}
}

func TestAuthService_Login_StoreFailure(t *testing.T) {
	storeErr := domain.NewStoreError("find user", errors.New("connection reset"))
	svc := NewAuthService(failingUserRepo{stubUserRepo: newStubUserRepo(), err: storeErr}, token.NewManager("secret", 0), bcrypt.MinCost, discardLogger)

	_, _, err := svc.Login(context.Background(), "a@x.com", "pw")
	if !errors.Is(err, storeErr) {
		t.Fatalf("expected store error to propagate, got %v", err)
	}
	var ae *domain.AuthenticationError
	if errors.As(err, &ae) {
		t.Fatalf("store failures must not be reported as authentication errors")
	}
}

type failingUserRepo struct {
	*stubUserRepo
	err error
}

func (r failingUserRepo) FindByEmail(context.Context, string) (*domain.User, error) {
	return nil, r.err
}
