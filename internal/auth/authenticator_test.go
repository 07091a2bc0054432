package auth

import (
	"context"
	"errors"
	"testing"

	"roompla/internal/model"
	"roompla/internal/repository"
	"roompla/internal/utils"
)

type userSourceStub struct {
	users map[string]*model.User
	err   error
}

func (s *userSourceStub) FindByID(ctx context.Context, id string) (*model.User, error) {
	if s.err != nil {
		return nil, s.err
	}
	if u, ok := s.users[id]; ok {
		return u, nil
	}
	return nil, repository.ErrUserNotFound
}

type directoryStub struct {
	bindErr  error
	attrErr  error
	name     string
	contact  string
	bindSeen []string
}

func (d *directoryStub) Bind(ctx context.Context, userID, password string) error {
	d.bindSeen = append(d.bindSeen, userID)
	return d.bindErr
}

func (d *directoryStub) FetchAttributes(ctx context.Context, userID string) (string, string, error) {
	if d.attrErr != nil {
		return "", "", d.attrErr
	}
	return d.name, d.contact, nil
}

func localUser(t *testing.T, id, name, contact, password string) *model.User {
	t.Helper()
	hash, err := utils.HashPassword(password, 4) // minimal cost, tests only
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	return &model.User{ID: id, DisplayName: name, ContactInfo: contact, PasswordHash: &hash}
}

func TestLoginLocal(t *testing.T) {
	ctx := context.Background()
	users := &userSourceStub{users: map[string]*model.User{
		"alice": localUser(t, "alice", "Alice Example", "alice@example.org", "s3cret"),
	}}
	a := NewAuthenticator(users, nil, testSecret, 0)

	t.Run("issues a token embedding the stored identity", func(t *testing.T) {
		token, err := a.Login(ctx, "alice", "s3cret")
		if err != nil {
			t.Fatalf("Login: %v", err)
		}
		claims, err := VerifyToken(testSecret, token)
		if err != nil {
			t.Fatalf("VerifyToken: %v", err)
		}
		if claims.Subject != "alice" || claims.Name != "Alice Example" || claims.ContactInfo != "alice@example.org" {
			t.Fatalf("unexpected claims: %+v", claims)
		}
	})

	t.Run("wrong password is a generic failure", func(t *testing.T) {
		if _, err := a.Login(ctx, "alice", "wrong"); !errors.Is(err, ErrUnauthorized) {
			t.Fatalf("expected ErrUnauthorized, got %v", err)
		}
	})

	t.Run("unknown user without a directory is a generic failure", func(t *testing.T) {
		if _, err := a.Login(ctx, "nobody", "s3cret"); !errors.Is(err, ErrUnauthorized) {
			t.Fatalf("expected ErrUnauthorized, got %v", err)
		}
	})
}

func TestLoginDirectory(t *testing.T) {
	ctx := context.Background()

	t.Run("unknown local user binds against the directory", func(t *testing.T) {
		dir := &directoryStub{name: "Dir Bob", contact: "bob@example.org"}
		a := NewAuthenticator(&userSourceStub{}, dir, testSecret, 0)

		token, err := a.Login(ctx, "bob", "dir-pass")
		if err != nil {
			t.Fatalf("Login: %v", err)
		}
		if len(dir.bindSeen) != 1 || dir.bindSeen[0] != "bob" {
			t.Fatalf("expected one bind for bob, got %v", dir.bindSeen)
		}
		claims, err := VerifyToken(testSecret, token)
		if err != nil {
			t.Fatalf("VerifyToken: %v", err)
		}
		if claims.Name != "Dir Bob" || claims.ContactInfo != "bob@example.org" {
			t.Fatalf("directory attributes not embedded: %+v", claims)
		}
	})

	t.Run("account without a hash delegates to the directory", func(t *testing.T) {
		users := &userSourceStub{users: map[string]*model.User{
			"carol": {ID: "carol", DisplayName: "Carol Local", ContactInfo: "carol@example.org"},
		}}
		dir := &directoryStub{name: "Carol Dir", contact: "cd@example.org"}
		a := NewAuthenticator(users, dir, testSecret, 0)

		token, err := a.Login(ctx, "carol", "pw")
		if err != nil {
			t.Fatalf("Login: %v", err)
		}
		claims, _ := VerifyToken(testSecret, token)
		if claims.Name != "Carol Dir" {
			t.Fatalf("expected directory attributes to win, got %+v", claims)
		}
	})

	t.Run("bind failure is a generic failure", func(t *testing.T) {
		dir := &directoryStub{bindErr: errors.New("invalid credentials")}
		a := NewAuthenticator(&userSourceStub{}, dir, testSecret, 0)
		if _, err := a.Login(ctx, "bob", "bad"); !errors.Is(err, ErrUnauthorized) {
			t.Fatalf("expected ErrUnauthorized, got %v", err)
		}
	})

	t.Run("missing attributes are a generic failure", func(t *testing.T) {
		dir := &directoryStub{attrErr: errors.New("no attributes")}
		a := NewAuthenticator(&userSourceStub{}, dir, testSecret, 0)
		if _, err := a.Login(ctx, "bob", "pw"); !errors.Is(err, ErrUnauthorized) {
			t.Fatalf("expected ErrUnauthorized, got %v", err)
		}
	})
}

func TestLoginStorageFailure(t *testing.T) {
	boom := errors.New("connection refused")
	a := NewAuthenticator(&userSourceStub{err: boom}, nil, testSecret, 0)
	_, err := a.Login(context.Background(), "alice", "pw")
	if !errors.Is(err, boom) {
		t.Fatalf("storage failures must surface, got %v", err)
	}
	if errors.Is(err, ErrUnauthorized) {
		t.Fatal("storage failure must not masquerade as bad credentials")
	}
}
