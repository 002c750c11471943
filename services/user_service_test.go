package services

import (
	"context"
	"testing"

	apperr "invoiceapi/errors"
	"invoiceapi/models"

	"golang.org/x/crypto/bcrypt"
)

func TestRegister(t *testing.T) {
	ctx := context.Background()

	t.Run("stores only the hash", func(t *testing.T) {
		db := newTestDB(t)
		svc := newTestUserService(t, db)

		user, err := svc.Register(ctx, registerInput("alice", " Alice@Example.com ", "0123456789", "s3cret"))
		if err != nil {
			t.Fatalf("Register failed: %v", err)
		}
		if user.ID == 0 {
			t.Fatal("expected id to be assigned")
		}
		if user.Email != "alice@example.com" {
			t.Errorf("expected normalized email, got %q", user.Email)
		}
		if user.PasswordHash == "s3cret" || user.PasswordHash == "" {
			t.Fatalf("unexpected password hash %q", user.PasswordHash)
		}
		if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("s3cret")); err != nil {
			t.Errorf("hash does not verify: %v", err)
		}
	})

	t.Run("duplicate email is rejected", func(t *testing.T) {
		db := newTestDB(t)
		svc := newTestUserService(t, db)

		first, err := svc.Register(ctx, registerInput("alice", "a@x.io", "", "pw"))
		if err != nil {
			t.Fatalf("Register failed: %v", err)
		}

		_, err = svc.Register(ctx, registerInput("bob", "a@x.io", "", "other"))
		if !apperr.HasCode(err, apperr.ErrCodeUserExists) {
			t.Fatalf("expected USER_EXISTS, got %v", err)
		}
		if msg := apperr.GetAppError(err).Message; msg != "Email already registered" {
			t.Errorf("unexpected message %q", msg)
		}

		var stored models.User
		if err := db.First(&stored, first.ID).Error; err != nil {
			t.Fatalf("first user missing: %v", err)
		}
		if stored.Name != "alice" || stored.PasswordHash != first.PasswordHash {
			t.Errorf("first user was modified: %+v", stored)
		}
		var count int64
		db.Model(&models.User{}).Count(&count)
		if count != 1 {
			t.Errorf("expected 1 user, got %d", count)
		}
	})

	t.Run("duplicate name is rejected", func(t *testing.T) {
		db := newTestDB(t)
		svc := newTestUserService(t, db)

		if _, err := svc.Register(ctx, registerInput("alice", "a@x.io", "", "pw")); err != nil {
			t.Fatalf("Register failed: %v", err)
		}
		_, err := svc.Register(ctx, registerInput("alice", "b@x.io", "", "pw"))
		if !apperr.HasCode(err, apperr.ErrCodeUserExists) {
			t.Fatalf("expected USER_EXISTS, got %v", err)
		}
		if msg := apperr.GetAppError(err).Message; msg != "Username already registered" {
			t.Errorf("unexpected message %q", msg)
		}
	})

	t.Run("empty password persists nothing", func(t *testing.T) {
		db := newTestDB(t)
		svc := newTestUserService(t, db)

		_, err := svc.Register(ctx, registerInput("alice", "a@x.io", "1", ""))
		if !apperr.HasCode(err, apperr.ErrCodeRequiredField) {
			t.Fatalf("expected REQUIRED_FIELD, got %v", err)
		}
		var count int64
		db.Model(&models.User{}).Count(&count)
		if count != 0 {
			t.Errorf("expected no users, got %d", count)
		}
	})
}

func TestLogin(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	svc := newTestUserService(t, db)

	registered, err := svc.Register(ctx, registerInput("alice", "a@x.io", "", "correct"))
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	t.Run("correct password issues a token", func(t *testing.T) {
		user, token, err := svc.Login(ctx, loginInput("A@x.io", "correct"))
		if err != nil {
			t.Fatalf("Login failed: %v", err)
		}
		if user.ID != registered.ID {
			t.Errorf("expected user %d, got %d", registered.ID, user.ID)
		}
		authed, err := svc.Authenticate(ctx, token)
		if err != nil {
			t.Fatalf("Authenticate failed: %v", err)
		}
		if authed.ID != registered.ID {
			t.Errorf("token resolved to user %d", authed.ID)
		}
	})

	t.Run("wrong password is unauthorized", func(t *testing.T) {
		_, _, err := svc.Login(ctx, loginInput("a@x.io", "wrong"))
		if !apperr.HasCode(err, apperr.ErrCodeUnauthorized) {
			t.Fatalf("expected UNAUTHORIZED, got %v", err)
		}
	})

	t.Run("empty password is unauthorized", func(t *testing.T) {
		_, _, err := svc.Login(ctx, loginInput("a@x.io", ""))
		if !apperr.HasCode(err, apperr.ErrCodeUnauthorized) {
			t.Fatalf("expected UNAUTHORIZED, got %v", err)
		}
	})

	t.Run("unknown email is unauthorized", func(t *testing.T) {
		_, _, err := svc.Login(ctx, loginInput("nobody@x.io", "correct"))
		if !apperr.HasCode(err, apperr.ErrCodeUnauthorized) {
			t.Fatalf("expected UNAUTHORIZED, got %v", err)
		}
	})

	t.Run("token for deleted user is rejected", func(t *testing.T) {
		token, err := svc.tokens.GenerateToken(UserInfo{UserId: 4242})
		if err != nil {
			t.Fatalf("GenerateToken failed: %v", err)
		}
		_, err = svc.Authenticate(ctx, token)
		if !apperr.HasCode(err, apperr.ErrCodeInvalidToken) {
			t.Fatalf("expected INVALID_TOKEN, got %v", err)
		}
	})
}
