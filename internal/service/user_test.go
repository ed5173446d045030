// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"

	"inkpress/internal/models"
	"inkpress/internal/store"
)

// fakeUserStore keeps users in memory with plaintext passwords; the real
// store hashes with bcrypt, which is not what these tests exercise.
type fakeUserStore struct {
	users     []*models.User
	passwords map[uuid.UUID]string
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{passwords: map[uuid.UUID]string{}}
}

func (f *fakeUserStore) EmailExists(_ context.Context, email string) (bool, error) {
	for _, u := range f.users {
		if strings.EqualFold(u.Email, email) {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeUserStore) FindByEmail(_ context.Context, email string) (*models.User, error) {
	for _, u := range f.users {
		if strings.EqualFold(u.Email, email) {
			out := *u
			return &out, nil
		}
	}
	return nil, store.ErrNotFound
}

func (f *fakeUserStore) FindByID(_ context.Context, id uuid.UUID) (*models.User, error) {
	for _, u := range f.users {
		if u.ID == id {
			out := *u
			return &out, nil
		}
	}
	return nil, store.ErrNotFound
}

func (f *fakeUserStore) Create(_ context.Context, nu store.NewUser) (*models.User, error) {
	u := &models.User{
		ID:        uuid.New(),
		Email:     nu.Email,
		Username:  nu.Username,
		FirstName: nu.FirstName,
		LastName:  nu.LastName,
		Bio:       nu.Bio,
		Avatar:    nu.Avatar,
		IsActive:  true,
	}
	f.users = append(f.users, u)
	f.passwords[u.ID] = nu.Password
	out := *u
	return &out, nil
}

func (f *fakeUserStore) UpdateProfile(_ context.Context, id uuid.UUID, patch store.UserPatch) (*models.User, error) {
	for _, u := range f.users {
		if u.ID != id {
			continue
		}
		if patch.Username != nil {
			u.Username = *patch.Username
		}
		if patch.FirstName != nil {
			u.FirstName = patch.FirstName
		}
		if patch.LastName != nil {
			u.LastName = patch.LastName
		}
		if patch.Bio != nil {
			u.Bio = patch.Bio
		}
		if patch.Avatar != nil {
			u.Avatar = patch.Avatar
		}
		out := *u
		return &out, nil
	}
	return nil, store.ErrNotFound
}

func (f *fakeUserStore) CheckPassword(user *models.User, password string) bool {
	return f.passwords[user.ID] == password
}

func TestUserRegister(t *testing.T) {
	svc := NewUserService(newFakeUserStore())

	u, err := svc.Register(context.Background(), RegisterInput{
		Email:    "ana@example.com",
		Password: "correct horse",
		Username: "ana",
	})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if u.ID == uuid.Nil {
		t.Error("registered user has no id")
	}
	if !u.IsActive {
		t.Error("new account is not active")
	}
}

func TestUserRegister_DuplicateEmail(t *testing.T) {
	fake := newFakeUserStore()
	svc := NewUserService(fake)

	in := RegisterInput{Email: "ana@example.com", Password: "pw", Username: "ana"}
	if _, err := svc.Register(context.Background(), in); err != nil {
		t.Fatalf("first Register: %v", err)
	}

	_, err := svc.Register(context.Background(), in)
	if !IsConflict(err) {
		t.Fatalf("err = %v, want ConflictError", err)
	}
}

func TestUserAuthenticate(t *testing.T) {
	fake := newFakeUserStore()
	svc := NewUserService(fake)

	registered, err := svc.Register(context.Background(), RegisterInput{
		Email:    "ana@example.com",
		Password: "correct horse",
		Username: "ana",
	})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}

	u, err := svc.Authenticate(context.Background(), "ana@example.com", "correct horse")
	if err != nil {
		t.Fatalf("Authenticate: %v", err)
	}
	if u.ID != registered.ID {
		t.Errorf("authenticated id = %v, want %v", u.ID, registered.ID)
	}
}

func TestUserAuthenticate_FailuresAreIndistinct(t *testing.T) {
	fake := newFakeUserStore()
	svc := NewUserService(fake)

	if _, err := svc.Register(context.Background(), RegisterInput{
		Email:    "ana@example.com",
		Password: "correct horse",
		Username: "ana",
	}); err != nil {
		t.Fatalf("Register: %v", err)
	}

	// Deactivate a second account to cover the inactive branch.
	inactive, err := svc.Register(context.Background(), RegisterInput{
		Email:    "bob@example.com",
		Password: "pw",
		Username: "bob",
	})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	for _, u := range fake.users {
		if u.ID == inactive.ID {
			u.IsActive = false
		}
	}

	tests := []struct {
		name, email, password string
	}{
		{"unknown email", "nobody@example.com", "correct horse"},
		{"wrong password", "ana@example.com", "wrong"},
		{"inactive account", "bob@example.com", "pw"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Authenticate(context.Background(), tt.email, tt.password)
			if !errors.Is(err, ErrInvalidCredentials) {
				t.Errorf("err = %v, want ErrInvalidCredentials", err)
			}
		})
	}
}

func TestUserProfile_NotFound(t *testing.T) {
	svc := NewUserService(newFakeUserStore())

	_, err := svc.Profile(context.Background(), uuid.New())
	if !IsNotFound(err) {
		t.Fatalf("err = %v, want NotFoundError", err)
	}
}

func TestUserUpdateProfile(t *testing.T) {
	fake := newFakeUserStore()
	svc := NewUserService(fake)

	u, err := svc.Register(context.Background(), RegisterInput{
		Email:    "ana@example.com",
		Password: "pw",
		Username: "ana",
	})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}

	bio := "writes about Go"
	updated, err := svc.UpdateProfile(context.Background(), u.ID, UpdateProfileInput{Bio: &bio})
	if err != nil {
		t.Fatalf("UpdateProfile: %v", err)
	}
	if updated.Bio == nil || *updated.Bio != bio {
		t.Errorf("bio = %v, want %q", updated.Bio, bio)
	}
	if updated.Username != "ana" {
		t.Errorf("username = %q, want untouched %q", updated.Username, "ana")
	}
}
