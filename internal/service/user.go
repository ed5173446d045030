// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package service

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"inkpress/internal/models"
	"inkpress/internal/store"
)

// UserStore is the data-store capability the user service needs.
type UserStore interface {
	EmailExists(ctx context.Context, email string) (bool, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	Create(ctx context.Context, nu store.NewUser) (*models.User, error)
	UpdateProfile(ctx context.Context, id uuid.UUID, patch store.UserPatch) (*models.User, error)
	CheckPassword(user *models.User, password string) bool
}

// UserService handles registration, authentication, and profiles. Token
// issuance lives in the auth handler; this service only answers "who is
// this" and "is the password right".
type UserService struct {
	store UserStore
}

// NewUserService creates a UserService on the given store.
func NewUserService(store UserStore) *UserService {
	return &UserService{store: store}
}

// RegisterInput carries the fields for a new account.
type RegisterInput struct {
	Email     string  `json:"email"`
	Password  string  `json:"password"`
	Username  string  `json:"username"`
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
	Bio       *string `json:"bio"`
	Avatar    *string `json:"avatar"`
}

// UpdateProfileInput carries a partial profile update.
type UpdateProfileInput struct {
	Username  *string `json:"username"`
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
	Bio       *string `json:"bio"`
	Avatar    *string `json:"avatar"`
}

// Register creates a new account. The email-uniqueness check runs before
// the insert; the unique index catches the remaining race.
func (s *UserService) Register(ctx context.Context, in RegisterInput) (*models.User, error) {
	exists, err := s.store.EmailExists(ctx, in.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, &ConflictError{Resource: "user", Field: "email", Value: in.Email}
	}

	u, err := s.store.Create(ctx, store.NewUser{
		Email:     in.Email,
		Password:  in.Password,
		Username:  in.Username,
		FirstName: in.FirstName,
		LastName:  in.LastName,
		Bio:       in.Bio,
		Avatar:    in.Avatar,
	})
	if errors.Is(err, store.ErrDuplicate) {
		return nil, &ConflictError{Resource: "user", Field: "email", Value: in.Email}
	}
	if err != nil {
		return nil, err
	}
	return u, nil
}

// Authenticate verifies credentials and returns the user. Unknown email,
// wrong password, and deactivated accounts all map to the same
// ErrInvalidCredentials so login failures leak nothing.
func (s *UserService) Authenticate(ctx context.Context, email, password string) (*models.User, error) {
	u, err := s.store.FindByEmail(ctx, email)
	if errors.Is(err, store.ErrNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}
	if !u.IsActive || !s.store.CheckPassword(u, password) {
		return nil, ErrInvalidCredentials
	}
	return u, nil
}

// Profile retrieves a user by id.
func (s *UserService) Profile(ctx context.Context, id uuid.UUID) (*models.User, error) {
	u, err := s.store.FindByID(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return nil, &NotFoundError{Resource: "user", ID: id.String()}
	}
	if err != nil {
		return nil, err
	}
	return u, nil
}

// UpdateProfile applies a partial profile update to the given user.
func (s *UserService) UpdateProfile(ctx context.Context, id uuid.UUID, in UpdateProfileInput) (*models.User, error) {
	u, err := s.store.UpdateProfile(ctx, id, store.UserPatch{
		Username:  in.Username,
		FirstName: in.FirstName,
		LastName:  in.LastName,
		Bio:       in.Bio,
		Avatar:    in.Avatar,
	})
	if errors.Is(err, store.ErrNotFound) {
		return nil, &NotFoundError{Resource: "user", ID: id.String()}
	}
	if err != nil {
		return nil, err
	}
	return u, nil
}
