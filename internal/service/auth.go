// Package service holds the page logic of SkillSync.
//
// Handlers parse HTTP and call a service; services validate input, talk to
// the session and the catalog, and answer with domain values or apperror
// errors. Nothing in this package knows about status codes or cookies.
package service

import (
	"context"
	"encoding/base64"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/sakif/skillsync/internal/apperror"
	"github.com/sakif/skillsync/internal/auth"
	"github.com/sakif/skillsync/internal/model"
)

// SessionStore is the slice of *session.Store the services need.
type SessionStore interface {
	User() *model.User
	Login(ctx context.Context, email, password string) (*model.User, error)
	Register(ctx context.Context, reg model.Registration) (*model.User, error)
	Logout(ctx context.Context) error
	Update(ctx context.Context, patch map[string]any) (*model.User, error)
}

// AccountService runs sign-in, sign-up and profile edits against the
// caller's session.
type AccountService struct {
	maxPhotoBytes int64
	logger        *slog.Logger
}

func NewAccountService(maxPhotoBytes int64, logger *slog.Logger) *AccountService {
	return &AccountService{maxPhotoBytes: maxPhotoBytes, logger: logger}
}

// AuthResult pairs the signed-in user with the toast to show.
type AuthResult struct {
	User   *model.User
	Notice model.Notice
}

func (s *AccountService) Login(ctx context.Context, store SessionStore, email, password string) (*AuthResult, error) {
	if err := ValidateLogin(email, password); err != nil {
		return nil, err
	}
	u, err := store.Login(ctx, email, password)
	if err != nil {
		return nil, fmt.Errorf("service/account: login: %w", err)
	}
	return &AuthResult{
		User:   u,
		Notice: model.Notice{Title: "Welcome back!", Description: "You've successfully signed in to SkillSync"},
	}, nil
}

func (s *AccountService) Register(ctx context.Context, store SessionStore, reg model.Registration) (*AuthResult, error) {
	if err := ValidateRegistration(reg); err != nil {
		return nil, err
	}
	u, err := store.Register(ctx, reg)
	if err != nil {
		return nil, fmt.Errorf("service/account: register: %w", err)
	}
	return &AuthResult{
		User:   u,
		Notice: model.Notice{Title: "Welcome to SkillSync!", Description: "Your account has been created successfully"},
	}, nil
}

func (s *AccountService) Logout(ctx context.Context, store SessionStore) error {
	if err := store.Logout(ctx); err != nil {
		return fmt.Errorf("service/account: logout: %w", err)
	}
	return nil
}

// AdminLogin signs in and keeps the session only if it is an administrator's.
// Anyone else is signed straight back out and refused.
func (s *AccountService) AdminLogin(ctx context.Context, store SessionStore, email, password string) (*AuthResult, error) {
	if err := ValidateLogin(email, password); err != nil {
		return nil, err
	}
	u, err := store.Login(ctx, email, password)
	if err != nil {
		return nil, fmt.Errorf("service/account: admin login: %w", err)
	}
	if !auth.IsAdmin(u) {
		if err := store.Logout(ctx); err != nil {
			return nil, fmt.Errorf("service/account: clearing non-admin session: %w", err)
		}
		s.logger.Warn("admin login refused", slog.String("component", "moderation"))
		return nil, apperror.Forbidden("Access denied. Admin credentials required.")
	}
	return &AuthResult{
		User:   u,
		Notice: model.Notice{Title: "Welcome, administrator"},
	}, nil
}

// UpdateProfile applies the editable fields of patch to the signed-in user.
func (s *AccountService) UpdateProfile(ctx context.Context, store SessionStore, patch map[string]any) (*AuthResult, error) {
	if err := ValidateProfilePatch(patch); err != nil {
		return nil, err
	}
	u, err := store.Update(ctx, patch)
	if err != nil {
		return nil, fmt.Errorf("service/account: updating profile: %w", err)
	}
	return &AuthResult{
		User:   u,
		Notice: model.Notice{Title: "Profile Updated", Description: "Your profile has been saved successfully."},
	}, nil
}

// UpdatePhoto stores the uploaded file on the profile as a data URL. Any
// content type is accepted; only the size is limited.
func (s *AccountService) UpdatePhoto(ctx context.Context, store SessionStore, file io.Reader) (*AuthResult, error) {
	if store.User() == nil {
		return nil, apperror.Unauthorized("Please sign in to continue")
	}

	data, err := io.ReadAll(io.LimitReader(file, s.maxPhotoBytes+1))
	if err != nil {
		return nil, fmt.Errorf("service/account: reading photo: %w", err)
	}
	if len(data) == 0 {
		return nil, apperror.ValidationFailed("photo", "Photo is empty")
	}
	if int64(len(data)) > s.maxPhotoBytes {
		return nil, apperror.ValidationFailed("photo", fmt.Sprintf("Photo must be at most %d bytes", s.maxPhotoBytes))
	}

	dataURL := "data:" + http.DetectContentType(data) + ";base64," + base64.StdEncoding.EncodeToString(data)
	u, err := store.Update(ctx, map[string]any{"photo": dataURL})
	if err != nil {
		return nil, fmt.Errorf("service/account: updating photo: %w", err)
	}
	return &AuthResult{
		User:   u,
		Notice: model.Notice{Title: "Photo Updated", Description: "Your profile photo has been updated."},
	}, nil
}
