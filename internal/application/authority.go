package application

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"

	repo "github.com/chinmayajanata/backend/internal/domain/repository"
)

// CallerContext identifies the principal behind a request. It is resolved
// once at the HTTP boundary from the authenticated session and passed
// explicitly into every gated operation.
type CallerContext struct {
	Principal string
}

// Authority gates privilege-escalating mutations behind the single
// distinguished admin principal. There are no roles beyond that one name.
type Authority struct {
	AdminName string
	Users     repo.UserRepository
	Centers   repo.CenterRepository
	Logger    *logrus.Logger
}

func NewAuthority(adminName string, users repo.UserRepository, centers repo.CenterRepository, logger *logrus.Logger) *Authority {
	return &Authority{AdminName: adminName, Users: users, Centers: centers, Logger: logger}
}

// IsAdmin reports whether the caller is the admin principal.
func (a *Authority) IsAdmin(caller CallerContext) bool {
	return caller.Principal != "" && caller.Principal == a.AdminName
}

// Authorize returns ErrNotAuthorized for anyone but the admin principal.
func (a *Authority) Authorize(caller CallerContext) error {
	if !a.IsAdmin(caller) {
		return ErrNotAuthorized
	}
	return nil
}

// VerifyUser raises the target user's verification level and marks the user
// verified. On authorization failure the target is left unmodified.
func (a *Authority) VerifyUser(ctx context.Context, caller CallerContext, username string, level int) error {
	if err := a.Authorize(caller); err != nil {
		return err
	}
	if err := a.Users.SetVerification(ctx, username, level); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return ErrUserNotFound
		}
		return err
	}
	if a.Logger != nil {
		a.Logger.WithFields(logrus.Fields{"username": username, "level": level}).Info("user verified")
	}
	return nil
}

// VerifyCenter marks the center verified. Centers carry no variable level.
func (a *Authority) VerifyCenter(ctx context.Context, caller CallerContext, centerID int64) error {
	if err := a.Authorize(caller); err != nil {
		return err
	}
	if err := a.Centers.SetVerified(ctx, centerID); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return ErrCenterNotFound
		}
		return err
	}
	if a.Logger != nil {
		a.Logger.WithField("center_id", centerID).Info("center verified")
	}
	return nil
}
