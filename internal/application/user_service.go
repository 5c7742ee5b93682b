package application

import (
	"context"
	"errors"
	"io"
	"path/filepath"
	"strings"
	"time"

	"cloud.google.com/go/storage"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/chinmayajanata/backend/internal/domain/entity"
	repo "github.com/chinmayajanata/backend/internal/domain/repository"
	"github.com/chinmayajanata/backend/pkg/helpers"
	"github.com/chinmayajanata/backend/pkg/mailer"
)

// UserService covers registration, authentication, profile maintenance and
// the user side of center affiliation. Sessions live in Redis as hashes
// keyed by username; tokens are a JWT pair whose session id must match the
// stored session.
type UserService struct {
	Repo      repo.UserRepository
	Centers   repo.CenterRepository
	Authority *Authority
	JWT       *helpers.JWTManager
	Redis     *redis.Client
	Logger    *logrus.Logger
	GCS       *storage.Client
	GCSBucket string
	Pub       *helpers.RabbitPublisher
	MailOn    bool
}

type TokenPair struct {
	AccessToken        string
	AccessTokenExpiry  time.Time
	RefreshToken       string
	RefreshTokenExpiry time.Time
}

func sessionKey(username string) string {
	return "user:session:" + username
}

func nowRFC3339() string {
	return time.Now().UTC().Format(time.RFC3339Nano)
}

// Register creates a user with registration defaults. A taken username
// surfaces as repository.ErrConflict; a welcome mail is queued when an email
// address was supplied.
func (s *UserService) Register(ctx context.Context, username, email, password string) (*entity.User, error) {
	hash, err := helpers.HashPassword(password)
	if err != nil {
		return nil, err
	}
	u := entity.NewUser(username)
	u.Email = email
	if err := s.Repo.Create(ctx, u, hash); err != nil {
		return nil, err
	}
	if s.Pub != nil && s.MailOn && email != "" {
		job := mailer.EmailJob{
			To:       email,
			Template: "welcome",
			Data:     map[string]any{"Username": username},
		}
		if err := s.Pub.PublishJSON(ctx, job); err != nil && s.Logger != nil {
			s.Logger.WithError(err).WithField("username", username).Warn("welcome mail enqueue failed")
		}
	}
	return u, nil
}

// Authenticate validates the password, marks the user active, and issues a
// token pair with a fresh session.
func (s *UserService) Authenticate(ctx context.Context, username, password string) (*entity.User, TokenPair, error) {
	hash, err := s.Repo.GetCredentials(ctx, username)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, TokenPair{}, ErrInvalidCredentials
		}
		return nil, TokenPair{}, err
	}
	if !helpers.CompareHashAndPassword(hash, password) {
		return nil, TokenPair{}, ErrInvalidCredentials
	}
	u, err := s.Repo.GetByUsername(ctx, username)
	if err != nil {
		return nil, TokenPair{}, err
	}
	if err := s.Repo.SetActive(ctx, username, true); err != nil {
		return nil, TokenPair{}, err
	}
	u.IsActive = true

	pair, err := s.issueTokens(ctx, u)
	if err != nil {
		return nil, TokenPair{}, err
	}
	return u, pair, nil
}

func (s *UserService) issueTokens(ctx context.Context, u *entity.User) (TokenPair, error) {
	sid := uuid.NewString()
	access, aexp, err := s.JWT.GenerateAccessToken(u.Username, sid)
	if err != nil {
		return TokenPair{}, err
	}
	refresh, rexp, err := s.JWT.GenerateRefreshToken(u.Username, sid)
	if err != nil {
		return TokenPair{}, err
	}

	if s.Redis != nil {
		key := sessionKey(u.Username)
		pipe := s.Redis.Pipeline()
		pipe.HSet(ctx, key, map[string]any{
			"username":   u.Username,
			"center":     u.Center,
			"level":      u.VerificationLevel,
			"sid":        sid,
			"created_at": nowRFC3339(),
		})
		pipe.Expire(ctx, key, 24*time.Hour)
		if _, rErr := pipe.Exec(ctx); rErr != nil && s.Logger != nil {
			s.Logger.WithError(rErr).WithField("key", key).Warn("redis pipeline failed")
		}
	}

	return TokenPair{AccessToken: access, AccessTokenExpiry: aexp, RefreshToken: refresh, RefreshTokenExpiry: rexp}, nil
}

// Refresh rotates the session id and token pair after verifying the refresh
// token still matches the stored session.
func (s *UserService) Refresh(ctx context.Context, refreshToken string) (TokenPair, string, error) {
	claims, err := s.JWT.ParseRefreshToken(refreshToken)
	if err != nil {
		return TokenPair{}, "", ErrInvalidCredentials
	}
	u, err := s.Repo.GetByUsername(ctx, claims.Username)
	if err != nil {
		return TokenPair{}, "", ErrInvalidCredentials
	}
	if s.Redis != nil {
		data, rErr := s.Redis.HGetAll(ctx, sessionKey(u.Username)).Result()
		if rErr != nil || len(data) == 0 || data["sid"] != claims.SessionID {
			return TokenPair{}, "", ErrInvalidCredentials
		}
	}
	pair, err := s.issueTokens(ctx, u)
	if err != nil {
		return TokenPair{}, "", err
	}
	return pair, u.Username, nil
}

// Deauthenticate drops the session and marks the user inactive.
func (s *UserService) Deauthenticate(ctx context.Context, username string) error {
	if s.Redis != nil {
		if err := s.Redis.Del(ctx, sessionKey(username)).Err(); err != nil && s.Logger != nil {
			s.Logger.WithError(err).WithField("username", username).Warn("session delete failed")
		}
	}
	err := s.Repo.SetActive(ctx, username, false)
	if errors.Is(err, repo.ErrNotFound) {
		return ErrUserNotFound
	}
	return err
}

// NotifyVerified queues a verification notice to the user's email address.
// Best effort: a missing address or a publish failure only logs.
func (s *UserService) NotifyVerified(ctx context.Context, username string, level int) {
	if s.Pub == nil || !s.MailOn {
		return
	}
	u, err := s.Repo.GetByUsername(ctx, username)
	if err != nil || u.Email == "" {
		return
	}
	job := mailer.EmailJob{
		To:       u.Email,
		Template: "verification_notice",
		Data:     map[string]any{"Username": username, "Level": level},
	}
	if err := s.Pub.PublishJSON(ctx, job); err != nil && s.Logger != nil {
		s.Logger.WithError(err).WithField("username", username).Warn("verification notice enqueue failed")
	}
}

// Exists reports whether a username is registered.
func (s *UserService) Exists(ctx context.Context, username string) (bool, error) {
	return s.Repo.Exists(ctx, username)
}

// Profile fetches a user by username.
func (s *UserService) Profile(ctx context.Context, username string) (*entity.User, error) {
	u, err := s.Repo.GetByUsername(ctx, username)
	if errors.Is(err, repo.ErrNotFound) {
		return nil, ErrUserNotFound
	}
	return u, err
}

// AwardPoints adds a non-negative amount to the user's point total.
func (s *UserService) AwardPoints(ctx context.Context, username string, amount int64) error {
	if amount < 0 {
		return ErrInvalidPoints
	}
	err := s.Repo.AddPoints(ctx, username, amount)
	if errors.Is(err, repo.ErrNotFound) {
		return ErrUserNotFound
	}
	return err
}

// JoinCenter affiliates the user with a center and bumps the center's member
// count. Leaving a previous center decrements its count.
func (s *UserService) JoinCenter(ctx context.Context, username string, centerID int64) error {
	exists, err := s.Centers.Exists(ctx, centerID)
	if err != nil {
		return err
	}
	if !exists {
		return ErrCenterNotFound
	}
	u, err := s.Repo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return ErrUserNotFound
		}
		return err
	}
	if u.Center == centerID {
		return nil
	}
	if err := s.Repo.SetCenter(ctx, username, centerID); err != nil {
		return err
	}
	if u.Center != 0 {
		if err := s.Centers.AddMembers(ctx, u.Center, -1); err != nil && !errors.Is(err, repo.ErrNotFound) && s.Logger != nil {
			s.Logger.WithError(err).WithField("center_id", u.Center).Warn("member count decrement failed")
		}
	}
	return s.Centers.AddMembers(ctx, centerID, 1)
}

// UpdateRegistration applies caller-supplied profile changes. Identity and
// privileged fields (username, points, verification) are not touched here.
func (s *UserService) UpdateRegistration(ctx context.Context, username string, active *bool) (*entity.User, error) {
	u, err := s.Repo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	if active != nil && *active != u.IsActive {
		if err := s.Repo.SetActive(ctx, username, *active); err != nil {
			return nil, err
		}
		u.IsActive = *active
	}
	return u, nil
}

// Remove deletes a user. Only the admin principal may do this; the session
// is dropped alongside the record.
func (s *UserService) Remove(ctx context.Context, caller CallerContext, username string) error {
	if err := s.Authority.Authorize(caller); err != nil {
		return err
	}
	if err := s.Repo.Delete(ctx, username); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return ErrUserNotFound
		}
		return err
	}
	if s.Redis != nil {
		_ = s.Redis.Del(ctx, sessionKey(username)).Err()
	}
	if s.Logger != nil {
		s.Logger.WithField("username", username).Info("user removed")
	}
	return nil
}

// EventIDs returns the ids of events the user attends.
func (s *UserService) EventIDs(ctx context.Context, username string) ([]int64, error) {
	u, err := s.Repo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return u.Events, nil
}

// UploadAvatar stores a profile image in GCS and records its URL.
func (s *UserService) UploadAvatar(ctx context.Context, username string, r io.Reader, filename, contentType string) (string, error) {
	if s.GCS == nil || s.GCSBucket == "" {
		return "", errors.New("object storage not configured")
	}
	u, err := s.Repo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return "", ErrUserNotFound
		}
		return "", err
	}
	ext := strings.ToLower(filepath.Ext(filename))
	objectPath := filepath.ToSlash(filepath.Join("avatars", username, uuid.NewString()+ext))
	url, err := helpers.UploadObject(ctx, s.GCS, s.GCSBucket, objectPath, contentType, r)
	if err != nil {
		return "", err
	}
	u.AvatarURL = url
	if err := s.Repo.Update(ctx, u); err != nil {
		return "", err
	}
	return url, nil
}
