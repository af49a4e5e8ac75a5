package user

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"tapto-backend/internal/auth"
	"tapto-backend/internal/domain"
	userrepo "tapto-backend/internal/repository/user"
)

// ErrInvalidCredentials is returned when email/password do not match.
var ErrInvalidCredentials = errors.New("invalid credentials")

// RequestMeta carries per-request attributes recorded in the audit log.
type RequestMeta struct {
	IPAddress string
	UserAgent string
}

// Service handles account registration, login and profile flows.
type Service struct {
	repo        userrepo.Repository
	tokens      *auth.Manager
	activities  activityRepo
	logger      *log.Logger
	passwordMin int
}

type activityRepo interface {
	Append(ctx context.Context, a domain.UserActivity) (*domain.UserActivity, error)
}

func New(repo userrepo.Repository, tokens *auth.Manager, activities activityRepo, logger *log.Logger) *Service {
	return &Service{
		repo:        repo,
		tokens:      tokens,
		activities:  activities,
		logger:      logger,
		passwordMin: 8,
	}
}

// RegisterInput captures fields expected by the register endpoint.
type RegisterInput struct {
	Email       string `json:"email"`
	Password    string `json:"password"`
	FullName    string `json:"fullName"`
	PhoneNumber string `json:"phoneNumber,omitempty"`
}

// Register creates an account and returns it with a signed token. A taken
// email surfaces as domain.ErrAlreadyExists.
func (s *Service) Register(ctx context.Context, in RegisterInput, meta RequestMeta) (*domain.User, string, error) {
	email := strings.TrimSpace(strings.ToLower(in.Email))
	if email == "" {
		return nil, "", domain.Invalid("email required")
	}
	if strings.TrimSpace(in.FullName) == "" {
		return nil, "", domain.Invalid("full name required")
	}
	password := strings.TrimSpace(in.Password)
	if err := validatePassword(password, s.passwordMin); err != nil {
		return nil, "", err
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", err
	}

	created, err := s.repo.Create(ctx, domain.User{
		Email:        email,
		PasswordHash: string(hashed),
		FullName:     strings.TrimSpace(in.FullName),
		PhoneNumber:  strings.TrimSpace(in.PhoneNumber),
		Role:         domain.RoleUser,
	})
	if err != nil {
		return nil, "", err
	}

	token, err := s.tokens.Issue(*created)
	if err != nil {
		return nil, "", err
	}
	s.record(ctx, created.ID, domain.ActivityRegister, "account created", meta)
	return created, token, nil
}

// Login validates credentials and returns the account with a signed token.
func (s *Service) Login(ctx context.Context, email, password string, meta RequestMeta) (*domain.User, string, error) {
	u, err := s.repo.GetByEmail(ctx, strings.TrimSpace(strings.ToLower(email)))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(strings.TrimSpace(password))); err != nil {
		return nil, "", ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(*u)
	if err != nil {
		return nil, "", err
	}
	s.record(ctx, u.ID, domain.ActivityLogin, "logged in", meta)
	return u, token, nil
}

// Profile returns the account by id.
func (s *Service) Profile(ctx context.Context, userID string) (*domain.User, error) {
	return s.repo.GetByID(ctx, userID)
}

// UpdateProfileInput carries the editable profile fields. Nil pointers leave
// the current value untouched.
type UpdateProfileInput struct {
	FullName           *string `json:"fullName,omitempty"`
	PhoneNumber        *string `json:"phoneNumber,omitempty"`
	ShoppingPreference *string `json:"shoppingPreference,omitempty"`
	ProfilePicture     *string `json:"profilePicture,omitempty"`
	Country            *string `json:"country,omitempty"`
}

// UpdateProfile applies the provided fields and records the change.
func (s *Service) UpdateProfile(ctx context.Context, userID string, in UpdateProfileInput, meta RequestMeta) (*domain.User, error) {
	u, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if in.FullName != nil {
		u.FullName = strings.TrimSpace(*in.FullName)
	}
	if in.PhoneNumber != nil {
		u.PhoneNumber = strings.TrimSpace(*in.PhoneNumber)
	}
	if in.ShoppingPreference != nil {
		u.ShoppingPreference = *in.ShoppingPreference
	}
	if in.ProfilePicture != nil {
		u.ProfilePicture = *in.ProfilePicture
	}
	if in.Country != nil {
		u.Country = *in.Country
	}

	updated, err := s.repo.Update(ctx, *u)
	if err != nil {
		return nil, err
	}
	s.record(ctx, userID, domain.ActivityProfileUpdate, "profile updated", meta)
	return updated, nil
}

// ListAll returns every account, for the back office.
func (s *Service) ListAll(ctx context.Context) ([]domain.User, error) {
	return s.repo.ListAll(ctx)
}

// record appends an audit entry. The log is best effort: a failed append is
// logged and never fails the operation it annotates.
func (s *Service) record(ctx context.Context, userID, action, details string, meta RequestMeta) {
	_, err := s.activities.Append(ctx, domain.UserActivity{
		UserID:    userID,
		Action:    action,
		Details:   details,
		IPAddress: meta.IPAddress,
		UserAgent: meta.UserAgent,
	})
	if err != nil {
		s.logger.Printf("user service: record activity user=%s action=%s err=%v", userID, action, err)
	}
}

func validatePassword(p string, min int) error {
	if len(p) < min {
		return domain.Invalid(fmt.Sprintf("password must be at least %d characters", min))
	}
	return nil
}
