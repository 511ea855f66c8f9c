package services

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog/log"

	"go.edulab.hu/coachdesk/domain"
)

// SignUpInput carries the sign-up form fields.
type SignUpInput struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Password string `json:"password"`
}

// Session is an issued credential plus its expiry, returned to the handler
// so it can set the cookie.
type Session struct {
	Token     string
	ExpiresAt time.Time
}

// AuthService implements account sign-up and the guardian login portal.
type AuthService struct {
	users          domain.UserRepository
	students       domain.StudentRepository
	passwordHasher PasswordHasher // peppered, for account passwords
	passkeyHasher  PasswordHasher // plain bcrypt, for guardian passkeys
	tokens         *TokenService
}

// NewAuthService creates an AuthService.
func NewAuthService(
	users domain.UserRepository,
	students domain.StudentRepository,
	passwordHasher PasswordHasher,
	passkeyHasher PasswordHasher,
	tokens *TokenService,
) *AuthService {
	return &AuthService{
		users:          users,
		students:       students,
		passwordHasher: passwordHasher,
		passkeyHasher:  passkeyHasher,
		tokens:         tokens,
	}
}

// SignUp registers a new coaching-center account on the Free plan and issues
// a 90-day session for it.
func (s *AuthService) SignUp(ctx context.Context, in SignUpInput) (*domain.User, *Session, error) {
	if in.Name == "" || in.Email == "" || in.Phone == "" || in.Password == "" {
		return nil, nil, domain.NewValidationError(domain.ValidationMalformedBody, "all fields are required")
	}

	if _, err := s.users.GetUserByEmail(ctx, in.Email); err == nil {
		return nil, nil, domain.ErrEmailTaken
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, nil, err
	}

	hash, err := s.passwordHasher.Hash(in.Password)
	if err != nil {
		return nil, nil, err
	}

	user := &domain.User{
		Name:         in.Name,
		Email:        in.Email,
		Phone:        in.Phone,
		PasswordHash: hash,
		Plan:         domain.PlanFree,
		IsActive:     true,
	}
	if err := s.users.CreateUser(ctx, user); err != nil {
		return nil, nil, err
	}

	token, expiresAt, err := s.tokens.IssueAccountToken(user.ID.Hex(), user.Plan)
	if err != nil {
		return nil, nil, err
	}

	log.Info().Str("userID", user.ID.Hex()).Msg("New account registered")
	return user, &Session{Token: token, ExpiresAt: expiresAt}, nil
}

// GuardianLogin authenticates a guardian against a student's passkey and
// issues a 7-day session. A wrong passkey reports ErrInvalidCredentials; an
// unknown phone number reports ErrNotFound.
func (s *AuthService) GuardianLogin(ctx context.Context, phoneNumber, passkey string) (*domain.Student, *Session, error) {
	if phoneNumber == "" || passkey == "" {
		return nil, nil, domain.NewValidationError(domain.ValidationMalformedBody, "phone number and passkey required")
	}

	student, err := s.students.GetByPhoneNumber(ctx, phoneNumber)
	if err != nil {
		return nil, nil, err
	}

	if err := s.passkeyHasher.Verify(student.PasskeyHash, passkey); err != nil {
		return nil, nil, domain.ErrInvalidCredentials
	}

	token, expiresAt, err := s.tokens.IssueGuardianToken(student)
	if err != nil {
		return nil, nil, err
	}

	log.Info().Str("studentID", student.ID.Hex()).Msg("Guardian login successful")
	return student, &Session{Token: token, ExpiresAt: expiresAt}, nil
}
