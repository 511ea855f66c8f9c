package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"go.edulab.hu/coachdesk/domain"
)

const (
	// AccountTokenTTL is the session lifetime for primary accounts.
	AccountTokenTTL = 90 * 24 * time.Hour
	// GuardianTokenTTL is the session lifetime for guardian logins.
	GuardianTokenTTL = 7 * 24 * time.Hour
)

// Identity is the authenticated caller extracted from a session token.
type Identity struct {
	SubjectID   string
	Plan        domain.Plan
	Guardian    bool
	Name        string
	PhoneNumber string
}

// TokenService issues and verifies signed session tokens. Tokens are
// stateless: verification is a pure function of the token, the signing
// secret and the current time.
type TokenService struct {
	secret []byte
}

// NewTokenService creates a TokenService signing with the given secret.
func NewTokenService(secret string) *TokenService {
	return &TokenService{secret: []byte(secret)}
}

// IssueAccountToken signs a token for a primary account.
func (s *TokenService) IssueAccountToken(userID string, plan domain.Plan) (string, time.Time, error) {
	expiresAt := time.Now().Add(AccountTokenTTL)
	claims := jwt.MapClaims{
		"userId": userID,
		"plan":   string(plan),
		"jti":    uuid.NewString(),
		"iat":    jwt.NewNumericDate(time.Now()).Unix(),
		"exp":    jwt.NewNumericDate(expiresAt).Unix(),
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign account token: %w", err)
	}
	return signed, expiresAt, nil
}

// IssueGuardianToken signs a token for a guardian session tied to a student.
func (s *TokenService) IssueGuardianToken(student *domain.Student) (string, time.Time, error) {
	expiresAt := time.Now().Add(GuardianTokenTTL)
	claims := jwt.MapClaims{
		"id":           student.ID.Hex(),
		"name":         student.Name,
		"phone_number": student.PhoneNumber,
		"jti":          uuid.NewString(),
		"iat":          jwt.NewNumericDate(time.Now()).Unix(),
		"exp":          jwt.NewNumericDate(expiresAt).Unix(),
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign guardian token: %w", err)
	}
	return signed, expiresAt, nil
}

// Verify validates a session token and extracts the caller identity.
// Failures carry a distinguishable kind (missing, invalid, expired) but all
// map to the same rejection at the handler boundary.
func (s *TokenService) Verify(tokenString string) (*Identity, error) {
	if tokenString == "" {
		return nil, domain.NewAuthError(domain.AuthMissing, nil)
	}

	parsed, err := jwt.Parse(tokenString,
		func(token *jwt.Token) (any, error) {
			return s.secret, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, domain.NewAuthError(domain.AuthExpired, err)
		}
		return nil, domain.NewAuthError(domain.AuthInvalid, err)
	}

	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return nil, domain.NewAuthError(domain.AuthInvalid, errors.New("unexpected claims type"))
	}

	if userID, ok := claims["userId"].(string); ok && userID != "" {
		identity := &Identity{SubjectID: userID}
		if plan, ok := claims["plan"].(string); ok {
			identity.Plan = domain.Plan(plan)
		}
		return identity, nil
	}

	if studentID, ok := claims["id"].(string); ok && studentID != "" {
		identity := &Identity{SubjectID: studentID, Guardian: true}
		if name, ok := claims["name"].(string); ok {
			identity.Name = name
		}
		if phone, ok := claims["phone_number"].(string); ok {
			identity.PhoneNumber = phone
		}
		return identity, nil
	}

	return nil, domain.NewAuthError(domain.AuthInvalid, errors.New("token carries no subject"))
}
