package jwt

import (
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/lestrrat-go/jwx/v2/jwt"
	"github.com/timedesk/timeclock-backend-go/internal/domain/user"
)

type Service interface {
	// GenerateAccessToken issues a session token. The default lifetime
	// applies unless rememberMe asks for the extended one.
	GenerateAccessToken(userID string, email string, companyID string, role user.Role, rememberMe bool) (token string, expiresAt int64, err error)

	// GenerateResetToken issues a short-lived token embedded in password
	// reset links.
	GenerateResetToken(userID string) (token string, expiresAt int64, err error)

	JWTAuth() *jwtauth.JWTAuth
}

type JWTService struct {
	secretKey                string
	accessExpirationTime     string
	rememberMeExpirationTime string
	tokenAuth                *jwtauth.JWTAuth
}

func NewJWTService(secretKey string, accessExpirationTime string, rememberMeExpirationTime string) Service {
	return &JWTService{
		secretKey:                secretKey,
		accessExpirationTime:     accessExpirationTime,
		rememberMeExpirationTime: rememberMeExpirationTime,
		tokenAuth:                jwtauth.New("HS256", []byte(secretKey), nil, jwt.WithAcceptableSkew(30*time.Second)),
	}
}

func (j *JWTService) JWTAuth() *jwtauth.JWTAuth {
	return j.tokenAuth
}

func (j *JWTService) GenerateAccessToken(userID string, email string, companyID string, role user.Role, rememberMe bool) (token string, expiresAt int64, err error) {
	expiration := j.accessExpirationTime
	if rememberMe {
		expiration = j.rememberMeExpirationTime
	}
	expDuration, err := time.ParseDuration(expiration)
	if err != nil {
		return "", 0, err
	}
	expiresAt = time.Now().Add(expDuration).Unix()

	_, tokenString, err := j.tokenAuth.Encode(map[string]interface{}{
		"user_id":    userID,
		"email":      email,
		"company_id": companyID,
		"role":       string(role),
		"type":       "access",
		"exp":        expiresAt,
	})
	return tokenString, expiresAt, err
}

func (j *JWTService) GenerateResetToken(userID string) (token string, expiresAt int64, err error) {
	expiresAt = time.Now().Add(1 * time.Hour).Unix()
	_, tokenString, err := j.tokenAuth.Encode(map[string]interface{}{
		"user_id": userID,
		"type":    "reset",
		"exp":     expiresAt,
	})
	return tokenString, expiresAt, err
}
