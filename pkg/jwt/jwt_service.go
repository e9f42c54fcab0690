package jwt

import (
	"errors"
	"fmt"
	"time"

	"recipe-hub/domain"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
)

const (
	issuer        = "RECIPE-HUB"
	tokenLifetime = 30 * 24 * time.Hour
)

type (
	JWTService interface {
		GenerateTokenUser(userID uuid.UUID, handle string, email string) (string, error)
		ValidateTokenUser(token string) (*UserClaims, error)
	}

	// UserClaims binds a principal id and its denormalized display claims.
	UserClaims struct {
		UserID string `json:"user_id"`
		Handle string `json:"handle"`
		Email  string `json:"email"`
		jwt.RegisteredClaims
	}

	jwtService struct {
		secretKey []byte
		issuer    string
		lifetime  time.Duration
		now       func() time.Time
	}
)

// Segments must be canonical base64url; the default decoder ignores the
// unused low bits of the last character.
func init() {
	jwt.DecodeStrict = true
}

func NewJWTServiceWithSecret(secret string) JWTService {
	return &jwtService{
		secretKey: []byte(secret),
		issuer:    issuer,
		lifetime:  tokenLifetime,
		now:       time.Now,
	}
}

func (j *jwtService) GenerateTokenUser(userID uuid.UUID, handle string, email string) (string, error) {
	now := j.now()
	claims := UserClaims{
		UserID: userID.String(),
		Handle: handle,
		Email:  email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID.String(),
			ExpiresAt: jwt.NewNumericDate(now.Add(j.lifetime)),
			Issuer:    j.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(j.secretKey)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

func (j *jwtService) parseToken(t_ *jwt.Token) (any, error) {
	if _, ok := t_.Method.(*jwt.SigningMethodHMAC); !ok {
		return nil, fmt.Errorf("unexpected signing method %v", t_.Header["alg"])
	}
	return j.secretKey, nil
}

func (j *jwtService) ValidateTokenUser(token string) (*UserClaims, error) {
	claims := &UserClaims{}
	parser := jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	t_Token, err := parser.ParseWithClaims(token, claims, j.parseToken)
	if err != nil {
		// a forged token is invalid even when its claims also look expired
		if errors.Is(err, jwt.ErrTokenSignatureInvalid) {
			return nil, domain.ErrTokenInvalid
		}
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, domain.ErrTokenExpired
		}
		return nil, domain.ErrTokenInvalid
	}
	if !t_Token.Valid || claims.Issuer != j.issuer {
		return nil, domain.ErrTokenInvalid
	}
	if _, err := uuid.Parse(claims.UserID); err != nil {
		return nil, domain.ErrTokenInvalid
	}
	return claims, nil
}

// PrincipalID returns the principal the token was issued for.
func (c *UserClaims) PrincipalID() uuid.UUID {
	return uuid.MustParse(c.UserID)
}
