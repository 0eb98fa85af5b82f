package auth

import (
	"errors"
	"os"
	"time"

	"CampusEventPortal/internal/authz"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// GetJWTKey reads the signing key lazily so godotenv has loaded by the time
// the first token is issued.
func GetJWTKey() []byte {
	return []byte(os.Getenv("JWT_KEY"))
}

type JWTClaims struct {
	UserID     string `json:"user_id"`
	Email      string `json:"email"`
	Role       string `json:"role"`
	Department string `json:"department,omitempty"`
	jwt.RegisteredClaims
}

// Actor rebuilds the predicate actor from token claims. Rejects tokens
// carrying ids or roles outside the closed set.
func (c *JWTClaims) Actor() (authz.Actor, error) {
	id, err := uuid.Parse(c.UserID)
	if err != nil {
		return authz.Actor{}, errors.New("invalid user id in token")
	}
	role, ok := authz.ParseRole(c.Role)
	if !ok {
		return authz.Actor{}, errors.New("invalid role in token")
	}
	return authz.Actor{ID: id, Role: role, Department: c.Department}, nil
}

func GenerateJWT(user *User, duration time.Duration) (string, error) {
	claims := &JWTClaims{
		UserID:     user.ID.String(),
		Email:      user.Email,
		Role:       string(user.Role),
		Department: user.Department,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.Email,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(duration)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(GetJWTKey())
}

func ValidateJWT(tokenString string) (*JWTClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &JWTClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return GetJWTKey(), nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*JWTClaims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token")
	}
	return claims, nil
}

func HashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(hashed), err
}

func CheckPasswordHash(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}
