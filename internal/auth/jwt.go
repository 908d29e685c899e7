package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"stockgyan-backend/internal/config"
	"stockgyan-backend/internal/models"
	"stockgyan-backend/internal/timeutil"
)

// Claims are the session token contents. SessionID points at the server-side
// sessions row; revoking that row invalidates the token before its expiry.
type Claims struct {
	SessionID string `json:"session_id"`
	UserID    int    `json:"user_id"`
	Mobile    string `json:"mobile"`
	FullName  string `json:"full_name"`
	jwt.RegisteredClaims
}

type JWTManager struct {
	cfg *config.Config
}

func NewJWTManager(cfg *config.Config) *JWTManager {
	return &JWTManager{cfg: cfg}
}

// GenerateToken creates a session token for a verified user
func (j *JWTManager) GenerateToken(user *models.User, sessionID string) (string, error) {
	now := timeutil.Now()
	expirationTime := now.Add(time.Duration(j.cfg.JWT.ExpirationHours) * time.Hour)

	claims := &Claims{
		SessionID: sessionID,
		UserID:    user.ID,
		Mobile:    user.Mobile,
		FullName:  user.FullName,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expirationTime),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    j.cfg.JWT.Issuer,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(j.cfg.JWT.Secret))
}

// ValidateToken verifies a session token and returns the claims
func (j *JWTManager) ValidateToken(tokenString string) (*Claims, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		// Verify signing method
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("invalid signing method")
		}
		return []byte(j.cfg.JWT.Secret), nil
	})

	if err != nil {
		return nil, err
	}

	if !token.Valid {
		return nil, errors.New("invalid token")
	}

	if claims.SessionID == "" {
		return nil, errors.New("token carries no session")
	}

	return claims, nil
}
