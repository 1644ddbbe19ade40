package auth

import (
	"errors"
	"time"

	"github.com/dmitrijs2005/listkeeper/internal/common"
	"github.com/golang-jwt/jwt/v5"
)

// Claims extends the registered JWT claims with the authenticated user id
// and the opaque session token the login is bound to. Carrying the session
// token inside the access token lets revocation checks reach the session
// store without a second credential.
type Claims struct {
	jwt.RegisteredClaims
	UserID       string
	SessionToken string
}

// GenerateToken mints a signed HS256 access token carrying userID bound to
// sessionToken.
func GenerateToken(userID, sessionToken string, secretKey []byte, validityDuration time.Duration) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(validityDuration)),
		},
		UserID:       userID,
		SessionToken: sessionToken,
	})

	tokenString, err := token.SignedString(secretKey)
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

// ParseToken validates tokenString and extracts its claims.
// Expired tokens yield common.ErrTokenExpired; any other parse or signature
// failure yields common.ErrInvalidToken.
func ParseToken(tokenString string, secretKey []byte) (*Claims, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return secretKey, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, common.ErrTokenExpired
		}
		return nil, common.ErrInvalidToken
	}

	if !token.Valid {
		return nil, common.ErrInvalidToken
	}

	return claims, nil
}
