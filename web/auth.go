/* auth.go
 * Contains the admin token check used by the admin routes. Tokens are issued outside this service, the server only
 * verifies them
 * Authors: Zachary Bower
 */

package web

import (
	"errors"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
)

// AdminClaims are the claims an admin token must carry
type AdminClaims struct {
	Admin bool `json:"admin"`
	jwt.RegisteredClaims
}

// ValidateAdminToken verifies an HS256 token and checks it carries the admin claim
func ValidateAdminToken(secret []byte, tokenString string) (*AdminClaims, error) {
	if len(secret) == 0 {
		return nil, errors.New("admin api is disabled")
	}

	token, err := jwt.ParseWithClaims(tokenString, &AdminClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("invalid token signing method")
		}
		return secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*AdminClaims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token")
	}
	if !claims.Admin {
		return nil, errors.New("token does not have admin access")
	}
	return claims, nil
}

// requireAdmin rejects requests without a valid bearer admin token
func (s *Server) requireAdmin(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		tokenString, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || tokenString == "" {
			writeError(w, http.StatusUnauthorized, "missing bearer token")
			return
		}
		if _, err := ValidateAdminToken(s.secret, tokenString); err != nil {
			writeError(w, http.StatusUnauthorized, err.Error())
			return
		}
		next(w, r)
	}
}
