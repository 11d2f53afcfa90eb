package api

import (
	"crypto/subtle"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/dgrijalva/jwt-go"
)

var (
	TokenTTL        = time.Minute * 30
	ErrTokenClaims  = errors.New("can't extract claims from jwt token")
	ErrTokenInvalid = errors.New("jwt token not valid")
	ErrTokenExpired = errors.New("jwt token expired")
	ErrUnauthorized = errors.New("unauthorized")
)

type AuthRequest struct {
	Password string `json:"password"`
}

// Authenticate exchanges the configured API password for a short lived
// bearer token.
func (api *API) Authenticate(w http.ResponseWriter, r *http.Request) {
	var auth AuthRequest
	if err := json.NewDecoder(r.Body).Decode(&auth); err != nil {
		ERROR(w, http.StatusUnprocessableEntity, err)
		return
	}

	password := os.Getenv("API_PASSWORD")
	if password == "" || subtle.ConstantTimeCompare([]byte(auth.Password), []byte(password)) != 1 {
		ERROR(w, http.StatusUnauthorized, ErrUnauthorized)
		return
	}

	claims := jwt.MapClaims{}
	claims["authorized"] = true
	claims["expires_at"] = time.Now().Add(TokenTTL).Format(time.RFC3339)
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(os.Getenv("API_SECRET")))
	if err != nil {
		ERROR(w, http.StatusInternalServerError, err)
		return
	}

	JSON(w, http.StatusOK, map[string]string{"token": signed})
}

// Auth is the middleware protecting every state changing route.
func (api *API) Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, err := ValidateToken(r); err != nil {
			ERROR(w, http.StatusUnauthorized, err)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func ValidateToken(r *http.Request) (jwt.MapClaims, error) {
	tokenString := reqToken(r)
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(os.Getenv("API_SECRET")), nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrTokenClaims
	} else if !token.Valid {
		return nil, ErrTokenInvalid
	}

	expiresAt, ok := claims["expires_at"].(string)
	if !ok {
		return nil, ErrTokenClaims
	}
	expires, err := time.Parse(time.RFC3339, expiresAt)
	if err != nil || expires.Before(time.Now()) {
		return nil, ErrTokenExpired
	}
	return claims, nil
}

func reqToken(r *http.Request) string {
	keys := r.URL.Query()
	token := keys.Get("token")
	if token != "" {
		return token
	}
	bearerToken := r.Header.Get("Authorization")
	if parts := strings.Split(bearerToken, " "); len(parts) == 2 {
		return parts[1]
	}
	return ""
}
