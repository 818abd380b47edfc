package auth

import (
	"fmt"
	"time"

	"github.com/anima-music/anima/internal/env"
	"github.com/anima-music/anima/internal/types"
	"github.com/go-chi/jwtauth/v5"
	"github.com/lestrrat-go/jwx/v2/jwa"
	"github.com/lestrrat-go/jwx/v2/jwt"
)

var jwtAuth *jwtauth.JWTAuth

// Init must be called after env.Initialize and before the router is built.
func Init() {
	jwtAuth = jwtauth.New(string(jwa.HS256), env.JWTSecret(), nil)
}

func JWTAuth() *jwtauth.JWTAuth {
	return jwtAuth
}

// GenerateSessionToken issues the bearer token returned by login and register.
func GenerateSessionToken(user types.UserAccount) (string, error) {
	now := time.Now()
	token, err := jwt.NewBuilder().
		Subject(user.ID.String()).
		IssuedAt(now).
		Expiration(now.Add(env.SessionTokenValidDuration())).
		Claim("email", user.Email).
		Build()
	if err != nil {
		return "", fmt.Errorf("failed to build token: %w", err)
	}
	signed, err := jwt.Sign(token, jwt.WithKey(jwa.HS256, env.JWTSecret()))
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return string(signed), nil
}
