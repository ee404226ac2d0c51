package auth

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"strconv"
	"time"

	"freelancer-server/internal/shared/config"
	"freelancer-server/internal/user"

	"github.com/golang-jwt/jwt/v5"
)

func jwtSecret() ([]byte, error) {
	if config.GlobalConfig == nil || config.GlobalConfig.Auth.JWTSecret == "" {
		return nil, fmt.Errorf("JWT secret is not configured")
	}
	return []byte(config.GlobalConfig.Auth.JWTSecret), nil
}

// GenerateTokenPair issues the access/refresh pair returned by register,
// login and refresh flows.
func GenerateTokenPair(u *user.User) (*TokenPair, error) {
	accessToken, err := GenerateAccessToken(u)
	if err != nil {
		return nil, err
	}

	refreshToken, err := GenerateRefreshToken(u.ID)
	if err != nil {
		return nil, err
	}

	return &TokenPair{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

func GenerateAccessToken(u *user.User) (string, error) {
	secret, err := jwtSecret()
	if err != nil {
		return "", fmt.Errorf("cannot generate access token: %w", err)
	}

	now := time.Now()
	claims := Claims{
		UserID:    u.ID,
		Username:  u.Username,
		Email:     u.Email,
		TokenType: TokenTypeAccess,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.Itoa(u.ID),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(config.GlobalConfig.Auth.AccessTokenExpiry)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secret)
}

// GenerateRefreshToken issues a long-lived token carrying only the subject.
// It cannot authorize resource access; its sole use is minting new access
// tokens.
func GenerateRefreshToken(userID int) (string, error) {
	secret, err := jwtSecret()
	if err != nil {
		return "", fmt.Errorf("cannot generate refresh token: %w", err)
	}

	tokenID, err := generateTokenID()
	if err != nil {
		return "", err
	}

	now := time.Now()
	claims := Claims{
		UserID:    userID,
		TokenType: TokenTypeRefresh,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.Itoa(userID),
			ID:        tokenID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(config.GlobalConfig.Auth.RefreshTokenExpiry)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secret)
}

// ValidateAccessToken parses and verifies an access token. Expired tokens
// are reported as ErrTokenExpired so the transport layer can surface the
// distinct sub-code.
func ValidateAccessToken(tokenString string) (*Claims, error) {
	return validateToken(tokenString, TokenTypeAccess)
}

// ValidateRefreshToken parses and verifies a refresh token. Access tokens
// are rejected here just as refresh tokens are rejected on resource routes.
func ValidateRefreshToken(tokenString string) (*Claims, error) {
	return validateToken(tokenString, TokenTypeRefresh)
}

func validateToken(tokenString, wantType string) (*Claims, error) {
	secret, err := jwtSecret()
	if err != nil {
		return nil, fmt.Errorf("cannot validate token: %w", err)
	}

	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return secret, nil
	})

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrTokenInvalid
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrTokenInvalid
	}

	if claims.TokenType != wantType {
		return nil, ErrTokenInvalid
	}

	return claims, nil
}

func generateTokenID() (string, error) {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("failed to generate token ID: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
