// Copyright (c) 2026 Partitura. All rights reserved.
// Author: dev@clefworks.io

// Package sec provides token verification and the role model.
//
// # Architecture
//
// This package isolates security-sensitive code (JWT parsing, role
// hierarchy) from the domain logic. Tokens are issued by an external
// identity service; this API only verifies them. An optional signing key
// enables local token minting for operational tooling.
package sec

import (
	"crypto/rsa"
	"fmt"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// AuthClaims represents the payload embedded inside a JWT Access Token.
//
// # Why custom claims?
//
// By embedding the UserID, Username, and Role directly inside the JWT,
// the authentication middleware can reconstruct the active user context
// WITHOUT querying the database on every single API request.
type AuthClaims struct {
	jwt.RegisteredClaims

	// Custom application claims are abbreviated to keep the JWT payload small.
	UserID   string `json:"uid"`
	Username string `json:"unm"`
	Role     string `json:"rol"`

	// ComposerID links composer accounts to their catalog identity so that
	// settlement reads can be scoped to the caller. Zero for staff/admin.
	ComposerID int64 `json:"cid,omitempty"`
}

// TokenService handles verification (and optional generation) of RS256 JWTs.
type TokenService struct {
	privateKey *rsa.PrivateKey
	publicKey  *rsa.PublicKey
	issuer     string
}

// NewTokenService creates a new TokenService.
//
// The public key is mandatory. privateKeyPath may be empty, in which case
// the service is verify-only and [TokenService.GenerateAccessToken] fails.
func NewTokenService(privateKeyPath, publicKeyPath, issuer string) (*TokenService, error) {
	publicKeyData, err := os.ReadFile(publicKeyPath)
	if err != nil {
		return nil, fmt.Errorf("sec: failed to read public key from %s: %w", publicKeyPath, err)
	}

	publicKey, err := jwt.ParseRSAPublicKeyFromPEM(publicKeyData)
	if err != nil {
		return nil, fmt.Errorf("sec: failed to parse public key: %w", err)
	}

	service := &TokenService{
		publicKey: publicKey,
		issuer:    issuer,
	}

	if privateKeyPath != "" {
		privateKeyData, err := os.ReadFile(privateKeyPath)
		if err != nil {
			return nil, fmt.Errorf("sec: failed to read private key from %s: %w", privateKeyPath, err)
		}

		privateKey, err := jwt.ParseRSAPrivateKeyFromPEM(privateKeyData)
		if err != nil {
			return nil, fmt.Errorf("sec: failed to parse private key: %w", err)
		}
		service.privateKey = privateKey
	}

	return service, nil
}

// GenerateAccessToken creates a new JWT access token for a user.
func (service *TokenService) GenerateAccessToken(userID, username string, role Role, composerID int64, timeToLive time.Duration) (string, error) {
	if service.privateKey == nil {
		return "", fmt.Errorf("sec: token service is verify-only (no private key configured)")
	}

	currentTime := time.Now()
	claims := AuthClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			Issuer:    service.issuer,
			IssuedAt:  jwt.NewNumericDate(currentTime),
			ExpiresAt: jwt.NewNumericDate(currentTime.Add(timeToLive)),
		},
		UserID:     userID,
		Username:   username,
		Role:       string(role),
		ComposerID: composerID,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodRS256, claims)
	signedToken, err := token.SignedString(service.privateKey)
	if err != nil {
		return "", fmt.Errorf("sec: failed to sign token: %w", err)
	}

	return signedToken, nil
}

// VerifyToken checks the signature and validity of a JWT string.
func (service *TokenService) VerifyToken(tokenString string) (*AuthClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &AuthClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodRSA); !ok {
			return nil, fmt.Errorf("sec: unexpected signing method: %v", token.Header["alg"])
		}
		return service.publicKey, nil
	})

	if err != nil {
		return nil, fmt.Errorf("sec: invalid token: %w", err)
	}

	claims, ok := token.Claims.(*AuthClaims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("sec: invalid token claims")
	}

	return claims, nil
}
