// Copyright (c) 2026 Partitura. All rights reserved.
// Author: dev@clefworks.io

/*
Package request provides utilities for extracting data from HTTP requests.

It abstracts away the underlying router's parameter extraction and common
body decoding patterns, ensuring consistent error handling and type safety.
*/
package requestutil

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/clefworks/partitura/internal/platform/apperr"
	"github.com/clefworks/partitura/internal/platform/ctxutil"
	"github.com/clefworks/partitura/internal/platform/sec"
	"github.com/clefworks/partitura/internal/platform/validate"
)

/*
DecodeJSON reads the request body and decodes it into the target structure.

Parameters:
  - request: *http.Request
  - target: interface{} (Pointer to the destination struct)

Returns:
  - error: validate.ErrInvalidJSON if decoding fails, otherwise nil
*/
func DecodeJSON(request *http.Request, target interface{}) error {
	if err := json.NewDecoder(request.Body).Decode(target); err != nil {
		return validate.ErrInvalidJSON
	}
	return nil
}

/*
Param retrieves a named URL parameter from the request.
*/
func Param(request *http.Request, name string) string {
	return chi.URLParam(request, name)
}

/*
IntID retrieves a named URL parameter and parses it as an int64 primary key.

Returns:
  - int64: the parsed identifier
  - error: apperr.ValidationError if the parameter is not a positive integer
*/
func IntID(request *http.Request, name string) (int64, error) {
	raw := chi.URLParam(request, name)

	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id < 1 {
		return 0, validate.RequiredError(name, "Must be a positive integer id")
	}

	return id, nil
}

/*
QueryInt retrieves a named query-string parameter as an int64.

Returns 0 and no error when the parameter is absent, so optional numeric
filters fall through to their zero value.
*/
func QueryInt(request *http.Request, name string) (int64, error) {
	raw := request.URL.Query().Get(name)
	if raw == "" {
		return 0, nil
	}

	value, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, validate.RequiredError(name, "Must be an integer")
	}

	return value, nil
}

/*
QueryDate retrieves a named query-string parameter as a calendar date
(YYYY-MM-DD). The boolean reports whether a parseable value was present.
*/
func QueryDate(request *http.Request, name string) (time.Time, bool) {
	raw := request.URL.Query().Get(name)
	if raw == "" {
		return time.Time{}, false
	}

	value, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return time.Time{}, false
	}

	return value, true
}

/*
Claims extracts the authenticated user claims from the request context.

Returns nil if the request is not authenticated.
*/
func Claims(request *http.Request) *sec.AuthClaims {
	return ctxutil.GetAuthUser(request.Context())
}

/*
RequiredClaims ensures the request is authenticated and returns the user claims.

Returns:
  - *sec.AuthClaims: The authenticated user claims
  - error: apperr.Unauthorized if the request is not authenticated
*/
func RequiredClaims(request *http.Request) (*sec.AuthClaims, error) {

	// Get user claims
	claims := ctxutil.GetAuthUser(request.Context())

	// If the user is not authenticated, return an error
	if claims == nil {
		return nil, apperr.Unauthorized("Authentication required")
	}

	return claims, nil
}
