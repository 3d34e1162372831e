package main

import (
	"context"
	"net/http"

	"github.com/sushihentaime/bloglist/internal/userservice"
)

type contextKey string

const (
	identityContextKey  = contextKey("identity")
	authErrorContextKey = contextKey("authError")
)

func (app *application) contextSetIdentity(r *http.Request, identity *userservice.Identity) *http.Request {
	ctx := context.WithValue(r.Context(), identityContextKey, identity)
	return r.WithContext(ctx)
}

func (app *application) contextGetIdentity(r *http.Request) *userservice.Identity {
	identity, ok := r.Context().Value(identityContextKey).(*userservice.Identity)
	if !ok {
		return &userservice.AnonymousIdentity
	}
	return identity
}

// contextSetAuthError remembers why a presented token was rejected so that
// protected routes can report it.
func (app *application) contextSetAuthError(r *http.Request, err error) *http.Request {
	ctx := context.WithValue(r.Context(), authErrorContextKey, err)
	return r.WithContext(ctx)
}

func (app *application) contextGetAuthError(r *http.Request) error {
	err, _ := r.Context().Value(authErrorContextKey).(error)
	return err
}
