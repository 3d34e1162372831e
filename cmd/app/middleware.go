package main

import (
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/cors"
	"golang.org/x/time/rate"

	"github.com/sushihentaime/bloglist/internal/common"
	"github.com/sushihentaime/bloglist/internal/userservice"
)

func (app *application) recoverPanic(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if err := recover(); err != nil {
				w.Header().Set("Connection", "close")
				app.serverErrorResponse(w, r, fmt.Errorf("%s", err))
			}
		}()

		next.ServeHTTP(w, r)
	})
}

// requestID tags every request with an id, echoes it back and attaches a
// logger carrying it to the request context.
func (app *application) requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get("X-Request-ID")
		if id == "" {
			id = uuid.NewString()
		}

		w.Header().Set("X-Request-ID", id)

		ctx := app.logger.With("request_id", id).WithContext(r.Context())
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (app *application) logRequest(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		common.LoggerFromContext(r.Context(), app.logger).Info().
			Str("method", r.Method).
			Str("uri", r.URL.RequestURI()).
			Str("remote_addr", r.RemoteAddr).
			Str("proto", r.Proto).
			Msg("request from")

		next.ServeHTTP(w, r)
	})
}

func (app *application) enableCORS(next http.Handler) http.Handler {
	c := cors.New(cors.Options{
		AllowedOrigins: app.config.TrustedOrigins,
		AllowedMethods: []string{
			http.MethodGet,
			http.MethodPost,
			http.MethodPut,
			http.MethodDelete,
			http.MethodOptions,
		},
		AllowedHeaders: []string{"Content-Type", "Authorization"},
		ExposedHeaders: []string{"X-Request-ID"},
	})

	return c.Handler(next)
}

type limiterEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// clientLimiters maps client IPs to token buckets. Stale entries are swept
// from get at most once per staleAfter.
type clientLimiters struct {
	mu         sync.Mutex
	entries    map[string]*limiterEntry
	staleAfter time.Duration
	lastSweep  time.Time
}

func newClientLimiters(staleAfter time.Duration) *clientLimiters {
	return &clientLimiters{
		entries:    make(map[string]*limiterEntry),
		staleAfter: staleAfter,
		lastSweep:  time.Now(),
	}
}

func (c *clientLimiters) get(key string, r rate.Limit, burst int) *rate.Limiter {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := time.Now()
	if now.Sub(c.lastSweep) >= c.staleAfter {
		c.sweep(now)
	}

	if e, ok := c.entries[key]; ok {
		e.lastSeen = now
		return e.limiter
	}

	lim := rate.NewLimiter(r, burst)
	c.entries[key] = &limiterEntry{limiter: lim, lastSeen: now}
	return lim
}

// sweep must be called with mu held.
func (c *clientLimiters) sweep(now time.Time) {
	cutoff := now.Add(-c.staleAfter)
	for k, e := range c.entries {
		if e.lastSeen.Before(cutoff) {
			delete(c.entries, k)
		}
	}
	c.lastSweep = now
}

func (app *application) rateLimit(next http.Handler) http.Handler {
	if !app.config.RateLimitEnabled {
		return next
	}

	limiters := newClientLimiters(3 * time.Minute)

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodOptions {
			next.ServeHTTP(w, r)
			return
		}

		ip, _, err := net.SplitHostPort(r.RemoteAddr)
		if err != nil {
			ip = r.RemoteAddr
		}

		if !limiters.get(ip, rate.Limit(app.config.RateLimitRPS), app.config.RateLimitBurst).Allow() {
			app.rateLimitExceededResponse(w, r)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// authenticate resolves the bearer token into an identity. A missing or
// rejected token leaves the request anonymous; routes that need a user are
// wrapped in requireAuthUser.
func (app *application) authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Add("Vary", "Authorization")

		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			r = app.contextSetIdentity(r, &userservice.AnonymousIdentity)
			next.ServeHTTP(w, r)
			return
		}

		token := userservice.ExtractBearerToken(authHeader)

		identity, err := app.userService.GetIdentityFromToken(token)
		if err != nil {
			switch {
			case errors.Is(err, userservice.ErrExpiredToken):
				r = app.contextSetAuthError(r, err)
			case errors.Is(err, userservice.ErrInvalidToken), errors.As(err, &common.ValidationError{}):
				r = app.contextSetAuthError(r, userservice.ErrInvalidToken)
			default:
				app.serverErrorResponse(w, r, err)
				return
			}

			common.LoggerFromContext(r.Context(), app.logger).Debug().Err(err).Msg("rejected bearer token")
			r = app.contextSetIdentity(r, &userservice.AnonymousIdentity)
			next.ServeHTTP(w, r)
			return
		}

		r = app.contextSetIdentity(r, identity)
		next.ServeHTTP(w, r)
	})
}

func (app *application) requireAuthUser(next http.HandlerFunc) http.HandlerFunc {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		identity := app.contextGetIdentity(r)
		if identity.IsAnonymous() {
			message := "token missing"
			if err := app.contextGetAuthError(r); err != nil {
				message = err.Error()
			}

			app.invalidAuthenticationTokenResponse(w, r, message)
			return
		}

		next.ServeHTTP(w, r)
	})
}
