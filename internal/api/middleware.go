package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/verlyx/hub-server/internal/authz"
	"github.com/verlyx/hub-server/internal/models"
)

type contextKey string

const (
	principalKey contextKey = "principal"
	companyIDKey contextKey = "companyID"
)

// authMiddleware authenticates the request from the Authorization header
// and stores the principal in the request context
func (s *RESTServer) authMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			s.respondError(w, http.StatusUnauthorized, "missing authorization header")
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			s.respondError(w, http.StatusUnauthorized, "invalid authorization header")
			return
		}

		claims, err := s.auth.ValidateToken(parts[1])
		if err != nil {
			s.respondError(w, http.StatusUnauthorized, "invalid token")
			return
		}

		principal := &authz.Principal{
			UserID:     claims.UserID,
			Email:      claims.Email,
			LegacyRole: claims.Role,
		}

		ctx := context.WithValue(r.Context(), principalKey, principal)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// companyContextMiddleware resolves the tenant for the request. Sources are
// checked in a fixed order: the X-Company-ID header, the companyId query
// parameter, then a companyId field in a JSON body. The body is restored
// for downstream handlers. A missing company is not an error; a present but
// malformed one is.
func (s *RESTServer) companyContextMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw := r.Header.Get("X-Company-ID")

		if raw == "" {
			raw = r.URL.Query().Get("companyId")
		}

		if raw == "" && r.Body != nil && strings.HasPrefix(r.Header.Get("Content-Type"), "application/json") {
			// Restore whatever was read even when the read fails, so the
			// handler never sees a half-drained body
			body, err := io.ReadAll(io.LimitReader(r.Body, 1<<20))
			r.Body = io.NopCloser(bytes.NewReader(body))
			if err == nil {
				var probe struct {
					CompanyID string `json:"companyId"`
				}
				if json.Unmarshal(body, &probe) == nil {
					raw = probe.CompanyID
				}
			}
		}

		if raw == "" {
			next.ServeHTTP(w, r)
			return
		}

		companyID, err := uuid.Parse(raw)
		if err != nil {
			s.respondError(w, http.StatusBadRequest, "invalid company id")
			return
		}

		ctx := context.WithValue(r.Context(), companyIDKey, companyID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// principalFrom returns the authenticated principal, or nil outside the
// auth middleware
func principalFrom(ctx context.Context) *authz.Principal {
	p, _ := ctx.Value(principalKey).(*authz.Principal)
	return p
}

// companyIDFrom returns the resolved tenant, or nil when none was supplied
func companyIDFrom(ctx context.Context) *uuid.UUID {
	id, ok := ctx.Value(companyIDKey).(uuid.UUID)
	if !ok {
		return nil
	}
	return &id
}

// requireRoles runs the authorization gate against the tenant resolved by
// the company context middleware and writes the response on failure. The
// detailed cause stays in the log; consumers get a uniform message.
func (s *RESTServer) requireRoles(w http.ResponseWriter, r *http.Request, required ...models.Role) bool {
	return s.requireCompanyRoles(w, r, companyIDFrom(r.Context()), required...)
}

// requireCompanyRoles is requireRoles against an explicit company, used by
// routes that carry the company in the path
func (s *RESTServer) requireCompanyRoles(w http.ResponseWriter, r *http.Request, companyID *uuid.UUID, required ...models.Role) bool {
	principal := principalFrom(r.Context())

	err := s.gate.Require(r.Context(), principal, companyID, required...)
	if err == nil {
		return true
	}

	var authzErr *authz.Error
	if errors.As(err, &authzErr) && authzErr.Kind == authz.KindUnauthenticated {
		s.respondError(w, http.StatusUnauthorized, "user not authenticated")
		return false
	}

	log.Debug().Err(err).
		Str("path", r.URL.Path).
		Msg("Authorization denied")
	s.respondError(w, http.StatusForbidden, "Insufficient permissions")
	return false
}
