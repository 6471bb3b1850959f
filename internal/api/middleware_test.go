package api

import (
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// brokenReader yields a partial payload, then fails
type brokenReader struct {
	partial string
	read    bool
}

func (b *brokenReader) Read(p []byte) (int, error) {
	if !b.read {
		b.read = true
		return copy(p, b.partial), nil
	}
	return 0, errors.New("connection reset")
}

func runCompanyContext(t *testing.T, r *http.Request) (*uuid.UUID, *httptest.ResponseRecorder) {
	t.Helper()
	s := &RESTServer{}

	var resolved *uuid.UUID
	handler := s.companyContextMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		resolved = companyIDFrom(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, r)
	return resolved, rec
}

func TestCompanyContextMiddleware(t *testing.T) {
	companyID := uuid.New()

	t.Run("header wins", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodGet, "/projects?companyId="+uuid.New().String(), nil)
		r.Header.Set("X-Company-ID", companyID.String())

		resolved, rec := runCompanyContext(t, r)
		assert.Equal(t, http.StatusOK, rec.Code)
		require.NotNil(t, resolved)
		assert.Equal(t, companyID, *resolved)
	})

	t.Run("query parameter", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodGet, "/projects?companyId="+companyID.String(), nil)

		resolved, rec := runCompanyContext(t, r)
		assert.Equal(t, http.StatusOK, rec.Code)
		require.NotNil(t, resolved)
		assert.Equal(t, companyID, *resolved)
	})

	t.Run("json body fallback restores the body", func(t *testing.T) {
		body := `{"companyId":"` + companyID.String() + `","name":"Q3 launch"}`
		r := httptest.NewRequest(http.MethodPost, "/projects", strings.NewReader(body))
		r.Header.Set("Content-Type", "application/json")

		s := &RESTServer{}
		var resolved *uuid.UUID
		var seenBody string
		handler := s.companyContextMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			resolved = companyIDFrom(r.Context())
			buf := make([]byte, len(body))
			n, _ := r.Body.Read(buf)
			seenBody = string(buf[:n])
		}))

		handler.ServeHTTP(httptest.NewRecorder(), r)

		require.NotNil(t, resolved)
		assert.Equal(t, companyID, *resolved)
		assert.Equal(t, body, seenBody)
	})

	t.Run("no company is not an error", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodGet, "/projects", nil)

		resolved, rec := runCompanyContext(t, r)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Nil(t, resolved)
	})

	t.Run("malformed company id is rejected", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodGet, "/projects", nil)
		r.Header.Set("X-Company-ID", "not-a-uuid")

		_, rec := runCompanyContext(t, r)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "invalid company id")
	})

	t.Run("failed body read still leaves a readable body", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodPost, "/projects", &brokenReader{partial: `{"name":`})
		r.Header.Set("Content-Type", "application/json")

		s := &RESTServer{}
		var resolved *uuid.UUID
		var seenBody string
		var readErr error
		handler := s.companyContextMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			resolved = companyIDFrom(r.Context())
			b, err := io.ReadAll(r.Body)
			seenBody, readErr = string(b), err
			w.WriteHeader(http.StatusOK)
		}))

		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, r)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Nil(t, resolved)
		assert.NoError(t, readErr)
		assert.Equal(t, `{"name":`, seenBody)
	})

	t.Run("non json body is left alone", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodPost, "/projects", strings.NewReader("raw bytes"))
		r.Header.Set("Content-Type", "text/plain")

		resolved, rec := runCompanyContext(t, r)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Nil(t, resolved)
	})
}
