package server

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"pawhaven/internal"
	"pawhaven/pkg/types"

	"github.com/gorilla/securecookie"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(t *testing.T) *Service {
	t.Helper()

	logger := logrus.New()
	logger.SetOutput(io.Discard)

	hashKey := []byte("0123456789abcdef0123456789abcdef")
	blockKey := []byte("fedcba9876543210fedcba9876543210")

	return &Service{
		logger: logger,
		config: &types.Config{
			SessionCookieName: "pawhaven_session",
			SessionMaxAgeSec:  3600,
		},
		cookie: securecookie.New(hashKey, blockKey),
	}
}

func withUser(r *http.Request, user *types.User) *http.Request {
	ctx := context.WithValue(r.Context(), contextKeyUser, user)
	return r.WithContext(ctx)
}

func okHandler(called *bool) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*called = true
		w.WriteHeader(http.StatusOK)
	})
}

func TestStripTrailingSlash(t *testing.T) {
	s := newTestService(t)

	t.Run("redirects trailing slash", func(t *testing.T) {
		var called bool
		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodGet, "/pets/", nil)

		s.StripTrailingSlash(okHandler(&called)).ServeHTTP(w, r)

		assert.False(t, called)
		assert.Equal(t, http.StatusMovedPermanently, w.Code)
		assert.Equal(t, "/pets", w.Header().Get("Location"))
	})

	t.Run("root is untouched", func(t *testing.T) {
		var called bool
		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodGet, "/", nil)

		s.StripTrailingSlash(okHandler(&called)).ServeHTTP(w, r)

		assert.True(t, called)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("clean path passes through", func(t *testing.T) {
		var called bool
		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodGet, "/pets/buddy", nil)

		s.StripTrailingSlash(okHandler(&called)).ServeHTTP(w, r)

		assert.True(t, called)
	})
}

func TestRequireAuth(t *testing.T) {
	s := newTestService(t)

	t.Run("anonymous redirects to login", func(t *testing.T) {
		var called bool
		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodGet, "/account/applications", nil)

		s.RequireAuth(okHandler(&called)).ServeHTTP(w, r)

		assert.False(t, called)
		assert.Equal(t, http.StatusSeeOther, w.Code)
		assert.Equal(t, "/login", w.Header().Get("Location"))

		var redirect *http.Cookie
		for _, c := range w.Result().Cookies() {
			if c.Name == internal.COOKIE_REDIRECT_NAME {
				redirect = c
			}
		}
		require.NotNil(t, redirect)
		assert.Equal(t, "/account/applications", redirect.Value)
	})

	t.Run("signed-in passes through", func(t *testing.T) {
		var called bool
		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodGet, "/account", nil)
		r = withUser(r, &types.User{ID: "user-1"})

		s.RequireAuth(okHandler(&called)).ServeHTTP(w, r)

		assert.True(t, called)
		assert.Equal(t, http.StatusOK, w.Code)
	})
}

func TestRequireStaff(t *testing.T) {
	s := newTestService(t)

	t.Run("non-staff gets 404", func(t *testing.T) {
		var called bool
		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
		r = withUser(r, &types.User{ID: "user-1", IsStaff: false})

		s.RequireStaff(okHandler(&called)).ServeHTTP(w, r)

		assert.False(t, called)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("staff passes through", func(t *testing.T) {
		var called bool
		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
		r = withUser(r, &types.User{ID: "staff-1", IsStaff: true})

		s.RequireStaff(okHandler(&called)).ServeHTTP(w, r)

		assert.True(t, called)
		assert.Equal(t, http.StatusOK, w.Code)
	})
}

func TestSessionCookieRoundTrip(t *testing.T) {
	s := newTestService(t)

	w := httptest.NewRecorder()
	require.NoError(t, s.setSessionCookie(w, "user-42"))

	var cookie *http.Cookie
	for _, c := range w.Result().Cookies() {
		if c.Name == s.config.SessionCookieName {
			cookie = c
		}
	}
	require.NotNil(t, cookie)
	assert.True(t, cookie.HttpOnly)
	assert.Equal(t, s.config.SessionMaxAgeSec, cookie.MaxAge)

	var session sessionPayload
	require.NoError(t, s.cookie.Decode(s.config.SessionCookieName, cookie.Value, &session))
	assert.Equal(t, "user-42", session.UserID)
}

func TestValidateRegisterInput(t *testing.T) {
	t.Run("valid input", func(t *testing.T) {
		errs := validateRegisterInput("Dana", "Reeves", "dana@example.com", "hunter2hunter2", "hunter2hunter2")
		assert.Empty(t, errs)
	})

	cases := []struct {
		name      string
		firstName string
		lastName  string
		email     string
		password  string
		confirm   string
		field     string
	}{
		{"missing first name", "", "Reeves", "dana@example.com", "hunter2hunter2", "hunter2hunter2", "first_name"},
		{"missing last name", "Dana", "", "dana@example.com", "hunter2hunter2", "hunter2hunter2", "last_name"},
		{"missing email", "Dana", "Reeves", "", "hunter2hunter2", "hunter2hunter2", "email"},
		{"bad email", "Dana", "Reeves", "not-an-email", "hunter2hunter2", "hunter2hunter2", "email"},
		{"short password", "Dana", "Reeves", "dana@example.com", "short", "short", "password"},
		{"mismatched confirm", "Dana", "Reeves", "dana@example.com", "hunter2hunter2", "different", "confirm_password"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			errs := validateRegisterInput(tc.firstName, tc.lastName, tc.email, tc.password, tc.confirm)
			assert.Contains(t, errs, tc.field)
		})
	}
}

func TestValidateContactInput(t *testing.T) {
	t.Run("valid input", func(t *testing.T) {
		errs := validateContactInput("Dana", "dana@example.com", "Visiting hours", "Do you allow walk-in visits on weekends?")
		assert.Empty(t, errs)
	})

	cases := []struct {
		name    string
		cname   string
		email   string
		subject string
		message string
		field   string
	}{
		{"missing name", "", "dana@example.com", "Hours", "Do you allow walk-in visits?", "name"},
		{"missing email", "Dana", "", "Hours", "Do you allow walk-in visits?", "email"},
		{"missing subject", "Dana", "dana@example.com", "", "Do you allow walk-in visits?", "subject"},
		{"short message", "Dana", "dana@example.com", "Hours", "Hi", "message"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			errs := validateContactInput(tc.cname, tc.email, tc.subject, tc.message)
			assert.Contains(t, errs, tc.field)
		})
	}
}
