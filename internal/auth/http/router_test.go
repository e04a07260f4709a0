package http

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/hexfray/authd/internal/auth/service"
	"github.com/hexfray/authd/internal/auth/store/drivers/sqlite"
	"github.com/hexfray/authd/pkg/idx"
	"github.com/hexfray/authd/pkg/jwtx"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T) (*httptest.Server, *jwtx.HS256) {
	t.Helper()

	dsn := "file:" + filepath.Join(t.TempDir(), "authd_test.db")
	st, err := sqlite.NewStore(dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	require.NoError(t, st.ApplyMigrations())

	tokens, err := jwtx.NewHS256("router-test-secret")
	require.NoError(t, err)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	router := NewRouter(tokens, "test", st, logger)
	router.AuthService = &service.AuthService{
		Store:    st,
		Signer:   tokens,
		TokenTTL: time.Hour,
	}
	router.ApplyRoutes()

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)
	return srv, tokens
}

func doJSON(t *testing.T, method, url, token, body string) (*http.Response, []byte) {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req, err := http.NewRequest(method, url, reader)
	require.NoError(t, err)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.NoError(t, resp.Body.Close())
	return resp, raw
}

func register(t *testing.T, srv *httptest.Server, email, password, fullName string) (*http.Response, []byte) {
	t.Helper()
	body, err := json.Marshal(map[string]string{
		"email":    email,
		"password": password,
		"fullName": fullName,
	})
	require.NoError(t, err)
	return doJSON(t, http.MethodPost, srv.URL+"/auth/register", "", string(body))
}

func login(t *testing.T, srv *httptest.Server, email, password string) (*http.Response, []byte) {
	t.Helper()
	body, err := json.Marshal(map[string]string{"email": email, "password": password})
	require.NoError(t, err)
	return doJSON(t, http.MethodPost, srv.URL+"/auth/login", "", string(body))
}

func TestRegisterLoginProfileWriteFlow(t *testing.T) {
	t.Parallel()

	srv, _ := newTestServer(t)

	// Register
	resp, raw := register(t, srv, "alice@example.com", "a-long-password", "Alice Example")
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var reg registerResponse
	require.NoError(t, json.Unmarshal(raw, &reg))
	require.Equal(t, "User registered successfully", reg.Message)
	require.Equal(t, "alice@example.com", reg.User.Email)
	require.NotEmpty(t, reg.User.ID)

	// Login
	resp, raw = login(t, srv, "alice@example.com", "a-long-password")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var lg loginResponse
	require.NoError(t, json.Unmarshal(raw, &lg))
	require.NotEmpty(t, lg.AccessToken)

	// Profile
	resp, raw = doJSON(t, http.MethodGet, srv.URL+"/auth/profile", lg.AccessToken, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.JSONEq(t, `{
		"id": "`+reg.User.ID+`",
		"email": "alice@example.com",
		"fullName": "Alice Example"
	}`, string(raw), "profile is exactly the public view")

	// Write
	resp, raw = doJSON(t, http.MethodPost, srv.URL+"/auth/write", lg.AccessToken, `{"content":"abc"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var wr writeResponse
	require.NoError(t, json.Unmarshal(raw, &wr))
	require.Equal(t, "Content written successfully", wr.Message)
	require.Equal(t, reg.User.ID, wr.Result.UserID)
	require.Equal(t, 3, wr.Result.ContentLength)
}

func TestRegister_Failures(t *testing.T) {
	t.Parallel()

	srv, _ := newTestServer(t)

	t.Run("weak password", func(t *testing.T) {
		resp, raw := register(t, srv, "weak@example.com", "short77", "Weak")
		require.Equal(t, http.StatusBadRequest, resp.StatusCode)
		require.Contains(t, string(raw), "at least 8 characters")
	})

	t.Run("duplicate email", func(t *testing.T) {
		resp, _ := register(t, srv, "dup@example.com", "first-password", "First")
		require.Equal(t, http.StatusCreated, resp.StatusCode)

		resp, raw := register(t, srv, "dup@example.com", "second-password", "Second")
		require.Equal(t, http.StatusBadRequest, resp.StatusCode)
		require.Contains(t, string(raw), "already exists")
	})

	t.Run("malformed body", func(t *testing.T) {
		resp, _ := doJSON(t, http.MethodPost, srv.URL+"/auth/register", "", `{"email": `)
		require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("invalid email", func(t *testing.T) {
		resp, raw := register(t, srv, "not-an-email", "a-long-password", "Nobody")
		require.Equal(t, http.StatusBadRequest, resp.StatusCode)
		require.Contains(t, string(raw), "email")
	})

	t.Run("missing full name", func(t *testing.T) {
		resp, _ := doJSON(t, http.MethodPost, srv.URL+"/auth/register", "",
			`{"email":"noname@example.com","password":"a-long-password"}`)
		require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}

func TestLogin_InvalidCredentials(t *testing.T) {
	t.Parallel()

	srv, _ := newTestServer(t)

	resp, _ := register(t, srv, "bob@example.com", "bob-password", "Bob")
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	respWrong, rawWrong := login(t, srv, "bob@example.com", "not-bobs-password")
	respUnknown, rawUnknown := login(t, srv, "ghost@example.com", "bob-password")

	require.Equal(t, http.StatusUnauthorized, respWrong.StatusCode)
	require.Equal(t, http.StatusUnauthorized, respUnknown.StatusCode)
	require.JSONEq(t, string(rawWrong), string(rawUnknown),
		"wrong password and unknown email must be indistinguishable")
}

func TestProtectedRoutes_RequireToken(t *testing.T) {
	t.Parallel()

	srv, tokens := newTestServer(t)

	t.Run("no token", func(t *testing.T) {
		resp, _ := doJSON(t, http.MethodGet, srv.URL+"/auth/profile", "", "")
		require.Equal(t, http.StatusUnauthorized, resp.StatusCode)

		resp, _ = doJSON(t, http.MethodPost, srv.URL+"/auth/write", "", `{"content":"abc"}`)
		require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("tampered token", func(t *testing.T) {
		_, _ = register(t, srv, "carol@example.com", "carol-password", "Carol")
		_, raw := login(t, srv, "carol@example.com", "carol-password")

		var lg loginResponse
		require.NoError(t, json.Unmarshal(raw, &lg))

		tampered := lg.AccessToken[:len(lg.AccessToken)-2] + "xx"
		resp, _ := doJSON(t, http.MethodGet, srv.URL+"/auth/profile", tampered, "")
		require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("expired token", func(t *testing.T) {
		expired, err := tokens.Sign(jwtx.NewAccessClaims(
			idx.New().String(), "old@example.com", time.Minute, time.Now().Add(-time.Hour)))
		require.NoError(t, err)

		resp, _ := doJSON(t, http.MethodGet, srv.URL+"/auth/profile", expired, "")
		require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("valid token for vanished subject", func(t *testing.T) {
		orphan, err := tokens.Sign(jwtx.NewAccessClaims(
			idx.New().String(), "gone@example.com", time.Hour, time.Now()))
		require.NoError(t, err)

		resp, raw := doJSON(t, http.MethodPost, srv.URL+"/auth/write", orphan, `{"content":"abc"}`)
		require.Equal(t, http.StatusBadRequest, resp.StatusCode)
		require.Contains(t, string(raw), "User not found")
	})
}

func TestResponses_NeverLeakPasswordHash(t *testing.T) {
	t.Parallel()

	srv, _ := newTestServer(t)

	_, regRaw := register(t, srv, "secret@example.com", "hash-never-leaks", "Secret")
	_, lgRaw := login(t, srv, "secret@example.com", "hash-never-leaks")

	var lg loginResponse
	require.NoError(t, json.Unmarshal(lgRaw, &lg))
	_, profRaw := doJSON(t, http.MethodGet, srv.URL+"/auth/profile", lg.AccessToken, "")

	for _, raw := range [][]byte{regRaw, lgRaw, profRaw} {
		body := string(raw)
		require.NotContains(t, body, "passwordHash")
		require.NotContains(t, body, "password_hash")
		require.NotContains(t, body, "$2a$", "bcrypt hashes must never be serialized")
	}
}
