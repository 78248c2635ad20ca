package web

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/finansync/finansync-api/internal/auth"
	"github.com/finansync/finansync-api/internal/config"
	settingctl "github.com/finansync/finansync-api/internal/db/controller/setting"
	"github.com/finansync/finansync-api/internal/db/models"
	"github.com/finansync/finansync-api/internal/dto"
	"github.com/finansync/finansync-api/internal/web/handler"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err, "failed to create test database")

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(models.All()...))

	light, ten := "light", "10"
	_, err = settingctl.Create(db, "theme", models.TypeString, &light)
	require.NoError(t, err)
	_, err = settingctl.Create(db, "maxItems", models.TypeInt32, &ten)
	require.NoError(t, err)

	_, err = auth.NewLocalProvider(db).CreateUser(context.Background(), auth.NewUser{
		UserName: "jane",
		Email:    "jane@example.com",
		Password: "s3cret",
	})
	require.NoError(t, err)

	return db
}

func newTestConfig() *config.Config {
	return &config.Config{
		Title: "finansync-test",
		Webserver: config.Webserver{
			URL:  "http://localhost",
			Port: 8080,
		},
		Authentication: config.Authentication{
			Bearer: config.JwtBearer{
				TokenSecret:            "a-test-secret-of-reasonable-length",
				TokenExpirationMinutes: 5,
				Issuer:                 "finansync",
				Audience:               "finansync-clients",
			},
		},
	}
}

func newTestService(t *testing.T) (*Service, *gorm.DB) {
	t.Helper()

	db := setupTestDB(t)

	s, err := New(newTestConfig(), db)
	require.NoError(t, err)

	return s, db
}

type response struct {
	status      int
	contentType string
	body        []byte
}

func (r response) decode(t *testing.T, out any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(r.body, out), string(r.body))
}

func call(t *testing.T, s *Service, method, path, token string, body any) response {
	t.Helper()

	var reader io.Reader

	switch b := body.(type) {
	case nil:
	case string:
		reader = bytes.NewBufferString(b)
	default:
		raw, err := json.Marshal(b)
		require.NoError(t, err)

		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := s.App.Test(req, -1)
	require.NoError(t, err)

	defer func() {
		_ = resp.Body.Close()
	}()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	return response{status: resp.StatusCode, contentType: resp.Header.Get("Content-Type"), body: raw}
}

func loginAs(t *testing.T, s *Service) string {
	t.Helper()

	resp := call(t, s, http.MethodPost, "/auth/token", "", dto.AuthenticationRequest{UserName: "jane", Password: "s3cret"})
	require.Equal(t, http.StatusOK, resp.status, string(resp.body))

	var out dto.AuthenticationResponse
	resp.decode(t, &out)
	require.NotEmpty(t, out.BearerToken)
	require.NotNil(t, out.TokenExpirationTime)

	return out.BearerToken
}

func settingValues(settings []dto.SettingResponse) map[string]string {
	out := make(map[string]string, len(settings))
	for _, s := range settings {
		out[s.Name] = s.Value
	}

	return out
}

func TestNewRequiresConfigAndDB(t *testing.T) {
	_, err := New(nil, nil)
	require.Error(t, err)

	_, err = New(newTestConfig(), nil)
	require.Error(t, err)

	cfg := newTestConfig()
	cfg.Authentication.Bearer.TokenSecret = ""

	_, err = New(cfg, setupTestDB(t))
	require.ErrorIs(t, err, config.ErrEmptyTokenSecret)
}

func TestCheckAliveAndMetrics(t *testing.T) {
	s, _ := newTestService(t)

	resp := call(t, s, http.MethodGet, CheckAlivePath, "", nil)
	assert.Equal(t, http.StatusOK, resp.status)
	assert.True(t, s.Alive())

	s.alive.Store(false)

	resp = call(t, s, http.MethodGet, CheckAlivePath, "", nil)
	assert.Equal(t, http.StatusServiceUnavailable, resp.status)

	resp = call(t, s, http.MethodGet, MetricsPath, "", nil)
	assert.Equal(t, http.StatusOK, resp.status)
	assert.Contains(t, string(resp.body), "go_goroutines")
}

func TestLogin(t *testing.T) {
	s, _ := newTestService(t)

	tests := []struct {
		name   string
		body   any
		status int
	}{
		{name: "wrong password", body: dto.AuthenticationRequest{UserName: "jane", Password: "nope"}, status: http.StatusUnauthorized},
		{name: "unknown user", body: dto.AuthenticationRequest{UserName: "john", Password: "s3cret"}, status: http.StatusUnauthorized},
		{name: "missing password", body: dto.AuthenticationRequest{UserName: "jane"}, status: http.StatusBadRequest},
		{name: "broken body", body: "{", status: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := call(t, s, http.MethodPost, "/auth/token", "", tt.body)
			assert.Equal(t, tt.status, resp.status)
			assert.Equal(t, handler.ProblemContentType, resp.contentType)
		})
	}

	assert.NotEmpty(t, loginAs(t, s))
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	s, _ := newTestService(t)

	for _, path := range []string{"/user", "/user/authorization-status", "/user/settings", "/accounts", "/transactions"} {
		t.Run(path, func(t *testing.T) {
			resp := call(t, s, http.MethodGet, path, "", nil)
			assert.Equal(t, http.StatusUnauthorized, resp.status)

			resp = call(t, s, http.MethodGet, path, "not-a-token", nil)
			assert.Equal(t, http.StatusUnauthorized, resp.status)
		})
	}
}

func TestUserProfile(t *testing.T) {
	s, db := newTestService(t)
	token := loginAs(t, s)

	resp := call(t, s, http.MethodGet, "/user/authorization-status", token, nil)
	assert.Equal(t, http.StatusOK, resp.status)

	resp = call(t, s, http.MethodGet, "/user", token, nil)
	require.Equal(t, http.StatusOK, resp.status)

	var profile dto.UserResponse
	resp.decode(t, &profile)
	assert.Equal(t, "jane@example.com", profile.Email)
	assert.Empty(t, profile.Settings)

	require.NoError(t, db.Where("user_name = ?", "jane").Delete(&models.AppUser{}).Error)

	resp = call(t, s, http.MethodGet, "/user/authorization-status", token, nil)
	assert.Equal(t, http.StatusNotFound, resp.status)

	resp = call(t, s, http.MethodGet, "/user", token, nil)
	assert.Equal(t, http.StatusNotFound, resp.status)

	// settings of a vanished user are a server error
	resp = call(t, s, http.MethodGet, "/user/settings", token, nil)
	assert.Equal(t, http.StatusInternalServerError, resp.status)
}

func TestUserSettings(t *testing.T) {
	s, _ := newTestService(t)
	token := loginAs(t, s)

	resp := call(t, s, http.MethodGet, "/user/settings", token, nil)
	require.Equal(t, http.StatusOK, resp.status)

	var all []dto.SettingResponse
	resp.decode(t, &all)
	assert.Equal(t, map[string]string{"theme": "light", "maxItems": "10"}, settingValues(all))

	resp = call(t, s, http.MethodPost, "/user/settings/set", token, []dto.SettingRequest{{Name: "theme", Value: "dark"}})
	require.Equal(t, http.StatusOK, resp.status, string(resp.body))

	var set []dto.SettingResponse
	resp.decode(t, &set)
	assert.Equal(t, map[string]string{"theme": "dark", "maxItems": "10"}, settingValues(set))

	resp = call(t, s, http.MethodPost, "/user/settings/set", token, []dto.SettingRequest{{Name: "maxItems", Value: "abc"}})
	require.Equal(t, http.StatusBadRequest, resp.status)
	assert.Equal(t, handler.ProblemContentType, resp.contentType)

	var problem dto.Problem
	resp.decode(t, &problem)
	assert.Equal(t, map[string][]string{"maxItems": {"Invalid value type."}}, problem.Errors)

	resp = call(t, s, http.MethodPost, "/user/settings/set", token, []dto.SettingRequest{{Name: "", Value: "x"}})
	require.Equal(t, http.StatusBadRequest, resp.status)

	problem = dto.Problem{}
	resp.decode(t, &problem)
	assert.Contains(t, problem.Errors, "[0].name")

	resp = call(t, s, http.MethodPost, "/user/settings/reset", token, nil)
	require.Equal(t, http.StatusOK, resp.status)

	var reset []dto.SettingResponse
	resp.decode(t, &reset)
	assert.Equal(t, map[string]string{"theme": "light", "maxItems": "10"}, settingValues(reset))
}

func TestAccountsAndTransactions(t *testing.T) {
	s, _ := newTestService(t)
	token := loginAs(t, s)

	resp := call(t, s, http.MethodPost, AccountsPath, token, map[string]any{
		"name": "Checking", "currency": "eur", "balance": "10.50",
	})
	require.Equal(t, http.StatusBadRequest, resp.status)

	var problem dto.Problem
	resp.decode(t, &problem)
	assert.Contains(t, problem.Errors, "currency")

	resp = call(t, s, http.MethodPost, AccountsPath, token, map[string]any{
		"name": "Checking", "currency": "EUR", "balance": "10.50",
	})
	require.Equal(t, http.StatusCreated, resp.status, string(resp.body))

	var created dto.AccountResponse
	resp.decode(t, &created)
	require.NotEmpty(t, created.ID)
	assert.Equal(t, "10.5", created.Balance.String())

	accountPath := AccountsPath + "/" + created.ID

	resp = call(t, s, http.MethodPost, AccountsPath, token, map[string]any{"name": "Checking", "currency": "EUR"})
	require.Equal(t, http.StatusBadRequest, resp.status)

	resp = call(t, s, http.MethodPatch, accountPath, token, `{"name":"Savings"}`)
	require.Equal(t, http.StatusOK, resp.status, string(resp.body))

	var patched dto.AccountResponse
	resp.decode(t, &patched)
	assert.Equal(t, "Savings", patched.Name)
	assert.Equal(t, "EUR", patched.Currency)

	resp = call(t, s, http.MethodPatch, accountPath, token, `{"name":`)
	assert.Equal(t, http.StatusBadRequest, resp.status)

	resp = call(t, s, http.MethodPut, accountPath, token, map[string]any{"name": "Main", "currency": "USD", "balance": "1"})
	require.Equal(t, http.StatusOK, resp.status, string(resp.body))

	resp = call(t, s, http.MethodPost, TransactionsPath, token, map[string]any{
		"accountId": created.ID, "amount": "-4.20", "occurredAt": "2026-01-02T10:00:00Z",
	})
	require.Equal(t, http.StatusCreated, resp.status, string(resp.body))

	resp = call(t, s, http.MethodPost, TransactionsPath, token, map[string]any{
		"accountId": "missing", "amount": "1", "occurredAt": "2026-01-02T10:00:00Z",
	})
	require.Equal(t, http.StatusBadRequest, resp.status)

	resp = call(t, s, http.MethodGet, TransactionsPath, token, nil)
	require.Equal(t, http.StatusOK, resp.status)

	var transactions []dto.TransactionResponse
	resp.decode(t, &transactions)
	require.Len(t, transactions, 1)
	assert.Equal(t, "-4.2", transactions[0].Amount.String())

	resp = call(t, s, http.MethodGet, AccountsPath, token, nil)
	require.Equal(t, http.StatusOK, resp.status)

	var accounts []dto.AccountResponse
	resp.decode(t, &accounts)
	require.Len(t, accounts, 1)
	assert.Equal(t, "Main", accounts[0].Name)

	resp = call(t, s, http.MethodDelete, accountPath, token, nil)
	assert.Equal(t, http.StatusNoContent, resp.status)

	resp = call(t, s, http.MethodDelete, accountPath, token, nil)
	assert.Equal(t, http.StatusNotFound, resp.status)

	resp = call(t, s, http.MethodGet, accountPath, token, nil)
	assert.Equal(t, http.StatusNotFound, resp.status)

	// the transaction went with its account
	resp = call(t, s, http.MethodGet, TransactionsPath, token, nil)
	require.Equal(t, http.StatusOK, resp.status)
	assert.JSONEq(t, "[]", string(resp.body))
}
