package userhttp_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	registrationapp "github.com/ossm-org/orchid-accounts/internal/application/registration"
	verificationapp "github.com/ossm-org/orchid-accounts/internal/application/verification"
	"github.com/ossm-org/orchid-accounts/internal/domain/verification"
	httpport "github.com/ossm-org/orchid-accounts/internal/ports/http"
	"github.com/ossm-org/orchid-accounts/pkg/env"
	"github.com/ossm-org/orchid-accounts/tests/mocks"
)

func TestMain(m *testing.M) {
	env.SetMode(env.Test)
	os.Exit(m.Run())
}

type HTTPSuite struct {
	Handler       http.Handler
	Verifications *mocks.VerificationRepo
	Users         *mocks.UserRepo
	MailSender    *mocks.MailSender
}

func setupHTTPSuite(t *testing.T) *HTTPSuite {
	t.Helper()

	verifications := mocks.NewVerificationRepo()
	users := mocks.NewUserRepo(verifications)
	mailsender := mocks.NewMailSender()

	verificationApp := verificationapp.NewApp(verificationapp.Args{
		Repo:       verifications,
		MailSender: mailsender,
		CodeGetter: verifications,
	})
	registrationApp := registrationapp.NewApp(registrationapp.Args{
		UserRepo:   users,
		UserGetter: users,
		Hasher:     mocks.NewHasher(),
	})

	port := httpport.NewPort(httpport.Args{
		VerificationApp: verificationApp,
		RegistrationApp: registrationApp,
	})

	return &HTTPSuite{
		Handler:       port.Route(nil),
		Verifications: verifications,
		Users:         users,
		MailSender:    mailsender,
	}
}

func (s *HTTPSuite) do(t *testing.T, method, target string, body any, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	rec := httptest.NewRecorder()
	s.Handler.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	var got map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	return got
}

func TestRequestVerificationCode(t *testing.T) {
	t.Parallel()

	t.Run("json body", func(t *testing.T) {
		t.Parallel()
		s := setupHTTPSuite(t)

		rec := s.do(t, http.MethodPost, "/user/veriCode", map[string]any{"email": "Recipient@Example.com"}, nil)

		require.Equal(t, http.StatusOK, rec.Code)
		body := decodeBody(t, rec)
		assert.EqualValues(t, 1, body["code"])
		assert.Equal(t, "verification code sent", body["data"])

		v := s.Verifications.RequireVerificationByEmail(t, "recipient@example.com")
		s.MailSender.AssertMailSent(t, "recipient@example.com", "Verification Code")
		assert.Len(t, v.Code(), verification.CodeLength)
	})

	t.Run("query parameter fallback", func(t *testing.T) {
		t.Parallel()
		s := setupHTTPSuite(t)

		rec := s.do(t, http.MethodPost, "/user/veriCode?email=legacy@example.com", nil, nil)

		require.Equal(t, http.StatusOK, rec.Code)
		s.Verifications.RequireVerificationByEmail(t, "legacy@example.com")
	})

	t.Run("invalid email", func(t *testing.T) {
		t.Parallel()
		s := setupHTTPSuite(t)

		rec := s.do(t, http.MethodPost, "/user/veriCode", map[string]any{"email": "not-an-email"}, nil)

		require.Equal(t, http.StatusBadRequest, rec.Code)
		body := decodeBody(t, rec)
		assert.EqualValues(t, 0, body["code"])
		assert.NotEmpty(t, body["msg"])
		s.MailSender.AssertNothingSent(t)
	})

	t.Run("resend cooldown", func(t *testing.T) {
		t.Parallel()
		s := setupHTTPSuite(t)

		rec := s.do(t, http.MethodPost, "/user/veriCode", map[string]any{"email": "hasty@example.com"}, nil)
		require.Equal(t, http.StatusOK, rec.Code)

		rec = s.do(t, http.MethodPost, "/user/veriCode", map[string]any{"email": "hasty@example.com"}, nil)

		require.Equal(t, http.StatusTooManyRequests, rec.Code)
		assert.Equal(t, "60", rec.Header().Get("Retry-After"))
		body := decodeBody(t, rec)
		assert.EqualValues(t, 0, body["code"])
		assert.Contains(t, body["msg"], "60")
	})

	t.Run("malformed json", func(t *testing.T) {
		t.Parallel()
		s := setupHTTPSuite(t)

		req := httptest.NewRequest(http.MethodPost, "/user/veriCode", bytes.NewBufferString("{"))
		rec := httptest.NewRecorder()
		s.Handler.ServeHTTP(rec, req)

		require.Equal(t, http.StatusBadRequest, rec.Code)
		body := decodeBody(t, rec)
		assert.Equal(t, "request body contains malformed JSON", body["msg"])
	})
}

func TestRegister(t *testing.T) {
	t.Parallel()

	const password = "Sup3r$ecret"

	issueCode := func(t *testing.T, s *HTTPSuite, email string) string {
		t.Helper()
		v, err := verification.New(email)
		require.NoError(t, err)
		s.Verifications.SeedVerification(t, v)
		return v.Code()
	}

	t.Run("happy path", func(t *testing.T) {
		t.Parallel()
		s := setupHTTPSuite(t)
		code := issueCode(t, s, "newcomer@example.com")

		rec := s.do(t, http.MethodPost, "/user/register", map[string]any{
			"account": "newcomer",
			"email":   "newcomer@example.com",
			"passwd":  password,
			"code":    code,
		}, nil)

		require.Equal(t, http.StatusOK, rec.Code)
		body := decodeBody(t, rec)
		assert.EqualValues(t, 1, body["success"])
		data, ok := body["data"].(map[string]any)
		require.True(t, ok)
		assert.Equal(t, "newcomer", data["account"])
		assert.Equal(t, "newcomer@example.com", data["email"])

		s.Users.RequireUserByAccount(t, "newcomer")
	})

	t.Run("wrong code is rejected", func(t *testing.T) {
		t.Parallel()
		s := setupHTTPSuite(t)
		issueCode(t, s, "cautious@example.com")

		rec := s.do(t, http.MethodPost, "/user/register", map[string]any{
			"account": "cautious",
			"email":   "cautious@example.com",
			"passwd":  password,
			"code":    "WRONG1",
		}, nil)

		require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
		body := decodeBody(t, rec)
		assert.EqualValues(t, 0, body["code"])
		assert.Equal(t, "invalid or expired verification code", body["msg"])
		s.Users.AssertNoUserByAccount(t, "cautious")
	})

	t.Run("rejection message localizes to chinese", func(t *testing.T) {
		t.Parallel()
		s := setupHTTPSuite(t)
		issueCode(t, s, "locale@example.com")

		rec := s.do(t, http.MethodPost, "/user/register", map[string]any{
			"account": "localized",
			"email":   "locale@example.com",
			"passwd":  password,
			"code":    "WRONG1",
		}, map[string]string{"Accept-Language": "zh-CN"})

		require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
		body := decodeBody(t, rec)
		assert.Equal(t, "验证码无效或已过期", body["msg"])
	})

	t.Run("account already taken", func(t *testing.T) {
		t.Parallel()
		s := setupHTTPSuite(t)

		code := issueCode(t, s, "first@example.com")
		rec := s.do(t, http.MethodPost, "/user/register", map[string]any{
			"account": "sameaccount",
			"email":   "first@example.com",
			"passwd":  password,
			"code":    code,
		}, nil)
		require.Equal(t, http.StatusOK, rec.Code)

		code = issueCode(t, s, "second@example.com")
		rec = s.do(t, http.MethodPost, "/user/register", map[string]any{
			"account": "sameaccount",
			"email":   "second@example.com",
			"passwd":  password,
			"code":    code,
		}, nil)

		require.Equal(t, http.StatusConflict, rec.Code)
		body := decodeBody(t, rec)
		assert.EqualValues(t, 0, body["code"])
		assert.Contains(t, body["msg"], "account")
	})

	t.Run("weak password", func(t *testing.T) {
		t.Parallel()
		s := setupHTTPSuite(t)
		code := issueCode(t, s, "weak@example.com")

		rec := s.do(t, http.MethodPost, "/user/register", map[string]any{
			"account": "weakling",
			"email":   "weak@example.com",
			"passwd":  "password",
			"code":    code,
		}, nil)

		require.Equal(t, http.StatusBadRequest, rec.Code)
		body := decodeBody(t, rec)
		assert.Contains(t, body["msg"], "passwd")
		s.Users.AssertNoUserByAccount(t, "weakling")
	})

	t.Run("unknown field in body", func(t *testing.T) {
		t.Parallel()
		s := setupHTTPSuite(t)

		rec := s.do(t, http.MethodPost, "/user/register", map[string]any{
			"account":  "strict",
			"email":    "strict@example.com",
			"passwd":   password,
			"code":     "ABC123",
			"nickname": "sneaky",
		}, nil)

		require.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestRouterFallbacks(t *testing.T) {
	t.Parallel()

	t.Run("unknown route", func(t *testing.T) {
		t.Parallel()
		s := setupHTTPSuite(t)

		rec := s.do(t, http.MethodGet, "/user/profile", nil, nil)

		require.Equal(t, http.StatusNotFound, rec.Code)
		body := decodeBody(t, rec)
		assert.EqualValues(t, 0, body["code"])
		assert.Equal(t, "resource not found", body["msg"])
	})

	t.Run("wrong method", func(t *testing.T) {
		t.Parallel()
		s := setupHTTPSuite(t)

		rec := s.do(t, http.MethodGet, "/user/register", nil, nil)

		require.Equal(t, http.StatusMethodNotAllowed, rec.Code)
		body := decodeBody(t, rec)
		assert.EqualValues(t, 0, body["code"])
		assert.Equal(t, "method not allowed", body["msg"])
	})

	t.Run("wrong method localizes", func(t *testing.T) {
		t.Parallel()
		s := setupHTTPSuite(t)

		rec := s.do(t, http.MethodDelete, "/user/veriCode", nil, map[string]string{"Accept-Language": "zh-CN"})

		require.Equal(t, http.StatusMethodNotAllowed, rec.Code)
		body := decodeBody(t, rec)
		assert.Equal(t, "请求方法不允许", body["msg"])
	})
}

func TestGetVerificationCode_DevRoute(t *testing.T) {
	t.Parallel()
	s := setupHTTPSuite(t)

	v, err := verification.New("peek@example.com")
	require.NoError(t, err)
	s.Verifications.SeedVerification(t, v)

	rec := s.do(t, http.MethodGet, fmt.Sprintf("/dev/user/veriCode/%s", "peek@example.com"), nil, nil)

	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	data, ok := body["data"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, v.Code(), data["verification_code"])
}
