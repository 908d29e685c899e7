package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"stockgyan-backend/internal/auth"
	"stockgyan-backend/internal/config"
	"stockgyan-backend/internal/models"
	"stockgyan-backend/internal/services"
	"stockgyan-backend/internal/sms"
)

// In-memory stores backing a real AuthService. The handler tests run the
// whole flow in test mode, so the fixed code is the one that verifies.

type memChallenges struct {
	rows   map[string]*models.OtpChallenge
	nextID int
}

func (s *memChallenges) Upsert(_ context.Context, c *models.OtpChallenge) error {
	if prev, ok := s.rows[c.Mobile]; ok {
		c.ID = prev.ID
	} else {
		s.nextID++
		c.ID = s.nextID
	}
	c.Attempts = 0
	c.Consumed = false
	c.CreatedAt = time.Now().Add(-time.Minute) // past the cooldown for repeat sends
	cp := *c
	s.rows[c.Mobile] = &cp
	return nil
}

func (s *memChallenges) GetByMobile(_ context.Context, mobile string) (*models.OtpChallenge, error) {
	c, ok := s.rows[mobile]
	if !ok {
		return nil, nil
	}
	cp := *c
	return &cp, nil
}

func (s *memChallenges) IncrementAttempts(_ context.Context, id int) error {
	for _, c := range s.rows {
		if c.ID == id {
			c.Attempts++
		}
	}
	return nil
}

func (s *memChallenges) MarkConsumed(_ context.Context, id int) error {
	for _, c := range s.rows {
		if c.ID == id {
			c.Consumed = true
		}
	}
	return nil
}

func (s *memChallenges) Delete(_ context.Context, id int) error {
	for mobile, c := range s.rows {
		if c.ID == id {
			delete(s.rows, mobile)
		}
	}
	return nil
}

type memUsers struct {
	byMobile map[string]*models.User
	nextID   int
}

func (s *memUsers) Create(_ context.Context, u *models.User) error {
	s.nextID++
	u.ID = s.nextID
	cp := *u
	s.byMobile[u.Mobile] = &cp
	return nil
}

func (s *memUsers) Get(_ context.Context, id int) (*models.User, error) {
	for _, u := range s.byMobile {
		if u.ID == id {
			cp := *u
			return &cp, nil
		}
	}
	return nil, errors.New("user not found")
}

func (s *memUsers) GetByMobile(_ context.Context, mobile string) (*models.User, error) {
	u, ok := s.byMobile[mobile]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

type memSessions struct {
	rows map[string]*models.Session
}

func (s *memSessions) Create(_ context.Context, sess *models.Session) error {
	sess.CreatedAt = time.Now()
	cp := *sess
	s.rows[sess.ID] = &cp
	return nil
}

func (s *memSessions) Get(_ context.Context, id string) (*models.Session, error) {
	sess, ok := s.rows[id]
	if !ok {
		return nil, nil
	}
	cp := *sess
	return &cp, nil
}

func (s *memSessions) Revoke(_ context.Context, id string) error {
	if sess, ok := s.rows[id]; ok && sess.RevokedAt == nil {
		t := time.Now()
		sess.RevokedAt = &t
	}
	return nil
}

func (s *memSessions) RevokeForUser(_ context.Context, userID int) error {
	for _, sess := range s.rows {
		if sess.UserID == userID && sess.RevokedAt == nil {
			t := time.Now()
			sess.RevokedAt = &t
		}
	}
	return nil
}

func newTestHandler(t *testing.T) *AuthHandler {
	t.Helper()
	cfg := &config.Config{}
	cfg.JWT.Secret = "handler-test-secret"
	cfg.JWT.ExpirationHours = 1
	cfg.JWT.Issuer = "test"
	cfg.OTP.TTLMinutes = 5
	cfg.OTP.CooldownSeconds = 30
	cfg.OTP.MaxAttempts = 5

	svc := services.NewAuthService(
		&memChallenges{rows: map[string]*models.OtpChallenge{}},
		&memUsers{byMobile: map[string]*models.User{}},
		&memSessions{rows: map[string]*models.Session{}},
		sms.NewTestProvider(),
		nil,
		auth.NewJWTManager(cfg),
		cfg,
	)
	return NewAuthHandler(svc)
}

func postJSON(t *testing.T, handler http.HandlerFunc, path string, payload interface{}) *httptest.ResponseRecorder {
	t.Helper()
	body, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	handler(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode response %q: %v", rec.Body.String(), err)
	}
	return out
}

func TestSendOTPTestModeResponse(t *testing.T) {
	h := newTestHandler(t)

	rec := postJSON(t, h.SendOTP, "/auth/send-otp", models.SendOTPRequest{
		FullName:   "Ravi Kumar",
		Mobile:     "9876543210",
		Experience: "beginner",
	})

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	body := decodeBody(t, rec)
	if body["test_mode"] != true {
		t.Errorf("expected test_mode true: %v", body)
	}
	if body["test_otp_hint"] != sms.TestModeCode {
		t.Errorf("expected fixed code hint: %v", body)
	}
}

func TestSendOTPValidationFailure(t *testing.T) {
	h := newTestHandler(t)

	rec := postJSON(t, h.SendOTP, "/auth/send-otp", models.SendOTPRequest{
		FullName:   "Ravi Kumar",
		Mobile:     "12345",
		Experience: "beginner",
	})

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	body := decodeBody(t, rec)
	if body["reason"] != "validation_error" {
		t.Errorf("expected validation_error reason: %v", body)
	}
	fields, ok := body["fields"].(map[string]interface{})
	if !ok || fields["mobile"] == nil {
		t.Errorf("expected mobile field error: %v", body)
	}
}

func TestSendOTPBadJSON(t *testing.T) {
	h := newTestHandler(t)

	req := httptest.NewRequest(http.MethodPost, "/auth/send-otp", bytes.NewReader([]byte("{not json")))
	rec := httptest.NewRecorder()
	h.SendOTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if decodeBody(t, rec)["reason"] != "bad_json" {
		t.Errorf("expected bad_json reason")
	}
}

func TestVerifyOTPEndToEnd(t *testing.T) {
	h := newTestHandler(t)

	if rec := postJSON(t, h.SendOTP, "/auth/send-otp", models.SendOTPRequest{
		FullName: "Ravi Kumar", Mobile: "9876543210", Experience: "beginner",
	}); rec.Code != http.StatusOK {
		t.Fatalf("send-otp: %d", rec.Code)
	}

	rec := postJSON(t, h.VerifyOTP, "/auth/verify-otp", models.VerifyOTPRequest{
		Mobile: "9876543210",
		OTP:    sms.TestModeCode,
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	body := decodeBody(t, rec)
	if body["session_token"] == nil || body["session_token"] == "" {
		t.Errorf("no session token: %v", body)
	}
	user, ok := body["user"].(map[string]interface{})
	if !ok || user["full_name"] != "Ravi Kumar" {
		t.Errorf("user missing from response: %v", body)
	}
}

func TestVerifyOTPErrorStatuses(t *testing.T) {
	h := newTestHandler(t)

	// No challenge yet
	rec := postJSON(t, h.VerifyOTP, "/auth/verify-otp", models.VerifyOTPRequest{
		Mobile: "9876543210", OTP: sms.TestModeCode,
	})
	if rec.Code != http.StatusNotFound {
		t.Errorf("no challenge: expected 404, got %d", rec.Code)
	}
	if decodeBody(t, rec)["reason"] != "challenge_not_found" {
		t.Errorf("expected challenge_not_found reason")
	}

	if rec := postJSON(t, h.SendOTP, "/auth/send-otp", models.SendOTPRequest{
		FullName: "Ravi Kumar", Mobile: "9876543210", Experience: "beginner",
	}); rec.Code != http.StatusOK {
		t.Fatalf("send-otp: %d", rec.Code)
	}

	// Wrong code
	rec = postJSON(t, h.VerifyOTP, "/auth/verify-otp", models.VerifyOTPRequest{
		Mobile: "9876543210", OTP: "999999",
	})
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("wrong code: expected 401, got %d", rec.Code)
	}
	if decodeBody(t, rec)["reason"] != "code_mismatch" {
		t.Errorf("expected code_mismatch reason")
	}

	// Consume, then replay
	if rec := postJSON(t, h.VerifyOTP, "/auth/verify-otp", models.VerifyOTPRequest{
		Mobile: "9876543210", OTP: sms.TestModeCode,
	}); rec.Code != http.StatusOK {
		t.Fatalf("verify: %d", rec.Code)
	}
	rec = postJSON(t, h.VerifyOTP, "/auth/verify-otp", models.VerifyOTPRequest{
		Mobile: "9876543210", OTP: sms.TestModeCode,
	})
	if rec.Code != http.StatusNotFound {
		t.Errorf("replay: expected 404, got %d", rec.Code)
	}
}

func TestResendOTPWithoutChallenge(t *testing.T) {
	h := newTestHandler(t)

	rec := postJSON(t, h.ResendOTP, "/auth/resend-otp", models.ResendOTPRequest{Mobile: "9876543210"})
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestLogoutAlwaysOK(t *testing.T) {
	h := newTestHandler(t)

	req := httptest.NewRequest(http.MethodPost, "/auth/logout", nil)
	req.Header.Set("Authorization", "Bearer garbage")
	rec := httptest.NewRecorder()
	h.Logout(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("expected 200 for logout with bad token, got %d", rec.Code)
	}
}
