package services

import (
	"context"
	"crypto/rand"
	"fmt"
	"log"
	"math/big"
	"time"

	"github.com/google/uuid"

	"stockgyan-backend/internal/auth"
	"stockgyan-backend/internal/config"
	"stockgyan-backend/internal/models"
	"stockgyan-backend/internal/sms"
	"stockgyan-backend/internal/timeutil"
)

// ChallengeStore is the persistence surface the auth flow needs for OTP
// challenges. Upsert must atomically supersede any previous challenge for
// the same mobile number.
type ChallengeStore interface {
	Upsert(ctx context.Context, c *models.OtpChallenge) error
	GetByMobile(ctx context.Context, mobile string) (*models.OtpChallenge, error)
	IncrementAttempts(ctx context.Context, id int) error
	MarkConsumed(ctx context.Context, id int) error
	Delete(ctx context.Context, id int) error
}

type UserStore interface {
	Create(ctx context.Context, u *models.User) error
	Get(ctx context.Context, id int) (*models.User, error)
	GetByMobile(ctx context.Context, mobile string) (*models.User, error)
}

type SessionStore interface {
	Create(ctx context.Context, s *models.Session) error
	Get(ctx context.Context, id string) (*models.Session, error)
	Revoke(ctx context.Context, id string) error
	RevokeForUser(ctx context.Context, userID int) error
}

// AuthService runs the OTP login flow: lead form submission issues a
// challenge and delivers a code, verification consumes the challenge and
// opens a session. One mobile number has at most one live challenge and one
// active session at any time.
type AuthService struct {
	challenges ChallengeStore
	users      UserStore
	sessions   SessionStore
	delivery   sms.Provider
	limiter    OTPRateLimiter
	jwt        *auth.JWTManager

	ttl         time.Duration
	cooldown    time.Duration
	maxAttempts int

	now func() time.Time
}

func NewAuthService(
	challenges ChallengeStore,
	users UserStore,
	sessions SessionStore,
	delivery sms.Provider,
	limiter OTPRateLimiter,
	jwtManager *auth.JWTManager,
	cfg *config.Config,
) *AuthService {
	return &AuthService{
		challenges:  challenges,
		users:       users,
		sessions:    sessions,
		delivery:    delivery,
		limiter:     limiter,
		jwt:         jwtManager,
		ttl:         time.Duration(cfg.OTP.TTLMinutes) * time.Minute,
		cooldown:    time.Duration(cfg.OTP.CooldownSeconds) * time.Second,
		maxAttempts: cfg.OTP.MaxAttempts,
		now:         timeutil.Now,
	}
}

// SubmitLead starts a login: it records the lead form fields on a fresh
// challenge, delivers a code and returns. If delivery fails the challenge is
// rolled back so no unusable code lingers.
func (s *AuthService) SubmitLead(ctx context.Context, req *models.SendOTPRequest) (*models.SendOTPResponse, error) {
	if ve := validatePayload(req); ve != nil {
		return nil, ve
	}

	challenge := &models.OtpChallenge{
		Mobile:          req.Mobile,
		FullName:        req.FullName,
		Email:           req.Email,
		Experience:      req.Experience,
		InvestmentRange: req.InvestmentRange,
		PendingAction:   req.PendingAction,
	}
	return s.issue(ctx, challenge)
}

// ResendOTP re-issues a code for an in-flight login, reusing the lead fields
// already on file. A number with no prior challenge cannot resend.
func (s *AuthService) ResendOTP(ctx context.Context, req *models.ResendOTPRequest) (*models.SendOTPResponse, error) {
	if ve := validatePayload(req); ve != nil {
		return nil, ve
	}

	existing, err := s.challenges.GetByMobile(ctx, req.Mobile)
	if err != nil {
		return nil, fmt.Errorf("loading challenge: %w", err)
	}
	if existing == nil {
		return nil, ErrChallengeNotFound
	}

	challenge := &models.OtpChallenge{
		Mobile:          existing.Mobile,
		FullName:        existing.FullName,
		Email:           existing.Email,
		Experience:      existing.Experience,
		InvestmentRange: existing.InvestmentRange,
		PendingAction:   existing.PendingAction,
	}
	return s.issue(ctx, challenge)
}

// issue generates a code, persists the challenge (superseding any previous
// one for the number) and hands the code to the delivery provider.
func (s *AuthService) issue(ctx context.Context, challenge *models.OtpChallenge) (*models.SendOTPResponse, error) {
	now := s.now()

	existing, err := s.challenges.GetByMobile(ctx, challenge.Mobile)
	if err != nil {
		return nil, fmt.Errorf("loading challenge: %w", err)
	}
	if existing != nil && now.Sub(existing.CreatedAt) < s.cooldown {
		return nil, ErrRateLimited
	}
	if s.limiter != nil && !s.limiter.Allow(challenge.Mobile) {
		return nil, ErrRateLimited
	}

	code, err := s.generateCode()
	if err != nil {
		return nil, fmt.Errorf("generating code: %w", err)
	}

	hash, err := auth.HashOTP(code)
	if err != nil {
		return nil, fmt.Errorf("hashing code: %w", err)
	}
	challenge.CodeHash = hash
	challenge.ExpiresAt = now.Add(s.ttl)

	if err := s.challenges.Upsert(ctx, challenge); err != nil {
		return nil, fmt.Errorf("storing challenge: %w", err)
	}

	sendCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := s.delivery.SendOTP(sendCtx, challenge.Mobile, code); err != nil {
		// Roll back so no challenge the user never received stays active
		if delErr := s.challenges.Delete(ctx, challenge.ID); delErr != nil {
			log.Printf("[AuthService] failed to roll back challenge %d after delivery error: %v", challenge.ID, delErr)
		}
		return nil, fmt.Errorf("%w: %v", ErrDelivery, err)
	}

	resp := &models.SendOTPResponse{OK: true}
	if s.delivery.TestMode() {
		resp.TestMode = true
		resp.TestOTPHint = sms.TestModeCode
	}
	return resp, nil
}

// generateCode produces the 6-digit code to deliver. Without a real delivery
// provider the fixed well-known code is used instead, so hitting a real SMS
// gateway and accepting the fixed code can never both happen in one process.
func (s *AuthService) generateCode() (string, error) {
	if s.delivery.TestMode() {
		return sms.TestModeCode, nil
	}
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}

// VerifyOTP completes a login. On the first successful verification for a
// number it creates the user from the lead fields stored on the challenge;
// for an already registered number the stored profile wins and the challenge
// fields are ignored. Any previous session for the user is revoked before
// the new one is created.
func (s *AuthService) VerifyOTP(ctx context.Context, req *models.VerifyOTPRequest) (*models.AuthResponse, error) {
	if ve := validatePayload(req); ve != nil {
		return nil, ve
	}

	challenge, err := s.challenges.GetByMobile(ctx, req.Mobile)
	if err != nil {
		return nil, fmt.Errorf("loading challenge: %w", err)
	}
	if challenge == nil || challenge.Consumed {
		return nil, ErrChallengeNotFound
	}
	if challenge.IsExpired(s.now()) {
		return nil, ErrChallengeExpired
	}
	if challenge.Attempts >= s.maxAttempts {
		return nil, ErrRateLimited
	}

	// Count the attempt before checking the code, so a client hammering
	// wrong codes burns through the cap even on races
	if err := s.challenges.IncrementAttempts(ctx, challenge.ID); err != nil {
		return nil, fmt.Errorf("recording attempt: %w", err)
	}

	if !auth.VerifyOTP(challenge.CodeHash, req.OTP) {
		return nil, ErrCodeMismatch
	}

	if err := s.challenges.MarkConsumed(ctx, challenge.ID); err != nil {
		return nil, fmt.Errorf("consuming challenge: %w", err)
	}

	user, err := s.users.GetByMobile(ctx, req.Mobile)
	if err != nil {
		return nil, fmt.Errorf("loading user: %w", err)
	}
	if user == nil {
		user = &models.User{
			FullName:        challenge.FullName,
			Mobile:          challenge.Mobile,
			Email:           challenge.Email,
			Experience:      challenge.Experience,
			InvestmentRange: challenge.InvestmentRange,
		}
		if err := s.users.Create(ctx, user); err != nil {
			return nil, fmt.Errorf("creating user: %w", err)
		}
		log.Printf("[AuthService] registered user %d (mobile %s)", user.ID, user.Mobile)
	}

	if err := s.sessions.RevokeForUser(ctx, user.ID); err != nil {
		return nil, fmt.Errorf("revoking previous sessions: %w", err)
	}
	session := &models.Session{
		ID:     uuid.NewString(),
		UserID: user.ID,
	}
	if err := s.sessions.Create(ctx, session); err != nil {
		return nil, fmt.Errorf("creating session: %w", err)
	}

	token, err := s.jwt.GenerateToken(user, session.ID)
	if err != nil {
		return nil, fmt.Errorf("signing token: %w", err)
	}

	return &models.AuthResponse{
		SessionToken:  token,
		User:          user,
		PendingAction: challenge.PendingAction,
	}, nil
}

// Logout revokes the session behind a token. An invalid or already revoked
// token is not an error: the end state the client wants is "logged out" and
// that is what it has.
func (s *AuthService) Logout(ctx context.Context, token string) error {
	claims, err := s.jwt.ValidateToken(token)
	if err != nil {
		return nil
	}
	return s.sessions.Revoke(ctx, claims.SessionID)
}

// ResolveSession validates a token and returns the user behind it, or an
// error when the token is bad, the session was revoked, or the user is gone.
func (s *AuthService) ResolveSession(ctx context.Context, token string) (*models.User, *auth.Claims, error) {
	claims, err := s.jwt.ValidateToken(token)
	if err != nil {
		return nil, nil, err
	}

	session, err := s.sessions.Get(ctx, claims.SessionID)
	if err != nil {
		return nil, nil, fmt.Errorf("loading session: %w", err)
	}
	if session == nil || !session.Active() {
		return nil, nil, fmt.Errorf("session revoked or unknown")
	}

	user, err := s.users.Get(ctx, session.UserID)
	if err != nil {
		return nil, nil, fmt.Errorf("loading user: %w", err)
	}
	return user, claims, nil
}
