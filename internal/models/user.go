package models

import "time"

// Experience levels a learner can self-report on the lead form
const (
	ExperienceBeginner     = "beginner"
	ExperienceIntermediate = "intermediate"
	ExperienceAdvanced     = "advanced"
)

// Investment range buckets shown on the lead form
const (
	InvestmentRangeUnder50K = "under_50k"
	InvestmentRange50KTo5L  = "50k_to_5l"
	InvestmentRange5LTo25L  = "5l_to_25l"
	InvestmentRangeAbove25L = "above_25l"
)

type User struct {
	ID              int       `json:"id"`
	FullName        string    `json:"full_name"`
	Mobile          string    `json:"mobile"`
	Email           string    `json:"email,omitempty"`
	Experience      string    `json:"experience"`
	InvestmentRange string    `json:"investment_range,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// SendOTPRequest is the lead form payload that starts the login flow
type SendOTPRequest struct {
	FullName        string `json:"full_name" validate:"required,min=2,max=100"`
	Mobile          string `json:"mobile" validate:"required,len=10,numeric"`
	Email           string `json:"email" validate:"omitempty,email"`
	Experience      string `json:"experience" validate:"required,oneof=beginner intermediate advanced"`
	InvestmentRange string `json:"investment_range" validate:"omitempty,oneof=under_50k 50k_to_5l 5l_to_25l above_25l"`
	PendingAction   string `json:"pending_action" validate:"omitempty,max=200"`
}

// ResendOTPRequest re-issues a code for an in-flight login
type ResendOTPRequest struct {
	Mobile string `json:"mobile" validate:"required,len=10,numeric"`
}

// VerifyOTPRequest completes the login flow
type VerifyOTPRequest struct {
	Mobile string `json:"mobile" validate:"required,len=10,numeric"`
	OTP    string `json:"otp" validate:"required,len=6,numeric"`
}

// SendOTPResponse is returned by send-otp and resend-otp. TestOTPHint is only
// populated when the server runs without a real SMS credential.
type SendOTPResponse struct {
	OK          bool   `json:"ok"`
	TestMode    bool   `json:"test_mode,omitempty"`
	TestOTPHint string `json:"test_otp_hint,omitempty"`
}

// AuthResponse is returned after successful OTP verification
type AuthResponse struct {
	SessionToken  string `json:"session_token"`
	User          *User  `json:"user"`
	PendingAction string `json:"pending_action,omitempty"`
}
