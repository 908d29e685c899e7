package models

import "time"

// OtpChallenge is one in-flight login verification. There is exactly one row
// per mobile number: issuing a new code overwrites the row, so the previous
// code stops verifying the moment a new one is issued. The row also carries
// the lead form fields submitted before verification, which become the User
// record on first successful verify.
type OtpChallenge struct {
	ID              int       `json:"id"`
	Mobile          string    `json:"mobile"`
	CodeHash        string    `json:"-"` // bcrypt hash, never exposed
	FullName        string    `json:"full_name"`
	Email           string    `json:"email,omitempty"`
	Experience      string    `json:"experience"`
	InvestmentRange string    `json:"investment_range,omitempty"`
	PendingAction   string    `json:"pending_action,omitempty"`
	Attempts        int       `json:"attempts"`
	Consumed        bool      `json:"consumed"`
	CreatedAt       time.Time `json:"created_at"`
	ExpiresAt       time.Time `json:"expires_at"`
}

// IsExpired reports whether the challenge TTL has passed at the given time
func (c *OtpChallenge) IsExpired(now time.Time) bool {
	return now.After(c.ExpiresAt)
}
