package sms

import (
	"context"
	"log"
)

// TestModeCode is the fixed well-known code accepted when no SMS credential
// is configured. It is an escape hatch for environments without delivery, not
// a security feature: the production provider is selected whenever a real
// credential exists, which makes this code unreachable there.
const TestModeCode = "123456"

// TestProvider is the no-delivery fallback. It never sends anything; the
// auth service substitutes TestModeCode for the generated code and surfaces
// it in the send response instead.
type TestProvider struct{}

func NewTestProvider() *TestProvider {
	return &TestProvider{}
}

func (p *TestProvider) TestMode() bool { return true }

func (p *TestProvider) SendOTP(ctx context.Context, mobile, code string) error {
	log.Printf("[SMS] test mode: no SMS sent to %s, fixed code %s applies", mobile, TestModeCode)
	return nil
}
