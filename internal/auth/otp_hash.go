package auth

import "golang.org/x/crypto/bcrypt"

// bcryptCost of 8 keeps verify latency around 25ms, which is acceptable for a
// 6-digit code that is also capped by attempts and a 5-minute TTL.
const bcryptCost = 8

// HashOTP hashes a one-time code for at-rest storage
func HashOTP(code string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(code), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// VerifyOTP checks a submitted code against the stored hash
func VerifyOTP(codeHash, code string) bool {
	return bcrypt.CompareHashAndPassword([]byte(codeHash), []byte(code)) == nil
}
