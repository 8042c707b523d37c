package domain

// Purpose identifies which flow a verification code was issued for.
// It is an explicit tagged type so a recovery code can never be consumed
// through the registration path (and vice versa) by key-naming accident.
type Purpose string

const (
	PurposeRegistration Purpose = "registration"
	PurposeRecovery     Purpose = "recovery"
)

func (p Purpose) Valid() bool {
	return p == PurposeRegistration || p == PurposeRecovery
}

// VerificationRecord is the transient record behind a pending 6-digit code.
// It lives only in the ephemeral keyed store; its lifetime is the key's TTL.
// At most one live record exists per (purpose, account).
type VerificationRecord struct {
	Purpose   Purpose `json:"purpose"`
	AccountID string  `json:"account_id"`
	Code      string  `json:"code"`
	OriginIP  string  `json:"origin_ip"`
}

type SendCodeRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type VerifyCodeRequest struct {
	Email      string `json:"email" validate:"required,email"`
	Code       string `json:"code" validate:"required,len=6,numeric"`
	DeviceUUID string `json:"device_uuid"`
}

type ResetPasswordRequest struct {
	Token       string `json:"token" validate:"required"`
	NewPassword string `json:"new_password" validate:"required,min=8,max=72"`
}

// ResetCapability is the payload stored under an opaque single-use token
// minted when a recovery code verifies. The token itself is the secret;
// OriginIP is kept for audit logging only.
type ResetCapability struct {
	AccountID string `json:"account_id"`
	OriginIP  string `json:"origin_ip"`
}
