package domain

// TokenPair is the result of a successful authentication. Both tokens carry
// the device identity claim when one was supplied at issuance.
type TokenPair struct {
	AccessToken  string `json:"access"`
	RefreshToken string `json:"refresh"`
}

type LoginRequest struct {
	Email      string `json:"email" validate:"required,email"`
	Password   string `json:"password" validate:"required"`
	DeviceUUID string `json:"device_uuid"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh" validate:"required"`
}
