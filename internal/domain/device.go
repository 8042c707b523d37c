package domain

import "time"

// Device is one installed client of an account, unique per (user_id, device_uuid).
// The cached access/refresh tokens are a convenience for clients listing their
// devices; they are never consulted for authorization.
type Device struct {
	DeviceID     string    `json:"id" dynamodbav:"device_id"`
	UUID         string    `json:"uuid" dynamodbav:"device_uuid"`
	UserID       string    `json:"user_id" dynamodbav:"user_id"`
	IP           string    `json:"device_ip" dynamodbav:"device_ip"`
	Name         string    `json:"device_name" dynamodbav:"device_name"`
	City         string    `json:"location_city" dynamodbav:"location_city"`
	LastOnline   time.Time `json:"last_online" dynamodbav:"last_online"`
	Enable       bool      `json:"is_active" dynamodbav:"enable"`
	AccessToken  string    `json:"-" dynamodbav:"access_token"`
	RefreshToken string    `json:"-" dynamodbav:"refresh_token"`
	CreatedAt    time.Time `json:"created" dynamodbav:"created_at"`
}

// DeviceMetadata is the mutable part of a device record written on every
// token issuance for the same (user, device identity) pair.
type DeviceMetadata struct {
	IP   string
	Name string
	City string
}

// DeviceView is a Device annotated with the "is this my current device" flag.
// Me is computed against the presented token's device claim, never stored.
type DeviceView struct {
	Device
	Me bool `json:"me"`
}
