package domain

import "time"

type User struct {
	UserID          string     `json:"id" dynamodbav:"user_id"`
	Email           string     `json:"email" dynamodbav:"email"`
	Phone           *string    `json:"phone" dynamodbav:"phone"`
	PasswordHash    string     `json:"-" dynamodbav:"password_hash"`
	FirstName       string     `json:"first_name" dynamodbav:"first_name"`
	LastName        string     `json:"last_name" dynamodbav:"last_name"`
	Birthday        *time.Time `json:"birthday,omitempty" dynamodbav:"birthday"`
	IsActive        bool       `json:"is_active" dynamodbav:"is_active"`
	Notification    bool       `json:"notification" dynamodbav:"notification"`
	PromoNotif      bool       `json:"promotional_notification" dynamodbav:"promotional_notification"`
	ProfilePhotoKey string     `json:"-" dynamodbav:"profile_photo_key"`
	ProfilePhotoURL string     `json:"profile_photo,omitempty" dynamodbav:"-"`
	Enable          bool       `json:"-" dynamodbav:"enable"`
	CreatedAt       time.Time  `json:"created" dynamodbav:"created_at"`
	UpdatedAt       time.Time  `json:"updated" dynamodbav:"updated_at"`
}

type CreateUserRequest struct {
	Email     string  `json:"email" validate:"required,email"`
	Password  string  `json:"password" validate:"required,min=8,max=72"`
	FirstName string  `json:"first_name" validate:"required"`
	LastName  string  `json:"last_name" validate:"required"`
	Phone     *string `json:"phone" validate:"omitempty,e164"`
	Birthday  string  `json:"birthday"` // expected format: YYYY-MM-DD
}

type UpdateUserRequest struct {
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
	Phone     *string `json:"phone" validate:"omitempty,e164"`
	Birthday  *string `json:"birthday"` // expected format: YYYY-MM-DD
}

// NotificationSettingsRequest is a partial update: nil fields are untouched.
type NotificationSettingsRequest struct {
	Notification *bool `json:"notification"`
	PromoNotif   *bool `json:"promotional_notification"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password" validate:"required,min=8,max=72"`
}
