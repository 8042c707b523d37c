package domain

import "time"

type Card struct {
	CardID      string    `json:"id" dynamodbav:"card_id"`
	UserID      string    `json:"user_id" dynamodbav:"user_id"`
	Name        string    `json:"name" dynamodbav:"name"` // display name ("My card", "Work card")
	Number      string    `json:"-" dynamodbav:"card_number"`
	HolderName  string    `json:"card_name" dynamodbav:"card_name"`
	Expiry      string    `json:"card_expiry_date" dynamodbav:"card_expiry_date"` // MM/YY
	PhoneNumber string    `json:"phone_number" dynamodbav:"phone_number"`
	Default     bool      `json:"default" dynamodbav:"is_default"`
	CreatedAt   time.Time `json:"created" dynamodbav:"created_at"`
	UpdatedAt   time.Time `json:"updated" dynamodbav:"updated_at"`
}

// MaskedNumber renders the card number as "8600 **** **** 9012".
func (c Card) MaskedNumber() string {
	if len(c.Number) < 8 {
		return c.Number
	}
	return c.Number[:4] + " **** **** " + c.Number[len(c.Number)-4:]
}

type CreateCardRequest struct {
	Name        string `json:"name"`
	Number      string `json:"card_number" validate:"required,numeric,min=16,max=19"`
	HolderName  string `json:"card_name" validate:"required"`
	Expiry      string `json:"card_expiry_date" validate:"required,len=5"`
	PhoneNumber string `json:"phone_number" validate:"omitempty,e164"`
	Default     bool   `json:"default"`
}

type UpdateCardRequest struct {
	Name    *string `json:"name"`
	Default *bool   `json:"default"`
}
