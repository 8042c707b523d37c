package domain

import "time"

type Address struct {
	AddressID    string    `json:"id" dynamodbav:"address_id"`
	UserID       string    `json:"user_id" dynamodbav:"user_id"`
	Lat          *float64  `json:"lat" dynamodbav:"lat"`
	Long         *float64  `json:"long" dynamodbav:"long"`
	Name         string    `json:"name" dynamodbav:"name"` // "Home", "Work", ...
	Address      string    `json:"address" dynamodbav:"address"`
	Apartment    string    `json:"apartment" dynamodbav:"apartment"`
	Entrance     string    `json:"entrance" dynamodbav:"entrance"`
	Floor        string    `json:"floor" dynamodbav:"floor"`
	DoorPhone    string    `json:"door_phone" dynamodbav:"door_phone"`
	Instructions string    `json:"instructions" dynamodbav:"instructions"`
	Default      bool      `json:"default" dynamodbav:"is_default"`
	CreatedAt    time.Time `json:"created" dynamodbav:"created_at"`
	UpdatedAt    time.Time `json:"updated" dynamodbav:"updated_at"`
}

type CreateAddressRequest struct {
	Lat          *float64 `json:"lat"`
	Long         *float64 `json:"long"`
	Name         string   `json:"name"`
	Address      string   `json:"address" validate:"required"`
	Apartment    string   `json:"apartment"`
	Entrance     string   `json:"entrance"`
	Floor        string   `json:"floor"`
	DoorPhone    string   `json:"door_phone"`
	Instructions string   `json:"instructions"`
	Default      bool     `json:"default"`
}

type UpdateAddressRequest struct {
	Lat          *float64 `json:"lat"`
	Long         *float64 `json:"long"`
	Name         *string  `json:"name"`
	Address      *string  `json:"address"`
	Apartment    *string  `json:"apartment"`
	Entrance     *string  `json:"entrance"`
	Floor        *string  `json:"floor"`
	DoorPhone    *string  `json:"door_phone"`
	Instructions *string  `json:"instructions"`
	Default      *bool    `json:"default"`
}
