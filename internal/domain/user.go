package domain

import "time"

type User struct {
	UserID       string     `json:"id" dynamodbav:"user_id"`
	Email        string     `json:"email" dynamodbav:"email"`
	Phone        string     `json:"phone" dynamodbav:"phone"`
	FullName     string     `json:"full_name" dynamodbav:"full_name"`
	PasswordHash string     `json:"-" dynamodbav:"password_hash"`
	IsVerified   bool       `json:"is_verified" dynamodbav:"is_verified"`
	CreatedAt    time.Time  `json:"created_at" dynamodbav:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at" dynamodbav:"updated_at"`
	LastLogin    *time.Time `json:"last_login,omitempty" dynamodbav:"last_login,omitempty"`
}

type RegisterRequest struct {
	FullName        string `json:"full_name" validate:"required"`
	Email           string `json:"email" validate:"required,simple_email"`
	Phone           string `json:"phone" validate:"required,phone"`
	Password        string `json:"password" validate:"required,password"`
	ConfirmPassword string `json:"confirm_password" validate:"required,eqfield=Password"`
}

type LoginRequest struct {
	EmailOrPhone string `json:"email_or_phone" validate:"required"`
	Password     string `json:"password" validate:"required"`
}
