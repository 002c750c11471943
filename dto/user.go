package dto

import (
	"time"

	"invoiceapi/models"
)

// RegisterInput là body của POST /users/store. Thiếu key trả về 422 khi bind,
// giá trị rỗng của name/email/password bị validator chặn.
type RegisterInput struct {
	Name     *string `json:"name" binding:"required"`
	Email    *string `json:"email" binding:"required"`
	Phone    *string `json:"phone" binding:"required"`
	Password *string `json:"password" binding:"required"`
}

// LoginInput chấp nhận password rỗng, khi đó login trả về 401.
type LoginInput struct {
	Email    *string `json:"email" binding:"required"`
	Password *string `json:"password" binding:"required"`
}

// UserResponse never carries password material.
type UserResponse struct {
	ID        uint      `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type LoginResponse struct {
	Status      string       `json:"status"`
	User        UserResponse `json:"user"`
	AccessToken string       `json:"accessToken"`
}

func NewUserResponse(user models.User) UserResponse {
	return UserResponse{
		ID:        user.ID,
		Name:      user.Name,
		Email:     user.Email,
		Phone:     user.Phone,
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.UpdatedAt,
	}
}
