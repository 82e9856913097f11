package dto

import (
	"time"

	"github.com/sprintstackagency/airtime-niger-simplicity/internal/domain/model"
)

type UserResponse struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Role      string    `json:"role"`
	Balance   int64     `json:"balance"`
	CreatedAt time.Time `json:"created_at"`
}

func UserResponseFrom(user model.User) UserResponse {
	return UserResponse{
		ID:        user.ID,
		Email:     user.Email,
		Name:      user.Name,
		Role:      string(user.Role),
		Balance:   user.Balance,
		CreatedAt: user.CreatedAt,
	}
}

type UsersResponse struct {
	Users []UserResponse `json:"users"`
}
