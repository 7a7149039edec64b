package handlers

import (
	"time"

	"github.com/secondchance/marketplace/internal/domain/entity"
)

// userView is the public shape of an account. Password hashes and
// verification tokens never appear in a response body.
type userView struct {
	ID         string    `json:"id"`
	Email      string    `json:"email"`
	Username   string    `json:"username"`
	Provider   string    `json:"provider"`
	Role       string    `json:"role"`
	IsVerified bool      `json:"is_verified"`
	CreatedAt  time.Time `json:"created_at"`
}

func toUserView(u *entity.User) userView {
	return userView{
		ID:         u.ID,
		Email:      u.Email,
		Username:   u.Username,
		Provider:   u.Provider,
		Role:       u.Role,
		IsVerified: u.IsVerified,
		CreatedAt:  u.CreatedAt,
	}
}

func toUserViews(users []*entity.User) []userView {
	out := make([]userView, 0, len(users))
	for _, u := range users {
		out = append(out, toUserView(u))
	}
	return out
}
