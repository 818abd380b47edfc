package mapping

import (
	"github.com/anima-music/anima/api"
	"github.com/anima-music/anima/internal/types"
)

func UserAccountToAPI(user types.UserAccount) api.UserAccountResponse {
	return api.UserAccountResponse{
		ID:          user.ID,
		Email:       user.Email,
		DisplayName: user.DisplayName,
		CreatedAt:   user.CreatedAt,
		LastLoginAt: user.LastLoginAt,
	}
}
