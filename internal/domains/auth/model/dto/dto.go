package dto

import (
	"github.com/google/uuid"

	"inn/infras/jwt"
	userModel "inn/internal/domains/user/model"
	gModel "inn/shared/model"
	"inn/shared/timezone"
)

type RegisterRequest struct {
	Username string `json:"username" validate:"required,min=3,alphanum"`
	Password string `json:"password" validate:"required,min=8,password"`
}

func (r *RegisterRequest) ToUserModel(username string, hashedPassword string) userModel.User {
	return userModel.User{
		ID:       uuid.NewString(),
		Username: r.Username,
		Password: hashedPassword,
		Active:   true,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  username,
			ModifiedBy: username,
		},
	}
}

type TokenRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int64  `json:"expires_in"`
}

func (t *TokenResponse) FromToken(token *jwt.Token) {
	t.AccessToken = token.AccessToken
	t.TokenType = token.TokenType
	t.ExpiresIn = token.ExpiresIn
}
