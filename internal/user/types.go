package user

import "renov-srv/internal/model"

type LoginInput struct {
	Code           string
	InvitationCode string
	Nickname       string
	Avatar         string
}

type LoginOutput struct {
	Token     string `json:"token"`
	UserID    string `json:"user_id"`
	IsNewUser bool   `json:"is_new_user"`
}

type UpdateProfileInput struct {
	Nickname *string
	Avatar   *string
	Phone    *string
	City     *string
}

type ProfileOutput struct {
	User model.User
}
