package http

import (
	"renov-srv/internal/user"
)

type loginReq struct {
	Code           string `json:"code" binding:"required"`
	InvitationCode string `json:"invitation_code,omitempty"`
	Nickname       string `json:"nickname,omitempty"`
	Avatar         string `json:"avatar,omitempty"`
}

func (r loginReq) toInput() user.LoginInput {
	return user.LoginInput{
		Code:           r.Code,
		InvitationCode: r.InvitationCode,
		Nickname:       r.Nickname,
		Avatar:         r.Avatar,
	}
}

type updateProfileReq struct {
	Nickname *string `json:"nickname,omitempty"`
	Avatar   *string `json:"avatar,omitempty"`
	Phone    *string `json:"phone,omitempty"`
	City     *string `json:"city,omitempty"`
}

func (r updateProfileReq) toInput() user.UpdateProfileInput {
	return user.UpdateProfileInput{
		Nickname: r.Nickname,
		Avatar:   r.Avatar,
		Phone:    r.Phone,
		City:     r.City,
	}
}

type loginResp struct {
	Token     string `json:"token"`
	UserID    string `json:"user_id"`
	IsNewUser bool   `json:"is_new_user"`
}

func (h *handler) newLoginResp(o user.LoginOutput) loginResp {
	return loginResp{
		Token:     o.Token,
		UserID:    o.UserID,
		IsNewUser: o.IsNewUser,
	}
}

type profileResp struct {
	ID              string `json:"id"`
	Nickname        string `json:"nickname"`
	Avatar          string `json:"avatar"`
	Phone           string `json:"phone,omitempty"`
	City            string `json:"city,omitempty"`
	IsMember        bool   `json:"is_member"`
	MemberExpiresAt *int64 `json:"member_expires_at,omitempty"`
	FirstFreeUsed   bool   `json:"first_free_used"`
	CreatedAt       int64  `json:"created_at"`
}

func (h *handler) newProfileResp(o user.ProfileOutput) profileResp {
	u := o.User
	resp := profileResp{
		ID:            u.ID,
		Nickname:      u.Nickname,
		Avatar:        u.Avatar,
		Phone:         u.Phone,
		City:          u.City,
		IsMember:      u.IsMember,
		FirstFreeUsed: u.FirstFreeUsed,
		CreatedAt:     u.CreatedAt.Unix(),
	}
	if u.MemberExpiresAt != nil {
		ts := u.MemberExpiresAt.Unix()
		resp.MemberExpiresAt = &ts
	}
	return resp
}
