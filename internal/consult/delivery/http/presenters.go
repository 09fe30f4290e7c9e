package http

import (
	"renov-srv/internal/consult"
	"renov-srv/internal/model"
)

type createSessionReq struct {
	LinkedReportID *int64 `json:"linked_report_id,omitempty"`
	Stage          string `json:"stage,omitempty"`
}

func (r createSessionReq) toInput() consult.CreateSessionInput {
	return consult.CreateSessionInput{
		LinkedReportID: r.LinkedReportID,
		Stage:          r.Stage,
	}
}

type postMessageReq struct {
	SessionID int64    `json:"session_id" binding:"required"`
	Content   string   `json:"content" binding:"required"`
	ImageRefs []string `json:"image_refs,omitempty"`
}

func (r postMessageReq) toInput() consult.PostMessageInput {
	return consult.PostMessageInput{
		SessionID: r.SessionID,
		Content:   r.Content,
		ImageRefs: r.ImageRefs,
	}
}

type sessionResp struct {
	ID               int64  `json:"id"`
	LinkedReportID   *int64 `json:"linked_report_id,omitempty"`
	LinkedVariant    string `json:"linked_report_variant,omitempty"`
	Stage            string `json:"stage,omitempty"`
	Status           string `json:"status"`
	IsHumanEscalated bool   `json:"is_human_escalated"`
	CreatedAt        int64  `json:"created_at"`
}

func newSessionResp(sess model.ConsultSession) sessionResp {
	return sessionResp{
		ID:               sess.ID,
		LinkedReportID:   sess.LinkedReportID,
		LinkedVariant:    sess.LinkedReportVariant,
		Stage:            sess.Stage,
		Status:           sess.Status,
		IsHumanEscalated: sess.IsHumanEscalated,
		CreatedAt:        sess.CreatedAt.Unix(),
	}
}

type messageResp struct {
	ID        int64    `json:"id"`
	Role      string   `json:"role"`
	Content   string   `json:"content"`
	ImageRefs []string `json:"image_refs,omitempty"`
	CreatedAt int64    `json:"created_at"`
}

func newMessageResp(msg model.ConsultMessage) messageResp {
	return messageResp{
		ID:        msg.ID,
		Role:      msg.Role,
		Content:   msg.Content,
		ImageRefs: msg.ImageRefs,
		CreatedAt: msg.CreatedAt.Unix(),
	}
}

type sessionDetailResp struct {
	Session  sessionResp   `json:"session"`
	Messages []messageResp `json:"messages"`
}

func (h *handler) newSessionDetailResp(o consult.SessionDetailOutput) sessionDetailResp {
	msgs := make([]messageResp, 0, len(o.Messages))
	for _, m := range o.Messages {
		msgs = append(msgs, newMessageResp(m))
	}
	return sessionDetailResp{
		Session:  newSessionResp(o.Session),
		Messages: msgs,
	}
}

type postMessageResp struct {
	Reply     *messageResp `json:"reply,omitempty"`
	Escalated bool         `json:"escalated"`
}

func (h *handler) newPostMessageResp(o consult.MessageOutput) postMessageResp {
	resp := postMessageResp{Escalated: o.Escalated}
	if o.Reply != nil {
		r := newMessageResp(*o.Reply)
		resp.Reply = &r
	}
	return resp
}
