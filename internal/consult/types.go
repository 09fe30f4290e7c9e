package consult

import "renov-srv/internal/model"

type CreateSessionInput struct {
	LinkedReportID *int64
	Stage          string
}

type PostMessageInput struct {
	SessionID int64
	Content   string
	ImageRefs []string
}

type GetSessionInput struct {
	SessionID int64
}

type EscalateInput struct {
	SessionID int64
}

type SessionOutput struct {
	Session model.ConsultSession
}

type SessionDetailOutput struct {
	Session  model.ConsultSession
	Messages []model.ConsultMessage
}

type MessageOutput struct {
	// Reply is nil when the session is escalated to human review.
	Reply *model.ConsultMessage
	// Escalated mirrors the session flag so clients can adjust UI.
	Escalated bool
}
