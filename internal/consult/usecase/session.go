package usecase

import (
	"context"
	"errors"

	"renov-srv/internal/consult"
	"renov-srv/internal/consult/repository"
	"renov-srv/internal/model"
	"renov-srv/internal/report"
)

func (uc *implUseCase) CreateSession(ctx context.Context, sc model.Scope, input consult.CreateSessionInput) (consult.SessionOutput, error) {
	if input.Stage != "" && !report.ValidStages[input.Stage] {
		return consult.SessionOutput{}, consult.ErrInvalidStage
	}

	var linkedVariant string
	if input.LinkedReportID != nil {
		// The link is only valid for the caller's own report.
		o, err := uc.reportUC.GetReport(ctx, sc, report.GetReportInput{ReportID: *input.LinkedReportID})
		if err != nil {
			return consult.SessionOutput{}, consult.ErrLinkedReportDenied
		}
		linkedVariant = o.Report.Variant
	}

	sess, err := uc.repo.CreateSession(ctx, repository.CreateSessionOptions{
		OwnerID:             sc.UserID,
		LinkedReportID:      input.LinkedReportID,
		LinkedReportVariant: linkedVariant,
		Stage:               input.Stage,
	})
	if err != nil {
		uc.l.Errorf(ctx, "consult.usecase.CreateSession: Failed to create session: %v", err)
		return consult.SessionOutput{}, err
	}

	return consult.SessionOutput{Session: *sess}, nil
}

func (uc *implUseCase) GetSession(ctx context.Context, sc model.Scope, input consult.GetSessionInput) (consult.SessionDetailOutput, error) {
	sess, err := uc.getOwnedSession(ctx, sc, input.SessionID)
	if err != nil {
		return consult.SessionDetailOutput{}, err
	}

	msgs, err := uc.repo.ListRecentMessages(ctx, sess.ID, historyTurns*2)
	if err != nil {
		uc.l.Errorf(ctx, "consult.usecase.GetSession: Failed to list messages: %v", err)
		return consult.SessionDetailOutput{}, err
	}

	return consult.SessionDetailOutput{
		Session:  *sess,
		Messages: msgs,
	}, nil
}

func (uc *implUseCase) Escalate(ctx context.Context, sc model.Scope, input consult.EscalateInput) (consult.SessionOutput, error) {
	sess, err := uc.getOwnedSession(ctx, sc, input.SessionID)
	if err != nil {
		return consult.SessionOutput{}, err
	}

	if !sess.IsHumanEscalated {
		if err := uc.repo.Escalate(ctx, sess.ID); err != nil {
			uc.l.Errorf(ctx, "consult.usecase.Escalate: Failed to escalate session %d: %v", sess.ID, err)
			return consult.SessionOutput{}, err
		}
		now := uc.clock()
		sess.IsHumanEscalated = true
		sess.EscalatedAt = &now
	}

	return consult.SessionOutput{Session: *sess}, nil
}

func (uc *implUseCase) getOwnedSession(ctx context.Context, sc model.Scope, sessionID int64) (*model.ConsultSession, error) {
	sess, err := uc.repo.GetSession(ctx, sessionID)
	if errors.Is(err, repository.ErrSessionNotFound) {
		return nil, consult.ErrSessionNotFound
	}
	if err != nil {
		uc.l.Errorf(ctx, "consult.usecase.getOwnedSession: Failed to get session %d: %v", sessionID, err)
		return nil, err
	}
	if sess.OwnerID != sc.UserID {
		return nil, consult.ErrPermissionDenied
	}
	return sess, nil
}
