package usecase

import (
	"context"
	"errors"
	"strings"
	"unicode/utf8"

	"renov-srv/internal/consult"
	"renov-srv/internal/consult/repository"
	"renov-srv/internal/model"
	"renov-srv/pkg/llmagent"
	"renov-srv/pkg/storage"
)

func (uc *implUseCase) PostMessage(ctx context.Context, sc model.Scope, input consult.PostMessageInput) (consult.MessageOutput, error) {
	content := strings.TrimSpace(input.Content)
	if content == "" {
		return consult.MessageOutput{}, consult.ErrMessageRequired
	}
	if utf8.RuneCountInString(content) > maxMessageLength {
		return consult.MessageOutput{}, consult.ErrMessageTooLong
	}

	sess, err := uc.getOwnedSession(ctx, sc, input.SessionID)
	if err != nil {
		return consult.MessageOutput{}, err
	}
	if sess.Status == model.SessionStatusClosed {
		return consult.MessageOutput{}, consult.ErrSessionClosed
	}

	// Escalated sessions only record the message for human review.
	if sess.IsHumanEscalated {
		if _, err := uc.repo.AppendMessage(ctx, repository.AppendMessageOptions{
			SessionID: sess.ID,
			Role:      model.RoleUser,
			Content:   content,
			ImageRefs: input.ImageRefs,
		}); err != nil {
			uc.l.Errorf(ctx, "consult.usecase.PostMessage: Failed to append escalated message: %v", err)
			return consult.MessageOutput{}, err
		}
		return consult.MessageOutput{Escalated: true}, nil
	}

	member, err := uc.userUC.IsMember(ctx, sc.UserID)
	if err != nil {
		uc.l.Errorf(ctx, "consult.usecase.PostMessage: Failed to check membership: %v", err)
		return consult.MessageOutput{}, err
	}

	yearMonth := uc.clock().Format("2006-01")
	if !member {
		// Cheap pre-check so an exhausted user never costs an agent
		// call. The transactional increment below stays authoritative.
		used, err := uc.repo.GetQuotaUsed(ctx, sc.UserID, yearMonth)
		if err != nil {
			return consult.MessageOutput{}, err
		}
		if used >= uc.config.FreeQuotaPerMonth {
			return consult.MessageOutput{}, consult.ErrQuotaExhausted
		}
	}

	history, err := uc.repo.ListRecentMessages(ctx, sess.ID, historyTurns*2)
	if err != nil {
		uc.l.Errorf(ctx, "consult.usecase.PostMessage: Failed to load history: %v", err)
		return consult.MessageOutput{}, err
	}

	prompt := uc.buildPrompt(ctx, sc, sess, content, input.ImageRefs)

	invokeCtx, cancel := context.WithTimeout(ctx, consultDeadline)
	defer cancel()

	result, err := uc.agent.Invoke(invokeCtx, &llmagent.InvokeRequest{
		Prompt:  prompt,
		History: toTurns(history),
		UserID:  sc.UserID,
	})
	if err != nil {
		uc.l.Errorf(ctx, "consult.usecase.PostMessage: Agent invoke failed for session %d: %v", sess.ID, err)
		return consult.MessageOutput{}, consult.ErrAssistantFailed
	}

	var quota *repository.QuotaIncrement
	if !member {
		quota = &repository.QuotaIncrement{
			OwnerID:   sc.UserID,
			YearMonth: yearMonth,
			Ceiling:   uc.config.FreeQuotaPerMonth,
		}
	}

	_, reply, err := uc.repo.AppendExchange(ctx, repository.AppendExchangeOptions{
		SessionID:        sess.ID,
		UserContent:      content,
		UserImageRefs:    input.ImageRefs,
		AssistantContent: result.Content,
		Quota:            quota,
	})
	if err != nil {
		if errors.Is(err, repository.ErrQuotaExhausted) {
			return consult.MessageOutput{}, consult.ErrQuotaExhausted
		}
		uc.l.Errorf(ctx, "consult.usecase.PostMessage: Failed to commit exchange for session %d: %v", sess.ID, err)
		return consult.MessageOutput{}, err
	}

	return consult.MessageOutput{Reply: reply}, nil
}

const consultSystemPrompt = `你是经验丰富的装修顾问,熟悉报价审核、合同审查、施工验收与本地装修市场行情。请用简洁、专业、友善的语气回答用户的装修问题,给出可操作的建议。`

func (uc *implUseCase) buildPrompt(ctx context.Context, sc model.Scope, sess *model.ConsultSession, content string, imageRefs []string) string {
	var sb strings.Builder
	sb.WriteString(consultSystemPrompt)

	if sess.Stage != "" {
		sb.WriteString("\n\n【当前施工阶段】\n")
		sb.WriteString(sess.Stage)
	}

	if summary := uc.linkedReportSummary(ctx, sc, sess); summary != "" {
		sb.WriteString("\n\n【关联报告要点】\n")
		sb.WriteString(summary)
	}

	if len(imageRefs) > 0 {
		sb.WriteString("\n\n【用户提供的照片】\n")
		for _, ref := range imageRefs {
			signed, err := uc.storage.PresignedGetURL(ctx, uc.storage.PhotosBucket(), ref, storage.PhotoURLExpiry)
			if err != nil {
				uc.l.Warnf(ctx, "consult.usecase.buildPrompt: Failed to presign %s: %v", ref, err)
				continue
			}
			sb.WriteString(signed.URL)
			sb.WriteString("\n")
		}
	}

	sb.WriteString("\n\n【用户问题】\n")
	sb.WriteString(content)
	return sb.String()
}

func toTurns(msgs []model.ConsultMessage) []llmagent.Turn {
	turns := make([]llmagent.Turn, 0, len(msgs))
	for _, m := range msgs {
		role := llmagent.RoleUser
		if m.Role == model.RoleAssistant {
			role = llmagent.RoleAssistant
		}
		turns = append(turns, llmagent.Turn{Role: role, Content: m.Content})
	}
	return turns
}
