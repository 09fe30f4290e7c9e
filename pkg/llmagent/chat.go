package llmagent

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"time"
)

// Chat-service provider. Invocation is asynchronous: create a chat,
// poll until it reaches a terminal status, then list messages and take
// the final assistant answer.

const (
	chatStatusCreated    = "created"
	chatStatusInProgress = "in_progress"
	chatStatusCompleted  = "completed"
	chatStatusFailed     = "failed"
)

type chatEnvelope struct {
	Code int             `json:"code"`
	Msg  string          `json:"msg"`
	Data json.RawMessage `json:"data"`
}

type chatData struct {
	ID             string `json:"id"`
	ConversationID string `json:"conversation_id"`
	Status         string `json:"status"`
	LastError      *struct {
		Code int    `json:"code"`
		Msg  string `json:"msg"`
	} `json:"last_error"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Type    string `json:"type"`
	Content string `json:"content"`
}

func (a *implAgent) invokeChat(ctx context.Context, req *InvokeRequest) (string, error) {
	chat, err := a.createChat(ctx, req)
	if err != nil {
		return "", err
	}

	if err := a.pollChat(ctx, chat); err != nil {
		return "", err
	}

	return a.fetchAnswer(ctx, chat)
}

func (a *implAgent) createChat(ctx context.Context, req *InvokeRequest) (*chatData, error) {
	type wireMessage struct {
		Role        string `json:"role"`
		Content     string `json:"content"`
		ContentType string `json:"content_type"`
	}

	msgs := buildMessages(req)
	wire := make([]wireMessage, 0, len(msgs))
	for _, m := range msgs {
		wire = append(wire, wireMessage{Role: m.Role, Content: m.Content, ContentType: "text"})
	}

	payload := map[string]interface{}{
		"bot_id":              a.config.BotID,
		"user_id":             req.UserID,
		"additional_messages": wire,
		"auto_save_history":   true,
		"stream":              false,
	}

	var chat chatData
	err := a.exec.Execute(ctx, "llm.chat.create", func(ctx context.Context) error {
		body, status, err := a.client.Post(ctx, a.config.SiteURL+"/v3/chat", payload, a.authHeaders())
		if err != nil {
			return err
		}
		if status >= 500 {
			return fmt.Errorf("llmagent: create chat returned %d", status)
		}
		data, err := decodeEnvelope(body)
		if err != nil {
			return err
		}
		return json.Unmarshal(data, &chat)
	}, nil)
	if err != nil {
		return nil, err
	}
	if chat.ID == "" {
		return nil, fmt.Errorf("llmagent: create chat returned no chat id")
	}
	return &chat, nil
}

// pollChat waits for the chat to finish, bounded by the caller's context.
func (a *implAgent) pollChat(ctx context.Context, chat *chatData) error {
	ticker := time.NewTicker(a.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return fmt.Errorf("llmagent: chat %s: %w", chat.ID, ctx.Err())
		case <-ticker.C:
		}

		q := url.Values{}
		q.Set("chat_id", chat.ID)
		q.Set("conversation_id", chat.ConversationID)

		body, status, err := a.client.Get(ctx, a.config.SiteURL+"/v3/chat/retrieve?"+q.Encode(), a.authHeaders())
		if err != nil {
			a.l.Warnf(ctx, "llmagent.pollChat: retrieve failed, will retry: %v", err)
			continue
		}
		if status >= 500 {
			continue
		}

		data, err := decodeEnvelope(body)
		if err != nil {
			return err
		}
		var cur chatData
		if err := json.Unmarshal(data, &cur); err != nil {
			return fmt.Errorf("llmagent: decode chat status: %w", err)
		}

		switch cur.Status {
		case chatStatusCompleted:
			return nil
		case chatStatusFailed:
			if cur.LastError != nil {
				return fmt.Errorf("llmagent: chat %s failed: %d %s", chat.ID, cur.LastError.Code, cur.LastError.Msg)
			}
			return fmt.Errorf("llmagent: chat %s failed", chat.ID)
		case chatStatusCreated, chatStatusInProgress:
			// keep polling
		default:
			return fmt.Errorf("llmagent: chat %s in unexpected status %q", chat.ID, cur.Status)
		}
	}
}

func (a *implAgent) fetchAnswer(ctx context.Context, chat *chatData) (string, error) {
	q := url.Values{}
	q.Set("chat_id", chat.ID)
	q.Set("conversation_id", chat.ConversationID)

	body, status, err := a.client.Get(ctx, a.config.SiteURL+"/v3/chat/message/list?"+q.Encode(), a.authHeaders())
	if err != nil {
		return "", err
	}
	if status >= 400 {
		return "", fmt.Errorf("llmagent: message list returned %d", status)
	}

	data, err := decodeEnvelope(body)
	if err != nil {
		return "", err
	}
	var msgs []chatMessage
	if err := json.Unmarshal(data, &msgs); err != nil {
		return "", fmt.Errorf("llmagent: decode message list: %w", err)
	}

	// The answer is the last assistant message of type "answer".
	for i := len(msgs) - 1; i >= 0; i-- {
		if msgs[i].Role == RoleAssistant && msgs[i].Type == "answer" && msgs[i].Content != "" {
			return msgs[i].Content, nil
		}
	}
	return "", fmt.Errorf("llmagent: chat %s produced no answer", chat.ID)
}

func (a *implAgent) authHeaders() map[string]string {
	return map[string]string{
		"Authorization": "Bearer " + a.config.APIToken,
	}
}

func decodeEnvelope(body []byte) (json.RawMessage, error) {
	var env chatEnvelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, fmt.Errorf("llmagent: decode provider envelope: %w", err)
	}
	if env.Code != 0 {
		return nil, fmt.Errorf("llmagent: provider error %d: %s", env.Code, env.Msg)
	}
	return env.Data, nil
}
