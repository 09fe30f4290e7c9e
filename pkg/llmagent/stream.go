package llmagent

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// Streaming fallback provider. The response is server-sent events;
// answer fragments arrive incrementally and are accumulated into the
// final content. Uses net/http directly because the shared client
// buffers whole bodies.

type streamEvent struct {
	Event  string `json:"event"`
	Answer string `json:"answer"`
}

func (a *implAgent) invokeStream(ctx context.Context, req *InvokeRequest) (string, error) {
	// The streaming provider has no server-side history; fold prior
	// turns into the query text.
	var sb strings.Builder
	for _, t := range req.History {
		sb.WriteString(t.Role)
		sb.WriteString(": ")
		sb.WriteString(t.Content)
		sb.WriteString("\n")
	}
	sb.WriteString(req.Prompt)

	payload, err := json.Marshal(map[string]interface{}{
		"query":         sb.String(),
		"user":          req.UserID,
		"response_mode": "streaming",
		"inputs":        map[string]interface{}{},
	})
	if err != nil {
		return "", err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, a.config.FallbackURL, bytes.NewReader(payload))
	if err != nil {
		return "", err
	}
	httpReq.Header.Set("Authorization", "Bearer "+a.config.FallbackKey)
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "text/event-stream")

	resp, err := http.DefaultClient.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("llmagent: stream request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return "", fmt.Errorf("llmagent: stream provider returned %d: %s", resp.StatusCode, string(body))
	}

	var answer strings.Builder
	scanner := bufio.NewScanner(resp.Body)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if !strings.HasPrefix(line, "data:") {
			continue
		}
		data := strings.TrimSpace(strings.TrimPrefix(line, "data:"))
		if data == "" || data == "[DONE]" {
			continue
		}

		var ev streamEvent
		if err := json.Unmarshal([]byte(data), &ev); err != nil {
			// Tolerate malformed keep-alive frames.
			continue
		}
		switch ev.Event {
		case "message", "agent_message", "":
			answer.WriteString(ev.Answer)
		case "error":
			return "", fmt.Errorf("llmagent: stream provider error event")
		}
	}
	if err := scanner.Err(); err != nil {
		if answer.Len() > 0 {
			a.l.Warnf(ctx, "llmagent.invokeStream: stream ended early, keeping partial answer: %v", err)
		} else {
			return "", fmt.Errorf("llmagent: read stream: %w", err)
		}
	}

	if answer.Len() == 0 {
		return "", fmt.Errorf("llmagent: stream produced no answer")
	}
	return answer.String(), nil
}
