package ocr

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strings"

	"renov-srv/pkg/resilience"
)

// providerResponse is the wire shape returned by the recognition service.
type providerResponse struct {
	ErrorCode   int    `json:"error_code"`
	ErrorMsg    string `json:"error_msg"`
	WordsResult []struct {
		Words string `json:"words"`
	} `json:"words_result"`
}

// QPS-limit code from the provider. Worth retrying after backoff.
const errCodeRateLimited = 18

func (o *implOCR) Recognize(ctx context.Context, req *RecognizeRequest) (*RecognizeResult, error) {
	if req == nil || (len(req.Image) == 0 && req.ImageURL == "") {
		return nil, fmt.Errorf("ocr: request must carry an image or an image URL")
	}

	var segments [][]byte
	if len(req.Image) > 0 {
		var err error
		segments, err = sliceImage(req.Image, o.config.MaxImageHeight)
		if err != nil {
			// Undecodable payloads (PDF scans etc.) go to the provider whole.
			segments = [][]byte{req.Image}
		}
	}

	modes := []Mode{ModeAccurate, ModeGeneral}
	if req.TableFirst {
		modes = []Mode{ModeTable, ModeAccurate, ModeGeneral}
	}

	var lastErr error
	for _, mode := range modes {
		result, err := o.recognizeAll(ctx, mode, segments, req.ImageURL)
		if err == nil {
			result.ModeUsed = mode
			return result, nil
		}
		lastErr = err
		o.l.Warnf(ctx, "ocr.Recognize: mode %s failed, falling back: %v", mode, err)
	}
	return nil, fmt.Errorf("ocr: all modes failed: %w", lastErr)
}

// recognizeAll runs one mode over every segment. Individual segment
// failures are tolerated and counted; the mode fails only when no
// segment produced text.
func (o *implOCR) recognizeAll(ctx context.Context, mode Mode, segments [][]byte, imageURL string) (*RecognizeResult, error) {
	if len(segments) == 0 {
		text, err := o.callProvider(ctx, mode, nil, imageURL)
		if err != nil {
			return nil, err
		}
		return &RecognizeResult{Text: text, SegmentsProcessed: 1}, nil
	}

	var (
		parts    []string
		errCount int
		lastErr  error
	)
	for i, seg := range segments {
		text, err := o.callProvider(ctx, mode, seg, "")
		if err != nil {
			errCount++
			lastErr = err
			o.l.Warnf(ctx, "ocr.recognizeAll: segment %d/%d failed: %v", i+1, len(segments), err)
			continue
		}
		parts = append(parts, text)
	}
	if len(parts) == 0 {
		return nil, fmt.Errorf("ocr: no segment recognized: %w", lastErr)
	}
	return &RecognizeResult{
		Text:              strings.Join(parts, "\n"),
		SegmentsProcessed: len(segments),
		ErrorCount:        errCount,
	}, nil
}

func (o *implOCR) callProvider(ctx context.Context, mode Mode, image []byte, imageURL string) (string, error) {
	if err := o.limiter.Wait(ctx); err != nil {
		return "", err
	}

	payload := map[string]string{}
	if len(image) > 0 {
		payload["image"] = base64.StdEncoding.EncodeToString(image)
	} else {
		payload["url"] = imageURL
	}

	var text string
	err := o.exec.Execute(ctx, "ocr."+string(mode), func(ctx context.Context) error {
		body, status, err := o.client.Post(ctx, o.config.Endpoint+"/"+string(mode), payload, nil)
		if err != nil {
			return err
		}
		if status >= 500 {
			return fmt.Errorf("ocr: provider returned %d", status)
		}

		var resp providerResponse
		if err := json.Unmarshal(body, &resp); err != nil {
			return fmt.Errorf("ocr: decode provider response: %w", err)
		}
		if resp.ErrorCode != 0 {
			return &providerError{code: resp.ErrorCode, msg: resp.ErrorMsg}
		}

		lines := make([]string, 0, len(resp.WordsResult))
		for _, w := range resp.WordsResult {
			lines = append(lines, w.Words)
		}
		text = strings.Join(lines, "\n")
		return nil
	}, classifyProviderError)
	if err != nil {
		return "", err
	}
	return text, nil
}

type providerError struct {
	code int
	msg  string
}

func (e *providerError) Error() string {
	return fmt.Sprintf("ocr: provider error %d: %s", e.code, e.msg)
}

func classifyProviderError(err error) resilience.ErrorClassification {
	if pe, ok := err.(*providerError); ok {
		retryable := pe.code == errCodeRateLimited
		return resilience.ErrorClassification{Retryable: retryable, RecordFailure: !retryable}
	}
	return resilience.ErrorClassification{Retryable: true, RecordFailure: true}
}
