package http

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"renov-srv/internal/entitlement"
	"renov-srv/internal/model"
	"renov-srv/pkg/log"
)

type fakeUseCase struct {
	consumeErr error
}

func (f *fakeUseCase) CreateInvitation(ctx context.Context, sc model.Scope) (entitlement.InvitationOutput, error) {
	return entitlement.InvitationOutput{}, nil
}

func (f *fakeUseCase) RedeemInvitation(ctx context.Context, inviteeID, code string) (string, error) {
	return "", nil
}

func (f *fakeUseCase) ListEntitlements(ctx context.Context, sc model.Scope) (entitlement.ListOutput, error) {
	return entitlement.ListOutput{}, nil
}

func (f *fakeUseCase) ConsumeEntitlement(ctx context.Context, sc model.Scope, input entitlement.ConsumeInput) error {
	return f.consumeErr
}

func newTestRouter(uc entitlement.UseCase) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := &handler{
		l:  log.Init(log.ZapConfig{Level: "error", Mode: "development", Encoding: "console"}),
		uc: uc,
	}
	r := gin.New()
	r.POST("/consume", h.ConsumeEntitlement)
	return r
}

func postConsume(t *testing.T, r *gin.Engine, body string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/consume", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	var envelope map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("bad response body: %v", err)
	}
	return w, envelope
}

func TestConsumeEntitlementHandler(t *testing.T) {
	t.Run("unlock succeeds", func(t *testing.T) {
		w, envelope := postConsume(t, newTestRouter(&fakeUseCase{}), `{"report_id": 9}`)
		if w.Code != 200 {
			t.Fatalf("status %d, want 200", w.Code)
		}
		data := envelope["data"].(map[string]any)
		if data["unlocked"] != true {
			t.Errorf("got unlocked=%v, want true", data["unlocked"])
		}
	})

	t.Run("nothing to spend reports unlocked false", func(t *testing.T) {
		// No side effects happened, so the caller gets a success
		// envelope instead of an error.
		w, envelope := postConsume(t, newTestRouter(&fakeUseCase{consumeErr: entitlement.ErrNoEntitlement}), `{"report_id": 9}`)
		if w.Code != 200 {
			t.Fatalf("status %d, want 200", w.Code)
		}
		if code := envelope["code"].(float64); code != 0 {
			t.Errorf("got code %v, want 0", code)
		}
		data := envelope["data"].(map[string]any)
		if data["unlocked"] != false {
			t.Errorf("got unlocked=%v, want false", data["unlocked"])
		}
	})

	t.Run("already unlocked report conflicts", func(t *testing.T) {
		w, _ := postConsume(t, newTestRouter(&fakeUseCase{consumeErr: entitlement.ErrAlreadyUnlocked}), `{"report_id": 9}`)
		if w.Code != 409 {
			t.Fatalf("status %d, want 409", w.Code)
		}
	})

	t.Run("malformed body is a validation failure", func(t *testing.T) {
		w, _ := postConsume(t, newTestRouter(&fakeUseCase{}), `{}`)
		if w.Code != 422 {
			t.Fatalf("status %d, want 422", w.Code)
		}
	})
}
