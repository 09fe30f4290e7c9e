package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"renov-srv/internal/model"
)

type pipelineEnv struct {
	repo    *fakeRepo
	agent   *fakeAgent
	userUC  *fakeUserUC
	tasks   *fakeProducer
	events  *fakeProducer
	usecase *implUseCase
	storage *fakeStorage
	ocrFake *fakeOCR
}

func newPipelineEnv() *pipelineEnv {
	env := &pipelineEnv{
		repo:    newFakeRepo(),
		agent:   &fakeAgent{reply: `{"risk_score": 30, "high_risk_items": [], "warning_items": []}`},
		userUC:  &fakeUserUC{firstFreeWon: true},
		tasks:   &fakeProducer{},
		events:  &fakeProducer{},
		storage: &fakeStorage{data: []byte("doc")},
		ocrFake: &fakeOCR{text: "墙面刷漆 3000元"},
	}
	env.usecase = &implUseCase{
		repo:          env.repo,
		storage:       env.storage,
		ocr:           env.ocrFake,
		agent:         env.agent,
		enrich:        &fakeEnrich{},
		userUC:        env.userUC,
		taskProducer:  env.tasks,
		eventProducer: env.events,
		l:             testLogger(),
		config: Config{
			CompanyCacheWindow:  30 * 24 * time.Hour,
			MaxUploadBytes:      10 << 20,
			MaxPhotoUploadBytes: 20 << 20,
			RestoreRetention:    7 * 24 * time.Hour,
		},
		clock: time.Now,
	}
	return env
}

func pendingQuote(env *pipelineEnv) *model.Report {
	return env.repo.put(&model.Report{
		Variant:   model.VariantQuote,
		OwnerID:   "user-1",
		Status:    model.ReportStatusPending,
		SourceRef: "quotes/user-1/a.pdf",
	})
}

func TestContinue(t *testing.T) {
	t.Run("quote pipeline completes and grants first free", func(t *testing.T) {
		env := newPipelineEnv()
		rpt := pendingQuote(env)

		if err := env.usecase.Continue(context.Background(), rpt.ID); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		stored := env.repo.reports[rpt.ID]
		if stored.Status != model.ReportStatusCompleted {
			t.Fatalf("status %q, want completed", stored.Status)
		}
		var parsed map[string]interface{}
		if err := json.Unmarshal(stored.Result, &parsed); err != nil {
			t.Fatalf("stored result not JSON: %v", err)
		}
		if parsed["risk_score"].(float64) != 30 {
			t.Errorf("risk_score mismatch: %v", parsed["risk_score"])
		}
		if !stored.IsUnlocked || stored.UnlockReason != model.UnlockReasonFirstFree {
			t.Errorf("first free not applied: unlocked=%v reason=%q", stored.IsUnlocked, stored.UnlockReason)
		}
		if len(env.events.messages) != 1 {
			t.Errorf("got %d events, want 1", len(env.events.messages))
		}
	})

	t.Run("rerun on terminal report is a no-op", func(t *testing.T) {
		env := newPipelineEnv()
		rpt := pendingQuote(env)

		if err := env.usecase.Continue(context.Background(), rpt.ID); err != nil {
			t.Fatalf("first run failed: %v", err)
		}
		if err := env.usecase.Continue(context.Background(), rpt.ID); err != nil {
			t.Fatalf("second run failed: %v", err)
		}

		if env.repo.completeCalls != 1 {
			t.Errorf("completed %d times, want 1", env.repo.completeCalls)
		}
		if env.agent.calls != 1 {
			t.Errorf("agent invoked %d times, want 1", env.agent.calls)
		}
		if len(env.events.messages) != 1 {
			t.Errorf("got %d events, want 1", len(env.events.messages))
		}
	})

	t.Run("unknown report drops the task", func(t *testing.T) {
		env := newPipelineEnv()
		if err := env.usecase.Continue(context.Background(), 404); err != nil {
			t.Errorf("missing report should not error: %v", err)
		}
	})

	t.Run("agent failure marks report failed", func(t *testing.T) {
		env := newPipelineEnv()
		env.agent.err = errors.New("provider down")
		rpt := pendingQuote(env)

		if err := env.usecase.Continue(context.Background(), rpt.ID); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if env.repo.reports[rpt.ID].Status != model.ReportStatusFailed {
			t.Errorf("status %q, want failed", env.repo.reports[rpt.ID].Status)
		}
	})

	t.Run("unparseable reply stores fallback not failure", func(t *testing.T) {
		env := newPipelineEnv()
		env.agent.reply = "抱歉,这是一段无法解析的回复。"
		rpt := pendingQuote(env)

		if err := env.usecase.Continue(context.Background(), rpt.ID); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		stored := env.repo.reports[rpt.ID]
		if stored.Status != model.ReportStatusCompleted {
			t.Fatalf("status %q, want completed", stored.Status)
		}
		var parsed map[string]interface{}
		if err := json.Unmarshal(stored.Result, &parsed); err != nil {
			t.Fatalf("stored result not JSON: %v", err)
		}
		if parsed["fallback"] != true {
			t.Error("fallback marker missing from degraded result")
		}
	})

	t.Run("first free skipped when owner already has an unlock", func(t *testing.T) {
		env := newPipelineEnv()
		env.repo.hasUnlocked = true
		rpt := pendingQuote(env)

		if err := env.usecase.Continue(context.Background(), rpt.ID); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if env.userUC.firstFreeCalls != 0 {
			t.Errorf("first-free CAS attempted %d times, want 0", env.userUC.firstFreeCalls)
		}
		if env.repo.reports[rpt.ID].IsUnlocked {
			t.Error("report should stay locked")
		}
	})

	t.Run("acceptance warning opens rectification", func(t *testing.T) {
		env := newPipelineEnv()
		env.agent.reply = `{"severity": "warning", "issues": [{"category": "瓷砖", "description": "空鼓"}]}`
		rpt := env.repo.put(&model.Report{
			Variant:   model.VariantAcceptance,
			OwnerID:   "user-1",
			Status:    model.ReportStatusPending,
			Stage:     "S03",
			SourceRef: "acceptance/user-1/p1.jpg,acceptance/user-1/p2.jpg",
		})

		if err := env.usecase.Continue(context.Background(), rpt.ID); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got := env.repo.reports[rpt.ID].ResultStatus; got != model.ResultStatusNeedRectify {
			t.Errorf("result status %q, want need_rectify", got)
		}
	})
}

func TestReconcile(t *testing.T) {
	env := newPipelineEnv()
	env.repo.stalePending = []int64{5, 6, 7}

	if err := env.usecase.Reconcile(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(env.tasks.messages) != 3 {
		t.Fatalf("re-enqueued %d tasks, want 3", len(env.tasks.messages))
	}
	id, err := ParseAnalysisTask(env.tasks.messages[0])
	if err != nil {
		t.Fatalf("task payload not parseable: %v", err)
	}
	if id != 5 {
		t.Errorf("first task id %d, want 5", id)
	}
}
