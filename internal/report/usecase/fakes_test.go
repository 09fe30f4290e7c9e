package usecase

import (
	"bytes"
	"context"
	"io"
	"sync"
	"time"

	"renov-srv/internal/model"
	"renov-srv/internal/report/repository"
	"renov-srv/internal/user"
	"renov-srv/pkg/enrich"
	"renov-srv/pkg/llmagent"
	"renov-srv/pkg/log"
	"renov-srv/pkg/ocr"
	"renov-srv/pkg/storage"
)

func testLogger() log.Logger {
	return log.Init(log.ZapConfig{Level: "error", Mode: "development", Encoding: "console"})
}

// fakeRepo is an in-memory ReportRepository sufficient for pipeline tests.
type fakeRepo struct {
	mu      sync.Mutex
	reports map[int64]*model.Report
	nextID  int64

	hasUnlocked   bool
	unlockCalls   int
	completeCalls int
	failCalls     int
	stalePending  []int64
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{reports: map[int64]*model.Report{}, nextID: 1}
}

func (f *fakeRepo) put(rpt *model.Report) *model.Report {
	f.mu.Lock()
	defer f.mu.Unlock()
	if rpt.ID == 0 {
		rpt.ID = f.nextID
		f.nextID++
	}
	f.reports[rpt.ID] = rpt
	return rpt
}

func (f *fakeRepo) Create(ctx context.Context, opts repository.CreateOptions) (*model.Report, error) {
	status := opts.Status
	if status == "" {
		status = model.ReportStatusPending
	}
	return f.put(&model.Report{
		Variant:        opts.Variant,
		OwnerID:        opts.OwnerID,
		Status:         status,
		Progress:       opts.Progress,
		SourceRef:      opts.SourceRef,
		FileName:       opts.FileName,
		NormalizedName: opts.NormalizedName,
		Stage:          opts.Stage,
		Result:         opts.Result,
		IsUnlocked:     opts.IsUnlocked,
		UnlockReason:   opts.UnlockReason,
		CreatedAt:      time.Now(),
		UpdatedAt:      time.Now(),
	}), nil
}

func (f *fakeRepo) GetByID(ctx context.Context, opts repository.GetOptions) (*model.Report, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	rpt, ok := f.reports[opts.ReportID]
	if !ok {
		return nil, repository.ErrReportNotFound
	}
	copied := *rpt
	return &copied, nil
}

func (f *fakeRepo) List(ctx context.Context, opts repository.ListOptions) ([]*model.Report, int64, error) {
	return nil, 0, nil
}

func (f *fakeRepo) UpdateStatus(ctx context.Context, opts repository.UpdateStatusOptions) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	rpt, ok := f.reports[opts.ReportID]
	if !ok || rpt.Status != opts.Expected {
		return false, nil
	}
	rpt.Status = opts.New
	rpt.Progress = opts.Progress
	return true, nil
}

func (f *fakeRepo) UpdateProgress(ctx context.Context, opts repository.UpdateProgressOptions) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if rpt, ok := f.reports[opts.ReportID]; ok && opts.Progress.Percent >= rpt.Progress.Percent {
		rpt.Progress = opts.Progress
		if opts.OCRText != "" {
			rpt.OCRText = opts.OCRText
		}
	}
	return nil
}

func (f *fakeRepo) UpdateCompleted(ctx context.Context, opts repository.UpdateCompletedOptions) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	rpt, ok := f.reports[opts.ReportID]
	if !ok || rpt.Status != model.ReportStatusAnalyzing {
		return false, nil
	}
	f.completeCalls++
	rpt.Status = model.ReportStatusCompleted
	rpt.Result = opts.Result
	rpt.ResultStatus = opts.ResultStatus
	rpt.Progress = opts.Progress
	return true, nil
}

func (f *fakeRepo) UpdateFailed(ctx context.Context, opts repository.UpdateFailedOptions) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if rpt, ok := f.reports[opts.ReportID]; ok && !rpt.Terminal() {
		f.failCalls++
		rpt.Status = model.ReportStatusFailed
	}
	return nil
}

func (f *fakeRepo) FindCachedCompany(ctx context.Context, opts repository.FindCachedCompanyOptions) (*model.Report, error) {
	return nil, nil
}

func (f *fakeRepo) HasUnlocked(ctx context.Context, ownerID string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.hasUnlocked, nil
}

func (f *fakeRepo) SetUnlock(ctx context.Context, opts repository.SetUnlockOptions) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.unlockCalls++
	if rpt, ok := f.reports[opts.ReportID]; ok {
		rpt.IsUnlocked = true
		rpt.UnlockReason = opts.Reason
	}
	return nil
}

func (f *fakeRepo) UpdateRecheck(ctx context.Context, opts repository.UpdateRecheckOptions) error {
	return nil
}

func (f *fakeRepo) SoftDelete(ctx context.Context, opts repository.DeleteOptions) error { return nil }
func (f *fakeRepo) Restore(ctx context.Context, opts repository.DeleteOptions) error    { return nil }

func (f *fakeRepo) PurgeDeleted(ctx context.Context, before time.Time) (int64, error) {
	return 0, nil
}

func (f *fakeRepo) ListStalePending(ctx context.Context, before time.Time, limit int) ([]int64, error) {
	return f.stalePending, nil
}

// fakeStorage serves a fixed blob for every key.
type fakeStorage struct {
	data []byte
}

func (f *fakeStorage) Connect(ctx context.Context) error     { return nil }
func (f *fakeStorage) HealthCheck(ctx context.Context) error { return nil }
func (f *fakeStorage) Close() error                          { return nil }

func (f *fakeStorage) Upload(ctx context.Context, req *storage.UploadRequest) (*storage.FileInfo, error) {
	return &storage.FileInfo{Bucket: req.Bucket, Key: req.Key, Size: req.Size}, nil
}

func (f *fakeStorage) Download(ctx context.Context, bucket, key string) (io.ReadCloser, error) {
	return io.NopCloser(bytes.NewReader(f.data)), nil
}

func (f *fakeStorage) PresignedGetURL(ctx context.Context, bucket, key string, expiry time.Duration) (*storage.PresignedURL, error) {
	return &storage.PresignedURL{URL: "https://store.test/" + bucket + "/" + key}, nil
}

func (f *fakeStorage) Delete(ctx context.Context, bucket, key string) error { return nil }
func (f *fakeStorage) Exists(ctx context.Context, bucket, key string) (bool, error) {
	return true, nil
}
func (f *fakeStorage) DocsBucket() string   { return "docs" }
func (f *fakeStorage) PhotosBucket() string { return "photos" }

type fakeOCR struct {
	text string
	err  error
}

func (f *fakeOCR) Recognize(ctx context.Context, req *ocr.RecognizeRequest) (*ocr.RecognizeResult, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &ocr.RecognizeResult{Text: f.text, SegmentsProcessed: 1}, nil
}

type fakeAgent struct {
	reply string
	err   error
	calls int
}

func (f *fakeAgent) Invoke(ctx context.Context, req *llmagent.InvokeRequest) (*llmagent.InvokeResult, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return &llmagent.InvokeResult{Content: f.reply, Provider: "chat"}, nil
}

type fakeEnrich struct{}

func (f *fakeEnrich) CompanyProfile(ctx context.Context, companyName string) (*enrich.CompanyProfile, error) {
	return &enrich.CompanyProfile{Name: companyName, Status: "存续"}, nil
}

func (f *fakeEnrich) Litigation(ctx context.Context, companyName string) ([]enrich.LitigationRecord, error) {
	return nil, nil
}

type fakeUserUC struct {
	firstFreeWon   bool
	firstFreeCalls int
}

func (f *fakeUserUC) Login(ctx context.Context, input user.LoginInput) (user.LoginOutput, error) {
	return user.LoginOutput{}, nil
}

func (f *fakeUserUC) GetProfile(ctx context.Context, sc model.Scope) (user.ProfileOutput, error) {
	return user.ProfileOutput{}, nil
}

func (f *fakeUserUC) UpdateProfile(ctx context.Context, sc model.Scope, input user.UpdateProfileInput) (user.ProfileOutput, error) {
	return user.ProfileOutput{}, nil
}

func (f *fakeUserUC) IsMember(ctx context.Context, userID string) (bool, error) {
	return false, nil
}

func (f *fakeUserUC) ConsumeFirstFree(ctx context.Context, userID string) (bool, error) {
	f.firstFreeCalls++
	return f.firstFreeWon, nil
}

type fakeProducer struct {
	mu       sync.Mutex
	messages [][]byte
	err      error
}

func (f *fakeProducer) Publish(key, value []byte) error {
	if f.err != nil {
		return f.err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.messages = append(f.messages, value)
	return nil
}

func (f *fakeProducer) Close() error { return nil }
