package usecase

import (
	"bytes"
	"testing"

	"renov-srv/internal/report"
)

func TestNormalizeCompanyName(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"whitespace collapsed", "  上海 某某 装饰 有限公司 ", "上海某某装饰有限公司"},
		{"case folded", "ABC Decoration Co", "abcdecorationco"},
		{"tabs and newlines", "北京\t装修\n公司", "北京装修公司"},
		{"already normal", "深圳装饰公司", "深圳装饰公司"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := normalizeCompanyName(tc.in); got != tc.want {
				t.Errorf("got %q, want %q", got, tc.want)
			}
		})
	}
}

func TestValidateDocumentUpload(t *testing.T) {
	uc := &implUseCase{config: Config{MaxUploadBytes: 100}}

	base := func() report.SubmitDocumentInput {
		return report.SubmitDocumentInput{
			FileName:    "quote.pdf",
			ContentType: "application/pdf",
			Size:        100,
			Reader:      bytes.NewReader(nil),
		}
	}

	t.Run("at limit passes", func(t *testing.T) {
		if err := uc.validateDocumentUpload(base()); err != nil {
			t.Errorf("unexpected error: %v", err)
		}
	})

	t.Run("one byte over fails", func(t *testing.T) {
		input := base()
		input.Size = 101
		if err := uc.validateDocumentUpload(input); err != report.ErrFileTooLarge {
			t.Errorf("got %v, want ErrFileTooLarge", err)
		}
	})

	t.Run("unsupported type", func(t *testing.T) {
		input := base()
		input.ContentType = "application/zip"
		if err := uc.validateDocumentUpload(input); err != report.ErrUnsupportedFileType {
			t.Errorf("got %v, want ErrUnsupportedFileType", err)
		}
	})

	t.Run("missing reader", func(t *testing.T) {
		input := base()
		input.Reader = nil
		if err := uc.validateDocumentUpload(input); err == nil {
			t.Error("expected error for nil reader")
		}
	})
}

func TestValidatePhotoUpload(t *testing.T) {
	uc := &implUseCase{config: Config{MaxPhotoUploadBytes: 50}}

	t.Run("pdf rejected for photos", func(t *testing.T) {
		err := uc.validatePhotoUpload(report.UploadPhotoInput{
			FileName:    "photo.pdf",
			ContentType: "application/pdf",
			Size:        10,
			Reader:      bytes.NewReader(nil),
		})
		if err != report.ErrUnsupportedFileType {
			t.Errorf("got %v, want ErrUnsupportedFileType", err)
		}
	})

	t.Run("jpeg within limit", func(t *testing.T) {
		err := uc.validatePhotoUpload(report.UploadPhotoInput{
			FileName:    "photo.jpg",
			ContentType: "image/jpeg",
			Size:        50,
			Reader:      bytes.NewReader(nil),
		})
		if err != nil {
			t.Errorf("unexpected error: %v", err)
		}
	})
}
