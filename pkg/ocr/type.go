package ocr

import (
	"renov-srv/pkg/http"
	"renov-srv/pkg/log"
	"renov-srv/pkg/resilience"

	"golang.org/x/time/rate"
)

// Mode selects the provider recognition model.
type Mode string

const (
	ModeAccurate Mode = "accurate"
	ModeGeneral  Mode = "general"
	ModeTable    Mode = "table"
)

// Config holds OCR provider configuration.
type Config struct {
	Endpoint string
	// QPS caps outbound provider calls.
	QPS float64
	// MaxImageHeight is the pixel height above which images are sliced
	// into overlapping vertical segments before recognition.
	MaxImageHeight int
}

// RecognizeRequest carries one image to recognize. Exactly one of
// Image and ImageURL must be set.
type RecognizeRequest struct {
	Image    []byte
	ImageURL string
	// TableFirst tries the table model before the text ladder. Used for
	// itemized quote sheets.
	TableFirst bool
}

// RecognizeResult is the outcome of a recognition run.
type RecognizeResult struct {
	Text              string `json:"text"`
	ModeUsed          Mode   `json:"mode_used"`
	SegmentsProcessed int    `json:"segments_processed"`
	ErrorCount        int    `json:"error_count"`
}

// implOCR implements IOCR.
type implOCR struct {
	config  Config
	client  http.IClient
	limiter *rate.Limiter
	exec    *resilience.Executor
	l       log.Logger
}
