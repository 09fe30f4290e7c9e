package ocr

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"testing"
)

func encodeTestImage(t *testing.T, width, height int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, color.RGBA{R: uint8(y % 256), G: 128, B: 64, A: 255})
		}
	}
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, nil); err != nil {
		t.Fatalf("encode test image: %v", err)
	}
	return buf.Bytes()
}

func TestSliceImage(t *testing.T) {
	t.Run("short image passes through", func(t *testing.T) {
		data := encodeTestImage(t, 100, 400)
		segments, err := sliceImage(data, 400)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(segments) != 1 {
			t.Fatalf("got %d segments, want 1", len(segments))
		}
		if !bytes.Equal(segments[0], data) {
			t.Error("pass-through should return the original bytes")
		}
	})

	t.Run("tall image is sliced", func(t *testing.T) {
		data := encodeTestImage(t, 100, 1000)
		segments, err := sliceImage(data, 400)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(segments) < 3 {
			t.Fatalf("got %d segments, want at least 3", len(segments))
		}
		for i, seg := range segments {
			cfg, _, err := image.DecodeConfig(bytes.NewReader(seg))
			if err != nil {
				t.Fatalf("segment %d not decodable: %v", i, err)
			}
			if cfg.Height > 400 {
				t.Errorf("segment %d height %d exceeds limit", i, cfg.Height)
			}
		}
	})

	t.Run("covers full height with overlap", func(t *testing.T) {
		height := 900
		data := encodeTestImage(t, 50, height)
		segments, err := sliceImage(data, 500)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		total := 0
		for _, seg := range segments {
			cfg, _, err := image.DecodeConfig(bytes.NewReader(seg))
			if err != nil {
				t.Fatalf("segment not decodable: %v", err)
			}
			total += cfg.Height
		}
		// With overlap the summed heights must exceed the original.
		if total < height {
			t.Errorf("summed segment height %d does not cover original %d", total, height)
		}
	})

	t.Run("garbage input", func(t *testing.T) {
		if _, err := sliceImage([]byte("not an image"), 400); err == nil {
			t.Error("expected error for undecodable input")
		}
	})
}
