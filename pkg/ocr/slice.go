package ocr

import (
	"bytes"
	"fmt"
	"image"
	"image/draw"
	"image/jpeg"

	_ "image/png" // register PNG decoding
)

// segmentOverlap is the pixel overlap between adjacent slices so that a
// text line cut by a boundary still appears whole in one of them.
const segmentOverlap = 120

// sliceImage splits a tall image into overlapping vertical segments no
// higher than maxHeight. Images at or under the threshold pass through
// untouched.
func sliceImage(data []byte, maxHeight int) ([][]byte, error) {
	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("ocr: decode image config: %w", err)
	}
	if cfg.Height <= maxHeight {
		return [][]byte{data}, nil
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("ocr: decode image: %w", err)
	}

	bounds := img.Bounds()
	step := maxHeight - segmentOverlap
	if step <= 0 {
		step = maxHeight
	}

	var segments [][]byte
	for top := bounds.Min.Y; top < bounds.Max.Y; top += step {
		bottom := top + maxHeight
		if bottom > bounds.Max.Y {
			bottom = bounds.Max.Y
		}

		rect := image.Rect(bounds.Min.X, top, bounds.Max.X, bottom)
		seg := image.NewRGBA(image.Rect(0, 0, rect.Dx(), rect.Dy()))
		draw.Draw(seg, seg.Bounds(), img, rect.Min, draw.Src)

		var buf bytes.Buffer
		if err := jpeg.Encode(&buf, seg, &jpeg.Options{Quality: 85}); err != nil {
			return nil, fmt.Errorf("ocr: encode segment: %w", err)
		}
		segments = append(segments, buf.Bytes())

		if bottom == bounds.Max.Y {
			break
		}
	}
	return segments, nil
}
