package advisor

import (
	"bytes"
	"image"
	"image/jpeg"

	"golang.org/x/image/draw"
)

// Upload size limits. Frames are downscaled before upload to keep
// request payloads small; the model does not need full preview
// resolution to critique a shot.
const (
	maxUploadWidth  = 640
	maxUploadHeight = 480
	uploadQuality   = 60
)

// EncodeFrame downscales a frame to fit maxUploadWidth x
// maxUploadHeight (preserving aspect ratio, never upscaling) and
// encodes it as JPEG.
func EncodeFrame(frame image.Image) ([]byte, error) {
	if frame == nil {
		return nil, nil
	}

	bounds := frame.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if w > maxUploadWidth || h > maxUploadHeight {
		scale := float64(maxUploadWidth) / float64(w)
		if s := float64(maxUploadHeight) / float64(h); s < scale {
			scale = s
		}
		dw := int(float64(w) * scale)
		dh := int(float64(h) * scale)
		if dw < 1 {
			dw = 1
		}
		if dh < 1 {
			dh = 1
		}
		dst := image.NewRGBA(image.Rect(0, 0, dw, dh))
		draw.ApproxBiLinear.Scale(dst, dst.Bounds(), frame, bounds, draw.Over, nil)
		frame = dst
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, frame, &jpeg.Options{Quality: uploadQuality}); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
