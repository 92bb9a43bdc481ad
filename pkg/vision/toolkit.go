// Package vision provides the raster primitives the frame analyzer
// composes into photographic quality signals. The toolkit is a black
// box from the analyzer's perspective: any primitive may fail, and the
// caller substitutes its own neutral default.
package vision

import (
	"errors"
	"image"
)

// Sentinel errors for common conditions.
var (
	// ErrNoFrame is returned when a nil or empty frame is supplied.
	ErrNoFrame = errors.New("vision: no frame")

	// ErrNoFaceModel is returned when face detection is requested but
	// no detector model is loaded.
	ErrNoFaceModel = errors.New("vision: face model not loaded")
)

// HSVStats summarizes hue/saturation/value statistics of a frame.
type HSVStats struct {
	// SaturationMean is the mean saturation (0-255).
	SaturationMean float64

	// ValueMean is the mean brightness value (0-255).
	ValueMean float64

	// WarmRatio is the fraction of pixels with warm hues
	// (0-30 and 150-179 in OpenCV's 0-179 hue range).
	WarmRatio float64
}

// Toolkit computes primitive metrics over a decoded raster frame.
// Implementations must be safe for use from a single analysis cycle;
// the GoCV implementation additionally serializes model inference.
type Toolkit interface {
	// MeanLuma returns the mean grayscale intensity (0-255) over the
	// given region. A zero rectangle means the full frame.
	MeanLuma(img image.Image, region image.Rectangle) (float64, error)

	// GrayHistogram returns the 256-bin grayscale histogram as pixel
	// counts per bin.
	GrayHistogram(img image.Image) ([256]float64, error)

	// LaplacianVariance returns the variance of the Laplacian response,
	// the standard sharpness measure (higher = sharper).
	LaplacianVariance(img image.Image) (float64, error)

	// SobelMeanMagnitude returns the mean Sobel gradient magnitude,
	// better suited to fine macro detail than the Laplacian.
	SobelMeanMagnitude(img image.Image) (float64, error)

	// EdgeDensity returns the fraction of edge pixels (0-1) inside the
	// given region of the Canny edge map. A zero rectangle means the
	// full frame.
	EdgeDensity(img image.Image, region image.Rectangle) (float64, error)

	// EdgeCentroid returns the centroid of the edge map, normalized to
	// [0,1] in both axes. Falls back to the frame center when the edge
	// map is empty.
	EdgeCentroid(img image.Image) (x, y float64, err error)

	// HorizontalLineAngles returns the angle deviations from horizontal
	// (degrees, signed) of detected near-horizontal lines.
	HorizontalLineAngles(img image.Image) ([]float64, error)

	// CircleCount returns the number of circular shapes detected.
	CircleCount(img image.Image) (int, error)

	// ChannelMeans returns the mean blue, green and red channel values.
	ChannelMeans(img image.Image) (b, g, r float64, err error)

	// HSV returns hue/saturation/value statistics.
	HSV(img image.Image) (HSVStats, error)

	// ContrastStdDev returns the grayscale standard deviation.
	ContrastStdDev(img image.Image) (float64, error)

	// NoiseEstimate returns the mean absolute difference between the
	// frame and a lightly blurred copy of itself.
	NoiseEstimate(img image.Image) (float64, error)

	// DetectFaces returns the number of faces found in the frame.
	DetectFaces(img image.Image) (int, error)

	// Close releases toolkit resources.
	Close() error
}
