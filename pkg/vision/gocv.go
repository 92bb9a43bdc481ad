package vision

import (
	"fmt"
	"image"
	"math"
	"os"
	"sync"

	"gocv.io/x/gocv"
)

// Canny thresholds. Composition sampling uses the tighter pair so only
// strong structure counts toward the score.
const (
	cannyLow       = 50.0
	cannyHigh      = 150.0
	cannyTightLow  = 100.0
	cannyTightHigh = 200.0
)

// GoCVConfig holds GoCV toolkit configuration.
type GoCVConfig struct {
	// FaceModelPath is the path to the YuNet ONNX model. Empty disables
	// face detection (DetectFaces returns ErrNoFaceModel).
	FaceModelPath string

	// FaceConfidence is the minimum detection score (default 0.5).
	FaceConfidence float64
}

// GoCV implements Toolkit using OpenCV via gocv.
type GoCV struct {
	detector    gocv.FaceDetectorYN
	hasDetector bool
	mu          sync.Mutex // protects detector inference
}

// NewGoCV creates an OpenCV-backed toolkit. Face detection uses
// OpenCV's FaceDetectorYN when a model path is configured.
func NewGoCV(cfg GoCVConfig) (*GoCV, error) {
	t := &GoCV{}

	if cfg.FaceModelPath != "" {
		if _, err := os.Stat(cfg.FaceModelPath); os.IsNotExist(err) {
			return nil, fmt.Errorf("face model not found: %s", cfg.FaceModelPath)
		}
		conf := cfg.FaceConfidence
		if conf == 0 {
			conf = 0.5
		}
		t.detector = gocv.NewFaceDetectorYNWithParams(
			cfg.FaceModelPath,
			"",
			image.Pt(320, 320),
			float32(conf),
			0.3,
			5000,
			int(gocv.NetBackendDefault),
			int(gocv.NetTargetCPU),
		)
		t.hasDetector = true
	}

	return t, nil
}

// bgrMat converts an image.Image into a BGR Mat. The caller owns the
// returned Mat and must Close it.
func bgrMat(img image.Image) (gocv.Mat, error) {
	if img == nil {
		return gocv.Mat{}, ErrNoFrame
	}
	rgba, err := gocv.ImageToMatRGBA(img)
	if err != nil {
		return gocv.Mat{}, fmt.Errorf("convert frame: %w", err)
	}
	defer rgba.Close()
	if rgba.Empty() {
		return gocv.Mat{}, ErrNoFrame
	}

	bgr := gocv.NewMat()
	gocv.CvtColor(rgba, &bgr, gocv.ColorRGBAToBGR)
	return bgr, nil
}

// grayMat converts an image.Image into a single-channel gray Mat.
func grayMat(img image.Image) (gocv.Mat, error) {
	bgr, err := bgrMat(img)
	if err != nil {
		return gocv.Mat{}, err
	}
	defer bgr.Close()

	gray := gocv.NewMat()
	gocv.CvtColor(bgr, &gray, gocv.ColorBGRToGray)
	return gray, nil
}

// clampRegion intersects the region with the mat bounds; a zero
// rectangle selects the full mat.
func clampRegion(m gocv.Mat, region image.Rectangle) image.Rectangle {
	full := image.Rect(0, 0, m.Cols(), m.Rows())
	if region.Empty() {
		return full
	}
	return region.Intersect(full)
}

// MeanLuma returns the mean grayscale intensity over the region.
func (t *GoCV) MeanLuma(img image.Image, region image.Rectangle) (float64, error) {
	gray, err := grayMat(img)
	if err != nil {
		return 0, err
	}
	defer gray.Close()

	r := clampRegion(gray, region)
	if r.Empty() {
		return 0, ErrNoFrame
	}
	roi := gray.Region(r)
	defer roi.Close()

	return roi.Mean().Val1, nil
}

// GrayHistogram returns the 256-bin grayscale histogram.
func (t *GoCV) GrayHistogram(img image.Image) ([256]float64, error) {
	var out [256]float64

	gray, err := grayMat(img)
	if err != nil {
		return out, err
	}
	defer gray.Close()

	hist := gocv.NewMat()
	defer hist.Close()
	mask := gocv.NewMat()
	defer mask.Close()

	gocv.CalcHist([]gocv.Mat{gray}, []int{0}, mask, &hist, []int{256}, []float64{0, 256}, false)

	for i := 0; i < 256 && i < hist.Rows(); i++ {
		out[i] = float64(hist.GetFloatAt(i, 0))
	}
	return out, nil
}

// LaplacianVariance returns the variance of the Laplacian response.
func (t *GoCV) LaplacianVariance(img image.Image) (float64, error) {
	gray, err := grayMat(img)
	if err != nil {
		return 0, err
	}
	defer gray.Close()

	lap := gocv.NewMat()
	defer lap.Close()
	gocv.Laplacian(gray, &lap, gocv.MatTypeCV64F, 1, 1, 0, gocv.BorderDefault)

	mean := gocv.NewMat()
	defer mean.Close()
	stddev := gocv.NewMat()
	defer stddev.Close()
	gocv.MeanStdDev(lap, &mean, &stddev)

	sigma := stddev.GetDoubleAt(0, 0)
	return sigma * sigma, nil
}

// SobelMeanMagnitude returns the mean Sobel gradient magnitude.
func (t *GoCV) SobelMeanMagnitude(img image.Image) (float64, error) {
	gray, err := grayMat(img)
	if err != nil {
		return 0, err
	}
	defer gray.Close()

	sx := gocv.NewMat()
	defer sx.Close()
	sy := gocv.NewMat()
	defer sy.Close()
	mag := gocv.NewMat()
	defer mag.Close()

	gocv.Sobel(gray, &sx, gocv.MatTypeCV64F, 1, 0, 3, 1, 0, gocv.BorderDefault)
	gocv.Sobel(gray, &sy, gocv.MatTypeCV64F, 0, 1, 3, 1, 0, gocv.BorderDefault)
	gocv.Magnitude(sx, sy, &mag)

	return mag.Mean().Val1, nil
}

// EdgeDensity returns the edge-pixel fraction inside the region.
func (t *GoCV) EdgeDensity(img image.Image, region image.Rectangle) (float64, error) {
	gray, err := grayMat(img)
	if err != nil {
		return 0, err
	}
	defer gray.Close()

	edges := gocv.NewMat()
	defer edges.Close()
	gocv.Canny(gray, &edges, float32(cannyTightLow), float32(cannyTightHigh))

	r := clampRegion(edges, region)
	if r.Empty() {
		return 0, ErrNoFrame
	}
	roi := edges.Region(r)
	defer roi.Close()

	total := roi.Rows() * roi.Cols()
	if total == 0 {
		return 0, ErrNoFrame
	}
	return float64(gocv.CountNonZero(roi)) / float64(total), nil
}

// EdgeCentroid returns the normalized centroid of the edge map.
func (t *GoCV) EdgeCentroid(img image.Image) (float64, float64, error) {
	gray, err := grayMat(img)
	if err != nil {
		return 0, 0, err
	}
	defer gray.Close()

	edges := gocv.NewMat()
	defer edges.Close()
	gocv.Canny(gray, &edges, float32(cannyLow), float32(cannyHigh))

	m := gocv.Moments(edges, true)
	w := float64(edges.Cols())
	h := float64(edges.Rows())
	if w == 0 || h == 0 {
		return 0, 0, ErrNoFrame
	}

	if m["m00"] == 0 {
		return 0.5, 0.5, nil
	}
	return (m["m10"] / m["m00"]) / w, (m["m01"] / m["m00"]) / h, nil
}

// HorizontalLineAngles returns angle deviations (degrees) of detected
// near-horizontal lines, one entry per qualifying Hough line.
func (t *GoCV) HorizontalLineAngles(img image.Image) ([]float64, error) {
	gray, err := grayMat(img)
	if err != nil {
		return nil, err
	}
	defer gray.Close()

	edges := gocv.NewMat()
	defer edges.Close()
	gocv.Canny(gray, &edges, float32(cannyLow), float32(cannyHigh))

	lines := gocv.NewMat()
	defer lines.Close()
	gocv.HoughLines(edges, &lines, 1, math.Pi/180, 100)

	var angles []float64
	for i := 0; i < lines.Rows(); i++ {
		vec := lines.GetVecfAt(i, 0)
		if len(vec) < 2 {
			continue
		}
		theta := float64(vec[1])
		angle := (theta - math.Pi/2) * 180 / math.Pi
		if math.Abs(angle) < 45 {
			angles = append(angles, angle)
		}
	}
	return angles, nil
}

// CircleCount returns the number of circular shapes detected.
func (t *GoCV) CircleCount(img image.Image) (int, error) {
	gray, err := grayMat(img)
	if err != nil {
		return 0, err
	}
	defer gray.Close()

	edges := gocv.NewMat()
	defer edges.Close()
	gocv.Canny(gray, &edges, float32(cannyLow), float32(cannyHigh))

	circles := gocv.NewMat()
	defer circles.Close()
	minDist := float64(gray.Rows()) / 8
	if minDist < 1 {
		minDist = 1
	}
	gocv.HoughCirclesWithParams(edges, &circles, gocv.HoughGradient, 1, minDist, 100, 30, 0, 0)

	return circles.Cols(), nil
}

// ChannelMeans returns the mean blue, green and red channel values.
func (t *GoCV) ChannelMeans(img image.Image) (float64, float64, float64, error) {
	bgr, err := bgrMat(img)
	if err != nil {
		return 0, 0, 0, err
	}
	defer bgr.Close()

	mean := bgr.Mean()
	return mean.Val1, mean.Val2, mean.Val3, nil
}

// HSV returns hue/saturation/value statistics for the frame.
func (t *GoCV) HSV(img image.Image) (HSVStats, error) {
	bgr, err := bgrMat(img)
	if err != nil {
		return HSVStats{}, err
	}
	defer bgr.Close()

	hsv := gocv.NewMat()
	defer hsv.Close()
	gocv.CvtColor(bgr, &hsv, gocv.ColorBGRToHSV)

	channels := gocv.Split(hsv)
	defer func() {
		for i := range channels {
			channels[i].Close()
		}
	}()
	if len(channels) < 3 {
		return HSVStats{}, ErrNoFrame
	}

	stats := HSVStats{
		SaturationMean: channels[1].Mean().Val1,
		ValueMean:      channels[2].Mean().Val1,
	}

	hist := gocv.NewMat()
	defer hist.Close()
	mask := gocv.NewMat()
	defer mask.Close()
	gocv.CalcHist([]gocv.Mat{channels[0]}, []int{0}, mask, &hist, []int{180}, []float64{0, 180}, false)

	var warm float64
	for i := 0; i <= 30 && i < hist.Rows(); i++ {
		warm += float64(hist.GetFloatAt(i, 0))
	}
	for i := 150; i < 180 && i < hist.Rows(); i++ {
		warm += float64(hist.GetFloatAt(i, 0))
	}
	total := float64(bgr.Rows() * bgr.Cols())
	if total > 0 {
		stats.WarmRatio = warm / total
	}
	return stats, nil
}

// ContrastStdDev returns the grayscale standard deviation.
func (t *GoCV) ContrastStdDev(img image.Image) (float64, error) {
	gray, err := grayMat(img)
	if err != nil {
		return 0, err
	}
	defer gray.Close()

	mean := gocv.NewMat()
	defer mean.Close()
	stddev := gocv.NewMat()
	defer stddev.Close()
	gocv.MeanStdDev(gray, &mean, &stddev)

	return stddev.GetDoubleAt(0, 0), nil
}

// NoiseEstimate returns the mean absolute deviation from a 3x3
// Gaussian-blurred copy of the frame.
func (t *GoCV) NoiseEstimate(img image.Image) (float64, error) {
	gray, err := grayMat(img)
	if err != nil {
		return 0, err
	}
	defer gray.Close()

	blurred := gocv.NewMat()
	defer blurred.Close()
	gocv.GaussianBlur(gray, &blurred, image.Pt(3, 3), 0, 0, gocv.BorderDefault)

	diff := gocv.NewMat()
	defer diff.Close()
	gocv.AbsDiff(gray, blurred, &diff)

	return diff.Mean().Val1, nil
}

// DetectFaces returns the number of faces found in the frame.
func (t *GoCV) DetectFaces(img image.Image) (int, error) {
	if !t.hasDetector {
		return 0, ErrNoFaceModel
	}

	bgr, err := bgrMat(img)
	if err != nil {
		return 0, err
	}
	defer bgr.Close()

	t.mu.Lock()
	defer t.mu.Unlock()

	t.detector.SetInputSize(image.Pt(bgr.Cols(), bgr.Rows()))

	faces := gocv.NewMat()
	defer faces.Close()
	t.detector.Detect(bgr, &faces)

	return faces.Rows(), nil
}

// Close releases the face detector.
func (t *GoCV) Close() error {
	if t.hasDetector {
		t.mu.Lock()
		defer t.mu.Unlock()
		t.detector.Close()
		t.hasDetector = false
	}
	return nil
}

// Verify GoCV implements Toolkit at compile time.
var _ Toolkit = (*GoCV)(nil)
