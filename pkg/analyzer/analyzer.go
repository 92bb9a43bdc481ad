package analyzer

import (
	"image"
	"log/slog"

	"github.com/lenslab/go-lenscoach/pkg/vision"
)

// Tuning thresholds. MotionBlurThreshold is the Laplacian-variance
// floor below which a frame counts as motion-blurred.
const (
	MotionBlurThreshold = 150.0

	overexposedFraction  = 0.01
	underexposedFraction = 0.10
	backlitMargin        = 60.0

	clutterRatio = 0.15
	busyRatio    = 0.08

	warmChannelMargin = 20.0
	coolChannelMargin = 10.0
	balancedMargin    = 10.0

	highContrastStdDev   = 60.0
	normalContrastStdDev = 30.0

	macroExcellent = 60.0
	macroGood      = 40.0
	macroFair      = 25.0

	foodWarmthThreshold     = 0.2
	foodSaturationThreshold = 80.0
	foodWarmCastThreshold   = 0.4
)

// Per-metric neutral defaults substituted when a primitive fails.
// One failing sub-computation never aborts the whole analysis.
const (
	defaultBrightness  = 128.0
	defaultBlur        = 200.0 // sharp enough to not flag motion blur
	defaultComposition = 0.3
	defaultNoise       = 10.0
)

// Analyzer derives a FrameAnalysis from a raster frame using a vision
// toolkit. Mode-specialized entry points extend the base analysis.
type Analyzer struct {
	toolkit vision.Toolkit
	logger  *slog.Logger
}

// New creates an analyzer over the given toolkit.
func New(toolkit vision.Toolkit) *Analyzer {
	return &Analyzer{
		toolkit: toolkit,
		logger:  slog.Default().With("component", "analyzer"),
	}
}

// Analyze computes the full quality-signal set for one frame.
// A nil frame is a normal input state, not an error: it yields
// DefaultAnalysis with Success=false.
func (a *Analyzer) Analyze(frame image.Image) FrameAnalysis {
	if frame == nil {
		a.logger.Debug("no frame available, returning default analysis")
		return DefaultAnalysis()
	}

	out := DefaultAnalysis()
	bounds := frame.Bounds()

	out.Brightness = a.brightness(frame)
	out.BlurLevel = a.blurLevel(frame)
	out.MotionBlur = out.BlurLevel < MotionBlurThreshold
	out.FaceCount = a.faceCount(frame)
	out.Overexposed, out.Underexposed = a.exposure(frame, bounds)
	out.Backlit = a.backlit(frame, bounds)
	out.CompositionScore = a.thirdsDensity(frame, bounds, 50)
	out.RuleOfThirdsScore = a.thirdsDensity(frame, bounds, 60)
	out.HorizonTilt = a.horizonTilt(frame)
	out.SubjectX, out.SubjectY = a.subjectPosition(frame)
	out.ColorBalance = a.colorBalance(frame)
	out.Background = a.background(frame)
	out.Contrast = a.contrast(frame)
	out.NoiseLevel = a.noise(frame)
	out.Success = true

	a.logger.Debug("frame analysis complete",
		"brightness", int(out.Brightness),
		"blur", int(out.BlurLevel),
		"faces", out.FaceCount,
	)
	return out
}

// AnalyzeMacro extends Analyze with Sobel-based macro sharpness. The
// blur level carries the macro sharpness so downstream thresholds see
// the metric that matters at close range.
func (a *Analyzer) AnalyzeMacro(frame image.Image) FrameAnalysis {
	if frame == nil {
		return DefaultAnalysis()
	}

	out := a.Analyze(frame)

	sharpness, err := a.toolkit.SobelMeanMagnitude(frame)
	if err != nil {
		a.logger.Warn("macro sharpness failed", "error", err)
		return out
	}

	out.MacroSharpness = sharpness
	out.BlurLevel = sharpness
	switch {
	case sharpness > macroExcellent:
		out.FocusQuality = FocusExcellent
	case sharpness > macroGood:
		out.FocusQuality = FocusGood
	case sharpness > macroFair:
		out.FocusQuality = FocusFair
	default:
		out.FocusQuality = FocusPoor
	}
	return out
}

// AnalyzeFood extends Analyze with hue-warmth and saturation scoring
// plus a food-likelihood hint from warm tones and circular shapes
// (plates, bowls).
func (a *Analyzer) AnalyzeFood(frame image.Image) FrameAnalysis {
	if frame == nil {
		return DefaultAnalysis()
	}

	out := a.Analyze(frame)

	stats, err := a.toolkit.HSV(frame)
	if err != nil {
		a.logger.Warn("food color analysis failed", "error", err)
		stats = vision.HSVStats{SaturationMean: 100, ValueMean: defaultBrightness, WarmRatio: 0.3}
	}
	out.FoodWarmth = stats.WarmRatio
	out.FoodSaturation = stats.SaturationMean
	if stats.WarmRatio > foodWarmCastThreshold {
		out.ColorBalance = ColorWarm
	}

	circles, err := a.toolkit.CircleCount(frame)
	if err != nil {
		a.logger.Debug("circle detection failed", "error", err)
		circles = 0
	}
	out.FoodLikely = (stats.SaturationMean > foodSaturationThreshold && stats.WarmRatio > foodWarmthThreshold) ||
		circles > 0

	return out
}

func (a *Analyzer) brightness(frame image.Image) float64 {
	v, err := a.toolkit.MeanLuma(frame, image.Rectangle{})
	if err != nil {
		a.logger.Warn("brightness failed", "error", err)
		return defaultBrightness
	}
	return v
}

func (a *Analyzer) blurLevel(frame image.Image) float64 {
	v, err := a.toolkit.LaplacianVariance(frame)
	if err != nil {
		a.logger.Warn("blur estimation failed", "error", err)
		return defaultBlur
	}
	return v
}

func (a *Analyzer) faceCount(frame image.Image) int {
	n, err := a.toolkit.DetectFaces(frame)
	if err != nil {
		a.logger.Debug("face detection unavailable", "error", err)
		return 0
	}
	return n
}

func (a *Analyzer) exposure(frame image.Image, bounds image.Rectangle) (over, under bool) {
	hist, err := a.toolkit.GrayHistogram(frame)
	if err != nil {
		a.logger.Warn("exposure histogram failed", "error", err)
		return false, false
	}
	total := float64(bounds.Dx() * bounds.Dy())
	if total == 0 {
		return false, false
	}
	over = hist[255] > total*overexposedFraction
	under = hist[0] > total*underexposedFraction
	return over, under
}

// backlit compares the center (subject) region against the top strip
// (background). True backlighting is a bright background behind a
// darker subject.
func (a *Analyzer) backlit(frame image.Image, bounds image.Rectangle) bool {
	w, h := bounds.Dx(), bounds.Dy()
	center := image.Rect(bounds.Min.X+w/4, bounds.Min.Y+h/4, bounds.Min.X+3*w/4, bounds.Min.Y+3*h/4)
	top := image.Rect(bounds.Min.X, bounds.Min.Y, bounds.Max.X, bounds.Min.Y+h/4)

	centerLuma, err := a.toolkit.MeanLuma(frame, center)
	if err != nil {
		a.logger.Warn("backlight center sample failed", "error", err)
		return false
	}
	topLuma, err := a.toolkit.MeanLuma(frame, top)
	if err != nil {
		a.logger.Warn("backlight background sample failed", "error", err)
		return false
	}
	return topLuma-centerLuma > backlitMargin
}

// thirdsDensity averages edge density in windows around the four
// rule-of-thirds intersections. Windows falling outside the frame are
// skipped, matching the sampled-area average.
func (a *Analyzer) thirdsDensity(frame image.Image, bounds image.Rectangle, radius int) float64 {
	w, h := bounds.Dx(), bounds.Dy()
	points := []image.Point{
		{bounds.Min.X + w/3, bounds.Min.Y + h/3},
		{bounds.Min.X + 2*w/3, bounds.Min.Y + h/3},
		{bounds.Min.X + w/3, bounds.Min.Y + 2*h/3},
		{bounds.Min.X + 2*w/3, bounds.Min.Y + 2*h/3},
	}

	var sum float64
	for _, p := range points {
		win := image.Rect(p.X-radius/2, p.Y-radius/2, p.X+radius/2, p.Y+radius/2)
		if !win.In(bounds) {
			continue
		}
		d, err := a.toolkit.EdgeDensity(frame, win)
		if err != nil {
			a.logger.Warn("composition sample failed", "error", err)
			return defaultComposition
		}
		sum += d
	}
	return sum / float64(len(points))
}

func (a *Analyzer) horizonTilt(frame image.Image) float64 {
	angles, err := a.toolkit.HorizontalLineAngles(frame)
	if err != nil {
		a.logger.Warn("horizon detection failed", "error", err)
		return 0
	}
	if len(angles) == 0 {
		return 0
	}
	var sum float64
	for _, v := range angles {
		sum += v
	}
	return sum / float64(len(angles))
}

func (a *Analyzer) subjectPosition(frame image.Image) (float64, float64) {
	x, y, err := a.toolkit.EdgeCentroid(frame)
	if err != nil {
		a.logger.Warn("subject position failed", "error", err)
		return 0.5, 0.5
	}
	return x, y
}

func (a *Analyzer) colorBalance(frame image.Image) ColorBalance {
	b, g, r, err := a.toolkit.ChannelMeans(frame)
	if err != nil {
		a.logger.Warn("color balance failed", "error", err)
		return ColorNeutral
	}
	switch {
	case r > g+warmChannelMargin && r > b+warmChannelMargin:
		return ColorWarm
	case b > r+warmChannelMargin && b > g+coolChannelMargin:
		return ColorCool
	case abs(r-g) < balancedMargin && abs(g-b) < balancedMargin:
		return ColorBalanced
	default:
		return ColorNeutral
	}
}

func (a *Analyzer) background(frame image.Image) Background {
	ratio, err := a.toolkit.EdgeDensity(frame, image.Rectangle{})
	if err != nil {
		a.logger.Warn("background analysis failed", "error", err)
		return BackgroundClean
	}
	switch {
	case ratio > clutterRatio:
		return BackgroundCluttered
	case ratio > busyRatio:
		return BackgroundBusy
	default:
		return BackgroundClean
	}
}

func (a *Analyzer) contrast(frame image.Image) Contrast {
	stddev, err := a.toolkit.ContrastStdDev(frame)
	if err != nil {
		a.logger.Warn("contrast analysis failed", "error", err)
		return ContrastNormal
	}
	switch {
	case stddev > highContrastStdDev:
		return ContrastHigh
	case stddev > normalContrastStdDev:
		return ContrastNormal
	default:
		return ContrastLow
	}
}

func (a *Analyzer) noise(frame image.Image) float64 {
	v, err := a.toolkit.NoiseEstimate(frame)
	if err != nil {
		a.logger.Warn("noise estimation failed", "error", err)
		return defaultNoise
	}
	return v
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
