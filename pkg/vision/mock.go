package vision

import (
	"image"
	"sync"
)

// Mock implements Toolkit for testing. Unset Func fields return the
// zero value for the primitive, so a bare Mock behaves like a flat
// featureless frame.
type Mock struct {
	MeanLumaFunc             func(img image.Image, region image.Rectangle) (float64, error)
	GrayHistogramFunc        func(img image.Image) ([256]float64, error)
	LaplacianVarianceFunc    func(img image.Image) (float64, error)
	SobelMeanMagnitudeFunc   func(img image.Image) (float64, error)
	EdgeDensityFunc          func(img image.Image, region image.Rectangle) (float64, error)
	EdgeCentroidFunc         func(img image.Image) (float64, float64, error)
	HorizontalLineAnglesFunc func(img image.Image) ([]float64, error)
	CircleCountFunc          func(img image.Image) (int, error)
	ChannelMeansFunc         func(img image.Image) (float64, float64, float64, error)
	HSVFunc                  func(img image.Image) (HSVStats, error)
	ContrastStdDevFunc       func(img image.Image) (float64, error)
	NoiseEstimateFunc        func(img image.Image) (float64, error)
	DetectFacesFunc          func(img image.Image) (int, error)

	mu    sync.Mutex
	calls []string
}

func (m *Mock) record(method string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, method)
}

// CallCount returns how many times a primitive was invoked.
func (m *Mock) CallCount(method string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, c := range m.calls {
		if c == method {
			n++
		}
	}
	return n
}

func (m *Mock) MeanLuma(img image.Image, region image.Rectangle) (float64, error) {
	m.record("MeanLuma")
	if m.MeanLumaFunc != nil {
		return m.MeanLumaFunc(img, region)
	}
	return 0, nil
}

func (m *Mock) GrayHistogram(img image.Image) ([256]float64, error) {
	m.record("GrayHistogram")
	if m.GrayHistogramFunc != nil {
		return m.GrayHistogramFunc(img)
	}
	return [256]float64{}, nil
}

func (m *Mock) LaplacianVariance(img image.Image) (float64, error) {
	m.record("LaplacianVariance")
	if m.LaplacianVarianceFunc != nil {
		return m.LaplacianVarianceFunc(img)
	}
	return 0, nil
}

func (m *Mock) SobelMeanMagnitude(img image.Image) (float64, error) {
	m.record("SobelMeanMagnitude")
	if m.SobelMeanMagnitudeFunc != nil {
		return m.SobelMeanMagnitudeFunc(img)
	}
	return 0, nil
}

func (m *Mock) EdgeDensity(img image.Image, region image.Rectangle) (float64, error) {
	m.record("EdgeDensity")
	if m.EdgeDensityFunc != nil {
		return m.EdgeDensityFunc(img, region)
	}
	return 0, nil
}

func (m *Mock) EdgeCentroid(img image.Image) (float64, float64, error) {
	m.record("EdgeCentroid")
	if m.EdgeCentroidFunc != nil {
		return m.EdgeCentroidFunc(img)
	}
	return 0.5, 0.5, nil
}

func (m *Mock) HorizontalLineAngles(img image.Image) ([]float64, error) {
	m.record("HorizontalLineAngles")
	if m.HorizontalLineAnglesFunc != nil {
		return m.HorizontalLineAnglesFunc(img)
	}
	return nil, nil
}

func (m *Mock) CircleCount(img image.Image) (int, error) {
	m.record("CircleCount")
	if m.CircleCountFunc != nil {
		return m.CircleCountFunc(img)
	}
	return 0, nil
}

func (m *Mock) ChannelMeans(img image.Image) (float64, float64, float64, error) {
	m.record("ChannelMeans")
	if m.ChannelMeansFunc != nil {
		return m.ChannelMeansFunc(img)
	}
	return 0, 0, 0, nil
}

func (m *Mock) HSV(img image.Image) (HSVStats, error) {
	m.record("HSV")
	if m.HSVFunc != nil {
		return m.HSVFunc(img)
	}
	return HSVStats{}, nil
}

func (m *Mock) ContrastStdDev(img image.Image) (float64, error) {
	m.record("ContrastStdDev")
	if m.ContrastStdDevFunc != nil {
		return m.ContrastStdDevFunc(img)
	}
	return 0, nil
}

func (m *Mock) NoiseEstimate(img image.Image) (float64, error) {
	m.record("NoiseEstimate")
	if m.NoiseEstimateFunc != nil {
		return m.NoiseEstimateFunc(img)
	}
	return 0, nil
}

func (m *Mock) DetectFaces(img image.Image) (int, error) {
	m.record("DetectFaces")
	if m.DetectFacesFunc != nil {
		return m.DetectFacesFunc(img)
	}
	return 0, nil
}

func (m *Mock) Close() error { return nil }

// Verify Mock implements Toolkit at compile time.
var _ Toolkit = (*Mock)(nil)
