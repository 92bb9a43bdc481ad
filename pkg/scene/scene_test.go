package scene

import (
	"testing"

	"github.com/lenslab/go-lenscoach/pkg/analyzer"
	"github.com/lenslab/go-lenscoach/pkg/camera"
)

func TestClassifyModeWinsOverFaces(t *testing.T) {
	a := analyzer.DefaultAnalysis()
	a.FaceCount = 3
	a.Success = true

	state := camera.State{Mode: camera.ModeMacro, Zoom: 1.0}
	if got := Classify(state, &a); got != LabelMacro {
		t.Errorf("macro mode: got %q, want %q", got, LabelMacro)
	}

	state.Mode = camera.ModeFood
	if got := Classify(state, &a); got != LabelFood {
		t.Errorf("food mode: got %q, want %q", got, LabelFood)
	}
}

func TestClassifyFaces(t *testing.T) {
	tests := []struct {
		name  string
		front bool
		faces int
		want  Label
	}{
		{"solo selfie", true, 1, LabelSoloSelfie},
		{"group selfie", true, 2, LabelGroupSelfie},
		{"group photo", false, 3, LabelGroupPhoto},
		{"portrait", false, 1, LabelPortrait},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := analyzer.DefaultAnalysis()
			a.FaceCount = tt.faces
			a.Brightness = 128
			a.Success = true
			state := camera.State{Mode: camera.ModePhoto, FrontCamera: tt.front, Zoom: 1.0}
			if got := Classify(state, &a); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestClassifyBrightnessBands(t *testing.T) {
	state := camera.State{Mode: camera.ModePhoto, Zoom: 1.0}

	a := analyzer.DefaultAnalysis()
	a.Brightness = 40
	a.Success = true
	if got := Classify(state, &a); got != LabelLowLight {
		t.Errorf("dark frame: got %q, want %q", got, LabelLowLight)
	}

	a.Brightness = 200
	if got := Classify(state, &a); got != LabelBright {
		t.Errorf("bright frame: got %q, want %q", got, LabelBright)
	}

	// Failed analysis must not trigger brightness labels.
	a.Brightness = 40
	a.Success = false
	if got := Classify(state, &a); got != LabelGeneral {
		t.Errorf("failed analysis: got %q, want %q", got, LabelGeneral)
	}
}

func TestClassifyZoomAndGeneral(t *testing.T) {
	a := analyzer.DefaultAnalysis()
	a.Brightness = 128
	a.Success = true

	state := camera.State{Mode: camera.ModePhoto, Zoom: 2.5}
	if got := Classify(state, &a); got != LabelZoomed {
		t.Errorf("zoomed: got %q, want %q", got, LabelZoomed)
	}

	state.Zoom = 1.0
	if got := Classify(state, &a); got != LabelGeneral {
		t.Errorf("general: got %q, want %q", got, LabelGeneral)
	}
}

func TestClassifyNilAnalysis(t *testing.T) {
	state := camera.State{Mode: camera.ModePhoto, Zoom: 1.0, LowLight: true}
	if got := Classify(state, nil); got != LabelLowLight {
		t.Errorf("nil analysis low-light state: got %q, want %q", got, LabelLowLight)
	}

	state.LowLight = false
	state.Zoom = 3.0
	if got := Classify(state, nil); got != LabelZoomed {
		t.Errorf("nil analysis zoomed: got %q, want %q", got, LabelZoomed)
	}
}
