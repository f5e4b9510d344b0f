package detector

import (
	"errors"
	"testing"
)

func TestHandLandmarks_Pixel(t *testing.T) {
	hand := HandLandmarks{}
	hand.Points[IndexTip] = Point3D{X: 0.5, Y: 0.375}
	hand.Points[Wrist] = Point3D{X: 0.999, Y: 0.001}

	tests := []struct {
		name  string
		index int
		w, h  int
		wantX float64
		wantY float64
	}{
		{name: "index tip at 640x480", index: IndexTip, w: 640, h: 480, wantX: 320, wantY: 180},
		{name: "truncates toward zero", index: Wrist, w: 640, h: 480, wantX: 639, wantY: 0},
		{name: "negative index", index: -1, w: 640, h: 480, wantX: 0, wantY: 0},
		{name: "index past end", index: NumLandmarks, w: 640, h: 480, wantX: 0, wantY: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			x, y := hand.Pixel(tt.index, tt.w, tt.h)
			if x != tt.wantX || y != tt.wantY {
				t.Errorf("Pixel() = (%v, %v), want (%v, %v)", x, y, tt.wantX, tt.wantY)
			}
		})
	}

	t.Run("nil hand", func(t *testing.T) {
		var nilHand *HandLandmarks
		x, y := nilHand.Pixel(IndexTip, 640, 480)
		if x != 0 || y != 0 {
			t.Errorf("Pixel() on nil = (%v, %v), want origin", x, y)
		}
	})
}

func TestHandLandmarks_Above(t *testing.T) {
	gun := FingerGunLandmarks()

	if !gun.Above(IndexTip, IndexPIP) {
		t.Error("finger gun index tip should be above its middle joint")
	}
	if gun.Above(MiddleTip, MiddlePIP) {
		t.Error("finger gun middle tip should be below its middle joint")
	}
	if gun.Above(IndexTip, NumLandmarks) {
		t.Error("out of range index should report false")
	}
}

func TestPrimary(t *testing.T) {
	if Primary(nil) != nil {
		t.Error("expected nil for no hands")
	}

	hands := []HandLandmarks{FingerGunLandmarks(), OpenPalmLandmarks()}
	got := Primary(hands)
	if got == nil {
		t.Fatal("expected first hand")
	}
	if got != &hands[0] {
		t.Error("Primary should point at the first element")
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.MaxHands != 1 {
		t.Errorf("MaxHands = %d, want 1", cfg.MaxHands)
	}
	if cfg.MinConfidence != 0.7 {
		t.Errorf("MinConfidence = %v, want 0.7", cfg.MinConfidence)
	}
	if cfg.MinTrackingConf != 0.5 {
		t.Errorf("MinTrackingConf = %v, want 0.5", cfg.MinTrackingConf)
	}
}

func TestMockDetector(t *testing.T) {
	t.Run("returns empty hands by default", func(t *testing.T) {
		mock := NewMockDetector()

		hands, err := mock.Detect(nil)

		if err != nil {
			t.Errorf("unexpected error: %v", err)
		}
		if hands != nil {
			t.Errorf("expected nil hands, got %v", hands)
		}
	})

	t.Run("returns configured hands", func(t *testing.T) {
		mock := NewMockDetector()
		mock.SetHands([]HandLandmarks{FingerGunLandmarks()})

		hands, err := mock.Detect(nil)

		if err != nil {
			t.Errorf("unexpected error: %v", err)
		}
		if len(hands) != 1 {
			t.Errorf("expected 1 hand, got %d", len(hands))
		}
		if mock.Calls() != 1 {
			t.Errorf("Calls() = %d, want 1", mock.Calls())
		}
	})

	t.Run("returns configured error", func(t *testing.T) {
		mock := NewMockDetector()

		expectedErr := errors.New("detection failed")
		mock.SetError(expectedErr)

		hands, err := mock.Detect(nil)

		if !errors.Is(err, expectedErr) {
			t.Errorf("expected error %v, got %v", expectedErr, err)
		}
		if hands != nil {
			t.Errorf("expected nil hands when error is set, got %v", hands)
		}
	})

	t.Run("implements Detector interface", func(t *testing.T) {
		var _ Detector = (*MockDetector)(nil)
		var _ Detector = (*MediaPipeDetector)(nil)
	})
}

func TestPresets(t *testing.T) {
	t.Run("finger gun has index extended and middle bent", func(t *testing.T) {
		lm := FingerGunLandmarks()
		if lm.Points[IndexTip].Y >= lm.Points[IndexPIP].Y {
			t.Error("index tip should be above index PIP")
		}
		if lm.Points[MiddleTip].Y <= lm.Points[MiddlePIP].Y {
			t.Error("middle tip should be below middle PIP")
		}
	})

	t.Run("open palm has middle finger extended", func(t *testing.T) {
		lm := OpenPalmLandmarks()
		if lm.Points[MiddleTip].Y >= lm.Points[MiddlePIP].Y {
			t.Error("open palm middle tip should be above middle PIP")
		}
	})

	t.Run("fist has index curled", func(t *testing.T) {
		lm := FistLandmarks()
		if lm.Points[IndexTip].Y <= lm.Points[IndexPIP].Y {
			t.Error("fist index tip should be below index PIP")
		}
	})
}

func TestParseResponse(t *testing.T) {
	t.Run("decodes hands", func(t *testing.T) {
		line := []byte(`{"hands":[{"points":[{"x":0.1,"y":0.2,"z":0.3}],"handedness":"Left","score":0.8}]}`)
		hands, err := parseResponse(line, 1)
		if err != nil {
			t.Fatalf("parseResponse() error = %v", err)
		}
		if len(hands) != 1 {
			t.Fatalf("expected 1 hand, got %d", len(hands))
		}
		if hands[0].Handedness != "Left" {
			t.Errorf("handedness = %q, want Left", hands[0].Handedness)
		}
		if hands[0].Points[Wrist].Y != 0.2 {
			t.Errorf("wrist Y = %v, want 0.2", hands[0].Points[Wrist].Y)
		}
	})

	t.Run("caps hand count", func(t *testing.T) {
		line := []byte(`{"hands":[{"points":[]},{"points":[]},{"points":[]}]}`)
		hands, err := parseResponse(line, 1)
		if err != nil {
			t.Fatalf("parseResponse() error = %v", err)
		}
		if len(hands) != 1 {
			t.Errorf("expected 1 hand after cap, got %d", len(hands))
		}
	})

	t.Run("rejects malformed json", func(t *testing.T) {
		if _, err := parseResponse([]byte("not json"), 1); err == nil {
			t.Error("expected error for malformed response")
		}
	})
}
