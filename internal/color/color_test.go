package color

import (
	"math"
	"testing"
)

func TestBriPercent(t *testing.T) {
	cases := []struct {
		bri  uint8
		want int
	}{
		{1, 0},
		{254, 100},
		{128, 50}, // (128-1)/253 ~ 50.2%
		{0, 0},
	}
	for _, tc := range cases {
		if got := BriPercent(tc.bri); got != tc.want {
			t.Errorf("BriPercent(%d) = %d, want %d", tc.bri, got, tc.want)
		}
	}
}

func TestClampBri(t *testing.T) {
	if ClampBri(0) != 1 {
		t.Error("brightness below range should clamp to 1")
	}
	if ClampBri(-10) != 1 {
		t.Error("negative brightness should clamp to 1")
	}
	if ClampBri(300) != 254 {
		t.Error("brightness above range should clamp to 254")
	}
	if ClampBri(100) != 100 {
		t.Error("in-range brightness should pass through")
	}
}

func TestHSV_RGB_Primaries(t *testing.T) {
	cases := []struct {
		name    string
		in      HSV
		r, g, b float64
	}{
		{"red", HSV{Hue: 0, Sat: 254, Bri: 254}, 1, 0, 0},
		{"green", HSV{Hue: 21845, Sat: 254, Bri: 254}, 0, 1, 0},
		{"blue", HSV{Hue: 43690, Sat: 254, Bri: 254}, 0, 0, 1},
		{"white", HSV{Hue: 0, Sat: 0, Bri: 254}, 1, 1, 1},
	}
	for _, tc := range cases {
		r, g, b := tc.in.RGB()
		if !close(r, tc.r) || !close(g, tc.g) || !close(b, tc.b) {
			t.Errorf("%s: RGB() = (%.3f, %.3f, %.3f), want (%.0f, %.0f, %.0f)",
				tc.name, r, g, b, tc.r, tc.g, tc.b)
		}
	}
}

func TestShiftHue_Wraparound(t *testing.T) {
	if got := ShiftHue(65535, 1); got != 0 {
		t.Errorf("ShiftHue(65535, 1) = %d, want 0", got)
	}
	if got := ShiftHue(0, -1); got != 65535 {
		t.Errorf("ShiftHue(0, -1) = %d, want 65535", got)
	}
	if got := ShiftHue(1000, 500); got != 1500 {
		t.Errorf("ShiftHue(1000, 500) = %d, want 1500", got)
	}
}

func TestShiftSat_Clamps(t *testing.T) {
	if got := ShiftSat(250, 10); got != 254 {
		t.Errorf("ShiftSat(250, 10) = %d, want 254", got)
	}
	if got := ShiftSat(3, -10); got != 0 {
		t.Errorf("ShiftSat(3, -10) = %d, want 0", got)
	}
}

func close(a, b float64) bool {
	return math.Abs(a-b) < 0.01
}
