package utils

import (
	"math"
	"testing"
)

func TestHaversineDistanceSamePoint(t *testing.T) {
	if d := HaversineDistance(55.7558, 37.6173, 55.7558, 37.6173); d != 0 {
		t.Errorf("expected 0 for identical points, got %f", d)
	}
}

func TestHaversineDistanceOneDegreeLongitude(t *testing.T) {
	// One degree of longitude at the equator is R * pi / 180.
	want := EarthRadiusMeters * math.Pi / 180
	got := HaversineDistance(0, 0, 0, 1)
	if math.Abs(got-want) > 0.001 {
		t.Errorf("expected %f, got %f", want, got)
	}
}

func TestHaversineDistanceAntipodal(t *testing.T) {
	// Antipodal points must not produce NaN from a sqrt of a negative
	// rounding artifact; the distance is half the circumference.
	got := HaversineDistance(0, 0, 0, 180)
	if math.IsNaN(got) {
		t.Fatal("got NaN for antipodal points")
	}
	want := EarthRadiusMeters * math.Pi
	if math.Abs(got-want) > 0.01 {
		t.Errorf("expected %f, got %f", want, got)
	}
}

func TestHaversineDistanceSymmetry(t *testing.T) {
	a := HaversineDistance(55.7558, 37.6173, 55.7033, 37.5308)
	b := HaversineDistance(55.7033, 37.5308, 55.7558, 37.6173)
	if math.Abs(a-b) > 1e-9 {
		t.Errorf("distance not symmetric: %f vs %f", a, b)
	}
}

func TestFormatDistance(t *testing.T) {
	tests := []struct {
		meters float64
		want   string
	}{
		{300, "300 м"},
		{299.7, "300 м"},
		{999, "999 м"},
		{1000, "1 км"},
		{1500, "1.5 км"},
		{1540, "1.5 км"},
		{12345, "12.3 км"},
		{0, "0 м"},
	}
	for _, tt := range tests {
		if got := FormatDistance(tt.meters); got != tt.want {
			t.Errorf("FormatDistance(%v) = %q, want %q", tt.meters, got, tt.want)
		}
	}
}
