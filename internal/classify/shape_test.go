package classify

import "testing"

func TestClassifyShape(t *testing.T) {
	tests := []struct {
		vertices int
		want     string
	}{
		{0, Circle},
		{1, Circle},
		{2, Circle},
		{3, Triangle},
		{4, Rectangle},
		{5, Pentagon},
		{6, Circle},
		{7, Circle},
		{12, Circle},
		{-1, Circle},
	}

	for _, tt := range tests {
		if got := ClassifyShape(tt.vertices); got != tt.want {
			t.Errorf("ClassifyShape(%d): got %q, want %q", tt.vertices, got, tt.want)
		}
	}
}

func TestLabel(t *testing.T) {
	if got := Label(Red, Circle); got != "Red Circle" {
		t.Errorf("got %q, want %q", got, "Red Circle")
	}
	if got := Label(LightBlue, Triangle); got != "Light Blue Triangle" {
		t.Errorf("got %q, want %q", got, "Light Blue Triangle")
	}
}
