package numutil

import "testing"

func TestClampRestrictsToInterval(t *testing.T) {
	if v := Clamp(5, 0, 1); v != 1 {
		t.Fatalf("Clamp(5, 0, 1) = %v, want 1", v)
	}
	if v := Clamp(-5, 0, 1); v != 0 {
		t.Fatalf("Clamp(-5, 0, 1) = %v, want 0", v)
	}
	if v := Clamp(0.5, 0, 1); v != 0.5 {
		t.Fatalf("Clamp(0.5, 0, 1) = %v, want 0.5", v)
	}
}

func TestMinIntMaxInt(t *testing.T) {
	if v := MinInt(3, 7); v != 3 {
		t.Fatalf("MinInt(3, 7) = %v, want 3", v)
	}
	if v := MaxInt(3, 7); v != 7 {
		t.Fatalf("MaxInt(3, 7) = %v, want 7", v)
	}
}

func TestParseWorkers(t *testing.T) {
	tests := []struct {
		in      string
		want    int
		wantErr bool
	}{
		{in: "1", want: 1},
		{in: "8", want: 8},
		{in: "auto", want: 0},
		{in: "AUTO", want: 0},
		{in: "0", wantErr: true},
		{in: "-2", wantErr: true},
		{in: "abc", wantErr: true},
	}

	for _, tt := range tests {
		got, err := ParseWorkers(tt.in)
		if tt.wantErr {
			if err == nil {
				t.Fatalf("ParseWorkers(%q) expected error", tt.in)
			}
			continue
		}
		if err != nil {
			t.Fatalf("ParseWorkers(%q) unexpected error: %v", tt.in, err)
		}
		if got != tt.want {
			t.Fatalf("ParseWorkers(%q) = %d, want %d", tt.in, got, tt.want)
		}
	}
}
