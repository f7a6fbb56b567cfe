package gfx

import "testing"

func TestParseHex(t *testing.T) {
	tests := []struct {
		in      string
		want    Color
		wantErr bool
	}{
		{"#ffffff", White, false},
		{"000", Black, false},
		{"#ff000080", RGBA(255, 0, 0, 128), false},
		{"#12345", Color{}, true},
		{"#gggggg", Color{}, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseHex(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("expected error %v, got %v", tt.wantErr, err)
			}
			if got != tt.want {
				t.Fatalf("expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestColor_Lerp(t *testing.T) {
	got := Black.Lerp(White, 0.5)
	if got != (Color{0.5, 0.5, 0.5, 1}) {
		t.Fatalf("expected mid grey, got %v", got)
	}
}

func TestRegion_Empty(t *testing.T) {
	if !(Region{Width: 0, Height: 10}).Empty() {
		t.Fatalf("expected zero width to be empty")
	}
	if (Region{Width: 1, Height: 1}).Empty() {
		t.Fatalf("expected 1x1 not empty")
	}
}
