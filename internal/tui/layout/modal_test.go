package layout

import "testing"

func TestCalculateModalWidth(t *testing.T) {
	cfg := DefaultConfig().Modal

	tests := []struct {
		name          string
		terminalWidth int
		percent       int
		want          int
	}{
		{"large terminal percent", 200, 50, 80},  // 100 clamps to max
		{"medium terminal percent", 140, 50, 70}, // 70 within bounds
		{"small terminal min width", 80, 50, 50}, // 40 clamps to min
		{"narrow terminal", 40, 50, 36},          // min 50 exceeds 40-4
		{"tiny terminal clamps to 1", 3, 50, 1},  // 3-4 < 1
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CalculateModalWidth(tt.terminalWidth, tt.percent, cfg)
			if got != tt.want {
				t.Errorf("CalculateModalWidth(%d, %d) = %d, want %d",
					tt.terminalWidth, tt.percent, got, tt.want)
			}
		})
	}
}
