package week

import "testing"

func TestCenterOffset(t *testing.T) {
	tests := []struct {
		name                         string
		index, size, viewport, count int
		want                         int
	}{
		{name: "middle item", index: 3, size: 10, viewport: 30, count: 7, want: 20},
		{name: "clamped at start", index: 0, size: 10, viewport: 30, count: 7, want: 0},
		{name: "clamped at end", index: 6, size: 10, viewport: 30, count: 7, want: 40},
		{name: "viewport larger than content", index: 3, size: 10, viewport: 100, count: 7, want: 0},
		{name: "out of range index falls back to first", index: 12, size: 10, viewport: 30, count: 7, want: 0},
		{name: "zero viewport", index: 3, size: 10, viewport: 0, count: 7, want: 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CenterOffset(tt.index, tt.size, tt.viewport, tt.count); got != tt.want {
				t.Errorf("CenterOffset() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestVisibleRange(t *testing.T) {
	tests := []struct {
		name                  string
		index, visible, count int
		wantStart, wantEnd    int
	}{
		{name: "all fit", index: 3, visible: 10, count: 7, wantStart: 0, wantEnd: 7},
		{name: "today centred", index: 45, visible: 3, count: 49, wantStart: 44, wantEnd: 47},
		{name: "last day", index: 48, visible: 3, count: 49, wantStart: 46, wantEnd: 49},
		{name: "first day", index: 0, visible: 4, count: 49, wantStart: 0, wantEnd: 4},
		{name: "nothing visible", index: 0, visible: 0, count: 49, wantStart: 0, wantEnd: 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, end := VisibleRange(tt.index, tt.visible, tt.count)
			if start != tt.wantStart || end != tt.wantEnd {
				t.Errorf("VisibleRange() = [%d,%d), want [%d,%d)", start, end, tt.wantStart, tt.wantEnd)
			}
		})
	}
}
