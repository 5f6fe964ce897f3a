package week

// CenterOffset returns the scroll offset that puts item index in the middle
// of a viewport, clamped so the view never scrolls past either end. Units are
// whatever the caller measures items in (columns for a horizontal strip, lines
// for a vertical list).
func CenterOffset(index, itemSize, viewportSize, itemCount int) int {
	if itemSize <= 0 || viewportSize <= 0 || itemCount <= 0 {
		return 0
	}
	if index < 0 || index >= itemCount {
		index = 0
	}
	offset := index*itemSize - viewportSize/2 + itemSize/2
	maxOffset := itemCount*itemSize - viewportSize
	if offset > maxOffset {
		offset = maxOffset
	}
	if offset < 0 {
		offset = 0
	}
	return offset
}

// VisibleRange returns the half-open range of item indexes to draw when
// visible items fit on screen and index should sit in the middle.
func VisibleRange(index, visible, itemCount int) (start, end int) {
	if visible <= 0 || itemCount <= 0 {
		return 0, 0
	}
	if visible >= itemCount {
		return 0, itemCount
	}
	start = CenterOffset(index, 1, visible, itemCount)
	return start, start + visible
}
