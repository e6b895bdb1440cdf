// Copyright (c) 2026 The Crewkerne Gazette.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package opinions

// SwipeThreshold is the minimum horizontal travel, in cells/pixels, for a
// drag to count as a swipe. Anything smaller is a tap or a scroll.
const SwipeThreshold = 50

// ResolveSwipe turns a horizontal gesture into a navigation target within
// the opinion sequence. Finger moving left (start right of end) advances to
// next; finger moving right goes back to prev. A gesture at the edge of the
// sequence (missing neighbour) is a no-op, not an error.
func ResolveSwipe(startX, endX int, prevID, nextID *string) (string, bool) {
	delta := startX - endX

	switch {
	case delta > SwipeThreshold:
		if nextID != nil {
			return *nextID, true
		}
	case delta < -SwipeThreshold:
		if prevID != nil {
			return *prevID, true
		}
	}
	return "", false
}
