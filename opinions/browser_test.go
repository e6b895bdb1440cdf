// Copyright (c) 2026 The Crewkerne Gazette.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package opinions

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolveSwipe(t *testing.T) {
	prev := "op-prev"
	next := "op-next"

	tests := []struct {
		name     string
		startX   int
		endX     int
		prevID   *string
		nextID   *string
		wantID   string
		wantMove bool
	}{
		{name: "left swipe advances", startX: 300, endX: 240, prevID: &prev, nextID: &next, wantID: "op-next", wantMove: true},
		{name: "right swipe goes back", startX: 240, endX: 300, prevID: &prev, nextID: &next, wantID: "op-prev", wantMove: true},
		{name: "exactly threshold is a tap", startX: 300, endX: 250, prevID: &prev, nextID: &next},
		{name: "short drag ignored", startX: 300, endX: 280, prevID: &prev, nextID: &next},
		{name: "left swipe at newest is a no-op", startX: 300, endX: 240, prevID: &prev, nextID: nil},
		{name: "right swipe at oldest is a no-op", startX: 240, endX: 300, prevID: nil, nextID: &next},
		{name: "no neighbours at all", startX: 400, endX: 100, prevID: nil, nextID: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, ok := ResolveSwipe(tt.startX, tt.endX, tt.prevID, tt.nextID)

			assert.Equal(t, tt.wantMove, ok)
			assert.Equal(t, tt.wantID, id)
		})
	}
}
