// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pagerange

import (
	"math"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRangeAll(t *testing.T) {
	tests := []struct {
		name string
		r    Range
		want []int
	}{
		{name: "single page", r: Range{Start: 8, End: 8}, want: []int{8}},
		{name: "two pages", r: Range{Start: 8, End: 9}, want: []int{8, 9}},
		{name: "from one", r: Range{Start: 1, End: 4}, want: []int{1, 2, 3, 4}},
		{name: "inverted is empty", r: Range{Start: 5, End: 4}, want: nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := slices.Collect(tt.r.All())
			assert.Equal(t, tt.want, got)
			assert.Equal(t, len(tt.want), tt.r.Len())
		})
	}
}

func TestRangeAll_Restartable(t *testing.T) {
	r := Range{Start: 3, End: 5}
	seq := r.All()
	first := slices.Collect(seq)
	second := slices.Collect(seq)
	assert.Equal(t, first, second)
}

func TestRangeAll_EarlyBreak(t *testing.T) {
	var seen []int
	for p := range (Range{Start: 1, End: 10}).All() {
		if p > 2 {
			break
		}
		seen = append(seen, p)
	}
	assert.Equal(t, []int{1, 2}, seen)
}

func TestRangeValidate(t *testing.T) {
	assert.NoError(t, Range{Start: 1, End: 1}.Validate())
	assert.NoError(t, Range{Start: 8, End: 9}.Validate())
	assert.Error(t, Range{Start: 0, End: 3}.Validate())
	assert.Error(t, Range{Start: 4, End: 3}.Validate())
}

func TestRangeString(t *testing.T) {
	assert.Equal(t, "8-9", Range{Start: 8, End: 9}.String())
}

func TestRangeAll_IntBounds(t *testing.T) {
	tests := []struct {
		name string
		r    Range
		want []int
	}{
		{name: "ends at max int", r: Range{Start: math.MaxInt - 1, End: math.MaxInt}, want: []int{math.MaxInt - 1, math.MaxInt}},
		{name: "single max int", r: Range{Start: math.MaxInt, End: math.MaxInt}, want: []int{math.MaxInt}},
		{name: "starts at min int", r: Range{Start: math.MinInt, End: math.MinInt + 1}, want: []int{math.MinInt, math.MinInt + 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got []int
			for p := range tt.r.All() {
				got = append(got, p)
				if len(got) > len(tt.want) {
					t.Fatalf("sequence did not stop after %d values: %v", len(tt.want), got)
				}
			}
			assert.Equal(t, tt.want, got)
			assert.Equal(t, len(tt.want), tt.r.Len())
		})
	}
}

func TestRangeLen_Saturates(t *testing.T) {
	tests := []struct {
		name string
		r    Range
		want int
	}{
		{name: "min int to zero", r: Range{Start: math.MinInt, End: 0}, want: math.MaxInt},
		{name: "whole int range", r: Range{Start: math.MinInt, End: math.MaxInt}, want: math.MaxInt},
		{name: "one to max int", r: Range{Start: 1, End: math.MaxInt}, want: math.MaxInt},
		{name: "zero to max int minus one", r: Range{Start: 0, End: math.MaxInt - 1}, want: math.MaxInt},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.r.Len())
		})
	}
}
