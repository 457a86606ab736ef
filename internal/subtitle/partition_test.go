package subtitle

import (
	"reflect"
	"testing"
)

func TestBuildIntervals(t *testing.T) {
	tests := []struct {
		name   string
		starts []int
		want   []Interval
	}{
		{"zero boundaries", nil, nil},
		{
			"one boundary",
			[]int{0},
			[]Interval{{Low: 0, High: Unbounded()}},
		},
		{
			"three boundaries",
			[]int{0, 4, 9},
			[]Interval{
				{Low: 0, High: Bounded(3)},
				{Low: 4, High: Bounded(8)},
				{Low: 9, High: Unbounded()},
			},
		},
		{
			"adjacent boundaries",
			[]int{2, 3},
			[]Interval{
				{Low: 2, High: Bounded(2)},
				{Low: 3, High: Unbounded()},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := BuildIntervals(tt.starts)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("BuildIntervals(%v) = %v, want %v", tt.starts, got, tt.want)
			}
		})
	}
}

func TestIntervalContains(t *testing.T) {
	closed := Interval{Low: 2, High: Bounded(4)}
	open := Interval{Low: 5, High: Unbounded()}

	for pos, want := range map[int]bool{1: false, 2: true, 4: true, 5: false} {
		if got := closed.Contains(pos); got != want {
			t.Errorf("%v.Contains(%d) = %v, want %v", closed, pos, got, want)
		}
	}
	for pos, want := range map[int]bool{4: false, 5: true, 1 << 30: true} {
		if got := open.Contains(pos); got != want {
			t.Errorf("%v.Contains(%d) = %v, want %v", open, pos, got, want)
		}
	}
	if closed.String() != "[2, 4]" {
		t.Errorf("expected [2, 4], got %s", closed)
	}
	if open.String() != "[5, EOF)" {
		t.Errorf("expected [5, EOF), got %s", open)
	}
}

func TestPartition(t *testing.T) {
	lines := []string{
		"1", "00:00:01,000 --> 00:00:02,000", "A", "",
		"2", "00:00:03,000 --> 00:00:04,000", "B", "C",
	}

	got := Partition(lines, []int{0, 4})

	want := []Block{
		{Start: 0, Lines: []string{"1", "00:00:01,000 --> 00:00:02,000", "A", ""}},
		{Start: 4, Lines: []string{"2", "00:00:03,000 --> 00:00:04,000", "B", "C"}},
	}
	if !reflect.DeepEqual(got.Blocks, want) {
		t.Errorf("expected blocks %v, got %v", want, got.Blocks)
	}
	if got.Dropped != 0 {
		t.Errorf("expected no dropped lines, got %d", got.Dropped)
	}
}

func TestPartitionCoversEveryLineAfterFirstBoundary(t *testing.T) {
	lines := []string{"a", "b", "c", "d", "e", "f", "g"}
	starts := []int{1, 2, 5}

	got := Partition(lines, starts)

	total := 0
	for _, block := range got.Blocks {
		total += len(block.Lines)
	}
	if total+got.Dropped != len(lines) {
		t.Errorf("expected %d lines accounted for, got %d", len(lines), total+got.Dropped)
	}
	if got.Dropped != 1 {
		t.Errorf("expected the line before the first boundary to be dropped, got %d", got.Dropped)
	}
	if len(got.Blocks) != 3 {
		t.Fatalf("expected 3 blocks, got %d", len(got.Blocks))
	}
	if !reflect.DeepEqual(got.Blocks[2].Lines, []string{"f", "g"}) {
		t.Errorf("last block should run to end of file, got %v", got.Blocks[2].Lines)
	}
}

// With no boundaries there are no intervals, so every line is dropped and
// no cue is produced.
func TestPartitionWithoutBoundariesDropsEverything(t *testing.T) {
	lines := []string{"just", "some", "text"}

	got := Partition(lines, nil)

	if len(got.Blocks) != 0 {
		t.Errorf("expected no blocks, got %v", got.Blocks)
	}
	if got.Dropped != len(lines) {
		t.Errorf("expected %d dropped lines, got %d", len(lines), got.Dropped)
	}
}
