package subtitle

import (
	"fmt"
)

// upper bound of an interval: a concrete line position or end of file
type Bound struct {
	line      int
	unbounded bool
}

func Bounded(line int) Bound {
	return Bound{line: line}
}

func Unbounded() Bound {
	return Bound{unbounded: true}
}

func (b Bound) IsUnbounded() bool {
	return b.unbounded
}

// Line returns the bound position; ok is false for an unbounded bound.
func (b Bound) Line() (line int, ok bool) {
	return b.line, !b.unbounded
}

func (b Bound) String() string {
	if b.unbounded {
		return "EOF"
	}
	return fmt.Sprintf("%d", b.line)
}

// closed range [Low, High] of line positions belonging to one cue
type Interval struct {
	Low  int
	High Bound
}

func (iv Interval) Contains(pos int) bool {
	if pos < iv.Low {
		return false
	}
	if high, ok := iv.High.Line(); ok {
		return pos <= high
	}
	return true
}

func (iv Interval) String() string {
	if iv.High.IsUnbounded() {
		return fmt.Sprintf("[%d, EOF)", iv.Low)
	}
	return fmt.Sprintf("[%d, %s]", iv.Low, iv.High)
}

// BuildIntervals turns strictly increasing cue starts into contiguous
// intervals. The last interval runs to end of file.
func BuildIntervals(starts []int) []Interval {
	if len(starts) == 0 {
		return nil
	}

	intervals := make([]Interval, 0, len(starts))
	for i := 0; i+1 < len(starts); i++ {
		intervals = append(intervals, Interval{
			Low:  starts[i],
			High: Bounded(starts[i+1] - 1),
		})
	}
	intervals = append(intervals, Interval{
		Low:  starts[len(starts)-1],
		High: Unbounded(),
	})
	return intervals
}

// raw line group for one cue, plus where it began in the file
type Block struct {
	Start int
	Lines []string
}

// result of grouping file lines by interval
type Partitioning struct {
	Blocks []Block
	// lines that fell outside every interval (leading junk, or the whole
	// file when no duration marker was found)
	Dropped int
}

// Partition assigns every line to its containing interval and groups
// consecutive lines sharing an interval into one block.
func Partition(lines []string, starts []int) Partitioning {
	intervals := BuildIntervals(starts)

	var (
		result  Partitioning
		current = -1
	)
	for pos, line := range lines {
		owner := -1
		for i, iv := range intervals {
			if iv.Contains(pos) {
				owner = i
				break
			}
		}
		if owner < 0 {
			result.Dropped++
			continue
		}

		if owner != current {
			result.Blocks = append(result.Blocks, Block{
				Start: intervals[owner].Low,
			})
			current = owner
		}
		last := &result.Blocks[len(result.Blocks)-1]
		last.Lines = append(last.Lines, line)
	}
	return result
}
