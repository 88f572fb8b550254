// internal/app/features/dashboard/chart.go
package dashboard

import (
	"math"
	"sort"
	"strconv"

	"github.com/dalemusser/taskhub/internal/app/system/i18n"
)

// The donut is drawn with one SVG circle per segment. With this radius the
// circumference is 100 user units, so a segment's dash length equals its
// share of the ring in percent.
const (
	ChartRadius        = 100 / (2 * math.Pi)
	chartCircumference = 100.0
	// SVG strokes start at 3 o'clock; shift by a quarter turn to start at 12.
	chartStartOffset = 25.0
)

// Segment is one arc of the donut.
type Segment struct {
	// Key is the CSS modifier; Label is a message key.
	Key   string
	Label string
	Count int
	// Percent is a whole-number share. Percents of all segments sum to 100.
	Percent int

	// stroke-dasharray and stroke-dashoffset values
	DashArray  string
	DashOffset string
}

// Donut is the task progress chart.
type Donut struct {
	Total    int
	Segments []Segment
	// Empty is set when there are no tasks; the template draws a neutral ring.
	Empty bool
}

// Radius is exposed for the template's circle elements.
func (Donut) Radius() string { return formatUnits(ChartRadius) }

// BuildDonut lays out completed, in progress and other tasks on the ring.
func BuildDonut(s Summary) Donut {
	d := Donut{Total: s.TaskCount}
	if s.TaskCount <= 0 {
		d.Empty = true
		return d
	}

	parts := []Segment{
		{Key: "completed", Label: i18n.MsgCompleted, Count: s.CompletedCount},
		{Key: "in-progress", Label: i18n.MsgInProgress, Count: s.InProgressCount},
		{Key: "other", Label: i18n.MsgOther, Count: max(s.OtherCount(), 0)},
	}

	counts := make([]int, len(parts))
	for i, p := range parts {
		counts[i] = p.Count
	}
	percents := wholePercents(counts)

	offset := 0.0
	for i := range parts {
		length := float64(parts[i].Count) / float64(s.TaskCount) * chartCircumference
		parts[i].Percent = percents[i]
		parts[i].DashArray = formatUnits(length) + " " + formatUnits(chartCircumference-length)
		parts[i].DashOffset = formatUnits(chartStartOffset - offset)
		offset += length
	}

	for _, p := range parts {
		if p.Count > 0 {
			d.Segments = append(d.Segments, p)
		}
	}
	return d
}

// wholePercents rounds shares to integers that still sum to 100 using the
// largest remainder method. Ties go to the earlier entry.
func wholePercents(counts []int) []int {
	total := 0
	for _, c := range counts {
		total += c
	}
	out := make([]int, len(counts))
	if total <= 0 {
		return out
	}

	type rem struct {
		idx  int
		frac float64
	}
	rems := make([]rem, len(counts))
	assigned := 0
	for i, c := range counts {
		exact := float64(c) * 100 / float64(total)
		out[i] = int(math.Floor(exact))
		assigned += out[i]
		rems[i] = rem{idx: i, frac: exact - math.Floor(exact)}
	}

	sort.SliceStable(rems, func(a, b int) bool { return rems[a].frac > rems[b].frac })
	for i := 0; assigned < 100 && i < len(rems); i++ {
		out[rems[i].idx]++
		assigned++
	}
	return out
}

func formatUnits(f float64) string {
	return strconv.FormatFloat(f, 'f', 2, 64)
}
