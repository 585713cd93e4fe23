package dashboard

import "sort"

type ChartKind string

const (
	ChartDoughnut ChartKind = "doughnut"
	ChartLine     ChartKind = "line"
)

// Chart is the data behind one dashboard chart.
type Chart struct {
	Kind   ChartKind `json:"type"`
	Label  string    `json:"label,omitempty"`
	Labels []string  `json:"labels"`
	Values []float64 `json:"values"`
	Colors []string  `json:"colors"`
}

var chartPalette = []string{
	"#3B82F6", "#10B981", "#F59E0B", "#EF4444",
	"#8B5CF6", "#06B6D4", "#84CC16", "#F97316",
}

// weeklyTimeline is a placeholder until the backend exposes per-day counts.
var weeklyTimeline = struct {
	labels []string
	values []float64
}{
	labels: []string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"},
	values: []float64{12, 19, 3, 5, 2, 3, 9},
}

// typeDistributionChart builds the donut from the per-type counts, labels sorted.
func typeDistributionChart(byType map[string]int) *Chart {
	labels := make([]string, 0, len(byType))
	for name := range byType {
		labels = append(labels, name)
	}
	sort.Strings(labels)

	chart := &Chart{
		Kind:   ChartDoughnut,
		Labels: labels,
		Values: make([]float64, len(labels)),
		Colors: make([]string, len(labels)),
	}
	for i, name := range labels {
		chart.Values[i] = float64(byType[name])
		chart.Colors[i] = chartPalette[i%len(chartPalette)]
	}
	return chart
}

func timelineChart() *Chart {
	return &Chart{
		Kind:   ChartLine,
		Label:  "Events",
		Labels: append([]string(nil), weeklyTimeline.labels...),
		Values: append([]float64(nil), weeklyTimeline.values...),
		Colors: []string{chartPalette[0]},
	}
}
