package analysis

import (
	"math"
	"sort"

	"github.com/aclements/go-moremath/stats"
	"github.com/pivolan/account_analyzer/domain/models"
)

// SummaryMeasures are the rows of a describe table, in output order.
var SummaryMeasures = []string{"count", "mean", "std", "min", "25%", "50%", "75%", "max"}

// Describe builds the describe table for the selected columns.
func Describe(t *models.Table, columns []string) (*models.Summary, error) {
	summary := &models.Summary{
		Columns:  append([]string(nil), columns...),
		Measures: SummaryMeasures,
		Values:   make(map[string][]float64, len(SummaryMeasures)),
	}
	for _, name := range columns {
		values, err := numericValues(t, name)
		if err != nil {
			return nil, err
		}
		for measure, v := range describeValues(values) {
			summary.Values[measure] = append(summary.Values[measure], v)
		}
	}
	return summary, nil
}

func describeValues(values []float64) map[string]float64 {
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	std := math.NaN()
	if len(sorted) > 1 {
		std = stats.StdDev(sorted)
	}
	lo, hi := stats.Bounds(sorted)

	return map[string]float64{
		"count": float64(len(sorted)),
		"mean":  Mean(sorted),
		"std":   std,
		"min":   lo,
		"25%":   calculateQuantile(sorted, 0.25),
		"50%":   calculateQuantile(sorted, 0.5),
		"75%":   calculateQuantile(sorted, 0.75),
		"max":   hi,
	}
}

// calculateQuantile вычисляет квантиль заданного уровня
func calculateQuantile(sorted []float64, p float64) float64 {
	if len(sorted) == 0 {
		return math.NaN()
	}

	pos := p * float64(len(sorted)-1)
	floor := math.Floor(pos)
	ceil := math.Ceil(pos)

	if floor == ceil {
		return sorted[int(pos)]
	}

	// Интерполяция между двумя ближайшими значениями
	lower := sorted[int(floor)]
	upper := sorted[int(ceil)]
	fraction := pos - floor

	return lower + fraction*(upper-lower)
}
