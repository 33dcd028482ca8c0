package analysis

import (
	"fmt"
	"sort"

	"github.com/aclements/go-moremath/stats"
	"github.com/pivolan/account_analyzer/domain/models"
	"github.com/shopspring/decimal"
)

// ParseStatistics turns command line identifiers into statistics, keeping the
// first occurrence of a repeated identifier.
func ParseStatistics(ids []string) ([]models.Statistic, error) {
	seen := make(map[models.Statistic]bool, len(ids))
	out := make([]models.Statistic, 0, len(ids))
	for _, id := range ids {
		stat, err := models.ParseStatistic(id)
		if err != nil {
			return nil, err
		}
		if seen[stat] {
			continue
		}
		seen[stat] = true
		out = append(out, stat)
	}
	return out, nil
}

// ComputeStats applies every requested statistic to every column. It fails
// before returning anything if one pair can not be computed.
func ComputeStats(ids []string, t *models.Table, columns []string) (*models.StatsResult, error) {
	requested, err := ParseStatistics(ids)
	if err != nil {
		return nil, err
	}

	values := make(map[string][]float64, len(columns))
	for _, name := range columns {
		v, err := numericValues(t, name)
		if err != nil {
			return nil, err
		}
		values[name] = v
	}

	result := &models.StatsResult{
		Stats:   requested,
		Columns: append([]string(nil), columns...),
		Values:  make(map[models.Statistic]map[string]float64, len(requested)),
	}
	for _, stat := range requested {
		byColumn := make(map[string]float64, len(columns))
		for _, name := range columns {
			byColumn[name] = Reduce(stat, values[name])
		}
		result.Values[stat] = byColumn
	}
	return result, nil
}

// numericValues returns the present values of a numeric column.
func numericValues(t *models.Table, name string) ([]float64, error) {
	c, ok := t.Column(name)
	if !ok {
		return nil, fmt.Errorf("column %q: %w", name, models.ErrColumnNotFound)
	}
	if !c.IsNumeric() {
		return nil, fmt.Errorf("column %q is %s: %w", name, c.Kind, models.ErrNotNumeric)
	}
	v := c.Values()
	if len(v) == 0 {
		return nil, &models.EmptyColumnError{Column: name}
	}
	return v, nil
}

// Reduce applies one statistic to a non-empty slice.
func Reduce(stat models.Statistic, values []float64) float64 {
	switch stat {
	case models.StatMean:
		return Mean(values)
	case models.StatMedian:
		return Median(values)
	case models.StatMin:
		lo, _ := stats.Bounds(values)
		return lo
	case models.StatMax:
		_, hi := stats.Bounds(values)
		return hi
	}
	panic(fmt.Sprintf("analysis: unhandled statistic %d", int(stat)))
}

// Mean sums with decimal arithmetic so long columns of money amounts do not
// pick up float rounding drift. The division stays in float64: decimal Div
// rounds to 16 places and would zero out tiny values.
func Mean(values []float64) float64 {
	sum := decimal.Zero
	for _, v := range values {
		sum = sum.Add(decimal.NewFromFloat(v))
	}
	return sum.InexactFloat64() / float64(len(values))
}

// Median returns the middle value, or the mean of the two middle values.
func Median(values []float64) float64 {
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	if len(sorted)%2 == 0 {
		return (sorted[len(sorted)/2-1] + sorted[len(sorted)/2]) / 2
	}
	return sorted[len(sorted)/2]
}
