// Package metrics computes every number the dashboards show. All
// functions are pure over one dataset snapshot plus a resolved role map;
// rendering happens elsewhere.
package metrics

import (
	"math"

	"github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/stat"

	"skillboard/domain/columns"
	"skillboard/domain/tabular"
)

// Category labels one student's improvement for the personalized insight.
type Category string

const (
	CategoryExcellent    Category = "Excellent Improvement"
	CategoryStrong       Category = "Strong Improvement"
	CategoryModerate     Category = "Moderate Improvement"
	CategoryNeutral      Category = "Neutral"
	CategoryNeedsWork    Category = "Needs Improvement"
	CategoryInsufficient Category = "Insufficient Data"
)

// Tone maps a category to its visual band on the insight box.
func (c Category) Tone() string {
	switch c {
	case CategoryExcellent, CategoryStrong:
		return "improved"
	case CategoryModerate, CategoryNeutral:
		return "neutral"
	default:
		return "needs-improvement"
	}
}

// CategorizeImprovement buckets a single row. Missing either score wins
// over every numeric threshold; the numeric bands are inclusive at their
// lower bound and evaluated in strict descending order.
func CategorizeImprovement(pre, post tabular.Cell) Category {
	preVal, preOK := pre.NumberValue()
	postVal, postOK := post.NumberValue()
	if !preOK || !postOK {
		return CategoryInsufficient
	}

	improvement := postVal - preVal
	switch {
	case improvement >= 50:
		return CategoryExcellent
	case improvement >= 20:
		return CategoryStrong
	case improvement >= 5:
		return CategoryModerate
	case improvement >= -5:
		return CategoryNeutral
	default:
		return CategoryNeedsWork
	}
}

// CohortBucket buckets an improvement value for the distribution chart.
// The thresholds differ from CategorizeImprovement; the two scales are
// separate and stay separate.
func CohortBucket(improvement float64) string {
	switch {
	case improvement >= 50:
		return "Excellent (>=50%)"
	case improvement >= 20:
		return "Strong (20-49%)"
	case improvement >= 0:
		return "Moderate (0-19%)"
	default:
		return "Negative (<0%)"
	}
}

// CohortBucketOrder fixes the legend order of the distribution chart.
var CohortBucketOrder = []string{
	"Excellent (>=50%)",
	"Strong (20-49%)",
	"Moderate (0-19%)",
	"Negative (<0%)",
}

// Improvement is one row's post-minus-pre delta. Valid is false when
// either operand is missing; such rows are excluded from aggregates but
// still surface as Insufficient Data.
type Improvement struct {
	RowIndex int
	Value    float64
	Valid    bool
}

// Overview holds the aggregate score cards. Means are NaN when no
// numeric values exist (header-only upload), which the views render as
// an insufficient-data state rather than a number.
type Overview struct {
	PreMean  float64
	PostMean float64
	MeanGain float64
}

// HasData reports whether the overview means are renderable numbers.
func (o Overview) HasData() bool {
	return !math.IsNaN(o.PreMean) && !math.IsNaN(o.PostMean)
}

func columnMean(ds *tabular.Dataset, column string) float64 {
	values := ds.NumericValues(column)
	if len(values) == 0 {
		return math.NaN()
	}
	mean, err := stats.Mean(values)
	if err != nil {
		return math.NaN()
	}
	return mean
}

// ComputeOverview computes pre mean, post mean and their difference,
// ignoring missing values.
func ComputeOverview(ds *tabular.Dataset, rm columns.RoleMap) (Overview, bool) {
	preCol, preOK := rm.Column(columns.RolePreScore)
	postCol, postOK := rm.Column(columns.RolePostScore)
	if !preOK || !postOK {
		return Overview{}, false
	}

	o := Overview{
		PreMean:  columnMean(ds, preCol),
		PostMean: columnMean(ds, postCol),
	}
	o.MeanGain = o.PostMean - o.PreMean
	return o, true
}

// RelativeGainPercent is the class-average gain relative to the pre mean,
// 0 when the pre mean is not positive.
func RelativeGainPercent(o Overview) float64 {
	if !o.HasData() || o.PreMean <= 0 {
		return 0
	}
	return (o.PostMean - o.PreMean) / o.PreMean * 100
}

// Improvements computes the per-row delta for every dataset row.
func Improvements(ds *tabular.Dataset, rm columns.RoleMap) ([]Improvement, bool) {
	preCol, preOK := rm.Column(columns.RolePreScore)
	postCol, postOK := rm.Column(columns.RolePostScore)
	if !preOK || !postOK {
		return nil, false
	}

	pre := ds.ColumnValues(preCol)
	post := ds.ColumnValues(postCol)
	result := make([]Improvement, len(pre))
	for i := range pre {
		preVal, preNum := pre[i].NumberValue()
		postVal, postNum := post[i].NumberValue()
		result[i] = Improvement{RowIndex: i}
		if preNum && postNum {
			result[i].Value = postVal - preVal
			result[i].Valid = true
		}
	}
	return result, true
}

// ClassAverageGain is the mean improvement over rows with both scores.
// NaN when no row qualifies.
func ClassAverageGain(improvements []Improvement) float64 {
	var values []float64
	for _, imp := range improvements {
		if imp.Valid {
			values = append(values, imp.Value)
		}
	}
	if len(values) == 0 {
		return math.NaN()
	}
	mean, err := stats.Mean(values)
	if err != nil {
		return math.NaN()
	}
	return mean
}

// Counts summarizes the direction of change over valid rows.
type Counts struct {
	Improved  int
	Unchanged int
	Declined  int
}

// CountDirections tallies improved/unchanged/declined over rows with
// both scores present.
func CountDirections(improvements []Improvement) Counts {
	var c Counts
	for _, imp := range improvements {
		if !imp.Valid {
			continue
		}
		switch {
		case imp.Value > 0:
			c.Improved++
		case imp.Value < 0:
			c.Declined++
		default:
			c.Unchanged++
		}
	}
	return c
}

// CohortBuckets counts valid improvements per distribution bucket, in
// CohortBucketOrder.
func CohortBuckets(improvements []Improvement) map[string]int {
	buckets := make(map[string]int, len(CohortBucketOrder))
	for _, name := range CohortBucketOrder {
		buckets[name] = 0
	}
	for _, imp := range improvements {
		if imp.Valid {
			buckets[CohortBucket(imp.Value)]++
		}
	}
	return buckets
}

// countStrictlyLess counts valid improvements strictly below value. Ties
// are not counted: tied students share a percentile and a rank.
func countStrictlyLess(improvements []Improvement, value float64) int {
	count := 0
	for _, imp := range improvements {
		if imp.Valid && imp.Value < value {
			count++
		}
	}
	return count
}

// Percentile is the share of the cohort strictly below the given
// improvement, over the full row count, expressed 0-100.
func Percentile(improvements []Improvement, value float64) float64 {
	total := len(improvements)
	if total == 0 {
		return 0
	}
	return float64(countStrictlyLess(improvements, value)) / float64(total) * 100
}

// Rank derives class rank from the same strictly-less count: rank 1 is
// best, computed as total minus the count below.
func Rank(improvements []Improvement, value float64) int {
	return len(improvements) - countStrictlyLess(improvements, value)
}

// CorrelationMatrix is a pairwise Pearson matrix over numeric columns.
type CorrelationMatrix struct {
	Columns []string
	Values  [][]float64
}

// ComputeCorrelationMatrix correlates every pair of numeric columns.
// Rows carrying a missing value in ANY selected column are dropped for
// the whole matrix, not per pair.
func ComputeCorrelationMatrix(ds *tabular.Dataset) CorrelationMatrix {
	cols := ds.NumericColumns()
	matrix := CorrelationMatrix{Columns: cols}
	if len(cols) == 0 {
		return matrix
	}

	indices := make([]int, len(cols))
	for i, name := range cols {
		indices[i], _ = ds.ColumnIndex(name)
	}

	// Whole-row drop: keep only rows complete across every numeric column.
	series := make([][]float64, len(cols))
	for _, row := range ds.Rows {
		complete := true
		for _, idx := range indices {
			if _, ok := row[idx].NumberValue(); !ok {
				complete = false
				break
			}
		}
		if !complete {
			continue
		}
		for i, idx := range indices {
			v, _ := row[idx].NumberValue()
			series[i] = append(series[i], v)
		}
	}

	matrix.Values = make([][]float64, len(cols))
	for i := range cols {
		matrix.Values[i] = make([]float64, len(cols))
		for j := range cols {
			switch {
			case i == j:
				matrix.Values[i][j] = 1
			case len(series[i]) < 2:
				matrix.Values[i][j] = math.NaN()
			default:
				matrix.Values[i][j] = stat.Correlation(series[i], series[j], nil)
			}
		}
	}
	return matrix
}
