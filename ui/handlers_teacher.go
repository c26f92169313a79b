package ui

import (
	"fmt"
	"math"
	"net/http"

	"github.com/gin-gonic/gin"

	"skillboard/domain/columns"
	"skillboard/domain/metrics"
)

// bucketView is one slice of the improvement distribution chart.
type bucketView struct {
	Label string
	Count int
}

// corrCell is one correlation heatmap cell, color precomputed so the
// template stays free of math.
type corrCell struct {
	Value string
	Color string
}

type corrRow struct {
	Label string
	Cells []corrCell
}

// teacherView is the teacher dashboard view model.
type teacherView struct {
	DisplayName     string
	Loaded          bool
	HasScores       bool
	TotalStudents   int
	HasOverview     bool
	AvgPre          string
	AvgPost         string
	AvgGain         string
	RelativeGain    string
	Counts          metrics.Counts
	Buckets         []bucketView
	ShowCorrelation bool
	Correlation     []corrRow
	CorrelationCols []string
}

func (s *Server) handleTeacherDashboard(c *gin.Context) {
	sess := currentSession(c)
	view := teacherView{DisplayName: sess.DisplayName}

	ds := s.datasets.Snapshot()
	if ds == nil {
		s.renderTemplate(c, "teacher.html", view)
		return
	}
	view.Loaded = true
	view.TotalStudents = ds.RowCount()

	rm := columns.Resolve(ds)
	overview, ok := metrics.ComputeOverview(ds, rm)
	if ok {
		view.HasScores = true
		if overview.HasData() {
			view.HasOverview = true
			view.AvgPre = fmt.Sprintf("%.1f%%", overview.PreMean)
			view.AvgPost = fmt.Sprintf("%.1f%%", overview.PostMean)
			view.AvgGain = fmt.Sprintf("%+.1f%%", overview.MeanGain)
			view.RelativeGain = fmt.Sprintf("%.1f%%", metrics.RelativeGainPercent(overview))
		}

		improvements, _ := metrics.Improvements(ds, rm)
		view.Counts = metrics.CountDirections(improvements)
		buckets := metrics.CohortBuckets(improvements)
		for _, label := range metrics.CohortBucketOrder {
			view.Buckets = append(view.Buckets, bucketView{Label: label, Count: buckets[label]})
		}
	}

	// Heatmap only when the dataset carries metrics beyond the two
	// score columns.
	if numeric := ds.NumericColumns(); len(numeric) > 2 {
		matrix := metrics.ComputeCorrelationMatrix(ds)
		view.ShowCorrelation = true
		view.CorrelationCols = matrix.Columns
		for i, col := range matrix.Columns {
			row := corrRow{Label: col}
			for _, v := range matrix.Values[i] {
				row.Cells = append(row.Cells, corrCell{
					Value: formatCorrelation(v),
					Color: correlationColor(v),
				})
			}
			view.Correlation = append(view.Correlation, row)
		}
	}

	s.renderTemplate(c, "teacher.html", view)
}

func formatCorrelation(v float64) string {
	if math.IsNaN(v) {
		return "n/a"
	}
	return fmt.Sprintf("%.2f", v)
}

// correlationColor maps r in [-1,1] onto a blue-white-red ramp.
func correlationColor(v float64) string {
	if math.IsNaN(v) {
		return "#f0f0f0"
	}
	if v > 1 {
		v = 1
	} else if v < -1 {
		v = -1
	}
	blend := func(a, b int, t float64) int { return a + int(t*float64(b-a)) }
	if v >= 0 {
		return fmt.Sprintf("#%02x%02x%02x", blend(255, 180, v), blend(255, 4, v), blend(255, 38, v))
	}
	t := -v
	return fmt.Sprintf("#%02x%02x%02x", blend(255, 59, t), blend(255, 76, t), blend(255, 192, t))
}

// handleTeacherCharts feeds the teacher page's Chart.js canvases. Rows
// missing a score chart as zero in the score bars, matching the
// rendered tables' fill-with-zero convention.
func (s *Server) handleTeacherCharts(c *gin.Context) {
	ds := s.datasets.Snapshot()
	if ds == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "no dataset loaded"})
		return
	}

	rm := columns.Resolve(ds)
	improvements, ok := metrics.Improvements(ds, rm)
	if !ok {
		c.JSON(http.StatusOK, gin.H{"hasScores": false})
		return
	}

	preCol, _ := rm.Column(columns.RolePreScore)
	postCol, _ := rm.Column(columns.RolePostScore)

	labels := make([]int, ds.RowCount())
	pre := make([]float64, ds.RowCount())
	post := make([]float64, ds.RowCount())
	for i := range labels {
		labels[i] = i + 1
	}
	for i, cell := range ds.ColumnValues(preCol) {
		pre[i], _ = cell.NumberValue()
	}
	for i, cell := range ds.ColumnValues(postCol) {
		post[i], _ = cell.NumberValue()
	}

	improvementValues := make([]interface{}, len(improvements))
	for i, imp := range improvements {
		if imp.Valid {
			improvementValues[i] = imp.Value
		} else {
			improvementValues[i] = nil
		}
	}

	overview, _ := metrics.ComputeOverview(ds, rm)
	buckets := metrics.CohortBuckets(improvements)
	bucketCounts := make([]int, len(metrics.CohortBucketOrder))
	for i, label := range metrics.CohortBucketOrder {
		bucketCounts[i] = buckets[label]
	}

	c.JSON(http.StatusOK, gin.H{
		"hasScores":    true,
		"labels":       labels,
		"preScores":    pre,
		"postScores":   post,
		"preMean":      jsonNumber(overview.PreMean),
		"postMean":     jsonNumber(overview.PostMean),
		"improvements": improvementValues,
		"bucketLabels": metrics.CohortBucketOrder,
		"bucketCounts": bucketCounts,
	})
}

// jsonNumber turns NaN into null so encoding/json never chokes on an
// empty-dataset mean.
func jsonNumber(v float64) interface{} {
	if math.IsNaN(v) {
		return nil
	}
	return v
}
