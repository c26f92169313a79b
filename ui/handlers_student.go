package ui

import (
	"fmt"
	"html/template"
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gomarkdown/markdown"

	"skillboard/domain/columns"
	"skillboard/domain/metrics"
	"skillboard/domain/tabular"
)

// fieldValue is one row of the student's complete-data dump.
type fieldValue struct {
	Name  string
	Value string
}

// studentView is the student dashboard view model. Sections degrade
// independently: an unresolved role blanks its section, nothing else.
type studentView struct {
	DisplayName string
	Loaded      bool

	Email  string
	Name   string
	Course string

	HasScores    bool
	HasOwnScores bool
	Pre          string
	Post         string
	Gain         string

	Category    string
	Tone        string
	InsightHTML template.HTML

	HasStanding   bool
	Percentile    string
	RankText      string
	ClassAvgGain  string
	TotalStudents int

	RowFields []fieldValue
}

// findStudentRow locates the session email's row via the email role.
// Returns -1 when the email role is unresolved or no row matches.
func findStudentRow(ds *tabular.Dataset, email string) int {
	emailCol, ok := columns.DetectRole(ds, columns.RoleEmail)
	if !ok {
		return -1
	}
	target := strings.ToLower(strings.TrimSpace(email))
	for i, cell := range ds.ColumnValues(emailCol) {
		if cell.IsMissing() {
			continue
		}
		if strings.ToLower(strings.TrimSpace(cell.Raw)) == target {
			return i
		}
	}
	return -1
}

func (s *Server) handleStudentDashboard(c *gin.Context) {
	sess := currentSession(c)
	view := studentView{DisplayName: sess.DisplayName}

	ds := s.datasets.Snapshot()
	if ds == nil {
		s.renderTemplate(c, "student.html", view)
		return
	}
	view.Loaded = true

	rowIdx := findStudentRow(ds, sess.Email)
	if rowIdx < 0 {
		// The dataset was replaced under this account. Abort this view
		// only; other users are unaffected.
		log.Printf("[handleStudentDashboard] no row for authenticated student")
		c.Status(http.StatusNotFound)
		s.renderTemplate(c, "error.html", gin.H{
			"Title":   "Data Not Found",
			"Message": "Your data was not found in the system. The dataset may have been replaced; please contact your admin.",
		})
		return
	}

	rm := columns.Resolve(ds)

	view.Email = cellDisplay(ds, rowIdx, rm, columns.RoleEmail)
	view.Name = cellDisplay(ds, rowIdx, rm, columns.RoleName)
	view.Course = cellDisplay(ds, rowIdx, rm, columns.RoleCourse)

	preCol, preOK := rm.Column(columns.RolePreScore)
	postCol, postOK := rm.Column(columns.RolePostScore)
	if preOK && postOK {
		view.HasScores = true
		preCell, _ := ds.Cell(rowIdx, preCol)
		postCell, _ := ds.Cell(rowIdx, postCol)

		category := metrics.CategorizeImprovement(preCell, postCell)
		view.Category = string(category)
		view.Tone = category.Tone()
		view.InsightHTML = renderMarkdown(metrics.InsightText(category))

		preVal, preNum := preCell.NumberValue()
		postVal, postNum := postCell.NumberValue()
		if preNum && postNum {
			view.HasOwnScores = true
			improvement := postVal - preVal
			view.Pre = fmt.Sprintf("%.1f%%", preVal)
			view.Post = fmt.Sprintf("%.1f%%", postVal)
			view.Gain = fmt.Sprintf("%+.1f%%", improvement)

			improvements, _ := metrics.Improvements(ds, rm)
			view.HasStanding = true
			view.TotalStudents = ds.RowCount()
			view.Percentile = fmt.Sprintf("%.0fth", metrics.Percentile(improvements, improvement))
			view.RankText = fmt.Sprintf("%d/%d", metrics.Rank(improvements, improvement), ds.RowCount())
			view.ClassAvgGain = fmt.Sprintf("%.1f%%", metrics.ClassAverageGain(improvements))
		}
	}

	for _, col := range ds.Columns {
		cell, _ := ds.Cell(rowIdx, col)
		value := cell.Display()
		if cell.IsMissing() {
			value = "N/A"
		}
		view.RowFields = append(view.RowFields, fieldValue{Name: col, Value: value})
	}

	s.renderTemplate(c, "student.html", view)
}

// cellDisplay resolves a role for one row; "N/A" covers both an
// unresolved role and a missing cell.
func cellDisplay(ds *tabular.Dataset, rowIdx int, rm columns.RoleMap, role columns.Role) string {
	col, ok := rm.Column(role)
	if !ok {
		return "N/A"
	}
	cell, ok := ds.Cell(rowIdx, col)
	if !ok || cell.IsMissing() {
		return "N/A"
	}
	return cell.Display()
}

func renderMarkdown(text string) template.HTML {
	return template.HTML(markdown.ToHTML([]byte(text), nil, nil))
}

// handleStudentCharts feeds the student page's two charts: own scores
// and the self-vs-class-average comparison.
func (s *Server) handleStudentCharts(c *gin.Context) {
	sess := currentSession(c)
	ds := s.datasets.Snapshot()
	if ds == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "no dataset loaded"})
		return
	}

	rowIdx := findStudentRow(ds, sess.Email)
	if rowIdx < 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "student row not found"})
		return
	}

	rm := columns.Resolve(ds)
	preCol, preOK := rm.Column(columns.RolePreScore)
	postCol, postOK := rm.Column(columns.RolePostScore)
	if !preOK || !postOK {
		c.JSON(http.StatusOK, gin.H{"hasScores": false})
		return
	}

	preCell, _ := ds.Cell(rowIdx, preCol)
	postCell, _ := ds.Cell(rowIdx, postCol)
	pre, _ := preCell.NumberValue()
	post, _ := postCell.NumberValue()

	overview, _ := metrics.ComputeOverview(ds, rm)
	c.JSON(http.StatusOK, gin.H{
		"hasScores":    true,
		"preScore":     pre,
		"postScore":    post,
		"classPreAvg":  jsonNumber(overview.PreMean),
		"classPostAvg": jsonNumber(overview.PostMean),
	})
}
