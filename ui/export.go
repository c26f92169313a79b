package ui

import (
	"encoding/csv"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"skillboard/adapters/excel"
	"skillboard/domain/columns"
	"skillboard/domain/metrics"
)

func setDownloadHeaders(c *gin.Context, filename, contentType string) {
	c.Header("Content-Type", contentType)
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
}

// handleProcessedExport is the admin-side raw export: exactly the
// uploaded dataset, no derived columns, so a re-upload round-trips.
func (s *Server) handleProcessedExport(c *gin.Context) {
	ds := s.datasets.Snapshot()
	if ds == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "no dataset loaded"})
		return
	}

	setDownloadHeaders(c, "processed_data.csv", "text/csv")
	if err := ds.WriteCSV(c.Writer); err != nil {
		log.Printf("[handleProcessedExport] write failed: %v", err)
	}
}

// handleFullExport is the teacher-side full export. The teacher view
// carries a derived Improvement column, so the export includes it;
// the admin-side export never does.
func (s *Server) handleFullExport(c *gin.Context) {
	ds := s.datasets.Snapshot()
	if ds == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "no dataset loaded"})
		return
	}

	rm := columns.Resolve(ds)
	improvements, hasScores := metrics.Improvements(ds, rm)

	setDownloadHeaders(c, "complete_analysis.csv", "text/csv")
	writer := csv.NewWriter(c.Writer)

	header := append([]string{}, ds.Columns...)
	if hasScores {
		header = append(header, "Improvement")
	}
	if err := writer.Write(header); err != nil {
		log.Printf("[handleFullExport] header write failed: %v", err)
		return
	}

	for i, row := range ds.Rows {
		record := make([]string, 0, len(header))
		for _, cell := range row {
			record = append(record, cell.Raw)
		}
		if hasScores {
			record = append(record, formatImprovement(improvements[i]))
		}
		if err := writer.Write(record); err != nil {
			log.Printf("[handleFullExport] row write failed: %v", err)
			return
		}
	}
	writer.Flush()
}

func formatImprovement(imp metrics.Improvement) string {
	if !imp.Valid {
		return ""
	}
	return strconv.FormatFloat(imp.Value, 'f', -1, 64)
}

// handleSummaryExport is the student-facing summary: name, email, pre,
// post, improvement columns only.
func (s *Server) handleSummaryExport(c *gin.Context) {
	ds := s.datasets.Snapshot()
	if ds == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "no dataset loaded"})
		return
	}

	rm := columns.Resolve(ds)
	improvements, ok := metrics.Improvements(ds, rm)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "score columns not detected"})
		return
	}

	nameCol, _ := rm.Column(columns.RoleName)
	emailCol, _ := rm.Column(columns.RoleEmail)
	preCol, _ := rm.Column(columns.RolePreScore)
	postCol, _ := rm.Column(columns.RolePostScore)

	setDownloadHeaders(c, "improvement_summary.csv", "text/csv")
	writer := csv.NewWriter(c.Writer)
	if err := writer.Write([]string{"Name", "Email", "Pre-Test Score", "Post-Test Score", "Improvement"}); err != nil {
		log.Printf("[handleSummaryExport] header write failed: %v", err)
		return
	}

	raw := func(rowIdx int, column string) string {
		if column == "" {
			return ""
		}
		if cell, ok := ds.Cell(rowIdx, column); ok {
			return cell.Raw
		}
		return ""
	}

	for i, imp := range improvements {
		record := []string{
			raw(i, nameCol),
			raw(i, emailCol),
			raw(i, preCol),
			raw(i, postCol),
			formatImprovement(imp),
		}
		if err := writer.Write(record); err != nil {
			log.Printf("[handleSummaryExport] row write failed: %v", err)
			return
		}
	}
	writer.Flush()
}

// handleSummaryWorkbookExport serves the same summary as a styled XLSX.
func (s *Server) handleSummaryWorkbookExport(c *gin.Context) {
	ds := s.datasets.Snapshot()
	if ds == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "no dataset loaded"})
		return
	}

	setDownloadHeaders(c, "improvement_summary.xlsx",
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	if err := excel.WriteSummaryWorkbook(c.Writer, ds, columns.Resolve(ds)); err != nil {
		log.Printf("[handleSummaryWorkbookExport] export failed: %v", err)
	}
}
