package ui

import (
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"skillboard/adapters/excel"
	"skillboard/domain/columns"
	"skillboard/domain/tabular"
)

// maxUploadSize caps dataset uploads at 50MB.
const maxUploadSize = 50 * 1024 * 1024

// adminView is the admin dashboard view model.
type adminView struct {
	DisplayName    string
	Loaded         bool
	Message        string
	Error          string
	Summary        tabular.Summary
	UniqueStudents string
	PreviewColumns []string
	PreviewRows    [][]string
}

func (s *Server) handleAdminDashboard(c *gin.Context) {
	sess := currentSession(c)
	view := adminView{
		DisplayName: sess.DisplayName,
		Message:     c.Query("uploaded"),
		Error:       c.Query("error"),
	}

	ds := s.datasets.Snapshot()
	if ds != nil {
		view.Loaded = true
		view.Summary = ds.Summarize()

		// Unique students come from the email role; unresolved role
		// means the figure is unavailable, not an error.
		view.UniqueStudents = "N/A"
		if emailCol, ok := columns.DetectRole(ds, columns.RoleEmail); ok {
			view.UniqueStudents = strconv.Itoa(ds.UniqueCount(emailCol))
		}

		view.PreviewColumns = ds.Columns
		limit := s.cfg.Data.PreviewRows
		if limit > ds.RowCount() {
			limit = ds.RowCount()
		}
		for _, row := range ds.Rows[:limit] {
			record := make([]string, len(row))
			for i, cell := range row {
				record[i] = cell.Display()
			}
			view.PreviewRows = append(view.PreviewRows, record)
		}
	}

	s.renderTemplate(c, "admin.html", view)
}

// handleUpload replaces the process-wide dataset from a CSV or XLSX
// upload. A malformed file aborts the upload and keeps the prior
// dataset unchanged.
func (s *Server) handleUpload(c *gin.Context) {
	file, header, err := c.Request.FormFile("dataset")
	if err != nil {
		s.redirectUploadError(c, "No file uploaded")
		return
	}
	defer file.Close()

	if header.Size > maxUploadSize {
		s.redirectUploadError(c, fmt.Sprintf("File size (%.1f MB) exceeds the 50MB limit", float64(header.Size)/(1024*1024)))
		return
	}

	filename := strings.ToLower(header.Filename)
	var ds *tabular.Dataset
	switch {
	case strings.HasSuffix(filename, ".csv"):
		ds, err = tabular.Parse(file)
	case strings.HasSuffix(filename, ".xlsx"):
		ds, err = excel.ReadWorkbook(file)
	default:
		s.redirectUploadError(c, "Only CSV (.csv) and Excel (.xlsx) files are allowed")
		return
	}

	if err != nil {
		log.Printf("[handleUpload] FAILED - parse error for %s: %v", header.Filename, err)
		s.redirectUploadError(c, "Error processing file: "+err.Error())
		return
	}

	s.datasets.Replace(ds)
	log.Printf("[handleUpload] dataset replaced: %d records, %d columns", ds.RowCount(), ds.ColumnCount())
	c.Redirect(http.StatusFound, "/admin?uploaded="+url.QueryEscape(
		fmt.Sprintf("File uploaded successfully! %d records found.", ds.RowCount())))
}

func (s *Server) redirectUploadError(c *gin.Context, message string) {
	c.Redirect(http.StatusFound, "/admin?error="+url.QueryEscape(message))
}
