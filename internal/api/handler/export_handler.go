package handler

import (
	"errors"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"

	"github.com/Syedfarrukh0/rfid-backend-prac/internal/dto"
	"github.com/Syedfarrukh0/rfid-backend-prac/internal/service"
	"github.com/Syedfarrukh0/rfid-backend-prac/pkg/response"
)

const (
	xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	icsContentType  = "text/calendar"
)

// ExportHandler report download HTTP handler
type ExportHandler struct {
	exportSvc service.ExportService
}

// NewExportHandler builds an ExportHandler.
func NewExportHandler(exportSvc service.ExportService) *ExportHandler {
	return &ExportHandler{exportSvc: exportSvc}
}

// ExportAttendance downloads attendance records as .xlsx
// GET /api/v1/export/attendance?start_date=&end_date=
func (h *ExportHandler) ExportAttendance(c *gin.Context) {
	var q dto.RecordRangeQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.BadRequest(c, 10001, "request validation failed")
		return
	}

	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}
	role, ok := MustGetRole(c)
	if !ok {
		return
	}

	buf, filename, err := h.exportSvc.ExportAttendance(c.Request.Context(), callerID, role, &q)
	if err != nil {
		h.handleExportError(c, err)
		return
	}

	serveDownload(c, filename, xlsxContentType, buf.Bytes())
}

// ExportScheduleICS downloads a user's weekly windows as an iCalendar feed
// GET /api/v1/export/schedules/:id/ics
func (h *ExportHandler) ExportScheduleICS(c *gin.Context) {
	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}
	role, ok := MustGetRole(c)
	if !ok {
		return
	}

	buf, filename, err := h.exportSvc.ExportScheduleICS(c.Request.Context(), callerID, role, c.Param("id"))
	if err != nil {
		h.handleExportError(c, err)
		return
	}

	serveDownload(c, filename, icsContentType, buf.Bytes())
}

func serveDownload(c *gin.Context, filename, contentType string, body []byte) {
	encodedFilename := url.QueryEscape(filename)
	c.Header("Content-Description", "File Transfer")
	c.Header("Content-Disposition", "attachment; filename*=UTF-8''"+encodedFilename)
	c.Data(http.StatusOK, contentType, body)
}

func (h *ExportHandler) handleExportError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrExportNoRecords):
		response.NotFound(c, 16001, "no attendance records in range")
	case errors.Is(err, service.ErrExportNoSchedule):
		response.NotFound(c, 16002, "no schedule configured")
	case errors.Is(err, service.ErrForbidden):
		response.Forbidden(c, 10003, "not authorized for this resource")
	default:
		response.InternalError(c)
	}
}
