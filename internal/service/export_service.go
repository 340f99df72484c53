package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	ics "github.com/arran4/golang-ical"
	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/Syedfarrukh0/rfid-backend-prac/internal/dto"
	"github.com/Syedfarrukh0/rfid-backend-prac/internal/repository"
	"github.com/Syedfarrukh0/rfid-backend-prac/internal/timeclock"
)

// ── export module business errors ──

var (
	ErrExportNoRecords    = errors.New("no attendance records in range")
	ErrExportNoSchedule   = errors.New("no schedule configured")
	ErrExportGenerateFail = errors.New("generating export file failed")
)

// ExportService report generation interface
//
// Exports return a bytes.Buffer plus a suggested filename; the handler
// layer owns the HTTP headers and streams the buffer out.
type ExportService interface {
	ExportAttendance(ctx context.Context, callerID, callerRole string, q *dto.RecordRangeQuery) (*bytes.Buffer, string, error)
	ExportScheduleICS(ctx context.Context, callerID, callerRole, userID string) (*bytes.Buffer, string, error)
}

type exportService struct {
	repo   *repository.Repository
	loc    *time.Location
	logger *zap.Logger
}

// NewExportService builds an ExportService.
func NewExportService(repo *repository.Repository, loc *time.Location, logger *zap.Logger) ExportService {
	return &exportService{repo: repo, loc: loc, logger: logger}
}

// ExportAttendance renders a date range of records as an .xlsx sheet.
// Company accounts get their own records; admins get everyone's.
func (s *exportService) ExportAttendance(ctx context.Context, callerID, callerRole string, q *dto.RecordRangeQuery) (*bytes.Buffer, string, error) {
	now := time.Now().In(s.loc)
	from := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, s.loc).AddDate(0, 0, -30)
	to := now.AddDate(0, 0, 1)

	if q != nil && q.StartDate != "" {
		if parsed, err := time.ParseInLocation("2006-01-02", q.StartDate, s.loc); err == nil {
			from = parsed
		}
	}
	if q != nil && q.EndDate != "" {
		if parsed, err := time.ParseInLocation("2006-01-02", q.EndDate, s.loc); err == nil {
			to = parsed.AddDate(0, 0, 1)
		}
	}

	filterUser := ""
	if !isAdmin(callerRole) {
		filterUser = callerID
	}

	records, err := s.repo.Attendance.ListBetween(ctx, from, to, filterUser)
	if err != nil {
		s.logger.Error("listing records for export", zap.Error(err))
		return nil, "", err
	}
	if len(records) == 0 {
		return nil, "", ErrExportNoRecords
	}

	f := excelize.NewFile()
	defer f.Close()

	sheetName := "Attendance"
	idx, _ := f.NewSheet(sheetName)
	f.SetActiveSheet(idx)
	f.DeleteSheet("Sheet1")

	f.SetColWidth(sheetName, "A", "A", 28)
	f.SetColWidth(sheetName, "B", "B", 28)
	f.SetColWidth(sheetName, "C", "D", 12)
	f.SetColWidth(sheetName, "E", "E", 22)

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})

	headers := []string{"Name", "Email", "Type", "Status", "Time"}
	for i, h := range headers {
		col, _ := excelize.ColumnNumberToName(i + 1)
		cell := fmt.Sprintf("%s1", col)
		f.SetCellValue(sheetName, cell, h)
		f.SetCellStyle(sheetName, cell, cell, headerStyle)
	}

	row := 2
	for i := range records {
		r := &records[i]
		name, email := "", ""
		if r.User != nil {
			name = r.User.Name
			email = r.User.Email
		}
		f.SetCellValue(sheetName, fmt.Sprintf("A%d", row), name)
		f.SetCellValue(sheetName, fmt.Sprintf("B%d", row), email)
		f.SetCellValue(sheetName, fmt.Sprintf("C%d", row), r.RecordType)
		f.SetCellValue(sheetName, fmt.Sprintf("D%d", row), r.Status)
		f.SetCellValue(sheetName, fmt.Sprintf("E%d", row), r.OccurredAt.In(s.loc).Format("2006-01-02 15:04:05"))
		row++
	}

	buf := new(bytes.Buffer)
	if err := f.Write(buf); err != nil {
		s.logger.Error("writing xlsx", zap.Error(err))
		return nil, "", ErrExportGenerateFail
	}

	filename := fmt.Sprintf("attendance_%s_%s.xlsx",
		from.Format("20060102"), to.AddDate(0, 0, -1).Format("20060102"))
	return buf, filename, nil
}

// icsWeekdays maps Monday-based day numbers to RFC 5545 BYDAY codes.
var icsWeekdays = [8]string{"", "MO", "TU", "WE", "TH", "FR", "SA", "SU"}

// ExportScheduleICS renders a user's weekly windows as an iCalendar
// feed: one weekly-recurring VEVENT per configured day, spanning
// check-in open to check-out close.
func (s *exportService) ExportScheduleICS(ctx context.Context, callerID, callerRole, userID string) (*bytes.Buffer, string, error) {
	if callerID != userID && !isAdmin(callerRole) {
		return nil, "", ErrForbidden
	}

	rows, err := s.repo.Schedule.ListByUser(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", ErrExportNoSchedule
		}
		s.logger.Error("listing schedule for export", zap.Error(err))
		return nil, "", err
	}
	if len(rows) == 0 {
		return nil, "", ErrExportNoSchedule
	}

	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId("-//rfid-backend//attendance//EN")

	now := time.Now().In(s.loc)
	for _, row := range rows {
		if row.DayOfWeek < 1 || row.DayOfWeek > 7 {
			continue
		}
		start, err := timeclock.Parse(row.CheckInFrom)
		if err != nil {
			return nil, "", fmt.Errorf("malformed schedule for user %s day %d: %w", userID, row.DayOfWeek, err)
		}
		end, err := timeclock.Parse(row.CheckOutTo)
		if err != nil {
			return nil, "", fmt.Errorf("malformed schedule for user %s day %d: %w", userID, row.DayOfWeek, err)
		}

		day := nextWeekday(now, row.DayOfWeek)
		dtStart := atTimeOfDay(day, start, s.loc)
		dtEnd := atTimeOfDay(day, end, s.loc)
		if !dtEnd.After(dtStart) {
			dtEnd = dtEnd.AddDate(0, 0, 1) // overnight window
		}

		event := cal.AddEvent(uuid.NewString())
		event.SetDtStampTime(now)
		event.SetStartAt(dtStart)
		event.SetEndAt(dtEnd)
		event.SetSummary("Work shift")
		event.SetDescription(fmt.Sprintf("Check-in %s - %s, check-out %s - %s",
			row.CheckInFrom, row.CheckInTo, row.CheckOutFrom, row.CheckOutTo))
		event.AddRrule(fmt.Sprintf("FREQ=WEEKLY;BYDAY=%s", icsWeekdays[row.DayOfWeek]))
	}

	buf := bytes.NewBufferString(cal.Serialize())
	filename := fmt.Sprintf("schedule_%s.ics", userID)
	return buf, filename, nil
}

// nextWeekday returns the next date (today included) falling on the
// Monday-based day of week.
func nextWeekday(from time.Time, dayOfWeek int) time.Time {
	current := int(from.Weekday())
	if current == 0 {
		current = 7
	}
	delta := (dayOfWeek - current + 7) % 7
	return from.AddDate(0, 0, delta)
}

func atTimeOfDay(day time.Time, t timeclock.TimeOfDay, loc *time.Location) time.Time {
	h, m, sec := t.Clock()
	return time.Date(day.Year(), day.Month(), day.Day(), h, m, sec, 0, loc)
}
