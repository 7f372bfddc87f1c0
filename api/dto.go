/*
dto.go - Data Transfer Objects for API requests and responses

PURPOSE:
  JSON structures for API communication, decoupled from the engine types.
  Identity values travel as an ordered array aligned with identity_columns so
  clients can render the tables without knowing the column set in advance.

NAMING CONVENTION:
  - *DTO: Response types returned to clients
  - *Request: Request payloads from clients

VALIDATION:
  Request types carry validator tags; handlers run them through the shared
  validator instance before touching the engine.
*/
package api

import (
	"time"

	"github.com/turnos/attendance-engine/store/sqlite"
	"github.com/turnos/attendance-engine/summary"
)

// GenerateReportRequest is the multipart form accompanying an uploaded
// workbook.
type GenerateReportRequest struct {
	Sheet    string `validate:"required"`
	Holidays string
}

// SummaryRowDTO is one employee line in the Sundays or Holidays table.
type SummaryRowDTO struct {
	Identity []string `json:"identity"`
	Count    int      `json:"count"`
	Dates    string   `json:"dates"`
}

// TotalRowDTO is one employee line in the consolidated table.
type TotalRowDTO struct {
	Identity     []string `json:"identity"`
	Sundays      int      `json:"sundays"`
	Holidays     int      `json:"holidays"`
	Total        int      `json:"total"`
	SundayDates  string   `json:"sunday_dates"`
	HolidayDates string   `json:"holiday_dates"`
	AllDates     string   `json:"all_dates"`
}

// ReportDTO is the full generation result.
type ReportDTO struct {
	RunID           string          `json:"run_id"`
	Period          string          `json:"period"`
	Holidays        string          `json:"holidays"`
	IdentityColumns []string        `json:"identity_columns"`
	Sundays         []SummaryRowDTO `json:"sundays"`
	HolidaysTable   []SummaryRowDTO `json:"holidays_table"`
	Totals          []TotalRowDTO   `json:"totals"`
	Warnings        []string        `json:"warnings"`
	DownloadURL     string          `json:"download_url"`
}

// RunDTO is one history entry.
type RunDTO struct {
	ID            string `json:"id"`
	CreatedAt     string `json:"created_at"`
	Sheet         string `json:"sheet"`
	Period        string `json:"period"`
	Holidays      string `json:"holidays"`
	EmployeeCount int    `json:"employee_count"`
	WarningCount  int    `json:"warning_count"`
}

// SheetListDTO is the inspect response.
type SheetListDTO struct {
	Sheets []string `json:"sheets"`
}

// ErrorResponse is the JSON error envelope.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

func toReportDTO(runID string, rep *summary.Report) ReportDTO {
	dto := ReportDTO{
		RunID:           runID,
		Period:          rep.Period.String(),
		Holidays:        rep.FormatHolidays(),
		IdentityColumns: rep.IdentityColumns,
		Sundays:         make([]SummaryRowDTO, len(rep.Sundays)),
		HolidaysTable:   make([]SummaryRowDTO, len(rep.Holidays)),
		Totals:          make([]TotalRowDTO, len(rep.Totals)),
		Warnings:        make([]string, len(rep.Warnings)),
		DownloadURL:     "/api/reports/" + runID + "/download",
	}
	for i, r := range rep.Sundays {
		dto.Sundays[i] = SummaryRowDTO{Identity: r.Identity, Count: r.Count, Dates: r.Dates}
	}
	for i, r := range rep.Holidays {
		dto.HolidaysTable[i] = SummaryRowDTO{Identity: r.Identity, Count: r.Count, Dates: r.Dates}
	}
	for i, r := range rep.Totals {
		dto.Totals[i] = TotalRowDTO{
			Identity:     r.Identity,
			Sundays:      r.Sundays,
			Holidays:     r.Holidays,
			Total:        r.Total,
			SundayDates:  r.SundayDates,
			HolidayDates: r.HolidayDates,
			AllDates:     r.AllDates,
		}
	}
	for i, w := range rep.Warnings {
		dto.Warnings[i] = w.Message
	}
	return dto
}

func toRunDTO(run sqlite.ReportRun) RunDTO {
	return RunDTO{
		ID:            run.ID,
		CreatedAt:     run.CreatedAt.Format(time.RFC3339),
		Sheet:         run.Sheet,
		Period:        run.Period,
		Holidays:      run.Holidays,
		EmployeeCount: run.EmployeeCount,
		WarningCount:  run.WarningCount,
	}
}
