/*
handlers.go - HTTP API handlers for the attendance report engine

PURPOSE:
  Exposes the aggregation engine via REST. Handles multipart uploads, JSON
  serialization, and delegates the actual work to the schedule/summary/excel
  packages.

ENDPOINTS:
  GET    /api/health                    Liveness probe
  POST   /api/workbooks/inspect         Upload workbook, list its sheets
  POST   /api/reports                   Upload workbook + options, generate report
  GET    /api/reports                   Run history (newest first)
  GET    /api/reports/{id}              One run's metadata
  GET    /api/reports/{id}/download     Stored xlsx for a run
  DELETE /api/reports/{id}              Remove a run

REQUEST FLOW (generate):
  1. Parse multipart form (file, sheet, holidays)
  2. Validate options and identity-column presence
  3. Detect date columns, parse holidays
  4. Aggregate and export the styled workbook
  5. Persist the run, return tables + warnings as JSON

ERROR HANDLING:
  - 400: bad upload, missing identity columns, validation failures
  - 404: unknown run ID
  - 422: data errors from the engine (user fixes their file)
  - 500: everything else, with diagnostic detail
*/
package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/turnos/attendance-engine/excel"
	"github.com/turnos/attendance-engine/schedule"
	"github.com/turnos/attendance-engine/store/sqlite"
	"github.com/turnos/attendance-engine/summary"
)

// Handler holds all dependencies for HTTP handlers.
type Handler struct {
	Store          *sqlite.Store
	Log            *zap.Logger
	Rules          schedule.Rules
	MaxUploadBytes int64

	validate *validator.Validate
}

// NewHandler creates a handler with default classification rules.
func NewHandler(store *sqlite.Store, log *zap.Logger, maxUploadBytes int64) *Handler {
	return &Handler{
		Store:          store,
		Log:            log,
		Rules:          schedule.DefaultRules(),
		MaxUploadBytes: maxUploadBytes,
		validate:       validator.New(),
	}
}

// Health reports liveness.
// GET /api/health
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// InspectWorkbook lists the sheets of an uploaded workbook so the client can
// offer sheet selection.
// POST /api/workbooks/inspect
func (h *Handler) InspectWorkbook(w http.ResponseWriter, r *http.Request) {
	data, ok := h.readUpload(w, r)
	if !ok {
		return
	}

	sheets, err := excel.SheetNames(bytes.NewReader(data))
	if err != nil {
		writeError(w, http.StatusBadRequest, "No se pudo leer el archivo Excel", err)
		return
	}
	writeJSON(w, http.StatusOK, SheetListDTO{Sheets: sheets})
}

// GenerateReport runs the full pipeline on an uploaded workbook.
// POST /api/reports  (multipart: file, sheet, holidays)
func (h *Handler) GenerateReport(w http.ResponseWriter, r *http.Request) {
	data, ok := h.readUpload(w, r)
	if !ok {
		return
	}

	req := GenerateReportRequest{
		Sheet:    strings.TrimSpace(r.FormValue("sheet")),
		Holidays: r.FormValue("holidays"),
	}
	if err := h.validate.Struct(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Falta indicar la hoja con los datos", err)
		return
	}

	grid, err := excel.ReadGrid(bytes.NewReader(data), req.Sheet)
	if err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("No se pudo leer la hoja %q", req.Sheet), err)
		return
	}

	// Identity-column presence is the caller's check, before the engine runs.
	if missing := grid.MissingColumns(h.Rules.IdentityColumns); len(missing) > 0 {
		writeError(w, http.StatusBadRequest,
			fmt.Sprintf("No encuentro las columnas: %s", strings.Join(missing, ", ")), nil)
		return
	}

	dateCols := schedule.DetectDateColumns(grid, h.Rules.IdentityColumns)
	holidays, holidayWarnings := schedule.ParseHolidays(req.Holidays)

	rep, err := summary.Aggregate(grid, h.Rules, dateCols, holidays)
	if err != nil {
		if schedule.IsDataError(err) {
			writeError(w, http.StatusUnprocessableEntity, err.Error(), nil)
			return
		}
		h.Log.Error("aggregation failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "Ocurrió un error inesperado al procesar el archivo", err)
		return
	}
	rep.Warnings = append(holidayWarnings, rep.Warnings...)

	workbook, err := excel.WriteReport(rep)
	if err != nil {
		h.Log.Error("report export failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "No se pudo generar el Excel del reporte", err)
		return
	}

	run := sqlite.ReportRun{
		ID:            uuid.NewString(),
		CreatedAt:     time.Now().UTC(),
		Sheet:         req.Sheet,
		Period:        rep.Period.String(),
		Holidays:      rep.FormatHolidays(),
		EmployeeCount: len(rep.Totals),
		WarningCount:  len(rep.Warnings),
		Workbook:      workbook,
	}
	if err := h.Store.SaveRun(r.Context(), run); err != nil {
		h.Log.Error("failed to persist report run", zap.Error(err), zap.String("run_id", run.ID))
		writeError(w, http.StatusInternalServerError, "No se pudo guardar el historial del reporte", err)
		return
	}

	h.Log.Info("report generated",
		zap.String("run_id", run.ID),
		zap.String("sheet", run.Sheet),
		zap.String("period", run.Period),
		zap.Int("employees", run.EmployeeCount),
		zap.Int("warnings", run.WarningCount))

	writeJSON(w, http.StatusCreated, toReportDTO(run.ID, rep))
}

// ListRuns returns the run history.
// GET /api/reports
func (h *Handler) ListRuns(w http.ResponseWriter, r *http.Request) {
	runs, err := h.Store.ListRuns(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list report runs", err)
		return
	}

	dtos := make([]RunDTO, len(runs))
	for i, run := range runs {
		dtos[i] = toRunDTO(run)
	}
	writeJSON(w, http.StatusOK, dtos)
}

// GetRun returns one run's metadata.
// GET /api/reports/{id}
func (h *Handler) GetRun(w http.ResponseWriter, r *http.Request) {
	run, ok := h.lookupRun(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, toRunDTO(*run))
}

// DownloadRun streams a run's stored workbook.
// GET /api/reports/{id}/download
func (h *Handler) DownloadRun(w http.ResponseWriter, r *http.Request) {
	run, ok := h.lookupRun(w, r)
	if !ok {
		return
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", excel.ReportFileName))
	w.WriteHeader(http.StatusOK)
	w.Write(run.Workbook)
}

// DeleteRun removes a run from the history.
// DELETE /api/reports/{id}
func (h *Handler) DeleteRun(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.Store.DeleteRun(r.Context(), id); err != nil {
		if errors.Is(err, sqlite.ErrRunNotFound) {
			writeError(w, http.StatusNotFound, "Report run not found", nil)
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to delete report run", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// =============================================================================
// HELPERS
// =============================================================================

// readUpload parses the multipart form and returns the uploaded file bytes.
// Writes the error response itself when the upload is unusable.
func (h *Handler) readUpload(w http.ResponseWriter, r *http.Request) ([]byte, bool) {
	r.Body = http.MaxBytesReader(w, r.Body, h.MaxUploadBytes)
	if err := r.ParseMultipartForm(h.MaxUploadBytes); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid multipart upload", err)
		return nil, false
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "Falta el archivo (.xlsx) en el campo 'file'", err)
		return nil, false
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Failed to read uploaded file", err)
		return nil, false
	}
	return data, true
}

func (h *Handler) lookupRun(w http.ResponseWriter, r *http.Request) (*sqlite.ReportRun, bool) {
	id := chi.URLParam(r, "id")
	run, err := h.Store.GetRun(r.Context(), id)
	if err != nil {
		if errors.Is(err, sqlite.ErrRunNotFound) {
			writeError(w, http.StatusNotFound, "Report run not found", nil)
			return nil, false
		}
		writeError(w, http.StatusInternalServerError, "Failed to load report run", err)
		return nil, false
	}
	return run, true
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string, err error) {
	resp := ErrorResponse{Error: message}
	if err != nil {
		resp.Details = err.Error()
	}
	writeJSON(w, status, resp)
}
