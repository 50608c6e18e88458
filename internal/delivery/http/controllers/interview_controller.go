package controllers

import (
	"errors"
	"log/slog"
	"net/http"

	"interviewscheduler/internal/delivery/http/helpers"
	"interviewscheduler/internal/delivery/http/middleware"
	"interviewscheduler/internal/domain"
)

// maxImportMemory bounds the multipart parse buffer for candidate uploads.
const maxImportMemory = 8 << 20

// CreateInterviewRequest is the request body for POST /interviews.
type CreateInterviewRequest struct {
	Name       string              `json:"name"`
	FromDate   string              `json:"from_date"`
	ToDate     string              `json:"to_date"`
	Slots      map[string][]string `json:"slots"`
	Candidates []domain.Candidate  `json:"candidates"`
}

// Validate implements Validator. Returns error messages for required fields.
func (c CreateInterviewRequest) Validate() []string {
	var errs []string
	if c.Name == "" {
		errs = append(errs, "name is required")
	}
	if c.FromDate == "" {
		errs = append(errs, "from_date is required")
	}
	if c.ToDate == "" {
		errs = append(errs, "to_date is required")
	}
	if len(c.Slots) == 0 {
		errs = append(errs, "slots is required")
	}
	for _, cand := range c.Candidates {
		if !cand.Valid() {
			errs = append(errs, "candidates must each have a name and a valid email")
			break
		}
	}
	return errs
}

// CreateInterviewSuccessResponse is the success response envelope for POST /interviews (201).
type CreateInterviewSuccessResponse struct {
	Data  *domain.Interview `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// MarkMissedRequest is the request body for POST /interviews/{interviewID}/slots/missed.
type MarkMissedRequest struct {
	Date string `json:"date"`
	Slot string `json:"slot"`
}

// Validate implements Validator.
func (m MarkMissedRequest) Validate() []string {
	var errs []string
	if m.Date == "" {
		errs = append(errs, "date is required")
	}
	if m.Slot == "" {
		errs = append(errs, "slot is required")
	}
	return errs
}

// ImportCandidatesSuccessResponse is the success response envelope for the candidate import (200).
type ImportCandidatesSuccessResponse struct {
	Data  []domain.Candidate `json:"data"`
	Error *helpers.APIError  `json:"error"`
}

type InterviewController struct {
	Logger  *slog.Logger
	Service domain.InterviewService
}

func NewInterviewController(logger *slog.Logger, svc domain.InterviewService) *InterviewController {
	return &InterviewController{
		Logger:  logger,
		Service: svc,
	}
}

// internalError logs the failure and writes the opaque 500 envelope.
func (c *InterviewController) internalError(w http.ResponseWriter, r *http.Request, err error) {
	c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
	helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, "internal error")
}

// ImportCandidates godoc
// @Summary Import candidates from a spreadsheet
// @Description Parses an uploaded .xlsx or .csv file (multipart field "file") into a validated candidate list. The first row is treated as a header; rows without a valid email are dropped. The parsed list is returned for review and is attached to an interview on creation.
// @Tags interviews
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param file formData file true "Candidate spreadsheet (.xlsx or .csv)"
// @Success 200 {object} controllers.ImportCandidatesSuccessResponse "data contains the parsed candidates"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request (unparseable or zero valid rows)"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 413 {object} helpers.APIResponse "error.code: payload_too_large"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /interviews/candidates/import [post]
func (c *InterviewController) ImportCandidates(w http.ResponseWriter, r *http.Request) {
	if _, ok := middleware.UserIDFromContext(r.Context()); !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	if err := r.ParseMultipartForm(maxImportMemory); err != nil {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "expected multipart form upload")
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing file field")
		return
	}
	defer file.Close()

	candidates, err := c.Service.ImportCandidates(r.Context(), file, header.Filename)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrImportTooLarge):
			helpers.WriteJSONError(w, http.StatusRequestEntityTooLarge, helpers.ErrCodePayloadTooLarge, err.Error())
		case errors.Is(err, domain.ErrBadFormat), errors.Is(err, domain.ErrEmptyImport):
			helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, err.Error())
		default:
			c.internalError(w, r, err)
		}
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, candidates)
}

// Create godoc
// @Summary Create an interview
// @Description Publishes an availability window with a sparse slot grid. slots maps ISO dates within [from_date, to_date] to slot labels; only listed cells are offered. Candidates, if present, receive an invitation email. The authenticated user becomes the interview owner.
// @Tags interviews
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param interview body CreateInterviewRequest true "Interview definition"
// @Success 201 {object} controllers.CreateInterviewSuccessResponse "data contains the created interview"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /interviews [post]
func (c *InterviewController) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateInterviewRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	ownerID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	iv, err := c.Service.Create(r.Context(), ownerID, req.Name, req.FromDate, req.ToDate, req.Slots, req.Candidates)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, err.Error())
			return
		}
		c.internalError(w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, iv)
}

// ListMine godoc
// @Summary List my interviews
// @Description Returns the interviews owned by the authenticated interviewer, each with its derived status and slot statistics.
// @Tags interviews
// @Produce json
// @Security BearerAuth
// @Success 200 {object} helpers.APIResponse "data contains []InterviewWithStats"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /interviews/mine [get]
func (c *InterviewController) ListMine(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	interviews, err := c.Service.ListMine(r.Context(), ownerID)
	if err != nil {
		c.internalError(w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, interviews)
}

// GetByID godoc
// @Summary Get an interview by ID
// @Description Returns the full interview with its slot grid, candidate list, status, and statistics. Only the owner may read it.
// @Tags interviews
// @Produce json
// @Security BearerAuth
// @Param interviewID path string true "Interview ID"
// @Success 200 {object} helpers.APIResponse "data contains InterviewWithStats"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden (not owner)"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /interviews/{interviewID} [get]
func (c *InterviewController) GetByID(w http.ResponseWriter, r *http.Request) {
	interviewID := r.PathValue("interviewID")
	if interviewID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing interviewID")
		return
	}
	ownerID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	iv, err := c.Service.GetByID(r.Context(), interviewID, ownerID)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "interview not found")
		case errors.Is(err, domain.ErrForbidden):
			helpers.WriteJSONError(w, http.StatusForbidden, helpers.ErrCodeForbidden, "not the interview owner")
		default:
			c.internalError(w, r, err)
		}
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, iv)
}

// Delete godoc
// @Summary Delete an interview
// @Description Removes the interview and its entire slot grid. Applications derived from its bookings disappear with it. Only the owner may delete.
// @Tags interviews
// @Produce json
// @Security BearerAuth
// @Param interviewID path string true "Interview ID"
// @Success 204 "no content"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden (not owner)"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /interviews/{interviewID} [delete]
func (c *InterviewController) Delete(w http.ResponseWriter, r *http.Request) {
	interviewID := r.PathValue("interviewID")
	if interviewID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing interviewID")
		return
	}
	ownerID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	if err := c.Service.Delete(r.Context(), interviewID, ownerID); err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "interview not found")
		case errors.Is(err, domain.ErrForbidden):
			helpers.WriteJSONError(w, http.StatusForbidden, helpers.ErrCodeForbidden, "not the interview owner")
		default:
			c.internalError(w, r, err)
		}
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// MarkMissed godoc
// @Summary Mark a booked slot as missed
// @Description Flags a booked, past slot as missed so the applicant's view of it reads missed instead of completed. Only the owner may mark; free or future slots are rejected.
// @Tags interviews
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param interviewID path string true "Interview ID"
// @Param body body MarkMissedRequest true "Slot cell to mark"
// @Success 204 "no content"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden (not owner)"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict (slot free or not yet past)"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /interviews/{interviewID}/slots/missed [post]
func (c *InterviewController) MarkMissed(w http.ResponseWriter, r *http.Request) {
	interviewID := r.PathValue("interviewID")
	if interviewID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing interviewID")
		return
	}
	var req MarkMissedRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	ownerID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	if err := c.Service.MarkMissed(r.Context(), interviewID, ownerID, req.Date, req.Slot); err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "interview or slot not found")
		case errors.Is(err, domain.ErrForbidden):
			helpers.WriteJSONError(w, http.StatusForbidden, helpers.ErrCodeForbidden, "not the interview owner")
		case errors.Is(err, domain.ErrSlotNotMarkable):
			helpers.WriteJSONError(w, http.StatusConflict, helpers.ErrCodeConflict, err.Error())
		default:
			c.internalError(w, r, err)
		}
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Dashboard godoc
// @Summary Interviewer dashboard
// @Description Returns a rollup across the authenticated interviewer's interviews: status counts, slot totals, and today's bookings.
// @Tags interviews
// @Produce json
// @Security BearerAuth
// @Success 200 {object} helpers.APIResponse "data contains DashboardSummary"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /dashboard [get]
func (c *InterviewController) Dashboard(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	summary, err := c.Service.Dashboard(r.Context(), ownerID)
	if err != nil {
		c.internalError(w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, summary)
}
