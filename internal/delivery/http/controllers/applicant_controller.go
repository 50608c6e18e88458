package controllers

import (
	"errors"
	"log/slog"
	"net/http"

	"interviewscheduler/internal/delivery/http/helpers"
	"interviewscheduler/internal/delivery/http/middleware"
	"interviewscheduler/internal/domain"
)

// BookSlotRequest is the request body for POST /interviews/{interviewID}/bookings.
type BookSlotRequest struct {
	Date string `json:"date"`
	Slot string `json:"slot"`
}

// Validate implements Validator.
func (b BookSlotRequest) Validate() []string {
	var errs []string
	if b.Date == "" {
		errs = append(errs, "date is required")
	}
	if b.Slot == "" {
		errs = append(errs, "slot is required")
	}
	return errs
}

// MyApplicationsResponse is the response body for GET /applications.
type MyApplicationsResponse struct {
	Applications []*domain.Application   `json:"applications"`
	Stats        domain.ApplicationStats `json:"stats"`
}

type ApplicantController struct {
	Logger  *slog.Logger
	Service domain.ApplicantService
}

func NewApplicantController(logger *slog.Logger, svc domain.ApplicantService) *ApplicantController {
	return &ApplicantController{
		Logger:  logger,
		Service: svc,
	}
}

func (c *ApplicantController) internalError(w http.ResponseWriter, r *http.Request, err error) {
	c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
	helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, "internal error")
}

// ListAvailable godoc
// @Summary List bookable interviews
// @Description Returns interviews that are not yet completed and still have at least one free slot, exposing only the free cells per date.
// @Tags applicants
// @Produce json
// @Security BearerAuth
// @Success 200 {object} helpers.APIResponse "data contains []AvailableInterview"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /interviews/available [get]
func (c *ApplicantController) ListAvailable(w http.ResponseWriter, r *http.Request) {
	if _, ok := middleware.UserIDFromContext(r.Context()); !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	available, err := c.Service.ListAvailable(r.Context())
	if err != nil {
		c.internalError(w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, available)
}

// Book godoc
// @Summary Book a slot
// @Description Atomically claims a free (date, slot) cell for the authenticated applicant. Under concurrent attempts on the same cell exactly one caller succeeds; the rest get 409 conflict. Booking a completed interview is rejected.
// @Tags applicants
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param interviewID path string true "Interview ID"
// @Param body body BookSlotRequest true "Cell to claim"
// @Success 201 "created"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found (interview or unoffered cell)"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict (cell taken or interview completed)"
// @Failure 429 {object} helpers.APIResponse "error.code: rate_limit_exceeded"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /interviews/{interviewID}/bookings [post]
func (c *ApplicantController) Book(w http.ResponseWriter, r *http.Request) {
	interviewID := r.PathValue("interviewID")
	if interviewID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing interviewID")
		return
	}
	var req BookSlotRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	applicantID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	if err := c.Service.BookSlot(r.Context(), interviewID, req.Date, req.Slot, applicantID); err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidInput):
			helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, err.Error())
		case errors.Is(err, domain.ErrNotFound):
			helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "interview or slot not found")
		case errors.Is(err, domain.ErrSlotTaken), errors.Is(err, domain.ErrInterviewClosed):
			helpers.WriteJSONError(w, http.StatusConflict, helpers.ErrCodeConflict, err.Error())
		default:
			c.internalError(w, r, err)
		}
		return
	}
	w.WriteHeader(http.StatusCreated)
}

// MyApplications godoc
// @Summary List my applications
// @Description Returns the authenticated applicant's bookings projected as applications, each with its derived status, plus status counts.
// @Tags applicants
// @Produce json
// @Security BearerAuth
// @Success 200 {object} helpers.APIResponse "data contains MyApplicationsResponse"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /applications [get]
func (c *ApplicantController) MyApplications(w http.ResponseWriter, r *http.Request) {
	applicantID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	apps, stats, err := c.Service.MyApplications(r.Context(), applicantID)
	if err != nil {
		c.internalError(w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, MyApplicationsResponse{Applications: apps, Stats: stats})
}

// GetApplication godoc
// @Summary Get one of my applications
// @Description Returns a single application of the authenticated applicant by its ID, with the status derived at read time. IDs belonging to other applicants read as not found.
// @Tags applicants
// @Produce json
// @Security BearerAuth
// @Param applicationID path string true "Application ID"
// @Success 200 {object} helpers.APIResponse "data contains Application"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /applications/{applicationID} [get]
func (c *ApplicantController) GetApplication(w http.ResponseWriter, r *http.Request) {
	applicationID := r.PathValue("applicationID")
	if applicationID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing applicationID")
		return
	}
	applicantID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	app, err := c.Service.GetApplication(r.Context(), applicantID, applicationID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "application not found")
			return
		}
		c.internalError(w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, app)
}
