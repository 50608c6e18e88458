package http

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger"

	"interviewscheduler/internal/delivery/http/controllers"
	"interviewscheduler/internal/delivery/http/middleware"
	"interviewscheduler/internal/domain"
)

// Pinger reports storage reachability for the health endpoint.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// RouterDeps carries everything the router wires together.
type RouterDeps struct {
	Logger              *slog.Logger
	Verifier            domain.TokenVerifier
	InterviewController *controllers.InterviewController
	ApplicantController *controllers.ApplicantController
	BookingLimiter      *middleware.RateLimiter
	MetricsHandler      http.Handler
	HealthChecker       Pinger
	AllowedOrigins      []string
}

// NewRouter builds the full HTTP handler: routes, auth, role checks, the
// booking rate limit, request logging, and CORS.
func NewRouter(deps *RouterDeps) http.Handler {
	mux := http.NewServeMux()

	auth := middleware.RequireAuth(deps.Verifier, deps.Logger)
	interviewer := func(h http.HandlerFunc) http.HandlerFunc {
		return auth(middleware.RequireRole(domain.RoleInterviewer)(h))
	}
	applicant := func(h http.HandlerFunc) http.HandlerFunc {
		return auth(middleware.RequireRole(domain.RoleApplicant)(h))
	}

	ic := deps.InterviewController
	ac := deps.ApplicantController

	// Interviewer routes
	mux.HandleFunc("POST /interviews", interviewer(ic.Create))
	mux.HandleFunc("POST /interviews/candidates/import", interviewer(ic.ImportCandidates))
	mux.HandleFunc("GET /interviews/mine", interviewer(ic.ListMine))
	mux.HandleFunc("GET /interviews/{interviewID}", interviewer(ic.GetByID))
	mux.HandleFunc("DELETE /interviews/{interviewID}", interviewer(ic.Delete))
	mux.HandleFunc("POST /interviews/{interviewID}/slots/missed", interviewer(ic.MarkMissed))
	mux.HandleFunc("GET /dashboard", interviewer(ic.Dashboard))

	// Applicant routes
	mux.HandleFunc("GET /interviews/available", applicant(ac.ListAvailable))
	mux.HandleFunc("POST /interviews/{interviewID}/bookings",
		applicant(deps.BookingLimiter.Middleware()(ac.Book)))
	mux.HandleFunc("GET /applications", applicant(ac.MyApplications))
	mux.HandleFunc("GET /applications/{applicationID}", applicant(ac.GetApplication))

	// Operational endpoints
	mux.HandleFunc("GET /healthz", healthHandler(deps.HealthChecker))
	if deps.MetricsHandler != nil {
		mux.Handle("GET /metrics", deps.MetricsHandler)
	}

	// Swagger
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	return middleware.CORS(deps.AllowedOrigins, middleware.LoggingMiddleware(deps.Logger, mux))
}

func healthHandler(pinger Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if pinger != nil {
			if err := pinger.PingContext(r.Context()); err != nil {
				w.WriteHeader(http.StatusServiceUnavailable)
				_ = json.NewEncoder(w).Encode(map[string]string{"status": "degraded"})
				return
			}
		}
		_ = json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
	}
}
