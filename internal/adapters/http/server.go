package httpadapter

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	openapi_types "github.com/oapi-codegen/runtime/types"

	"leaseflex/internal/domain"
	"leaseflex/internal/ports"
	"leaseflex/internal/underwriting"
)

const maxBodyBytes = 1 << 20

type Server struct {
	quotes       ports.Quotes
	claims       ports.Claims
	underwriting ports.Underwriting
	log          *slog.Logger
}

func New(quotes ports.Quotes, claims ports.Claims, uw ports.Underwriting, log *slog.Logger) *Server {
	if log == nil {
		log = slog.Default()
	}
	return &Server{quotes: quotes, claims: claims, underwriting: uw, log: log}
}

// Routes returns a chi.Router with every API route mounted.
func (s *Server) Routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.requestLogger)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.healthz)
	r.Post("/quotes", s.postQuote)
	r.Route("/offers/{id}", func(r chi.Router) {
		r.Get("/", s.getOffer)
		r.Post("/email", s.postEmail)
		r.Post("/status", s.postStatus)
	})
	r.Post("/claims", s.postClaim)
	r.Get("/claims/{id}", s.getClaim)
	r.Route("/admin/underwriting", func(r chi.Router) {
		r.Get("/", s.getUnderwriting)
		r.Post("/scenarios", s.postScenario)
	})
	return r
}

func (s *Server) healthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) postQuote(w http.ResponseWriter, r *http.Request) {
	var in domain.QuoteInput
	if !s.decode(w, r, &in) {
		return
	}
	offer, err := s.quotes.Quote(r.Context(), in)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, offer)
}

func (s *Server) getOffer(w http.ResponseWriter, r *http.Request) {
	id, ok := offerID(w, r)
	if !ok {
		return
	}
	offer, err := s.quotes.Get(r.Context(), id)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, offer)
}

type emailRequest struct {
	FullName string              `json:"full_name"`
	Email    openapi_types.Email `json:"email"`
}

func (s *Server) postEmail(w http.ResponseWriter, r *http.Request) {
	id, ok := offerID(w, r)
	if !ok {
		return
	}
	var req emailRequest
	if !s.decode(w, r, &req) {
		return
	}
	offer, err := s.quotes.EmailOffer(r.Context(), id, req.FullName, string(req.Email))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, offer)
}

type statusRequest struct {
	Status string `json:"status"`
}

func (s *Server) postStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := offerID(w, r)
	if !ok {
		return
	}
	var req statusRequest
	if !s.decode(w, r, &req) {
		return
	}
	status, err := domain.ParseOfferStatus(req.Status)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	offer, err := s.quotes.SetStatus(r.Context(), id, status)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, offer)
}

func (s *Server) postClaim(w http.ResponseWriter, r *http.Request) {
	var in domain.ClaimInput
	if !s.decode(w, r, &in) {
		return
	}
	claim, err := s.claims.Submit(r.Context(), in)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, claim)
}

func (s *Server) getClaim(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "malformed claim id")
		return
	}
	claim, err := s.claims.Get(r.Context(), id)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, claim)
}

func (s *Server) getUnderwriting(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"tiers": s.underwriting.FullAnalysis(r.Context())})
}

func (s *Server) postScenario(w http.ResponseWriter, r *http.Request) {
	var o underwriting.Overrides
	if !s.decode(w, r, &o) {
		return
	}
	sc, err := s.underwriting.Scenario(r.Context(), o)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, sc)
}

func offerID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "malformed offer id")
		return uuid.Nil, false
	}
	return id, true
}

func (s *Server) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(v); err != nil {
		if errors.Is(err, openapi_types.ErrValidationEmail) {
			writeError(w, http.StatusBadRequest, domain.ErrInvalidEmail.Error())
			return false
		}
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return false
	}
	return true
}

// fail maps service errors onto status codes. Unknown errors are logged and
// reported as 500 without detail.
func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error) {
	var verrs domain.ValidationErrors
	switch {
	case errors.As(err, &verrs):
		writeJSON(w, http.StatusBadRequest, map[string]any{"errors": verrs})
	case errors.Is(err, domain.ErrOfferNotFound), errors.Is(err, domain.ErrClaimNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, domain.ErrInvalidStatus),
		errors.Is(err, domain.ErrInvalidEmail),
		errors.Is(err, underwriting.ErrInvalidAssumptions):
		writeError(w, http.StatusBadRequest, err.Error())
	default:
		s.log.ErrorContext(r.Context(), "request failed",
			"method", r.Method,
			"path", r.URL.Path,
			"request_id", middleware.GetReqID(r.Context()),
			"error", err,
		)
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}

func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.log.InfoContext(r.Context(), "http request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration_ms", time.Since(start).Milliseconds(),
			"request_id", middleware.GetReqID(r.Context()),
		)
	})
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, map[string]string{"error": msg})
}
