package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/rpgo/savings-calculator/internal/calculation"
	"github.com/rpgo/savings-calculator/internal/domain"
	"github.com/rpgo/savings-calculator/internal/output"
	"github.com/rpgo/savings-calculator/internal/service"
	"github.com/rpgo/savings-calculator/pkg/dateutil"
)

// ============================================================
// Request / Response types
// ============================================================

// APIResponse is the standard JSON envelope.
type APIResponse struct {
	Success   bool        `json:"success"`
	Data      interface{} `json:"data,omitempty"`
	Error     string      `json:"error,omitempty"`
	ErrorKind string      `json:"error_kind,omitempty"`
	Field     string      `json:"field,omitempty"`
}

// ProjectionResponse is the data payload for projection endpoints.
type ProjectionResponse struct {
	Input    domain.ProjectionInput   `json:"input"`
	Result   *domain.ProjectionResult `json:"result"`
	Summary  string                   `json:"summary"`
	GoalDate string                   `json:"goal_date,omitempty"`
	Cached   bool                     `json:"cached"`
}

// ============================================================
// Handlers
// ============================================================

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, APIResponse{
		Success: true,
		Data: map[string]interface{}{
			"status":     "ok",
			"version":    s.version,
			"max_months": s.svc.MaxMonths(),
			"time":       time.Now().UTC().Format(time.RFC3339),
		},
	})
}

func (s *Server) handleFormats(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, APIResponse{
		Success: true,
		Data: map[string][]string{
			"formats": output.AvailableFormatterNames(),
			"aliases": output.AvailableFormatAliases(),
		},
	})
}

// handleCreateProjection serves POST /api/v1/projections with a JSON
// ProjectionInput body and optional ?start=YYYY-MM.
func (s *Server) handleCreateProjection(w http.ResponseWriter, r *http.Request) {
	opts, ok := s.reportOptions(w, r)
	if !ok {
		return
	}
	var in domain.ProjectionInput
	if err := decodeBody(w, r, &in); err != nil {
		s.writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid request body: %v", err))
		return
	}
	p, err := s.svc.Project(r.Context(), in)
	s.respondProjection(w, opts, p, err)
}

// handleQueryProjection serves GET /api/v1/projections with raw query
// parameters parsed the same way as form input.
func (s *Server) handleQueryProjection(w http.ResponseWriter, r *http.Request) {
	opts, ok := s.reportOptions(w, r)
	if !ok {
		return
	}
	q := r.URL.Query()
	raw := calculation.RawInput{
		MonthlyContribution: q.Get(calculation.FieldMonthlyContribution),
		AnnualInterestRate:  q.Get(calculation.FieldAnnualInterestRate),
		AnnualInflationRate: q.Get(calculation.FieldAnnualInflationRate),
		InitialBalance:      q.Get(calculation.FieldInitialBalance),
		TargetAmount:        q.Get(calculation.FieldTargetAmount),
	}
	p, err := s.svc.ProjectRaw(r.Context(), raw)
	s.respondProjection(w, opts, p, err)
}

// reportOptions holds the rendering query parameters, checked before any
// projection runs. A nil formatter means the JSON envelope.
type reportOptions struct {
	start     *time.Time
	formatter output.Formatter
}

func (s *Server) reportOptions(w http.ResponseWriter, r *http.Request) (reportOptions, bool) {
	var opts reportOptions
	start, err := parseStart(r)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return opts, false
	}
	opts.start = start
	if format := r.URL.Query().Get("format"); format != "" && output.NormalizeFormatName(format) != "json" {
		f, err := output.ResolveFormatter(format)
		if err != nil {
			s.writeError(w, http.StatusBadRequest, err.Error())
			return opts, false
		}
		opts.formatter = f
	}
	return opts, true
}

func (s *Server) respondProjection(w http.ResponseWriter, opts reportOptions, p *service.Projection, err error) {
	if err != nil {
		s.writeDomainError(w, StatusFor(err), err)
		return
	}

	if opts.formatter != nil {
		cmp := &domain.ScenarioComparison{
			GeneratedAt: time.Now(),
			StartDate:   opts.start,
			MaxMonths:   s.svc.MaxMonths(),
			Scenarios:   []domain.ScenarioSummary{{Name: "Projection", Input: p.Input, Result: p.Result}},
		}
		s.writeReport(w, cmp, opts.formatter)
		return
	}

	resp := ProjectionResponse{
		Input:   p.Input,
		Result:  p.Result,
		Summary: output.DurationSentence(p.Result),
		Cached:  p.Cached,
	}
	if opts.start != nil {
		resp.GoalDate = p.Result.GoalDate(*opts.start).Format(dateutil.MonthLayout)
	}
	s.writeJSON(w, http.StatusOK, APIResponse{Success: true, Data: resp})
}

// handleRunScenarios serves POST /api/v1/scenarios with a JSON
// Configuration body.
func (s *Server) handleRunScenarios(w http.ResponseWriter, r *http.Request) {
	opts, ok := s.reportOptions(w, r)
	if !ok {
		return
	}
	var cfg domain.Configuration
	if err := decodeBody(w, r, &cfg); err != nil {
		s.writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid request body: %v", err))
		return
	}
	if err := s.parser.ValidateConfiguration(&cfg); err != nil {
		s.writeDomainError(w, http.StatusBadRequest, err)
		return
	}
	if cfg.MaxMonths > s.svc.MaxMonths() {
		s.writeError(w, http.StatusBadRequest, fmt.Sprintf("max_months cannot exceed %d", s.svc.MaxMonths()))
		return
	}
	if cfg.MaxMonths == 0 {
		cfg.MaxMonths = s.svc.MaxMonths()
	}
	if opts.start != nil {
		cfg.StartDate = opts.start
	}

	cmp, err := s.svc.RunScenarios(r.Context(), &cfg)
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if opts.formatter != nil {
		s.writeReport(w, cmp, opts.formatter)
		return
	}
	s.writeJSON(w, http.StatusOK, APIResponse{Success: true, Data: cmp})
}

// ============================================================
// Helpers
// ============================================================

func decodeBody(w http.ResponseWriter, r *http.Request, v interface{}) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}

func parseStart(r *http.Request) (*time.Time, error) {
	raw := r.URL.Query().Get("start")
	if raw == "" {
		return nil, nil
	}
	start, err := dateutil.ParseMonth(raw)
	if err != nil {
		return nil, err
	}
	return &start, nil
}

// StatusFor maps an error to its HTTP status.
func StatusFor(err error) int {
	switch {
	case errors.Is(err, calculation.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, calculation.ErrNonTerminating):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) writeDomainError(w http.ResponseWriter, status int, err error) {
	resp := APIResponse{Success: false, Error: err.Error(), ErrorKind: calculation.ErrorKind(err)}
	var inputErr *calculation.InputError
	if errors.As(err, &inputErr) {
		resp.Field = inputErr.Field
	}
	s.writeJSON(w, status, resp)
}

var contentTypes = map[string]string{
	"csv":  "text/csv; charset=utf-8",
	"html": "text/html; charset=utf-8",
	"json": "application/json",
	"txt":  "text/plain; charset=utf-8",
}

func (s *Server) writeReport(w http.ResponseWriter, cmp *domain.ScenarioComparison, f output.Formatter) {
	data, err := f.Format(cmp)
	if err != nil {
		s.logger.Errorf("render %s report: %v", f.Name(), err)
		s.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	w.Header().Set("Content-Type", contentTypes[f.Extension()])
	w.WriteHeader(http.StatusOK)
	w.Write(data) //nolint:errcheck
}

// writeJSON encodes v before touching the response so an encoding failure
// still reaches the client as a 500.
func (s *Server) writeJSON(w http.ResponseWriter, status int, v interface{}) {
	body, err := json.Marshal(v)
	if err != nil {
		s.logger.Errorf("encode JSON response: %v", err)
		status = http.StatusInternalServerError
		body, _ = json.Marshal(APIResponse{Success: false, Error: "failed to encode response"})
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(append(body, '\n')) //nolint:errcheck
}

func (s *Server) writeError(w http.ResponseWriter, status int, msg string) {
	s.writeJSON(w, status, APIResponse{
		Success: false,
		Error:   msg,
	})
}
