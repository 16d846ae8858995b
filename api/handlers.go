package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/seenimoa/bureaulens/internal/bureau"
	"github.com/seenimoa/bureaulens/internal/dataset"
	"github.com/seenimoa/bureaulens/internal/report"
	"github.com/seenimoa/bureaulens/pkg/models"
)

const maxBatchSize = 100

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.WithError(err).Error("failed to encode response")
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, msg string) {
	s.writeJSON(w, status, errorResponse{Error: msg})
}

// writeDomainError maps pipeline errors onto HTTP statuses.
func (s *Server) writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, bureau.ErrBadCustomerID):
		s.writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, dataset.ErrSourceUnavailable), errors.Is(err, dataset.ErrMissingColumn):
		s.writeError(w, http.StatusServiceUnavailable, err.Error())
	default:
		s.writeError(w, http.StatusInternalServerError, err.Error())
	}
}

func customerIDParam(r *http.Request) (int64, error) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", bureau.ErrBadCustomerID, raw)
	}
	return id, nil
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]any{
		"status":  "ok",
		"service": "bureaulens",
		"time":    time.Now().UTC().Format(time.RFC3339),
	})
}

// buildReport returns a (possibly cached) report for the customer. Reports
// are deterministic for a fixed dataset, so caching only trades freshness of
// the run metadata, never correctness of the numbers.
func (s *Server) buildReport(customerID int64) (*models.BureauReport, error) {
	key := "report:" + strconv.FormatInt(customerID, 10)
	if cached, ok := s.cache.Get(key); ok {
		return cached.(*models.BureauReport), nil
	}

	rep, err := s.builder.Build(customerID)
	if err != nil {
		return nil, err
	}
	if err := s.store.Record(rep); err != nil {
		log.WithField("customer_id", customerID).WithError(err).Warn("report store record failed")
	}

	s.cache.SetDefault(key, rep)
	return rep, nil
}

// handleReport serves GET /api/v1/customers/{id}/report.
// The format query parameter selects json (default), text, or html.
func (s *Server) handleReport(w http.ResponseWriter, r *http.Request) {
	id, err := customerIDParam(r)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	rep, err := s.buildReport(id)
	if err != nil {
		s.writeDomainError(w, err)
		return
	}

	format := report.Format(r.URL.Query().Get("format"))
	if format == "" {
		format = report.FormatJSON
	}
	body, err := report.Render(rep, format)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	switch format {
	case report.FormatHTML:
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
	case report.FormatText:
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	default:
		w.Header().Set("Content-Type", "application/json")
	}
	w.WriteHeader(http.StatusOK)
	w.Write(body)
}

// handleFindings serves GET /api/v1/customers/{id}/findings.
func (s *Server) handleFindings(w http.ResponseWriter, r *http.Request) {
	id, err := customerIDParam(r)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	rep, err := s.buildReport(id)
	if err != nil {
		s.writeDomainError(w, err)
		return
	}

	s.writeJSON(w, http.StatusOK, map[string]any{
		"customer_id":  id,
		"key_findings": rep.KeyFindings,
	})
}

// handleFeatures serves GET /api/v1/customers/{id}/features: the per-type
// feature vectors plus the executive summary, without findings.
func (s *Server) handleFeatures(w http.ResponseWriter, r *http.Request) {
	id, err := customerIDParam(r)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	rep, err := s.buildReport(id)
	if err != nil {
		s.writeDomainError(w, err)
		return
	}

	s.writeJSON(w, http.StatusOK, map[string]any{
		"customer_id":        id,
		"feature_vectors":    rep.FeatureVectors,
		"executive_summary":  rep.ExecutiveSummary,
		"tradeline_features": rep.TradelineFeatures,
	})
}

type batchRequest struct {
	CustomerIDs []int64 `json:"customer_ids"`
}

type batchResult struct {
	CustomerID int64                `json:"customer_id"`
	Report     *models.BureauReport `json:"report,omitempty"`
	Error      string               `json:"error,omitempty"`
}

// handleBatchReports serves POST /api/v1/reports/batch. Reports are built
// concurrently with a bounded worker count; per-customer failures are
// reported in place so one bad identifier cannot sink the batch.
func (s *Server) handleBatchReports(w http.ResponseWriter, r *http.Request) {
	var req batchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	if len(req.CustomerIDs) == 0 {
		s.writeError(w, http.StatusBadRequest, "customer_ids is required")
		return
	}
	if len(req.CustomerIDs) > maxBatchSize {
		s.writeError(w, http.StatusBadRequest,
			fmt.Sprintf("batch size %d exceeds limit of %d", len(req.CustomerIDs), maxBatchSize))
		return
	}

	results := make([]batchResult, len(req.CustomerIDs))
	g, _ := errgroup.WithContext(r.Context())
	workers := s.cfg.API.BatchWorkers
	if workers <= 0 {
		workers = 1
	}
	g.SetLimit(workers)

	for i, id := range req.CustomerIDs {
		i, id := i, id
		g.Go(func() error {
			rep, err := s.buildReport(id)
			if err != nil {
				results[i] = batchResult{CustomerID: id, Error: err.Error()}
				return nil
			}
			results[i] = batchResult{CustomerID: id, Report: rep}
			return nil
		})
	}
	g.Wait()

	s.writeJSON(w, http.StatusOK, map[string]any{
		"count":   len(results),
		"results": results,
	})
}
