package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/seenimoa/bureaulens/internal/config"
	"github.com/seenimoa/bureaulens/pkg/models"
)

// ════════════════════════════════════════════════════════════════════
// Test Helpers
// ════════════════════════════════════════════════════════════════════

const tradelineFixture = "crn\tloan_type_new\tloan_status\tsanction_amount\t" +
	"out_standing_balance\tover_due_amount\tcreditlimit\tlast_payment_date\t" +
	"tl_vin_1\tsector\tdpd_string\tmax_dpd\tmonths_since_max_dpd\tdate_opened\tdate_closed\n" +
	"1001\tCredit Card\tLive\t10000\t8000\t0\t10000\t15-05-2024\t24\tHDFC BANK\tSTD/STD\t0\tNULL\t10-01-2022\tNULL\n" +
	"1001\tHousing Loan\tLive\t60000\t50000\t0\t0\tNULL\t36\tKOTAK BANK\tSTD/STD\t0\tNULL\t05-06-2021\tNULL\n" +
	"2002\tPersonal Loan\tLive\t50000\t48000\t2000\t0\tNULL\t6\tHDFC BANK\tSTD/SUB\t45\t2\t01-02-2024\tNULL\n"

const featureFixture = "crn\tuns_enq_l12m\tno_tr_open_l6m_pl_onc\n" +
	"1001\t2\t0\n" +
	"2002\t14\t3\n"

func testServer(t *testing.T) *Server {
	t.Helper()
	dir := t.TempDir()

	tlPath := filepath.Join(dir, "dpd_data.csv")
	if err := os.WriteFile(tlPath, []byte(tradelineFixture), 0o644); err != nil {
		t.Fatalf("write tradeline fixture: %v", err)
	}
	fPath := filepath.Join(dir, "tl_features.csv")
	if err := os.WriteFile(fPath, []byte(featureFixture), 0o644); err != nil {
		t.Fatalf("write feature fixture: %v", err)
	}

	cfg := &config.Config{
		Data: config.DataConfig{
			TradelineFile: tlPath,
			FeaturesFile:  fPath,
		},
		API: config.APIConfig{
			CacheTTLSecs: 60,
			BatchWorkers: 2,
		},
	}

	srv, err := NewServer(cfg)
	if err != nil {
		t.Fatalf("NewServer: %v", err)
	}
	return srv
}

func doRequest(t *testing.T, srv *Server, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)
	return rec
}

// ════════════════════════════════════════════════════════════════════
// Endpoint tests
// ════════════════════════════════════════════════════════════════════

func TestHealthEndpoint(t *testing.T) {
	srv := testServer(t)

	for _, path := range []string{"/health", "/api/v1/health"} {
		rec := doRequest(t, srv, http.MethodGet, path, "")
		if rec.Code != http.StatusOK {
			t.Errorf("%s status = %d", path, rec.Code)
		}
		var body map[string]any
		if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if body["status"] != "ok" {
			t.Errorf("%s status field = %v", path, body["status"])
		}
	}
}

func TestReportEndpointJSON(t *testing.T) {
	srv := testServer(t)

	rec := doRequest(t, srv, http.MethodGet, "/api/v1/customers/1001/report", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "application/json") {
		t.Errorf("content type = %q", ct)
	}

	var report models.BureauReport
	if err := json.NewDecoder(rec.Body).Decode(&report); err != nil {
		t.Fatalf("decode report: %v", err)
	}
	if report.Meta.CustomerID != 1001 {
		t.Errorf("customer id = %d", report.Meta.CustomerID)
	}
	if report.ExecutiveSummary.TotalOutstanding != 58000 {
		t.Errorf("total outstanding = %v, want 58000", report.ExecutiveSummary.TotalOutstanding)
	}
	if report.ExecutiveSummary.UnsecuredOutstanding != 8000 {
		t.Errorf("unsecured outstanding = %v, want 8000", report.ExecutiveSummary.UnsecuredOutstanding)
	}
	if len(report.FeatureVectors) != 2 {
		t.Errorf("feature vector groups = %d, want 2", len(report.FeatureVectors))
	}
}

func TestReportEndpointFormats(t *testing.T) {
	srv := testServer(t)

	rec := doRequest(t, srv, http.MethodGet, "/api/v1/customers/1001/report?format=text", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("text status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "EXECUTIVE SUMMARY") {
		t.Error("text body missing summary section")
	}

	rec = doRequest(t, srv, http.MethodGet, "/api/v1/customers/1001/report?format=html", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("html status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "<!DOCTYPE html>") {
		t.Error("html body missing doctype")
	}

	rec = doRequest(t, srv, http.MethodGet, "/api/v1/customers/1001/report?format=pdf", "")
	if rec.Code != http.StatusBadRequest {
		t.Errorf("unknown format status = %d, want 400", rec.Code)
	}
}

func TestReportEndpointBadCustomerID(t *testing.T) {
	srv := testServer(t)

	for _, path := range []string{
		"/api/v1/customers/abc/report",
		"/api/v1/customers/-5/report",
		"/api/v1/customers/0/report",
	} {
		rec := doRequest(t, srv, http.MethodGet, path, "")
		if rec.Code != http.StatusBadRequest {
			t.Errorf("%s status = %d, want 400", path, rec.Code)
		}
	}
}

// A customer absent from the dataset still gets a valid empty report.
func TestReportEndpointUnknownCustomer(t *testing.T) {
	srv := testServer(t)

	rec := doRequest(t, srv, http.MethodGet, "/api/v1/customers/9999/report", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var report models.BureauReport
	if err := json.NewDecoder(rec.Body).Decode(&report); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if report.ExecutiveSummary.TotalTradelines != 0 {
		t.Errorf("tradelines = %d, want 0", report.ExecutiveSummary.TotalTradelines)
	}
}

func TestFindingsEndpoint(t *testing.T) {
	srv := testServer(t)

	rec := doRequest(t, srv, http.MethodGet, "/api/v1/customers/2002/findings", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}

	var body struct {
		CustomerID  int64               `json:"customer_id"`
		KeyFindings []models.KeyFinding `json:"key_findings"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.CustomerID != 2002 {
		t.Errorf("customer id = %d", body.CustomerID)
	}
	// 2002 carries a 45-day DPD and heavy enquiry pressure.
	if len(body.KeyFindings) == 0 {
		t.Fatal("expected findings for delinquent customer")
	}
	if body.KeyFindings[0].Severity != models.SeverityHighRisk {
		t.Errorf("first severity = %q, want high_risk", body.KeyFindings[0].Severity)
	}
}

func TestFeaturesEndpoint(t *testing.T) {
	srv := testServer(t)

	rec := doRequest(t, srv, http.MethodGet, "/api/v1/customers/1001/features", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}

	var body map[string]json.RawMessage
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	for _, key := range []string{"customer_id", "feature_vectors", "executive_summary", "tradeline_features"} {
		if _, ok := body[key]; !ok {
			t.Errorf("response missing %q", key)
		}
	}
}

func TestBatchReports(t *testing.T) {
	srv := testServer(t)

	rec := doRequest(t, srv, http.MethodPost, "/api/v1/reports/batch",
		`{"customer_ids": [1001, 2002, -7]}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}

	var body struct {
		Count   int `json:"count"`
		Results []struct {
			CustomerID int64                `json:"customer_id"`
			Report     *models.BureauReport `json:"report"`
			Error      string               `json:"error"`
		} `json:"results"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Count != 3 {
		t.Fatalf("count = %d, want 3", body.Count)
	}

	// Results keep request order.
	if body.Results[0].CustomerID != 1001 || body.Results[0].Report == nil {
		t.Errorf("result[0] = %+v", body.Results[0])
	}
	if body.Results[1].CustomerID != 2002 || body.Results[1].Report == nil {
		t.Errorf("result[1] = %+v", body.Results[1])
	}
	// A bad id fails in place without sinking the batch.
	if body.Results[2].Error == "" || body.Results[2].Report != nil {
		t.Errorf("result[2] = %+v, want per-item error", body.Results[2])
	}
}

func TestBatchReportsValidation(t *testing.T) {
	srv := testServer(t)

	rec := doRequest(t, srv, http.MethodPost, "/api/v1/reports/batch", `{"customer_ids": []}`)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("empty batch status = %d, want 400", rec.Code)
	}

	rec = doRequest(t, srv, http.MethodPost, "/api/v1/reports/batch", `not json`)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("bad body status = %d, want 400", rec.Code)
	}
}

func TestReportServiceUnavailable(t *testing.T) {
	dir := t.TempDir()
	cfg := &config.Config{
		Data: config.DataConfig{
			TradelineFile: filepath.Join(dir, "missing.csv"),
			FeaturesFile:  filepath.Join(dir, "missing2.csv"),
		},
		API: config.APIConfig{CacheTTLSecs: 60, BatchWorkers: 2},
	}
	srv, err := NewServer(cfg)
	if err != nil {
		t.Fatalf("NewServer: %v", err)
	}

	rec := doRequest(t, srv, http.MethodGet, "/api/v1/customers/1001/report", "")
	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("status = %d, want 503 when the dataset is unavailable", rec.Code)
	}
}

func TestInvalidRefreshSchedule(t *testing.T) {
	dir := t.TempDir()
	cfg := &config.Config{
		Data: config.DataConfig{
			TradelineFile:   filepath.Join(dir, "tl.csv"),
			FeaturesFile:    filepath.Join(dir, "f.csv"),
			RefreshSchedule: "not a cron expression",
		},
		API: config.APIConfig{CacheTTLSecs: 60, BatchWorkers: 2},
	}
	if _, err := NewServer(cfg); err == nil {
		t.Error("invalid cron expression should fail server construction")
	}
}
