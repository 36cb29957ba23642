package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/preemiealert/go-preemie-alerts/internal/ingestion"
	"github.com/preemiealert/go-preemie-alerts/internal/models"
	"github.com/preemiealert/go-preemie-alerts/internal/query"
	"github.com/preemiealert/go-preemie-alerts/internal/repository"
	"github.com/preemiealert/go-preemie-alerts/internal/stream"
)

// memRepo implements repository.AlertRepository in memory for handler tests.
type memRepo struct {
	alerts []models.AlertRecord
	nextID int64
}

func (m *memRepo) Insert(ctx context.Context, a *models.AlertRecord) (int64, error) {
	m.nextID++
	a.ID = m.nextID
	a.CreatedAt = time.Now().UTC()
	m.alerts = append(m.alerts, *a)
	return a.ID, nil
}

func (m *memRepo) ListRecent(ctx context.Context, limit int) ([]models.AlertRecord, error) {
	return m.ListFiltered(ctx, repository.Filter{Limit: limit})
}

func (m *memRepo) ListFiltered(ctx context.Context, f repository.Filter) ([]models.AlertRecord, error) {
	if f.Limit <= 0 {
		f.Limit = repository.DefaultLimit
	}

	var results []models.AlertRecord
	for i := len(m.alerts) - 1; i >= 0; i-- { // newest first
		a := m.alerts[i]
		if f.Window != nil && a.OccurredAt.Before(f.Window.Cutoff(time.Now().UTC())) {
			continue
		}
		if f.Tier != nil && a.UrgencyTier != *f.Tier {
			continue
		}
		if f.Municipality != nil && a.Municipality != *f.Municipality {
			continue
		}
		results = append(results, a)
		if len(results) == f.Limit {
			break
		}
	}
	return results, nil
}

func (m *memRepo) CountByTier(ctx context.Context) (map[models.UrgencyTier]int, error) {
	counts := make(map[models.UrgencyTier]int)
	for _, a := range m.alerts {
		counts[a.UrgencyTier]++
	}
	return counts, nil
}

func setupTestRouter(repo repository.AlertRepository) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	handler := NewHandler(query.NewService(repo), ingestion.NewService(repo), stream.NewBroadcaster())
	handler.RegisterRoutes(router)
	return router
}

func seedRepo(t *testing.T, repo *memRepo) {
	t.Helper()
	now := time.Now().UTC()
	records := []models.AlertRecord{
		{Municipality: "São Paulo", GestationalWeeks: 26, UrgencyTier: models.UrgencyTierExtreme, OccurredAt: now.Add(-2 * time.Hour), Hospital: "HSP-001", BirthDate: "2026-08-31"},
		{Municipality: "Curitiba", GestationalWeeks: 34, UrgencyTier: models.UrgencyTierMedium, OccurredAt: now.Add(-30 * time.Hour), Hospital: "HSP-014", BirthDate: "2026-08-29"},
		{Municipality: "São Paulo", GestationalWeeks: 39, UrgencyTier: models.UrgencyTierLow, OccurredAt: now.Add(-time.Hour), Hospital: "HSP-021", BirthDate: "2026-08-31"},
	}
	for i := range records {
		if _, err := repo.Insert(context.Background(), &records[i]); err != nil {
			t.Fatalf("seed insert failed: %v", err)
		}
	}
}

func TestGetAlerts_Envelope(t *testing.T) {
	repo := &memRepo{}
	seedRepo(t, repo)
	router := setupTestRouter(repo)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/api/alerts", nil)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}

	var resp query.AlertsResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to parse response: %v", err)
	}

	if resp.Total != 3 {
		t.Errorf("expected total 3, got %d", resp.Total)
	}
	if len(resp.Alertas) != 3 {
		t.Errorf("expected 3 alertas, got %d", len(resp.Alertas))
	}
	if resp.Alertas[0].Municipio != "São Paulo" {
		t.Errorf("expected newest alert first, got %s", resp.Alertas[0].Municipio)
	}
	if resp.FiltrosAplicados.Periodo != nil {
		t.Error("expected nil periodo in echoed filters")
	}
}

func TestGetAlerts_UrgenciaFilter(t *testing.T) {
	repo := &memRepo{}
	seedRepo(t, repo)
	router := setupTestRouter(repo)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/api/alerts?urgencia=EXTREMA", nil)
	router.ServeHTTP(w, req)

	var resp query.AlertsResponse
	json.Unmarshal(w.Body.Bytes(), &resp)

	if resp.Total != 1 {
		t.Errorf("expected 1 EXTREMA alert, got %d", resp.Total)
	}
	if resp.FiltrosAplicados.Urgencia == nil || *resp.FiltrosAplicados.Urgencia != "EXTREMA" {
		t.Error("expected urgencia echoed back")
	}
}

func TestGetAlerts_PeriodoFilter(t *testing.T) {
	repo := &memRepo{}
	seedRepo(t, repo)
	router := setupTestRouter(repo)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/api/alerts?periodo=24h", nil)
	router.ServeHTTP(w, req)

	var resp query.AlertsResponse
	json.Unmarshal(w.Body.Bytes(), &resp)

	// The 30-hour-old Curitiba record falls outside the window
	if resp.Total != 2 {
		t.Errorf("expected 2 alerts inside 24h, got %d", resp.Total)
	}
}

func TestGetAlerts_InvalidPeriodo(t *testing.T) {
	router := setupTestRouter(&memRepo{})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/api/alerts?periodo=quinzena", nil)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected status 400, got %d", w.Code)
	}
}

func TestGetAlerts_InvalidUrgencia(t *testing.T) {
	router := setupTestRouter(&memRepo{})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/api/alerts?urgencia=URGENTE", nil)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected status 400, got %d", w.Code)
	}
}

func TestPostNotification(t *testing.T) {
	repo := &memRepo{}
	router := setupTestRouter(repo)

	body := `{
		"birthDate": "2026-08-31",
		"gestationalAgeWeeks": 26,
		"hospitalIdentifier": "HSP-014 Maternidade Central",
		"municipalityCode": "3550308",
		"consentDataSharing": true,
		"timestamp": "2026-08-31T08:30:00Z"
	}`

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/api/notifications", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d: %s", w.Code, w.Body.String())
	}

	var alert query.Alert
	if err := json.Unmarshal(w.Body.Bytes(), &alert); err != nil {
		t.Fatalf("failed to parse response: %v", err)
	}
	if alert.Urgencia != "EXTREMA" {
		t.Errorf("expected urgencia EXTREMA, got %s", alert.Urgencia)
	}
	if alert.Municipio != "São Paulo" {
		t.Errorf("expected municipio São Paulo, got %s", alert.Municipio)
	}
	if len(repo.alerts) != 1 {
		t.Errorf("expected 1 persisted record, got %d", len(repo.alerts))
	}
}

func TestPostNotification_BadPayload(t *testing.T) {
	router := setupTestRouter(&memRepo{})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/api/notifications", strings.NewReader("{not json"))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected status 400, got %d", w.Code)
	}
}

func TestGetStatistics(t *testing.T) {
	repo := &memRepo{}
	seedRepo(t, repo)
	router := setupTestRouter(repo)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/api/statistics", nil)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}

	var resp query.StatisticsResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to parse response: %v", err)
	}
	if resp.Total != 3 {
		t.Errorf("expected total 3, got %d", resp.Total)
	}
	if resp.PorUrgencia["EXTREMA"].CustoEstimado != 17395 {
		t.Errorf("expected custo 17395 for one EXTREMA, got %d", resp.PorUrgencia["EXTREMA"].CustoEstimado)
	}
}

func TestHealth(t *testing.T) {
	router := setupTestRouter(&memRepo{})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/health", nil)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected status 200, got %d", w.Code)
	}

	var resp map[string]string
	json.Unmarshal(w.Body.Bytes(), &resp)

	if resp["status"] != "ok" {
		t.Errorf("expected status ok, got %s", resp["status"])
	}
}

func TestHome(t *testing.T) {
	router := setupTestRouter(&memRepo{})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/", nil)
	router.ServeHTTP(w, req)

	var resp map[string]string
	json.Unmarshal(w.Body.Bytes(), &resp)

	if resp["status"] != "online" {
		t.Errorf("expected status online, got %s", resp["status"])
	}
	if resp["version"] == "" {
		t.Error("expected a version")
	}
}

func TestDashboard(t *testing.T) {
	router := setupTestRouter(&memRepo{})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/dashboard", nil)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected status 200, got %d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
		t.Errorf("expected text/html content type, got %s", ct)
	}
	if !strings.Contains(w.Body.String(), "Sistema de Alerta Prematuro") {
		t.Error("expected dashboard markup in response body")
	}
}
