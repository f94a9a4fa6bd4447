package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"sync"
	"testing"

	"cost-service/internal/engine"
	"cost-service/internal/model"
	"cost-service/pkg/config"
	"cost-service/prometheus"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	cfg, _ := config.Load()
	prometheus.InitMetrics(cfg)
	os.Exit(m.Run())
}

// stubSnapshots serves a fixed snapshot, or an error, to the handlers.
type stubSnapshots struct {
	snap engine.Snapshot
	err  error
}

func (s *stubSnapshots) Load(_ context.Context, _ string) (engine.Snapshot, error) {
	return s.snap, s.err
}

func newRequest(t *testing.T, target string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("product_id")
	c.SetParamValues("p1")
	return c, rec
}

func fixtureSnapshot() engine.Snapshot {
	return engine.Snapshot{
		Features: []model.Feature{{ID: "f1", ProductID: "p1", Name: "Checkout"}},
		Tasks: []model.Task{
			{ID: "t1", ProductID: "p1", FeatureID: "f1", EstimatedHours: 10, ActualHours: 8, AssigneeIDs: []string{"r1"}},
			{ID: "t2", ProductID: "p1", ModuleID: "mod-1", EstimatedHours: 4, AssigneeIDs: []string{"r1"}},
		},
		Resources: []model.Resource{{ID: "r1", Name: "Dev", HourlyRate: 100}},
		Costs: []model.Cost{
			{ID: "c1", ProductID: "p1", Scope: model.ScopeSoftware, Amount: 300,
				Recurrence: model.RecurrenceMonthly, CostClassification: model.ClassificationRun},
		},
	}
}

func TestGetTaskCosts(t *testing.T) {
	snapshots = &stubSnapshots{snap: fixtureSnapshot()}
	defer func() { snapshots = nil }()

	c, rec := newRequest(t, "/api/products/p1/costs/tasks")
	require.NoError(t, GetTaskCosts(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		TaskCosts []engine.TaskCostRow `json:"task_costs"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body.TaskCosts, 2)
	assert.Equal(t, "t1", body.TaskCosts[0].TaskID)
	assert.InDelta(t, 800, body.TaskCosts[0].TotalCost, 1e-9)
}

func TestGetTaskCosts_ModuleFilter(t *testing.T) {
	snapshots = &stubSnapshots{snap: fixtureSnapshot()}
	defer func() { snapshots = nil }()

	c, rec := newRequest(t, "/api/products/p1/costs/tasks?module=mod-1")
	require.NoError(t, GetTaskCosts(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		TaskCosts []engine.TaskCostRow `json:"task_costs"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body.TaskCosts, 1)
	assert.Equal(t, "t2", body.TaskCosts[0].TaskID)
}

func TestGetClassificationSummary(t *testing.T) {
	snapshots = &stubSnapshots{snap: fixtureSnapshot()}
	defer func() { snapshots = nil }()

	c, rec := newRequest(t, "/api/products/p1/costs/summary")
	require.NoError(t, GetClassificationSummary(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Summary engine.ClassificationSummary `json:"summary"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.InDelta(t, 300, body.Summary.Run.TotalCost, 1e-9)
	assert.InDelta(t, 100, body.Summary.RunPercentage, 1e-9)
}

func TestGetResourceCosts(t *testing.T) {
	snapshots = &stubSnapshots{snap: fixtureSnapshot()}
	defer func() { snapshots = nil }()

	c, rec := newRequest(t, "/api/products/p1/costs/resources")
	require.NoError(t, GetResourceCosts(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Calculated []engine.ResourceCostRow `json:"calculated_resource_costs"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body.Calculated, 1)
	assert.Equal(t, "r1", body.Calculated[0].ResourceID)
	assert.InDelta(t, 1200, body.Calculated[0].TotalCost, 1e-9)
}

func TestGetFeatureCosts(t *testing.T) {
	snapshots = &stubSnapshots{snap: fixtureSnapshot()}
	defer func() { snapshots = nil }()

	c, rec := newRequest(t, "/api/products/p1/costs/features")
	require.NoError(t, GetFeatureCosts(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		FeatureCosts []engine.FeatureCostRow `json:"feature_costs"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body.FeatureCosts, 1)
	assert.Equal(t, "f1", body.FeatureCosts[0].FeatureID)
	assert.Equal(t, 1, body.FeatureCosts[0].TaskCount)
	assert.InDelta(t, 800, body.FeatureCosts[0].TotalCost, 1e-9)
}

func TestGetTaskCosts_ConcurrentRequests(t *testing.T) {
	// Handlers only read the package-level loader; it is wired once at
	// startup, so parallel first requests must be safe.
	snapshots = &stubSnapshots{snap: fixtureSnapshot()}
	defer func() { snapshots = nil }()

	var wg sync.WaitGroup
	codes := make(chan int, 8)
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			c, rec := newRequest(t, "/api/products/p1/costs/tasks")
			if err := GetTaskCosts(c); err != nil {
				codes <- http.StatusInternalServerError
				return
			}
			codes <- rec.Code
		}()
	}
	wg.Wait()
	close(codes)
	for code := range codes {
		assert.Equal(t, http.StatusOK, code)
	}
}

func TestGetFeatureCosts_LoadFailure(t *testing.T) {
	snapshots = &stubSnapshots{err: errors.New("connection refused")}
	defer func() { snapshots = nil }()

	c, rec := newRequest(t, "/api/products/p1/costs/features")
	require.NoError(t, GetFeatureCosts(c))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
