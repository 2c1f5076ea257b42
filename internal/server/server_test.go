package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/piwi3910/MillPool/internal/model"
	"github.com/piwi3910/MillPool/internal/project"
)

var today = time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

func init() {
	gin.SetMode(gin.TestMode)
}

func order(id string, days int, facade string, area float64) model.Order {
	return model.Order{ID: id, Number: "N-" + id, Client: "Client " + id, DueDate: today.AddDate(0, 0, days), FacadeType: facade, Area: area}
}

func newTestServer(t *testing.T, orders ...model.Order) (*Server, *project.Backlog) {
	t.Helper()
	backlog := project.NewMemoryBacklog(orders)
	s := New(backlog, model.DefaultPoolSettings())
	s.now = func() time.Time { return today }
	return s, backlog
}

func do(t *testing.T, s *Server, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	s.Router().ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func TestGetPool_Urgent(t *testing.T) {
	s, _ := newTestServer(t,
		order("a", 1, model.FacadeMilled, 5),
		order("b", 2, model.FacadeMilled, 10),
		order("c", 3, model.FacadeFlat, 3),
	)

	w := do(t, s, http.MethodGet, "/api/pool", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp poolResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Orders, 2)
	assert.Equal(t, "a", resp.Orders[0].ID)
	assert.Equal(t, "b", resp.Orders[1].ID)
	assert.True(t, resp.Orders[0].IsUrgent)
	assert.Equal(t, 1, resp.Orders[0].DaysLeft)
	assert.True(t, resp.PoolInfo.IsUrgent)
	assert.Equal(t, "urgent", resp.PoolInfo.Path)
	assert.Equal(t, 3, resp.PoolInfo.Sheets)
	assert.Equal(t, 2, resp.PoolInfo.UrgentOrders)
}

func TestGetPool_Empty(t *testing.T) {
	s, _ := newTestServer(t)

	w := do(t, s, http.MethodGet, "/api/pool", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp poolResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Empty(t, resp.Orders)
	assert.Equal(t, "none", resp.PoolInfo.Path)
	assert.Zero(t, resp.PoolInfo.Efficiency)
}

func TestCompletePool_MarksMilled(t *testing.T) {
	s, backlog := newTestServer(t,
		order("a", 1, model.FacadeMilled, 5),
		order("b", 10, model.FacadeFlat, 3),
	)

	w := do(t, s, http.MethodPost, "/api/pool/complete", nil)
	require.Equal(t, http.StatusOK, w.Code)
	out := decode(t, w)
	assert.Equal(t, true, out["success"])
	assert.Equal(t, []interface{}{"a"}, out["accepted"])

	a, err := backlog.Get("a")
	require.NoError(t, err)
	assert.True(t, a.MillingDone)

	// Next call selects the remaining order.
	w = do(t, s, http.MethodGet, "/api/pool", nil)
	var resp poolResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Orders, 1)
	assert.Equal(t, "b", resp.Orders[0].ID)
}

func TestCompletePool_NothingToMill(t *testing.T) {
	s, _ := newTestServer(t)
	w := do(t, s, http.MethodPost, "/api/pool/complete", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "no orders to mill", decode(t, w)["message"])
}

func TestGetOrders_InPool(t *testing.T) {
	shipped := order("s", 1, model.FacadeFlat, 1)
	shipped.Shipped = true
	s, _ := newTestServer(t,
		order("a", 10, model.FacadeMilled, 5),
		order("b", 12, model.FacadeFlat, 3),
		shipped,
	)

	w := do(t, s, http.MethodGet, "/api/orders", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Orders []orderView `json:"orders"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Orders, 2)
	assert.True(t, resp.Orders[0].InPool)
	assert.False(t, resp.Orders[1].InPool)
}

func TestSetStage(t *testing.T) {
	s, backlog := newTestServer(t, order("a", 10, model.FacadeMilled, 5))

	w := do(t, s, http.MethodPost, "/api/orders/a/stage", map[string]interface{}{"stage": "polishing", "value": true})
	require.Equal(t, http.StatusOK, w.Code)
	out := decode(t, w)
	assert.NotContains(t, out, "pool")

	a, err := backlog.Get("a")
	require.NoError(t, err)
	assert.True(t, a.PolishingDone)
}

func TestSetStage_MillingReturnsPool(t *testing.T) {
	s, _ := newTestServer(t,
		order("a", 10, model.FacadeMilled, 5),
		order("b", 11, model.FacadeFlat, 2),
	)

	w := do(t, s, http.MethodPost, "/api/orders/a/stage", map[string]interface{}{"stage": "milling", "value": true})
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Pool poolResponse `json:"pool"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Pool.Orders, 1)
	assert.Equal(t, "b", resp.Pool.Orders[0].ID)
}

func TestSetStage_Errors(t *testing.T) {
	s, _ := newTestServer(t, order("a", 10, model.FacadeMilled, 5))

	w := do(t, s, http.MethodPost, "/api/orders/missing/stage", map[string]interface{}{"stage": "milling", "value": true})
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = do(t, s, http.MethodPost, "/api/orders/a/stage", map[string]interface{}{"stage": "painting", "value": true})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(t, s, http.MethodPost, "/api/orders/a/stage", map[string]interface{}{"stage": "milling"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestQueues(t *testing.T) {
	milledFlat := order("f", 5, model.FacadeFlat, 2)
	milledFlat.MillingDone = true
	milledVeneer := order("v", 3, model.FacadeVeneer, 2)
	milledVeneer.MillingDone = true
	s, _ := newTestServer(t, milledFlat, milledVeneer, order("x", 1, model.FacadeFlat, 1))

	var resp struct {
		Orders []orderView `json:"orders"`
	}

	w := do(t, s, http.MethodGet, "/api/queues/polishing", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Orders, 1)
	assert.Equal(t, "f", resp.Orders[0].ID)

	w = do(t, s, http.MethodGet, "/api/queues/monitor", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Orders, 2)
	assert.Equal(t, "v", resp.Orders[0].ID)
}

func TestPoolDocuments(t *testing.T) {
	s, _ := newTestServer(t, order("a", 1, model.FacadeMilled, 5))

	w := do(t, s, http.MethodGet, "/api/pool/pdf", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/pdf", w.Header().Get("Content-Type"))
	assert.True(t, bytes.HasPrefix(w.Body.Bytes(), []byte("%PDF-")))

	w = do(t, s, http.MethodGet, "/api/pool/chart", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Sheet utilization")
}

func TestPoolDocuments_EmptyPool(t *testing.T) {
	s, _ := newTestServer(t)

	w := do(t, s, http.MethodGet, "/api/pool/pdf", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
