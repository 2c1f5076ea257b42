package server

import (
	"bytes"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/piwi3910/MillPool/internal/engine"
	"github.com/piwi3910/MillPool/internal/export"
	"github.com/piwi3910/MillPool/internal/model"
)

// orderView is an order decorated with its urgency.
type orderView struct {
	model.Order
	IsUrgent bool `json:"is_urgent"`
	DaysLeft int  `json:"days_left"`
	InPool   bool `json:"in_pool"`
}

// poolInfo is the utilization summary sent along with a pool.
type poolInfo struct {
	IsUrgent     bool    `json:"is_urgent"`
	Path         string  `json:"path"`
	Strategy     string  `json:"strategy,omitempty"`
	TotalArea    float64 `json:"total_area"`
	Efficiency   float64 `json:"efficiency"`
	Waste        float64 `json:"waste"`
	Sheets       int     `json:"sheets"`
	SheetArea    float64 `json:"sheet_area"`
	UrgentOrders int     `json:"urgent_orders"`
}

type poolResponse struct {
	Orders   []orderView `json:"orders"`
	PoolInfo poolInfo    `json:"pool_info"`
}

type stageRequest struct {
	Stage string `json:"stage" binding:"required"`
	Value *bool  `json:"value" binding:"required"`
}

func (s *Server) views(orders []model.Order, pool model.Pool, today time.Time) []orderView {
	urgency := engine.Urgency(orders, today, s.settings.UrgentDaysThreshold)
	views := make([]orderView, 0, len(orders))
	for _, o := range orders {
		u := urgency[o.ID]
		views = append(views, orderView{
			Order:    o,
			IsUrgent: u.IsUrgent,
			DaysLeft: u.DaysLeft,
			InPool:   pool.Contains(o.ID),
		})
	}
	return views
}

func (s *Server) poolResponse(pool model.Pool, today time.Time) poolResponse {
	util := engine.Report(pool, s.settings.SheetArea())
	views := s.views(pool.Orders, pool, today)
	info := poolInfo{
		IsUrgent:   pool.Urgent,
		Path:       string(pool.Path),
		Strategy:   pool.Strategy,
		TotalArea:  model.RoundArea(util.TotalArea),
		Efficiency: model.RoundArea(util.EfficiencyPercent),
		Waste:      model.RoundArea(util.WasteArea),
		Sheets:     util.SheetsUsed,
		SheetArea:  model.RoundArea(s.settings.SheetArea()),
	}
	for _, v := range views {
		if v.IsUrgent {
			info.UrgentOrders++
		}
	}
	return poolResponse{Orders: views, PoolInfo: info}
}

// GET /api/pool
func (s *Server) getPool(c *gin.Context) {
	today := s.now()
	pool := s.backlog.CurrentPool(s.selector, today)
	c.JSON(http.StatusOK, s.poolResponse(pool, today))
}

// POST /api/pool/complete
func (s *Server) completePool(c *gin.Context) {
	pool, err := s.backlog.AcceptPool(s.selector, s.now())
	if err != nil {
		writeError(c, err)
		return
	}
	msg := "no orders to mill"
	if !pool.Empty() {
		msg = fmt.Sprintf("pool of %d orders marked as milled", len(pool.Orders))
	}
	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"message":  msg,
		"accepted": pool.IDs(),
	})
}

// GET /api/orders
func (s *Server) getOrders(c *gin.Context) {
	today := s.now()
	pool := s.backlog.CurrentPool(s.selector, today)
	c.JSON(http.StatusOK, gin.H{"orders": s.views(s.backlog.Open(), pool, today)})
}

// POST /api/orders/:id/stage
func (s *Server) setStage(c *gin.Context) {
	var req stageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	stage, ok := model.ParseStage(req.Stage)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("unknown stage %q", req.Stage)})
		return
	}

	order, err := s.backlog.SetStage(c.Param("id"), stage, *req.Value)
	if err != nil {
		writeError(c, err)
		return
	}

	resp := gin.H{"success": true, "order": order}
	if stage == model.StageMilling {
		today := s.now()
		resp["pool"] = s.poolResponse(s.backlog.CurrentPool(s.selector, today), today)
	}
	c.JSON(http.StatusOK, resp)
}

// GET /api/queues/polishing
func (s *Server) getPolishingQueue(c *gin.Context) {
	today := s.now()
	c.JSON(http.StatusOK, gin.H{"orders": s.views(s.backlog.PolishingQueue(), model.Pool{}, today)})
}

// GET /api/queues/monitor
func (s *Server) getMonitorQueue(c *gin.Context) {
	today := s.now()
	c.JSON(http.StatusOK, gin.H{"orders": s.views(s.backlog.MonitorQueue(), model.Pool{}, today)})
}

// GET /api/pool/chart
func (s *Server) getPoolChart(c *gin.Context) {
	pool := s.backlog.CurrentPool(s.selector, s.now())
	var buf bytes.Buffer
	if err := export.RenderChart(&buf, pool, s.settings); err != nil {
		writeError(c, err)
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", buf.Bytes())
}

// GET /api/pool/pdf
func (s *Server) getPoolPDF(c *gin.Context) {
	today := s.now()
	pool := s.backlog.CurrentPool(s.selector, today)
	var buf bytes.Buffer
	if err := export.WritePDF(&buf, pool, s.settings, today); err != nil {
		writeError(c, err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="pool_%s.pdf"`, today.Format("2006-01-02")))
	c.Data(http.StatusOK, "application/pdf", buf.Bytes())
}
