package http

import (
	"net/http"
	"sort"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/memstack/memdrive/internal/engine"
	"github.com/memstack/memdrive/internal/monitoring"
	"github.com/memstack/memdrive/internal/service"
	"github.com/memstack/memdrive/internal/shared/types"
)

// Handlers bundles the HTTP endpoints with their dependencies.
type Handlers struct {
	engine   *engine.Engine
	registry *service.Registry
	metrics  *monitoring.Metrics
	logger   *zap.Logger
}

// NewHandlers creates the handler set.
func NewHandlers(eng *engine.Engine, registry *service.Registry, metrics *monitoring.Metrics, logger *zap.Logger) *Handlers {
	return &Handlers{
		engine:   eng,
		registry: registry,
		metrics:  metrics,
		logger:   logger,
	}
}

// Root describes the service.
func (h *Handlers) Root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"service": "memdrive",
		"status":  "running",
		"endpoints": []string{
			"/health",
			"/services",
			"/services/discover",
			"/services/execute",
			"/sessions",
			"/metrics",
			"/metrics/json",
		},
	})
}

// Health reports liveness and headline drive numbers.
func (h *Handlers) Health(c *gin.Context) {
	stats := h.metrics.GetStats()
	c.JSON(http.StatusOK, gin.H{
		"status":          "healthy",
		"uptime_seconds":  stats.UptimeSeconds,
		"sessions":        h.engine.SessionCount(),
		"catalog_entries": h.engine.Catalog().Len(),
	})
}

// ListServices returns registered services, optionally filtered by category.
func (h *Handlers) ListServices(c *gin.Context) {
	var filter *types.Category
	if raw := c.Query("category"); raw != "" {
		category := types.Category(raw)
		filter = &category
	}

	services := h.registry.List(filter)
	c.JSON(http.StatusOK, gin.H{
		"services": services,
		"count":    len(services),
	})
}

type discoverRequest struct {
	Query string `json:"query"`
	Limit int    `json:"limit"`
}

// DiscoverServices ranks services against a free-form query.
func (h *Handlers) DiscoverServices(c *gin.Context) {
	var req discoverRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid discover request"})
		return
	}
	if strings.TrimSpace(req.Query) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "query is required"})
		return
	}
	if req.Limit <= 0 {
		req.Limit = 10
	}

	services := h.registry.Discover(req.Query, req.Limit)
	c.JSON(http.StatusOK, gin.H{
		"services": services,
		"count":    len(services),
	})
}

type executeRequest struct {
	ToolID  string                 `json:"tool_id"`
	Params  map[string]interface{} `json:"params"`
	Context *types.Context         `json:"context"`
}

// ExecuteService routes a tool call to its provider.
func (h *Handlers) ExecuteService(c *gin.Context) {
	var req executeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid execute request"})
		return
	}
	if req.ToolID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "tool_id is required"})
		return
	}
	if req.Params == nil {
		req.Params = make(map[string]interface{})
	}

	providerID := req.ToolID
	toolName := req.ToolID
	if parts := strings.SplitN(req.ToolID, ".", 2); len(parts) == 2 {
		providerID, toolName = parts[0], parts[1]
	}

	timer := monitoring.NewTimer(h.metrics, providerID, toolName)
	result, err := h.registry.Execute(c.Request.Context(), req.ToolID, req.Params, req.Context)
	if err != nil {
		timer.Stop("error")
		h.logger.Debug("tool execution rejected",
			zap.String("tool_id", req.ToolID),
			zap.Error(err),
		)
		status := http.StatusBadRequest
		if strings.Contains(err.Error(), "not found") {
			status = http.StatusNotFound
		}
		c.JSON(status, result)
		return
	}

	if result.Success {
		timer.Stop("success")
	} else {
		timer.Stop("failure")
	}
	h.metrics.SetSessionsActive(h.engine.SessionCount())
	h.metrics.SetCatalogEntries(h.engine.Catalog().Len())

	c.JSON(http.StatusOK, result)
}

type createSessionRequest struct {
	Path string `json:"path"`
}

// CreateSession mints a session cursor, optionally positioned at a path.
func (h *Handlers) CreateSession(c *gin.Context) {
	var req createSessionRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid session request"})
			return
		}
	}

	s := h.engine.NewSession()
	if req.Path != "" {
		if _, err := h.engine.ChangeDirectory(s, req.Path); err != nil {
			h.engine.DropSession(s.ID)
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	}
	h.metrics.SetSessionsActive(h.engine.SessionCount())

	c.JSON(http.StatusCreated, gin.H{
		"id":   s.ID,
		"path": s.Path(),
		"unit": s.Unit.Name,
	})
}

// ListSessions returns all live session cursors.
func (h *Handlers) ListSessions(c *gin.Context) {
	sessions := h.engine.Sessions()
	sort.Slice(sessions, func(i, j int) bool { return sessions[i].ID < sessions[j].ID })

	out := make([]gin.H, 0, len(sessions))
	for _, s := range sessions {
		out = append(out, gin.H{
			"id":   s.ID,
			"path": s.Path(),
			"unit": s.Unit.Name,
		})
	}
	c.JSON(http.StatusOK, gin.H{
		"sessions": out,
		"count":    len(out),
	})
}

// GetSession returns a single session cursor.
func (h *Handlers) GetSession(c *gin.Context) {
	id := c.Param("id")
	s, ok := h.engine.LookupSession(id)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "session not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"id":   s.ID,
		"path": s.Path(),
		"unit": s.Unit.Name,
	})
}

// DeleteSession drops a minted session. The default session stays.
func (h *Handlers) DeleteSession(c *gin.Context) {
	id := c.Param("id")
	if id == engine.DefaultSessionID {
		c.JSON(http.StatusBadRequest, gin.H{"error": "default session cannot be dropped"})
		return
	}
	if _, ok := h.engine.LookupSession(id); !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "session not found"})
		return
	}

	h.engine.DropSession(id)
	h.metrics.SetSessionsActive(h.engine.SessionCount())
	c.JSON(http.StatusOK, gin.H{"message": "session dropped"})
}

// MetricsJSON returns request totals and registry stats for dashboards.
func (h *Handlers) MetricsJSON(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"requests": h.metrics.GetStats(),
		"registry": h.registry.Stats(),
	})
}
