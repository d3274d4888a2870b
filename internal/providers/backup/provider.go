package backup

import (
	"context"
	"fmt"
	"time"

	"github.com/memstack/memdrive/internal/engine"
	"github.com/memstack/memdrive/internal/monitoring"
	"github.com/memstack/memdrive/internal/shared/types"
	"github.com/memstack/memdrive/internal/snapshot"
)

// Provider exposes snapshot persistence as service tools
type Provider struct {
	engine  *engine.Engine
	manager *snapshot.Manager
	metrics *monitoring.Metrics
}

// NewProvider creates a new backup provider
func NewProvider(eng *engine.Engine, manager *snapshot.Manager) *Provider {
	return &Provider{engine: eng, manager: manager}
}

// WithMetrics enables snapshot counters
func (p *Provider) WithMetrics(m *monitoring.Metrics) *Provider {
	p.metrics = m
	return p
}

// Definition returns the backup service definition
func (p *Provider) Definition() types.Service {
	return types.Service{
		ID:           "backup",
		Name:         "Backup",
		Description:  "Snapshot the whole drive state to disk and restore it",
		Category:     types.CategoryBackup,
		Capabilities: []string{"save", "restore", "list", "prune"},
		Tools:        p.getTools(),
	}
}

// Execute runs a backup tool
func (p *Provider) Execute(ctx context.Context, toolID string, params map[string]interface{}, appCtx *types.Context) (*types.Result, error) {
	switch toolID {
	case "backup.save":
		return p.save()
	case "backup.restore":
		return p.restore(params)
	case "backup.list":
		return p.list()
	case "backup.prune":
		return p.prune(params)
	default:
		return failure(fmt.Sprintf("unknown tool: %s", toolID))
	}
}

// save writes a new snapshot
func (p *Provider) save() (*types.Result, error) {
	name, err := p.manager.Save(p.engine)
	if err != nil {
		return failure(err.Error())
	}
	if p.metrics != nil {
		p.metrics.IncSnapshotsSaved()
	}

	return success(map[string]interface{}{
		"message": fmt.Sprintf("saved %s", name),
		"name":    name,
	})
}

// restore loads a named snapshot, or the newest one
func (p *Provider) restore(params map[string]interface{}) (*types.Result, error) {
	name, _ := params["name"].(string)

	var err error
	if name == "" {
		name, err = p.manager.RestoreLatest(p.engine)
	} else {
		err = p.manager.Restore(p.engine, name)
	}
	if err != nil {
		return failure(err.Error())
	}
	if p.metrics != nil {
		p.metrics.IncSnapshotsRestored()
	}

	return success(map[string]interface{}{
		"message": fmt.Sprintf("restored %s", name),
		"name":    name,
	})
}

// list shows stored snapshots, newest first
func (p *Provider) list() (*types.Result, error) {
	snaps, err := p.manager.List()
	if err != nil {
		return failure(err.Error())
	}

	list := make([]map[string]interface{}, 0, len(snaps))
	for _, s := range snaps {
		list = append(list, map[string]interface{}{
			"name":       s.Name,
			"size_bytes": s.Size,
			"saved_at":   s.SavedAt.Format(time.RFC3339),
		})
	}

	return success(map[string]interface{}{
		"message":   fmt.Sprintf("%d snapshots", len(list)),
		"snapshots": list,
	})
}

// prune keeps only the newest snapshots
func (p *Provider) prune(params map[string]interface{}) (*types.Result, error) {
	keep, ok := params["keep"].(float64)
	if !ok {
		return failure("keep parameter required")
	}

	removed, err := p.manager.Prune(int(keep))
	if err != nil {
		return failure(err.Error())
	}

	return success(map[string]interface{}{
		"message": fmt.Sprintf("%d snapshots removed", len(removed)),
		"removed": removed,
	})
}

// Helper functions
func success(data map[string]interface{}) (*types.Result, error) {
	return &types.Result{Success: true, Data: data}, nil
}

func failure(message string) (*types.Result, error) {
	msg := message
	return &types.Result{Success: false, Error: &msg}, nil
}

// getTools returns the list of available backup tools
func (p *Provider) getTools() []types.Tool {
	return []types.Tool{
		{
			ID:          "backup.save",
			Name:        "Save Snapshot",
			Description: "Capture the whole drive state to a snapshot file",
			Returns:     "object",
		},
		{
			ID:          "backup.restore",
			Name:        "Restore Snapshot",
			Description: "Replace the drive state from a snapshot",
			Parameters: []types.Parameter{
				{Name: "name", Type: "string", Required: false, Description: "Snapshot file name (default: newest)"},
			},
			Returns: "object",
		},
		{
			ID:          "backup.list",
			Name:        "List Snapshots",
			Description: "Stored snapshots, newest first",
			Returns:     "object",
		},
		{
			ID:          "backup.prune",
			Name:        "Prune Snapshots",
			Description: "Delete all but the newest snapshots",
			Parameters: []types.Parameter{
				{Name: "keep", Type: "number", Required: true, Description: "How many snapshots to keep"},
			},
			Returns: "object",
		},
	}
}
