package drive

import (
	"context"
	"fmt"

	"github.com/memstack/memdrive/internal/engine"
	"github.com/memstack/memdrive/internal/shared/types"
)

// Provider exposes the drive hierarchy as service tools
type Provider struct {
	engine *engine.Engine
}

// NewProvider creates a new drive provider
func NewProvider(eng *engine.Engine) *Provider {
	return &Provider{engine: eng}
}

// Definition returns the drive service definition
func (p *Provider) Definition() types.Service {
	return types.Service{
		ID:          "drive",
		Name:        "Drive",
		Description: "In-memory drive with storage units, directories and files",
		Category:    types.CategoryDrive,
		Capabilities: []string{
			"navigate", "create_directory", "create_file", "read_file",
			"write_file", "remove", "rename", "inspect", "history",
		},
		Tools: p.getTools(),
	}
}

// Execute runs a drive tool
func (p *Provider) Execute(ctx context.Context, toolID string, params map[string]interface{}, appCtx *types.Context) (*types.Result, error) {
	s := p.session(appCtx)
	switch toolID {
	case "drive.mkdir":
		return p.mkdir(s, params)
	case "drive.rmdir":
		return p.rmdir(s, params)
	case "drive.cd":
		return p.cd(s, params)
	case "drive.pwd":
		return p.pwd(s)
	case "drive.list":
		return p.list(s, params)
	case "drive.tree":
		return p.tree(s, params)
	case "drive.find":
		return p.find(s, params)
	case "drive.touch":
		return p.touch(s, params)
	case "drive.read":
		return p.read(s, params)
	case "drive.write":
		return p.write(s, params)
	case "drive.rm":
		return p.rm(s, params)
	case "drive.rename":
		return p.rename(s, params)
	case "drive.stat":
		return p.stat(s, params)
	case "drive.units":
		return p.units(s)
	case "drive.use":
		return p.use(s, params)
	case "drive.log":
		return p.operationLog()
	case "drive.errors":
		return p.errorLog()
	case "drive.clearlog":
		return p.clearLog()
	default:
		return failure(fmt.Sprintf("unknown tool: %s", toolID))
	}
}

// session resolves the acting session from the request context.
func (p *Provider) session(appCtx *types.Context) *engine.Session {
	if appCtx != nil && appCtx.SessionID != nil {
		return p.engine.Session(*appCtx.SessionID)
	}
	return p.engine.DefaultSession()
}

// Helper functions
func success(data map[string]interface{}) (*types.Result, error) {
	return &types.Result{Success: true, Data: data}, nil
}

func failure(message string) (*types.Result, error) {
	msg := message
	return &types.Result{Success: false, Error: &msg}, nil
}
