package drive

import (
	"fmt"

	"github.com/memstack/memdrive/internal/shared/types"
)

// operationLog returns the recorded operations, newest first
func (p *Provider) operationLog() (*types.Result, error) {
	ops := p.engine.OperationLog()
	return success(map[string]interface{}{
		"message":    fmt.Sprintf("%d operations", len(ops)),
		"operations": ops,
	})
}

// errorLog returns the recorded failures, newest first
func (p *Provider) errorLog() (*types.Result, error) {
	errs := p.engine.ErrorLog()
	return success(map[string]interface{}{
		"message": fmt.Sprintf("%d errors", len(errs)),
		"errors":  errs,
	})
}

// clearLog wipes both journals
func (p *Provider) clearLog() (*types.Result, error) {
	p.engine.ClearLogs()
	return success(map[string]interface{}{
		"message": "logs cleared",
	})
}
