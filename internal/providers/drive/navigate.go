package drive

import (
	"fmt"

	"github.com/memstack/memdrive/internal/engine"
	"github.com/memstack/memdrive/internal/shared/types"
)

// cd moves the session to a directory
func (p *Provider) cd(s *engine.Session, params map[string]interface{}) (*types.Result, error) {
	path, ok := params["path"].(string)
	if !ok || path == "" {
		return failure("path parameter required")
	}

	abs, err := p.engine.ChangeDirectory(s, path)
	if err != nil {
		return failure(err.Error())
	}

	return success(map[string]interface{}{
		"message": fmt.Sprintf("now at %s", abs),
		"path":    abs,
	})
}

// pwd reports the session's position
func (p *Provider) pwd(s *engine.Session) (*types.Result, error) {
	return success(map[string]interface{}{
		"message": s.Path(),
		"path":    s.Path(),
		"unit":    s.Unit.Name,
	})
}

// use selects a storage unit
func (p *Provider) use(s *engine.Session, params map[string]interface{}) (*types.Result, error) {
	unit, ok := params["unit"].(string)
	if !ok || unit == "" {
		return failure("unit parameter required")
	}

	name, err := p.engine.ChangeUnit(s, unit)
	if err != nil {
		return failure(err.Error())
	}

	return success(map[string]interface{}{
		"message": fmt.Sprintf("using %s", name),
		"unit":    name,
	})
}

// units summarizes every storage unit
func (p *Provider) units(s *engine.Session) (*types.Result, error) {
	infos := p.engine.Units(s)

	list := make([]map[string]interface{}, 0, len(infos))
	for _, u := range infos {
		list = append(list, map[string]interface{}{
			"name":    u.Name,
			"dirs":    u.Dirs,
			"files":   u.Files,
			"current": u.Current,
		})
	}

	return success(map[string]interface{}{
		"message": fmt.Sprintf("%d units", len(list)),
		"units":   list,
	})
}
