package drive

import (
	"fmt"
	"strings"
	"time"

	"github.com/memstack/memdrive/internal/engine"
	"github.com/memstack/memdrive/internal/index"
	"github.com/memstack/memdrive/internal/shared/types"
	"github.com/memstack/memdrive/internal/store"
)

// mkdir creates a directory
func (p *Provider) mkdir(s *engine.Session, params map[string]interface{}) (*types.Result, error) {
	path, ok := params["path"].(string)
	if !ok || path == "" {
		return failure("path parameter required")
	}

	abs, err := p.engine.CreateDirectory(s, path)
	if err != nil {
		return failure(err.Error())
	}

	return success(map[string]interface{}{
		"message": fmt.Sprintf("created %s", abs),
		"path":    abs,
	})
}

// rmdir removes a directory, optionally with everything inside
func (p *Provider) rmdir(s *engine.Session, params map[string]interface{}) (*types.Result, error) {
	path, ok := params["path"].(string)
	if !ok || path == "" {
		return failure("path parameter required")
	}
	recursive, _ := params["recursive"].(bool)

	abs, removed, err := p.engine.RemoveDirectory(s, path, recursive)
	if err != nil {
		return failure(err.Error())
	}

	return success(map[string]interface{}{
		"message":         fmt.Sprintf("removed %s", abs),
		"path":            abs,
		"entries_removed": removed,
	})
}

// list shows a directory's children
func (p *Provider) list(s *engine.Session, params map[string]interface{}) (*types.Result, error) {
	path, _ := params["path"].(string)

	dirs, files, err := p.engine.ListElements(s, path)
	if err != nil {
		return failure(err.Error())
	}

	dirList := make([]map[string]interface{}, 0, len(dirs))
	for _, d := range dirs {
		dirList = append(dirList, map[string]interface{}{
			"name":        d.Name,
			"subdirs":     len(d.Subdirs),
			"files":       d.FileCount(),
			"modified_at": d.ModifiedAt.Format(time.RFC3339),
		})
	}
	fileList := make([]map[string]interface{}, 0, len(files))
	for _, f := range files {
		fileList = append(fileList, map[string]interface{}{
			"name":        f.Name,
			"extension":   f.Extension,
			"size_kb":     index.SizeKB(f.Content),
			"modified_at": f.ModifiedAt.Format(time.RFC3339),
		})
	}

	return success(map[string]interface{}{
		"message":     fmt.Sprintf("%d directories, %d files", len(dirList), len(fileList)),
		"directories": dirList,
		"files":       fileList,
	})
}

// tree renders a subtree
func (p *Provider) tree(s *engine.Session, params map[string]interface{}) (*types.Result, error) {
	path, _ := params["path"].(string)

	rendering, err := p.engine.Tree(s, path)
	if err != nil {
		return failure(err.Error())
	}
	root, _, _ := strings.Cut(rendering, "\n")

	return success(map[string]interface{}{
		"message": fmt.Sprintf("subtree of %s", root),
		"path":    root,
		"tree":    rendering,
	})
}

// find locates the first directory matching a name and lists what
// lives under it
func (p *Provider) find(s *engine.Session, params map[string]interface{}) (*types.Result, error) {
	name, ok := params["name"].(string)
	if !ok || name == "" {
		return failure("name parameter required")
	}

	d, err := p.engine.FindDirectory(s, name)
	if err != nil {
		return failure(err.Error())
	}
	abs := store.Absolute(d)
	paths, err := p.engine.SubtreePaths(s, abs)
	if err != nil {
		return failure(err.Error())
	}

	return success(map[string]interface{}{
		"message": fmt.Sprintf("found %s", abs),
		"path":    abs,
		"paths":   paths,
	})
}
