package drive

import (
	"fmt"
	"time"

	"github.com/gabriel-vasile/mimetype"

	"github.com/memstack/memdrive/internal/engine"
	"github.com/memstack/memdrive/internal/index"
	"github.com/memstack/memdrive/internal/shared/types"
)

// touch creates a file, empty unless content is given
func (p *Provider) touch(s *engine.Session, params map[string]interface{}) (*types.Result, error) {
	path, ok := params["path"].(string)
	if !ok || path == "" {
		return failure("path parameter required")
	}
	content, _ := params["content"].(string)

	f, abs, err := p.engine.CreateFile(s, path, content)
	if err != nil {
		return failure(err.Error())
	}

	return success(map[string]interface{}{
		"message": fmt.Sprintf("created %s (%d KB)", abs, index.SizeKB(f.Content)),
		"path":    abs,
		"size_kb": index.SizeKB(f.Content),
	})
}

// read returns a file's content
func (p *Provider) read(s *engine.Session, params map[string]interface{}) (*types.Result, error) {
	path, ok := params["path"].(string)
	if !ok || path == "" {
		return failure("path parameter required")
	}

	f, abs, err := p.engine.ReadFile(s, path)
	if err != nil {
		return failure(err.Error())
	}

	return success(map[string]interface{}{
		"message": fmt.Sprintf("read %s (%d KB)", abs, index.SizeKB(f.Content)),
		"path":    abs,
		"content": f.Content,
		"size_kb": index.SizeKB(f.Content),
	})
}

// write replaces a file's content
func (p *Provider) write(s *engine.Session, params map[string]interface{}) (*types.Result, error) {
	path, ok := params["path"].(string)
	if !ok || path == "" {
		return failure("path parameter required")
	}
	content, ok := params["content"].(string)
	if !ok {
		return failure("content parameter required")
	}

	f, abs, err := p.engine.WriteFile(s, path, content)
	if err != nil {
		return failure(err.Error())
	}

	return success(map[string]interface{}{
		"message": fmt.Sprintf("wrote %s (%d KB)", abs, index.SizeKB(f.Content)),
		"path":    abs,
		"size_kb": index.SizeKB(f.Content),
	})
}

// rm deletes a file
func (p *Provider) rm(s *engine.Session, params map[string]interface{}) (*types.Result, error) {
	path, ok := params["path"].(string)
	if !ok || path == "" {
		return failure("path parameter required")
	}

	abs, err := p.engine.RemoveFile(s, path)
	if err != nil {
		return failure(err.Error())
	}

	return success(map[string]interface{}{
		"message": fmt.Sprintf("removed %s", abs),
		"path":    abs,
	})
}

// rename gives a file or directory a new name
func (p *Provider) rename(s *engine.Session, params map[string]interface{}) (*types.Result, error) {
	path, ok := params["path"].(string)
	if !ok || path == "" {
		return failure("path parameter required")
	}
	name, ok := params["name"].(string)
	if !ok || name == "" {
		return failure("name parameter required")
	}

	abs, err := p.engine.Rename(s, path, name)
	if err != nil {
		return failure(err.Error())
	}

	return success(map[string]interface{}{
		"message": fmt.Sprintf("renamed %s -> %s", path, abs),
		"path":    abs,
	})
}

// stat describes a file or directory, sniffing the MIME type of files
func (p *Provider) stat(s *engine.Session, params map[string]interface{}) (*types.Result, error) {
	path, ok := params["path"].(string)
	if !ok || path == "" {
		return failure("path parameter required")
	}

	info, err := p.engine.Stat(s, path)
	if err != nil {
		return failure(err.Error())
	}

	data := map[string]interface{}{
		"is_dir":      info.IsDir,
		"name":        info.Name,
		"path":        info.Path,
		"created_at":  info.CreatedAt.Format(time.RFC3339),
		"modified_at": info.ModifiedAt.Format(time.RFC3339),
	}
	if info.IsDir {
		data["message"] = fmt.Sprintf("%s: %d subdirs, %d files", info.Path, info.Subdirs, info.Files)
		data["subdirs"] = info.Subdirs
		data["files"] = info.Files
	} else {
		mime := mimetype.Detect([]byte(info.Content)).String()
		data["message"] = fmt.Sprintf("%s: %d KB %s (%s)", info.Path, info.SizeKB, info.Extension, mime)
		data["size_kb"] = info.SizeKB
		data["extension"] = info.Extension
		data["mime_type"] = mime
	}

	return success(data)
}
