package catalog

import (
	"context"
	"strings"
	"testing"

	"github.com/memstack/memdrive/internal/engine"
	"github.com/memstack/memdrive/internal/shared/types"
)

func newTestProvider(t *testing.T) *Provider {
	t.Helper()
	eng, err := engine.New(engine.Options{Units: []string{"C:", "D:"}})
	if err != nil {
		t.Fatalf("engine: %v", err)
	}
	s := eng.DefaultSession()

	if _, err := eng.CreateDirectory(s, "C:/docs"); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	for _, f := range []struct{ path, content string }{
		{"C:/docs/notes.txt", "small"},
		{"C:/docs/report.txt", strings.Repeat("r", 3000)},
		{"C:/budget.xls", strings.Repeat("b", 1500)},
		{"D:/nodes.txt", "twin"},
	} {
		if _, _, err := eng.CreateFile(s, f.path, f.content); err != nil {
			t.Fatalf("touch %s: %v", f.path, err)
		}
	}
	return NewProvider(eng)
}

func exec(t *testing.T, p *Provider, toolID string, params map[string]interface{}) *types.Result {
	t.Helper()
	result, err := p.Execute(context.Background(), toolID, params, nil)
	if err != nil {
		t.Fatalf("%s returned transport error: %v", toolID, err)
	}
	return result
}

func resultPaths(t *testing.T, result *types.Result) []string {
	t.Helper()
	if !result.Success {
		t.Fatalf("query failed: %v", *result.Error)
	}
	entries := result.Data["results"].([]map[string]interface{})
	paths := make([]string, 0, len(entries))
	for _, e := range entries {
		paths = append(paths, e["full_path"].(string))
	}
	return paths
}

func TestCatalogExact(t *testing.T) {
	p := newTestProvider(t)

	result := exec(t, p, "catalog.exact", map[string]interface{}{"name": "NOTES.TXT"})
	paths := resultPaths(t, result)
	if len(paths) != 1 || paths[0] != "C:/docs/notes.txt" {
		t.Errorf("Unexpected exact matches: %v", paths)
	}

	result = exec(t, p, "catalog.exact", map[string]interface{}{"name": "ghost.txt"})
	if len(resultPaths(t, result)) != 0 {
		t.Error("Expected no matches for unknown name")
	}
}

func TestCatalogFragment(t *testing.T) {
	p := newTestProvider(t)

	result := exec(t, p, "catalog.fragment", map[string]interface{}{"fragment": "ot"})
	paths := resultPaths(t, result)
	if len(paths) != 1 || paths[0] != "C:/docs/notes.txt" {
		t.Errorf("Unexpected fragment matches: %v", paths)
	}
}

func TestCatalogFuzzy(t *testing.T) {
	p := newTestProvider(t)

	result := exec(t, p, "catalog.fuzzy", map[string]interface{}{"query": "notes.txt", "limit": float64(2)})
	paths := resultPaths(t, result)
	if len(paths) == 0 || paths[0] != "C:/docs/notes.txt" {
		t.Errorf("Expected notes.txt ranked first, got %v", paths)
	}
	if len(paths) > 2 {
		t.Errorf("Limit ignored: %v", paths)
	}
}

func TestCatalogGlob(t *testing.T) {
	p := newTestProvider(t)

	result := exec(t, p, "catalog.glob", map[string]interface{}{"pattern": "C:/docs/*.txt"})
	paths := resultPaths(t, result)
	if len(paths) != 2 {
		t.Errorf("Expected 2 glob matches, got %v", paths)
	}

	result = exec(t, p, "catalog.glob", map[string]interface{}{"pattern": "["})
	if result.Success {
		t.Error("Expected invalid pattern to fail")
	}
}

func TestCatalogRange(t *testing.T) {
	p := newTestProvider(t)

	result := exec(t, p, "catalog.range", map[string]interface{}{
		"min_kb": float64(2),
		"max_kb": float64(3),
	})
	paths := resultPaths(t, result)
	if len(paths) != 2 {
		t.Errorf("Expected report.txt and budget.xls, got %v", paths)
	}

	result = exec(t, p, "catalog.range", map[string]interface{}{"min_kb": float64(2)})
	if len(resultPaths(t, result)) != 2 {
		t.Error("Expected open-ended maximum to match the large files")
	}
}

func TestCatalogCombined(t *testing.T) {
	p := newTestProvider(t)

	result := exec(t, p, "catalog.search", map[string]interface{}{
		"fragment": "port",
		"min_kb":   float64(2),
	})
	paths := resultPaths(t, result)
	if len(paths) != 1 || paths[0] != "C:/docs/report.txt" {
		t.Errorf("Unexpected combined matches: %v", paths)
	}

	result = exec(t, p, "catalog.search", map[string]interface{}{
		"fragment": "port",
		"min_kb":   float64(4),
	})
	if len(resultPaths(t, result)) != 0 {
		t.Error("Expected size window to exclude report.txt")
	}
}

func TestCatalogStats(t *testing.T) {
	p := newTestProvider(t)

	result := exec(t, p, "catalog.stats", nil)
	if !result.Success {
		t.Fatalf("stats failed: %v", *result.Error)
	}
	if !strings.Contains(result.Data["message"].(string), "4 entries") {
		t.Errorf("Unexpected message: %v", result.Data["message"])
	}
}

func TestCatalogRebuild(t *testing.T) {
	p := newTestProvider(t)

	result := exec(t, p, "catalog.rebuild", nil)
	if !result.Success {
		t.Fatalf("rebuild failed: %v", *result.Error)
	}
	if result.Data["entries"].(int) != 4 {
		t.Errorf("Expected 4 entries after rebuild, got %v", result.Data["entries"])
	}
}

func TestCatalogValidation(t *testing.T) {
	p := newTestProvider(t)

	for _, toolID := range []string{"catalog.exact", "catalog.fragment", "catalog.fuzzy", "catalog.glob", "catalog.search"} {
		result := exec(t, p, toolID, nil)
		if result.Success {
			t.Errorf("%s should fail without required params", toolID)
		}
	}

	result := exec(t, p, "catalog.teleport", nil)
	if result.Success {
		t.Error("Expected unknown tool to fail")
	}
}

func TestCatalogDefinition(t *testing.T) {
	p := newTestProvider(t)
	def := p.Definition()

	if def.ID != "catalog" {
		t.Errorf("Expected catalog ID, got %s", def.ID)
	}
	if def.Category != types.CategoryCatalog {
		t.Errorf("Unexpected category: %s", def.Category)
	}
	if len(def.Tools) != 8 {
		t.Errorf("Expected 8 tools, got %d", len(def.Tools))
	}
}
