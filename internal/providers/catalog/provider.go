package catalog

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/memstack/memdrive/internal/engine"
	"github.com/memstack/memdrive/internal/index"
	"github.com/memstack/memdrive/internal/shared/types"
)

// Provider exposes the global file catalog as service tools
type Provider struct {
	engine *engine.Engine
}

// NewProvider creates a new catalog provider
func NewProvider(eng *engine.Engine) *Provider {
	return &Provider{engine: eng}
}

// Definition returns the catalog service definition
func (p *Provider) Definition() types.Service {
	return types.Service{
		ID:          "catalog",
		Name:        "Catalog",
		Description: "Global file index with exact, fragment, fuzzy, glob and size queries",
		Category:    types.CategoryCatalog,
		Capabilities: []string{
			"search_exact", "search_fragment", "search_fuzzy",
			"search_glob", "search_size", "statistics", "rebuild",
		},
		Tools: p.getTools(),
	}
}

// Execute runs a catalog tool
func (p *Provider) Execute(ctx context.Context, toolID string, params map[string]interface{}, appCtx *types.Context) (*types.Result, error) {
	switch toolID {
	case "catalog.exact":
		return p.exact(params)
	case "catalog.fragment":
		return p.fragment(params)
	case "catalog.fuzzy":
		return p.fuzzy(params)
	case "catalog.glob":
		return p.glob(params)
	case "catalog.range":
		return p.sizeRange(params)
	case "catalog.search":
		return p.search(params)
	case "catalog.stats":
		return p.stats()
	case "catalog.rebuild":
		return p.rebuild()
	default:
		return failure(fmt.Sprintf("unknown tool: %s", toolID))
	}
}

// exact looks a file name up
func (p *Provider) exact(params map[string]interface{}) (*types.Result, error) {
	name, ok := params["name"].(string)
	if !ok || name == "" {
		return failure("name parameter required")
	}
	return results(p.engine.Catalog().SearchExact(name))
}

// fragment matches names containing a substring
func (p *Provider) fragment(params map[string]interface{}) (*types.Result, error) {
	fragment, ok := params["fragment"].(string)
	if !ok || fragment == "" {
		return failure("fragment parameter required")
	}
	return results(p.engine.Catalog().SearchFragment(fragment))
}

// fuzzy ranks names by edit distance to a query
func (p *Provider) fuzzy(params map[string]interface{}) (*types.Result, error) {
	query, ok := params["query"].(string)
	if !ok || query == "" {
		return failure("query parameter required")
	}
	limit, _ := params["limit"].(float64)
	return results(p.engine.Catalog().SearchFuzzy(query, int(limit)))
}

// glob matches full paths against a doublestar pattern
func (p *Provider) glob(params map[string]interface{}) (*types.Result, error) {
	pattern, ok := params["pattern"].(string)
	if !ok || pattern == "" {
		return failure("pattern parameter required")
	}

	entries, err := p.engine.Catalog().SearchGlob(pattern)
	if err != nil {
		return failure(err.Error())
	}
	return results(entries)
}

// sizeRange filters by size in KB, both bounds inclusive
func (p *Provider) sizeRange(params map[string]interface{}) (*types.Result, error) {
	minKB, maxKB := sizeBounds(params)
	return results(p.engine.Catalog().SearchRange(minKB, maxKB))
}

// search combines a name fragment with a size window
func (p *Provider) search(params map[string]interface{}) (*types.Result, error) {
	fragment, ok := params["fragment"].(string)
	if !ok || fragment == "" {
		return failure("fragment parameter required")
	}
	minKB, maxKB := sizeBounds(params)
	return results(p.engine.Catalog().SearchCombined(fragment, minKB, maxKB))
}

// stats summarizes the catalog
func (p *Provider) stats() (*types.Result, error) {
	st := p.engine.Catalog().Stats()
	return success(map[string]interface{}{
		"message": fmt.Sprintf("%d entries under %d keys, %d KB total", st.Count, st.Keys, st.TotalKB),
		"stats":   st,
	})
}

// rebuild reconstructs the catalog from the trees
func (p *Provider) rebuild() (*types.Result, error) {
	n := p.engine.RebuildIndex()
	return success(map[string]interface{}{
		"message": fmt.Sprintf("catalog rebuilt, %d entries", n),
		"entries": n,
	})
}

// sizeBounds reads the optional min_kb and max_kb parameters; a missing
// maximum means unbounded.
func sizeBounds(params map[string]interface{}) (int, int) {
	minKB, _ := params["min_kb"].(float64)
	maxKB, ok := params["max_kb"].(float64)
	if !ok {
		return int(minKB), math.MaxInt
	}
	return int(minKB), int(maxKB)
}

// results renders a uniform entry list
func results(entries []*index.Entry) (*types.Result, error) {
	list := make([]map[string]interface{}, 0, len(entries))
	for _, e := range entries {
		list = append(list, map[string]interface{}{
			"name":        e.Name,
			"full_path":   e.FullPath,
			"size_kb":     e.SizeKB,
			"extension":   e.Extension,
			"created_at":  e.CreatedAt.Format(time.RFC3339),
			"modified_at": e.ModifiedAt.Format(time.RFC3339),
		})
	}
	return success(map[string]interface{}{
		"message": fmt.Sprintf("%d matches", len(list)),
		"results": list,
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

// getTools returns the list of available catalog tools
func (p *Provider) getTools() []types.Tool {
	return []types.Tool{
		{
			ID:          "catalog.exact",
			Name:        "Exact Search",
			Description: "Find files by exact name, case-insensitive",
			Parameters: []types.Parameter{
				{Name: "name", Type: "string", Required: true, Description: "File name"},
			},
			Returns: "array",
		},
		{
			ID:          "catalog.fragment",
			Name:        "Fragment Search",
			Description: "Find files whose name contains a substring",
			Parameters: []types.Parameter{
				{Name: "fragment", Type: "string", Required: true, Description: "Name substring"},
			},
			Returns: "array",
		},
		{
			ID:          "catalog.fuzzy",
			Name:        "Fuzzy Search",
			Description: "Rank file names by closeness to a query",
			Parameters: []types.Parameter{
				{Name: "query", Type: "string", Required: true, Description: "Approximate name"},
				{Name: "limit", Type: "number", Required: false, Description: "Maximum results (default: all)"},
			},
			Returns: "array",
		},
		{
			ID:          "catalog.glob",
			Name:        "Glob Search",
			Description: "Match full paths against a pattern, ** included",
			Parameters: []types.Parameter{
				{Name: "pattern", Type: "string", Required: true, Description: "Glob pattern, e.g. C:/docs/**/*.txt"},
			},
			Returns: "array",
		},
		{
			ID:          "catalog.range",
			Name:        "Size Range",
			Description: "Find files within a size window in KB",
			Parameters: []types.Parameter{
				{Name: "min_kb", Type: "number", Required: false, Description: "Minimum size (default: 0)"},
				{Name: "max_kb", Type: "number", Required: false, Description: "Maximum size (default: unbounded)"},
			},
			Returns: "array",
		},
		{
			ID:          "catalog.search",
			Name:        "Combined Search",
			Description: "Fragment match filtered by a size window",
			Parameters: []types.Parameter{
				{Name: "fragment", Type: "string", Required: true, Description: "Name substring"},
				{Name: "min_kb", Type: "number", Required: false, Description: "Minimum size (default: 0)"},
				{Name: "max_kb", Type: "number", Required: false, Description: "Maximum size (default: unbounded)"},
			},
			Returns: "array",
		},
		{
			ID:          "catalog.stats",
			Name:        "Catalog Statistics",
			Description: "Counts, size distribution and extension histogram",
			Returns:     "object",
		},
		{
			ID:          "catalog.rebuild",
			Name:        "Rebuild Catalog",
			Description: "Reindex every file from the trees",
			Returns:     "object",
		},
	}
}
