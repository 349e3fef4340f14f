package rules

import (
	"github.com/syrin-labs/mcplint/internal/embeddings"
	"github.com/syrin-labs/mcplint/internal/index"
	"github.com/syrin-labs/mcplint/internal/model"
)

// AnalysisContext is the immutable record passed to every rule: the tool
// list, the inferred dependency list, and the precomputed indexes.
// Embeddings is optional — rules that use semantic concept matching
// degrade to their token-based fallback when it is nil, treating the
// absence of a configured embedding service the same as "no match".
type AnalysisContext struct {
	Tools        []model.ToolSpec
	Dependencies []model.Dependency
	Indexes      *index.Indexes
	Embeddings   *embeddings.Service
}

// ToolByName resolves a tool by case-insensitive name using the context's
// Indexes, falling back to a linear scan if Indexes is nil (useful in unit
// tests that build a bare AnalysisContext by hand).
func (ctx *AnalysisContext) ToolByName(name string) (*model.ToolSpec, bool) {
	if ctx.Indexes != nil {
		return ctx.Indexes.ToolByName(name)
	}
	for i := range ctx.Tools {
		if ctx.Tools[i].Name == name {
			return &ctx.Tools[i], true
		}
	}
	return nil, false
}
