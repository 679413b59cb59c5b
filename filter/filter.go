// Package filter compiles expr expressions for narrowing RedGifs search
// results client-side, e.g. `Views > 1000 and hasTag("sports")`.
package filter

import (
	"fmt"
	"strings"
	"time"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"github.com/scrazzz/redgifs-go/redgifs"
)

// GIFFilter is a compiled filter over media items.
type GIFFilter struct {
	program *vm.Program
	expr    string
}

// Compile parses and compiles a filter expression.
func Compile(expression string) (*GIFFilter, error) {
	if strings.TrimSpace(expression) == "" {
		return nil, fmt.Errorf("empty filter expression")
	}

	program, err := expr.Compile(expression,
		expr.Env(buildEnv(redgifs.GIF{})),
		expr.AllowUndefinedVariables(),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to compile filter expression: %w", err)
	}

	return &GIFFilter{program: program, expr: expression}, nil
}

// Expression returns the original filter expression.
func (f *GIFFilter) Expression() string { return f.expr }

// Match evaluates the filter against one media item. Evaluation errors and
// non-boolean results count as no match.
func (f *GIFFilter) Match(gif redgifs.GIF) bool {
	result, err := expr.Run(f.program, buildEnv(gif))
	if err != nil {
		return false
	}
	matched, ok := result.(bool)
	return ok && matched
}

// Apply returns the items matching the filter, preserving order.
func (f *GIFFilter) Apply(gifs []redgifs.GIF) []redgifs.GIF {
	var out []redgifs.GIF
	for _, g := range gifs {
		if f.Match(g) {
			out = append(out, g)
		}
	}
	return out
}

// buildEnv exposes the item's fields plus a few helpers to the expression.
func buildEnv(gif redgifs.GIF) map[string]any {
	return map[string]any{
		"ID":         gif.ID,
		"Username":   gif.Username,
		"Likes":      gif.Likes,
		"Views":      gif.Views,
		"Duration":   gif.Duration,
		"Width":      gif.Width,
		"Height":     gif.Height,
		"HasAudio":   gif.HasAudio,
		"Verified":   gif.Verified,
		"Published":  gif.Published,
		"CreateDate": gif.CreateDate,
		"Tags":       gif.Tags,

		"hasTag": func(tag string) bool {
			for _, t := range gif.Tags {
				if strings.EqualFold(t, tag) {
					return true
				}
			}
			return false
		},
		"daysSince": func(t time.Time) int {
			return int(time.Since(t).Hours() / 24)
		},
		"contains": func(str, substr string) bool {
			return strings.Contains(strings.ToLower(str), strings.ToLower(substr))
		},
		"lower": strings.ToLower,
		"upper": strings.ToUpper,
		"now":   time.Now,
	}
}
