// Package report renders quotes, profiles, calorie results and regression
// summaries as plain text.
package report

import (
	"embed"
	"fmt"
	"path"
	"strings"

	"github.com/osteele/liquid"
)

//go:embed templates/*.liquid
var templateFS embed.FS

// Template names.
const (
	QuoteSaved   = "quote_saved"
	QuoteDetails = "quote_details"
	Profile      = "profile"
	Calories     = "calories"
	Regression   = "regression"
)

// Renderer holds the parsed templates.
type Renderer struct {
	templates map[string]*liquid.Template
}

// New parses every embedded template.
func New() (*Renderer, error) {
	engine := liquid.NewEngine()

	entries, err := templateFS.ReadDir("templates")
	if err != nil {
		return nil, fmt.Errorf("read templates: %w", err)
	}

	r := &Renderer{templates: make(map[string]*liquid.Template, len(entries))}
	for _, entry := range entries {
		src, err := templateFS.ReadFile(path.Join("templates", entry.Name()))
		if err != nil {
			return nil, fmt.Errorf("read template %s: %w", entry.Name(), err)
		}
		tpl, perr := engine.ParseString(string(src))
		if perr != nil {
			return nil, fmt.Errorf("parse template %s: %w", entry.Name(), perr)
		}
		r.templates[strings.TrimSuffix(entry.Name(), ".liquid")] = tpl
	}
	return r, nil
}

func (r *Renderer) render(name string, bindings liquid.Bindings) (string, error) {
	tpl, ok := r.templates[name]
	if !ok {
		return "", fmt.Errorf("unknown template %q", name)
	}
	out, err := tpl.RenderString(bindings)
	if err != nil {
		return "", fmt.Errorf("render %s: %w", name, err)
	}
	return out, nil
}
