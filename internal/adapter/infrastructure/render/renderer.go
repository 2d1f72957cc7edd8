// Package render renders the load balancer configuration with text/template.
package render

import (
	"bytes"
	"fmt"
	"path/filepath"
	"text/template"

	"ipv6-rotator/internal/port"
	"ipv6-rotator/internal/types"
)

// Renderer is an adapter that implements the ConfigRenderer port.
// The template is read from disk on every render, so edits take effect on the next cycle.
type Renderer struct {
	templatePath string
	fileMgr      port.FileManager
}

// Ensure Renderer implements the ConfigRenderer port
var _ port.ConfigRenderer = (*Renderer)(nil)

// NewRenderer creates a renderer for the template at templatePath.
func NewRenderer(templatePath string, fileMgr port.FileManager) *Renderer {
	return &Renderer{
		templatePath: templatePath,
		fileMgr:      fileMgr,
	}
}

// CheckTemplate verifies the template file exists.
func (r *Renderer) CheckTemplate() error {
	if !r.fileMgr.FileExists(r.templatePath) {
		return fmt.Errorf("%w: template file not found: %s", types.ErrMissingResource, r.templatePath)
	}
	return nil
}

// Render executes the template with rc. Output only depends on rc and the template text.
func (r *Renderer) Render(rc types.RenderContext) ([]byte, error) {
	if err := r.CheckTemplate(); err != nil {
		return nil, err
	}

	text, err := r.fileMgr.ReadFile(r.templatePath)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", types.ErrMissingResource, err)
	}

	tmpl, err := template.New(filepath.Base(r.templatePath)).
		Option("missingkey=error").
		Funcs(funcMap).
		Parse(string(text))
	if err != nil {
		return nil, fmt.Errorf("%w: failed to parse template %s: %v", types.ErrConfiguration, r.templatePath, err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, rc); err != nil {
		return nil, fmt.Errorf("%w: failed to execute template %s: %v", types.ErrConfiguration, r.templatePath, err)
	}
	return buf.Bytes(), nil
}

var funcMap = template.FuncMap{
	// inc turns a zero-based range index into a one-based server number
	"inc": func(i int) int { return i + 1 },
}
