// Package preview renders a stored prototype into a single static HTML
// page, used by the CLI preview command and the admin dashboard.
package preview

import (
	"bytes"
	"fmt"
	"html/template"

	"go-prototype-builder/internal/model"
	"go-prototype-builder/internal/storage"
)

// Engine handles preview rendering.
type Engine struct {
	store storage.DataStore
	tmpl  *template.Template
}

// NewEngine creates a new preview engine.
func NewEngine(store storage.DataStore) *Engine {
	return &Engine{
		store: store,
		tmpl:  template.Must(template.New("preview").Parse(previewTemplate)),
	}
}

// RenderPrototype loads a prototype and renders the preview page.
func (e *Engine) RenderPrototype(prototypeID string) (string, error) {
	// 1. Load the document
	p, err := e.store.LoadPrototype(prototypeID)
	if err != nil {
		return "", fmt.Errorf("failed to load prototype %s: %w", prototypeID, err)
	}

	// 2. Execute the page template into a buffer
	var buf bytes.Buffer
	if err := e.tmpl.ExecuteTemplate(&buf, "preview", p); err != nil {
		return "", fmt.Errorf("failed to execute preview template for prototype %s: %w", prototypeID, err)
	}

	// 3. Return the resulting HTML string
	return buf.String(), nil
}

// Render renders an in-memory document without touching the store,
// for previewing unsaved edit-session snapshots.
func (e *Engine) Render(p *model.Prototype) (string, error) {
	var buf bytes.Buffer
	if err := e.tmpl.ExecuteTemplate(&buf, "preview", p); err != nil {
		return "", fmt.Errorf("failed to execute preview template: %w", err)
	}
	return buf.String(), nil
}

// previewTemplate is a deliberately plain rendering: one section per
// step, element labels and option titles in display order.
const previewTemplate = `{{define "preview"}}<!DOCTYPE html>
<html>
<head>
  <title>{{.Name}} - preview</title>
  {{if .PrimaryColor}}<style>h1, h2 { color: {{.PrimaryColor}}; }</style>{{end}}
</head>
<body>
  <h1>{{.Name}}</h1>
  {{if .Description}}<p>{{.Description}}</p>{{end}}
  {{range $i, $step := .Steps}}
  <section>
    <h2>{{$step.Name}}{{if $step.IsApplicationStep}} (application){{end}}</h2>
    {{if $step.Question}}<h3>{{$step.Question}}</h3>{{end}}
    {{if $step.Description}}<p>{{$step.Description}}</p>{{end}}
    <ol>
    {{range $step.Elements}}
      <li>
        <em>{{.Type}}</em>
        {{if .Config.Label}}: {{.Config.Label}}{{end}}
        {{if .Config.Options}}
        <ul>
        {{range .Config.Options}}
          <li>{{if .Title}}{{.Title}}{{else if .Heading}}{{.Heading}}{{else if .JobTitle}}{{.JobTitle}} at {{.Company}}{{else}}(image){{end}}</li>
        {{end}}
        </ul>
        {{end}}
      </li>
    {{end}}
    </ol>
  </section>
  {{end}}
</body>
</html>
{{end}}`
