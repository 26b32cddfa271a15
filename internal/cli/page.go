// Copyright (C) 2023 Michael J. Fromberger. All Rights Reserved.

package cli

import (
	_ "embed"
	"html/template"
	"io"
)

var (
	//go:embed assets/theme.css
	themeCSS string

	//go:embed assets/serve.js
	serveJS string
)

var pageTemplate = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<style>{{.CSS}}</style>
</head>
<body>
{{- if .Interactive}}
<div class="toolbar">
<textarea id="input" placeholder="Paste JSON here"></textarea>
<button id="render">Render</button>
<button id="expand">Expand all</button>
<button id="collapse">Collapse all</button>
</div>
{{- end}}
<div id="app"{{if not .Hover}} data-hover="false"{{end}}>{{.Body}}</div>
{{- if .Interactive}}
<script>{{.Script}}</script>
{{- end}}
</body>
</html>
`))

// page is the data for pageTemplate.
type page struct {
	Title       string
	Body        string // rendered view markup
	Hover       bool
	Interactive bool // include the controls for serve
}

// write renders p as a standalone HTML document to w.
func (p page) write(w io.Writer) error {
	return pageTemplate.Execute(w, struct {
		page
		Body   template.HTML
		CSS    template.CSS
		Script template.JS
	}{
		page:   p,
		Body:   template.HTML(p.Body),
		CSS:    template.CSS(themeCSS),
		Script: template.JS(serveJS),
	})
}
