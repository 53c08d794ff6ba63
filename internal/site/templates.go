package site

import (
	"embed"
	"html/template"
	"strings"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

//go:embed assets/style.css
var styleCSS []byte

var tmplFuncs = template.FuncMap{
	"upper": strings.ToUpper,
	// Condition labels: (a), (b), (c), ...
	"condLabel": func(i int) string {
		return string(rune('a' + i))
	},
	"add": func(a, b int) int { return a + b },
}

var (
	indexTmpl   = template.Must(template.New("index.html.tmpl").Funcs(tmplFuncs).ParseFS(templateFS, "templates/index.html.tmpl"))
	theoremTmpl = template.Must(template.New("theorem.html.tmpl").Funcs(tmplFuncs).ParseFS(templateFS, "templates/theorem.html.tmpl"))
)
