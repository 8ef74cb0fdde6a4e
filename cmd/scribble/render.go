package main

import (
	"html/template"
	"io"

	"github.com/labstack/echo/v4"

	"github.com/scribblehq/scribble/templates"
)

type Template struct {
	tmpl *template.Template
}

func newTemplate() *Template {
	return &Template{
		tmpl: template.Must(template.ParseFS(templates.FS, "*.html")),
	}
}

func (t *Template) Render(w io.Writer, name string, data interface{}, c echo.Context) error {
	return t.tmpl.ExecuteTemplate(w, name, data)
}
