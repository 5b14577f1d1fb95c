// Package web содержит встроенные HTML-шаблоны и статические файлы страниц.
package web

import (
	"embed"
	"html/template"
	"io/fs"
	"net/http"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

// Templates разбирает все шаблоны страниц
func Templates() (*template.Template, error) {
	return template.ParseFS(templateFS, "templates/*.html")
}

// Static возвращает файловую систему для /static
func Static() http.FileSystem {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		// каталог встроен при сборке
		panic(err)
	}
	return http.FS(sub)
}
