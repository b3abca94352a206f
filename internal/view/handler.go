package view

import (
	"bytes"
	"embed"
	"errors"
	"html/template"
	"io"
	"net/http"

	"DuctSizer/internal/calc/duct"
	log "github.com/sirupsen/logrus"
)

//go:embed templates/index.html
var templates embed.FS

type Handler struct {
	tmpl *template.Template
}

func NewHandler() (*Handler, error) {
	tmpl, err := template.ParseFS(templates, "templates/index.html")
	if err != nil {
		return nil, err
	}
	return &Handler{tmpl: tmpl}, nil
}

// Render writes the full HTML page for p.
func (h *Handler) Render(w io.Writer, p Page) error {
	return h.tmpl.ExecuteTemplate(w, "index.html", p)
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	res, err := duct.Calculate(ParseQuery(r.URL.Query()))
	if err != nil {
		if errors.Is(err, duct.ErrInvalidInput) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		log.WithError(err).Error("calculate page")
		http.Error(w, "Calculation error", http.StatusInternalServerError)
		return
	}

	var buf bytes.Buffer
	if err := h.Render(&buf, Build(res)); err != nil {
		log.WithError(err).Error("render page")
		http.Error(w, "Render error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	buf.WriteTo(w)
}
