package server

import (
	"bytes"
	"embed"
	"encoding/json"
	"html/template"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/spektr-org/penguinlens/dashboard"
	"github.com/spektr-org/penguinlens/engine"
	"github.com/spektr-org/penguinlens/reactive"
	"github.com/spektr-org/penguinlens/schema"
)

//go:embed templates/*.html
var templateFS embed.FS

var templates = template.Must(template.New("").Funcs(template.FuncMap{
	"json": toJSON,
}).ParseFS(templateFS, "templates/*.html"))

// card is the view model for one dashboard card.
type card struct {
	View     dashboard.View
	Result   *engine.Result
	ImageURL string
}

type choice struct {
	Value string
	Label string
}

// pageData is the view model for the full page.
type pageData struct {
	Page
	Selection   reactive.Selection
	Attributes  []choice
	Species     []string
	SeabornMin  int
	SeabornMax  int
	Tables      []card
	Charts      []card
	DatasetName string
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	sel := s.store.Snapshot()
	results, err := s.dash.RenderAll(r.Context(), sel)
	if err != nil {
		writeError(w, err)
		return
	}

	data := pageData{
		Page:        s.page,
		Selection:   sel,
		Attributes:  attributeChoices(),
		Species:     reactive.SpeciesChoices(),
		SeabornMin:  reactive.MinSeabornBins,
		SeabornMax:  reactive.MaxSeabornBins,
		DatasetName: s.dash.Dataset().Name(),
	}
	for _, v := range dashboard.Views() {
		c := newCard(v, results[v.ID], sel)
		if v.Kind == engine.KindTable || v.Kind == engine.KindGrid {
			data.Tables = append(data.Tables, c)
		} else {
			data.Charts = append(data.Charts, c)
		}
	}
	renderTemplate(w, "page", data)
}

func (s *Server) handleFragment(w http.ResponseWriter, r *http.Request) {
	sel, err := s.selectionFor(r)
	if err != nil {
		writeError(w, err)
		return
	}
	v, err := dashboard.Lookup(chi.URLParam(r, "view"))
	if err != nil {
		writeError(w, err)
		return
	}
	result, err := s.dash.Render(v.ID, sel)
	if err != nil {
		writeError(w, err)
		return
	}
	renderTemplate(w, "fragment", newCard(v, result, sel))
}

func newCard(v dashboard.View, result *engine.Result, sel reactive.Selection) card {
	c := card{View: v, Result: result}
	if v.Image {
		c.ImageURL = "/charts/" + v.ID + ".png?" + sel.Values().Encode()
	}
	return c
}

func attributeChoices() []choice {
	cfg := schema.Penguins()
	keys := reactive.AttributeChoices()
	out := make([]choice, len(keys))
	for i, k := range keys {
		out[i] = choice{Value: k, Label: cfg.Label(k)}
	}
	return out
}

func renderTemplate(w http.ResponseWriter, name string, data any) {
	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, name, data); err != nil {
		slog.Error("template render failed", "template", name, "err", err)
		http.Error(w, "render failed", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = buf.WriteTo(w)
}

func toJSON(v any) (string, error) {
	b, err := json.Marshal(v)
	return string(b), err
}
