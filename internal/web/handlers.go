package web

import (
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"strconv"

	"github.com/veldt-labs/cropsight/internal/chart"
	"github.com/veldt-labs/cropsight/internal/climate"
	"github.com/veldt-labs/cropsight/internal/dataset"
)

type idleData struct {
	Error string
}

type dashboardData struct {
	Name     string
	Rows     int
	Warnings []string

	Countries []string
	Years     []int
	Columns   []string
	Kinds     []chart.Kind

	SelCountry string
	SelYear    string

	Rec    *climate.Recommendation
	NoData bool

	DualJSON   template.JS
	MapJSON    template.JS
	CustomJSON template.JS

	ChartKind   string
	ChartX      string
	ChartY      string
	ChartColor  string
	ChartValues string
	ChartTitle  string
}

// handleIndex shows the upload prompt, or sends a session with data to the
// dashboard. No uploaded file means no computation is attempted.
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	if s.table(r) != nil {
		http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
		return
	}
	s.renderIdle(w, http.StatusOK, idleData{})
}

func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	id := s.session(w, r)

	r.Body = http.MaxBytesReader(w, r.Body, s.maxUploadBytes())
	if err := r.ParseMultipartForm(s.maxUploadBytes()); err != nil {
		s.renderIdle(w, http.StatusBadRequest, idleData{Error: fmt.Sprintf("upload failed: %v", err)})
		return
	}
	file, header, err := r.FormFile("dataset")
	if err != nil {
		s.renderIdle(w, http.StatusBadRequest, idleData{Error: "no file in upload"})
		return
	}
	defer file.Close()

	policy, err := dataset.ParsePolicy(s.cfg.NumericPolicy)
	if err != nil {
		s.renderIdle(w, http.StatusInternalServerError, idleData{Error: err.Error()})
		return
	}
	opt := dataset.DefaultOptions()
	opt.NumericPolicy = policy
	t, err := dataset.Read(file, header.Filename, opt)
	if err != nil {
		s.renderIdle(w, http.StatusBadRequest, idleData{Error: err.Error()})
		return
	}
	s.setTable(id, t)
	http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
}

func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if c, err := r.Cookie(sessionCookie); err == nil {
		s.clearTable(c.Value)
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	t := s.table(r)
	if t == nil {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	sel, err := parseSelection(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	data := dashboardData{
		Name:     t.Name,
		Rows:     t.Len(),
		Warnings: t.Warnings,
		Columns:  t.Columns,
		Kinds:    chart.Kinds,
	}
	data.Countries, err = t.DistinctStrings(dataset.ColCountry)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	data.Years, err = t.DistinctYears()
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	data.SelCountry = sel.Country
	if sel.YearSet() {
		data.SelYear = strconv.Itoa(*sel.Year)
	}

	// Part 1: filtered means and the crop suggestion. An empty view is a
	// valid state surfaced as a warning; the other parts still render.
	view, err := climate.ApplyFilters(t, sel)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	rec, err := climate.Recommend(view)
	switch {
	case errors.Is(err, climate.ErrNoData):
		data.NoData = true
	case err != nil:
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	default:
		data.Rec = &rec
	}

	// Part 2: dual-axis time series over the entire dataset.
	if data.DualJSON, err = figureJSON(chart.PlotlyDual(t)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	// Part 3: choropleth, year-filtered only; country drives highlighting.
	mapRows, err := climate.SelectMapRows(t, sel)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	mapTraces, mapLayout := chart.PlotlyChoropleth(mapRows, sel.Country)
	if data.MapJSON, err = figureJSON(mapTraces, mapLayout, nil); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	// Part 4: the user-configured chart over the whole dataset.
	spec := s.chartSpec(r, t)
	data.ChartKind = string(spec.Kind)
	data.ChartX = spec.X
	data.ChartY = spec.Y
	data.ChartColor = spec.Color
	data.ChartValues = spec.Values
	data.ChartTitle = spec.DefaultTitle()
	custom, customLayout, err := chart.Plotly(t, spec)
	if err != nil {
		// A closed selector should make this unreachable; hand-edited
		// query strings still deserve a loud, named failure.
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if data.CustomJSON, err = figureJSON(custom, customLayout, nil); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	s.renderDashboard(w, data)
}

// parseSelection builds the request-scoped filter selection.
func parseSelection(r *http.Request) (climate.Selection, error) {
	sel := climate.Selection{Country: r.URL.Query().Get("country")}
	if ys := r.URL.Query().Get("year"); ys != "" {
		y, err := strconv.Atoi(ys)
		if err != nil {
			return climate.Selection{}, fmt.Errorf("invalid year filter %q", ys)
		}
		sel.Year = &y
	}
	return sel, nil
}

// chartSpec assembles the custom-chart spec from query parameters, falling
// back to a sensible default on first view.
func (s *Server) chartSpec(r *http.Request, t *dataset.Table) chart.Spec {
	q := r.URL.Query()
	spec := chart.Spec{
		Kind:   chart.Kind(q.Get("chart")),
		X:      q.Get("x"),
		Y:      q.Get("y"),
		Color:  q.Get("color"),
		Values: q.Get("values"),
	}
	if spec.Kind == "" {
		spec.Kind = chart.Kind(s.cfg.DefaultChart)
	}
	if spec.X == "" {
		spec.X = dataset.ColYear
	}
	if spec.Y == "" && spec.Kind != chart.KindPie && spec.Kind != chart.KindHistogram {
		spec.Y = dataset.ColTemperature
	}
	if spec.Values == "" && spec.Kind == chart.KindPie {
		spec.Values = dataset.ColCO2
	}
	return spec
}

// figureJSON marshals a Plotly figure for embedding in the page.
func figureJSON(traces []chart.Trace, layout chart.Layout, err error) (template.JS, error) {
	if err != nil {
		return "", err
	}
	b, err := json.Marshal(map[string]any{"data": traces, "layout": layout})
	if err != nil {
		return "", fmt.Errorf("encode figure: %w", err)
	}
	return template.JS(b), nil
}
