package web

import (
	"html/template"
	"net/http"
)

var idleTmpl = template.Must(template.New("idle").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>Cropsight</title>
<style>
body { font-family: Arial, sans-serif; margin: 2em auto; max-width: 40em; color: #222; }
h1 { font-size: 28px; color: #FF4500; text-align: center; }
.error { color: #b00020; border: 1px solid #b00020; padding: 0.6em; margin: 1em 0; }
button { background-color: #FF6347; color: white; font-weight: bold; border: 0; padding: 0.5em 1.2em; }
</style>
</head>
<body>
<h1>Comprehensive Dashboard for Climate Data and Crop Yield Suggestions</h1>
{{if .Error}}<div class="error">{{.Error}}</div>{{end}}
<p>Please upload a CSV or XLSX file to proceed.</p>
<form action="/upload" method="post" enctype="multipart/form-data">
<input type="file" name="dataset" accept=".csv,.tsv,.xlsx" required>
<button type="submit">Upload</button>
</form>
</body>
</html>
`))

var dashboardTmpl = template.Must(template.New("dashboard").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>Cropsight — {{.Name}}</title>
<script src="https://cdn.plot.ly/plotly-2.32.0.min.js"></script>
<style>
body { font-family: Arial, sans-serif; margin: 0; color: #222; display: flex; }
aside { width: 18em; padding: 1em; background: #f4f4f4; min-height: 100vh; }
main { flex: 1; padding: 1em 2em; }
h1 { font-size: 24px; color: #FF4500; }
h2 { font-size: 18px; color: #996500; margin-top: 1.6em; }
label { display: block; margin-top: 0.8em; font-weight: bold; font-size: 13px; }
select { width: 100%; }
.warning { background: #fff3cd; border: 1px solid #d4b106; padding: 0.6em; margin: 0.6em 0; }
button { background-color: #FF6347; color: white; font-weight: bold; border: 0; padding: 0.4em 1em; margin-top: 1em; }
.chart { width: 100%; height: 420px; }
</style>
</head>
<body>
<aside>
<form action="/dashboard" method="get">
<h2>Filters</h2>
<label for="country">Select Country</label>
<select id="country" name="country">
<option value="">(all)</option>
{{range .Countries}}<option value="{{.}}"{{if eq . $.SelCountry}} selected{{end}}>{{.}}</option>
{{end}}</select>
<label for="year">Select Year</label>
<select id="year" name="year">
<option value="">(all)</option>
{{range .Years}}<option value="{{.}}"{{if eq (printf "%d" .) $.SelYear}} selected{{end}}>{{.}}</option>
{{end}}</select>
<h2>Visualization Options</h2>
<label for="chart">Select Plot Type</label>
<select id="chart" name="chart">
{{range .Kinds}}<option value="{{.}}"{{if eq (printf "%s" .) $.ChartKind}} selected{{end}}>{{.}}</option>
{{end}}</select>
<label for="x">Select X-Axis</label>
<select id="x" name="x">
{{range .Columns}}<option value="{{.}}"{{if eq . $.ChartX}} selected{{end}}>{{.}}</option>
{{end}}</select>
<label for="y">Select Y-Axis</label>
<select id="y" name="y">
<option value="">(none)</option>
{{range .Columns}}<option value="{{.}}"{{if eq . $.ChartY}} selected{{end}}>{{.}}</option>
{{end}}</select>
<label for="color">Select Color (Optional)</label>
<select id="color" name="color">
<option value="">(none)</option>
{{range .Columns}}<option value="{{.}}"{{if eq . $.ChartColor}} selected{{end}}>{{.}}</option>
{{end}}</select>
<label for="values">Select Values for Pie</label>
<select id="values" name="values">
<option value="">(none)</option>
{{range .Columns}}<option value="{{.}}"{{if eq . $.ChartValues}} selected{{end}}>{{.}}</option>
{{end}}</select>
<button type="submit">Apply</button>
</form>
<form action="/reset" method="post"><button type="submit">Upload another file</button></form>
</aside>
<main>
<h1>Comprehensive Dashboard for Climate Data and Crop Yield Suggestions</h1>
<p>{{.Name}} — {{.Rows}} rows</p>
{{range .Warnings}}<div class="warning">{{.}}</div>{{end}}

<h2>Part 1: Predicted Temperature, CO2, and Crop Yield Suggestions</h2>
{{if .NoData}}
<div class="warning">No data available for the selected country and year. Adjust filters or upload a different dataset.</div>
{{else}}
<p><b>Predicted Temperature Anomaly:</b> {{.Rec.TempDisplay}}&deg;C</p>
<p><b>Predicted Average CO2 Level:</b> {{.Rec.CO2Display}} ppm</p>
<p><b>Suggested Crop to Yield:</b> {{.Rec.Crop}}</p>
{{end}}

<h2>Part 2: Temperature and CO2 Levels Over Time (Entire Dataset)</h2>
<div id="dual" class="chart"></div>

<h2>Part 3: Map of Predicted Temperature and CO2 Levels</h2>
<div id="map" class="chart"></div>

<h2>Part 4: Custom {{.ChartKind}} — {{.ChartTitle}}</h2>
<div id="custom" class="chart"></div>

<script>
var dual = {{.DualJSON}};
Plotly.newPlot("dual", dual.data, dual.layout, {responsive: true});
var map = {{.MapJSON}};
Plotly.newPlot("map", map.data, map.layout, {responsive: true});
var custom = {{.CustomJSON}};
Plotly.newPlot("custom", custom.data, custom.layout, {responsive: true});
</script>
</main>
</body>
</html>
`))

func (s *Server) renderIdle(w http.ResponseWriter, status int, data idleData) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_ = idleTmpl.Execute(w, data)
}

func (s *Server) renderDashboard(w http.ResponseWriter, data dashboardData) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_ = dashboardTmpl.Execute(w, data)
}
