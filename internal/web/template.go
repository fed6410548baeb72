package web

import (
	"fmt"
	"html/template"
	"io"
	"strings"
	"time"

	"github.com/sweeney/reflow-oven/internal/status"
)

var indexTmpl = template.Must(template.New("index").Funcs(template.FuncMap{
	"uptime": func(d time.Duration) string {
		d = d.Truncate(time.Second)
		days := int(d.Hours()) / 24
		h := int(d.Hours()) % 24
		m := int(d.Minutes()) % 60
		s := int(d.Seconds()) % 60
		if days > 0 {
			return fmt.Sprintf("%dd %dh %dm %ds", days, h, m, s)
		}
		if h > 0 {
			return fmt.Sprintf("%dh %dm %ds", h, m, s)
		}
		if m > 0 {
			return fmt.Sprintf("%dm %ds", m, s)
		}
		return fmt.Sprintf("%ds", s)
	},
	"temp": func(v float64) string {
		return fmt.Sprintf("%.2f°C", v)
	},
	// plotPoints renders the scroll plot rows as SVG polyline points.
	// Column i maps to x=i; the stored row is already the y coordinate.
	"plotPoints": func(rows []int) string {
		var b strings.Builder
		for i, r := range rows {
			fmt.Fprintf(&b, "%d,%d ", i, r)
		}
		return strings.TrimSpace(b.String())
	},
}).Parse(indexHTML))

const indexHTML = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<meta http-equiv="refresh" content="2">
<title>Reflow Oven</title>
<style>
body { font-family: monospace; max-width: 600px; margin: 2em auto; padding: 0 1em; }
h1 { font-size: 1.4em; }
table { border-collapse: collapse; width: 100%; margin: 1em 0; }
td, th { text-align: left; padding: 4px 8px; border-bottom: 1px solid #ddd; }
th { width: 40%; }
.on { color: green; font-weight: bold; }
.off { color: #888; }
.error { color: red; font-weight: bold; }
.connected { color: green; }
.disconnected { color: red; }
svg { background: #111; width: 100%; height: auto; }
</style>
</head>
<body>
<h1>Reflow Oven</h1>

<h2>Process</h2>
<table>
<tr><th>State</th><td class="{{if .SensorError}}error{{else if eq (printf "%s" .Status) "ON"}}on{{else}}off{{end}}">{{.State}}</td></tr>
<tr><th>Profile</th><td>{{.Profile}} ({{.Profile.Code}})</td></tr>
<tr><th>Temperature</th><td>{{if .SensorError}}<span class="error">TC Error</span>{{else}}{{temp .Temperature}}{{end}}</td></tr>
<tr><th>Setpoint</th><td>{{temp .Setpoint}}</td></tr>
<tr><th>Output</th><td>{{printf "%.0f" .Output}} ms</td></tr>
<tr><th>Running</th><td class="{{if eq (printf "%s" .Status) "ON"}}on{{else}}off{{end}}">{{.Status}}</td></tr>
<tr><th>Run time</th><td>{{.Seconds}}s</td></tr>
</table>

{{if .Plot}}
<h2>Temperature Plot</h2>
<svg viewBox="0 0 110 64" preserveAspectRatio="none">
<polyline points="{{plotPoints .Plot}}" fill="none" stroke="#4f4" stroke-width="1"/>
</svg>
{{end}}

<h2>Connectivity</h2>
<table>
<tr><th>MQTT</th><td class="{{if .MQTTConnected}}connected{{else}}disconnected{{end}}">{{if .MQTTConnected}}connected{{else}}disconnected{{end}}</td></tr>
<tr><th>Broker</th><td>{{.Config.Broker}}</td></tr>
</table>

<h2>System</h2>
<table>
<tr><th>Uptime</th><td>{{uptime .Uptime}}</td></tr>
<tr><th>Started</th><td>{{.StartTime.UTC.Format "2006-01-02T15:04:05Z"}}</td></tr>
<tr><th>Poll</th><td>{{.Config.PollMs}}ms</td></tr>
<tr><th>Sample</th><td>{{.Config.SampleMs}}ms</td></tr>
<tr><th>Debounce</th><td>{{.Config.DebounceMs}}ms</td></tr>
<tr><th>Sensor</th><td>{{.Config.SerialPort}}</td></tr>
<tr><th>HTTP</th><td>{{.Config.HTTPAddr}}</td></tr>
</table>

<p><a href="/index.json">JSON</a></p>
</body>
</html>
`

func renderHTML(w io.Writer, snap status.Snapshot) {
	// Snapshot has Uptime() method but template needs a Duration field.
	data := struct {
		status.Snapshot
		Uptime time.Duration
	}{
		Snapshot: snap,
		Uptime:   snap.Uptime(),
	}
	indexTmpl.Execute(w, data)
}
