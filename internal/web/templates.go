package web

const tmplBase = `
{{define "base"}}<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="UTF-8">
<meta name="viewport" content="width=device-width,initial-scale=1">
<title>SIGx Dashboard</title>
<script src="https://cdn.jsdelivr.net/npm/chart.js"></script>
<style>
*{box-sizing:border-box;margin:0;padding:0}
body{font-family:system-ui,sans-serif;background:#f3f4f6;color:#111827;font-size:14px;line-height:1.5}
nav{background:#1f2937;padding:10px 16px;display:flex;gap:12px;align-items:center}
nav .brand{color:#fff;font-weight:700;margin-right:12px}
nav a{color:#d1d5db;padding:4px 10px;border-radius:4px;text-decoration:none}
nav a.active{background:#3b82f6;color:#fff}
main{padding:16px}
.panel[hidden]{display:none}
.cards{display:flex;gap:12px;flex-wrap:wrap;margin-bottom:16px}
.card{background:#fff;border-radius:6px;padding:12px 16px;min-width:140px;box-shadow:0 1px 2px #0001}
.card .val{font-size:24px;font-weight:700}
.card .lbl{font-size:12px;color:#6b7280}
.charts{display:grid;grid-template-columns:1fr 2fr;gap:16px;margin-bottom:16px}
.item{background:#fff;border-radius:6px;padding:10px 14px;margin-bottom:8px;display:flex;gap:12px;align-items:flex-start}
.swatch{width:10px;align-self:stretch;border-radius:3px}
.item .body{flex:1}
.badge{display:inline-block;padding:0 6px;border-radius:10px;font-size:11px;font-weight:600;color:#fff;background:#6b7280}
.badge.ok{background:#10b981}
.badge.warn{background:#f59e0b}
.badge.auto{background:#3b82f6}
.dim{color:#6b7280}
.filters{display:flex;gap:8px;margin-bottom:12px}
table{width:100%;border-collapse:collapse;background:#fff}
th,td{padding:6px 10px;border-bottom:1px solid #e5e7eb;text-align:left}
pre{background:#111827;color:#e5e7eb;padding:12px;border-radius:6px;font-size:12px;overflow:auto}
.toasts{position:fixed;top:12px;right:12px;display:flex;flex-direction:column;gap:8px;z-index:30}
.toast{padding:10px 14px;border-radius:6px;color:#fff;animation:fade 5s forwards}
.toast.ok{background:#10b981}
.toast.err{background:#ef4444}
@keyframes fade{0%,90%{opacity:1}100%{opacity:0}}
#loading{position:fixed;inset:0;background:#0006;display:flex;align-items:center;justify-content:center;color:#fff;z-index:20}
#loading[hidden]{display:none}
.modal{position:fixed;inset:0;background:#0008;display:flex;align-items:center;justify-content:center;z-index:10}
.modal form.box{background:#fff;border-radius:8px;padding:20px;width:420px;display:flex;flex-direction:column;gap:10px}
</style>
</head>
<body>
<nav>
  <span class="brand">SIGx</span>
  {{range .Nav}}<a href="/tabs/{{.Tab}}"{{if .Active}} class="active"{{end}}>{{.Label}}</a>{{end}}
</nav>
<main>
{{template "dashboard" .}}
{{template "events" .}}
{{template "vehicles" .}}
{{template "positions" .}}
</main>
{{template "modal" .}}
<div id="loading"{{if not .Loading}} hidden{{end}}>Loading...</div>
<div class="toasts">{{range .Toasts}}<div class="{{toastClass .Kind}}" id="toast-{{.ID}}">{{.Message}}</div>{{end}}</div>
<script>
function draw(id, c) {
  const el = document.getElementById(id);
  if (!c || !el || typeof Chart === "undefined") return;
  new Chart(el, {
    type: c.type,
    data: {labels: c.labels, datasets: [{label: c.label, data: c.values, backgroundColor: c.colors, borderColor: c.colors[0]}]},
  });
}
draw("chart-types", {{.TypeChart}});
draw("chart-timeline", {{.TimelineChart}});
document.querySelectorAll("form[data-busy]").forEach(function (f) {
  f.addEventListener("submit", function () { document.getElementById("loading").hidden = false; });
});
</script>
</body>
</html>{{end}}

{{define "options"}}{{$sel := .Selected}}{{range .Options}}<option value="{{.Value}}"{{if eq .Value $sel}} selected{{end}}>{{.Label}}</option>{{end}}{{end}}

{{define "event"}}
<div class="item" id="event-{{.ID}}">
  <div class="swatch" style="background: {{.Color}}"></div>
  <div class="body">
    <strong>{{.TypeName}}</strong> <span class="dim">{{.Plate}} · {{.DriverName}}</span>
    {{if .Approved}}<span class="badge ok">Approved</span>{{else}}<span class="badge warn">Pending</span>{{end}}
    {{if .Automatic}}<span class="badge auto">Automatic</span>{{end}}
    <div class="dim">{{.Start}} → {{.End}}{{with .Duration}} ({{.}}){{end}}</div>
    {{with .Notes}}<div>{{.}}</div>{{end}}
  </div>
  <a href="/events/{{.ID}}/edit">Edit</a>
  {{if .CanApprove}}<form method="post" action="/events/{{.ID}}/approve" data-busy><button>Approve</button></form>{{end}}
</div>
{{end}}
`

const tmplPanels = `
{{define "dashboard"}}
<section class="panel" id="panel-dashboard"{{if not (visible .Panels "dashboard")}} hidden{{end}}>
  <div class="cards">
    <div class="card"><div class="val" id="total-eventos">{{.Counters.Total}}</div><div class="lbl">Total events</div></div>
    <div class="card"><div class="val" id="eventos-aprovados">{{.Counters.Approved}}</div><div class="lbl">Approved</div></div>
    <div class="card"><div class="val" id="eventos-pendentes">{{.Counters.Pending}}</div><div class="lbl">Pending</div></div>
    <div class="card"><div class="val" id="eventos-automaticos">{{.Counters.Automatic}}</div><div class="lbl">Automatic</div></div>
  </div>
  <div class="charts">
    <div class="card"><canvas id="chart-types"></canvas></div>
    <div class="card"><canvas id="chart-timeline"></canvas></div>
  </div>
  <h3>Recent events</h3>
  {{range .RecentEvents}}{{template "event" .}}{{else}}<p class="dim">No events</p>{{end}}
</section>
{{end}}

{{define "events"}}
<section class="panel" id="panel-events"{{if not (visible .Panels "events")}} hidden{{end}}>
  <form class="filters" method="get" action="/events">
    <select id="{{.VehicleFilter.ID}}" name="veiculo_id" onchange="this.form.submit()">{{template "options" .VehicleFilter}}</select>
    <select id="{{.StatusFilter.ID}}" name="aprovado" onchange="this.form.submit()">{{template "options" .StatusFilter}}</select>
    <button>Refresh</button>
  </form>
  {{range .Events}}{{template "event" .}}{{else}}<p class="dim">No events</p>{{end}}
</section>
{{end}}

{{define "vehicles"}}
<section class="panel" id="panel-vehicles"{{if not (visible .Panels "vehicles")}} hidden{{end}}>
  {{range .Vehicles}}
  <div class="item" id="vehicle-{{.ID}}">
    <div class="body">
      <strong>{{.Plate}}</strong> <span class="dim">{{.Identifier}}</span>
      {{if .Active}}<span class="badge ok">Active</span>{{else}}<span class="badge">Inactive</span>{{end}}
      <div class="dim">Driver: {{.DriverName}}</div>
    </div>
  </div>
  {{else}}<p class="dim">No vehicles</p>{{end}}
</section>
{{end}}

{{define "positions"}}
<section class="panel" id="panel-positions"{{if not (visible .Panels "positions")}} hidden{{end}}>
  <div class="filters">
    <form method="get" action="/positions">
      <select id="{{.PositionVehicle.ID}}" name="veiculo_id" onchange="this.form.submit()">{{template "options" .PositionVehicle}}</select>
    </form>
    <form method="post" action="/positions/classify" data-busy><button>Classify automatically</button></form>
  </div>
  {{with .PositionSummary}}
  <div class="cards">
    <div class="card"><div class="val">{{.Total}}</div><div class="lbl">Positions</div></div>
    <div class="card"><div class="val">{{.Processed}}</div><div class="lbl">Processed</div></div>
    <div class="card"><div class="val">{{km .DistanceKm}}</div><div class="lbl">Distance</div></div>
    <div class="card"><div class="val">{{speed .AverageSpeedKmh}}</div><div class="lbl">Average speed</div></div>
  </div>
  {{end}}
  {{if .Positions}}
  <table>
    <tr><th>Time</th><th>Address</th><th>Speed</th><th>Status</th></tr>
    {{range .Positions}}
    <tr id="position-{{.ID}}"><td>{{.Timestamp}}</td><td>{{.Address}}</td><td>{{speed .Speed}}</td>
      <td>{{if .Processed}}<span class="badge ok">Processed</span>{{else}}<span class="badge warn">Pending</span>{{end}}</td></tr>
    {{end}}
  </table>
  {{end}}

  <h3>Import positions</h3>
  <form method="post" action="/positions/import" enctype="multipart/form-data" data-busy>
    <input type="file" name="arquivo" accept=".json,application/json">
    <label><input type="checkbox" name="classificar" checked> Classify after import</label>
    <button>Import</button>
  </form>
  {{with .ImportSummary}}
  <div class="card">
    Imported: <strong>{{.Imported}}</strong> · Duplicates: <strong>{{.Duplicates}}</strong>
    {{if positive .Classified}} · Events classified: <strong>{{.Classified}}</strong>{{end}}
  </div>
  {{end}}
  {{with .ImportExample}}<h3>Example payload</h3><pre>{{.}}</pre>{{end}}
</section>
{{end}}
`

const tmplModal = `
{{define "modal"}}{{if .ModalOpen}}
<div class="modal" id="edit-modal">
  <form class="box" method="post" action="/events/{{.Form.EventID}}/save" data-busy>
    <h3>Edit event #{{.Form.EventID}}</h3>
    <label>Type
      <select id="{{.EventTypeSelect.ID}}" name="tipo_evento_id">{{template "options" .EventTypeSelect}}</select>
    </label>
    <label>Start <input type="datetime-local" name="data_inicio" value="{{.Form.Start}}" required></label>
    <label>End <input type="datetime-local" name="data_fim" value="{{.Form.End}}"></label>
    <label>Notes <textarea name="observacoes">{{.Form.Notes}}</textarea></label>
    <label><input type="checkbox" name="aprovado"{{if .Form.Approved}} checked{{end}}> Approved</label>
    <div>
      <button type="submit">Save</button>
      <button type="submit" formaction="/modal/close" formnovalidate>Cancel</button>
    </div>
  </form>
</div>
{{end}}{{end}}
`
