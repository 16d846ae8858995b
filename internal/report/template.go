package report

// reportTemplate is the HTML template for the bureau report.
// It is embedded as a Go constant — no external file dependencies.
const reportTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="UTF-8">
<meta name="viewport" content="width=device-width, initial-scale=1.0">
<title>Bureau Report — Customer {{.Report.Meta.CustomerID}}</title>
<style>
  :root {
    --bg: #ffffff;
    --text: #1a1a2e;
    --muted: #6b7280;
    --border: #e5e7eb;
    --accent: #2563eb;
    --green: #16a34a;
    --red: #dc2626;
    --orange: #ea580c;
    --section-bg: #f8fafc;
  }
  * { margin: 0; padding: 0; box-sizing: border-box; }
  body {
    font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, sans-serif;
    color: var(--text);
    background: var(--bg);
    line-height: 1.6;
    max-width: 900px;
    margin: 0 auto;
    padding: 20px;
  }
  h1, h2 { font-weight: 600; }
  h1 { font-size: 1.5rem; margin-bottom: 4px; color: var(--accent); }
  h2 { font-size: 1.2rem; margin: 24px 0 12px; padding-bottom: 6px; border-bottom: 2px solid var(--accent); }
  .muted { color: var(--muted); font-size: 0.85rem; }
  .summary-bar {
    display: grid;
    grid-template-columns: repeat(auto-fill, minmax(160px, 1fr));
    gap: 8px;
    background: var(--section-bg);
    padding: 12px;
    border-radius: 8px;
    margin: 16px 0;
  }
  .summary-item { text-align: center; }
  .summary-item .label { font-size: 0.75rem; color: var(--muted); text-transform: uppercase; }
  .summary-item .value { font-size: 1rem; font-weight: 600; }
  table { width: 100%; border-collapse: collapse; margin: 8px 0; font-size: 0.9rem; }
  th, td { padding: 6px 10px; border-bottom: 1px solid var(--border); text-align: left; }
  th { background: var(--section-bg); font-size: 0.8rem; text-transform: uppercase; color: var(--muted); }
  .finding { padding: 10px 14px; border-radius: 6px; margin: 8px 0; }
  .finding .category { font-size: 0.75rem; text-transform: uppercase; letter-spacing: 0.04em; }
  .finding .inference { color: var(--muted); font-size: 0.85rem; }
  .finding.high-risk { background: #fef2f2; border-left: 4px solid var(--red); }
  .finding.moderate-risk { background: #fff7ed; border-left: 4px solid var(--orange); }
  .finding.concern { background: #fefce8; border-left: 4px solid #eab308; }
  .finding.neutral { background: var(--section-bg); border-left: 4px solid var(--muted); }
  .finding.positive { background: #dcfce7; border-left: 4px solid var(--green); }
  .warning { color: var(--red); font-size: 0.85rem; }
</style>
</head>
<body>
<h1>Bureau Report — Customer {{.Report.Meta.CustomerID}}</h1>
<p class="muted">Generated {{.Report.Meta.GeneratedAt.Format "02 Jan 2006 15:04"}} · Run {{.Report.Meta.RunID}} · {{.Report.Meta.Currency}}</p>

<div class="summary-bar">
  <div class="summary-item"><div class="label">Tradelines</div><div class="value">{{.Report.ExecutiveSummary.TotalTradelines}}</div></div>
  <div class="summary-item"><div class="label">Live</div><div class="value">{{.Report.ExecutiveSummary.LiveTradelines}}</div></div>
  <div class="summary-item"><div class="label">Closed</div><div class="value">{{.Report.ExecutiveSummary.ClosedTradelines}}</div></div>
  <div class="summary-item"><div class="label">Sanctioned</div><div class="value">₹{{inr .Report.ExecutiveSummary.TotalSanctioned}}</div></div>
  <div class="summary-item"><div class="label">Outstanding</div><div class="value">₹{{inr .Report.ExecutiveSummary.TotalOutstanding}}</div></div>
  <div class="summary-item"><div class="label">Unsecured O/S</div><div class="value">₹{{inr .Report.ExecutiveSummary.UnsecuredOutstanding}}</div></div>
  {{if .Report.ExecutiveSummary.MaxDPD}}<div class="summary-item"><div class="label">Max DPD</div><div class="value">{{.Report.ExecutiveSummary.MaxDPD}} days</div></div>{{end}}
</div>

{{if .Products}}
<h2>Product Breakdown</h2>
<table>
  <tr><th>Product</th><th>Loans</th><th>Live</th><th>Sanctioned</th><th>Outstanding</th><th>Secured</th><th>Utilization</th><th>Events</th></tr>
  {{range .Products}}
  <tr>
    <td>{{.Name}}</td>
    <td>{{.Vector.LoanCount}}</td>
    <td>{{.Vector.LiveCount}}</td>
    <td>₹{{.Sanctioned}}</td>
    <td>₹{{.Outstanding}}</td>
    <td>{{if .Vector.Secured}}Yes{{else}}No{{end}}</td>
    <td>{{.Utilization}}</td>
    <td>{{.Events}}</td>
  </tr>
  {{end}}
</table>
{{end}}

{{if .Findings}}
<h2>Key Findings</h2>
{{range .Findings}}
<div class="finding {{.CSSClass}}">
  <div class="category">{{.Severity}} · {{.Category}}</div>
  <div>{{.Finding}}</div>
  <div class="inference">{{.Inference}}</div>
</div>
{{end}}
{{end}}

{{if .Report.Warnings}}
<h2>Validation Warnings</h2>
{{range .Report.Warnings}}<p class="warning">{{.}}</p>{{end}}
{{end}}
</body>
</html>`
