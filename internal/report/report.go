// Package report renders the deterministic bureau report payload as text,
// HTML, or JSON. It is a pure consumer: it formats the numbers the core
// computed and never alters or invents them.
package report

import (
	"bytes"
	"encoding/json"
	"fmt"
	"html/template"
	"strings"

	"github.com/seenimoa/bureaulens/pkg/models"
	"github.com/seenimoa/bureaulens/pkg/utils"
)

// Format specifies the output format.
type Format string

const (
	FormatText Format = "text"
	FormatHTML Format = "html"
	FormatJSON Format = "json"
)

// Render renders a bureau report in the requested format.
func Render(r *models.BureauReport, format Format) ([]byte, error) {
	switch format {
	case FormatText, "":
		return renderText(r), nil
	case FormatHTML:
		return renderHTML(r)
	case FormatJSON:
		return json.MarshalIndent(r, "", "  ")
	default:
		return nil, fmt.Errorf("report: unknown format %q", format)
	}
}

func renderText(r *models.BureauReport) []byte {
	var b strings.Builder
	summary := r.ExecutiveSummary

	fmt.Fprintf(&b, "Bureau Report — Customer %d\n", r.Meta.CustomerID)
	fmt.Fprintf(&b, "Generated: %s | Run: %s\n\n", r.Meta.GeneratedAt.Format("02 Jan 2006 15:04"), r.Meta.RunID)

	b.WriteString("EXECUTIVE SUMMARY\n")
	fmt.Fprintf(&b, "  Tradelines: %d total (%d live, %d closed)\n",
		summary.TotalTradelines, summary.LiveTradelines, summary.ClosedTradelines)
	fmt.Fprintf(&b, "  Sanctioned: INR %s | Outstanding: INR %s\n",
		utils.FormatINRCompact(summary.TotalSanctioned), utils.FormatINRCompact(summary.TotalOutstanding))
	fmt.Fprintf(&b, "  Unsecured sanctioned: INR %s | Unsecured outstanding: INR %s\n",
		utils.FormatINRCompact(summary.UnsecuredSanctioned), utils.FormatINRCompact(summary.UnsecuredOutstanding))
	if summary.HasDelinquency && summary.MaxDPD != nil {
		fmt.Fprintf(&b, "  Delinquency: YES — Max DPD %d days", *summary.MaxDPD)
		if summary.MaxDPDLoanType != "" {
			fmt.Fprintf(&b, " (%s)", summary.MaxDPDLoanType)
		}
		b.WriteString("\n")
	} else {
		b.WriteString("  Delinquency: none\n")
	}
	b.WriteString("\n")

	if types := r.PresentTypes(); len(types) > 0 {
		b.WriteString("PRODUCT BREAKDOWN\n")
		for _, lt := range types {
			vec := r.FeatureVectors[lt]
			fmt.Fprintf(&b, "  %-24s %2d loans (%d live) | sanctioned INR %s | outstanding INR %s",
				lt.DisplayName(), vec.LoanCount, vec.LiveCount,
				utils.FormatINRCompact(vec.TotalSanctioned), utils.FormatINRCompact(vec.TotalOutstanding))
			if vec.Secured {
				b.WriteString(" | secured")
			}
			if vec.UtilizationRatio != nil {
				fmt.Fprintf(&b, " | utilization %.0f%%", *vec.UtilizationRatio*100)
			}
			if len(vec.ForcedEventFlags) > 0 {
				fmt.Fprintf(&b, " | events: %s", strings.Join(vec.ForcedEventFlags, ","))
			}
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	if len(r.KeyFindings) > 0 {
		b.WriteString("KEY FINDINGS\n")
		for _, f := range r.KeyFindings {
			fmt.Fprintf(&b, "  [%s] %s: %s\n", strings.ToUpper(string(f.Severity)), f.Category, f.Finding)
			fmt.Fprintf(&b, "      → %s\n", f.Inference)
		}
		b.WriteString("\n")
	}

	for _, w := range r.Warnings {
		fmt.Fprintf(&b, "WARNING: %s\n", w)
	}

	return []byte(b.String())
}

// htmlView is the template context for the HTML renderer.
type htmlView struct {
	Report   *models.BureauReport
	Products []productRow
	Findings []findingRow
}

type productRow struct {
	Name        string
	Vector      *models.LoanFeatureVector
	Sanctioned  string
	Outstanding string
	Utilization string
	Events      string
}

type findingRow struct {
	Severity  string
	CSSClass  string
	Category  string
	Finding   string
	Inference string
}

func renderHTML(r *models.BureauReport) ([]byte, error) {
	view := htmlView{Report: r}

	for _, lt := range r.PresentTypes() {
		vec := r.FeatureVectors[lt]
		row := productRow{
			Name:        lt.DisplayName(),
			Vector:      vec,
			Sanctioned:  utils.FormatINRCompact(vec.TotalSanctioned),
			Outstanding: utils.FormatINRCompact(vec.TotalOutstanding),
			Events:      strings.Join(vec.ForcedEventFlags, ", "),
		}
		if vec.UtilizationRatio != nil {
			row.Utilization = fmt.Sprintf("%.0f%%", *vec.UtilizationRatio*100)
		}
		view.Products = append(view.Products, row)
	}

	for _, f := range r.KeyFindings {
		view.Findings = append(view.Findings, findingRow{
			Severity:  strings.ReplaceAll(string(f.Severity), "_", " "),
			CSSClass:  strings.ReplaceAll(string(f.Severity), "_", "-"),
			Category:  f.Category,
			Finding:   f.Finding,
			Inference: f.Inference,
		})
	}

	tmpl, err := template.New("report").Funcs(template.FuncMap{
		"inr": utils.FormatINRCompact,
	}).Parse(reportTemplate)
	if err != nil {
		return nil, fmt.Errorf("report: template parse: %w", err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, view); err != nil {
		return nil, fmt.Errorf("report: template execute: %w", err)
	}
	return buf.Bytes(), nil
}
