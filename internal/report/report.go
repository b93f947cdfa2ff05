// Package report renders a saved estimate for export as Markdown, HTML or PDF.
package report

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/northridge/backend/internal/model"
)

// Format is an export format.
type Format string

const (
	FormatMarkdown Format = "md"
	FormatHTML     Format = "html"
	FormatPDF      Format = "pdf"
)

// ParseFormat accepts md, markdown, html or pdf. An empty string means Markdown.
func ParseFormat(s string) (Format, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "md", "markdown":
		return FormatMarkdown, true
	case "html":
		return FormatHTML, true
	case "pdf":
		return FormatPDF, true
	}
	return "", false
}

// ContentType returns the MIME type for f.
func (f Format) ContentType() string {
	switch f {
	case FormatHTML:
		return "text/html; charset=utf-8"
	case FormatPDF:
		return "application/pdf"
	}
	return "text/markdown; charset=utf-8"
}

// Ext returns the file extension for f, without the dot.
func (f Format) Ext() string {
	return string(f)
}

// Render produces est in the given format.
func Render(f Format, est *model.SavedEstimate) ([]byte, error) {
	switch f {
	case FormatMarkdown:
		return []byte(Markdown(est)), nil
	case FormatHTML:
		return HTML(est)
	case FormatPDF:
		return PDF(est)
	}
	return nil, fmt.Errorf("report: unsupported format %q", f)
}

// Money formats whole dollars as "$1,241,280".
func Money(v int64) string {
	if v < 0 {
		return "-$" + humanize.Comma(-v)
	}
	return "$" + humanize.Comma(v)
}

// PerUnit formats the per-unit figure with its label, e.g. "$329 / SF".
func PerUnit(r *model.EstimateResult) string {
	return Money(r.PerUnit) + " " + r.UnitLabel
}

// title is the heading shown at the top of every format.
func title(r *model.EstimateResult) string {
	return r.ProjectLabel + " Estimate"
}

// field is one labelled answer from the wizard.
type field struct {
	label string
	value string
}

// inputs lists the answers that fed the estimate, in wizard order.
func inputs(est *model.SavedEstimate) []field {
	s := est.State
	var out []field
	add := func(label, value string) {
		if value != "" && value != "0" {
			out = append(out, field{label, value})
		}
	}
	n := func(v int) string { return strconv.Itoa(v) }
	list := func(v []string) string { return strings.Join(model.NormalizeFeatures(v), ", ") }

	add("Project type", s.ProjectType.Label())
	switch s.ProjectType {
	case model.ProjectCustomHome:
		add("Square feet", n(s.Sqft))
		add("Bedrooms", n(s.Bedrooms))
		add("Bathrooms", n(s.Bathrooms))
		add("Exterior", s.Exterior)
		add("Interior", s.Interior)
		add("Style", s.HomeStyle)
		add("Features", list(s.HomeFeatures))
	case model.ProjectNewBuild:
		add("Square feet", n(s.Sqft))
		add("Stories", n(s.Stories))
		add("Garage spaces", n(s.GarageSpaces))
		add("Exterior", s.Exterior)
		add("Interior", s.Interior)
	case model.ProjectRenovation:
		add("Scope", s.RenoScope)
		if est.Result.UnitLabel != model.UnitFlat {
			add("Area (SF)", n(s.RenoArea))
		}
		add("Condition", s.RenoCondition)
		add("Finish", s.RenoFinish)
		add("Upgrades", list(s.RenoFeatures))
	case model.ProjectConsulting:
		add("Service", s.ConsultType)
		add("Property", s.PropertyType)
		add("Project value", s.ProjectValue)
		add("Complexity", s.Complexity)
		add("Timeline", s.Timeline)
	case model.ProjectCommercial:
		add("Building type", s.CommercialType)
		add("Square feet", n(s.Sqft))
		add("Finish", s.CommercialFinish)
	case model.ProjectRemote:
		add("Building type", s.RemoteType)
		add("Square feet", n(s.Sqft))
		add("Site access", s.Access)
		add("Off-grid features", list(s.RemoteFeatures))
	}
	add("Zip code", s.ZipCode)
	return out
}

// Disclaimer is printed at the end of every report.
const Disclaimer = "This is a planning estimate based on regional averages. Final pricing depends on site conditions, design and current material costs."
