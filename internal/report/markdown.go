package report

import (
	"fmt"
	"strings"

	"github.com/northridge/backend/internal/model"
)

// Markdown renders est as a GitHub-flavored Markdown document.
func Markdown(est *model.SavedEstimate) string {
	r := &est.Result
	var b strings.Builder

	fmt.Fprintf(&b, "# %s\n\n", title(r))
	fmt.Fprintf(&b, "**Estimated total:** %s  \n", Money(r.Total))
	fmt.Fprintf(&b, "**Rate:** %s  \n", PerUnit(r))
	fmt.Fprintf(&b, "**Location:** %s (%s market, x%s)\n\n", r.LocationName, r.TierName, multiplier(r.LocationMultiplier))

	b.WriteString("## Cost breakdown\n\n")
	b.WriteString("| Item | Amount |\n")
	b.WriteString("| --- | ---: |\n")
	for _, li := range r.Breakdown {
		fmt.Fprintf(&b, "| %s | %s |\n", cell(li.Name), Money(li.Value))
	}
	fmt.Fprintf(&b, "| **Total** | **%s** |\n\n", Money(r.Total))

	if in := inputs(est); len(in) > 0 {
		b.WriteString("## Your selections\n\n")
		for _, f := range in {
			fmt.Fprintf(&b, "- **%s:** %s\n", f.label, f.value)
		}
		b.WriteString("\n")
	}

	if est.ID != "" {
		fmt.Fprintf(&b, "Reference: `%s`", est.ID)
		if !est.CreatedAt.IsZero() {
			fmt.Fprintf(&b, " (%s)", est.CreatedAt.UTC().Format("January 2, 2006"))
		}
		b.WriteString("\n\n")
	}
	fmt.Fprintf(&b, "_%s_\n", Disclaimer)
	return b.String()
}

func multiplier(m float64) string {
	if m == 0 {
		m = 1
	}
	return fmt.Sprintf("%.2f", m)
}

func cell(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}
