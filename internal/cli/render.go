package cli

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/fatih/color"

	"readiness/internal/readiness/models"
)

var (
	headerColor = color.New(color.Bold)
	mutedColor  = color.New(color.FgHiBlack)
)

// colorLabel renders a status as an upper-case colored label.
func colorLabel(c models.Color) string {
	label := strings.ToUpper(c.String())
	switch c {
	case models.Green:
		return color.New(color.FgHiGreen).Sprint(label)
	case models.Yellow:
		return color.New(color.FgYellow).Sprint(label)
	case models.Red:
		return color.New(color.FgRed).Sprint(label)
	default:
		return mutedColor.Sprint(label)
	}
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func newTable(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
}

func renderReadiness(w io.Writer, r *models.PersonReadiness) {
	fmt.Fprintf(w, "%s (%s)\n", headerColor.Sprint(r.Person.Name), r.Person.ID)
	fmt.Fprintf(w, "As of %s  overall %s\n", r.AsOf.Display(), colorLabel(r.Overall))
	docs := make([]string, 0, len(r.Documents))
	for _, d := range r.Documents {
		docs = append(docs, string(d))
	}
	fmt.Fprintf(w, "Documents: %s\n", orDash(strings.Join(docs, ", ")))

	renderGroup(w, "Conditions", r.Conditions)
	renderGroup(w, "Syllabus", r.Syllabus)
	renderGroup(w, "Cross-document only", r.CrossOnly)
	renderGroup(w, "Certifications", r.Certifications)
	renderGroup(w, "Annual checks", r.AnnualChecks)

	fmt.Fprintln(w)
	fmt.Fprintln(w, headerColor.Sprint("Medical"))
	t := newTable(w)
	renderItem(t, "full", r.Medical.Full)
	renderItem(t, "interim", r.Medical.Interim)
	_ = t.Flush()
	if r.Medical.NextKind != "" {
		fmt.Fprintf(w, "  next: %s on %s\n", r.Medical.NextKind, orDash(r.Medical.NextDate.Display()))
	}
}

func renderGroup(w io.Writer, title string, sections []models.Section) {
	if len(sections) == 0 {
		return
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, headerColor.Sprint(title))
	t := newTable(w)
	for _, s := range sections {
		name := s.DisplayName
		if s.Document != "" {
			name += " [" + string(s.Document) + "]"
		}
		if s.Composite {
			name += " (composite)"
		}
		fmt.Fprintf(t, "  %s\t\t\t\t\n", name)
		for _, item := range s.Items {
			renderItem(t, orDash(item.EquipmentName), item)
		}
	}
	_ = t.Flush()
}

func renderItem(t *tabwriter.Writer, label string, item models.ExpiryResult) {
	fmt.Fprintf(t, "    %s\t%s\t%s\t%s\t%s\n",
		label,
		orDash(item.LastDate.Display()),
		orDash(item.LastControlDate.Display()),
		orDash(item.ExpiryDate.Display()),
		colorLabel(item.Color),
	)
	if o := item.Overlay; o != nil {
		fmt.Fprintf(t, "    %s\t\t\t%s\t%s\n",
			mutedColor.Sprintf("%s overlay", o.Document),
			orDash(o.ExpiryDate.Display()),
			colorLabel(o.Color),
		)
	}
}

func renderDashboard(w io.Writer, d *models.Dashboard) {
	fmt.Fprintf(w, "Readiness as of %s\n\n", d.AsOf.Display())
	t := newTable(w)
	fmt.Fprintln(t, "PERSON\tID\tOVERALL")
	for _, p := range d.People {
		fmt.Fprintf(t, "%s\t%s\t%s\n", p.Name, p.PersonID, colorLabel(p.Overall))
	}
	_ = t.Flush()
	s := d.Summary
	fmt.Fprintf(w, "\n%d people: %d green, %d yellow, %d red, %d gray\n", s.Total, s.Green, s.Yellow, s.Red, s.Gray)
}

func renderNotices(w io.Writer, notices []models.DeadlineNotice) {
	if len(notices) == 0 {
		fmt.Fprintln(w, "No deadlines within the warning window.")
		return
	}
	t := newTable(w)
	fmt.Fprintln(t, "KIND\tPERSON\tREQUIREMENT\tEQUIPMENT\tDEADLINE\tDAYS")
	for _, n := range notices {
		kind := color.New(color.FgYellow).Sprint(string(n.Kind))
		if n.Kind == models.DeadlineExpired {
			kind = color.New(color.FgRed).Sprint(string(n.Kind))
		}
		fmt.Fprintf(t, "%s\t%s\t%s\t%s\t%s\t%d\n",
			kind, n.PersonName, n.DisplayName, orDash(n.EquipmentName), n.Deadline.Display(), n.DaysLeft)
	}
	_ = t.Flush()
}
