package service

import (
	"bytes"
	"encoding/json"
	"fmt"
	"html/template"
	"strings"

	"github.com/tfield/travel-planner/internal/domain"
)

// ExportService renders read-only projections of a single plan. All three
// formats reflect the plan exactly as stored: day order and each day's
// current activity order, post-move and post-reorder, never re-sorted.
type ExportService struct{}

// NewExportService constructs an ExportService.
func NewExportService() *ExportService {
	return &ExportService{}
}

// JSON returns a faithful indented serialization of the plan.
func (s *ExportService) JSON(plan domain.TravelPlan) ([]byte, error) {
	data, err := json.MarshalIndent(plan, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("service.ExportService.JSON: %w", err)
	}
	return data, nil
}

// Text returns a formatted plain-text itinerary.
func (s *ExportService) Text(plan domain.TravelPlan) ([]byte, error) {
	var b strings.Builder

	rule := strings.Repeat("=", 43)
	fmt.Fprintf(&b, "%s\n", rule)
	fmt.Fprintf(&b, "  TRAVEL PLAN: %s, %s\n", strings.ToUpper(plan.City), strings.ToUpper(plan.Country))
	fmt.Fprintf(&b, "%s\n\n", rule)
	fmt.Fprintf(&b, "Dates: %s - %s\n", plan.StartDate.Format("Jan 2, 2006"), plan.EndDate.Format("Jan 2, 2006"))

	if plan.Description != "" {
		fmt.Fprintf(&b, "\nDescription: %s\n", plan.Description)
	}
	if plan.Summary != "" {
		fmt.Fprintf(&b, "\nAbout %s: %s\n", plan.City, plan.Summary)
	}

	b.WriteString("\nDAILY ITINERARY\n===============\n")

	for i, day := range plan.Days {
		fmt.Fprintf(&b, "\nDay %d - %s\n", i+1, day.Date.Format("Monday, January 2, 2006"))
		b.WriteString(strings.Repeat("-", 40) + "\n")

		if len(day.Activities) == 0 {
			b.WriteString("  No activities planned\n")
			continue
		}
		for _, a := range day.Activities {
			fmt.Fprintf(&b, "\n  %s - %s\n", a.Time, a.Title)
			fmt.Fprintf(&b, "  Category: %s\n", a.Category)
			if a.Location != "" {
				fmt.Fprintf(&b, "  Location: %s\n", a.Location)
			}
			if a.Duration != nil {
				fmt.Fprintf(&b, "  Duration: %d minutes\n", *a.Duration)
			}
			if a.Description != "" {
				fmt.Fprintf(&b, "  Description: %s\n", a.Description)
			}
			if a.Notes != "" {
				fmt.Fprintf(&b, "  Notes: %s\n", a.Notes)
			}
		}
	}

	return []byte(b.String()), nil
}

// HTML returns a self-contained printable document for the plan.
// User-entered text passes through html/template and is escaped.
func (s *ExportService) HTML(plan domain.TravelPlan) ([]byte, error) {
	var buf bytes.Buffer
	if err := htmlExportTmpl.Execute(&buf, newHTMLExportData(plan)); err != nil {
		return nil, fmt.Errorf("service.ExportService.HTML: %w", err)
	}
	return buf.Bytes(), nil
}

// htmlExportData is the template input: the plan plus a few derived values
// that are awkward to compute inside a template.
type htmlExportData struct {
	Plan          domain.TravelPlan
	DateRange     string
	DayCount      int
	ActivityCount int
	Days          []htmlExportDay
}

type htmlExportDay struct {
	Number  int
	Heading string
	Day     domain.Day
}

func newHTMLExportData(plan domain.TravelPlan) htmlExportData {
	data := htmlExportData{
		Plan:          plan,
		DateRange:     plan.StartDate.Format("Jan 2") + " - " + plan.EndDate.Format("Jan 2, 2006"),
		DayCount:      len(plan.Days),
		ActivityCount: plan.ActivityCount(),
	}
	for i, day := range plan.Days {
		data.Days = append(data.Days, htmlExportDay{
			Number:  i + 1,
			Heading: day.Date.Format("Monday, January 2, 2006"),
			Day:     day,
		})
	}
	return data
}

var htmlExportTmpl = template.Must(template.New("export").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="UTF-8">
<title>{{.Plan.City}} Travel Plan</title>
<style>
  * { box-sizing: border-box; margin: 0; padding: 0; }
  body { font-family: -apple-system, "Segoe UI", Roboto, sans-serif; line-height: 1.6; color: #333; max-width: 800px; margin: 0 auto; padding: 40px 20px; }
  .header { text-align: center; margin-bottom: 40px; padding-bottom: 20px; border-bottom: 2px solid #e5e7eb; }
  .header h1 { font-size: 2.5rem; color: #1f2937; }
  .meta { display: flex; justify-content: center; gap: 20px; margin-top: 16px; flex-wrap: wrap; }
  .meta span { background: #f3f4f6; padding: 8px 16px; border-radius: 20px; font-size: 0.875rem; }
  .description { background: #f9fafb; padding: 20px; border-radius: 8px; margin-bottom: 30px; }
  .day { margin-bottom: 30px; break-inside: avoid; }
  .day-header { background: #1d4ed8; color: white; padding: 12px 20px; border-radius: 8px 8px 0 0; font-weight: 600; }
  .day-content { border: 1px solid #e5e7eb; border-top: none; border-radius: 0 0 8px 8px; padding: 20px; }
  .activity { display: flex; gap: 16px; padding: 16px 0; border-bottom: 1px solid #f3f4f6; }
  .activity:last-child { border-bottom: none; }
  .activity-time { font-weight: 600; color: #3b82f6; white-space: nowrap; min-width: 80px; }
  .category { display: inline-block; font-size: 0.75rem; padding: 2px 8px; border-radius: 12px; margin-top: 8px; }
  .category-sightseeing { background: #dbeafe; color: #1e40af; }
  .category-food { background: #ffedd5; color: #c2410c; }
  .category-transport { background: #dcfce7; color: #166534; }
  .category-accommodation { background: #f3e8ff; color: #7e22ce; }
  .category-shopping { background: #fce7f3; color: #be185d; }
  .category-entertainment { background: #fef3c7; color: #b45309; }
  .category-other { background: #f3f4f6; color: #374151; }
  .empty-day { color: #9ca3af; font-style: italic; }
  @media print { body { padding: 20px; } .day { break-inside: avoid; } }
</style>
</head>
<body>
<div class="header">
  <h1>{{.Plan.City}}, {{.Plan.Country}}</h1>
  <p>Travel Itinerary</p>
  <div class="meta">
    <span>{{.DateRange}}</span>
    <span>{{.DayCount}} Days</span>
    <span>{{.ActivityCount}} Activities</span>
  </div>
</div>
{{if or .Plan.Description .Plan.Summary}}<div class="description">
  {{if .Plan.Description}}<p><strong>Trip Description:</strong> {{.Plan.Description}}</p>{{end}}
  {{if .Plan.Summary}}<p><strong>About {{.Plan.City}}:</strong> {{.Plan.Summary}}</p>{{end}}
</div>{{end}}
{{range .Days}}<div class="day">
  <div class="day-header">Day {{.Number}} - {{.Heading}}</div>
  <div class="day-content">
    {{if not .Day.Activities}}<p class="empty-day">No activities planned for this day</p>{{end}}
    {{range .Day.Activities}}<div class="activity">
      <div class="activity-time">{{.Time}}</div>
      <div class="activity-details">
        <h4>{{.Title}}</h4>
        {{if .Location}}<p>{{.Location}}</p>{{end}}
        {{if .Description}}<p>{{.Description}}</p>{{end}}
        {{if .Notes}}<p><em>Notes: {{.Notes}}</em></p>{{end}}
        <span class="category category-{{.Category}}">{{.Category}}</span>
      </div>
    </div>{{end}}
  </div>
</div>{{end}}
</body>
</html>
`))
