package report

import (
	"bytes"
	"errors"
	"html/template"
	"strconv"
	"time"

	"sfd/internal/aggregation"
)

// ErrNoRecords is the export precondition failure: callers check it
// before handing anything to the display surface.
var ErrNoRecords = errors.New("no feedback records in the filtered set")

const (
	commentLimit = 100
	placeholder  = "—"
)

// Renderer produces the self-contained printable report document from an
// aggregation result. It writes nothing itself; the caller owns the
// output surface.
type Renderer struct {
	tmpl *template.Template
}

func NewRenderer() (*Renderer, error) {
	tmpl, err := template.New("report").Funcs(template.FuncMap{
		"orDash": orDash,
	}).Parse(reportTemplate)
	if err != nil {
		return nil, err
	}
	return &Renderer{tmpl: tmpl}, nil
}

type reportRow struct {
	Date      string
	Name      string
	Event     string
	Food      string
	Ambience  string
	Service   string
	Overall   string
	Recommend string
	Comment   string
}

type reportData struct {
	GeneratedAt   string
	FilterLabel   string
	Total         int
	RecommendRate string
	OverallAvg    string
	PositiveCount int
	Rows          []reportRow
}

// Render builds the printable document. A missing field on any record
// degrades to a placeholder; only an empty filtered set fails.
func (rd *Renderer) Render(result *aggregation.Result, filterLabel string, now time.Time) ([]byte, error) {
	if result == nil || len(result.Records) == 0 {
		return nil, ErrNoRecords
	}

	data := reportData{
		GeneratedAt:   now.Format("2006-01-02 15:04"),
		FilterLabel:   filterLabel,
		Total:         result.Total,
		RecommendRate: result.RecommendRate,
		OverallAvg:    result.Averages["overall"],
		PositiveCount: result.Sentiment.Positive,
		Rows:          make([]reportRow, 0, len(result.Records)),
	}

	for _, r := range result.Records {
		data.Rows = append(data.Rows, reportRow{
			Date:      r.Date.Format("2006-01-02"),
			Name:      r.Name,
			Event:     r.Event,
			Food:      ratingCell(r.Food),
			Ambience:  ratingCell(r.Ambience),
			Service:   ratingCell(r.Service),
			Overall:   ratingCell(r.Overall),
			Recommend: r.Recommend,
			Comment:   aggregation.Snippet(r.Comments, commentLimit),
		})
	}

	var buf bytes.Buffer
	if err := rd.tmpl.Execute(&buf, data); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func orDash(s string) string {
	if s == "" {
		return placeholder
	}
	return s
}

// ratingCell renders 0 (unrated) as the placeholder rather than a score.
func ratingCell(v int) string {
	if v <= 0 {
		return ""
	}
	return strconv.Itoa(v)
}

const reportTemplate = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>Feedback Report</title>
<style>
body { font-family: Georgia, serif; margin: 32px; color: #222; }
h1 { margin-bottom: 0; }
.meta { color: #666; margin-bottom: 24px; }
.summary { display: flex; gap: 32px; margin-bottom: 24px; }
.summary div { border: 1px solid #ccc; padding: 12px 20px; }
.summary .label { font-size: 12px; color: #666; text-transform: uppercase; }
.summary .value { font-size: 22px; font-weight: bold; }
table { border-collapse: collapse; width: 100%; }
th, td { border: 1px solid #ccc; padding: 6px 10px; font-size: 13px; text-align: left; }
th { background: #f2f2f2; }
@media print { .summary div { break-inside: avoid; } }
</style>
</head>
<body>
<h1>Guest Feedback Report</h1>
<p class="meta">Generated {{.GeneratedAt}} &middot; Filter: {{orDash .FilterLabel}}</p>
<div class="summary">
<div><div class="label">Total Feedback</div><div class="value">{{.Total}}</div></div>
<div><div class="label">Recommend Rate</div><div class="value">{{.RecommendRate}}%</div></div>
<div><div class="label">Overall Average</div><div class="value">{{.OverallAvg}}</div></div>
<div><div class="label">Positive Responses</div><div class="value">{{.PositiveCount}}</div></div>
</div>
<table>
<thead>
<tr><th>Date</th><th>Name</th><th>Event</th><th>Food</th><th>Ambience</th><th>Service</th><th>Overall</th><th>Recommend</th><th>Comment</th></tr>
</thead>
<tbody>
{{range .Rows}}<tr>
<td>{{orDash .Date}}</td>
<td>{{orDash .Name}}</td>
<td>{{orDash .Event}}</td>
<td>{{orDash .Food}}</td>
<td>{{orDash .Ambience}}</td>
<td>{{orDash .Service}}</td>
<td>{{orDash .Overall}}</td>
<td>{{orDash .Recommend}}</td>
<td>{{orDash .Comment}}</td>
</tr>
{{end}}</tbody>
</table>
</body>
</html>
`
