// Package report renders export artifacts: the static HTML link report and
// the contact and campaign workbooks.
package report

import (
	"bytes"
	"html/template"
	"time"

	"github.com/tbourn/go-consignment-leads/internal/domain"
)

// TimestampLayout formats report timestamps as DD-MM-YYYY_HHMM.
const TimestampLayout = "02-01-2006_1504"

// Entry is one exported contact with the link generated for it.
type Entry struct {
	Contact    domain.Contact
	TemplateID uint
	Link       string
}

// Timestamp formats t for report headings and filenames.
func Timestamp(t time.Time) string { return t.Format(TimestampLayout) }

// HTMLName is the download name of the HTML report generated at t.
func HTMLName(t time.Time) string { return "REPORTE_" + Timestamp(t) + ".html" }

var reportTmpl = template.Must(template.New("report").Funcs(template.FuncMap{
	"inc": func(i int) int { return i + 1 },
}).Parse(`<html>
<head>
<meta charset="utf-8">
<title>Enlaces</title>
</head>
<body>
<h1>REPORTE {{.Stamp}}</h1>
{{range $i, $e := .Entries}}<a href="{{$e.Link}}">CONTACT {{inc $i}}</a> {{$e.Contact.Label}}<br>
{{end}}</body>
</html>
`))

// HTML renders the link report: a heading with the generation timestamp and
// one numbered anchor per entry, labelled with the vehicle or seller name.
func HTML(generatedAt time.Time, entries []Entry) ([]byte, error) {
	var buf bytes.Buffer
	err := reportTmpl.Execute(&buf, struct {
		Stamp   string
		Entries []Entry
	}{Timestamp(generatedAt), entries})
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
