package report

import (
	"bytes"
	"fmt"
	"html"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"github.com/northridge/backend/internal/model"
)

var markdown = goldmark.New(goldmark.WithExtensions(extension.GFM))

const htmlStyle = "body{font-family:system-ui,sans-serif;max-width:760px;margin:2rem auto;padding:0 1rem;color:#1c1917;} " +
	"table{width:100%;border-collapse:collapse;margin:1rem 0;} " +
	"th,td{border:1px solid #d6d3d1;padding:0.4rem 0.6rem;} " +
	"thead th{background:#f5f5f4;text-align:left;} " +
	"td:last-child{text-align:right;font-variant-numeric:tabular-nums;} " +
	"em{color:#57534e;font-size:0.9rem;}"

// HTML renders est as a standalone HTML page. The body is the Markdown report
// converted with GFM tables enabled.
func HTML(est *model.SavedEstimate) ([]byte, error) {
	var content bytes.Buffer
	if err := markdown.Convert([]byte(Markdown(est)), &content); err != nil {
		return nil, fmt.Errorf("report: markdown convert: %w", err)
	}

	var doc bytes.Buffer
	doc.WriteString("<!doctype html><html><head><meta charset='utf-8'>")
	doc.WriteString("<title>" + html.EscapeString(title(&est.Result)) + "</title>")
	doc.WriteString("<style>" + htmlStyle + "</style></head><body>")
	doc.Write(content.Bytes())
	doc.WriteString("</body></html>")
	return doc.Bytes(), nil
}
