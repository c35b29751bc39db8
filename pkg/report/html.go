package report

import (
	_ "embed"
	"fmt"
	"strings"

	"github.com/tyler-sommer/stick"
)

//go:embed template.html
var reportTemplate string

// templateContext carries the artifact URLs injected into the report page.
type templateContext struct {
	DataURL   string
	JSONURL   string
	CSVURL    string
	ExportCSV bool
}

// renderHTML renders the report template with the artifact URLs.
func renderHTML(tc templateContext) (string, error) {
	env := stick.New(nil)

	ctx := map[string]stick.Value{
		"data_url":   tc.DataURL,
		"json_url":   tc.JSONURL,
		"csv_url":    tc.CSVURL,
		"export_csv": tc.ExportCSV,
	}

	var out strings.Builder
	if err := env.Execute(reportTemplate, &out, ctx); err != nil {
		return "", fmt.Errorf("failed to render report template: %w", err)
	}
	return out.String(), nil
}
