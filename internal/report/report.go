// Package report renders a human-readable summary of a solution scan.
package report

import (
	"bytes"
	"fmt"
	"text/template"

	"github.com/Masterminds/sprig/v3"
	"github.com/jmecosta/sonar-visual-studio/internal/models"
)

// Data is the input of the scan report template.
type Data struct {
	SolutionFile string
	Root         *models.Module
}

const markdownTemplate = `# Visual Studio solution scan

Solution: {{ .SolutionFile | default "(none found)" }}

{{ len .Root.SubModules }} module(s) discovered under ` + "`{{ .Root.BaseDir }}`" + `.

| Module | Kind | Files | Assembly |
| --- | --- | --- | --- |
{{- range .Root.SubModules }}
| {{ .Name }} | {{ ternary "test" "production" (gt (len .TestDirs) 0) }} | {{ add (len .SourceFiles) (len .TestFiles) }} | {{ index .Properties "sonar.cs.fxcop.assembly" | default "not built" }} |
{{- end }}
`

// RenderMarkdown renders the Markdown scan report.
func RenderMarkdown(data Data) (string, error) {
	tmpl, err := template.New("report").Funcs(sprig.FuncMap()).Parse(markdownTemplate)
	if err != nil {
		return "", fmt.Errorf("failed to parse report template: %w", err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to render report: %w", err)
	}

	return buf.String(), nil
}
