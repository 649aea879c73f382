package render

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"

	"github.com/google/uuid"

	"github.com/vbukhtaev/pc-configurator-sub002/internal/profile"
	"github.com/vbukhtaev/pc-configurator-sub002/internal/schema"
)

type markdownRenderer struct{}

var mdFuncs = template.FuncMap{
	"verdict": func(compatible bool) string {
		if compatible {
			return "COMPATIBLE"
		}
		return "INCOMPATIBLE"
	},
	"ids": func(ids []uuid.UUID) string {
		parts := make([]string, len(ids))
		for i, id := range ids {
			parts[i] = "`" + id.String() + "`"
		}
		return strings.Join(parts, ", ")
	},
	"describe": func(name string) string {
		p, err := profile.Get(name)
		if err != nil {
			return ""
		}
		return p.Describe()
	},
}

var mdTemplate = template.Must(template.New("report").Funcs(mdFuncs).Parse(`# PC Build Compatibility Report
{{ if .Build }}
**Build:** {{ .Build }}{{ end }}
**Verdict:** {{ verdict .Compatible }}
**Profile:** {{ .Profile }}
**Errors:** {{ .Summary.ErrorCount }} | **Warnings:** {{ .Summary.WarningCount }} | **Checked:** {{ .Summary.CategoriesChecked }} | **Skipped:** {{ .Summary.CategoriesSkipped }}
> Note: counts reflect all findings; --severity-threshold may hide some from this output.
{{ with .Error }}
---

## Build Error

**{{ .Code }}:** {{ .Message }}
{{ end }}{{ if .Categories }}
---

## Categories

| Category | Status | Findings |
|---|---|---|
{{ range .Categories }}| {{ .Name }} | {{ .Status }} | {{ len .Violations }} |
{{ end }}{{ range .Categories }}{{ if .Violations }}
### {{ .Name }} · {{ .Status }}
{{ range .Violations }}
- **{{ .Severity }}:** {{ .Message }}
  Components: {{ ids .ComponentIDs }}
{{ end }}{{ end }}{{ end }}{{ end }}
---
` + "```" + `
{{ describe .Profile }}` + "```" + `
*{{ .Tool }} {{ .Version }}*
`))

func (r *markdownRenderer) Render(report *schema.Report) ([]byte, error) {
	var buf bytes.Buffer
	if err := mdTemplate.Execute(&buf, report); err != nil {
		return nil, fmt.Errorf("rendering markdown: %w", err)
	}
	return buf.Bytes(), nil
}
