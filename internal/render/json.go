package render

import (
	"encoding/json"

	"github.com/vbukhtaev/pc-configurator-sub002/internal/schema"
)

type jsonRenderer struct{}

// Render indents the report. Details maps marshal with sorted keys, so equal
// reports always produce equal bytes.
func (r *jsonRenderer) Render(report *schema.Report) ([]byte, error) {
	out, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(out, '\n'), nil
}
