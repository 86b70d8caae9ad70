package mapview

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"
)

//go:embed templates/map.html
var template_fs embed.FS

var map_template = template.Must(template.New("map.html").Funcs(template.FuncMap{
	// geojson produced by Compose, inserted as a literal
	"js_value": func(value string) template.JS {
		return template.JS(value)
	},
	"var_name": func(prefix string, index int) template.JS {
		return template.JS(fmt.Sprintf("%v_%v", prefix, index))
	},
}).ParseFS(template_fs, "templates/map.html"))

// Writes the map as a standalone html document.
//
// Identical maps render to identical bytes.
func Render(w io.Writer, m *Map) error {
	if err := map_template.Execute(w, m); err != nil {
		return fmt.Errorf("failed to render map: %w", err)
	}
	return nil
}

func RenderBytes(m *Map) ([]byte, error) {
	var buffer bytes.Buffer
	if err := Render(&buffer, m); err != nil {
		return nil, err
	}
	return buffer.Bytes(), nil
}
