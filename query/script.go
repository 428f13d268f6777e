package query

import (
	"embed"
	"io"
	"strings"
	"text/template"

	"github.com/Masterminds/sprig/v3"
)

//go:embed templates/*.tpl
var scripttpl embed.FS

const scriptTemplate = "script.sql.tpl"

// WriteScript пишет SQL-скрипт со всеми запросами в порядке планов.
func WriteScript(w io.Writer, r Renderer, root Root, plans []Plan) error {
	data := struct {
		Root     Root
		IDColumn string
		Plans    []Plan
	}{
		Root:     root,
		IDColumn: root.idColumn(),
		Plans:    plans,
	}

	t := template.New("").
		Funcs(sprig.TxtFuncMap()).
		Funcs(template.FuncMap{
			"sql": r.SQL,
			"joinPath": func(p Plan) string {
				tables := make([]string, 0, len(p.Joins)+1)
				tables = append(tables, p.Filter.Table)
				for _, step := range p.Joins {
					tables = append(tables, step.To)
				}
				return strings.Join(tables, " -> ")
			},
		})
	tpl, err := t.ParseFS(scripttpl, "templates/*.tpl")
	if err != nil {
		return err
	}

	return tpl.ExecuteTemplate(w, scriptTemplate, data)
}
