package schema

import (
	"embed"
	"fmt"
	"io"
	"text/template"

	"github.com/Masterminds/sprig/v3"
)

//go:embed templates/*.tpl
var dumptpl embed.FS

type TemplateName string

const DumpGraphTemplate TemplateName = "graph.puml.tpl"

// Dump рендерит граф в PlantUML.
func (g *Graph) Dump(w io.Writer) error {
	return g.dump(w, DumpGraphTemplate)
}

func (g *Graph) dump(w io.Writer, tplName TemplateName) error {
	data := struct {
		Schema *Schema
		Graph  *Graph
	}{
		Schema: g.schema,
		Graph:  g,
	}

	t := template.New("").
		Funcs(sprig.TxtFuncMap()).
		Funcs(template.FuncMap{
			"alias": func(id NodeID) string {
				return fmt.Sprintf("t%d", id)
			},
			"nodeAlias": func(table string) (string, error) {
				id, ok := g.Lookup(table)
				if !ok {
					return "", &UnknownTableError{Table: table}
				}
				return fmt.Sprintf("t%d", id), nil
			},
		})
	tpl, err := t.ParseFS(dumptpl, "templates/*.tpl")
	if err != nil {
		return err
	}

	return tpl.ExecuteTemplate(w, string(tplName), data)
}
