package query

import (
	"errors"
	"fmt"

	"github.com/jharrilim/pg-export/schema"
)

const DefaultIDColumn = "id"

var (
	ErrUnknownColumn = errors.New("unknown column")
	ErrInvalidPath   = errors.New("invalid join path")
)

// Root строка, вокруг которой строится выгрузка.
type Root struct {
	Table    string `yaml:"table"`
	IDColumn string `yaml:"id_column"`
	// Значение идентификатора передаётся как строковый литерал
	ID string `yaml:"id"`
}

func (r Root) idColumn() string {
	if r.IDColumn == "" {
		return DefaultIDColumn
	}
	return r.IDColumn
}

// Filter условие root_table.id_column = value.
type Filter struct {
	Table  string
	Column string
	Value  string
}

// Plan запрос для одной достижимой таблицы.
type Plan struct {
	Table   string
	Columns []string
	// Соединения в порядке от корневой таблицы к Table
	Joins  []schema.JoinStep
	Filter Filter
}

// Compile обходит граф от корневой таблицы и строит план для каждой достижимой таблицы.
func Compile(g *schema.Graph, root Root) ([]Plan, error) {
	paths, err := g.Traverse(root.Table)
	if err != nil {
		return nil, err
	}
	return Synthesize(g, root, paths)
}

// Synthesize строит планы по путям из Traverse, сохраняя их порядок.
func Synthesize(g *schema.Graph, root Root, paths []schema.Path) ([]Plan, error) {
	rootID, ok := g.Lookup(root.Table)
	if !ok {
		return nil, &schema.UnknownTableError{Table: root.Table}
	}
	idColumn := root.idColumn()
	if rootTable := g.Node(rootID).Table; !rootTable.HasColumn(idColumn) {
		return nil, fmt.Errorf("%w %q in table %q", ErrUnknownColumn, idColumn, root.Table)
	}

	filter := Filter{
		Table:  root.Table,
		Column: idColumn,
		Value:  root.ID,
	}

	plans := make([]Plan, 0, len(paths))
	for _, path := range paths {
		id, ok := g.Lookup(path.Table)
		if !ok {
			return nil, &schema.UnknownTableError{Table: path.Table}
		}
		if err := checkPath(root.Table, path); err != nil {
			return nil, err
		}

		table := g.Node(id).Table
		plans = append(plans, Plan{
			Table:   table.Name,
			Columns: append([]string(nil), table.Columns...),
			Joins:   path.Steps,
			Filter:  filter,
		})
	}
	return plans, nil
}

func checkPath(root string, path schema.Path) error {
	if len(path.Steps) == 0 {
		if path.Table != root {
			return fmt.Errorf("%w: table %q has no joins to root %q", ErrInvalidPath, path.Table, root)
		}
		return nil
	}

	prev := root
	for idx, step := range path.Steps {
		if step.From != prev {
			return fmt.Errorf("%w: step %d of %q starts at %q, expected %q",
				ErrInvalidPath, idx, path.Table, step.From, prev)
		}
		prev = step.To
	}
	if prev != path.Table {
		return fmt.Errorf("%w: path of %q ends at %q", ErrInvalidPath, path.Table, prev)
	}
	return nil
}
