package schema

import (
	mapset "github.com/deckarep/golang-set/v2"
)

// JoinStep одно звено цепочки соединений.
// LeftColumn принадлежит таблице From, RightColumn - таблице To.
type JoinStep struct {
	From        string
	To          string
	LeftColumn  string
	RightColumn string
	// Внешний ключ, из которого взяты колонки
	Relation Relation
}

// Path цепочка соединений от корневой таблицы до Table.
// Для самой корневой таблицы Steps пуст.
type Path struct {
	Table string
	Steps []JoinStep
}

// Traverse обходит граф в глубину начиная с root и возвращает путь до каждой
// достижимой таблицы в порядке посещения. Каждая таблица посещается один раз,
// соседи перебираются по возрастанию имени таблицы.
func (g *Graph) Traverse(root string) ([]Path, error) {
	id, ok := g.Lookup(root)
	if !ok {
		return nil, &UnknownTableError{Table: root}
	}

	t := traversal{
		g:       g,
		visited: mapset.NewThreadUnsafeSet[NodeID](),
		paths:   make([]Path, 0, len(g.nodes)),
	}
	t.visit(id, nil)
	return t.paths, nil
}

type traversal struct {
	g       *Graph
	visited mapset.Set[NodeID]
	paths   []Path
}

func (t *traversal) visit(id NodeID, steps []JoinStep) {
	t.visited.Add(id)
	node := t.g.Node(id)
	t.paths = append(t.paths, Path{Table: node.Table.Name, Steps: steps})

	for _, edge := range node.Edges {
		// соседи могли быть посещены во время обхода предыдущих рёбер
		if t.visited.Contains(edge.To) {
			continue
		}
		next := t.g.Node(edge.To)
		step := joinStep(node.Table.Name, next.Table.Name, edge.Relations)

		chain := make([]JoinStep, len(steps), len(steps)+1)
		copy(chain, steps)
		t.visit(edge.To, append(chain, step))
	}
}

// joinStep выбирает внешний ключ для перехода from -> to.
// Сначала ключи, объявленные в from и ссылающиеся на to, затем обратные.
// Из нескольких подходящих берётся минимальный по (column_name, foreign_column_name).
func joinStep(from, to string, relations []Relation) JoinStep {
	var (
		forward, reverse       Relation
		hasForward, hasReverse bool
	)
	for _, rel := range relations {
		switch {
		case rel.TableName == from && rel.ForeignTableName == to:
			if !hasForward || relationLess(rel, forward) {
				forward, hasForward = rel, true
			}
		case rel.TableName == to && rel.ForeignTableName == from:
			if !hasReverse || relationLess(rel, reverse) {
				reverse, hasReverse = rel, true
			}
		}
	}

	if hasForward {
		return JoinStep{
			From:        from,
			To:          to,
			LeftColumn:  forward.ColumnName,
			RightColumn: forward.ForeignColumnName,
			Relation:    forward,
		}
	}
	// ребро построено из relations, так что хотя бы одна ориентация найдена
	return JoinStep{
		From:        from,
		To:          to,
		LeftColumn:  reverse.ForeignColumnName,
		RightColumn: reverse.ColumnName,
		Relation:    reverse,
	}
}

func relationLess(a, b Relation) bool {
	if a.ColumnName != b.ColumnName {
		return a.ColumnName < b.ColumnName
	}
	return a.ForeignColumnName < b.ForeignColumnName
}
