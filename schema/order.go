package schema

import (
	"fmt"
)

// LoadOrder упорядочивает таблицы так, чтобы таблица, на которую ссылается
// внешний ключ, шла раньше ссылающейся. При равенстве сохраняется входной порядок.
// Ссылка таблицы на саму себя не считается циклом.
func (g *Graph) LoadOrder(tables []string) ([]string, error) {
	ids := make([]NodeID, 0, len(tables))
	pos := make(map[NodeID]int, len(tables))
	for _, name := range tables {
		id, ok := g.Lookup(name)
		if !ok {
			return nil, &UnknownTableError{Table: name}
		}
		if _, ok := pos[id]; ok {
			continue
		}
		pos[id] = len(ids)
		ids = append(ids, id)
	}

	// dependents[parent] - таблицы из набора, ссылающиеся на parent
	dependents := make(map[NodeID][]NodeID, len(ids))
	// Initialize indegrees
	inDegrees := make(map[NodeID]int, len(ids))
	for _, id := range ids {
		for _, edge := range g.nodes[id].Edges {
			if edge.To == id {
				continue
			}
			if _, ok := pos[edge.To]; !ok {
				continue
			}
			if g.references(id, edge) {
				dependents[edge.To] = append(dependents[edge.To], id)
				inDegrees[id]++
			}
		}
	}

	result := make([]string, 0, len(ids))
	done := make([]bool, len(ids))

	// Always take the earliest ready node in input order
	for len(result) < len(ids) {
		next := -1
		for idx, id := range ids {
			if !done[idx] && inDegrees[id] == 0 {
				next = idx
				break
			}
		}
		if next < 0 {
			return nil, fmt.Errorf("%w: %d of %d tables ordered", ErrCycle, len(result), len(ids))
		}

		done[next] = true
		node := ids[next]
		result = append(result, g.nodes[node].Table.Name)
		// Decrement the indegrees of all neighbors
		for _, dep := range dependents[node] {
			inDegrees[dep]--
		}
	}

	return result, nil
}

// references сообщает, есть ли у вершины from внешний ключ на edge.To.
func (g *Graph) references(from NodeID, edge Edge) bool {
	name := g.nodes[from].Table.Name
	target := g.nodes[edge.To].Table.Name
	for _, rel := range edge.Relations {
		if rel.TableName == name && rel.ForeignTableName == target {
			return true
		}
	}
	return false
}
