package schema

import (
	"fmt"
	"sort"

	mapset "github.com/deckarep/golang-set/v2"
)

// NodeID индекс вершины в Graph. Совпадает с позицией таблицы в Schema.Tables.
type NodeID int

// Node вершина графа, одна на таблицу.
type Node struct {
	ID    NodeID
	Table *Table
	// Соседи, отсортированные по имени таблицы. Каждый сосед встречается один раз.
	Edges []Edge
}

// Edge ребро между двумя таблицами со всеми внешними ключами, которые его образуют.
type Edge struct {
	To        NodeID
	Relations []Relation
}

// Graph неориентированный граф таблиц, связанных внешними ключами.
// Вершины хранятся в слайсе и адресуются индексом, поэтому циклы в схеме
// не превращаются в циклы указателей.
type Graph struct {
	schema *Schema
	nodes  []Node
	byName map[string]NodeID
}

// NewGraph строит граф по схеме. Ребро добавляется для каждого внешнего ключа,
// повторные ключи между той же парой таблиц дописываются к существующему ребру.
func NewGraph(s *Schema) (*Graph, error) {
	if s == nil || len(s.Tables) == 0 {
		return nil, ErrEmptySchema
	}

	g := &Graph{
		schema: s,
		nodes:  make([]Node, 0, len(s.Tables)),
		byName: make(map[string]NodeID, len(s.Tables)),
	}

	names := mapset.NewThreadUnsafeSet[string]()
	for idx := range s.Tables {
		table := &s.Tables[idx]
		if !names.Add(table.Name) {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateTable, table.Name)
		}
		id := NodeID(idx)
		g.nodes = append(g.nodes, Node{ID: id, Table: table})
		g.byName[table.Name] = id
	}

	// edgeIndex[from][to] - позиция ребра в nodes[from].Edges
	edgeIndex := make(map[NodeID]map[NodeID]int, len(g.nodes))
	addEdge := func(from, to NodeID, rel Relation) {
		idx, ok := edgeIndex[from]
		if !ok {
			idx = make(map[NodeID]int)
			edgeIndex[from] = idx
		}
		node := &g.nodes[from]
		if pos, ok := idx[to]; ok {
			node.Edges[pos].Relations = append(node.Edges[pos].Relations, rel)
			return
		}
		idx[to] = len(node.Edges)
		node.Edges = append(node.Edges, Edge{To: to, Relations: []Relation{rel}})
	}

	for idx := range s.Relations {
		rel := s.Relations[idx]
		from, ok := g.byName[rel.TableName]
		if !ok {
			return nil, &UnknownTableError{Table: rel.TableName, Relation: &rel}
		}
		to, ok := g.byName[rel.ForeignTableName]
		if !ok {
			return nil, &UnknownTableError{Table: rel.ForeignTableName, Relation: &rel}
		}

		addEdge(from, to, rel)
		if from != to {
			addEdge(to, from, rel)
		}
	}

	// sorted order
	for idx := range g.nodes {
		edges := g.nodes[idx].Edges
		sort.SliceStable(edges, func(i, j int) bool {
			return g.nodes[edges[i].To].Table.Name < g.nodes[edges[j].To].Table.Name
		})
	}

	return g, nil
}

func (g *Graph) Schema() *Schema { return g.schema }
func (g *Graph) Len() int        { return len(g.nodes) }

// Nodes возвращает вершины в порядке NodeID.
func (g *Graph) Nodes() []Node { return g.nodes }

func (g *Graph) Node(id NodeID) *Node { return &g.nodes[id] }

// Lookup возвращает индекс вершины по имени таблицы.
func (g *Graph) Lookup(table string) (NodeID, bool) {
	id, ok := g.byName[table]
	return id, ok
}

// Edge возвращает ребро между двумя вершинами, если оно есть.
func (g *Graph) Edge(from, to NodeID) (*Edge, bool) {
	edges := g.nodes[from].Edges
	for idx := range edges {
		if edges[idx].To == to {
			return &edges[idx], true
		}
	}
	return nil, false
}
