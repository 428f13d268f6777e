package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustGraph(t *testing.T, s *Schema) *Graph {
	t.Helper()
	g, err := NewGraph(s)
	require.NoError(t, err)
	return g
}

func pathTables(paths []Path) []string {
	res := make([]string, 0, len(paths))
	for _, p := range paths {
		res = append(res, p.Table)
	}
	return res
}

func pathByTable(t *testing.T, paths []Path, table string) Path {
	t.Helper()
	for _, p := range paths {
		if p.Table == table {
			return p
		}
	}
	t.Fatalf("table %q not visited", table)
	return Path{}
}

func TestTraverseRootOnly(t *testing.T) {
	g := mustGraph(t, &Schema{Tables: []Table{{Name: "t", Columns: []string{"id"}}}})

	paths, err := g.Traverse("t")
	require.NoError(t, err)
	require.Equal(t, []Path{{Table: "t"}}, paths)
}

func TestTraverseDisconnectedRoot(t *testing.T) {
	s := blogSchema()
	s.Tables = append(s.Tables, Table{Name: "audit", Columns: []string{"id"}})
	g := mustGraph(t, s)

	paths, err := g.Traverse("audit")
	require.NoError(t, err)
	require.Len(t, paths, 1)
	assert.Empty(t, paths[0].Steps)

	paths, err = g.Traverse("users")
	require.NoError(t, err)
	assert.NotContains(t, pathTables(paths), "audit")
}

func TestTraverseLinearChain(t *testing.T) {
	r := require.New(t)
	g := mustGraph(t, blogSchema())

	paths, err := g.Traverse("comments")
	r.NoError(err)
	r.Equal([]string{"comments", "posts", "users"}, pathTables(paths))

	users := pathByTable(t, paths, "users")
	r.Equal([]JoinStep{
		{
			From: "comments", To: "posts",
			LeftColumn: "post_id", RightColumn: "id",
			Relation: rel("comments", "post_id", "posts", "id"),
		},
		{
			From: "posts", To: "users",
			LeftColumn: "user_id", RightColumn: "id",
			Relation: rel("posts", "user_id", "users", "id"),
		},
	}, users.Steps)
}

func TestTraverseFromReferencedSide(t *testing.T) {
	r := require.New(t)
	g := mustGraph(t, blogSchema())

	paths, err := g.Traverse("users")
	r.NoError(err)
	r.Equal([]string{"users", "posts", "comments"}, pathTables(paths))

	comments := pathByTable(t, paths, "comments")
	r.Equal([]JoinStep{
		{
			From: "users", To: "posts",
			LeftColumn: "id", RightColumn: "user_id",
			Relation: rel("posts", "user_id", "users", "id"),
		},
		{
			From: "posts", To: "comments",
			LeftColumn: "id", RightColumn: "post_id",
			Relation: rel("comments", "post_id", "posts", "id"),
		},
	}, comments.Steps)
}

func TestTraverseSelfReference(t *testing.T) {
	g := mustGraph(t, &Schema{
		Tables: []Table{
			{Name: "employees", Columns: []string{"id", "manager_id", "department_id"}},
			{Name: "departments", Columns: []string{"id"}},
		},
		Relations: []Relation{
			rel("employees", "manager_id", "employees", "id"),
			rel("employees", "department_id", "departments", "id"),
		},
	})

	paths, err := g.Traverse("employees")
	require.NoError(t, err)
	assert.Equal(t, []string{"employees", "departments"}, pathTables(paths))
	assert.Empty(t, paths[0].Steps)
}

func TestTraverseMutualCycle(t *testing.T) {
	g := mustGraph(t, &Schema{
		Tables: []Table{
			{Name: "a"}, {Name: "b"}, {Name: "c"},
		},
		Relations: []Relation{
			rel("a", "b_id", "b", "id"),
			rel("b", "c_id", "c", "id"),
			rel("c", "a_id", "a", "id"),
		},
	})

	paths, err := g.Traverse("a")
	require.NoError(t, err)
	require.Equal(t, []string{"a", "b", "c"}, pathTables(paths))

	// c достигнута через b, а не напрямую из a
	c := pathByTable(t, paths, "c")
	require.Len(t, c.Steps, 2)
	assert.Equal(t, "b", c.Steps[1].From)
	assert.Equal(t, "c_id", c.Steps[1].LeftColumn)
}

func TestTraverseMultiRelationDirection(t *testing.T) {
	s := &Schema{
		Tables: []Table{
			{Name: "accounts", Columns: []string{"id", "primary_contact_id"}},
			{Name: "contacts", Columns: []string{"id", "account_id"}},
		},
		Relations: []Relation{
			rel("contacts", "account_id", "accounts", "id"),
			rel("accounts", "primary_contact_id", "contacts", "id"),
		},
	}
	g := mustGraph(t, s)

	tests := []struct {
		root     string
		other    string
		expected JoinStep
	}{
		{
			root:  "accounts",
			other: "contacts",
			expected: JoinStep{
				From: "accounts", To: "contacts",
				LeftColumn: "primary_contact_id", RightColumn: "id",
				Relation: s.Relations[1],
			},
		},
		{
			root:  "contacts",
			other: "accounts",
			expected: JoinStep{
				From: "contacts", To: "accounts",
				LeftColumn: "account_id", RightColumn: "id",
				Relation: s.Relations[0],
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.root, func(t *testing.T) {
			paths, err := g.Traverse(tt.root)
			require.NoError(t, err)
			other := pathByTable(t, paths, tt.other)
			require.Equal(t, []JoinStep{tt.expected}, other.Steps)
		})
	}
}

func TestTraverseAmbiguousRelation(t *testing.T) {
	s := &Schema{
		Tables: []Table{
			{Name: "users", Columns: []string{"id"}},
			{Name: "messages", Columns: []string{"id", "sender_id", "receiver_id"}},
		},
		Relations: []Relation{
			rel("messages", "sender_id", "users", "id"),
			rel("messages", "receiver_id", "users", "id"),
		},
	}
	g := mustGraph(t, s)

	paths, err := g.Traverse("users")
	require.NoError(t, err)
	messages := pathByTable(t, paths, "messages")
	require.Len(t, messages.Steps, 1)
	assert.Equal(t, "receiver_id", messages.Steps[0].RightColumn)
	assert.Equal(t, "id", messages.Steps[0].LeftColumn)

	// порядок объявления не влияет на выбор
	s.Relations[0], s.Relations[1] = s.Relations[1], s.Relations[0]
	g = mustGraph(t, s)
	again, err := g.Traverse("users")
	require.NoError(t, err)
	assert.Equal(t, paths, again)
}

func TestTraverseUnknownRoot(t *testing.T) {
	g := mustGraph(t, blogSchema())

	paths, err := g.Traverse("missing")
	require.ErrorIs(t, err, ErrUnknownTable)
	require.Nil(t, paths)
}

func shopSchema() *Schema {
	return &Schema{
		Name: "public",
		Tables: []Table{
			{Name: "customers", Columns: []string{"id", "referrer_id"}},
			{Name: "orders", Columns: []string{"id", "customer_id", "address_id"}},
			{Name: "order_items", Columns: []string{"order_id", "product_id", "qty"}},
			{Name: "products", Columns: []string{"id", "vendor_id"}},
			{Name: "vendors", Columns: []string{"id"}},
			{Name: "addresses", Columns: []string{"id", "customer_id"}},
			{Name: "reviews", Columns: []string{"id", "customer_id", "product_id"}},
			{Name: "warehouses", Columns: []string{"id"}},
		},
		Relations: []Relation{
			rel("customers", "referrer_id", "customers", "id"),
			rel("orders", "customer_id", "customers", "id"),
			rel("orders", "address_id", "addresses", "id"),
			rel("order_items", "order_id", "orders", "id"),
			rel("order_items", "product_id", "products", "id"),
			rel("products", "vendor_id", "vendors", "id"),
			rel("addresses", "customer_id", "customers", "id"),
			rel("reviews", "customer_id", "customers", "id"),
			rel("reviews", "product_id", "products", "id"),
		},
	}
}

func TestTraverseCompleteAndDeterministic(t *testing.T) {
	r := require.New(t)

	first, err := mustGraph(t, shopSchema()).Traverse("customers")
	r.NoError(err)
	second, err := mustGraph(t, shopSchema()).Traverse("customers")
	r.NoError(err)
	r.Equal(first, second)

	r.Equal([]string{
		"customers",
		"addresses",
		"orders",
		"order_items",
		"products",
		"reviews",
		"vendors",
	}, pathTables(first))

	for _, p := range first {
		if len(p.Steps) == 0 {
			r.Equal("customers", p.Table)
			continue
		}
		r.Equal("customers", p.Steps[0].From)
		r.Equal(p.Table, p.Steps[len(p.Steps)-1].To)
		for idx := 1; idx < len(p.Steps); idx++ {
			r.Equal(p.Steps[idx-1].To, p.Steps[idx].From)
		}
	}

	// diamond: reviews достигнута через products, первым найденным путём
	reviews := pathByTable(t, first, "reviews")
	r.Len(reviews.Steps, 5)
}
