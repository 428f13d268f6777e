package queries

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/jharrilim/pg-export/db"
)

type Queries struct{}

type Table struct {
	Schema string
	Table  string
}

func (Queries) Tables(ctx context.Context, exec db.Executor, schema string) ([]Table, error) {
	const queryTablesSQL = `-- list tables
SELECT
	ns.nspname AS schema_name,
	c.relname AS table_name
FROM
	pg_class c
	JOIN pg_namespace ns ON ns.oid = c.relnamespace
WHERE
	ns.nspname = $1
	AND c.relkind IN ('r', 'p')
	AND NOT c.relispartition
ORDER BY c.relname ASC`

	return QueryAll(
		ctx, exec,
		func(scan pgx.Rows, v *Table) error {
			return scan.Scan(
				&v.Schema,
				&v.Table,
			)
		},
		queryTablesSQL, schema)
}

type Column struct {
	TableName  string
	ColumnNum  int
	ColumnName string
}

func (Queries) Columns(ctx context.Context, exec db.Executor, schema string) ([]Column, error) {
	const queryColumnsSQL = `-- list columns
SELECT
	c.relname AS table_name,
	a.attnum::INT AS column_num,
	a.attname AS column_name
FROM
	pg_attribute a
	JOIN pg_class c ON c.oid = a.attrelid
	JOIN pg_namespace ns ON ns.oid = c.relnamespace
WHERE
	ns.nspname = $1
	AND c.relkind IN ('r', 'p')
	AND NOT c.relispartition
	AND a.attnum > 0
	AND NOT a.attisdropped
ORDER BY c.relname ASC, a.attnum ASC`

	return QueryAll(
		ctx, exec,
		func(scan pgx.Rows, v *Column) error {
			return scan.Scan(
				&v.TableName,
				&v.ColumnNum,
				&v.ColumnName,
			)
		},
		queryColumnsSQL, schema)
}

// Relation одна пара колонок внешнего ключа.
// Составные ключи разворачиваются через unnest(conkey, confkey).
type Relation struct {
	ConstraintName string

	TableSchema string
	TableName   string
	ColumnName  string

	ForeignTableSchema string
	ForeignTableName   string
	ForeignColumnName  string
}

func (Queries) Relations(ctx context.Context, exec db.Executor, schema string) ([]Relation, error) {
	const queryRelationsSQL = `-- list foreign keys
SELECT
	con.conname AS constraint_name,
	ns.nspname AS table_schema,
	c.relname AS table_name,
	a.attname AS column_name,
	fns.nspname AS foreign_table_schema,
	fc.relname AS foreign_table_name,
	fa.attname AS foreign_column_name
FROM
	pg_constraint con
	JOIN pg_class c ON c.oid = con.conrelid
	JOIN pg_namespace ns ON ns.oid = c.relnamespace
	JOIN pg_class fc ON fc.oid = con.confrelid
	JOIN pg_namespace fns ON fns.oid = fc.relnamespace
	CROSS JOIN LATERAL unnest(con.conkey, con.confkey) AS k(attnum, foreign_attnum)
	JOIN pg_attribute a ON a.attrelid = con.conrelid AND a.attnum = k.attnum
	JOIN pg_attribute fa ON fa.attrelid = con.confrelid AND fa.attnum = k.foreign_attnum
WHERE
	con.contype = 'f'
	AND ns.nspname = $1
	AND fns.nspname = $1
	AND NOT c.relispartition
	AND NOT fc.relispartition
ORDER BY c.relname ASC, con.conname ASC, a.attnum ASC`

	return QueryAll(
		ctx, exec,
		func(scan pgx.Rows, v *Relation) error {
			return scan.Scan(
				&v.ConstraintName,

				&v.TableSchema,
				&v.TableName,
				&v.ColumnName,

				&v.ForeignTableSchema,
				&v.ForeignTableName,
				&v.ForeignColumnName,
			)
		},
		queryRelationsSQL, schema)
}
