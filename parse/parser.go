package parse

import (
	"context"
	"fmt"

	mapset "github.com/deckarep/golang-set/v2"
	"go.uber.org/zap"

	"github.com/jharrilim/pg-export/db"
	"github.com/jharrilim/pg-export/parse/queries"
	"github.com/jharrilim/pg-export/schema"
)

const DefaultSchema = "public"

type Config struct {
	// Имя схемы, таблицы которой загружаются
	Schema string
}

type Parser struct {
	conn db.Executor
	log  *zap.Logger
	q    Queries
}

//go:generate mockery --name Queries --inpackage --testonly --with-expecter --quiet
type Queries interface {
	Tables(context.Context, db.Executor, string) ([]queries.Table, error)
	Columns(context.Context, db.Executor, string) ([]queries.Column, error)
	Relations(context.Context, db.Executor, string) ([]queries.Relation, error)
}

func NewParser(
	conn db.Executor,
	log *zap.Logger,
) *Parser {
	return &Parser{
		log:  log.Named("parser"),
		conn: conn,
		q:    queries.Queries{},
	}
}

// LoadSchema читает таблицы, колонки и внешние ключи одной схемы.
// Внешние ключи на таблицы других схем не загружаются.
func (p *Parser) LoadSchema(ctx context.Context, conf Config) (*schema.Schema, error) {
	if conf.Schema == "" {
		conf.Schema = DefaultSchema
	}
	s := &schema.Schema{Name: conf.Schema}

	tableIndex, err := p.loadTables(ctx, s)
	if err != nil {
		return nil, fmt.Errorf("load tables: %w", err)
	}
	if err := p.loadColumns(ctx, s, tableIndex); err != nil {
		return nil, fmt.Errorf("load tables columns: %w", err)
	}
	if err := p.loadRelations(ctx, s); err != nil {
		return nil, fmt.Errorf("load relations: %w", err)
	}
	if err := s.Validate(); err != nil {
		return nil, fmt.Errorf("validate schema %q: %w", s.Name, err)
	}
	return s, nil
}

// loadTables получает имена таблиц, найденных в схеме.
func (p *Parser) loadTables(ctx context.Context, s *schema.Schema) (map[string]int, error) {
	tables, err := p.q.Tables(ctx, p.conn, s.Name)
	if err != nil {
		p.log.Error("failed to query tables", zap.Error(err))
		return nil, err
	}
	p.log.Debug("loaded tables", zap.Int("n", len(tables)))

	index := make(map[string]int, len(tables))
	s.Tables = make([]schema.Table, 0, len(tables))
	for _, dbtable := range tables {
		index[dbtable.Table] = len(s.Tables)
		s.Tables = append(s.Tables, schema.Table{Name: dbtable.Table})
	}
	return index, nil
}

// loadColumns загружает имена колонок в порядке attnum.
func (p *Parser) loadColumns(
	ctx context.Context,
	s *schema.Schema,
	tableIndex map[string]int,
) error {
	columns, err := p.q.Columns(ctx, p.conn, s.Name)
	if err != nil {
		p.log.Error("failed to query tables columns", zap.Error(err))
		return err
	}
	p.log.Debug("columns loaded", zap.Int("n", len(columns)))

	for _, dbcolumn := range columns {
		idx, ok := tableIndex[dbcolumn.TableName]
		if !ok {
			err := fmt.Errorf("table %q not found for column %q", dbcolumn.TableName, dbcolumn.ColumnName)
			p.log.Error("failed to get table for column", zap.Error(err))
			return err
		}
		table := &s.Tables[idx]
		table.Columns = append(table.Columns, dbcolumn.ColumnName)
	}

	return nil
}

// loadRelations загружает внешние ключи, по одной записи на пару колонок.
func (p *Parser) loadRelations(ctx context.Context, s *schema.Schema) error {
	relations, err := p.q.Relations(ctx, p.conn, s.Name)
	if err != nil {
		p.log.Error("failed to query relations", zap.Error(err))
		return err
	}

	seen := mapset.NewThreadUnsafeSet[schema.Relation]()
	s.Relations = make([]schema.Relation, 0, len(relations))
	for _, dbrel := range relations {
		rel := schema.Relation{
			TableSchema:        dbrel.TableSchema,
			TableName:          dbrel.TableName,
			ColumnName:         dbrel.ColumnName,
			ForeignTableSchema: dbrel.ForeignTableSchema,
			ForeignTableName:   dbrel.ForeignTableName,
			ForeignColumnName:  dbrel.ForeignColumnName,
		}
		if !seen.Add(rel) {
			p.log.Debug("skip duplicate relation",
				zap.String("constraint", dbrel.ConstraintName),
				zap.Stringer("relation", rel))
			continue
		}
		s.Relations = append(s.Relations, rel)
	}
	p.log.Debug("relations loaded", zap.Int("n", len(s.Relations)))

	return nil
}
