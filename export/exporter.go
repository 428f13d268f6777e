package export

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/jharrilim/pg-export/db"
	"github.com/jharrilim/pg-export/query"
)

const ManifestFile = "manifest.yaml"

type Config struct {
	// Каталог, в который пишутся CSV и манифест
	OutputDir string
	// Чем заменять NULL в CSV
	NullValue string
}

// Manifest описывает результат одной выгрузки.
type Manifest struct {
	RunID     string      `yaml:"run_id"`
	Schema    string      `yaml:"schema,omitempty"`
	Root      query.Root  `yaml:"root"`
	CreatedAt time.Time   `yaml:"created_at"`
	Tables    []TableFile `yaml:"tables"`
}

type TableFile struct {
	Table string `yaml:"table"`
	File  string `yaml:"file"`
	Rows  int    `yaml:"rows"`
	Query string `yaml:"query"`
}

type Exporter struct {
	conn db.Executor
	log  *zap.Logger
	r    query.Renderer
	cnf  Config
	conv CSVConverter
	now  func() time.Time
}

func NewExporter(
	conn db.Executor,
	log *zap.Logger,
	r query.Renderer,
	cnf Config,
) *Exporter {
	return &Exporter{
		conn: conn,
		log:  log.Named("exporter"),
		r:    r,
		cnf:  cnf,
		conv: CSVConverter{NullValue: cnf.NullValue},
		now:  time.Now,
	}
}

// Export выполняет планы по одному и пишет результат каждого в отдельный CSV.
// order задаёт порядок таблиц и нумерацию файлов; пустой order - порядок планов.
func (e *Exporter) Export(
	ctx context.Context,
	root query.Root,
	plans []query.Plan,
	order []string,
) (*Manifest, error) {
	if len(order) == 0 {
		order = make([]string, 0, len(plans))
		for _, p := range plans {
			order = append(order, p.Table)
		}
	}
	if len(order) != len(plans) {
		return nil, fmt.Errorf("order has %d tables, got %d plans", len(order), len(plans))
	}

	byTable := make(map[string]query.Plan, len(plans))
	for _, p := range plans {
		byTable[p.Table] = p
	}

	if err := os.MkdirAll(e.cnf.OutputDir, 0o755); err != nil { //nolint:gomnd // dir mode
		return nil, fmt.Errorf("create output dir: %w", err)
	}

	m := &Manifest{
		RunID:     uuid.NewString(),
		Schema:    e.r.Schema,
		Root:      root,
		CreatedAt: e.now().UTC(),
		Tables:    make([]TableFile, 0, len(order)),
	}
	log := e.log.With(zap.String("run_id", m.RunID))

	for idx, table := range order {
		plan, ok := byTable[table]
		if !ok {
			return nil, fmt.Errorf("no plan for table %q", table)
		}

		fileName := fmt.Sprintf("%03d_%s.csv", idx+1, url.PathEscape(table))
		rows, err := e.exportTable(ctx, plan, filepath.Join(e.cnf.OutputDir, fileName))
		if err != nil {
			return nil, fmt.Errorf("export table %q: %w", table, err)
		}
		log.Info("table exported",
			zap.String("table", table),
			zap.String("file", fileName),
			zap.Int("rows", rows),
			zap.Int("joins", len(plan.Joins)))

		m.Tables = append(m.Tables, TableFile{
			Table: table,
			File:  fileName,
			Rows:  rows,
			Query: e.r.SQL(plan),
		})
	}

	if err := writeFile(filepath.Join(e.cnf.OutputDir, ManifestFile), func(f *os.File) error {
		enc := yaml.NewEncoder(f)
		enc.SetIndent(2)
		if err := enc.Encode(m); err != nil {
			return err
		}
		return enc.Close()
	}); err != nil {
		return nil, fmt.Errorf("write manifest: %w", err)
	}

	return m, nil
}

func (e *Exporter) exportTable(ctx context.Context, plan query.Plan, fileName string) (n int, err error) {
	sql, args := e.r.Query(plan)
	e.log.Debug("query table", zap.String("table", plan.Table), zap.String("sql", sql))

	// простой протокол отдаёт все значения в текстовом формате
	queryArgs := append([]any{pgx.QueryExecModeSimpleProtocol}, args...)
	rows, err := e.conn.Query(ctx, sql, queryArgs...)
	if err != nil {
		return 0, db.Error{Err: err, Message: "query", Table: plan.Table, Query: sql, Args: args}
	}
	defer rows.Close()

	err = writeFile(fileName, func(f *os.File) error {
		n, err = e.conv.WriteRows(f, rows)
		return err
	})
	if rerr := rows.Err(); rerr != nil {
		return n, db.Error{Err: rerr, Message: "read rows", Table: plan.Table, Query: sql, Args: args}
	}
	return n, err
}

func writeFile(fileName string, f func(f *os.File) error) (err error) {
	file, err := os.Create(fileName)
	if err != nil {
		return fmt.Errorf("create output file: %w", err)
	}
	defer func() {
		err = errors.Join(err, file.Close())
	}()

	return f(file)
}
