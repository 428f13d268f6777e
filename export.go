package main

import (
	"errors"

	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
	"golang.org/x/exp/slices"
	"golang.org/x/xerrors"

	"github.com/jharrilim/pg-export/db"
	"github.com/jharrilim/pg-export/export"
	"github.com/jharrilim/pg-export/query"
	"github.com/jharrilim/pg-export/schema"
)

type exportFlags struct {
	flags
	schema    SchemaLoaderFlags
	root      RootFlags
	outputDir *cli.StringFlag
	ordered   *cli.BoolFlag
}

func (f exportFlags) Set() []cli.Flag {
	res := append(f.flags.Set(), f.schema.Set()...)
	res = append(res, f.root.Set()...)
	return append(res, f.outputDir, f.ordered)
}

type ExportCommand struct {
	flags exportFlags
	BaseCommand

	schemaLoader SchemaLoader
}

func NewExportCommand(f flags) *ExportCommand {
	return &ExportCommand{
		flags: exportFlags{
			flags:  f,
			schema: NewSchemaLoaderFlags(),
			root:   NewRootFlags(),
			outputDir: &cli.StringFlag{
				Name:      "output",
				Usage:     "output directory for csv files and manifest",
				Required:  true,
				TakesFile: true,
				Aliases:   []string{"o"},
			},
			ordered: &cli.BoolFlag{
				Name:  "load-order",
				Value: true,
				Usage: "number files so that referenced tables come first",
			},
		},
	}
}

func (e *ExportCommand) Command() *cli.Command {
	return &cli.Command{
		Name:        "export",
		Usage:       "export all rows related to the root row",
		Description: "runs one query per reachable table and writes csv files with manifest.yaml",
		Flags:       e.flags.Set(),
		Before:      e.Init,
		Action:      e.Export,
		After:       e.Cleanup,
	}
}

func (e *ExportCommand) Init(ctx *cli.Context) error {
	base, err := NewBase(ctx, e.flags.flags)
	if err != nil {
		return cli.Exit(err, 2)
	}
	e.BaseCommand = base
	loader, err := NewSchemaLoader(ctx, base, e.flags.flags, e.flags.schema, true)
	if err != nil {
		return err
	}
	e.schemaLoader = loader
	return nil
}

func (e *ExportCommand) Cleanup(ctx *cli.Context) error {
	return e.schemaLoader.Cleanup(ctx)
}

func (e *ExportCommand) Export(ctx *cli.Context) error {
	s, err := e.schemaLoader.GetSchema(ctx, e.flags.schema)
	if err != nil {
		return xerrors.Errorf("get schema: %w", err)
	}

	root := e.flags.root.Root(ctx, e.cnf)
	g, plans, err := compilePlans(e.log, s, root)
	if err != nil {
		return err
	}

	var order []string
	if e.flags.ordered.Get(ctx) {
		order = e.loadOrder(g, plans)
	}

	exporter := export.NewExporter(
		e.schemaLoader.conn,
		e.log,
		query.Renderer{Schema: s.Name},
		export.Config{
			OutputDir: e.flags.outputDir.Get(ctx),
			NullValue: e.cnf.NullValue,
		},
	)
	m, err := exporter.Export(ctx.Context, root, plans, order)
	if err != nil {
		var dbErr db.Error
		if errors.As(err, &dbErr) {
			e.log.Error(dbErr.Pretty())
		}
		return xerrors.Errorf("export: %w", err)
	}

	rows := 0
	for _, t := range m.Tables {
		rows += t.Rows
	}
	e.log.Info("export finished",
		zap.String("run_id", m.RunID),
		zap.Int("tables", len(m.Tables)),
		zap.Int("rows", rows))
	return nil
}

// loadOrder возвращает порядок загрузки таблиц. При цикле в графе остаётся порядок обхода.
func (e *ExportCommand) loadOrder(g *schema.Graph, plans []query.Plan) []string {
	tables := make([]string, 0, len(plans))
	for _, p := range plans {
		tables = append(tables, p.Table)
	}

	order, err := g.LoadOrder(tables)
	if err != nil {
		if errors.Is(err, schema.ErrCycle) {
			e.log.Warn("tables reference each other, keep traversal order", zap.Error(err))
		} else {
			e.log.Warn("get load order", zap.Error(err))
		}
		return tables
	}

	if !slices.Equal(order, tables) {
		e.log.Debug("tables reordered", zap.Strings("order", order))
	}
	return order
}
