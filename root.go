package main

import (
	"errors"

	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
	"golang.org/x/xerrors"

	"github.com/jharrilim/pg-export/query"
	"github.com/jharrilim/pg-export/schema"
)

// RootFlags задают строку, вокруг которой строится выгрузка.
type RootFlags struct {
	table    *cli.StringFlag
	id       *cli.StringFlag
	idColumn *cli.StringFlag
}

func NewRootFlags() RootFlags {
	return RootFlags{
		table: &cli.StringFlag{
			Name:     "table",
			Aliases:  []string{"t"},
			Usage:    "root table name",
			Required: true,
		},
		id: &cli.StringFlag{
			Name:     "id",
			Usage:    "root row identifier",
			Required: true,
		},
		idColumn: &cli.StringFlag{
			Name:  "id-column",
			Usage: "root identifier column, overrides config (default: id)",
		},
	}
}

func (f RootFlags) Set() []cli.Flag {
	return []cli.Flag{
		f.table,
		f.id,
		f.idColumn,
	}
}

func (f RootFlags) Root(ctx *cli.Context, cnf *AppConfig) query.Root {
	root := query.Root{
		Table:    f.table.Get(ctx),
		IDColumn: cnf.IDColumn,
		ID:       f.id.Get(ctx),
	}
	if col := f.idColumn.Get(ctx); col != "" {
		root.IDColumn = col
	}
	return root
}

// compilePlans строит граф по схеме и планы запросов для корневой строки.
func compilePlans(
	log *zap.Logger,
	s *schema.Schema,
	root query.Root,
) (*schema.Graph, []query.Plan, error) {
	if suspicious, fingerprint := query.CheckValue(root.ID); suspicious {
		log.Warn("root id looks like sql injection, it will be escaped",
			zap.String("id", root.ID),
			zap.String("fingerprint", fingerprint))
	}

	g, err := schema.NewGraph(s)
	if err != nil {
		return nil, nil, xerrors.Errorf("build relationship graph: %w", err)
	}
	log.Debug("graph built",
		zap.Int("tables", g.Len()),
		zap.Int("relations", len(s.Relations)))

	plans, err := query.Compile(g, root)
	if err != nil {
		var uErr *schema.UnknownTableError
		if errors.As(err, &uErr) {
			return nil, nil, xerrors.Errorf("root table %q not found in schema %q: %w", root.Table, s.Name, err)
		}
		return nil, nil, xerrors.Errorf("compile queries: %w", err)
	}
	log.Info("queries compiled",
		zap.String("root", root.Table),
		zap.Int("tables", len(plans)))

	return g, plans, nil
}
