package main

import (
	"io"

	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
	"golang.org/x/xerrors"

	"github.com/jharrilim/pg-export/query"
)

type planFlags struct {
	flags
	schema     SchemaLoaderFlags
	root       RootFlags
	outputPath *cli.StringFlag
}

func (f planFlags) Set() []cli.Flag {
	res := append(f.flags.Set(), f.schema.Set()...)
	res = append(res, f.root.Set()...)
	return append(res, f.outputPath)
}

type PlanCommand struct {
	flags planFlags
	BaseCommand

	schemaLoader SchemaLoader
}

func NewPlanCommand(f flags) *PlanCommand {
	return &PlanCommand{
		flags: planFlags{
			flags:  f,
			schema: NewSchemaLoaderFlags(),
			root:   NewRootFlags(),
			outputPath: &cli.StringFlag{
				Name:      "output",
				Value:     stdinFileName,
				Usage:     "-o export.sql, - for stdout",
				TakesFile: true,
				Aliases:   []string{"o"},
			},
		},
	}
}

func (p *PlanCommand) Command() *cli.Command {
	return &cli.Command{
		Name:        "plan",
		Usage:       "print export queries without running them",
		Description: "compiles one SELECT per table reachable from the root row",
		Flags:       p.flags.Set(),
		Before:      p.Init,
		Action:      p.Plan,
		After:       p.Cleanup,
	}
}

func (p *PlanCommand) Init(ctx *cli.Context) error {
	base, err := NewBase(ctx, p.flags.flags)
	if err != nil {
		return cli.Exit(err, 2)
	}
	p.BaseCommand = base
	loader, err := NewSchemaLoader(ctx, base, p.flags.flags, p.flags.schema, false)
	if err != nil {
		return err
	}
	p.schemaLoader = loader
	return nil
}

func (p *PlanCommand) Cleanup(ctx *cli.Context) error {
	return p.schemaLoader.Cleanup(ctx)
}

func (p *PlanCommand) Plan(ctx *cli.Context) error {
	s, err := p.schemaLoader.GetSchema(ctx, p.flags.schema)
	if err != nil {
		return xerrors.Errorf("get schema: %w", err)
	}

	root := p.flags.root.Root(ctx, p.cnf)
	_, plans, err := compilePlans(p.log, s, root)
	if err != nil {
		return err
	}

	output := p.flags.outputPath.Get(ctx)
	p.log.Debug("write queries", zap.String("output", output))
	renderer := query.Renderer{Schema: s.Name}
	return dumpToFile(output, func(w io.Writer) error {
		return query.WriteScript(w, renderer, root, plans)
	})
}
