package main

import (
	"encoding/json"
	"errors"
	"io"
	"os"
	"path/filepath"

	"github.com/urfave/cli/v2"
	"golang.org/x/xerrors"

	"github.com/jharrilim/pg-export/schema"
)

type parseFlags struct {
	flags
	schema     SchemaLoaderFlags
	outputPath *cli.StringFlag
}

func (pf *parseFlags) Set() []cli.Flag {
	return append(pf.flags.Set(),
		pf.schema.schemaName,
		pf.outputPath,
	)
}

type parseCommand struct {
	pf parseFlags
	SchemaLoader
}

func NewParseCommand(f flags) *parseCommand {
	return &parseCommand{
		pf: parseFlags{
			flags:  f,
			schema: NewSchemaLoaderFlags(),
			outputPath: &cli.StringFlag{
				Name:      "output",
				Value:     "dump",
				Usage:     "output directory",
				TakesFile: true,
				Aliases:   []string{"o"},
			},
		},
	}
}

func (p *parseCommand) Command() *cli.Command {
	return &cli.Command{
		Name:        "parse",
		Usage:       "introspect schema and dump it",
		Description: "writes schema.json (input for plan/export -i) and graph.puml",
		Flags:       p.pf.Set(),
		Before:      p.init,
		Action:      p.run,
		After:       p.cleanup,
	}
}

func (p *parseCommand) init(ctx *cli.Context) error {
	base, err := NewBase(ctx, p.pf.flags)
	if err != nil {
		return cli.Exit(err, 2)
	}
	loader, err := NewSchemaLoader(ctx, base, p.pf.flags, p.pf.schema, true)
	if err != nil {
		return err
	}
	p.SchemaLoader = loader
	return nil
}

func (p *parseCommand) cleanup(ctx *cli.Context) error {
	return p.SchemaLoader.Cleanup(ctx)
}

func (p *parseCommand) run(ctx *cli.Context) error {
	s, err := p.parseDB(ctx)
	if err != nil {
		return err
	}

	g, err := schema.NewGraph(s)
	if err != nil {
		return xerrors.Errorf("build relationship graph: %w", err)
	}

	return p.dump(g, p.pf.outputPath.Get(ctx))
}

func (p *parseCommand) dump(g *schema.Graph, dumpPath string) error {
	slog := p.log.Sugar()

	if err := createDirIfNotExist(dumpPath); err != nil {
		return xerrors.Errorf("create dump dir: %w", err)
	}

	jsonDumpPath := filepath.Join(dumpPath, "schema.json")
	slog.Infof("dump schema to %q", jsonDumpPath)
	if err := dumpToFile(jsonDumpPath, func(w io.Writer) error {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(g.Schema())
	}); err != nil {
		return xerrors.Errorf("failed to dump json schema: %w", err)
	}

	graphDumpPath := filepath.Join(dumpPath, "graph.puml")
	slog.Infof("dump graph to %q", graphDumpPath)
	if err := dumpToFile(graphDumpPath, g.Dump); err != nil {
		return xerrors.Errorf("failed to dump graph: %w", err)
	}

	return nil
}

func createDirIfNotExist(path string) error {
	fileInfo, err := os.Stat(path)
	if os.IsNotExist(err) {
		// Папка не существует, создаем ее
		err = os.MkdirAll(path, 0o755) //nolint:gomnd // dir mode
		if err != nil {
			return err
		}
	} else if err != nil {
		return err
	} else if !fileInfo.IsDir() {
		// Это не папка, возвращаем ошибку
		return &os.PathError{Op: "mkdir", Path: path, Err: os.ErrExist}
	}
	return nil
}

// dumpToFile пишет в файл или в stdout, если fileName равен "-".
func dumpToFile(fileName string, f func(w io.Writer) error) (err error) {
	if fileName == stdinFileName {
		return f(os.Stdout)
	}
	file, err := os.Create(fileName)
	if err != nil {
		return xerrors.Errorf("create output file for dump: %w", err)
	}
	defer func() {
		err = errors.Join(err, file.Close())
	}()

	return f(file)
}
