package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"os"

	"github.com/jackc/pgx/v5"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
	"golang.org/x/xerrors"

	"github.com/jharrilim/pg-export/db"
	"github.com/jharrilim/pg-export/parse"
	"github.com/jharrilim/pg-export/schema"
)

type SchemaLoaderFlags struct {
	dumpPath   *cli.StringFlag
	schemaName *cli.StringFlag
}

func NewSchemaLoaderFlags() SchemaLoaderFlags {
	return SchemaLoaderFlags{
		dumpPath: &cli.StringFlag{
			Name:    "input",
			Aliases: []string{"i"},
			Usage:   "-i schema.json, - for stdin",
			Action: func(ctx *cli.Context, fpath string) error {
				if fpath == stdinFileName {
					return nil
				}
				fileInfo, err := os.Stat(fpath)
				if os.IsNotExist(err) {
					return xerrors.Errorf("dump file %q does not exist", fpath)
				}
				if err != nil {
					return xerrors.Errorf("stat dump file: %w", err)
				}
				if fileInfo.IsDir() {
					return xerrors.Errorf("%q is a directory, expected file", fpath)
				}
				return nil
			},
		},
		schemaName: &cli.StringFlag{
			Name:    "schema",
			Aliases: []string{"s"},
			Usage:   "database schema, overrides config",
		},
	}
}

func (f SchemaLoaderFlags) Set() []cli.Flag {
	return []cli.Flag{
		f.dumpPath,
		f.schemaName,
	}
}

type SchemaLoader struct {
	BaseCommand

	conn *pgx.Conn
}

func NewSchemaLoader(
	ctx *cli.Context,
	base BaseCommand,
	flags flags,
	sflags SchemaLoaderFlags,
	needConn bool,
) (SchemaLoader, error) {
	s := SchemaLoader{
		BaseCommand: base,
	}

	err := s.Init(ctx, flags, sflags, needConn)
	return s, err
}

const stdinFileName = "-"

// Init подключается к базе, если схема не задана файлом или соединение нужно для выгрузки.
func (p *SchemaLoader) Init(ctx *cli.Context, flags flags, sflags SchemaLoaderFlags, needConn bool) error {
	if name := sflags.schemaName.Get(ctx); name != "" {
		p.cnf.Parser.Schema = name
	}
	if needConn || sflags.dumpPath.Get(ctx) == "" {
		conn, err := p.connectDB(ctx, flags.debug.Get(ctx))
		if err != nil {
			return cli.Exit(err, 3)
		}
		p.conn = conn
	}
	return nil
}

func (p *SchemaLoader) Cleanup(ctx *cli.Context) error {
	if p.conn == nil {
		return nil
	}
	if err := p.conn.Close(ctx.Context); err != nil {
		return xerrors.Errorf("close pgx conn: %w", err)
	}
	return nil
}

func (p *SchemaLoader) GetSchema(
	ctx *cli.Context,
	sflags SchemaLoaderFlags,
) (s *schema.Schema, err error) {
	if filename := sflags.dumpPath.Get(ctx); filename != "" {
		return p.getSchemaFromFile(filename)
	}
	p.log.Info("schema dump path is not specified")
	return p.parseDB(ctx)
}

func (p *SchemaLoader) getSchemaFromFile(filename string) (s *schema.Schema, err error) {
	p.log.Debug("load schema from file", zap.String("filename", filename))
	defer func() {
		p.log.Info("schema loaded", zap.Error(err), zap.String("filename", filename))
	}()
	var in io.Reader
	if filename == stdinFileName {
		in = os.Stdin
	} else {
		fileData, err := os.ReadFile(filename)
		if err != nil {
			return nil, xerrors.Errorf("read schema dump file: %w", err)
		}
		in = bytes.NewReader(fileData)
	}
	if err := json.NewDecoder(in).Decode(&s); err != nil {
		return nil, xerrors.Errorf("decode schema: %w", err)
	}
	if s == nil {
		return nil, xerrors.Errorf("decode schema: %w", schema.ErrEmptySchema)
	}
	if s.Name == "" {
		s.Name = p.cnf.Parser.Schema
	}
	return s, nil
}

func (p *SchemaLoader) parseDB(ctx *cli.Context) (s *schema.Schema, err error) {
	if p.conn == nil {
		p.log.Fatal("connection is nil")
	}
	p.log.Debug("parse schema", zap.String("schema", p.cnf.Parser.Schema))
	defer func() {
		p.log.Info("schema parsed", zap.Error(err))
	}()

	parser := parse.NewParser(p.conn, p.log)
	s, err = parser.LoadSchema(ctx.Context, p.cnf.Parser)
	if err != nil {
		var pErr db.Error
		if errors.As(err, &pErr) {
			p.log.Error(pErr.Pretty())
		}
		return nil, xerrors.Errorf("parse schema: %w", err)
	}

	return s, nil
}
