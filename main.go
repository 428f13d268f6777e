package main

import (
	"fmt"
	"os"

	"github.com/jackc/pgx/v5"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/xerrors"

	"github.com/jharrilim/pg-export/db"
)

func newLogger(debug bool) (*zap.Logger, error) {
	lc := zap.NewDevelopmentConfig()
	lc.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	lc.DisableStacktrace = true
	if debug {
		lc.Level.SetLevel(zap.DebugLevel)
	} else {
		lc.Level.SetLevel(zap.InfoLevel)
	}
	return lc.Build()
}

type flags struct {
	configPath *cli.StringFlag
	dbConn     *cli.StringFlag
	debug      *cli.BoolFlag
}

func (f *flags) Set() []cli.Flag {
	return []cli.Flag{
		f.configPath,
		f.dbConn,
		f.debug,
	}
}

func main() {
	f := flags{
		configPath: &cli.StringFlag{
			Name:      "config",
			Value:     defaultConfigPath,
			Usage:     "config file path",
			TakesFile: true,
			Aliases:   []string{"c"},
		},
		dbConn: &cli.StringFlag{
			Name:    "dbconn",
			Usage:   "postgres connection string, overrides config",
			EnvVars: []string{"PGEXPORT_DBCONN"},
		},
		debug: &cli.BoolFlag{
			Name:   "debug",
			Value:  false,
			Usage:  "show debug information",
			Hidden: true,
		},
	}

	app := &cli.App{
		Name:        "pg-export",
		Usage:       "export all rows related to one row of a table",
		Description: "follows foreign keys in both directions from the root row and exports every reachable table",
		Flags:       f.Set(),
		Commands: []*cli.Command{
			NewParseCommand(f).Command(),
			NewPlanCommand(f).Command(),
			NewExportCommand(f).Command(),
		},
		ExitErrHandler: func(ctx *cli.Context, err error) {
			if err == nil {
				return
			}
			code := 1
			if exitErr, ok := err.(cli.ExitCoder); ok {
				code = exitErr.ExitCode()
			}
			if f.debug.Get(ctx) {
				fmt.Fprintf(os.Stderr, "%+v\n", err)
			} else {
				fmt.Fprintf(os.Stderr, "%v\n", err)
			}
			os.Exit(code)
		},
		EnableBashCompletion: true,
	}
	if err := app.Run(os.Args); err != nil {
		println(err.Error())
		os.Exit(2)
	}
}

type BaseCommand struct {
	log *zap.Logger
	cnf *AppConfig
}

func NewBase(ctx *cli.Context, f flags) (BaseCommand, error) {
	var empty BaseCommand
	log, err := newLogger(f.debug.Get(ctx))
	if err != nil {
		return empty, xerrors.Errorf("create logger: %w", err)
	}
	zap.ReplaceGlobals(log)
	cnf, err := ReadConfig(f.configPath.Get(ctx), ctx.IsSet(f.configPath.Name))
	if err != nil {
		return empty, xerrors.Errorf("get config: %w", err)
	}
	if conn := f.dbConn.Get(ctx); conn != "" {
		cnf.DB.Conn = conn
	}
	log.Debug("config readed")

	return BaseCommand{
		log: log,
		cnf: cnf,
	}, nil
}

func (b *BaseCommand) connectDB(ctx *cli.Context, debug bool) (*pgx.Conn, error) {
	if b.cnf.DB.Conn == "" {
		return nil, xerrors.New("database connection string is not set")
	}
	if debug {
		b.cnf.DB.SetDebug(true)
	}
	conn, err := db.NewDB(ctx.Context, b.log, b.cnf.DB)
	if err != nil {
		return nil, xerrors.Errorf("create database connection: %w", err)
	}
	b.log.Debug("connected to database")

	return conn, nil
}
