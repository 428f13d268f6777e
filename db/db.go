package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/tracelog"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const applicationName = "pg-export"

type Config struct {
	Conn  string
	debug bool
}

func (c *Config) SetDebug(debug bool) { c.debug = debug }

// Validate проверяет строку подключения, не подключаясь к базе.
// Пустая строка допустима: схема может быть загружена из файла.
func (c Config) Validate() error {
	if c.Conn == "" {
		return nil
	}
	_, err := parseConfig(c)
	return err
}

// Executor подмножество *pgx.Conn, которого достаточно для чтения схемы и данных.
type Executor interface {
	Query(ctx context.Context, query string, args ...any) (pgx.Rows, error)
}

var _ Executor = (*pgx.Conn)(nil)

// NewDB открывает соединение. Сессия только на чтение: экспорт ничего не пишет в базу.
func NewDB(
	ctx context.Context,
	logger *zap.Logger,
	cfg Config,
) (*pgx.Conn, error) {
	cnf, err := parseConfig(cfg)
	if err != nil {
		return nil, err
	}

	if cfg.debug {
		cnf.Tracer = &tracelog.TraceLog{
			Logger:   tracelog.LoggerFunc(queryMessageLog(logger)),
			LogLevel: tracelog.LogLevelInfo,
		}
	}

	c, err := pgx.ConnectConfig(ctx, cnf)
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}
	return c, nil
}

func parseConfig(cfg Config) (*pgx.ConnConfig, error) {
	cnf, err := pgx.ParseConfig(cfg.Conn)
	if err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if cnf.RuntimeParams == nil {
		cnf.RuntimeParams = make(map[string]string)
	}
	if _, ok := cnf.RuntimeParams["application_name"]; !ok {
		cnf.RuntimeParams["application_name"] = applicationName
	}
	cnf.RuntimeParams["default_transaction_read_only"] = "on"
	return cnf, nil
}

func queryMessageLog(log *zap.Logger) func(
	ctx context.Context,
	level tracelog.LogLevel,
	msg string,
	data map[string]any,
) {
	return func(ctx context.Context, level tracelog.LogLevel, msg string, data map[string]any) {
		if msg == "Prepare" {
			return
		}
		var rawSQL *string
		fields := make([]zapcore.Field, 0, len(data))
		for k, v := range data {
			if tag, ok := v.(pgconn.CommandTag); ok {
				v = tag.String()
			}
			f := zap.Any(k, v)
			if f.Key == "sql" && f.Type == zapcore.StringType {
				rawSQL = &f.String
				continue
			}
			fields = append(fields, f)
		}

		var lvl zapcore.Level
		switch level {
		default:
			fallthrough
		case tracelog.LogLevelNone, tracelog.LogLevelTrace, tracelog.LogLevelDebug:
			lvl = zapcore.DebugLevel
		case tracelog.LogLevelInfo:
			lvl = zapcore.InfoLevel
		case tracelog.LogLevelWarn:
			lvl = zapcore.WarnLevel
		case tracelog.LogLevelError:
			lvl = zapcore.ErrorLevel
		}
		if rawSQL != nil {
			msg = msg + "\n" + *rawSQL
		}
		if ce := log.Check(lvl, msg); ce != nil {
			ce.Write(fields...)
		}
	}
}
