package main

import (
	"errors"
	"io/fs"
	"os"
	"strings"

	"golang.org/x/xerrors"
	"gopkg.in/yaml.v3"

	"github.com/jharrilim/pg-export/db"
	"github.com/jharrilim/pg-export/parse"
	"github.com/jharrilim/pg-export/query"
)

const defaultConfigPath = "pg-export.yml"

type FileConfig struct {
	DBConn    string `yaml:"dbconn"`
	Schema    string `yaml:"schema"`
	IDColumn  string `yaml:"id_column"`
	NullValue string `yaml:"null_value"`
}

type AppConfig struct {
	DB     db.Config
	Parser parse.Config

	// Колонка идентификатора корневой таблицы по умолчанию
	IDColumn string
	// Замена NULL в CSV
	NullValue string
}

func (fc FileConfig) Build() (*AppConfig, error) {
	schemaName := strings.TrimSpace(fc.Schema)
	if schemaName == "" {
		schemaName = parse.DefaultSchema
	}
	idColumn := strings.TrimSpace(fc.IDColumn)
	if idColumn == "" {
		idColumn = query.DefaultIDColumn
	}
	dbConfig := db.Config{
		Conn: fc.DBConn,
	}
	if err := dbConfig.Validate(); err != nil {
		return nil, xerrors.Errorf("invalid dbconn: %w", err)
	}

	return &AppConfig{
		DB: dbConfig,
		Parser: parse.Config{
			Schema: schemaName,
		},
		IDColumn:  idColumn,
		NullValue: fc.NullValue,
	}, nil
}

// ReadConfig читает конфиг из файла. Если файла нет и он не был указан явно,
// используются значения по умолчанию.
func ReadConfig(confPath string, required bool) (*AppConfig, error) {
	var fc FileConfig
	file, err := os.ReadFile(confPath)
	switch {
	case errors.Is(err, fs.ErrNotExist) && !required:
		return fc.Build()
	case err != nil:
		return nil, xerrors.Errorf("read config file: %w", err)
	}

	if err := yaml.Unmarshal(file, &fc); err != nil {
		return nil, xerrors.Errorf("parse config: %w", err)
	}

	c, err := fc.Build()
	if err != nil {
		return nil, xerrors.Errorf("process config data: %w", err)
	}
	return c, nil
}
