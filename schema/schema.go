package schema

import (
	"fmt"
)

// Schema отражает набор таблиц и внешних ключей одной схемы базы данных.
type Schema struct {
	// Имя схемы, например public
	Name string `json:"name,omitempty"`
	// Таблицы в порядке, в котором их вернула интроспекция
	Tables []Table `json:"tables,omitempty"`
	// Все внешние ключи между таблицами схемы, по одной записи на пару колонок
	Relations []Relation `json:"relations,omitempty"`
}

// Table описывает таблицу базы данных.
type Table struct {
	// имя таблицы, уникальное в пределах схемы
	Name string `json:"name"`
	// имена колонок в порядке attnum
	Columns []string `json:"columns,omitempty"`
}

func (t *Table) String() string { return t.Name }

// HasColumn сообщает, есть ли у таблицы колонка с таким именем.
func (t *Table) HasColumn(name string) bool {
	for _, col := range t.Columns {
		if col == name {
			return true
		}
	}
	return false
}

// Relation описывает одну пару колонок внешнего ключа:
// table_schema.table_name.column_name -> foreign_table_schema.foreign_table_name.foreign_column_name
// Составной ключ даёт несколько Relation между одной парой таблиц.
type Relation struct {
	TableSchema string `json:"table_schema,omitempty"`
	TableName   string `json:"table_name"`
	ColumnName  string `json:"column_name"`

	ForeignTableSchema string `json:"foreign_table_schema,omitempty"`
	ForeignTableName   string `json:"foreign_table_name"`
	ForeignColumnName  string `json:"foreign_column_name"`
}

func (r Relation) String() string {
	return fmt.Sprintf("%s.%s -> %s.%s",
		qualify(r.TableSchema, r.TableName), r.ColumnName,
		qualify(r.ForeignTableSchema, r.ForeignTableName), r.ForeignColumnName,
	)
}

// IsSelfRef сообщает, ссылается ли таблица сама на себя.
func (r Relation) IsSelfRef() bool { return r.TableName == r.ForeignTableName }

func qualify(schema, name string) string {
	if schema == "" {
		return name
	}
	return schema + "." + name
}

// Table возвращает таблицу по имени.
func (s *Schema) Table(name string) (*Table, bool) {
	for idx := range s.Tables {
		if s.Tables[idx].Name == name {
			return &s.Tables[idx], true
		}
	}
	return nil, false
}

// Validate проверяет, что схема не пуста, имена таблиц уникальны
// и каждый внешний ключ ссылается на известные таблицы.
// Ошибки те же, что у NewGraph: ErrEmptySchema, ErrDuplicateTable
// и *UnknownTableError с внешним ключом, на котором споткнулась проверка.
func (s *Schema) Validate() error {
	_, err := NewGraph(s)
	return err
}
