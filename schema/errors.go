package schema

import (
	"errors"
	"fmt"
)

var (
	ErrEmptySchema    = errors.New("schema has no tables")
	ErrDuplicateTable = errors.New("duplicate table")
	ErrUnknownTable   = errors.New("unknown table")
	ErrCycle          = errors.New("the graph contains a cycle")
)

// UnknownTableError возвращается, когда имя таблицы не найдено в схеме.
// Relation заполнен, если на неизвестную таблицу ссылается внешний ключ.
type UnknownTableError struct {
	Table    string
	Relation *Relation
}

func (e *UnknownTableError) Error() string {
	if e.Relation != nil {
		return fmt.Sprintf("%v %q referenced by relation %s", ErrUnknownTable, e.Table, e.Relation)
	}
	return fmt.Sprintf("%v %q", ErrUnknownTable, e.Table)
}

func (e *UnknownTableError) Unwrap() error { return ErrUnknownTable }
