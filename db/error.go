package db

import (
	"fmt"
	"strings"

	"github.com/davecgh/go-spew/spew"
)

// Error ошибка выполнения запроса вместе с текстом запроса и аргументами.
type Error struct {
	Err     error
	Message string
	// Таблица, для которой выполнялась выгрузка. Пусто для запросов к каталогу.
	Table string

	Query string
	Args  []any
}

func (e Error) Error() string {
	if e.Table != "" {
		return fmt.Sprintf("%s %q: %v", e.Message, e.Table, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Message, e.Err)
}

func (e Error) Unwrap() error { return e.Err }

// Pretty печатает запрос и значения плейсхолдеров $1..$N рядом с ним.
func (e Error) Pretty() string {
	var b strings.Builder
	b.WriteString(e.Error())
	b.WriteString("\nquery:\n")
	b.WriteString(e.Query)
	b.WriteString("\n===\n")
	if len(e.Args) == 0 {
		b.WriteString("no args\n")
	}
	for idx, arg := range e.Args {
		fmt.Fprintf(&b, "$%d = %s", idx+1, spew.Sdump(arg))
	}
	return b.String()
}
