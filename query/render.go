package query

import (
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/lib/pq"
)

// Renderer превращает Plan в текст SQL. Имена таблиц и колонок всегда
// экранируются как идентификаторы, значение идентификатора - как литерал.
type Renderer struct {
	// Схема, которой квалифицируются таблицы. Пустая - без квалификации.
	Schema string
}

// SQL возвращает запрос со значением фильтра, подставленным литералом.
func (r Renderer) SQL(p Plan) string {
	return r.render(p, pq.QuoteLiteral(p.Filter.Value))
}

// Query возвращает запрос с параметром $1 и его значение.
func (r Renderer) Query(p Plan) (string, []any) {
	return r.render(p, "$1"), []any{p.Filter.Value}
}

func (r Renderer) render(p Plan, value string) string {
	var b strings.Builder

	b.WriteString("SELECT ")
	if len(p.Columns) == 0 {
		b.WriteString(pgx.Identifier{p.Table}.Sanitize())
		b.WriteString(".*")
	}
	for idx, col := range p.Columns {
		if idx > 0 {
			b.WriteString(", ")
		}
		b.WriteString(column(p.Table, col))
	}

	b.WriteString(" FROM ")
	b.WriteString(r.table(p.Filter.Table))

	for _, step := range p.Joins {
		b.WriteString(" JOIN ")
		b.WriteString(r.table(step.To))
		b.WriteString(" ON ")
		b.WriteString(column(step.From, step.LeftColumn))
		b.WriteString(" = ")
		b.WriteString(column(step.To, step.RightColumn))
	}

	b.WriteString(" WHERE ")
	b.WriteString(column(p.Filter.Table, p.Filter.Column))
	b.WriteString(" = ")
	b.WriteString(value)

	return b.String()
}

func (r Renderer) table(name string) string {
	if r.Schema == "" {
		return pgx.Identifier{name}.Sanitize()
	}
	return pgx.Identifier{r.Schema, name}.Sanitize()
}

func column(table, name string) string {
	return pgx.Identifier{table, name}.Sanitize()
}
