package export

import (
	"encoding/csv"
	"io"
	"strconv"
	"strings"

	mapset "github.com/deckarep/golang-set/v2"
	"github.com/jackc/pgx/v5/pgconn"
)

// rowSource часть pgx.Rows, нужная для записи CSV.
type rowSource interface {
	Next() bool
	RawValues() [][]byte
	FieldDescriptions() []pgconn.FieldDescription
	Err() error
}

// CSVConverter пишет строки результата запроса в CSV.
// Значения берутся в текстовом формате PostgreSQL, NULL заменяется на NullValue.
type CSVConverter struct {
	NullValue string
}

func (c *CSVConverter) Header(fields []pgconn.FieldDescription) []string {
	res := make([]string, 0, len(fields))
	for _, field := range fields {
		res = append(res, field.Name)
	}
	return res
}

func (c *CSVConverter) Record(values [][]byte) []string {
	res := make([]string, 0, len(values))
	for _, value := range values {
		if value == nil {
			res = append(res, c.NullValue)
			continue
		}
		res = append(res, string(value))
	}
	return res
}

// WriteRows пишет заголовок и уникальные строки, возвращает их число без заголовка.
// Цепочка соединений один-ко-многим и обратно повторяет строки целевой таблицы,
// повторы пропускаются.
func (c *CSVConverter) WriteRows(w io.Writer, rows rowSource) (int, error) {
	cw := csv.NewWriter(w)
	seen := mapset.NewThreadUnsafeSet[string]()

	var n int
	header := false
	for rows.Next() {
		if !header {
			if err := cw.Write(c.Header(rows.FieldDescriptions())); err != nil {
				return n, err
			}
			header = true
		}
		values := rows.RawValues()
		if !seen.Add(recordKey(values)) {
			continue
		}
		if err := cw.Write(c.Record(values)); err != nil {
			return n, err
		}
		n++
	}
	if err := rows.Err(); err != nil {
		return n, err
	}
	// для пустого результата описания полей доступны только после Next
	if !header {
		if err := cw.Write(c.Header(rows.FieldDescriptions())); err != nil {
			return n, err
		}
	}

	cw.Flush()
	return n, cw.Error()
}

// recordKey кодирует значения с длиной, NULL отличается от пустой строки.
func recordKey(values [][]byte) string {
	var b strings.Builder
	for _, value := range values {
		if value == nil {
			b.WriteString("-1:")
			continue
		}
		b.WriteString(strconv.Itoa(len(value)))
		b.WriteByte(':')
		b.Write(value)
	}
	return b.String()
}
