package query

import (
	libinjection "github.com/corazawaf/libinjection-go"
)

// CheckValue проверяет значение идентификатора на типичные SQL-инъекции.
// Значение экранируется в любом случае, результат нужен только для предупреждения.
func CheckValue(value string) (suspicious bool, fingerprint string) {
	isSQLi, fp := libinjection.IsSQLi(value)
	return isSQLi, string(fp)
}
