// Package migrations содержит SQL-схему для драйвера postgres.
package migrations

import "embed"

// FS встроенные миграции; применяются по возрастанию имени файла.
//
//go:embed *.sql
var FS embed.FS
