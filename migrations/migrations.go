// Package migrations embeds the warehouse DDL, one file per driver.
package migrations

import (
	"embed"
	"fmt"
	"strings"

	"github.com/jmehdipour/credit-insights/internal/repository"
)

//go:embed *.sql
var files embed.FS

// Statements returns the DDL for driver with {{table}} replaced, split into
// single statements (the ClickHouse driver rejects multi-statement execs).
func Statements(driver, table string) ([]string, error) {
	if err := repository.ValidateTableName(table); err != nil {
		return nil, err
	}
	b, err := files.ReadFile(driver + ".sql")
	if err != nil {
		return nil, fmt.Errorf("no migrations for driver %q", driver)
	}
	body := strings.ReplaceAll(string(b), "{{table}}", table)

	var out []string
	for _, stmt := range strings.Split(body, ";") {
		if s := strings.TrimSpace(stmt); s != "" {
			out = append(out, s)
		}
	}
	return out, nil
}
