package main

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/BetulAktoprak/task-management-system/internal/platform/postgres"
)

// printMigrations writes one line per embedded migration.
func printMigrations(w io.Writer) error {
	migrations, err := postgres.Migrations()
	if err != nil {
		return err
	}
	for _, m := range migrations {
		if _, err := fmt.Fprintf(w, "%05d  %s\n", m.Version, filepath.Base(m.Source)); err != nil {
			return err
		}
	}
	return nil
}
