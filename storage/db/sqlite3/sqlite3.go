// Copyright 2026 The watorperf Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package sqlite3 provides the sqlite3 driver for the archive
// database. It must be imported (for its side effects) for OpenSQL to
// work with the "sqlite3" driver.
package sqlite3

import (
	"database/sql"

	_ "github.com/mattn/go-sqlite3"

	"github.com/watorsim/watorperf/storage/db"
)

func init() {
	db.RegisterOpenHook("sqlite3", func(d *sql.DB) error {
		// The schema's ON DELETE CASCADE only works with
		// foreign keys switched on.
		_, err := d.Exec("PRAGMA foreign_keys = ON;")
		return err
	})
}
