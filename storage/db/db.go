// Copyright 2026 The watorperf Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package db provides the high-level database interface for the
// benchmark archive: an index of uploaded benchmark logs and the
// timing samples extracted from them.
package db

import (
	"bytes"
	"database/sql"
	"fmt"
	"strings"
	"text/template"
	"time"

	"golang.org/x/net/context"

	"github.com/watorsim/watorperf/benchlog"
)

// DB is a high-level interface to the archive database. It's safe for
// concurrent use by multiple goroutines.
type DB struct {
	sql *sql.DB // underlying database connection
	// prepared statements
	lastUpload   *sql.Stmt
	insertUpload *sql.Stmt
	insertSample *sql.Stmt
}

// OpenSQL creates a DB backed by a SQL database. The parameters are
// the same as the parameters for sql.Open. Only mysql and sqlite3 are
// explicitly supported; other database engines will receive MySQL
// query syntax which may or may not be compatible.
func OpenSQL(driverName, dataSourceName string) (*DB, error) {
	db, err := sql.Open(driverName, dataSourceName)
	if err != nil {
		return nil, err
	}
	if hook := openHooks[driverName]; hook != nil {
		if err := hook(db); err != nil {
			return nil, err
		}
	}
	d := &DB{sql: db}
	if err := d.createTables(driverName); err != nil {
		return nil, err
	}
	if err := d.prepareStatements(driverName); err != nil {
		return nil, err
	}
	return d, nil
}

var openHooks = make(map[string]func(*sql.DB) error)

// RegisterOpenHook registers a hook to be called after opening a connection to driverName.
// This is used by the sqlite3 package to register a ConnectHook.
// It must be called from an init function.
func RegisterOpenHook(driverName string, hook func(*sql.DB) error) {
	openHooks[driverName] = hook
}

// createTmpl is the template used to prepare the CREATE statements
// for the database. It is evaluated with . as a map containing one
// entry whose key is the driver name.
var createTmpl = template.Must(template.New("create").Parse(`
CREATE TABLE IF NOT EXISTS Uploads (
	UploadID VARCHAR(20) PRIMARY KEY,
	Day VARCHAR(8),
	Seq BIGINT UNSIGNED,
	UploadTime DATETIME{{if not .sqlite3}},
	Index (Day, Seq){{end}}
);
{{if .sqlite3}}
CREATE UNIQUE INDEX IF NOT EXISTS UploadDaySeq ON Uploads(Day, Seq);
{{end}}
CREATE TABLE IF NOT EXISTS Samples (
	UploadID VARCHAR(20),
	RecordID BIGINT UNSIGNED,
	Threads BIGINT UNSIGNED,
	TimeMs DOUBLE,
	PRIMARY KEY (UploadID, RecordID),
{{if not .sqlite3}}
	Index (Threads),
{{end}}
	FOREIGN KEY (UploadID) REFERENCES Uploads(UploadID) ON UPDATE CASCADE ON DELETE CASCADE
);
{{if .sqlite3}}
CREATE INDEX IF NOT EXISTS SampleThreads ON Samples(Threads);
{{end}}
`))

// createTables creates any missing tables on the connection in
// db.sql. driverName is the same driver name passed to sql.Open and
// is used to select the correct syntax.
func (db *DB) createTables(driverName string) error {
	var buf bytes.Buffer
	if err := createTmpl.Execute(&buf, map[string]bool{driverName: true}); err != nil {
		return err
	}
	for _, q := range strings.Split(buf.String(), ";") {
		if strings.TrimSpace(q) == "" {
			continue
		}
		if _, err := db.sql.Exec(q); err != nil {
			return fmt.Errorf("create table: %v", err)
		}
	}
	return nil
}

// prepareStatements calls db.sql.Prepare on reusable SQL statements.
func (db *DB) prepareStatements(driverName string) error {
	var err error
	db.lastUpload, err = db.sql.Prepare("SELECT Seq FROM Uploads WHERE Day = ? ORDER BY Seq DESC LIMIT 1")
	if err != nil {
		return err
	}
	db.insertUpload, err = db.sql.Prepare("INSERT INTO Uploads(UploadID, Day, Seq, UploadTime) VALUES (?, ?, ?, ?)")
	if err != nil {
		return err
	}
	db.insertSample, err = db.sql.Prepare("INSERT INTO Samples(UploadID, RecordID, Threads, TimeMs) VALUES (?, ?, ?, ?)")
	if err != nil {
		return err
	}
	return nil
}

// An Upload is a collection of samples that share an upload ID. The
// samples are staged in a transaction; nothing is visible to queries
// until Commit.
type Upload struct {
	// ID is the upload ID assigned to this upload, of the form
	// YYYYMMDD.n where n counts the day's uploads from 1.
	ID string

	// recordid is the index of the next sample to insert.
	recordid int64
	db       *DB
	tx       *sql.Tx
}

// now is the time source for upload IDs; replaced during testing.
var now = time.Now

// NewUpload starts a new upload and allocates its day-scoped
// sequential ID. All samples written to the Upload share that ID. The
// caller must finish with Commit or Abort.
func (db *DB) NewUpload(ctx context.Context) (*Upload, error) {
	day := now().UTC().Format("20060102")

	tx, err := db.sql.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer func() {
		if tx != nil {
			tx.Rollback()
		}
	}()

	var seq int64
	err = tx.Stmt(db.lastUpload).QueryRow(day).Scan(&seq)
	if err != nil && err != sql.ErrNoRows {
		return nil, err
	}
	seq++

	id := fmt.Sprintf("%s.%d", day, seq)
	stamp := now().UTC().Format("2006-01-02 15:04:05")
	if _, err := tx.Stmt(db.insertUpload).Exec(id, day, seq, stamp); err != nil {
		return nil, err
	}

	u := &Upload{ID: id, db: db, tx: tx}
	tx = nil
	return u, nil
}

// InsertSample stages one sample in the upload.
func (u *Upload) InsertSample(s *benchlog.Sample) error {
	if _, err := u.tx.Stmt(u.db.insertSample).Exec(u.ID, u.recordid, s.Threads, s.TimeMs); err != nil {
		return err
	}
	u.recordid++
	return nil
}

// Commit makes the upload and its samples visible to queries.
func (u *Upload) Commit() error {
	return u.tx.Commit()
}

// Abort abandons the upload. No samples are saved and the upload ID
// may be reused by a later upload.
func (u *Upload) Abort() error {
	return u.tx.Rollback()
}

// UploadInfo summarizes one stored upload for listings.
type UploadInfo struct {
	ID string
	// Time is the upload time as stored, "2006-01-02 15:04:05" UTC.
	Time string
	// Samples is the number of samples indexed under the upload.
	Samples int
}

// ListUploads returns the stored uploads, newest first, with their
// sample counts.
func (db *DB) ListUploads(ctx context.Context) ([]UploadInfo, error) {
	rows, err := db.sql.QueryContext(ctx, `
SELECT u.UploadID, u.UploadTime, COUNT(s.RecordID)
FROM Uploads u LEFT JOIN Samples s ON u.UploadID = s.UploadID
GROUP BY u.UploadID, u.UploadTime
ORDER BY u.Day DESC, u.Seq DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var uploads []UploadInfo
	for rows.Next() {
		var ui UploadInfo
		if err := rows.Scan(&ui.ID, &ui.Time, &ui.Samples); err != nil {
			return nil, err
		}
		uploads = append(uploads, ui)
	}
	return uploads, rows.Err()
}

// CountUploads returns the number of uploads in the database.
func (db *DB) CountUploads() (int, error) {
	var uploads int
	err := db.sql.QueryRow("SELECT COUNT(*) FROM Uploads").Scan(&uploads)
	return uploads, err
}

// Close closes the database connections, releasing any open resources.
func (db *DB) Close() error {
	for _, stmt := range []*sql.Stmt{db.lastUpload, db.insertUpload, db.insertSample} {
		if err := stmt.Close(); err != nil {
			return err
		}
	}
	return db.sql.Close()
}
