// Copyright 2026 The watorperf Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package db

import (
	"database/sql"
	"fmt"
	"strconv"
	"strings"

	"github.com/watorsim/watorperf/benchlog"
)

// Query searches for samples matching the given query string.
//
// The query string is a space-separated list of terms; double quotes
// and backslash escapes group spaces. Each term restricts one column:
// "upload:20260115.2" selects one upload's samples, "threads:4"
// selects samples at one thread count. Multiple terms are ANDed.
// Samples come back in upload order, then record order within each
// upload.
//
// The returned Query must be closed after use.
func (db *DB) Query(q string) *Query {
	qr := &Query{q: q}

	var conds []string
	var args []interface{}
	for _, word := range splitQueryWords(q) {
		sepIndex := strings.Index(word, ":")
		if sepIndex < 0 {
			qr.err = fmt.Errorf("query term %q is missing a colon", word)
			return qr
		}
		name, value := word[:sepIndex], word[sepIndex+1:]
		switch name {
		case "upload":
			conds = append(conds, "UploadID = ?")
			args = append(args, value)
		case "threads":
			n, err := strconv.Atoi(value)
			if err != nil {
				qr.err = fmt.Errorf("query term %q: %v", word, err)
				return qr
			}
			conds = append(conds, "Threads = ?")
			args = append(args, n)
		default:
			qr.err = fmt.Errorf("unknown query term %q", word)
			return qr
		}
	}

	query := "SELECT UploadID, RecordID, Threads, TimeMs FROM Samples"
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY UploadID, RecordID"

	qr.rows, qr.err = db.sql.Query(query, args...)
	return qr
}

// splitQueryWords splits q into words. Words are space-separated;
// double quotes group spaces into one word, and a backslash escapes
// the next character.
func splitQueryWords(q string) []string {
	var words []string
	word := make([]byte, len(q))
	w := 0
	quoting := false
	for r := 0; r < len(q); r++ {
		switch c := q[r]; {
		case c == '"' && quoting:
			quoting = false
		case quoting:
			if c == '\\' {
				r++
			}
			if r < len(q) {
				word[w] = q[r]
				w++
			}
		case c == '"':
			quoting = true
		case c == ' ', c == '\t':
			if w > 0 {
				words = append(words, string(word[:w]))
			}
			w = 0
		case c == '\\':
			r++
			fallthrough
		default:
			if r < len(q) {
				word[w] = q[r]
				w++
			}
		}
	}
	if w > 0 {
		words = append(words, string(word[:w]))
	}
	return words
}

// A Query iterates over matched samples, following the scanner idiom.
type Query struct {
	q      string
	rows   *sql.Rows
	sample benchlog.Sample

	// from is the upload the current sample belongs to.
	from string

	err error
}

// Next advances the query to the next matching sample and reports
// whether there is one. It must be called before the first use of
// Sample.
func (q *Query) Next() bool {
	if q.err != nil || q.rows == nil {
		return false
	}
	if !q.rows.Next() {
		return false
	}
	var recordid int64
	q.err = q.rows.Scan(&q.from, &recordid, &q.sample.Threads, &q.sample.TimeMs)
	return q.err == nil
}

// Sample returns the most recent sample matched by a call to Next.
// The Query reuses it; it is valid until the next call to Next.
func (q *Query) Sample() *benchlog.Sample {
	return &q.sample
}

// Upload returns the ID of the upload the current sample came from.
func (q *Query) Upload() string {
	return q.from
}

// Err returns the first error encountered by the query, if any. It
// should be consulted once Next returns false.
func (q *Query) Err() error {
	if q.rows != nil {
		if err := q.rows.Err(); err != nil {
			return err
		}
	}
	return q.err
}

// Close frees the resources associated with the query. The Query may
// not be used afterward.
func (q *Query) Close() error {
	if q.rows != nil {
		return q.rows.Close()
	}
	return q.err
}
