// Package seqdb persists decoding runs to SQLite: run statistics plus the
// decoded sequences, keyed by run ID so repeated decodes of the same volume
// under different parameters can be compared later.
//
// Schema is managed by embedded golang-migrate migrations; Open applies any
// pending migrations before returning. The package depends on decode's
// result types, never the reverse.
package seqdb
