// Package history stores the dashboard activity log in a local SQLite
// database. Every load, create, update and delete is recorded with its
// outcome and duration.
package history
