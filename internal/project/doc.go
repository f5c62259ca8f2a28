// Package project stores an editing timeline in a SQLite database and serves
// it through the timeline.Host contract.
//
// A project holds one timeline with a frame rate, ordered tracks grouped by
// kind, ordered elements per track, and a queue of render jobs. Elements carry
// an optional text sub-resource; elements created without one are never
// numbered by the synchronizer.
//
// Open takes an advisory lock next to the database file, so only one process
// edits a project at a time. A missing database, a held lock, or a schema from
// another version all surface as timeline.ErrUnavailable.
package project
