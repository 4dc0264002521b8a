// Package store provides the PostgreSQL implementation of the star
// schema: the songs, artists, users and time dimensions plus the
// songplays fact table.
//
// All writes are single-row statements with ON CONFLICT handling chosen
// per table: immutable dimensions ignore a duplicate key, the users
// dimension overwrites the subscription level, and the fact table
// ignores a duplicate songplay id. That makes a full load safe to run
// any number of times.
package store
