// Package etl turns raw dataset files into star-schema rows and drives
// the load run.
//
// Song metadata files populate the songs and artists dimensions. Activity
// log files populate the users and time dimensions and the songplays fact
// table, with played songs resolved against the already-loaded dimensions.
//
// Records are processed one at a time in file order. A record missing its
// primary key or failing to parse is skipped and counted; a database error
// aborts the run.
package etl
