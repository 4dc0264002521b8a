// Package scanner discovers the JSON files of a dataset directory tree.
//
// A dataset root contains two subtrees: song_data holds one song record
// per file, log_data holds newline-delimited activity events. The scanner
// walks both trees and returns the .json file paths in lexical order so a
// load run processes files deterministically.
package scanner
