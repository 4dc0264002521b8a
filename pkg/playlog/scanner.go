package playlog

// DatasetScanner discovers the JSON data files of a dataset directory tree.
// Implementations must be safe for concurrent use by multiple goroutines.
type DatasetScanner interface {
	// ScanDataset recursively scans dataPath/song_data and dataPath/log_data
	// and returns the discovered .json file paths in lexical order.
	// Returns an error wrapping ErrDataPathNotFound when dataPath does not exist.
	ScanDataset(dataPath string) (DatasetFiles, error)
}
