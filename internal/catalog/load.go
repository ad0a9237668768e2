// internal/catalog/load.go
//
// Catalog loading. The raw data is JSON, either embedded in the binary
// (assets package) or read from a file pointed at by CATALOG_FILE.

package catalog

import "encoding/json"

// LoadError wraps a failure to read or parse catalog data.
type LoadError struct {
	Source string
	Err    error
}

func (e *LoadError) Error() string {
	return "catalog: load " + e.Source + ": " + e.Err.Error()
}

func (e *LoadError) Unwrap() error { return e.Err }

// Parse decodes raw JSON catalog data into entries. Entries are returned
// unfiltered; callers run Filter before use.
func Parse(source string, data []byte) ([]Entry, error) {
	var entries []Entry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, &LoadError{Source: source, Err: err}
	}
	return entries, nil
}
