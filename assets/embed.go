// assets/embed.go
//
// Embedded default catalog so the server runs with no external data
// files configured. CATALOG_FILE overrides it at startup.

package assets

import (
	"embed"

	"github.com/kongdle/go-server/internal/catalog"
)

//go:embed locations.json
var fs embed.FS

// Locations parses the embedded catalog data into entries (unfiltered).
func Locations() ([]catalog.Entry, error) {
	raw, err := fs.ReadFile("locations.json")
	if err != nil {
		return nil, &catalog.LoadError{Source: "embedded locations.json", Err: err}
	}
	return catalog.Parse("embedded locations.json", raw)
}
