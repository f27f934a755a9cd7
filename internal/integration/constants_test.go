package integration_test

const (
	seedFile = "testdata/catalog.sql"

	// Seeded directors, see testdata/catalog.sql.
	MannID       = 1
	VilleneuveID = 2
	GerwigID     = 3

	SeededMovies = 5
)

// pngHeader is enough for content sniffing to report image/png.
var pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01\x08\x06\x00\x00\x00")
