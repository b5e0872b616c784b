package embedded

import (
	"embed"
	"io/fs"
)

// Static assets served under /static
//
//go:embed static
var staticFiles embed.FS

// Static returns the static asset tree rooted at static/
func Static() fs.FS {
	sub, err := fs.Sub(staticFiles, "static")
	if err != nil {
		// The directory is embedded at build time, so this cannot fail
		panic(err)
	}
	return sub
}
