// Package assets provides the static file store served under /static.
package assets

import (
	"fmt"
	"io/fs"

	"github.com/labstack/echo/v4"
	"github.com/nfrund/taskboard/web"
	"github.com/spf13/afero"
)

// Prefix is the URL path the store is mounted on.
const Prefix = "/static"

// New returns the static file store. When dir is set the files come from disk
// (read-only), otherwise from the assets embedded in the binary.
func New(dir string) (afero.Fs, error) {
	if dir == "" {
		sub, err := fs.Sub(web.FS, "static")
		if err != nil {
			return nil, fmt.Errorf("embedded static assets: %w", err)
		}
		return &afero.FromIOFS{FS: sub}, nil
	}

	osFs := afero.NewOsFs()
	ok, err := afero.DirExists(osFs, dir)
	if err != nil {
		return nil, fmt.Errorf("stat static dir: %w", err)
	}
	if !ok {
		return nil, fmt.Errorf("static dir %q does not exist", dir)
	}
	return afero.NewReadOnlyFs(afero.NewBasePathFs(osFs, dir)), nil
}

// Mount serves store under Prefix.
func Mount(e *echo.Echo, store afero.Fs) {
	e.StaticFS(Prefix, afero.NewIOFS(store))
}
