package formflow

import (
	"io/fs"

	"github.com/goliatone/go-formflow/pkg/renderers/vanilla"
)

// RuntimeAssetsFS exposes the browser assets the vanilla renderer's
// markup expects: the default stylesheet and the runtime script that
// auto-submits choice changes and moves focus to reported errors.
//
// Typical mount:
//
//	mux.Handle("/assets/",
//	  http.StripPrefix("/assets/",
//	    http.FileServerFS(formflow.RuntimeAssetsFS()),
//	  ),
//	)
func RuntimeAssetsFS() fs.FS {
	return vanilla.AssetsFS()
}
