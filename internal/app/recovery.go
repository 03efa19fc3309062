package app

import (
	"runtime/debug"
)

// recoverScreen converts a panic inside a page into ErrInternal.
func (a *App) recoverScreen(name string, err *error) {
	if rec := recover(); rec != nil {
		a.logger.Error("panic recovered",
			"error", rec,
			"screen", name,
			"stack", string(debug.Stack()),
		)
		*err = ErrInternal
	}
}
