// Package trash moves files to the platform trash.
package trash

import "github.com/Bios-Marcel/wastebasket/v2"

// System trashes through the desktop trash (freedesktop.org trash on
// Linux, Finder on macOS, the recycle bin on Windows).
type System struct{}

// Trash moves path to the platform trash. It never hard-deletes.
func (System) Trash(path string) error {
	return wastebasket.Trash(path)
}
