// Package errmsg provides consistent error formatting for user-facing messages.
package errmsg

import "fmt"

// Op represents an operation that can fail.
type Op string

// Operation constants - grouped by domain.
const (
	// Library operations
	OpLibraryLoad     Op = "load library"
	OpLibrarySave     Op = "save library"
	OpLibraryValidate Op = "validate library"

	// Tracklist operations
	OpListOpen   Op = "open list"
	OpListSort   Op = "sort list"
	OpListRename Op = "rename list"
	OpListMove   Op = "move list"
	OpListDelete Op = "delete list"

	// Playlist operations
	OpPlaylistCreate   Op = "create playlist"
	OpPlaylistAddTrack Op = "add track to playlist"
	OpPlaylistRemove   Op = "remove track from playlist"
	OpPlaylistReorder  Op = "reorder playlist tracks"

	// Folder operations
	OpFolderCreate Op = "create folder"
	OpFolderShow   Op = "update folder visibility"

	// View options
	OpColumnsSet Op = "update columns"

	// Track operations
	OpImportFile    Op = "import file"
	OpTrackDelete   Op = "delete track"
	OpHistoryRecord Op = "record history"

	// Session
	OpSessionLoad Op = "restore session"

	// Initialization
	OpInitialize Op = "initialize application"
)

// Format creates a user-friendly error message.
func Format(op Op, err error) string {
	if err == nil {
		return ""
	}
	return fmt.Sprintf("Failed to %s: %v", op, err)
}

// FormatWith creates an error message with additional context.
func FormatWith(op Op, context string, err error) string {
	if err == nil {
		return ""
	}
	if context == "" {
		return Format(op, err)
	}
	return fmt.Sprintf("Failed to %s '%s': %v", op, context, err)
}
