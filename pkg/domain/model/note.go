package model

// NoteFile is a date-stamped file discovered in the notes directory.
// DateKey is the portion of the filename before the first dot and is used
// for both sorting and display.
type NoteFile struct {
	Path    string
	DateKey string
}
