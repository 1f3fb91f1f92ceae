package models

// Attachment is the metadata row for one uploaded file. The bytes live in
// the object store at the location FileURL points to; FileNameShortcut is an
// optional display override.
type Attachment struct {
	ID               int64   `json:"id"`
	TodoID           int64   `json:"todo_id"`
	FileURL          string  `json:"file_url"`
	FileName         string  `json:"file_name"`
	FileNameShortcut *string `json:"file_name_shortcut"`
}
