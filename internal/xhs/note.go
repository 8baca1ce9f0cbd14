package xhs

import "errors"

// ErrNotImplemented marks the note-parsing surface, which is declared but
// not yet built.
var ErrNotImplemented = errors.New("xhs: note parsing not implemented")

// NoteType classifies a note by its media content.
type NoteType int

const (
	NoteTypeText NoteType = iota
	NoteTypeVideo
	NoteTypeImages
	NoteTypeMixed
)

// Author is the note author's public profile.
type Author struct {
	Nickname string `json:"nickname"`
	UserID   string `json:"userId"`
	Avatar   string `json:"avatar"`
}

// Video is the playable media attached to a video note.
type Video struct {
	Duration int64  `json:"duration"`
	Cover    string `json:"cover"`
	PlayURL  string `json:"play_url"`
}

// Article is a parsed note.
type Article struct {
	Title    string   `json:"title"`
	Desc     string   `json:"desc"`
	Author   Author   `json:"author"`
	Images   []string `json:"images"`
	Video    *Video   `json:"video,omitempty"`
	NoteType NoteType `json:"-"`
}

// ParseFromText extracts the note URL from share-text and parses the note.
// Parsing is not implemented yet; only the URL extraction runs.
func ParseFromText(text string) (*Article, error) {
	if _, err := ExtractURL(text); err != nil {
		return nil, err
	}
	return nil, ErrNotImplemented
}

// ParseFromURL parses a note directly from its URL. Not implemented.
func ParseFromURL(url string) (*Article, error) {
	return nil, ErrNotImplemented
}
