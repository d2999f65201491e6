package library

// Track is a catalog entry. Required fields are plain values; optional
// fields are pointers (or nil slices) so that absence survives a round trip.
type Track struct {
	Size         int64   `json:"size"`
	Duration     float64 `json:"duration"`
	Bitrate      float64 `json:"bitrate"`
	SampleRate   float64 `json:"sampleRate"`
	File         string  `json:"file"`         // relative to Paths.TracksDir
	DateModified int64   `json:"dateModified"`
	DateAdded    int64   `json:"dateAdded"`

	Name         *string  `json:"name,omitempty"`
	ImportedFrom *string  `json:"importedFrom,omitempty"`
	OriginalID   *string  `json:"originalId,omitempty"`
	Artist       *string  `json:"artist,omitempty"`
	Composer     *string  `json:"composer,omitempty"`
	SortName     *string  `json:"sortName,omitempty"`
	SortArtist   *string  `json:"sortArtist,omitempty"`
	SortComposer *string  `json:"sortComposer,omitempty"`
	Genre        *string  `json:"genre,omitempty"`
	Rating       *uint8   `json:"rating,omitempty"`
	Year         *int16   `json:"year,omitempty"`
	BPM          *float64 `json:"bpm,omitempty"`
	Comments     *string  `json:"comments,omitempty"`
	Grouping     *string  `json:"grouping,omitempty"`
	Liked        *bool    `json:"liked,omitempty"`
	Disliked     *bool    `json:"disliked,omitempty"`
	Disabled     *bool    `json:"disabled,omitempty"`
	Compilation  *bool    `json:"compilation,omitempty"`

	AlbumName       *string `json:"albumName,omitempty"`
	AlbumArtist     *string `json:"albumArtist,omitempty"`
	SortAlbumName   *string `json:"sortAlbumName,omitempty"`
	SortAlbumArtist *string `json:"sortAlbumArtist,omitempty"`
	TrackNum        *int16  `json:"trackNum,omitempty"`
	TrackCount      *int16  `json:"trackCount,omitempty"`
	DiscNum         *int16  `json:"discNum,omitempty"`
	DiscCount       *int16  `json:"discCount,omitempty"`

	DateImported  *int64        `json:"dateImported,omitempty"`
	PlayCount     *int32        `json:"playCount,omitempty"`
	Plays         []int64       `json:"plays,omitempty"`
	PlaysImported []CountObject `json:"playsImported,omitempty"`
	SkipCount     *int32        `json:"skipCount,omitempty"`
	Skips         []int64       `json:"skips,omitempty"`
	SkipsImported []CountObject `json:"skipsImported,omitempty"`
	Volume        *uint8        `json:"volume,omitempty"`
}

// CountObject is an aggregated play or skip count carried over from an
// external library, spread over [FromDate, ToDate] (milliseconds).
type CountObject struct {
	Count    int64 `json:"count"`
	FromDate int64 `json:"fromDate"`
	ToDate   int64 `json:"toDate"`
}

// DisplayName returns the track name, or the file name when the track has none.
func (t *Track) DisplayName() string {
	if t.Name != nil && *t.Name != "" {
		return *t.Name
	}
	return t.File
}

// StrPtr returns nil for an empty string, otherwise a pointer to a copy of s.
func StrPtr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// StrValue dereferences p, returning "" for nil.
func StrValue(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}
