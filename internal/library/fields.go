package library

import "fmt"

// Kind is the scalar type a sortable track field resolves to.
type Kind int

const (
	KindText Kind = iota
	KindFloat
	KindInt64
	KindInt32
	KindInt16
	KindUint8
	KindBool
)

func (k Kind) String() string {
	switch k {
	case KindText:
		return "text"
	case KindFloat:
		return "float"
	case KindInt64:
		return "int64"
	case KindInt32:
		return "int32"
	case KindInt16:
		return "int16"
	case KindUint8:
		return "uint8"
	case KindBool:
		return "bool"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// IsInteger reports whether values of this kind compare as integers.
func (k Kind) IsInteger() bool {
	return k == KindInt64 || k == KindInt32 || k == KindInt16 || k == KindUint8
}

// Field resolves one named track field. Exactly one accessor is set,
// matching Kind.
type Field struct {
	Name    string
	Kind    Kind
	text    func(*Track) *string
	float   func(*Track) *float64
	integer func(*Track) (int64, bool)
	boolean func(*Track) *bool
}

type integer interface {
	~int16 | ~int32 | ~int64 | ~uint8
}

func optInt[T integer](p *T) (int64, bool) {
	if p == nil {
		return 0, false
	}
	return int64(*p), true
}

func req[T integer](v T) (int64, bool) { return int64(v), true }

func textField(get func(*Track) *string) Field { return Field{Kind: KindText, text: get} }

func floatField(get func(*Track) *float64) Field { return Field{Kind: KindFloat, float: get} }

func intField(k Kind, get func(*Track) (int64, bool)) Field {
	return Field{Kind: k, integer: get}
}

func boolField(get func(*Track) *bool) Field { return Field{Kind: KindBool, boolean: get} }

// fields is the sortable field table. Adding a sortable field is one entry here.
var fields = map[string]Field{
	"size":         intField(KindInt64, func(t *Track) (int64, bool) { return req(t.Size) }),
	"duration":     floatField(func(t *Track) *float64 { return &t.Duration }),
	"bitrate":      floatField(func(t *Track) *float64 { return &t.Bitrate }),
	"sampleRate":   floatField(func(t *Track) *float64 { return &t.SampleRate }),
	"file":         textField(func(t *Track) *string { return &t.File }),
	"dateModified": intField(KindInt64, func(t *Track) (int64, bool) { return req(t.DateModified) }),
	"dateAdded":    intField(KindInt64, func(t *Track) (int64, bool) { return req(t.DateAdded) }),
	"name":         textField(func(t *Track) *string { return t.Name }),
	"importedFrom": textField(func(t *Track) *string { return t.ImportedFrom }),
	"originalId":   textField(func(t *Track) *string { return t.OriginalID }),
	"artist":       textField(func(t *Track) *string { return t.Artist }),
	"composer":     textField(func(t *Track) *string { return t.Composer }),
	"sortName":     textField(func(t *Track) *string { return t.SortName }),
	"sortArtist":   textField(func(t *Track) *string { return t.SortArtist }),
	"sortComposer": textField(func(t *Track) *string { return t.SortComposer }),
	"genre":        textField(func(t *Track) *string { return t.Genre }),
	"rating":       intField(KindUint8, func(t *Track) (int64, bool) { return optInt(t.Rating) }),
	"year":         intField(KindInt16, func(t *Track) (int64, bool) { return optInt(t.Year) }),
	"bpm":          floatField(func(t *Track) *float64 { return t.BPM }),
	"comments":     textField(func(t *Track) *string { return t.Comments }),
	"grouping":     textField(func(t *Track) *string { return t.Grouping }),
	"liked":        boolField(func(t *Track) *bool { return t.Liked }),
	"disliked":     boolField(func(t *Track) *bool { return t.Disliked }),
	"disabled":     boolField(func(t *Track) *bool { return t.Disabled }),
	"compilation":  boolField(func(t *Track) *bool { return t.Compilation }),

	"albumName":       textField(func(t *Track) *string { return t.AlbumName }),
	"albumArtist":     textField(func(t *Track) *string { return t.AlbumArtist }),
	"sortAlbumName":   textField(func(t *Track) *string { return t.SortAlbumName }),
	"sortAlbumArtist": textField(func(t *Track) *string { return t.SortAlbumArtist }),
	"trackNum":        intField(KindInt16, func(t *Track) (int64, bool) { return optInt(t.TrackNum) }),
	"trackCount":      intField(KindInt16, func(t *Track) (int64, bool) { return optInt(t.TrackCount) }),
	"discNum":         intField(KindInt16, func(t *Track) (int64, bool) { return optInt(t.DiscNum) }),
	"discCount":       intField(KindInt16, func(t *Track) (int64, bool) { return optInt(t.DiscCount) }),
	"dateImported":    intField(KindInt64, func(t *Track) (int64, bool) { return optInt(t.DateImported) }),
	"playCount":       intField(KindInt32, func(t *Track) (int64, bool) { return optInt(t.PlayCount) }),
	"skipCount":       intField(KindInt32, func(t *Track) (int64, bool) { return optInt(t.SkipCount) }),
	"volume":          intField(KindUint8, func(t *Track) (int64, bool) { return optInt(t.Volume) }),
}

// LookupField returns the field registered under name.
func LookupField(name string) (Field, bool) {
	f, ok := fields[name]
	if !ok {
		return Field{}, false
	}
	f.Name = name
	return f, true
}

// MustField is LookupField for callers that only ever pass known keys.
// An unknown key is a programming error.
func MustField(name string) Field {
	f, ok := LookupField(name)
	if !ok {
		panic(fmt.Sprintf("library: field type not found for %q", name))
	}
	return f
}

// FieldNames returns every sortable field name.
func FieldNames() []string {
	names := make([]string, 0, len(fields))
	for name := range fields {
		names = append(names, name)
	}
	return names
}

func (f Field) mismatch(want Kind) string {
	return fmt.Sprintf("library: field %q is %s, not %s", f.Name, f.Kind, want)
}

// Text returns the text value, "" when absent.
func (f Field) Text(t *Track) string {
	if f.text == nil {
		panic(f.mismatch(KindText))
	}
	return StrValue(f.text(t))
}

// Float returns the float value, 0 when absent.
func (f Field) Float(t *Track) float64 {
	if f.float == nil {
		panic(f.mismatch(KindFloat))
	}
	if v := f.float(t); v != nil {
		return *v
	}
	return 0
}

// Int returns any integer-kind value widened to int64, 0 when absent.
func (f Field) Int(t *Track) int64 {
	if f.integer == nil {
		panic(f.mismatch(KindInt64))
	}
	v, _ := f.integer(t)
	return v
}

// Bool returns the boolean value, false when absent.
func (f Field) Bool(t *Track) bool {
	if f.boolean == nil {
		panic(f.mismatch(KindBool))
	}
	if v := f.boolean(t); v != nil {
		return *v
	}
	return false
}
