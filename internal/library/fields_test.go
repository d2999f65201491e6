package library

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFieldTable_EveryFieldResolves(t *testing.T) {
	tr := &Track{}
	for _, name := range FieldNames() {
		t.Run(name, func(t *testing.T) {
			f := MustField(name)
			assert.Equal(t, name, f.Name)
			// Absent values resolve to the zero value of their kind.
			switch {
			case f.Kind == KindText:
				assert.Empty(t, f.Text(tr))
			case f.Kind == KindFloat:
				assert.Zero(t, f.Float(tr))
			case f.Kind.IsInteger():
				assert.Zero(t, f.Int(tr))
			case f.Kind == KindBool:
				assert.False(t, f.Bool(tr))
			default:
				t.Fatalf("unhandled kind %s", f.Kind)
			}
		})
	}
}

func TestFieldTable_Kinds(t *testing.T) {
	tests := []struct {
		name string
		want Kind
	}{
		{"name", KindText},
		{"file", KindText},
		{"duration", KindFloat},
		{"bpm", KindFloat},
		{"size", KindInt64},
		{"dateAdded", KindInt64},
		{"playCount", KindInt32},
		{"year", KindInt16},
		{"trackNum", KindInt16},
		{"rating", KindUint8},
		{"volume", KindUint8},
		{"liked", KindBool},
		{"compilation", KindBool},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, ok := LookupField(tt.name)
			require.True(t, ok)
			assert.Equal(t, tt.want, f.Kind)
		})
	}
}

func TestFieldAccessors(t *testing.T) {
	rating := uint8(80)
	year := int16(2001)
	liked := true
	tr := &Track{Size: 42, Duration: 1.5, Name: StrPtr("Song"), Rating: &rating, Year: &year, Liked: &liked}

	assert.Equal(t, "Song", MustField("name").Text(tr))
	assert.Equal(t, 1.5, MustField("duration").Float(tr))
	assert.Equal(t, int64(42), MustField("size").Int(tr))
	assert.Equal(t, int64(80), MustField("rating").Int(tr))
	assert.Equal(t, int64(2001), MustField("year").Int(tr))
	assert.True(t, MustField("liked").Bool(tr))
}

func TestMustField_UnknownKeyPanics(t *testing.T) {
	assert.PanicsWithValue(t, `library: field type not found for "nope"`, func() {
		MustField("nope")
	})
	_, ok := LookupField("index")
	assert.False(t, ok)
}

func TestField_KindMismatchPanics(t *testing.T) {
	assert.Panics(t, func() { MustField("name").Float(&Track{}) })
	assert.Panics(t, func() { MustField("size").Text(&Track{}) })
	assert.Panics(t, func() { MustField("liked").Int(&Track{}) })
}
