package date

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/matryer/is"
)

func TestParse(t *testing.T) {
	t.Run("canonical form", func(t *testing.T) {
		is := is.New(t)
		d, err := Parse("2024-05-01")
		is.NoErr(err)
		is.Equal(d.String(), "2024-05-01")
	})

	t.Run("unpadded input means the same date", func(t *testing.T) {
		is := is.New(t)
		padded, err := Parse("2024-02-01")
		is.NoErr(err)
		loose, err := Parse("2024-2-1")
		is.NoErr(err)
		is.True(padded.Equal(loose))
	})

	t.Run("empty string is the unset date", func(t *testing.T) {
		is := is.New(t)
		d, err := Parse("")
		is.NoErr(err)
		is.True(d.IsZero())
		is.Equal(d.String(), "")
	})

	t.Run("garbage fails", func(t *testing.T) {
		is := is.New(t)
		_, err := Parse("next tuesday-ish")
		is.Equal(err, ErrParsing)
	})
}

func TestDate_Compare(t *testing.T) {
	is := is.New(t)
	early := New(2024, time.February, 1)
	late := New(2024, time.December, 24)

	is.True(early.Before(late))
	is.True(!late.Before(early))
	is.Equal(early.Compare(late), -1)
	is.Equal(late.Compare(early), 1)
	is.Equal(early.Compare(New(2024, time.February, 1)), 0)
}

func TestDate_JSONRoundTrip(t *testing.T) {
	t.Run("set", func(t *testing.T) {
		is := is.New(t)
		d := New(2024, time.May, 1)
		bs, err := json.Marshal(d)
		is.NoErr(err)
		is.Equal(string(bs), `"2024-05-01"`)

		var got Date
		is.NoErr(json.Unmarshal(bs, &got))
		is.True(got.Equal(d))
	})

	t.Run("unset", func(t *testing.T) {
		is := is.New(t)
		bs, err := json.Marshal(Date{})
		is.NoErr(err)
		is.Equal(string(bs), `""`)

		var got Date
		is.NoErr(json.Unmarshal(bs, &got))
		is.True(got.IsZero())
	})

	t.Run("null reads as unset", func(t *testing.T) {
		is := is.New(t)
		var got Date
		is.NoErr(json.Unmarshal([]byte(`null`), &got))
		is.True(got.IsZero())
	})
}
