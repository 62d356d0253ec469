package pyson_test

import (
	"testing"

	"github.com/ProbablyComputingSquid/pyson-go"
	"github.com/stretchr/testify/require"
)

func TestParseDocument(t *testing.T) {
	t.Run("Entries keep their source order", func(t *testing.T) {
		doc, err := pyson.ParseDocument([]byte("a:int:1\nb:int:2"))
		require.NoError(t, err)
		require.Len(t, doc.Entries, 2)
		require.Equal(t, "a", doc.Entries[0].Name())
		require.Equal(t, int64(1), doc.Entries[0].Value().Int())
		require.Equal(t, "b", doc.Entries[1].Name())
		require.Equal(t, int64(2), doc.Entries[1].Value().Int())
	})

	t.Run("Empty lines are skipped", func(t *testing.T) {
		doc, err := pyson.ParseDocument([]byte("\n\na:int:1\n\nb:str:x\n"))
		require.NoError(t, err)
		require.Len(t, doc.Entries, 2)
		require.Equal(t, "a", doc.Entries[0].Name())
		require.Equal(t, "b", doc.Entries[1].Name())
	})

	t.Run("Empty input yields an empty document", func(t *testing.T) {
		for _, input := range []string{"", "\n", "\n\n"} {
			doc, err := pyson.ParseDocument([]byte(input))
			require.NoError(t, err, "input %q", input)
			require.Empty(t, doc.Entries)
		}
	})

	t.Run("Duplicate names are rejected", func(t *testing.T) {
		_, err := pyson.ParseDocument([]byte("a:int:1\na:int:2"))
		require.Error(t, err)
		require.ErrorIs(t, err, pyson.ErrDuplicateName)
		require.Contains(t, err.Error(), `"a"`)
	})

	t.Run("The first invalid line aborts the parse", func(t *testing.T) {
		_, err := pyson.ParseDocument([]byte("a:int:1\nbroken\nb:bogus:2"))
		require.Error(t, err)

		var entryErr *pyson.EntryError
		require.ErrorAs(t, err, &entryErr)
		require.Equal(t, 2, entryErr.Line)
		require.ErrorIs(t, err, pyson.ErrMalformedEntry)
	})

	t.Run("Line numbers count empty lines", func(t *testing.T) {
		_, err := pyson.ParseDocument([]byte("a:int:1\n\nbad line"))
		require.Error(t, err)

		var entryErr *pyson.EntryError
		require.ErrorAs(t, err, &entryErr)
		require.Equal(t, 3, entryErr.Line)
	})

	t.Run("Entry errors read as one message", func(t *testing.T) {
		_, err := pyson.ParseDocument([]byte("a:int:1\nb:int:oops"))
		require.Error(t, err)
		require.EqualError(t, err, `pyson: line 2: invalid number: "oops" is not a base-10 integer`)
	})
}

func TestParseDocumentMap(t *testing.T) {
	t.Run("Names map to their Values", func(t *testing.T) {
		m, err := pyson.ParseDocumentMap([]byte("a:int:1\nb:str:two\nc:list:x(*)y"))
		require.NoError(t, err)
		require.Len(t, m, 3)
		require.Equal(t, int64(1), m["a"].Int())
		require.Equal(t, "two", m["b"].Str())
		require.Equal(t, []string{"x", "y"}, m["c"].List())
	})

	t.Run("Same rules as ParseDocument", func(t *testing.T) {
		_, err := pyson.ParseDocumentMap([]byte("a:int:1\na:int:2"))
		require.ErrorIs(t, err, pyson.ErrDuplicateName)

		_, err = pyson.ParseDocumentMap([]byte("broken"))
		require.ErrorIs(t, err, pyson.ErrMalformedEntry)
	})

	t.Run("Empty input yields an empty map", func(t *testing.T) {
		m, err := pyson.ParseDocumentMap(nil)
		require.NoError(t, err)
		require.Empty(t, m)
	})
}

func TestDocument_Get(t *testing.T) {
	doc, err := pyson.ParseDocument([]byte("a:int:1\nb:str:x"))
	require.NoError(t, err)

	t.Run("Present name", func(t *testing.T) {
		nv := doc.Get("b")
		require.NotNil(t, nv)
		require.Equal(t, "x", nv.Value().Str())
	})

	t.Run("Absent name", func(t *testing.T) {
		require.Nil(t, doc.Get("missing"))
	})

	t.Run("Edits through Get are visible in the document", func(t *testing.T) {
		v, err := pyson.NewValue(99)
		require.NoError(t, err)
		require.NoError(t, doc.Get("a").SetValue(v))
		require.Equal(t, []byte("a:int:99\nb:str:x\n"), doc.Encode())
	})
}

func TestDocument_Encode(t *testing.T) {
	t.Run("One line per entry with a trailing newline", func(t *testing.T) {
		doc, err := pyson.ParseDocument([]byte("a:int:1\nb:str:x\n"))
		require.NoError(t, err)
		require.Equal(t, []byte("a:int:1\nb:str:x\n"), doc.Encode())
		require.Equal(t, "a:int:1\nb:str:x\n", doc.String())
	})

	t.Run("Empty document encodes to nil", func(t *testing.T) {
		doc, err := pyson.ParseDocument(nil)
		require.NoError(t, err)
		require.Nil(t, doc.Encode())
	})

	t.Run("Encoding canonicalizes the source", func(t *testing.T) {
		// Blank lines disappear, numbers lose their decoration, and an
		// integral float comes back as an int entry.
		src := []byte("\na:int:007\n\nf:float:5.0\n")
		doc, err := pyson.ParseDocument(src)
		require.NoError(t, err)
		require.Equal(t, []byte("a:int:7\nf:int:5\n"), doc.Encode())
	})

	t.Run("Canonical documents round-trip byte for byte", func(t *testing.T) {
		src := []byte("a:int:1\npi:float:3.14\ns:str:hello: world\nl:list:x(*)y(*)z\n")
		doc, err := pyson.ParseDocument(src)
		require.NoError(t, err)
		require.Equal(t, src, doc.Encode())
	})
}
