/*
Package pyson provides an idiomatic Go interface for parsing and encoding
pyson, a minimal line-oriented serialization format. The API is designed to
be familiar to Go developers, closely mirroring the standard `encoding/json`
package where the formats overlap.

# The format

A pyson document is plain text: one entry per line, each entry three
colon-separated fields.

	<name>:<type>:<content>

Only the first two colons are structural, so content may itself contain
colons. The type tag is one of int, float, str or list; list content joins
its elements with the literal delimiter "(*)". Empty lines are ignored, and
names must be unique within a document.

	score:int:42
	ratio:float:0.5
	title:str:hello: world
	tags:list:go(*)parser(*)text

The package offers two workflows depending on the use case:

1. Data-Oriented Decoding and Encoding

For the common task of converting pyson data into Go structs and maps (and
vice versa), the Marshal and Unmarshal functions provide a simple and
direct API.

Example of unmarshaling into a struct:

	var data = []byte("name:str:pyson\nversion:int:1")

	type Config struct {
		Name    string `pyson:"name"`
		Version int    `pyson:"version"`
	}

	var cfg Config
	if err := pyson.Unmarshal(data, &cfg); err != nil {
		// handle error
	}
	// cfg is now populated with {Name: "pyson", Version: 1}

2. Document Manipulation

For tooling that needs to inspect or edit documents entry by entry,
ParseDocument returns an ordered Document of NamedValues that can be
modified and encoded back to text.

	doc, err := pyson.ParseDocument(data)
	if err != nil {
		// handle error
	}
	if nv := doc.Get("version"); nv != nil {
		v, _ := pyson.NewValue(2)
		nv.SetValue(v)
	}
	out := doc.Encode()

Customization is available via struct field tags (e.g. `pyson:"key,omitempty"`)
and by implementing the pyson.Marshaler and pyson.Unmarshaler interfaces.

# Limitations

The format has no escaping mechanism, which makes a few corner cases
unrepresentable rather than merely awkward:

  - A string or list element containing "(*)" or a newline encodes
    verbatim and will not survive a round trip.
  - A name containing a colon shifts the field boundaries on re-parse.
  - An empty list encodes to empty content, which re-parses as a list of
    one empty string.
  - Integral floats have no distinct representation: 5.0 on the wire
    parses as the integer 5.

Callers who need those shapes should escape their data before it reaches
this package.
*/
package pyson
