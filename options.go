package pyson

// options collects the decoding configuration assembled from Options.
type options struct {
	disallowUnknown bool
}

// An Option configures Unmarshal or a Decoder.
type Option func(*options) error

// DisallowUnknownNames returns an Option that makes decoding into a struct
// fail when the document contains an entry whose name matches no field,
// instead of silently skipping the entry.
func DisallowUnknownNames() Option {
	return func(o *options) error {
		o.disallowUnknown = true
		return nil
	}
}
