package codec

import "errors"

// Sentinel errors returned by Decode for malformed frames.
var (
	ErrShortRead = errors.New("codec: declared length exceeds limit")
	ErrBadType   = errors.New("codec: unrecognized message type")
	ErrBadUTF8   = errors.New("codec: payload is not valid UTF-8")
)
