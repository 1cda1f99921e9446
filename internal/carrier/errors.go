package carrier

import "errors"

var (
	ErrNoSymbols       = errors.New("carrier: no embedded symbols found")
	ErrInvalidEncoding = errors.New("carrier: payload is not valid UTF-8 text")
	ErrLikelyWrongKey  = errors.New("carrier: decrypted payload looks like garbage (wrong or missing key?)")
	ErrUnknownCarrier  = errors.New("carrier: unknown carrier")
	ErrNoHostWords     = errors.New("carrier: host text has no words to format")
	ErrHostHasSymbols  = errors.New("carrier: host text already contains carrier symbols")
)
