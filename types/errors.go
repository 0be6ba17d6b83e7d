package types

import "github.com/rotisserie/eris"

// ErrMalformedInput marks structural decode failures: a broken top-level
// envelope or an absence record of the wrong shape. Free-text lesson
// entries never produce it, they degrade instead. Match with errors.Is.
var ErrMalformedInput = eris.New("malformed input")
