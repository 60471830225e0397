package quantity

// constError is an immutable error type for sentinel errors.
type constError string

func (e constError) Error() string { return string(e) }

// ErrInvalidQuantity indicates text that does not start with a number.
// Unit errors are reported with the sentinels of the units package.
var ErrInvalidQuantity = constError("invalid quantity")
