package units

// constError is an immutable error type for sentinel errors.
// It implements the error interface and provides compile-time safety.
type constError string

func (e constError) Error() string { return string(e) }

// Registry and algebra errors. These are sentinel errors that can be
// compared with errors.Is(); call sites wrap them with the offending symbol.
var (
	// ErrDuplicateQuality indicates a second base unit for an already-covered quality.
	ErrDuplicateQuality = constError("base unit already defined for quality")

	// ErrDuplicateSymbol indicates a symbol already used by a base unit or unit.
	ErrDuplicateSymbol = constError("unit symbol already defined")

	// ErrUnknownBaseUnit indicates a unit referencing an unregistered base unit.
	ErrUnknownBaseUnit = constError("base unit not defined")

	// ErrUnitNotFound indicates a symbol that resolves to nothing.
	ErrUnitNotFound = constError("unit not defined")

	// ErrInvalidSymbol indicates a symbol the unit parser cannot tokenize, or a
	// base unit registered without a quality.
	ErrInvalidSymbol = constError("invalid unit symbol")

	// ErrInvalidConversion indicates a malformed conversion rule (zero, NaN or
	// infinite factor, or a missing function).
	ErrInvalidConversion = constError("invalid unit conversion")

	// ErrInvalidExponent indicates an exponent outside ±MaxExponent, or one
	// too large to represent.
	ErrInvalidExponent = constError("unit exponent out of range")

	// ErrTransformationSum indicates two transformations whose endpoints do not chain.
	ErrTransformationSum = constError("incompatible transformation summands")

	// ErrIncompatibleUnits indicates an operation between mismatched unit sets.
	ErrIncompatibleUnits = constError("incompatible units")

	// ErrIncomparableUnits indicates an ordering comparison between unlike units.
	ErrIncomparableUnits = constError("only quantities of like units can be compared")
)
