package units

import (
	"fmt"
	"regexp"
	"sort"
	"sync"

	"github.com/rs/zerolog/log"
)

// validSymbol matches symbols the unit string parser can tokenize.
//
//nolint:gochecknoglobals // Compiled once, read-only.
var validSymbol = regexp.MustCompile(`^\w+$`)

// Registry holds every registered BaseUnit and Unit.
//
// Reads (Resolve, Exists, listings) are safe from many goroutines. Registration
// takes an exclusive lock, so custom units may be added after bootstrap while
// readers are active.
type Registry struct {
	mu        sync.RWMutex
	bases     map[string]*BaseUnit
	qualities map[Quality]*BaseUnit
	units     map[string]*Unit
}

// NewRegistry returns an empty registry. Use NewSI for one populated with the
// built-in catalog.
func NewRegistry() *Registry {
	return &Registry{
		bases:     make(map[string]*BaseUnit),
		qualities: make(map[Quality]*BaseUnit),
		units:     make(map[string]*Unit),
	}
}

// RegisterBaseUnit registers the base unit for quality.
//
// Returns ErrDuplicateQuality if quality already has a base unit and
// ErrDuplicateSymbol if symbol is taken by any base unit or unit.
func (r *Registry) RegisterBaseUnit(symbol, name string, quality Quality) (*BaseUnit, error) {
	if !validSymbol.MatchString(symbol) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidSymbol, symbol)
	}
	if quality == "" {
		return nil, fmt.Errorf("%w: base unit %q has no quality", ErrInvalidSymbol, symbol)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if existing, ok := r.qualities[quality]; ok {
		return nil, fmt.Errorf("%w: %q (already %q)", ErrDuplicateQuality, quality, existing.symbol)
	}
	if r.takenLocked(symbol) {
		return nil, fmt.Errorf("%w: %q", ErrDuplicateSymbol, symbol)
	}

	b := &BaseUnit{symbol: symbol, name: name, quality: quality}
	r.bases[symbol] = b
	r.qualities[quality] = b
	return b, nil
}

// RegisterUnit registers a unit defined relative to the base unit baseSymbol.
//
// Returns ErrUnknownBaseUnit if baseSymbol is not a registered base unit,
// ErrDuplicateSymbol if symbol collides with any registered symbol and
// ErrInvalidConversion if conv is malformed.
func (r *Registry) RegisterUnit(symbol, name, baseSymbol string, conv Conversion) (*Unit, error) {
	u, err := r.addUnit(symbol, name, baseSymbol, conv)
	if err != nil {
		return nil, err
	}

	log.Debug().
		Str("component", "units").
		Str("symbol", symbol).
		Str("base", baseSymbol).
		Msg("registered unit")
	return u, nil
}

// addUnit is RegisterUnit without logging; the built-in catalog uses it.
func (r *Registry) addUnit(symbol, name, baseSymbol string, conv Conversion) (*Unit, error) {
	if !validSymbol.MatchString(symbol) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidSymbol, symbol)
	}
	if err := conv.Err(); err != nil {
		return nil, fmt.Errorf("unit %q: %w", symbol, err)
	}
	if conv.toBase == nil || conv.fromBase == nil {
		return nil, fmt.Errorf("%w: unit %q has no conversion", ErrInvalidConversion, symbol)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	base, ok := r.bases[baseSymbol]
	if !ok {
		return nil, fmt.Errorf("%w: %q (for unit %q)", ErrUnknownBaseUnit, baseSymbol, symbol)
	}
	if r.takenLocked(symbol) {
		return nil, fmt.Errorf("%w: %q", ErrDuplicateSymbol, symbol)
	}

	u := &Unit{symbol: symbol, name: name, base: base, conv: conv}
	r.units[symbol] = u
	return u, nil
}

func (r *Registry) takenLocked(symbol string) bool {
	_, isBase := r.bases[symbol]
	_, isUnit := r.units[symbol]
	return isBase || isUnit
}

// Resolve returns the measure registered under symbol. Derived units are
// searched first, then base units. Returns ErrUnitNotFound if neither exists.
func (r *Registry) Resolve(symbol string) (Measure, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if u, ok := r.units[symbol]; ok {
		return u, nil
	}
	if b, ok := r.bases[symbol]; ok {
		return b, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnitNotFound, symbol)
}

// BaseUnit returns the base unit registered under symbol.
func (r *Registry) BaseUnit(symbol string) (*BaseUnit, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if b, ok := r.bases[symbol]; ok {
		return b, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownBaseUnit, symbol)
}

// BaseUnitFor returns the base unit of quality.
func (r *Registry) BaseUnitFor(quality Quality) (*BaseUnit, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	b, ok := r.qualities[quality]
	return b, ok
}

// BaseUnitExists reports whether symbol names a base unit.
func (r *Registry) BaseUnitExists(symbol string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.bases[symbol]
	return ok
}

// Exists reports whether symbol names a base unit or a unit.
func (r *Registry) Exists(symbol string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.takenLocked(symbol)
}

// BaseUnits returns every base unit sorted by symbol.
func (r *Registry) BaseUnits() []*BaseUnit {
	r.mu.RLock()
	out := make([]*BaseUnit, 0, len(r.bases))
	for _, b := range r.bases {
		out = append(out, b)
	}
	r.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool { return out[i].symbol < out[j].symbol })
	return out
}

// Units returns every registered measure, base units included, grouped by
// quality and sorted by symbol within a quality. Each quality's base unit
// comes first.
func (r *Registry) Units() []Measure {
	r.mu.RLock()
	out := make([]Measure, 0, len(r.bases)+len(r.units))
	for _, b := range r.bases {
		out = append(out, b)
	}
	for _, u := range r.units {
		out = append(out, u)
	}
	r.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.Quality() != b.Quality() {
			return a.Quality() < b.Quality()
		}
		if a.IsBase() != b.IsBase() {
			return a.IsBase()
		}
		return a.Symbol() < b.Symbol()
	})
	return out
}
