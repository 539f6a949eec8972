package dispatch

import (
	"fmt"
	"plugin"
)

// LoadReserver loads a booking authority implementation from a Go plugin.
// The plugin must export NewCourtReserver, a func() CourtReserver. The
// actual booking engine ships separately from this repository.
func LoadReserver(path string) (CourtReserver, error) {
	plug, err := plugin.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening reserver plugin: %w", err)
	}
	sym, err := plug.Lookup("NewCourtReserver")
	if err != nil {
		return nil, fmt.Errorf("reserver plugin is missing NewCourtReserver: %w", err)
	}
	constructor, ok := sym.(func() CourtReserver)
	if !ok {
		return nil, fmt.Errorf("NewCourtReserver has unexpected type %T", sym)
	}
	return constructor(), nil
}
