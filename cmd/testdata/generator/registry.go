package generator

import (
	"fmt"
	"maps"
	"slices"
)

// Registry maps generator names to generator factory functions
// We use factory functions to allow parameterization (e.g., Stations)
var Registry = map[string]func() Generator{
	"measurements": func() Generator { return &MeasurementsGenerator{} },
	"longkeys":     func() Generator { return &LongKeysGenerator{KeyLen: 64 << 10} },
}

// Get returns a generator by name
func Get(name string) (Generator, error) {
	factory, exists := Registry[name]
	if !exists {
		return nil, fmt.Errorf("unknown generator: %s", name)
	}
	return factory(), nil
}

// List returns all available generator names in sorted order
func List() []string {
	return slices.Sorted(maps.Keys(Registry))
}

// SetStations updates the station count for the measurements generator
func SetStations(count int) {
	Registry["measurements"] = func() Generator { return &MeasurementsGenerator{Stations: count} }
}
