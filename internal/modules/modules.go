// Package modules defines the fixed set of learning modules offered by the app.
package modules

// The five learning modules. Progress and analytics records always carry an
// entry for each of them.
const (
	Alphabet  = "alphabet"
	Counting  = "counting"
	Sentences = "sentences"
	Math      = "math"
	Images    = "images"
)

var all = []string{Alphabet, Counting, Sentences, Math, Images}

// All returns the module names in their canonical order.
func All() []string {
	names := make([]string, len(all))
	copy(names, all)
	return names
}

// Valid reports whether name is one of the known modules.
func Valid(name string) bool {
	for _, m := range all {
		if m == name {
			return true
		}
	}
	return false
}
