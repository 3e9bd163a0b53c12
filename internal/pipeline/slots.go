package pipeline

import "github.com/strrl/model-exploder/internal/parser"

// SlotValues maps a slot type name to the surface strings that can fill it.
type SlotValues map[string][]string

// CompileSlots flattens every slot type into its canonical values and
// synonyms, in the order they are listed. Duplicates are kept. When two
// types share a name the later one wins.
func CompileSlots(types []parser.SlotType) SlotValues {
	slots := make(SlotValues, len(types))
	for _, slotType := range types {
		var values []string
		for _, value := range slotType.Values {
			values = append(values, value.Surfaces()...)
		}
		slots[slotType.Name] = values
	}
	return slots
}
