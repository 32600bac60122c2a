package encode

import "lifeupmcp/internal/types"

// Resolve returns the mutation semantics for a numeric field: the declared set
// type, or types.DefaultSetType when none was given.
func Resolve(declared types.SetType) types.SetType {
	return declared.OrDefault()
}

// Adjust appends an adjustable numeric field followed directly by its set-type
// marker, so exp and coin adjustments with different semantics stay paired.
// Neither parameter is emitted when value is absent.
func (q *Query) Adjust(key string, value *int, declared types.SetType, markerKey string) {
	if value == nil {
		return
	}
	q.Int(key, value)
	q.Add(markerKey, string(Resolve(declared)))
}
