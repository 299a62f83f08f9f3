package trip

// WardSource resolves the pre-remap ward of an address.
type WardSource interface {
	OldWard(address string) string
}

// Classify reports whether t is an adding-point trip: some secondary stop
// lies in a different pre-remap ward than the primary stop. Unknown
// addresses resolve to the empty ward, and two empty wards are equal.
func Classify(t Trip, wards WardSource) bool {
	primaryWard := wards.OldWard(t.Primary().Record.ShipToAddress)
	for _, s := range t.Stops {
		if s.Role == RolePrimary {
			continue
		}
		if wards.OldWard(s.Record.ShipToAddress) != primaryWard {
			return true
		}
	}
	return false
}
