package models

// PortMatch is the result of resolving a position or identifier to a port.
// The zero value is "no match", a normal outcome rather than an error.
type PortMatch struct {
	Code      string // UN/LOCODE or vendor port code
	IHSPortID string
	Name      string
	Country   string
	Latitude  *float64
	Longitude *float64
}

// NoMatch is the explicit "no port here" value.
var NoMatch = PortMatch{}

// Matched reports whether a port was found.
func (p PortMatch) Matched() bool {
	return p.Code != "" || p.Name != ""
}

// SamePort reports whether p and other identify the same port.
func (p PortMatch) SamePort(other PortMatch) bool {
	if !p.Matched() || !other.Matched() {
		return false
	}
	if p.Code != "" && other.Code != "" {
		return p.Code == other.Code
	}
	return p.Name == other.Name && p.Country == other.Country
}

// ResolvedPosition pairs a chronological position with its resolved port.
type ResolvedPosition struct {
	Position Position
	Port     PortMatch
}
