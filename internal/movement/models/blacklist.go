package models

import id "seawatch/pkg/domain"

// BlacklistEntry maps a port name or a country name to a risk level. Exactly
// one of PortName and CountryName is set.
type BlacklistEntry struct {
	PortName    string
	CountryName string
	Severity    id.Severity
	Category    string
}

// BlacklistHit is the result of a successful blacklist lookup.
type BlacklistHit struct {
	Severity id.Severity
	Category string
}
