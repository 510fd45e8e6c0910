// Package severity derives the compliance severity of shore-reported port
// calls from the blacklist.
package severity

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"seawatch/internal/movement/countries"
	"seawatch/internal/movement/models"
	"seawatch/internal/movement/ports"
	id "seawatch/pkg/domain"
	textutil "seawatch/pkg/platform/strings"
)

// Query describes one port as reported on a port-call event. Any field may be
// empty.
type Query struct {
	IHSPortID   string
	PortName    string
	CountryName string
	CountryCode string
}

// IsEmpty reports whether the query carries nothing to look up.
func (q Query) IsEmpty() bool {
	return strings.TrimSpace(q.IHSPortID+q.PortName+q.CountryName+q.CountryCode) == ""
}

// Resolver computes the severity of a port as the maximum found by four
// independent lookups: port identifier, port name, country name (raw and
// translated) and country code (as alpha-2 and as alpha-3). Every applicable
// lookup runs; none short-circuits the others.
type Resolver struct {
	ports        ports.PortResolver
	blacklist    ports.BlacklistLookup
	countries    *countries.Table
	translations Translations
	logger       *slog.Logger
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithTranslations replaces the default country-name translation table.
func WithTranslations(t Translations) Option {
	return func(r *Resolver) {
		r.translations = t
	}
}

// WithCountries replaces the embedded ISO 3166 table.
func WithCountries(t *countries.Table) Option {
	return func(r *Resolver) {
		r.countries = t
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Resolver) {
		r.logger = logger
	}
}

// NewResolver creates a Resolver.
func NewResolver(portResolver ports.PortResolver, blacklist ports.BlacklistLookup, opts ...Option) *Resolver {
	r := &Resolver{
		ports:     portResolver,
		blacklist: blacklist,
		logger:    slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.countries == nil {
		r.countries = countries.MustLoad()
	}
	if r.translations == nil {
		r.translations = DefaultTranslations()
	}
	return r
}

// Resolve returns the highest severity any lookup produced, OK when none
// matched. Lookup misses are not errors; store failures are.
func (r *Resolver) Resolve(ctx context.Context, q Query) (id.Severity, error) {
	found := []id.Severity{id.SeverityOK}
	collect := func(levels []id.Severity, err error) error {
		if err != nil {
			return err
		}
		found = append(found, levels...)
		return nil
	}

	if err := collect(r.byPortID(ctx, q)); err != nil {
		return id.SeverityUnknown, err
	}
	if err := collect(r.byPortName(ctx, q)); err != nil {
		return id.SeverityUnknown, err
	}
	if err := collect(r.byCountryName(ctx, q)); err != nil {
		return id.SeverityUnknown, err
	}
	if err := collect(r.byCountryCode(ctx, q)); err != nil {
		return id.SeverityUnknown, err
	}
	return id.MaxSeverity(found...), nil
}

// ResolveEvent returns e with its port, previous port and destination
// severities filled in. Events that name neither a port nor a country show
// their movement type as the port name with severity OK.
func (r *Resolver) ResolveEvent(ctx context.Context, e models.PortCallEvent) (models.PortCallEvent, error) {
	var err error
	if e.HasLocation() {
		e.PortSeverity, err = r.Resolve(ctx, Query{
			IHSPortID:   e.IHSPortID,
			PortName:    e.PortName,
			CountryName: e.CountryName,
			CountryCode: e.CountryCode,
		})
		if err != nil {
			return e, fmt.Errorf("resolving port severity: %w", err)
		}
	} else {
		e.PortName = e.MovementType
		e.PortSeverity = id.SeverityOK
	}

	e.LastPortOfCallSeverity, err = r.Resolve(ctx, Query{
		PortName:    e.LastPortOfCall,
		CountryName: e.LastPortOfCallCountry,
		CountryCode: e.LastPortOfCallCountryCode,
	})
	if err != nil {
		return e, fmt.Errorf("resolving previous port severity: %w", err)
	}

	e.DestinationSeverity, err = r.Resolve(ctx, Query{PortName: e.DestinationPort})
	if err != nil {
		return e, fmt.Errorf("resolving destination severity: %w", err)
	}
	return e, nil
}

// byPortID resolves the identifier to a port and checks that port.
func (r *Resolver) byPortID(ctx context.Context, q Query) ([]id.Severity, error) {
	if q.IHSPortID == "" {
		return nil, nil
	}
	port, err := r.ports.ByField(ctx, ports.PortFieldIHSID, q.IHSPortID)
	if err != nil {
		return nil, fmt.Errorf("resolving port id %q: %w", q.IHSPortID, err)
	}
	if !port.Matched() {
		return nil, nil
	}
	return r.lookup(ctx, port.Name, port.Country)
}

// byPortName checks the port name together with the country its port record
// belongs to.
func (r *Resolver) byPortName(ctx context.Context, q Query) ([]id.Severity, error) {
	if q.PortName == "" {
		return nil, nil
	}
	port, err := r.ports.ByField(ctx, ports.PortFieldName, q.PortName)
	if err != nil {
		return nil, fmt.Errorf("resolving port name %q: %w", q.PortName, err)
	}
	return r.lookup(ctx, q.PortName, port.Country)
}

// byCountryName checks the raw country name and its translation.
func (r *Resolver) byCountryName(ctx context.Context, q Query) ([]id.Severity, error) {
	if q.CountryName == "" {
		return nil, nil
	}
	return r.lookupCountry(ctx, q.PortName, q.CountryName)
}

// byCountryCode reads the code both as alpha-2 and as alpha-3.
func (r *Resolver) byCountryCode(ctx context.Context, q Query) ([]id.Severity, error) {
	if q.CountryCode == "" {
		return nil, nil
	}
	var found []id.Severity
	for _, resolve := range []func(string) (string, bool){r.countries.NameByAlpha2, r.countries.NameByAlpha3} {
		name, ok := resolve(q.CountryCode)
		if !ok {
			continue
		}
		levels, err := r.lookupCountry(ctx, "", name)
		if err != nil {
			return nil, err
		}
		found = append(found, levels...)
	}
	return found, nil
}

func (r *Resolver) lookupCountry(ctx context.Context, portName, countryName string) ([]id.Severity, error) {
	names := []string{countryName}
	if translated, ok := r.translations.Translate(countryName); ok {
		names = append(names, translated)
	}
	var found []id.Severity
	for _, name := range textutil.DedupeNames(names) {
		levels, err := r.lookup(ctx, portName, name)
		if err != nil {
			return nil, err
		}
		found = append(found, levels...)
	}
	return found, nil
}

func (r *Resolver) lookup(ctx context.Context, portName, countryName string) ([]id.Severity, error) {
	if portName == "" && countryName == "" {
		return nil, nil
	}
	hit, ok, err := r.blacklist.Severity(ctx, portName, countryName)
	if err != nil {
		return nil, fmt.Errorf("blacklist lookup (%q, %q): %w", portName, countryName, err)
	}
	if !ok {
		return nil, nil
	}
	r.logger.DebugContext(ctx, "blacklist match",
		"port", portName,
		"country", countryName,
		"severity", hit.Severity.String(),
	)
	return []id.Severity{hit.Severity}, nil
}
