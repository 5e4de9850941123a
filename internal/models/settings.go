package models

import (
	"fmt"
	"time"
)

const (
	// CurrentSettingsVersion is the schema version written by this release.
	CurrentSettingsVersion = 2

	// DefaultAllowedMinutes is the default early/late admission tolerance.
	DefaultAllowedMinutes = 15

	DefaultCurrency = "USD"
	DefaultTimezone = "UTC"
)

// OrganizationSettings holds the operational settings of an organization.
//
// New fields must be added together with a SchemaVersion bump and a step in Normalize.
type OrganizationSettings struct {
	SchemaVersion       int    `json:"schema_version"`
	AllowedEarlyClockIn int    `json:"allowed_early_clock_in"`
	StrictMode          bool   `json:"strict_mode"`
	Currency            string `json:"currency"`
	RequireHandover     bool   `json:"require_handover"`
	Timezone            string `json:"timezone"`
}

// DefaultSettings returns the settings of a freshly created organization.
func DefaultSettings() OrganizationSettings {
	return OrganizationSettings{
		SchemaVersion:       CurrentSettingsVersion,
		AllowedEarlyClockIn: DefaultAllowedMinutes,
		StrictMode:          true,
		Currency:            DefaultCurrency,
		RequireHandover:     true,
		Timezone:            DefaultTimezone,
	}
}

// Normalize migrates settings written under an older schema version to the current one.
func (s OrganizationSettings) Normalize() OrganizationSettings {
	if s.SchemaVersion < 1 {
		// version 0 rows come from the untyped settings record
		if s.AllowedEarlyClockIn <= 0 {
			s.AllowedEarlyClockIn = DefaultAllowedMinutes
		}
		if s.Currency == "" {
			s.Currency = DefaultCurrency
		}
	}
	if s.SchemaVersion < 2 {
		if s.Timezone == "" {
			s.Timezone = DefaultTimezone
		}
	}
	if s.SchemaVersion < CurrentSettingsVersion {
		s.SchemaVersion = CurrentSettingsVersion
	}
	return s
}

// Location resolves the organization's reference timezone.
func (s OrganizationSettings) Location() (*time.Location, error) {
	tz := s.Timezone
	if tz == "" {
		tz = DefaultTimezone
	}
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", tz, err)
	}
	return loc, nil
}
