package workforce

import (
	"sort"

	"github.com/yukikurage/workforce-api/internal/models"
)

// Capability names an action whose availability depends on hierarchy level.
type Capability string

const (
	CapabilityCreateProject     Capability = "create_project"
	CapabilityManageTeam        Capability = "manage_team"
	CapabilityCreateShift       Capability = "create_shift"
	CapabilityApproveExceptions Capability = "approve_exceptions"
	CapabilityViewAnalytics     Capability = "view_analytics"
	CapabilityViewFinancials    Capability = "view_financials"
	CapabilityEditTimecards     Capability = "edit_timecards"
)

// AllCapabilities returns every known capability in a stable order.
func AllCapabilities() []Capability {
	return []Capability{
		CapabilityCreateProject,
		CapabilityManageTeam,
		CapabilityCreateShift,
		CapabilityApproveExceptions,
		CapabilityViewAnalytics,
		CapabilityViewFinancials,
		CapabilityEditTimecards,
	}
}

// Valid reports whether c is a known capability.
func (c Capability) Valid() bool {
	for _, known := range AllCapabilities() {
		if c == known {
			return true
		}
	}
	return false
}

// DefaultPermissionMatrix returns the matrix assigned to new organizations.
func DefaultPermissionMatrix() models.PermissionMatrix {
	return models.PermissionMatrix{
		string(CapabilityCreateProject):     1,
		string(CapabilityManageTeam):        1,
		string(CapabilityCreateShift):       2,
		string(CapabilityApproveExceptions): 2,
		string(CapabilityViewAnalytics):     0,
		string(CapabilityViewFinancials):    0,
		string(CapabilityEditTimecards):     1,
	}
}

// DefaultPermissionMatrixFor returns the default matrix clamped to the depth of levels.
func DefaultPermissionMatrixFor(levels []string) models.PermissionMatrix {
	matrix := DefaultPermissionMatrix()
	maxIndex := len(levels) - 1
	if maxIndex < 0 {
		maxIndex = 0
	}
	for k, v := range matrix {
		if v > maxIndex {
			matrix[k] = maxIndex
		}
	}
	return matrix
}

// RequiredLevel returns the least senior hierarchy index permitted for capability.
// A capability missing from the matrix requires the most senior level.
func RequiredLevel(matrix models.PermissionMatrix, capability Capability) int {
	required, ok := matrix[string(capability)]
	if !ok {
		return 0
	}
	return required
}

// CanPerform reports whether user's hierarchy level satisfies the org's threshold for
// capability. Lower index means more senior.
func CanPerform(org models.Organization, user models.User, capability Capability) (bool, error) {
	if len(org.HierarchyLevels) == 0 {
		return false, NewConfigurationError("hierarchy_levels", "organization %d has no hierarchy levels", org.ID)
	}
	if user.HierarchyLevel < 0 || user.HierarchyLevel >= len(org.HierarchyLevels) {
		return false, NewConfigurationError("hierarchy_level",
			"user %d has level %d outside 0..%d", user.ID, user.HierarchyLevel, len(org.HierarchyLevels)-1)
	}
	return user.HierarchyLevel <= RequiredLevel(org.Permissions, capability), nil
}

// Authorize is CanPerform returning a PermissionDenied denial instead of false.
func Authorize(org models.Organization, user models.User, capability Capability) error {
	ok, err := CanPerform(org, user, capability)
	if err != nil {
		return err
	}
	if !ok {
		return PermissionDenied(capability)
	}
	return nil
}

// ValidatePermissionMatrix checks that every entry names a known capability and a level
// inside the hierarchy.
func ValidatePermissionMatrix(levels []string, matrix models.PermissionMatrix) error {
	if len(levels) == 0 {
		return NewConfigurationError("hierarchy_levels", "at least one hierarchy level is required")
	}
	keys := make([]string, 0, len(matrix))
	for k := range matrix {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if !Capability(k).Valid() {
			return NewConfigurationError("permissions", "unknown capability %q", k)
		}
		if v := matrix[k]; v < 0 || v >= len(levels) {
			return NewConfigurationError("permissions", "capability %q requires level %d outside 0..%d", k, v, len(levels)-1)
		}
	}
	return nil
}
