// Package roster bootstraps an organization from a YAML fixture.
package roster

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/yukikurage/workforce-api/internal/models"
	"github.com/yukikurage/workforce-api/internal/repository"
	"github.com/yukikurage/workforce-api/internal/workforce"
	"golang.org/x/crypto/bcrypt"
	"gopkg.in/yaml.v3"
)

// Roster is the fixture layout.
type Roster struct {
	Organization Organization `yaml:"organization"`
	Users        []User       `yaml:"users"`
	Projects     []Project    `yaml:"projects"`
}

type Organization struct {
	Name            string         `yaml:"name"`
	HierarchyLevels []string       `yaml:"hierarchy_levels"`
	Permissions     map[string]int `yaml:"permissions"`
	Settings        *Settings      `yaml:"settings"`
}

// Settings overrides the defaults of a new organization. Unset fields keep the default.
type Settings struct {
	AllowedEarlyClockIn *int    `yaml:"allowed_early_clock_in"`
	StrictMode          *bool   `yaml:"strict_mode"`
	Currency            *string `yaml:"currency"`
	RequireHandover     *bool   `yaml:"require_handover"`
	Timezone            *string `yaml:"timezone"`
}

type User struct {
	Username       string   `yaml:"username"`
	FullName       string   `yaml:"full_name"`
	Password       string   `yaml:"password"`
	HierarchyLevel int      `yaml:"hierarchy_level"`
	HourlyRate     *float64 `yaml:"hourly_rate"`
	Skills         []string `yaml:"skills"`
}

type Project struct {
	Name        string   `yaml:"name"`
	Description string   `yaml:"description"`
	Phases      []Phase  `yaml:"phases"`
	Members     []string `yaml:"members"`
}

type Phase struct {
	Name       string   `yaml:"name"`
	Objectives []string `yaml:"objectives"`
}

// FromYAML parses and validates a roster from raw YAML bytes.
func FromYAML(data []byte) (*Roster, error) {
	var r Roster
	if err := yaml.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("invalid roster yaml: %w", err)
	}
	if err := r.Validate(); err != nil {
		return nil, err
	}
	return &r, nil
}

// FromFile reads a YAML roster from the given path.
func FromFile(path string) (*Roster, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return FromYAML(data)
}

// Validate checks the roster before anything is written.
func (r *Roster) Validate() error {
	if strings.TrimSpace(r.Organization.Name) == "" {
		return fmt.Errorf("organization.name is required")
	}
	if err := workforce.ValidatePermissionMatrix(r.Organization.HierarchyLevels, r.permissions()); err != nil {
		return err
	}
	if _, err := r.settings().Location(); err != nil {
		return fmt.Errorf("organization.settings.timezone: %w", err)
	}

	usernames := make(map[string]bool, len(r.Users))
	for i, u := range r.Users {
		if strings.TrimSpace(u.Username) == "" {
			return fmt.Errorf("users[%d].username is required", i)
		}
		if usernames[u.Username] {
			return fmt.Errorf("duplicate username %q", u.Username)
		}
		usernames[u.Username] = true
		if u.Password == "" {
			return fmt.Errorf("user %q has no password", u.Username)
		}
		if u.HierarchyLevel < 0 || u.HierarchyLevel >= len(r.Organization.HierarchyLevels) {
			return fmt.Errorf("user %q has level %d outside 0..%d", u.Username, u.HierarchyLevel, len(r.Organization.HierarchyLevels)-1)
		}
	}

	projects := make(map[string]bool, len(r.Projects))
	for i, p := range r.Projects {
		if strings.TrimSpace(p.Name) == "" {
			return fmt.Errorf("projects[%d].name is required", i)
		}
		if projects[p.Name] {
			return fmt.Errorf("duplicate project %q", p.Name)
		}
		projects[p.Name] = true
		for _, m := range p.Members {
			if !usernames[m] {
				return fmt.Errorf("project %q lists unknown member %q", p.Name, m)
			}
		}
	}
	return nil
}

func (r *Roster) permissions() models.PermissionMatrix {
	if len(r.Organization.Permissions) == 0 {
		return workforce.DefaultPermissionMatrixFor(r.Organization.HierarchyLevels)
	}
	return models.PermissionMatrix(r.Organization.Permissions)
}

func (r *Roster) settings() models.OrganizationSettings {
	s := models.DefaultSettings()
	o := r.Organization.Settings
	if o == nil {
		return s
	}
	if o.AllowedEarlyClockIn != nil {
		s.AllowedEarlyClockIn = *o.AllowedEarlyClockIn
	}
	if o.StrictMode != nil {
		s.StrictMode = *o.StrictMode
	}
	if o.Currency != nil {
		s.Currency = *o.Currency
	}
	if o.RequireHandover != nil {
		s.RequireHandover = *o.RequireHandover
	}
	if o.Timezone != nil {
		s.Timezone = *o.Timezone
	}
	return s
}

// Build converts the roster to models, hashing passwords with cost. It returns the organization
// with its users and projects attached, and the member usernames per project name.
func (r *Roster) Build(cost int) (*models.Organization, map[string][]string, error) {
	org := &models.Organization{
		Name:            r.Organization.Name,
		HierarchyLevels: r.Organization.HierarchyLevels,
		Permissions:     r.permissions(),
		Settings:        r.settings(),
	}

	for _, u := range r.Users {
		hash, err := bcrypt.GenerateFromPassword([]byte(u.Password), cost)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to hash password of %q: %w", u.Username, err)
		}
		fullName := u.FullName
		if fullName == "" {
			fullName = u.Username
		}
		org.Users = append(org.Users, models.User{
			Username:       u.Username,
			FullName:       fullName,
			PasswordHash:   string(hash),
			HierarchyLevel: u.HierarchyLevel,
			HourlyRate:     u.HourlyRate,
			Skills:         u.Skills,
		})
	}

	members := make(map[string][]string, len(r.Projects))
	for _, p := range r.Projects {
		project := models.Project{
			Name:        p.Name,
			Description: p.Description,
			Status:      models.ProjectStatusActive,
		}
		for i, ph := range p.Phases {
			project.Phases = append(project.Phases, models.Phase{
				Name:       ph.Name,
				Position:   i + 1,
				Objectives: ph.Objectives,
			})
		}
		org.Projects = append(org.Projects, project)
		members[p.Name] = p.Members
	}

	return org, members, nil
}

// Seed writes the roster through repo in one transaction, hashing passwords with cost.
func Seed(ctx context.Context, repo repository.OrganizationRepository, r *Roster, cost int) (*models.Organization, error) {
	org, members, err := r.Build(cost)
	if err != nil {
		return nil, err
	}
	if err := repo.CreateRoster(ctx, org, members); err != nil {
		return nil, err
	}
	return org, nil
}
