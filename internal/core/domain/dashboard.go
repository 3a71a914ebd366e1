package domain

import (
	"strings"
	"time"
)

// DefaultDashboardURL is stored when a shortcut is created without a target.
const DefaultDashboardURL = "#"

const maxDashboardName = 120

// Dashboard is a user-owned navigation shortcut shown in the sidebar.
type Dashboard struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	Name      string    `json:"name"`
	URL       string    `json:"url"`
	Icon      IconKey   `json:"icon"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// DashboardDraft is the caller-supplied part of a new Dashboard.
type DashboardDraft struct {
	Name string
	URL  string
	Icon IconKey
}

// DashboardPatch carries a partial update; nil fields are left untouched.
type DashboardPatch struct {
	Name *string
	URL  *string
	Icon *IconKey
}

// Normalize trims the draft, applies defaults and validates it.
func (d DashboardDraft) Normalize() (DashboardDraft, error) {
	name, err := normalizeName(d.Name)
	if err != nil {
		return d, err
	}
	d.Name = name

	d.URL = strings.TrimSpace(d.URL)
	if d.URL == "" {
		d.URL = DefaultDashboardURL
	}

	if d.Icon == "" {
		d.Icon = IconFolder
	}
	if !d.Icon.Valid() {
		return d, NewValidationError("icon %q is not supported", d.Icon)
	}
	return d, nil
}

// Normalize trims the provided fields and resets blank url/icon to their defaults.
func (p DashboardPatch) Normalize() (DashboardPatch, error) {
	if p.Name != nil {
		name, err := normalizeName(*p.Name)
		if err != nil {
			return p, err
		}
		p.Name = &name
	}

	if p.URL != nil {
		u := strings.TrimSpace(*p.URL)
		if u == "" {
			u = DefaultDashboardURL
		}
		p.URL = &u
	}

	if p.Icon != nil {
		icon := *p.Icon
		if icon == "" {
			icon = IconFolder
		}
		if !icon.Valid() {
			return p, NewValidationError("icon %q is not supported", icon)
		}
		p.Icon = &icon
	}
	return p, nil
}

// Apply returns a copy of d with the patch applied and UpdatedAt set to now.
func (p DashboardPatch) Apply(d Dashboard, now time.Time) Dashboard {
	if p.Name != nil {
		d.Name = *p.Name
	}
	if p.URL != nil {
		d.URL = *p.URL
	}
	if p.Icon != nil {
		d.Icon = *p.Icon
	}
	d.UpdatedAt = now
	return d
}

func normalizeName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", NewValidationError("name is required")
	}
	if len([]rune(name)) > maxDashboardName {
		return "", NewValidationError("name must be at most %d characters", maxDashboardName)
	}
	return name, nil
}
