// Package config holds the fixed portal configuration: the category to
// staff-role jurisdiction mapping and the feedback rating bounds.
package config

import (
	"os"
	"strings"

	"campuscare/backend/internal/models"
)

const (
	// Feedback
	MinSatisfactionRating = 1
	MaxSatisfactionRating = 5

	// CategoryOther is the catch-all category; only admins act on it.
	CategoryOther = "Other"
)

// WardenCategories and FacultyCategories are the default jurisdiction split.
// Categories outside both sets are handled by admins only.
var (
	WardenCategories  = []string{"Mess", "Hostel", "Maintenance", "Transport", "Security"}
	FacultyCategories = []string{"Academic"}
)

// Jurisdiction maps a complaint category to the staff role allowed to act on
// it. Admins are implicitly in jurisdiction for every category.
type Jurisdiction struct {
	byCategory map[string]models.Role
}

// LoadJurisdiction builds the mapping from the WARDEN_CATEGORIES and
// FACULTY_CATEGORIES env vars (comma separated), falling back to the
// defaults when unset.
func LoadJurisdiction() *Jurisdiction {
	warden := WardenCategories
	faculty := FacultyCategories
	if v := os.Getenv("WARDEN_CATEGORIES"); v != "" {
		warden = splitCategories(v)
	}
	if v := os.Getenv("FACULTY_CATEGORIES"); v != "" {
		faculty = splitCategories(v)
	}

	byCat := make(map[string]models.Role, len(warden)+len(faculty))
	for _, c := range warden {
		byCat[c] = models.RoleWarden
	}
	for _, c := range faculty {
		byCat[c] = models.RoleFaculty
	}
	return &Jurisdiction{byCategory: byCat}
}

func splitCategories(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// Covers reports whether the role has jurisdiction over the category.
// Admins cover everything; categories mapped to no role are admin-only.
func (j *Jurisdiction) Covers(role models.Role, category string) bool {
	if role == models.RoleAdmin {
		return true
	}
	return j.byCategory[category] == role
}

// CategoriesFor returns every category the role covers, nil when the role
// covers all of them (admin) or none (student).
func (j *Jurisdiction) CategoriesFor(role models.Role) []string {
	var out []string
	for cat, r := range j.byCategory {
		if r == role {
			out = append(out, cat)
		}
	}
	return out
}

// ValidCategory reports whether the category belongs to the closed
// enumeration a complaint may be filed under. "Other" is accepted and falls
// to admin-only jurisdiction.
func (j *Jurisdiction) ValidCategory(category string) bool {
	if category == CategoryOther {
		return true
	}
	_, ok := j.byCategory[category]
	return ok
}
