// internal/approval/directory.go
package approval

import (
	"project-tracker/internal/common/config"
	"project-tracker/internal/models"
)

// Directory resolves people by display name or employee id.
type Directory struct {
	users []models.UserProfile
}

func NewDirectory(users []models.UserProfile) *Directory {
	return &Directory{users: append([]models.UserProfile(nil), users...)}
}

// DirectoryFromConfig builds the directory from the users config section.
func DirectoryFromConfig(users []config.UserConfig) *Directory {
	profiles := make([]models.UserProfile, 0, len(users))
	for _, u := range users {
		profiles = append(profiles, models.UserProfile{
			Name:       u.Name,
			Initials:   initials(u.Name),
			Title:      u.Title,
			Department: u.Department,
			EmployeeID: u.EmployeeID,
			Email:      u.Email,
			Phone:      u.Phone,
			Role:       models.UserRole(u.Role),
		})
	}
	return NewDirectory(profiles)
}

func initials(name string) string {
	for _, r := range name {
		return string(r)
	}
	return ""
}

func (d *Directory) Lookup(nameOrID string) (models.UserProfile, bool) {
	if nameOrID == "" {
		return models.UserProfile{}, false
	}
	for _, u := range d.users {
		if u.Name == nameOrID || u.EmployeeID == nameOrID {
			return u, true
		}
	}
	return models.UserProfile{}, false
}

// CanSign reports whether role may act on a request in status.
func CanSign(role models.UserRole, status models.ApprovalStatus) bool {
	switch status {
	case models.ApprovalPendingLevel2:
		return role == models.RoleManager || role == models.RoleAdmin
	case models.ApprovalPendingLevel3:
		return role == models.RoleAdmin
	}
	return false
}

// Signers lists everyone who may act on a request in status.
func (d *Directory) Signers(status models.ApprovalStatus) []models.UserProfile {
	var out []models.UserProfile
	for _, u := range d.users {
		if CanSign(u.Role, status) {
			out = append(out, u)
		}
	}
	return out
}
