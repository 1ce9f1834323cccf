// internal/models/user.go
package models

// UserRole doubles as the approval level a user may sign off.
type UserRole string

const (
	RoleAdmin   UserRole = "ADMIN"   // level 3
	RoleManager UserRole = "MANAGER" // level 2
	RoleUser    UserRole = "USER"    // submitter
)

type UserProfile struct {
	Name           string   `json:"name"`
	Initials       string   `json:"initials"`
	Title          string   `json:"title"`
	Department     string   `json:"department"`
	EmployeeID     string   `json:"employeeId"`
	Email          string   `json:"email"`
	Phone          string   `json:"phone"`
	OfficeLocation string   `json:"officeLocation"`
	AvatarColor    string   `json:"avatarColor"`
	Role           UserRole `json:"role"`
}
