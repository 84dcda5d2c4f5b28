package models

import "time"

// UserRole represents the available roles for the RBAC system.
type UserRole string

const (
	RoleSuperAdmin     UserRole = "super_admin"
	RoleAdmin          UserRole = "admin"
	RoleStaff          UserRole = "staff"
	RoleEventPublisher UserRole = "event_publisher"
)

// Role groups used when registering routes.
var (
	ReviewerRoles  = []UserRole{RoleSuperAdmin, RoleAdmin, RoleStaff}
	ManagerRoles   = []UserRole{RoleSuperAdmin, RoleAdmin}
	PublisherRoles = []UserRole{RoleSuperAdmin, RoleAdmin, RoleEventPublisher}
)

// RoleNames lists every role as plain strings.
func RoleNames() []string {
	return []string{string(RoleSuperAdmin), string(RoleAdmin), string(RoleStaff), string(RoleEventPublisher)}
}

// User is an operator account. Email is unique.
type User struct {
	Record       `bson:",inline"`
	Name         string     `bson:"name" json:"name"`
	Email        string     `bson:"email" json:"email"`
	PasswordHash string     `bson:"password" json:"-"`
	Role         UserRole   `bson:"role" json:"role"`
	IsActive     bool       `bson:"isActive" json:"isActive"`
	LastLoginAt  *time.Time `bson:"lastLoginAt,omitempty" json:"lastLoginAt,omitempty"`
}

// Info returns the public view of the account.
func (u *User) Info() UserInfo {
	return UserInfo{ID: u.ID.Hex(), Name: u.Name, Email: u.Email, Role: u.Role, IsActive: u.IsActive}
}
