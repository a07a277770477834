package constants

// User roles
const (
	RoleAdmin      = "admin"
	RoleManager    = "manager"
	RoleAccountant = "accountant"
	RoleViewer     = "viewer"
)

// User status
const (
	UserStatusActive   = "active"
	UserStatusInactive = "inactive"
)

// Property types
const (
	PropertyTypeMale   = "male"
	PropertyTypeFemale = "female"
	PropertyTypeUnisex = "unisex"
)

// Room status
const (
	RoomStatusVacant      = "vacant"
	RoomStatusPartial     = "partial"
	RoomStatusFull        = "full"
	RoomStatusMaintenance = "maintenance"
)

// Roles returns every role accepted for an account.
func Roles() []string {
	return []string{RoleAdmin, RoleManager, RoleAccountant, RoleViewer}
}

// PropertyTypes returns the accepted property type values.
func PropertyTypes() []string {
	return []string{PropertyTypeMale, PropertyTypeFemale, PropertyTypeUnisex}
}

// RoomStatuses returns the accepted room status values.
func RoomStatuses() []string {
	return []string{RoomStatusVacant, RoomStatusPartial, RoomStatusFull, RoomStatusMaintenance}
}

// IsValidRole reports whether role is one of the known roles.
func IsValidRole(role string) bool {
	for _, r := range Roles() {
		if r == role {
			return true
		}
	}
	return false
}

// IsValidPropertyType reports whether t is a known property type.
func IsValidPropertyType(t string) bool {
	for _, p := range PropertyTypes() {
		if p == t {
			return true
		}
	}
	return false
}

// IsValidRoomStatus reports whether s is a known room status.
func IsValidRoomStatus(s string) bool {
	for _, r := range RoomStatuses() {
		if r == s {
			return true
		}
	}
	return false
}
