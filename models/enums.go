package models

type RestaurantStatus string

const (
	RestaurantStatusActive   RestaurantStatus = "ACTIVE"
	RestaurantStatusInactive RestaurantStatus = "INACTIVE"
)

type UserRole string

const (
	UserRoleAdmin   UserRole = "ADMIN"
	UserRoleOwner   UserRole = "OWNER"
	UserRoleManager UserRole = "MANAGER"
)

func IsValidUserRole(role string) bool {
	switch UserRole(role) {
	case UserRoleAdmin, UserRoleOwner, UserRoleManager:
		return true
	}
	return false
}

type OrderType string

const (
	OrderTypeDining       OrderType = "DINING"
	OrderTypeTakeaway     OrderType = "TAKEAWAY"
	OrderTypeDriveThrough OrderType = "DRIVETHROUGH"
	OrderTypeDelivery     OrderType = "DELIVERY"
)

// orderTypeCodes maps the POS terminal's numeric order type codes.
var orderTypeCodes = map[int]OrderType{
	1: OrderTypeDining,
	2: OrderTypeTakeaway,
	3: OrderTypeDriveThrough,
	4: OrderTypeDelivery,
}

// OrderTypeFromCode resolves a POS numeric code to an order type.
// Unknown codes return ok=false; callers keep the field unset instead of failing.
func OrderTypeFromCode(code int) (OrderType, bool) {
	t, ok := orderTypeCodes[code]
	return t, ok
}
