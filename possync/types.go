package possync

import (
	"github.com/shopspring/decimal"

	"bitbucket.org/mmdatafocus/possync_backend/models"
)

// SyncTimeLayout is the single timestamp format accepted from POS clients.
const SyncTimeLayout = "2006-01-02 15:04:05"

type OrderHeaderSyncRequest struct {
	OrderHeaders []OrderHeaderData `json:"orderHeaders"`
}

type OrderHeaderData struct {
	OrderId                   *int            `json:"orderId"`
	OrderDateTime             string          `json:"orderDateTime"`
	EmployeeId                *int            `json:"employeeId"`
	StationId                 *int            `json:"stationId"`
	OrderType                 string          `json:"orderType"`
	DineInTableId             *int            `json:"dineInTableId"`
	DriverEmployeeId          *int            `json:"driverEmployeeId"`
	DiscountId                *int            `json:"discountId"`
	DiscountAmount            decimal.Decimal `json:"discountAmount"`
	AmountDue                 decimal.Decimal `json:"amountDue"`
	CashDiscountAmount        decimal.Decimal `json:"cashDiscountAmount"`
	CashDiscountApprovalEmpId *int            `json:"cashDiscountApprovalEmpId"`
	SubTotal                  decimal.Decimal `json:"subTotal"`
	GuestNumber               *int            `json:"guestNumber"`
	EditTimestamp             string          `json:"editTimestamp"`
	RowGuid                   string          `json:"rowGuid"`
}

type OrderPaymentSyncRequest struct {
	OrderPayments []OrderPaymentData `json:"orderPayments"`
}

type OrderPaymentData struct {
	OrderPaymentId       *int            `json:"orderPaymentId"`
	PaymentDateTime      string          `json:"paymentDateTime"`
	CashierId            *int            `json:"cashierId"`
	NonCashierEmployeeId *int            `json:"nonCashierEmployeeId"`
	OrderId              *int            `json:"orderId"`
	PaymentMethod        string          `json:"paymentMethod"`
	AmountTendered       decimal.Decimal `json:"amountTendered"`
	AmountPaid           decimal.Decimal `json:"amountPaid"`
	EmployeeComp         decimal.Decimal `json:"employeeComp"`
	RowGuid              string          `json:"rowGuid"`
}

type OrderTransactionSyncRequest struct {
	OrderTransactions []OrderTransactionData `json:"orderTransactions"`
}

type OrderTransactionData struct {
	OrderTransactionId *int            `json:"orderTransactionId"`
	OrderId            *int            `json:"orderId"`
	MenuItemId         *int            `json:"menuItemId"`
	MenuItemUnitPrice  decimal.Decimal `json:"menuItemUnitPrice"`
	Quantity           decimal.Decimal `json:"quantity"`
	ExtendedPrice      decimal.Decimal `json:"extendedPrice"`
	DiscountId         *int            `json:"discountId"`
	DiscountAmount     decimal.Decimal `json:"discountAmount"`
	DiscountBasis      string          `json:"discountBasis"`
	DiscountAmountUsed decimal.Decimal `json:"discountAmountUsed"`
	RowGuid            string          `json:"rowGuid"`
}

type SyncResponse struct {
	TotalRecords   int    `json:"totalRecords"`
	SuccessRecords int    `json:"successRecords"`
	FailedRecords  int    `json:"failedRecords"`
	FailureDetails string `json:"failureDetails"`
}

type RestaurantInfo struct {
	RestaurantId      string `json:"restaurantId"`
	RestaurantName    string `json:"restaurantName"`
	RestaurantAddress string `json:"restaurantAddress"`
}

type OrderTypeInfo struct {
	OrderType      models.OrderType `json:"orderType"`
	NumberOfOrders int              `json:"numberOfOrders"`
	TotalRevenue   decimal.Decimal  `json:"totalRevenue"`
}

type DashboardResponse struct {
	DayTitle              string           `json:"dayTitle"`
	Date                  string           `json:"date"`
	Restaurant            RestaurantInfo   `json:"restaurant"`
	AssociatedRestaurants []RestaurantInfo `json:"associatedRestaurants"`
	TotalOrders           int              `json:"totalOrders"`
	TotalRevenue          decimal.Decimal  `json:"totalRevenue"`
	AverageOrderValue     decimal.Decimal  `json:"averageOrderValue"`
	NumberOfGuests        int              `json:"numberOfGuests"`
	OrderTypeInfoList     []OrderTypeInfo  `json:"orderTypeInfoList"`
}

type OrderListResponse struct {
	Orders []models.OrderSummary `json:"orders"`
	Limit  int                   `json:"limit"`
	Offset int                   `json:"offset"`
}

// DailyOrderReport is one day of the daily report: how many orders landed
// that day, split by order type. Orders without a recognized type show up
// under the UNKNOWN key.
type DailyOrderReport struct {
	Date         string         `json:"date"`
	TotalOrders  int            `json:"totalOrders"`
	OrdersByType map[string]int `json:"ordersByType"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type LoginResponse struct {
	Token              string   `json:"token"`
	MustChangePassword bool     `json:"mustChangePassword"`
	User               UserInfo `json:"user"`
}

type UserInfo struct {
	Id          string           `json:"id"`
	Email       string           `json:"email"`
	FullName    string           `json:"fullName"`
	Role        models.UserRole  `json:"role"`
	Restaurants []RestaurantInfo `json:"restaurants"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" binding:"required"`
	NewPassword     string `json:"newPassword" binding:"required,min=8"`
}

type CreateRestaurantRequest struct {
	Name        string `json:"name" binding:"required"`
	Keyword     string `json:"keyword"`
	Description string `json:"description"`
	Address     string `json:"address"`
	PhoneNumber string `json:"phoneNumber"`
	OpeningTime string `json:"openingTime"`
	ClosingTime string `json:"closingTime"`
}

type CreateRestaurantResponse struct {
	RestaurantId string `json:"restaurantId"`
	ApiKey       string `json:"apiKey"`
}

type CreateUserRequest struct {
	Email        string `json:"email" binding:"required,email"`
	FullName     string `json:"fullName" binding:"required"`
	MobileNumber string `json:"mobileNumber"`
	Role         string `json:"role"`
	RestaurantId string `json:"restaurantId" binding:"required"`
}

type CreateUserResponse struct {
	UserId          string `json:"userId"`
	InitialPassword string `json:"initialPassword"`
}
