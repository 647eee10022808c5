package possync

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"bitbucket.org/mmdatafocus/possync_backend/config"
	"bitbucket.org/mmdatafocus/possync_backend/models"
)

// Aggregator turns the payment-joined order rows of one business day into
// the dashboard summary.
type Aggregator struct {
	restaurants RestaurantStore
	reports     ReportStore
	logger      *logrus.Logger
}

func NewAggregator(restaurants RestaurantStore, reports ReportStore) *Aggregator {
	return &Aggregator{
		restaurants: restaurants,
		reports:     reports,
		logger:      config.GetLogger(),
	}
}

// SelectRestaurant picks the restaurant a dashboard call targets. An empty
// id falls back to the user's primary restaurant; an explicit id must belong
// to the user's associated set.
func (a *Aggregator) SelectRestaurant(ctx context.Context, user *models.User, restaurantId string) (*models.Restaurant, error) {
	if strings.EqualFold(restaurantId, "ALL") {
		return nil, NewAppError("INVALID_INPUT", "Dashboard across all restaurants is not supported", http.StatusBadRequest)
	}
	if restaurantId == "" {
		if user.PrimaryRestaurantId == nil {
			return nil, ErrNoRestaurantSelected
		}
		for i := range user.Restaurants {
			if user.Restaurants[i].ID == *user.PrimaryRestaurantId {
				return &user.Restaurants[i], nil
			}
		}
		return nil, ErrNoRestaurantSelected
	}
	id, err := uuid.Parse(restaurantId)
	if err != nil {
		return nil, ErrRestaurantNotFound
	}
	for i := range user.Restaurants {
		if user.Restaurants[i].ID == id {
			return &user.Restaurants[i], nil
		}
	}
	if _, err := a.restaurants.FindById(ctx, id); err != nil {
		return nil, ErrRestaurantNotFound
	}
	return nil, ErrRestaurantNotAssociated
}

// Summarize builds the dashboard for yesterday's business day.
func (a *Aggregator) Summarize(ctx context.Context, user *models.User, restaurant *models.Restaurant, today time.Time) (*DashboardResponse, error) {
	window, err := RestaurantYesterdayWindow(restaurant, today)
	if err != nil {
		return nil, err
	}
	rows, err := a.reports.DashboardRows(ctx, restaurant.ID, window.Start, window.End)
	if err != nil {
		config.LogError(a.logger, "possync", "Summarize", "dashboard query failed", logrus.Fields{
			"restaurantId": restaurant.ID.String(),
		}, err)
		return nil, err
	}

	resp := &DashboardResponse{
		DayTitle:              "Yesterday",
		Date:                  window.Start.Format("2006-01-02"),
		Restaurant:            restaurantInfo(restaurant),
		AssociatedRestaurants: associatedRestaurants(user),
		TotalRevenue:          decimal.Zero,
		AverageOrderValue:     decimal.Zero,
		OrderTypeInfoList:     []OrderTypeInfo{},
	}
	aggregateRows(resp, rows)
	return resp, nil
}

// aggregateRows folds payment rows into the dashboard totals. Each joined
// row counts as one order, so an order settled by several payments is
// counted once per payment. Guests sum per row too. Rows without a
// recognized type contribute to the totals but not to the per-type
// breakdown.
func aggregateRows(resp *DashboardResponse, rows []models.DashboardRow) {
	type orderTypeBucket struct {
		orderType models.OrderType
		orders    int
		revenue   decimal.Decimal
	}

	buckets := make(map[models.OrderType]*orderTypeBucket)
	bucketOrder := make([]models.OrderType, 0, 4)

	for _, row := range rows {
		resp.TotalRevenue = resp.TotalRevenue.Add(row.AmountPaid)
		resp.TotalOrders++
		if row.GuestNumber != nil {
			resp.NumberOfGuests += *row.GuestNumber
		}
		if row.OrderType == nil {
			continue
		}
		bucket, ok := buckets[*row.OrderType]
		if !ok {
			bucket = &orderTypeBucket{
				orderType: *row.OrderType,
				revenue:   decimal.Zero,
			}
			buckets[*row.OrderType] = bucket
			bucketOrder = append(bucketOrder, *row.OrderType)
		}
		bucket.orders++
		bucket.revenue = bucket.revenue.Add(row.AmountPaid)
	}

	if resp.TotalOrders > 0 {
		resp.AverageOrderValue = resp.TotalRevenue.
			Div(decimal.NewFromInt(int64(resp.TotalOrders))).
			Round(2)
	}
	for _, orderType := range bucketOrder {
		bucket := buckets[orderType]
		resp.OrderTypeInfoList = append(resp.OrderTypeInfoList, OrderTypeInfo{
			OrderType:      bucket.orderType,
			NumberOfOrders: bucket.orders,
			TotalRevenue:   bucket.revenue,
		})
	}
}

// DailyOrders reports per-day order counts split by order type across
// [start, end], newest day first. Days without orders are omitted.
func (a *Aggregator) DailyOrders(ctx context.Context, restaurant *models.Restaurant, start time.Time, end time.Time) ([]DailyOrderReport, error) {
	counts, err := a.reports.DailyOrderCounts(ctx, restaurant.ID, start, end)
	if err != nil {
		config.LogError(a.logger, "possync", "DailyOrders", "daily report query failed", logrus.Fields{
			"restaurantId": restaurant.ID.String(),
		}, err)
		return nil, err
	}

	reports := make([]DailyOrderReport, 0)
	byDate := make(map[string]int)
	for _, count := range counts {
		idx, ok := byDate[count.OrderDate]
		if !ok {
			idx = len(reports)
			byDate[count.OrderDate] = idx
			reports = append(reports, DailyOrderReport{
				Date:         count.OrderDate,
				OrdersByType: make(map[string]int),
			})
		}
		key := "UNKNOWN"
		if count.OrderType != nil {
			key = string(*count.OrderType)
		}
		reports[idx].OrdersByType[key] += count.OrderCount
		reports[idx].TotalOrders += count.OrderCount
	}
	return reports, nil
}

// ListOrders pages through a window's order headers, newest first.
func (a *Aggregator) ListOrders(ctx context.Context, restaurant *models.Restaurant, window Window, limit int, offset int) (*OrderListResponse, error) {
	orders, err := a.reports.OrderSummaries(ctx, restaurant.ID, window.Start, window.End, limit, offset)
	if err != nil {
		return nil, err
	}
	if orders == nil {
		orders = []models.OrderSummary{}
	}
	return &OrderListResponse{Orders: orders, Limit: limit, Offset: offset}, nil
}

func restaurantInfo(restaurant *models.Restaurant) RestaurantInfo {
	return RestaurantInfo{
		RestaurantId:      restaurant.ID.String(),
		RestaurantName:    restaurant.Name,
		RestaurantAddress: restaurant.Address,
	}
}

func associatedRestaurants(user *models.User) []RestaurantInfo {
	infos := make([]RestaurantInfo, 0, len(user.Restaurants))
	for i := range user.Restaurants {
		infos = append(infos, restaurantInfo(&user.Restaurants[i]))
	}
	return infos
}
