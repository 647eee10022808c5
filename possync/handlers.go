package possync

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"bitbucket.org/mmdatafocus/possync_backend/config"
	"bitbucket.org/mmdatafocus/possync_backend/models"
	"bitbucket.org/mmdatafocus/possync_backend/utils"
)

// HeaderAPIKey carries the POS client credential on sync calls.
const HeaderAPIKey = "X-API-Key"

func respondError(c *gin.Context, err error) {
	if appErr, ok := AsAppError(err); ok {
		c.JSON(appErr.Status, gin.H{"code": appErr.Code, "message": appErr.Message})
		return
	}
	fields := logrus.Fields{"module": "possync", "funcName": "respondError"}
	if cid, ok := utils.GetCorrelationIdFromContext(c.Request.Context()); ok {
		fields["correlationId"] = cid
	}
	if userId, ok := utils.GetUserIdFromContext(c.Request.Context()); ok {
		fields["userId"] = userId
	}
	config.GetLogger().WithFields(fields).WithError(err).Error("unhandled error")
	c.JSON(http.StatusInternalServerError, gin.H{"code": "INTERNAL_ERROR", "message": "Something went wrong"})
}

func respondInvalidPayload(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{
		"code":    "INVALID_PAYLOAD",
		"message": "Request body could not be parsed",
		"errors":  utils.ProcessValidationErrors(err),
	})
}

// resolveClient authenticates the sync call and scopes the request context
// to the resolved restaurant so every persist below is tenant-guarded.
func resolveClient(c *gin.Context, resolver *Resolver) (*models.Restaurant, bool) {
	restaurant, err := resolver.Resolve(c.Request.Context(), c.GetHeader(HeaderAPIKey))
	if err != nil {
		respondError(c, err)
		return nil, false
	}
	ctx := utils.SetRestaurantIdInContext(c.Request.Context(), restaurant.ID.String())
	c.Request = c.Request.WithContext(ctx)
	return restaurant, true
}

func SyncOrderHeadersHandler(resolver *Resolver, ingestor *Ingestor) gin.HandlerFunc {
	return func(c *gin.Context) {
		restaurant, ok := resolveClient(c, resolver)
		if !ok {
			return
		}
		var req OrderHeaderSyncRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondInvalidPayload(c, err)
			return
		}
		result, err := ingestor.IngestOrderHeaders(c.Request.Context(), restaurant, req.OrderHeaders)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, result.Response())
	}
}

func SyncOrderPaymentsHandler(resolver *Resolver, ingestor *Ingestor) gin.HandlerFunc {
	return func(c *gin.Context) {
		restaurant, ok := resolveClient(c, resolver)
		if !ok {
			return
		}
		var req OrderPaymentSyncRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondInvalidPayload(c, err)
			return
		}
		result, err := ingestor.IngestOrderPayments(c.Request.Context(), restaurant, req.OrderPayments)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, result.Response())
	}
}

func SyncOrderTransactionsHandler(resolver *Resolver, ingestor *Ingestor) gin.HandlerFunc {
	return func(c *gin.Context) {
		restaurant, ok := resolveClient(c, resolver)
		if !ok {
			return
		}
		var req OrderTransactionSyncRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondInvalidPayload(c, err)
			return
		}
		result, err := ingestor.IngestOrderTransactions(c.Request.Context(), restaurant, req.OrderTransactions)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, result.Response())
	}
}

// currentUser loads the authenticated user from the email the JWT middleware
// put on the context.
func currentUser(c *gin.Context) (*models.User, bool) {
	email, ok := utils.GetUserEmailFromContext(c.Request.Context())
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"code": "UNAUTHORIZED", "message": "Authentication required"})
		return nil, false
	}
	user, err := models.GetUserByEmail(c.Request.Context(), email)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"code": "UNAUTHORIZED", "message": "Authentication required"})
		return nil, false
	}
	return user, true
}

// selectDashboardRestaurant resolves the target restaurant and scopes the
// request context to it.
func selectDashboardRestaurant(c *gin.Context, aggregator *Aggregator) (*models.User, *models.Restaurant, bool) {
	user, ok := currentUser(c)
	if !ok {
		return nil, nil, false
	}
	restaurant, err := aggregator.SelectRestaurant(c.Request.Context(), user, c.Query("restaurantId"))
	if err != nil {
		respondError(c, err)
		return nil, nil, false
	}
	ctx := utils.SetRestaurantIdInContext(c.Request.Context(), restaurant.ID.String())
	c.Request = c.Request.WithContext(ctx)
	return user, restaurant, true
}

func DashboardHandler(aggregator *Aggregator) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, restaurant, ok := selectDashboardRestaurant(c, aggregator)
		if !ok {
			return
		}
		resp, err := aggregator.Summarize(c.Request.Context(), user, restaurant, time.Now())
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, resp)
	}
}

func DashboardOrdersHandler(aggregator *Aggregator, cfg Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		_, restaurant, ok := selectDashboardRestaurant(c, aggregator)
		if !ok {
			return
		}
		limit := queryInt(c, "limit", 50)
		if limit < 1 || limit > cfg.DashboardPageMax {
			limit = cfg.DashboardPageMax
		}
		offset := queryInt(c, "offset", 0)
		if offset < 0 {
			offset = 0
		}
		window, err := ordersWindow(c, restaurant)
		if err != nil {
			respondError(c, err)
			return
		}
		resp, err := aggregator.ListOrders(c.Request.Context(), restaurant, window, limit, offset)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, resp)
	}
}

func DashboardDailyHandler(aggregator *Aggregator) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Query("from") == "" || c.Query("to") == "" {
			respondError(c, NewAppError("INVALID_INPUT", "from and to parameters are required", http.StatusBadRequest))
			return
		}
		_, restaurant, ok := selectDashboardRestaurant(c, aggregator)
		if !ok {
			return
		}
		window, err := ordersWindow(c, restaurant)
		if err != nil {
			respondError(c, err)
			return
		}
		reports, err := aggregator.DailyOrders(c.Request.Context(), restaurant, window.Start, window.End)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, reports)
	}
}

func DashboardExportHandler(aggregator *Aggregator) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, restaurant, ok := selectDashboardRestaurant(c, aggregator)
		if !ok {
			return
		}
		file, err := aggregator.ExportDashboard(c.Request.Context(), user, restaurant, time.Now())
		if err != nil {
			respondError(c, err)
			return
		}
		filename := fmt.Sprintf("dashboard-%s.xlsx", time.Now().AddDate(0, 0, -1).Format("2006-01-02"))
		c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
		c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		if err := file.Write(c.Writer); err != nil {
			respondError(c, err)
		}
	}
}

// ordersWindow honors an explicit from/to date range (whole days, local time)
// and falls back to yesterday's business window when none is given.
func ordersWindow(c *gin.Context, restaurant *models.Restaurant) (Window, error) {
	from := c.Query("from")
	to := c.Query("to")
	if from == "" && to == "" {
		return RestaurantYesterdayWindow(restaurant, time.Now())
	}
	start, err := time.ParseInLocation("2006-01-02", from, time.Local)
	if err != nil {
		return Window{}, NewAppError("INVALID_INPUT", "from must be YYYY-MM-DD", http.StatusBadRequest)
	}
	end, err := time.ParseInLocation("2006-01-02", to, time.Local)
	if err != nil {
		return Window{}, NewAppError("INVALID_INPUT", "to must be YYYY-MM-DD", http.StatusBadRequest)
	}
	end = end.AddDate(0, 0, 1).Add(-time.Second)
	if end.Before(start) {
		return Window{}, NewAppError("INVALID_INPUT", "to must not precede from", http.StatusBadRequest)
	}
	return Window{Start: start, End: end}, nil
}

func queryInt(c *gin.Context, name string, fallback int) int {
	raw := c.Query(name)
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return value
}
