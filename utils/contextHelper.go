package utils

import (
	"context"

	"bitbucket.org/mmdatafocus/possync_backend/appctx"
)

var (
	ContextKeyRestaurantId  = appctx.ContextKeyRestaurantId
	ContextKeyUserId        = appctx.ContextKeyUserId
	ContextKeyUserEmail     = appctx.ContextKeyUserEmail
	ContextKeyCorrelationId = appctx.ContextKeyCorrelationId

	ContextKeyIsAdmin         = appctx.ContextKeyIsAdmin
	ContextKeySkipTenantScope = appctx.ContextKeySkipTenantScope
)

func GetUserIdFromContext(ctx context.Context) (string, bool) {
	return appctx.GetString(ctx, ContextKeyUserId)
}

func GetUserEmailFromContext(ctx context.Context) (string, bool) {
	return appctx.GetString(ctx, ContextKeyUserEmail)
}

func GetCorrelationIdFromContext(ctx context.Context) (string, bool) {
	return appctx.GetString(ctx, ContextKeyCorrelationId)
}

func SetRestaurantIdInContext(ctx context.Context, restaurantId string) context.Context {
	return appctx.Set(ctx, ContextKeyRestaurantId, restaurantId)
}

func SetUserIdInContext(ctx context.Context, userId string) context.Context {
	return appctx.Set(ctx, ContextKeyUserId, userId)
}

func SetUserEmailInContext(ctx context.Context, email string) context.Context {
	return appctx.Set(ctx, ContextKeyUserEmail, email)
}

func SetCorrelationIdInContext(ctx context.Context, correlationId string) context.Context {
	return appctx.Set(ctx, ContextKeyCorrelationId, correlationId)
}

func GetIsAdminFromContext(ctx context.Context) (bool, bool) {
	return appctx.GetBool(ctx, ContextKeyIsAdmin)
}

func SetIsAdminInContext(ctx context.Context, isAdmin bool) context.Context {
	return appctx.Set(ctx, ContextKeyIsAdmin, isAdmin)
}

// SetSkipTenantScopeInContext lifts tenant scoping for internal ops such as
// seeding. Request paths never set it.
func SetSkipTenantScopeInContext(ctx context.Context, skip bool) context.Context {
	return appctx.Set(ctx, ContextKeySkipTenantScope, skip)
}
