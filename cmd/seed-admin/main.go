package main

import (
	"context"
	"log"
	"os"

	"github.com/sirupsen/logrus"

	"bitbucket.org/mmdatafocus/possync_backend/config"
	"bitbucket.org/mmdatafocus/possync_backend/models"
	"bitbucket.org/mmdatafocus/possync_backend/utils"
)

// Seeds the first admin account, and a demo restaurant when
// SEED_DEMO_RESTAURANT=true. Safe to run twice; an existing admin email is
// left untouched.
func main() {
	logger := config.GetLogger()

	config.ConnectDatabaseWithRetry()
	models.MigrateTable()

	// No request tenant here; lift scoping for the seed queries.
	ctx := utils.SetSkipTenantScopeInContext(context.Background(), true)

	email := os.Getenv("SEED_ADMIN_EMAIL")
	if email == "" {
		email = "admin@possync.local"
	}
	if !utils.IsValidEmail(email) {
		log.Fatalf("invalid SEED_ADMIN_EMAIL: %s", email)
	}

	if _, err := models.GetUserByEmail(ctx, email); err == nil {
		logger.WithFields(logrus.Fields{"email": email}).Info("admin already exists; nothing to do")
		return
	}

	password := os.Getenv("SEED_ADMIN_PASSWORD")
	generated := false
	if password == "" {
		password = utils.GeneratePassword()
		generated = true
	}

	user, err := models.CreateUser(ctx, &models.NewUser{
		Email:    email,
		FullName: "Administrator",
		Password: password,
		Role:     models.UserRoleAdmin,
	})
	if err != nil {
		log.Fatalf("failed to seed admin: %v", err)
	}
	fields := logrus.Fields{"email": email, "userId": user.ID.String()}
	if generated {
		fields["password"] = password
	}
	logger.WithFields(fields).Info("admin user created")

	if os.Getenv("SEED_DEMO_RESTAURANT") == "true" {
		opening := "10:00"
		closing := "23:00"
		restaurant, err := models.CreateRestaurant(ctx, &models.NewRestaurant{
			Name:        "Demo Restaurant",
			Keyword:     "demo",
			Address:     "1 Demo Street",
			OpeningTime: &opening,
			ClosingTime: &closing,
		})
		if err != nil {
			log.Fatalf("failed to seed demo restaurant: %v", err)
		}
		if err := models.AssociateUserRestaurant(ctx, user.ID, restaurant.ID); err != nil {
			log.Fatalf("failed to associate demo restaurant: %v", err)
		}
		logger.WithFields(logrus.Fields{
			"restaurantId": restaurant.ID.String(),
			"apiKey":       restaurant.ApiKey,
		}).Info("demo restaurant created")
	}
}
