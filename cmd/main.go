package main

import (
	"net/http"
	"time"

	"github.com/forgeworks/itemforge-backend/internal/auth"
	"github.com/forgeworks/itemforge-backend/internal/character"
	"github.com/forgeworks/itemforge-backend/internal/inventory"
	"github.com/forgeworks/itemforge-backend/internal/pkg/middleware"
	"github.com/forgeworks/itemforge-backend/internal/pkg/model"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	setupViper()
	setupZerolog()
	db := setupDb()
	apiRouter := setupApiRouter(db, jwtSecret())

	port := viper.GetString("PORT")
	server := &http.Server{
		Addr:         port,
		Handler:      apiRouter,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	if err := server.ListenAndServe(); err != nil {
		log.Fatal().Err(err).Msg("Server stopped")
	}
}

func setupDb() *gorm.DB {
	dbUrl := viper.GetString("DB_URL")

	db, err := gorm.Open(postgres.Open(dbUrl), &gorm.Config{})
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize database")
	}

	if err := migrate(db); err != nil {
		log.Fatal().Err(err).Msg("Failed to migrate database schema")
	}

	sqlDb, _ := db.DB()

	sqlDb.SetMaxOpenConns(50)
	sqlDb.SetConnMaxLifetime(time.Minute * 10)

	return db
}

func migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.GameUser{},
		&model.UserProfile{},
		&model.Character{},
		&model.Item{},
		&model.InventoryEntry{},
	)
}

func setupApiRouter(db *gorm.DB, jwtSecret []byte) *gin.Engine {
	apiRouter := gin.New()
	routerGroup := apiRouter.Group("/itemforge-api")

	middleware.RegisterGlobalMiddleware(apiRouter)
	requireSession := middleware.RequireSession(db, jwtSecret)

	auth.RegisterRoutes(routerGroup, db, jwtSecret)
	character.RegisterRoutes(routerGroup, db, requireSession)
	inventory.RegisterRoutes(routerGroup, db, requireSession)

	return apiRouter
}

func setupViper() {
	viper.AutomaticEnv()
	viper.SetConfigFile("./.env")
	viper.ReadInConfig()
	viper.SetDefault("PORT", ":3018")
}

func setupZerolog() {
	zerolog.LevelFieldName = "severity"
	zerolog.TimestampFieldName = "time"
	zerolog.TimeFieldFormat = time.RFC3339Nano
}

func jwtSecret() []byte {
	secret := viper.GetString("JWT_SECRET")
	if secret == "" {
		log.Fatal().Msg("JWT_SECRET is not configured")
	}
	return []byte(secret)
}
