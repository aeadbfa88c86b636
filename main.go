package main

import (
	"os"

	"lumen/config"
	"lumen/controllers"
	"lumen/db"
	"lumen/router"
	"lumen/workers"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

func main() {
	// .env é opcional: em produção as vars vêm do ambiente.
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		logrus.Warnf("dotenv: %v", err)
	}

	cfg := config.Get(".")
	db.SetConfigurations(cfg)
	controllers.SetConfigurations(cfg)

	database, err := db.Connect()
	if err != nil {
		logrus.Fatalf("database: %v", err)
	}
	defer database.Close()

	workers.StartContentIngestor(database)

	r := gin.New()
	r.Use(db.SetDBtoContext(database))
	router.Initialize(r)

	logrus.Infof("Lumen listening on :%s", cfg.ApiPort)
	if err := r.Run(":" + cfg.ApiPort); err != nil {
		logrus.Fatal(err)
	}
}
