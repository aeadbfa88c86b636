package controllers

import (
	"lumen/config"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

var conf config.Configuration

func SetConfigurations(configuration config.Configuration) {
	conf = configuration
}

func RespondError(c *gin.Context, msg string, code int) {
	c.JSON(code, gin.H{"error": msg})
}

func logError(format string, args ...any) {
	logrus.Errorf(format, args...)
}

func RespondSuccess(c *gin.Context, payload any) {
	c.JSON(200, payload)
}
