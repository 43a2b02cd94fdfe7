package main

import (
	"log"
	"strings"
	"travelworld/config"
	"travelworld/db"
	"travelworld/models"
	"travelworld/storage"
	"travelworld/utils"
	"travelworld/web"

	gormsessions "github.com/gin-contrib/sessions/gorm"
	"github.com/gin-gonic/autotls"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	if err := utils.InitLogger(config.LOG_LEVEL, config.LOG_FILE, config.DEBUG_MODE); err != nil {
		log.Fatalf("Logger: %v", err)
	}
	defer func() { _ = utils.Logger.Sync() }()

	db.Init(utils.Logger)
	if err := models.Init(); err != nil {
		utils.Logger.Fatal("migrations", zap.Error(err))
	}
	created, err := models.SeedAdmin(config.ADMIN_EMAIL, config.ADMIN_PASSWORD)
	if err != nil {
		utils.Logger.Fatal("admin seed", zap.Error(err))
	}
	if created {
		utils.Logger.Info("admin account created", zap.String("email", config.ADMIN_EMAIL))
	}
	storage.Init()

	if !config.DEBUG_MODE {
		gin.SetMode(gin.ReleaseMode)
	}
	sessionStore := gormsessions.NewStore(db.Instance, true, []byte(config.SESSION_KEY))
	stop := make(chan struct{})
	defer close(stop)
	router := web.NewRouter(sessionStore, stop)

	utils.Logger.Info("server starting", zap.String("address", config.BIND_ADDRESS), zap.String("tls", config.TLS_DOMAINS))
	if config.TLS_DOMAINS != "" {
		err = autotls.Run(router, strings.Split(config.TLS_DOMAINS, ",")...)
	} else {
		err = router.Run(config.BIND_ADDRESS)
	}
	utils.Logger.Fatal("server stopped", zap.Error(err))
}
