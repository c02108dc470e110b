package main

import (
	"log"
	"strings"

	"gallery/config"
	"gallery/db"
	"gallery/models"
	"gallery/router"
	"gallery/storage"

	"github.com/gin-gonic/autotls"
)

func main() {
	db.Init()
	models.Init()
	storage.Init()

	r := router.New()

	var err error
	if config.TLS_DOMAINS != "" {
		err = autotls.Run(r, strings.Split(config.TLS_DOMAINS, ",")...)
	} else {
		err = r.Run(config.BIND_ADDRESS)
	}
	log.Fatalf("Server stopped: %v", err)
}
