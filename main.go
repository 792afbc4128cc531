package main

import (
	_ "github.com/joho/godotenv/autoload" // Autoload .env file.

	"github.com/servushq/servus-raffle/cmd/app"
)

// @contact.name   Servus Raffle
// @contact.url    https://servusraffle.app
//
// @license.name  MIT
//
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Bearer token
func main() {
	if err := app.Start(); err != nil {
		panic(err)
	}
}
