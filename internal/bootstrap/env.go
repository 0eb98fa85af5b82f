package bootstrap

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

func Loadenv() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}
	if os.Getenv("JWT_KEY") == "" {
		log.Fatal("JWT_KEY is not set")
	}
}
