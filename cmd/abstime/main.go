package main

import (
	"log"

	"github.com/frzip09/absolute-time/internal/app"
)

func main() {
	if err := app.New().Run(); err != nil {
		log.Fatalf("abstime failed to start: %v", err)
	}
}
