package main

import (
	"os"

	"ecovision/internal/app"
)

func main() {
	application := app.New()
	os.Exit(application.Run())
}
