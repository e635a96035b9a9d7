package main

import (
	"log"
)

// Build details injected with -ldflags at compile time.
var (
	GitCommit string
	GitTag    string
	BuildTime string
)

// @title Book Manager API
// @version 1.0
// @description In-memory books inventory with checkout tracking.
// @BasePath /
func main() {
	app, err := NewApp()
	if err != nil {
		log.Fatal("book manager failed to initialize: ", err)
	}
	if err = app.Run(); err != nil {
		log.Fatal("book manager exited. check logs for more details: ", err)
	}
}
