package main

import (
	"os"

	"github.com/finansync/finansync-api/app"
)

func main() {
	err := app.Execute()
	if err != nil {
		os.Exit(1)
	}
}
