package main

import (
	log "github.com/sirupsen/logrus"

	"github.com/forkkit/ihp/internal/cmd"
)

func main() {
	if err := cmd.Init(); err != nil {
		log.Fatal(err)
	}
}
