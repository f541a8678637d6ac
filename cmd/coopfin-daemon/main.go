package main

import (
	"fmt"

	"github.com/coopfin/coopfin/config"
	"github.com/coopfin/coopfin/workers/daemons"
)

func main() {
	if err := config.InitializeConfig(); err != nil {
		fmt.Println(err.Error())
		return
	}

	daemon := daemons.NewCronJob()
	daemon.Start()
}
