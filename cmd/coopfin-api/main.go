package main

import (
	"fmt"

	"github.com/coopfin/coopfin/config"
	"github.com/coopfin/coopfin/mq_client"
	"github.com/coopfin/coopfin/routes"
)

func main() {
	if err := config.InitializeConfig(); err != nil {
		fmt.Println(err.Error())
		return
	}

	if err := mq_client.Connect(); err != nil {
		config.Logger.Errorf("Failed to connect AMQP: %v", err)
	}

	r := routes.SetupRouter()
	// running
	r.Listen(":3000")
}
