package main

import (
	"contracthub/config"
	"contracthub/internal/api"
)

func main() {
	cfg := config.LoadConfig()
	api.StartServer(cfg)
}
