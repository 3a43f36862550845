package main

// @title Gym Management API
// @version 1.0.0
// @description Members, trainers and equipment of a single gym.
// @BasePath /api
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

func main() {
	Execute()
}
