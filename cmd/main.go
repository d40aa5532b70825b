package main

import (
	"healthkidz-backend/config"
	"healthkidz-backend/routes"
	"healthkidz-backend/utils"
)

func main() {
	utils.InitLogger()
	config.InitDB()
	r := routes.SetupRouter()
	r.Run(":8080")
}
