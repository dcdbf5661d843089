package main

import (
	"os"

	"omnichat/backend/internal/app"
)

// @title        OmniChat Backend API
// @version      1.0
// @description  Conversation state and orchestration for the multi-provider chat UI.
// @BasePath     /api/v1
func main() {
	os.Exit(app.Run())
}
