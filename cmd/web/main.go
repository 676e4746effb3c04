package main

import "feedback_backend/internal/app"

func main() {
	app.Run()
}
