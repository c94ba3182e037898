package main

import "organmatch_backend/internal/app"

func main() {
	app.Run()
}
