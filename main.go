package main

import "incidentlens/internal/app"

func main() {
	app.Main()
}
