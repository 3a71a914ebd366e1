package main

import "github.com/99minutos/dashboard-workspace/cmd/dashboardd/cmd"

func main() {
	cmd.Execute()
}
