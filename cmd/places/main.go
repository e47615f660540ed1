// Package main — точка входа консольного клиента places.
package main

import "github.com/IvanChernomyrdin/go-places/internal/agent/cli"

var (
	// задаются через -ldflags при сборке
	buildVersion = "dev"
	buildDate    = "unknown"
)

func main() {
	cli.Execute(buildVersion, buildDate)
}
