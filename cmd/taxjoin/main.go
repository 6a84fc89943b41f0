// cmd/taxjoin/main.go
package main

import (
	"taxjoin/internal/app"
	"taxjoin/internal/appshell"
)

func main() {
	appshell.Main(app.RunContext)
}
