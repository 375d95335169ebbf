package main

import (
	"github.com/workielk/workie-api/cmd/cli/commands"
	"github.com/workielk/workie-api/internal/logger"
)

func main() {
	logger.Initialize()
	commands.Execute()
}
