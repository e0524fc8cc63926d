package main

import (
	"github.com/identity-hub/apiserver/cmd"
	"github.com/identity-hub/apiserver/internal/logger"
)

func main() {
	logger.Init()
	cmd.Execute()
}
