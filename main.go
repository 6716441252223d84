package main

import (
	"context"
	"os"

	"greenjourney/internal/cli"
	"greenjourney/internal/utils"
)

func main() {
	if err := cli.NewRootCommand().ExecuteContext(context.Background()); err != nil {
		utils.ErrorLogger.Error(err)
		os.Exit(1)
	}
}
