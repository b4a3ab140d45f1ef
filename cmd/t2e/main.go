package main

import (
	"fmt"
	"os"

	"transcribe-translate/cmd/t2e/cmd"
	"transcribe-translate/internal/config"
)

func main() {
	if err := config.LoadEnv(); err != nil {
		fmt.Fprintf(os.Stderr, "configuration warning: %v\n", err)
	}

	cmd.Execute()
}
