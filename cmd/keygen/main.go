package main

import (
	"os"

	"dpgpid/cmd/keygen/commands"
	"dpgpid/internal/app"
)

func main() {
	os.Exit(app.ExitCode(commands.Execute()))
}
