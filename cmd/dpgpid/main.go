package main

import (
	"os"

	"dpgpid/cmd/dpgpid/commands"
	"dpgpid/internal/app"
)

func main() {
	os.Exit(app.ExitCode(commands.Execute()))
}
