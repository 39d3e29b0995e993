package main

import (
	"os"

	"github.com/leonardinius/goexpr/cmd"
)

func main() {
	app := cmd.NewExprApp()
	os.Exit(app.Main(os.Args[1:]))
}
