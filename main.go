package main

import (
	"github.com/ColonelBlimp/morsecoder/cmd"
	"github.com/ColonelBlimp/morsecoder/internal/recovery"
)

func main() {
	defer recovery.HandlePanic()
	cmd.Execute()
}
