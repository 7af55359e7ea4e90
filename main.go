package main

import (
	"os"

	"github.com/oncallops/sla-exporter/cmd"
)

func main() {
	if err := cmd.Run(); err != nil {
		os.Exit(1)
	}
}
