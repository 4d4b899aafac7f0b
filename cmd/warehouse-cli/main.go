package main

import (
	"github.com/kestrel-robotics/warehouse-core/internal/adapters/cli"
)

func main() {
	cli.Execute()
}
