package main

import (
	"github.com/hasanuzzaman/attendance-core/cmd"
)

func main() {
	cmd.Execute()
}
