package main

import "github.com/oshokin/alarm-reminder/cmd/alarm-reminder/cmd"

func main() {
	cmd.Execute()
}
