package main

import "ipv6-rotator/cmd"

func main() {
	cmd.Execute()
}
