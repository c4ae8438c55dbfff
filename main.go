package main

import "github.com/frahmantamala/companion-booking/cmd"

func main() {
	cmd.Execute()
}
