package main

import "github.com/trustdesk/trustdesk/cmd"

func main() {
	cmd.Execute()
}
