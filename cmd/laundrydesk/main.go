package main

import "github.com/laundrydesk/laundrydesk/internal/cli"

func main() {
	cli.Execute()
}
