package main

import "github.com/couchcryptid/fars-report/internal/cli"

func main() {
	cli.Execute()
}
