package main

import "docs-whitelabel/cmd"

func main() {
	cmd.Execute()
}
