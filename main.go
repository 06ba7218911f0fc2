package main

import "github.com/jmehdipour/credit-insights/cmd"

func main() {
	cmd.Execute()
}
