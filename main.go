package main

import "github.com/rolodexhq/rolodex/cmd"

func main() {
	cmd.Execute()
}
