package main

import "escapelog-backend/cmd/crawl-cli/cmd"

func main() {
	cmd.Execute()
}
