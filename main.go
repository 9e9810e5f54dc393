package main

import "github.com/simba1145141919810/ai-customer-bot-v3/cmd"

func main() {
	cmd.Execute()
}
