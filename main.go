package main

import "github.com/zhongda-xia/leo-demo/cmd"

func main() {
	cmd.Execute()
}
