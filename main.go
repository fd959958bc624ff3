package main

import "github.com/llehouerou/wavestream/cmd"

func main() {
	cmd.Execute()
}
