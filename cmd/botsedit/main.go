/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package main

import "github.com/ssargent/botsedit/cmd/botsedit/cmd"

func main() {
	cmd.Execute()
}
