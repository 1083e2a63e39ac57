/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package main

import (
	"github.com/cortexkv/kvdb/cmd/kvdb/cmd"
)

func main() {
	cmd.Execute()
}
