/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>
*/
package main

import "github.com/infinity-school/portfolio-apiserver/cmd"

func main() {
	cmd.Execute()
}
