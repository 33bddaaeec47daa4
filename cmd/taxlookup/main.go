// Package main provides the taxlookup CLI application.
package main

import "github.com/gnames/taxlookup/cmd"

func main() {
	cmd.Execute()
}
