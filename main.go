/*
Copyright © 2025 Matt Barker
*/
package main

import "github.com/MBarkerUK/apt-kernel-manager/cmd"

func main() {
	cmd.Execute()
}
