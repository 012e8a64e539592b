// Command zoompan runs the pan/zoom viewport interactively, replays input
// scripts against the engine and renders snapshots without a window.
package main

import "github.com/phanxgames/zoompan/cmd/zoompan/cmd"

func main() {
	cmd.Execute()
}
