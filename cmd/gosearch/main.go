// Command gosearch runs the search, game-playing and MDP solvers of go-search
// on grid worlds.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/golang/glog"
)

func main() {
	app := NewApp()

	if err := app.Execute(context.Background(), os.Args[1:]); err != nil {
		glog.Flush()
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
