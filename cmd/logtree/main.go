// Command logtree emits one structured entry through a logger tree built
// from a YAML configuration and command line flags.
package main

import "github.com/philipp01105/logtree/cmd/logtree/cmd"

func main() {
	cmd.Execute()
}
