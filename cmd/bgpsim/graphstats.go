/* ==================================================================================== *\
    graphstats.go

    bgpsim graphstats: propagation ranks and connected components, the
    diagnostics a driver runs before trusting a CAIDA snapshot for a sweep.
\* ==================================================================================== */

package main

import "fmt"

func launchGraphStats(args []string) {
	asrel := handleArgsGraphStats(args)
	g := loadGraph(asrel)

	fmt.Println("ASes:", g.Len())
	fmt.Println("Propagation ranks:", len(g.PropagationRanks))
	for i, rank := range g.PropagationRanks {
		fmt.Printf("  rank %d: %d ASes\n", i, len(rank))
	}

	components := g.ConnectedComponents()
	fmt.Println("Connected components:", len(components))
	if len(components) > 1 {
		fmt.Println("  warning: graph is not fully connected; a sweep over it may silently produce empty snapshots for islanded ASes")
	}
	for i, c := range components {
		fmt.Printf("  component %d: %d ASes\n", i, len(c))
	}
}
