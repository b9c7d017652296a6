/* ==================================================================================== *\
    main.go

    Entry point. Dispatches to one of five subcommands by hand off
    os.Args[1], the same shape main.go's `switch command := os.Args[1]`
    uses for anaximander's rib_parsing/strategy/simulation modes.
\* ==================================================================================== */

package main

import (
	"log"
	"os"
)

func usage() {
	println("\nUsage of bgpsim:\n")
	println("bgpsim has five subcommands:")
	println("  - run:        simulate one scenario once and print the local_rib snapshot.")
	println("  - sweep:      run a scenario across adoption percentages, pool-parallel.")
	println("  - caida:      load and summarize a CAIDA relationship file.")
	println("  - graphstats: cycle check (on load), propagation ranks, connected components.")
	println("  - roas:       load a ROA set and report overlapping/redundant entries.")
	println("\nType")
	println("  bgpsim [subcommand] -h")
	println("for further information on each subcommand.\n")
}

func main() {
	log.SetFlags(0)
	if len(os.Args) == 1 {
		usage()
		return
	}

	switch command := os.Args[1]; command {
	case "run":
		launchRun(os.Args[2:])
	case "sweep":
		launchSweep(os.Args[2:])
	case "caida":
		launchCaida(os.Args[2:])
	case "graphstats":
		launchGraphStats(os.Args[2:])
	case "roas":
		launchROAs(os.Args[2:])
	default:
		usage()
		os.Exit(1)
	}
}
