/* ==================================================================================== *\
    args.go

    Per-subcommand argument handling, one flag.NewFlagSet per subcommand,
    mirroring anaximander_simulator's args.go handle_args_* functions.
\* ==================================================================================== */

package main

import (
	"flag"
	"os"
)

func handleArgsRun(args []string) (asrel, scenarioName, settingsName string, victim, attacker, rounds int) {
	cmd := flag.NewFlagSet("run", flag.ExitOnError)
	cmd.StringVar(&asrel, "asrel", "", "CAIDA file containing the AS relationships")
	cmd.StringVar(&scenarioName, "scenario", "LegitimatePrefixOnly", "LegitimatePrefixOnly, PrefixHijack, or SubprefixHijack")
	cmd.StringVar(&settingsName, "settings", "BGP", "policy extension every AS runs by default")
	cmd.IntVar(&victim, "victim", 777, "victim ASN")
	cmd.IntVar(&attacker, "attacker", 666, "attacker ASN (ignored by LegitimatePrefixOnly)")
	cmd.IntVar(&rounds, "rounds", 10, "number of propagate_round iterations to run")
	cmd.Parse(args)
	if asrel == "" {
		println("bgpsim run: -asrel is required")
		os.Exit(-1)
	}
	return
}

func handleArgsSweep(args []string) (asrel, scenarioName, settingsName, dbPath string, trials int, percentages string) {
	cmd := flag.NewFlagSet("sweep", flag.ExitOnError)
	cmd.StringVar(&asrel, "asrel", "", "CAIDA file containing the AS relationships")
	cmd.StringVar(&scenarioName, "scenario", "SubprefixHijack", "LegitimatePrefixOnly, PrefixHijack, or SubprefixHijack")
	cmd.StringVar(&settingsName, "settings", "ROV", "policy extension adopting ASes run")
	cmd.StringVar(&dbPath, "db", "bgpsim_trials.db", "sqlite file to persist trial outcomes into")
	cmd.IntVar(&trials, "trials", 10, "number of trials per adoption percentage")
	cmd.StringVar(&percentages, "percentages", "10,20,50,80,99", "comma-separated adoption percentages")
	cmd.Parse(args)
	if asrel == "" {
		println("bgpsim sweep: -asrel is required")
		os.Exit(-1)
	}
	return
}

func handleArgsCaida(args []string) (asrel string) {
	cmd := flag.NewFlagSet("caida", flag.ExitOnError)
	cmd.StringVar(&asrel, "asrel", "", "CAIDA file containing the AS relationships")
	cmd.Parse(args)
	if asrel == "" {
		println("bgpsim caida: -asrel is required")
		os.Exit(-1)
	}
	return
}

func handleArgsGraphStats(args []string) (asrel string) {
	cmd := flag.NewFlagSet("graphstats", flag.ExitOnError)
	cmd.StringVar(&asrel, "asrel", "", "CAIDA file containing the AS relationships")
	cmd.Parse(args)
	if asrel == "" {
		println("bgpsim graphstats: -asrel is required")
		os.Exit(-1)
	}
	return
}
