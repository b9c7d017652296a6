/* ==================================================================================== *\
    run.go

    bgpsim run: load a graph, build one scenario, run it once, print the
    local_rib snapshot plus the scenario's is_successful verdict.
\* ==================================================================================== */

package main

import (
	"fmt"
	"log"
	"os"
	"sort"

	"github.com/Emeline-1/bgpsimulator/asn"
	"github.com/Emeline-1/bgpsimulator/ribengine"
	"github.com/Emeline-1/bgpsimulator/roatrie"
	"github.com/Emeline-1/bgpsimulator/scenario"
)

func buildScenario(name string, victim, attacker asn.ASN) scenario.Adapter {
	switch name {
	case "LegitimatePrefixOnly":
		return scenario.NewLegitimatePrefixOnly(victim)
	case "PrefixHijack":
		return scenario.NewPrefixHijack(victim, attacker)
	case "SubprefixHijack":
		return scenario.NewSubprefixHijack(victim, attacker)
	default:
		fmt.Fprintln(os.Stderr, "bgpsim: unknown scenario", name)
		os.Exit(1)
		return nil
	}
}

func launchRun(args []string) {
	asrel, scenarioName, settingsName, victimN, attackerN, rounds := handleArgsRun(args)

	g := loadGraph(asrel)
	settings, err := settingsFromName(settingsName)
	if err != nil {
		log.Fatal(err)
	}

	s := buildScenario(scenarioName, asn.ASN(victimN), asn.ASN(attackerN))

	v := roatrie.NewValidator()
	e := ribengine.NewEngine(g, settings, v, nil, nil)
	s.SetupEngine(e, v)

	if rounds < s.MinPropagationRounds() {
		rounds = s.MinPropagationRounds()
	}
	e.Run(rounds)

	snap := e.GetLocalRIBSnapshot()
	var ases []asn.ASN
	for a := range snap {
		ases = append(ases, a)
	}
	sort.Slice(ases, func(i, j int) bool { return ases[i] < ases[j] })

	for _, a := range ases {
		for prefix, path := range snap[a] {
			fmt.Printf("AS%d\t%s\t%v\n", a, prefix, path)
		}
	}

	fmt.Println("is_successful:", s.IsSuccessful(e))
}
