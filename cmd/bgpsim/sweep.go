/* ==================================================================================== *\
    sweep.go

    bgpsim sweep: run a scenario across several adoption percentages,
    num_trials times each, persisting every outcome to a sqlite trial
    store. Fan-out follows rib.go's count_ribs shape exactly: build the
    list of work items as strings, then pool.Launch_pool(n, items, f).
\* ==================================================================================== */

package main

import (
	"fmt"
	"log"
	"math/rand"
	"strconv"
	"strings"
	"time"

	pool "github.com/Emeline-1/pool"

	"github.com/Emeline-1/bgpsimulator/asgraph"
	"github.com/Emeline-1/bgpsimulator/asn"
	"github.com/Emeline-1/bgpsimulator/ribengine"
	"github.com/Emeline-1/bgpsimulator/roatrie"
	"github.com/Emeline-1/bgpsimulator/safeset"
	"github.com/Emeline-1/bgpsimulator/trialstore"
)

func parsePercentages(s string) []float64 {
	var out []float64
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		p, err := strconv.ParseFloat(part, 64)
		if err != nil {
			log.Fatalf("bgpsim sweep: invalid percentage %q: %v", part, err)
		}
		out = append(out, p)
	}
	return out
}

// randomAdoptingASNs samples percent% of g's ASNs, mirroring
// Scenario::get_random_adopting_asns' swap-remove sampling without replacement.
func randomAdoptingASNs(g *asgraph.Graph, percent float64, rng *rand.Rand) map[asn.ASN]struct{} {
	all := make([]asn.ASN, 0, g.Len())
	for _, a := range g.All() {
		all = append(all, a.ASN)
	}
	want := int(float64(len(all)) * percent / 100.0)
	adopting := make(map[asn.ASN]struct{}, want)
	for i := 0; i < want && len(all) > 0; i++ {
		idx := rng.Intn(len(all))
		adopting[all[idx]] = struct{}{}
		all[idx] = all[len(all)-1]
		all = all[:len(all)-1]
	}
	return adopting
}

func launchSweep(args []string) {
	asrel, scenarioName, settingsName, dbPath, trials, percentagesArg := handleArgsSweep(args)

	g := loadGraph(asrel)
	settings, err := settingsFromName(settingsName)
	if err != nil {
		log.Fatal(err)
	}
	percentages := parsePercentages(percentagesArg)

	store, err := trialstore.Open(dbPath)
	if err != nil {
		log.Fatal(err)
	}
	defer store.Close()

	rand.Seed(time.Now().UnixNano())

	everAdopted := safeset.New()

	var items []string
	for _, pct := range percentages {
		for i := 0; i < trials; i++ {
			items = append(items, fmt.Sprintf("%g|%d", pct, i))
		}
	}

	runTrial := func(item string) {
		parts := strings.SplitN(item, "|", 2)
		pct, _ := strconv.ParseFloat(parts[0], 64)
		idx, _ := strconv.Atoi(parts[1])

		rng := rand.New(rand.NewSource(time.Now().UnixNano() + int64(idx)))
		s := buildScenario(scenarioName, asn.Victim, asn.Attacker)

		adopting := randomAdoptingASNs(g, pct, rng)
		everAdopted.AddAll(adopting)

		v := roatrie.NewValidator()
		e := ribengine.NewEngine(g, asn.BGP, v, nil, nil)
		e.AdoptSettings(adopting, settings)
		s.SetupEngine(e, v)
		e.Run(10)

		success := s.IsSuccessful(e)
		if _, err := store.Record(trialstore.Trial{
			Scenario:        s.Name(),
			Settings:        settingsName,
			AdoptionPercent: pct,
			TrialIndex:      idx,
			Success:         success,
			SnapshotDigest:  fmt.Sprintf("%d-ases", len(e.States)),
		}); err != nil {
			log.Println("bgpsim sweep: record trial:", err)
		}
	}

	pool.Launch_pool(8, items, runTrial)

	fmt.Printf("%d/%d ASes adopted %s in at least one trial\n", everAdopted.Len(), g.Len(), settingsName)

	for _, pct := range percentages {
		rate, err := store.SuccessRate(scenarioName, settingsName, pct)
		if err != nil {
			log.Println("bgpsim sweep: success rate:", err)
			continue
		}
		fmt.Printf("%s %s %g%%: success rate %.2f%%\n", scenarioName, settingsName, pct, rate*100)
	}
}
