/* ==================================================================================== *\
    common.go

    Shared helpers: settings-name parsing and graph loading, used by every
    subcommand the way g_args/read_as_rel are shared across anaximander's
    launch_* functions.
\* ==================================================================================== */

package main

import (
	"fmt"
	"os"

	"github.com/Emeline-1/bgpsimulator/asgraph"
	"github.com/Emeline-1/bgpsimulator/asn"
)

func settingsFromName(name string) (asn.Settings, error) {
	switch name {
	case "BGP", "":
		return asn.BGP, nil
	case "ROV":
		return asn.ROV, nil
	case "PeerROV":
		return asn.PeerROV, nil
	case "OnlyToCustomers", "OTC":
		return asn.OnlyToCustomers, nil
	case "PathEnd":
		return asn.PathEnd, nil
	case "EnforceFirstAS":
		return asn.EnforceFirstAS, nil
	case "ASPA":
		return asn.ASPA, nil
	case "BGPSec":
		return asn.BGPSec, nil
	case "ROVPPV1Lite":
		return asn.ROVPPV1Lite, nil
	case "PeerlockLite":
		return asn.PeerlockLite, nil
	case "ASPathEdgeFilter", "EdgeFilter":
		return asn.EdgeFilter, nil
	default:
		return asn.BGP, fmt.Errorf("unrecognized settings %q", name)
	}
}

// loadGraph builds a graph from a CAIDA relationship file at path.
func loadGraph(path string) *asgraph.Graph {
	f, err := os.Open(path)
	if err != nil {
		fmt.Fprintln(os.Stderr, "bgpsim: open", path, ":", err)
		os.Exit(1)
	}
	defer f.Close()

	builders, err := asgraph.ParseCAIDAFile(f)
	if err != nil {
		fmt.Fprintln(os.Stderr, "bgpsim: parse", path, ":", err)
		os.Exit(1)
	}

	g, err := asgraph.NewGraph(builders)
	if err != nil {
		fmt.Fprintln(os.Stderr, "bgpsim: build graph:", err)
		os.Exit(1)
	}
	return g
}
