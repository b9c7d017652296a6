/* ==================================================================================== *\
    components.go

    Connectivity diagnostic: build an undirected edge for every
    peer/provider/customer relationship and report connected components,
    the same way overlays_processing.go's process_overlays uses
    basic_graph to find the transitive closure of RIB prefix overlays.
    A CAIDA snapshot with disconnected islands produces a simulation where
    some ASes can never hear an announcement at all; this catches that
    before a run rather than after an empty RIB is mistaken for a defense
    working.
\* ==================================================================================== */

package asgraph

import (
	"strconv"

	graph "github.com/Emeline-1/basic_graph"

	"github.com/Emeline-1/bgpsimulator/asn"
)

// ConnectedComponents returns every connected component of the graph's
// undirected relationship edges, each component as a slice of ASNs.
func (g *Graph) ConnectedComponents() [][]asn.ASN {
	bg := graph.New()

	seen := make(map[asn.ASN]bool, len(g.ases))
	for a, node := range g.ases {
		seen[a] = true
		for _, rel := range [][]asn.ASN{node.Providers, node.Peers, node.Customers} {
			for _, other := range rel {
				bg.Add_edge(asnKey(a), asnKey(other))
			}
		}
	}

	var components [][]asn.ASN
	inComponent := make(map[asn.ASN]bool, len(g.ases))

	bg.Set_iterator()
	for bg.Next_connected_component() {
		keys := bg.Connected_component()
		component := make([]asn.ASN, 0, len(keys))
		for _, k := range keys {
			a, err := parseASN(k)
			if err != nil {
				continue
			}
			component = append(component, a)
			inComponent[a] = true
		}
		components = append(components, component)
	}

	// ASes with zero edges never reach basic_graph at all; each is its
	// own singleton component.
	for a := range seen {
		if !inComponent[a] {
			components = append(components, []asn.ASN{a})
		}
	}
	return components
}

func asnKey(a asn.ASN) string {
	return strconv.FormatUint(uint64(a), 10)
}
