/* ==================================================================================== *\
    caida.go

    bgpsim caida: load a CAIDA relationship file and print a summary —
    AS count, tier-1 count, IXP count, largest provider cone.
\* ==================================================================================== */

package main

import (
	"fmt"
	"os"

	"github.com/Emeline-1/bgpsimulator/asgraph"
	"github.com/Emeline-1/bgpsimulator/asn"
	tree "github.com/Emeline-1/bgpsimulator/tree"
)

func launchCaida(args []string) {
	asrel := handleArgsCaida(args)
	g := loadGraph(asrel)

	tier1 := len(g.Group(asn.Tier1))
	ixp := len(g.Group(asn.IXP))
	stubs := len(g.Group(asn.Stubs))
	multihomed := len(g.Group(asn.Multihomed))
	transit := len(g.Group(asn.Transit))

	fmt.Println("ASes:      ", g.Len())
	fmt.Println("Tier-1:    ", tier1)
	fmt.Println("IXP:       ", ixp)
	fmt.Println("Stubs:     ", stubs)
	fmt.Println("Multihomed:", multihomed)
	fmt.Println("Transit:   ", transit)

	var widestCone asn.ASN
	widest := -1
	for a := range g.Group(asn.Tier1) {
		node, _ := g.AS(a)
		if n := len(node.ProviderConeASNs); n > widest {
			widest, widestCone = n, a
		}
	}
	if widest >= 0 {
		fmt.Printf("Widest provider cone: AS%d (%d ASes)\n", widestCone, widest)
		printCustomerTree(g, widestCone, 3)
	}
}

// printCustomerTree renders the customer hierarchy under root, down to
// maxDepth levels, as an ASCII tree (tree.Tree.Fprint).
func printCustomerTree(g *asgraph.Graph, root asn.ASN, maxDepth int) {
	t := tree.Tree{}
	var walk func(a asn.ASN, path []string, depth int)
	walk = func(a asn.ASN, path []string, depth int) {
		node, ok := g.AS(a)
		if !ok || depth > maxDepth {
			return
		}
		t.Add(path, func(string, interface{}) {}, func(string, interface{}) {}, nil)
		for _, c := range node.Customers {
			walk(c, append(append([]string{}, path...), fmt.Sprintf("AS%d", c)), depth+1)
		}
	}
	walk(root, []string{fmt.Sprintf("AS%d", root)}, 1)

	fmt.Println("Customer cone (depth 3):")
	t.Fprint(os.Stdout, true, "")
}
