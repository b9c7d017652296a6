/* ==================================================================================== *\
    overlap.go

    Diagnostic: flag ROAs whose prefix has a more specific ROA nested
    beneath it, a possible redundancy an operator importing a ROA set
    from an RPKI cache is likely to want surfaced. Only prefixes are
    compared; the ROAs' origins are not checked against each other.

    Built the same way anaximander_simulator finds RIB overlays
    (overlays_processing.go): insert every prefix into a radix tree keyed
    by its binary string, then walk the tree post-order comparing each
    parent node against its direct children.
\* ==================================================================================== */

package roatrie

import (
	"fmt"

	radix "github.com/Emeline-1/radix"
)

// FindOverlappingROAs reports, for each ROA prefix that has one or more
// more-specific ROAs nested directly beneath it in the trie, the CIDR
// strings of those more-specific ROAs. A ROA with no overlap is omitted.
func FindOverlappingROAs(roas []ROA) map[string][]string {
	tree := radix.New()
	for _, roa := range roas {
		tree.Insert(binaryString(roa.Prefix), roa.Prefix.String())
	}

	overlaps := make(map[string][]string)
	tree.Walk_post(func(parent *radix.LeafNode, children []*radix.LeafNode) {
		if parent.Val == nil || len(children) == 0 {
			return
		}
		aggregate, _ := parent.Val.(string)
		for _, child := range children {
			specific, _ := child.Val.(string)
			if specific == "" {
				continue
			}
			overlaps[aggregate] = append(overlaps[aggregate], specific)
		}
	})
	return overlaps
}

// DescribeOverlaps renders FindOverlappingROAs's result as one line per
// aggregate, for use by the roas CLI subcommand.
func DescribeOverlaps(overlaps map[string][]string) []string {
	lines := make([]string, 0, len(overlaps))
	for aggregate, specifics := range overlaps {
		lines = append(lines, fmt.Sprintf("%s overlaid by %v", aggregate, specifics))
	}
	return lines
}
