/* ==================================================================================== *\
    caida.go

    Parses CAIDA's "serial-2" AS-relationship file format into Builders,
    the same format anaximander_simulator's read_as_rel/read_providers
    (caida_file_readers.go) consume:

        # input clique: 174 209 286 ...
        # IXP ASes: 1 2 3 ...
        <provider-asn>|<customer-asn>|-1
        <peer-asn>|<peer-asn>|0

    Comment lines carry two extra annotations the data lines don't: the
    Tier-1 clique (ASes CAIDA determined have no providers) and the set of
    IXP route-server ASNs to exclude from ordinary peering analysis.
\* ==================================================================================== */

package asgraph

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/Emeline-1/bgpsimulator/asn"
)

const (
	cliquePrefix = "# input clique:"
	ixpPrefix    = "# IXP ASes:"
)

// ParseCAIDAFile reads a CAIDA relationship file and returns one Builder
// per AS mentioned in a data line. ASNs named only in a "# IXP ASes:"
// comment get a Builder of their own (with IXP set) even if they never
// appear in a relationship line, mirroring read_providers' treatment of
// the file's comment header as authoritative metadata.
func ParseCAIDAFile(r io.Reader) ([]Builder, error) {
	builders := make(map[asn.ASN]*Builder)
	get := func(a asn.ASN) *Builder {
		b, ok := builders[a]
		if !ok {
			b = &Builder{ASN: a}
			builders[a] = b
		}
		return b
	}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)

	for scanner.Scan() {
		line := scanner.Text()
		switch {
		case strings.HasPrefix(line, cliquePrefix):
			continue // the clique is re-derived from the graph's own Tier1 computation
		case strings.HasPrefix(line, ixpPrefix):
			for _, tok := range strings.Fields(strings.TrimPrefix(line, ixpPrefix)) {
				a, err := parseASN(tok)
				if err != nil {
					return nil, fmt.Errorf("asgraph: parsing IXP ASes header: %w", err)
				}
				get(a).IXP = true
			}
		case strings.HasPrefix(line, "#"):
			continue
		case line == "":
			continue
		default:
			fields := strings.Split(line, "|")
			if len(fields) < 3 {
				return nil, fmt.Errorf("asgraph: malformed relationship line %q", line)
			}
			left, err := parseASN(fields[0])
			if err != nil {
				return nil, fmt.Errorf("asgraph: parsing %q: %w", line, err)
			}
			right, err := parseASN(fields[1])
			if err != nil {
				return nil, fmt.Errorf("asgraph: parsing %q: %w", line, err)
			}
			switch strings.TrimSpace(fields[2]) {
			case "-1":
				get(left).Customers = append(get(left).Customers, right)
				get(right).Providers = append(get(right).Providers, left)
			case "0":
				get(left).Peers = append(get(left).Peers, right)
				get(right).Peers = append(get(right).Peers, left)
			default:
				return nil, fmt.Errorf("asgraph: unrecognized relationship code %q in %q", fields[2], line)
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("asgraph: reading CAIDA file: %w", err)
	}

	out := make([]Builder, 0, len(builders))
	for _, b := range builders {
		out = append(out, *b)
	}
	return out, nil
}

func parseASN(s string) (asn.ASN, error) {
	n, err := strconv.ParseUint(strings.TrimSpace(s), 10, 32)
	if err != nil {
		return 0, err
	}
	return asn.ASN(n), nil
}
