/* ==================================================================================== *\
    roas.go

    bgpsim roas: load a ROA set and report overlapping/redundant entries
    (roatrie.FindOverlappingROAs/DescribeOverlaps), the diagnostic an
    operator importing a ROA export from an RPKI cache runs before
    trusting it for a simulation.
\* ==================================================================================== */

package main

import (
	"bufio"
	"flag"
	"fmt"
	"net/netip"
	"os"
	"strconv"
	"strings"

	"github.com/Emeline-1/bgpsimulator/asn"
	"github.com/Emeline-1/bgpsimulator/roatrie"
)

func handleArgsROAs(args []string) (roaFile string) {
	cmd := flag.NewFlagSet("roas", flag.ExitOnError)
	cmd.StringVar(&roaFile, "roas", "", "CSV file of prefix,origin_asn[,max_length] ROA entries")
	cmd.Parse(args)
	if roaFile == "" {
		println("bgpsim roas: -roas is required")
		os.Exit(-1)
	}
	return
}

// loadROAs reads one ROA per line as "prefix,origin_asn[,max_length]",
// blank lines and lines starting with '#' ignored.
func loadROAs(path string) []roatrie.ROA {
	f, err := os.Open(path)
	if err != nil {
		fmt.Fprintln(os.Stderr, "bgpsim: open", path, ":", err)
		os.Exit(1)
	}
	defer f.Close()

	var roas []roatrie.ROA
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Split(line, ",")
		if len(fields) < 2 {
			fmt.Fprintln(os.Stderr, "bgpsim: malformed ROA line:", line)
			os.Exit(1)
		}
		prefix, err := netip.ParsePrefix(strings.TrimSpace(fields[0]))
		if err != nil {
			fmt.Fprintln(os.Stderr, "bgpsim: parse ROA prefix:", err)
			os.Exit(1)
		}
		origin, err := strconv.ParseUint(strings.TrimSpace(fields[1]), 10, 32)
		if err != nil {
			fmt.Fprintln(os.Stderr, "bgpsim: parse ROA origin ASN:", err)
			os.Exit(1)
		}
		var maxLength *uint8
		if len(fields) >= 3 && strings.TrimSpace(fields[2]) != "" {
			ml, err := strconv.ParseUint(strings.TrimSpace(fields[2]), 10, 8)
			if err != nil {
				fmt.Fprintln(os.Stderr, "bgpsim: parse ROA max length:", err)
				os.Exit(1)
			}
			v := uint8(ml)
			maxLength = &v
		}
		roas = append(roas, roatrie.NewROA(prefix, asn.ASN(origin), maxLength))
	}
	if err := scanner.Err(); err != nil {
		fmt.Fprintln(os.Stderr, "bgpsim: read", path, ":", err)
		os.Exit(1)
	}
	return roas
}

func launchROAs(args []string) {
	roaFile := handleArgsROAs(args)
	roas := loadROAs(roaFile)

	fmt.Println("ROAs loaded:", len(roas))

	overlaps := roatrie.FindOverlappingROAs(roas)
	if len(overlaps) == 0 {
		fmt.Println("No overlapping ROAs found.")
		return
	}
	fmt.Println("Overlapping ROAs:")
	for _, line := range roatrie.DescribeOverlaps(overlaps) {
		fmt.Println(" ", line)
	}
}
