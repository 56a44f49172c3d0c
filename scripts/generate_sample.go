package main

import (
	"fmt"
	mrand "math/rand"
	"os"
	"strings"
)

var (
	categories = []string{"Design", "Web Development", "Content Strategy"}
	words      = []string{"Audit", "Launch", "Sprint", "Review", "Growth", "Care", "Brand", "Insight"}
	currencies = []string{"USD", "EUR", "GBP"}
	periods    = []string{"month", "quarter", "year"}
)

// Writes a sample catalog to stdout, suitable for exercising render and sync
// against something larger than the test fixture.
func main() {
	// Deterministic seed for reproducible output
	mr := mrand.New(mrand.NewSource(42))

	var b strings.Builder
	b.WriteString("<?xml version=\"1.0\" encoding=\"UTF-8\"?>\n")
	b.WriteString("<svc:catalog xmlns:svc=\"urn:catalogsync:services\">\n")
	for ci, cat := range categories {
		cid := fmt.Sprint(ci + 1)
		fmt.Fprintf(&b, "  <svc:category id=%q>\n", cid)
		fmt.Fprintf(&b, "    <svc:id>category-%s</svc:id>\n", strings.ToLower(strings.ReplaceAll(cat, " ", "-")))
		fmt.Fprintf(&b, "    <svc:name>%s</svc:name>\n", cat)
		fmt.Fprintf(&b, "    <svc:description>Everything we offer for %s.</svc:description>\n", strings.ToLower(cat))

		b.WriteString("    <svc:packages>\n")
		npkg := 2 + mr.Intn(3)
		for p := 1; p <= npkg; p++ {
			bid := fmt.Sprintf("%s.%d", cid, p)
			fmt.Fprintf(&b, "      <svc:package id=%q>\n", bid)
			fmt.Fprintf(&b, "        <svc:name>%s %s</svc:name>\n", words[mr.Intn(len(words))], cat)
			b.WriteString("        <svc:tiers>\n")
			ntier := 1 + mr.Intn(3)
			for t := 1; t <= ntier; t++ {
				fmt.Fprintf(&b, "          <svc:tier id=\"%s.%d\">\n", bid, t)
				fmt.Fprintf(&b, "            <svc:name>Tier %d</svc:name>\n", t)
				fmt.Fprintf(&b, "            <svc:pricing><svc:fixed amount=\"%d\" currency=%q/></svc:pricing>\n",
					(1+mr.Intn(20))*250, currencies[mr.Intn(len(currencies))])
				fmt.Fprintf(&b, "            <svc:deliverables><svc:item>%s report</svc:item></svc:deliverables>\n", words[mr.Intn(len(words))])
				b.WriteString("          </svc:tier>\n")
			}
			b.WriteString("        </svc:tiers>\n")
			b.WriteString("      </svc:package>\n")
		}
		b.WriteString("    </svc:packages>\n")

		rid := fmt.Sprintf("%s.%d", cid, npkg+1)
		b.WriteString("    <svc:retainers>\n")
		fmt.Fprintf(&b, "      <svc:retainer id=%q>\n", rid)
		fmt.Fprintf(&b, "        <svc:name>%s Retainer</svc:name>\n", cat)
		fmt.Fprintf(&b, "        <svc:modules><svc:module id=\"%s.1\"><svc:name>Monthly %s</svc:name>", rid, words[mr.Intn(len(words))])
		fmt.Fprintf(&b, "<svc:pricing><svc:recurring amount=\"%d\" currency=\"USD\" frequency=%q/></svc:pricing></svc:module></svc:modules>\n",
			(1+mr.Intn(10))*100, periods[mr.Intn(len(periods))])
		b.WriteString("      </svc:retainer>\n")
		b.WriteString("    </svc:retainers>\n")
		b.WriteString("  </svc:category>\n")
	}
	b.WriteString("</svc:catalog>\n")

	if _, err := os.Stdout.WriteString(b.String()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
