// Package catalogtest provides a shared catalog fixture for tests.
package catalogtest

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mithrel/catalogsync/internal/catalog"
)

// SampleXML is a small catalog exercising every node kind and price shape.
const SampleXML = `<?xml version="1.0" encoding="UTF-8"?>
<svc:catalog xmlns:svc="urn:catalogsync:services">
  <svc:category id="1">
    <svc:id>category-design</svc:id>
    <svc:name>Design</svc:name>
    <svc:description>Visual identity and interface work.</svc:description>
    <svc:packages>
      <svc:package id="1.1">
        <svc:name>Starter</svc:name>
        <svc:description>A first pass at your product.</svc:description>
        <svc:deliverables>
          <svc:item>Wireframes</svc:item>
        </svc:deliverables>
      </svc:package>
      <svc:package id="1.2">
        <svc:id>package-brand-kit</svc:id>
        <svc:name>Brand Kit</svc:name>
        <svc:tiers>
          <svc:tier id="1.2.1">
            <svc:name>Basic</svc:name>
            <svc:pricing>
              <svc:fixed amount="500" currency="USD"/>
              <svc:custom-quote basis="Extra assets quoted separately"/>
            </svc:pricing>
            <svc:deliverables>
              <svc:item>Logo</svc:item>
              <svc:item>Palette</svc:item>
            </svc:deliverables>
            <svc:discounts>
              <svc:discount condition="Nonprofit" amount="15%"/>
            </svc:discounts>
          </svc:tier>
          <svc:tier id="1.2.2">
            <svc:name>Pro</svc:name>
            <svc:pricing>
              <svc:recurring>
                <svc:amount>200</svc:amount>
                <svc:currency>USD</svc:currency>
                <svc:frequency>month</svc:frequency>
              </svc:recurring>
            </svc:pricing>
            <svc:included-services>
              <svc:item>Brand audit</svc:item>
            </svc:included-services>
          </svc:tier>
        </svc:tiers>
      </svc:package>
    </svc:packages>
    <svc:retainers>
      <svc:retainer id="1.3">
        <svc:name>Design Retainer</svc:name>
        <svc:modules>
          <svc:module id="1.3.1">
            <svc:name>Review Session</svc:name>
            <svc:pricing>
              <svc:per-session amount="150" currency="EUR"/>
            </svc:pricing>
          </svc:module>
          <svc:module id="1.3.2">
            <svc:name>Design Ops</svc:name>
            <svc:pricing>
              <svc:ranged basis="Scoped per quarter"/>
            </svc:pricing>
          </svc:module>
        </svc:modules>
      </svc:retainer>
    </svc:retainers>
  </svc:category>
  <svc:category id="2">
    <svc:name>Web Development</svc:name>
    <svc:packages>
      <svc:package id="2.1">
        <svc:name>Launch</svc:name>
        <svc:included-services>
          <svc:item>Hosting setup</svc:item>
          <svc:item>Analytics</svc:item>
        </svc:included-services>
      </svc:package>
    </svc:packages>
    <svc:retainers>
      <svc:retainer id="2.2">
        <svc:id>retainer-care</svc:id>
        <svc:name>Care Plan</svc:name>
        <svc:modules>
          <svc:module id="2.2.1">
            <svc:name>Updates</svc:name>
            <svc:pricing>
              <svc:ranged min="1000" max="3000" currency="USD" basis="per year"/>
            </svc:pricing>
          </svc:module>
        </svc:modules>
      </svc:retainer>
    </svc:retainers>
  </svc:category>
  <svc:category id="3">
    <svc:name>Content Strategy</svc:name>
  </svc:category>
  <svc:category id="7">
    <svc:name>Consulting</svc:name>
  </svc:category>
</svc:catalog>
`

// Load parses SampleXML.
func Load(t testing.TB) *catalog.Index {
	t.Helper()
	return Parse(t, SampleXML)
}

// Parse parses doc and fails the test on error.
func Parse(t testing.TB, doc string) *catalog.Index {
	t.Helper()
	idx, err := catalog.Parse(strings.NewReader(doc))
	require.NoError(t, err)
	return idx
}
