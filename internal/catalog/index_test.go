package catalog_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mithrel/catalogsync/internal/catalog"
	"github.com/mithrel/catalogsync/internal/catalog/catalogtest"
)

func TestParseTree(t *testing.T) {
	idx := catalogtest.Load(t)

	cats := idx.Categories()
	require.Len(t, cats, 4)
	assert.Equal(t, "1", cats[0].ID)
	assert.Equal(t, "Design", cats[0].Name)
	assert.Equal(t, "category-design", cats[0].Key)
	assert.Equal(t, catalog.KindCategory, cats[0].Kind)

	design := cats[0]
	require.Len(t, design.Children, 3)
	assert.Equal(t, []string{"1.1", "1.2", "1.3"}, []string{design.Children[0].ID, design.Children[1].ID, design.Children[2].ID})
	assert.Equal(t, catalog.SubkindPackage, design.Children[0].Subkind)
	assert.Equal(t, catalog.SubkindRetainer, design.Children[2].Subkind)
	assert.Equal(t, []string{"Wireframes"}, design.Children[0].Deliverables)

	brand := design.Children[1]
	require.Len(t, brand.Children, 2)
	basic := brand.Children[0]
	assert.Equal(t, catalog.KindPricedUnit, basic.Kind)
	assert.Equal(t, catalog.SubkindTier, basic.Subkind)
	require.NotNil(t, basic.Pricing.Fixed)
	assert.Equal(t, "500", basic.Pricing.Fixed.Amount)
	assert.Equal(t, "USD", basic.Pricing.Fixed.Currency)
	require.NotNil(t, basic.Pricing.CustomQuote)
	assert.Equal(t, []catalog.Discount{{Condition: "Nonprofit", Amount: "15%"}}, basic.Discounts)

	t.Run("price fields as child elements", func(t *testing.T) {
		pro := brand.Children[1]
		require.NotNil(t, pro.Pricing.Recurring)
		assert.Equal(t, "200", pro.Pricing.Recurring.Amount)
		assert.Equal(t, "month", pro.Pricing.Recurring.Frequency)
		assert.Equal(t, []string{"Brand audit"}, pro.IncludedServices)
	})

	t.Run("module subkind", func(t *testing.T) {
		review := design.Children[2].Children[0]
		assert.Equal(t, catalog.SubkindModule, review.Subkind)
		require.NotNil(t, review.Pricing.PerSession)
		assert.Equal(t, "EUR", review.Pricing.PerSession.Currency)
	})
}

func TestIDsOrder(t *testing.T) {
	idx := catalogtest.Load(t)
	assert.Equal(t, []string{
		"1", "1.1", "1.2", "1.2.1", "1.2.2", "1.3", "1.3.1", "1.3.2",
		"2", "2.1", "2.2", "2.2.1",
		"3", "7",
	}, idx.IDs())
	assert.Len(t, idx.Nodes(), 14)
}

func TestParseIgnoresNamespace(t *testing.T) {
	plain := `<catalog><category id="1"><name>Design</name><packages><package id="1.1"><name>Starter</name></package></packages></category></catalog>`
	other := `<x:catalog xmlns:x="urn:other"><x:category id="1"><x:name>Design</x:name><x:packages><x:package id="1.1"><x:name>Starter</x:name></x:package></x:packages></x:category></x:catalog>`

	for name, doc := range map[string]string{"no namespace": plain, "other prefix": other} {
		t.Run(name, func(t *testing.T) {
			idx := catalogtest.Parse(t, doc)
			assert.Equal(t, []string{"1", "1.1"}, idx.IDs())
			assert.Equal(t, "Starter", idx.Categories()[0].Children[0].Name)
		})
	}
}

func TestParseMalformed(t *testing.T) {
	for name, doc := range map[string]string{
		"unclosed": `<catalog><category id="1"></catalog>`,
		"empty":    ``,
	} {
		t.Run(name, func(t *testing.T) {
			_, err := catalog.Parse(strings.NewReader(doc))
			require.Error(t, err)
			assert.True(t, errors.Is(err, catalog.ErrMalformedCatalog))
			var mce *catalog.MalformedCatalogError
			assert.True(t, errors.As(err, &mce))
		})
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()

	t.Run("valid file", func(t *testing.T) {
		path := filepath.Join(dir, "catalog.xml")
		require.NoError(t, os.WriteFile(path, []byte(catalogtest.SampleXML), 0o600))
		idx, err := catalog.Load(context.Background(), path)
		require.NoError(t, err)
		assert.Equal(t, path, idx.Path())
	})

	t.Run("malformed file carries path", func(t *testing.T) {
		path := filepath.Join(dir, "bad.xml")
		require.NoError(t, os.WriteFile(path, []byte("<catalog>"), 0o600))
		_, err := catalog.Load(context.Background(), path)
		require.Error(t, err)
		assert.Contains(t, err.Error(), path)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := catalog.Load(context.Background(), filepath.Join(dir, "nope.xml"))
		require.Error(t, err)
		assert.True(t, errors.Is(err, os.ErrNotExist))
	})

	t.Run("canceled context", func(t *testing.T) {
		path := filepath.Join(dir, "catalog.xml")
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := catalog.Load(ctx, path)
		assert.ErrorIs(t, err, context.Canceled)
	})
}
