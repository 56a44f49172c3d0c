package wire

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mithrel/catalogsync/internal/catalog"
	"github.com/mithrel/catalogsync/internal/catalog/catalogtest"
	"github.com/mithrel/catalogsync/internal/config"
)

func loadConfig(t *testing.T, catalogDoc string) *viper.Viper {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	path := filepath.Join(dir, "catalog.xml")
	require.NoError(t, os.WriteFile(path, []byte(catalogDoc), 0o644))

	v := viper.New()
	require.NoError(t, config.Load(context.Background(), v))
	v.Set("catalog.path", path)
	return v
}

func TestBuildApp(t *testing.T) {
	v := loadConfig(t, catalogtest.SampleXML)
	v.Set("render.labels.package", "Bundle")
	v.Set("log.level", "debug")
	v.Set("log.format", "json")

	var logs bytes.Buffer
	app, err := BuildApp(context.Background(), v, &logs)
	require.NoError(t, err)

	assert.Len(t, app.Catalog.IDs(), 14)
	assert.Contains(t, logs.String(), `"message":"catalog loaded"`)

	n, ok := app.Resolver.Resolve("service-1.1")
	require.True(t, ok)
	assert.Contains(t, app.Renderer.Render(n, "1.1").Banner, ">Bundle<")

	out, rep := app.Injector.Inject(`<div id="service-1.1">x</div>`)
	assert.Equal(t, 1, rep.Blocks)
	assert.Contains(t, out, "Wireframes")
}

func TestBuildAppMalformedCatalog(t *testing.T) {
	v := loadConfig(t, "<catalog><category id=\"1\">")
	_, err := BuildApp(context.Background(), v, &bytes.Buffer{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, catalog.ErrMalformedCatalog))
}

func TestBuildAppCanceled(t *testing.T) {
	v := loadConfig(t, catalogtest.SampleXML)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := BuildApp(ctx, v, &bytes.Buffer{})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestBuildAppInvalidConfig(t *testing.T) {
	v := loadConfig(t, catalogtest.SampleXML)
	v.Set("log.format", "xml")
	_, err := BuildApp(context.Background(), v, &bytes.Buffer{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "log.format")
}
