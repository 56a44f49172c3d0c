package wire

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/mithrel/catalogsync/internal/catalog"
	"github.com/mithrel/catalogsync/internal/config"
	"github.com/mithrel/catalogsync/internal/inject"
	"github.com/mithrel/catalogsync/internal/logging"
	"github.com/mithrel/catalogsync/internal/render"
	"github.com/mithrel/catalogsync/internal/resolve"
)

// App aggregates the major services for easy injection.
type App struct {
	Cfg       *viper.Viper
	Log       *zap.Logger
	Catalog   *catalog.Index
	Resolver  *resolve.Resolver
	Renderer  *render.Renderer
	Injector  *inject.Injector
	Processor *inject.Processor
}

// BuildApp wires dependencies from an already loaded config. Logs go to
// logOut, or stderr when nil. A catalog that cannot be read or parsed is
// fatal: nothing is processed against a broken catalog.
func BuildApp(ctx context.Context, v *viper.Viper, logOut io.Writer) (*App, error) {
	if err := config.CheckConfigValidity(v); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	if logOut == nil {
		logOut = os.Stderr
	}
	logger, err := logging.New(v.GetString("log.level"), v.GetString("log.format"), logOut)
	if err != nil {
		return nil, err
	}

	path := config.ResolveCatalogPath(v)
	idx, err := catalog.Load(ctx, path)
	if err != nil {
		return nil, err
	}
	logger.Debug("catalog loaded", zap.String("path", path), zap.Int("nodes", len(idx.Nodes())))

	prefix := v.GetString("catalog.id_prefix")
	res := resolve.New(idx,
		resolve.WithPrefix(prefix),
		resolve.WithCategoryMax(v.GetInt("catalog.category_max")),
		resolve.WithLogger(logger.Named("resolve")),
	)
	rnd := render.New(
		render.WithLabels(render.Labels{
			Category: v.GetString("render.labels.category"),
			Package:  v.GetString("render.labels.package"),
			Retainer: v.GetString("render.labels.retainer"),
			Tier:     v.GetString("render.labels.tier"),
			Module:   v.GetString("render.labels.module"),
		}),
		render.WithMarkdownDescriptions(v.GetBool("render.markdown_descriptions")),
	)
	inj := inject.New(idx, res, rnd,
		inject.WithElement(v.GetString("inject.wrapper_element")),
		inject.WithPrefix(prefix),
		inject.WithMarkerDiscovery(v.GetBool("inject.resolve_markers")),
		inject.WithLogger(logger.Named("inject")),
	)
	proc := inject.NewProcessor(inj,
		inject.WithExtensions(v.GetStringSlice("inject.extensions")),
		inject.WithDryRun(v.GetBool("inject.dry_run")),
		inject.WithProcessorLogger(logger.Named("sync")),
	)

	return &App{
		Cfg:       v,
		Log:       logger,
		Catalog:   idx,
		Resolver:  res,
		Renderer:  rnd,
		Injector:  inj,
		Processor: proc,
	}, nil
}
