package cmd

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/mj1618/desktop-tree/internal/annotate"
	"github.com/mj1618/desktop-tree/internal/config"
	"github.com/mj1618/desktop-tree/internal/observability"
	"github.com/mj1618/desktop-tree/internal/platform"
	"github.com/mj1618/desktop-tree/internal/platform/scene"
	"github.com/mj1618/desktop-tree/internal/pool"
	"github.com/mj1618/desktop-tree/internal/tree"
)

// session owns the worker pool and the tree built from one configuration.
type session struct {
	logger *zap.Logger
	pool   *pool.Pool
	tree   *tree.Tree
}

func newProvider(c config.PlatformConfig) (*platform.Provider, error) {
	if c.Scene != "" {
		return scene.NewProvider(c.Scene)
	}
	return platform.NewProvider(platform.Options{Python: c.Python, BridgeTimeout: c.BridgeTimeout})
}

func annotatorOptions(c config.AnnotateConfig, logger *zap.Logger) ([]annotate.Option, error) {
	opts := []annotate.Option{
		annotate.WithPadding(c.Padding),
		annotate.WithFontSize(c.FontSize),
		annotate.WithLogger(logger),
	}
	if c.Seed != 0 {
		opts = append(opts, annotate.WithSeed(c.Seed))
	}
	if c.FontPath != "" {
		face, err := annotate.LoadFont(c.FontPath, c.FontSize)
		if err != nil {
			return nil, err
		}
		opts = append(opts, annotate.WithFace(face))
	}
	return opts, nil
}

func treeOptions(c *config.Config, annotator *annotate.Annotator) tree.Options {
	return tree.Options{
		Classifier: tree.ClassifierOptions{
			InteractiveControlTypes: c.Tree.InteractiveControlTypes,
			InformativeControlTypes: c.Tree.InformativeControlTypes,
			DefaultActions:          c.Tree.DefaultActions,
			VisibilityThreshold:     c.Tree.VisibilityThreshold,
		},
		AvoidedApps:  c.Tree.AvoidedApps,
		SettleDelay:  c.Tree.SettleDelay,
		CaptureDelay: c.Annotate.CaptureDelay,
		Annotator:    annotator,
	}
}

// newSession connects to the configured desktop. The caller must Close it.
func newSession(c *config.Config) (*session, error) {
	if c == nil {
		return nil, fmt.Errorf("configuration not loaded")
	}
	logger := observability.GetLogger()
	provider, err := newProvider(c.Platform)
	if err != nil {
		return nil, err
	}
	if provider.Desktop == nil {
		return nil, fmt.Errorf("desktop reader not available on this platform")
	}

	p := pool.New(c.Pool.Workers, logger.With(zap.String("component", "pool")))
	opts, err := annotatorOptions(c.Annotate, logger)
	if err != nil {
		p.Close()
		return nil, err
	}
	annotator := annotate.New(p, opts...)
	return &session{
		logger: logger,
		pool:   p,
		tree:   tree.New(provider.Desktop, p, treeOptions(c, annotator), logger),
	}, nil
}

func (s *session) Close() {
	if err := s.pool.Close(); err != nil {
		s.logger.Warn("failed to close worker pool", zap.Error(err))
	}
}
