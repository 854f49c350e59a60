package main

import (
	"context"
	goerrors "errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"archdsl/internal/annotations"
	"archdsl/internal/architecture"
	"archdsl/internal/cache"
	"archdsl/internal/errors"
	"archdsl/internal/manifest"
	"archdsl/internal/paths"
)

type renderOptions struct {
	manifests []string
	workspace bool
	strict    bool
	format    string
	output    string
	noCache   bool
	noScan    bool
}

func newRenderCmd(app *cliApp) *cobra.Command {
	opts := &renderOptions{}

	cmd := &cobra.Command{
		Use:   "render [paths...]",
		Short: "Render the component graph as DSL",
		Long: `Scan source roots for architecture annotations, merge any manifests and
print the resulting model as DSL text.

Paths default to scan.roots from the configuration and are resolved
against the project root.

Examples:
  archdsl render                         # Scan configured roots
  archdsl render ./services --strict     # Fail on undeclared relation targets
  archdsl render --manifest arch.hcl     # Merge a declarative manifest
  archdsl render --workspace -o arch.dsl # Full workspace, written to a file`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRender(cmd, app, opts, args)
		},
	}

	flags := cmd.Flags()
	flags.StringSliceVarP(&opts.manifests, "manifest", "m", nil, "Manifest files to merge (yaml, toml or hcl)")
	flags.BoolVar(&opts.workspace, "workspace", false, "Wrap the output in workspace, model, system and container blocks")
	flags.BoolVar(&opts.strict, "strict", false, "Fail when a relation targets an undeclared name")
	flags.StringVar(&opts.format, "format", string(FormatText), "Output format (text, json)")
	flags.StringVarP(&opts.output, "output", "o", "", "Write output to a file instead of stdout")
	flags.BoolVar(&opts.noCache, "no-cache", false, "Parse every file, ignoring the scan cache")
	flags.BoolVar(&opts.noScan, "no-scan", false, "Only render manifests")
	return cmd
}

func runRender(cmd *cobra.Command, app *cliApp, opts *renderOptions, args []string) error {
	cfg := app.cfg
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	builder := architecture.NewBuilder(app.logger)
	builder.Strict = opts.strict || cfg.Render.Strict

	manifestPaths := append(append([]string{}, cfg.Scan.Manifests...), opts.manifests...)
	var manifests []*manifest.Manifest
	for _, p := range manifestPaths {
		m, err := manifest.Load(paths.Resolve(app.root, p))
		if err != nil {
			return errors.New(errors.ManifestInvalid, "Failed to load manifest", err).
				WithDetails(map[string]string{"path": p})
		}
		m.Declare(builder)
		manifests = append(manifests, m)
	}

	resp := &RenderResponse{}
	var elements []architecture.Element

	if !opts.noScan {
		roots := args
		if len(roots) == 0 {
			roots = cfg.Scan.Roots
		}
		scanned, err := scanRoots(ctx, app, opts, roots, resp)
		switch {
		case goerrors.Is(err, annotations.ErrNoCGO) && len(manifests) > 0:
			app.logger.Warn("Source scanning unavailable, rendering manifests only")
		case goerrors.Is(err, annotations.ErrNoCGO):
			return errors.New(errors.ParserUnavailable, "Source scanning is unavailable in this build", err)
		case err != nil:
			return err
		default:
			model, err := annotations.Apply(builder, scanned)
			if err != nil {
				return buildError(err)
			}
			for _, m := range model.Merged {
				app.logger.Warn("Declarations from several directories merged into one component",
					"entity", m.Ref.String(), "dirs", strings.Join(m.Dirs, ","))
			}
			elements = append(elements, model.Elements...)
		}
	}

	for _, m := range manifests {
		built, err := m.Build(builder)
		if err != nil {
			return buildError(err)
		}
		elements = append(elements, built...)
	}

	if opts.workspace || cfg.Render.Workspace {
		resp.DSL = architecture.Workspace{
			Name:        cfg.Render.WorkspaceName,
			Description: cfg.Render.Description,
			System:      cfg.Render.System,
			Container:   cfg.Render.Container,
			Elements:    elements,
		}.DSL().String()
	} else {
		resp.DSL = architecture.Render(elements...)
	}

	resp.Elements = make([]string, 0, len(elements))
	for _, el := range elements {
		resp.Elements = append(resp.Elements, el.ID(""))
	}
	for _, c := range builder.Components() {
		resp.Components++
		resp.Relations += len(c.Relations())
	}

	out, err := FormatResponse(resp, OutputFormat(opts.format))
	if err != nil {
		return err
	}

	if opts.output != "" {
		target := paths.Resolve(app.root, opts.output)
		if err := os.WriteFile(target, []byte(out), 0o644); err != nil {
			return errors.New(errors.InternalError, "Failed to write output", err)
		}
		app.logger.Info("Wrote DSL", "path", target, "elements", len(elements))
		return nil
	}

	_, err = fmt.Fprint(cmd.OutOrStdout(), out)
	return err
}

// scanRoots scans each root, consulting and maintaining the cache unless
// disabled, and returns the declarations of all roots in order.
func scanRoots(ctx context.Context, app *cliApp, opts *renderOptions, roots []string, resp *RenderResponse) ([]annotations.Declaration, error) {
	if !annotations.IsAvailable() {
		return nil, annotations.ErrNoCGO
	}

	scanOpts := annotations.Options{
		Prefix:      app.cfg.Scan.DirectivePrefix,
		Ignore:      app.cfg.Scan.Ignore,
		MaxFileSize: app.cfg.Scan.MaxFileSizeBytes,
		Logger:      app.logger,
	}
	for _, lang := range app.cfg.Scan.Languages {
		scanOpts.Languages = append(scanOpts.Languages, annotations.Language(lang))
	}

	var store *cache.Store
	if app.cfg.Cache.Enabled && !opts.noCache {
		s, err := cache.Open(paths.Resolve(app.root, app.cfg.Cache.Path), app.logger)
		if err != nil {
			cacheErr := errors.New(errors.CacheUnavailable, "Scan cache unavailable", err)
			app.logger.Warn("Continuing without cache", "error", cacheErr.Error())
		} else {
			store = s
			defer store.Close()
			scanOpts.Cache = store
		}
	}

	var decls []annotations.Declaration
	for _, root := range roots {
		dir := paths.Resolve(app.root, root)
		started := time.Now()

		label, err := paths.CanonicalizePath(dir, app.root)
		if err != nil {
			label = filepath.ToSlash(dir)
		}
		rootOpts := scanOpts
		rootOpts.CacheScope = label

		res, err := annotations.NewScanner(rootOpts).Scan(ctx, dir)
		if err != nil {
			if goerrors.Is(err, annotations.ErrNoCGO) {
				return nil, err
			}
			return nil, errors.New(errors.ScanFailed, "Failed to scan sources", err).
				WithDetails(map[string]string{"root": root})
		}

		decls = append(decls, res.Declarations...)
		resp.Files += res.Files
		resp.CacheHits += res.CacheHits
		app.logger.Info("Scanned sources", "root", label, "files", res.Files, "cacheHits", res.CacheHits, "declarations", len(res.Declarations))

		if store == nil {
			continue
		}
		id, err := store.RecordRun(cache.Run{
			Root:         label,
			Files:        res.Files,
			CacheHits:    res.CacheHits,
			Declarations: len(res.Declarations),
			StartedAt:    started,
			Duration:     time.Since(started),
		})
		if err != nil {
			app.logger.Warn("Failed to record scan run", "error", err.Error())
		} else {
			resp.RunIDs = append(resp.RunIDs, id)
		}

		// Entries of roots not scanned in this run stay untouched.
		if removed, err := store.Prune(label, res.CacheKeys); err != nil {
			app.logger.Warn("Failed to prune cache", "root", label, "error", err.Error())
		} else if removed > 0 {
			app.logger.Debug("Pruned stale cache entries", "root", label, "removed", removed)
		}
	}
	return decls, nil
}

// buildError classifies model building failures.
func buildError(err error) error {
	if goerrors.Is(err, architecture.ErrUndeclaredTarget) {
		return errors.New(errors.TargetUndeclared, "Relation target is not declared", err)
	}
	return errors.New(errors.InternalError, "Failed to build model", err)
}
