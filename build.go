package folio

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/a-h/templ"
	"github.com/labstack/gommon/log"
)

// Builder writes the static site for every configured locale into
// Config.OutputDir.
type Builder struct {
	Config  SiteConfig
	Loader  CollectionLoader
	Images  ImageGenerator
	Logger  *log.Logger
	Metrics *Metrics
}

// BuildReport summarizes one build.
type BuildReport struct {
	Files    int
	Posts    map[string]int
	Images   int
	Skipped  []error
	Duration time.Duration
}

// NewBuilder returns a Builder reading cfg.ContentDir with the built-in card
// generator. A nil logger logs to stderr.
func NewBuilder(cfg SiteConfig, logger *log.Logger, metrics *Metrics) *Builder {
	b := &Builder{Logger: logger, Metrics: metrics}
	b.Reconfigure(cfg)
	if b.Logger == nil {
		b.Logger = NewLogger(b.Config.LogLevel, nil)
	}
	return b
}

// Build regenerates the output directory from scratch. Entries a projection
// cannot handle are skipped and listed in the report; schema errors and
// image generation errors abort the build.
func (b *Builder) Build(ctx context.Context) (BuildReport, error) {
	start := time.Now()
	report, err := b.build(ctx)
	report.Duration = time.Since(start)
	b.Metrics.build(report.Duration.Seconds(), err)
	if err != nil {
		return report, err
	}
	b.Logger.Infof("built %d files (%d images, %d skipped) in %s", report.Files, report.Images, len(report.Skipped), report.Duration)
	return report, nil
}

func (b *Builder) build(ctx context.Context) (BuildReport, error) {
	report := BuildReport{Posts: make(map[string]int, len(b.Config.Locales))}
	out, err := b.cleanOutput()
	if err != nil {
		return report, err
	}
	w := &siteWriter{ctx: ctx, root: out}

	byLocale := make(map[string][]PostEntry, len(b.Config.Locales))
	for _, locale := range b.Config.Locales {
		if err := ctx.Err(); err != nil {
			return report, err
		}
		posts, err := b.buildLocale(w, &report, locale)
		if err != nil {
			return report, fmt.Errorf("build %s: %w", locale, err)
		}
		byLocale[locale] = posts
	}

	sm, err := ProjectSitemap(b.Config, byLocale)
	b.skip(&report, err)
	if err := w.write("/sitemap.xml", sm.WriteXML); err != nil {
		return report, err
	}
	if err := w.write("/robots.txt", func(wr io.Writer) error {
		_, err := io.WriteString(wr, RobotsTxt(b.Config))
		return err
	}); err != nil {
		return report, err
	}
	report.Files = w.files
	return report, nil
}

func (b *Builder) buildLocale(w *siteWriter, report *BuildReport, locale string) ([]PostEntry, error) {
	cfg := b.Config
	entries, err := b.Loader.LoadCollection(locale)
	if err != nil {
		return nil, err
	}
	posts := SelectPosts(entries, locale)
	report.Posts[locale] = len(posts)
	b.Metrics.selected(locale, len(posts))
	b.Logger.Debugf("%s: %d of %d entries published", locale, len(posts), len(entries))

	feed, err := ProjectRSS(cfg, posts, locale)
	b.skip(report, err)
	if err := w.write(cfg.LocalizePath("/rss.xml", locale), feed.WriteXML); err != nil {
		return nil, err
	}

	reqs, err := ProjectOGImages(cfg, posts, locale)
	b.skip(report, err)
	for _, req := range reqs {
		img, err := generateImage(b.Images, req.Title)
		b.Metrics.image(err)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", req.EntryID, err)
		}
		if err := w.write(req.Path, func(wr io.Writer) error {
			_, err := wr.Write(img)
			return err
		}); err != nil {
			return nil, err
		}
		report.Images++
	}

	paths, err := ProjectStaticPaths(cfg, posts, locale)
	b.skip(report, err)
	byID := make(map[string]PostEntry, len(posts))
	for _, p := range posts {
		byID[p.ID] = p
	}
	for _, pp := range paths {
		if err := w.component(pp.Path+"index.html", PostComponent(cfg, byID[pp.EntryID], locale)); err != nil {
			return nil, err
		}
	}

	total := Paginate(posts, cfg.PostPerPage, 1).TotalPages
	for n := 1; n <= total; n++ {
		page := Paginate(posts, cfg.PostPerPage, n)
		if err := w.component(IndexPath(cfg, n, locale)+"index.html", IndexComponent(cfg, page, locale)); err != nil {
			return nil, err
		}
	}

	if err := w.component(cfg.LocalizePath("/404.html", locale), NotFoundComponent(cfg, locale)); err != nil {
		return nil, err
	}
	return posts, nil
}

func (b *Builder) skip(report *BuildReport, err error) {
	if err == nil {
		return
	}
	b.Metrics.skipped(err)
	var pe *ProjectionError
	if !errors.As(err, &pe) {
		report.Skipped = append(report.Skipped, err)
		b.Logger.Warnf("projection: %v", err)
		return
	}
	for _, e := range pe.Errs {
		report.Skipped = append(report.Skipped, e)
		b.Logger.Warnf("%s: skipped: %v", pe.Projection, e)
	}
}

// cleanOutput empties the output directory and returns its absolute path.
// It refuses to clear the working directory or a filesystem root.
func (b *Builder) cleanOutput() (string, error) {
	out, err := filepath.Abs(b.Config.OutputDir)
	if err != nil {
		return "", fmt.Errorf("output dir: %w", err)
	}
	wd, _ := os.Getwd()
	if out == wd || out == filepath.Dir(out) {
		return "", fmt.Errorf("refusing to clean output dir %s", out)
	}
	if err := os.RemoveAll(out); err != nil {
		return "", fmt.Errorf("clean %s: %w", out, err)
	}
	if err := os.MkdirAll(out, 0o755); err != nil {
		return "", fmt.Errorf("create %s: %w", out, err)
	}
	return out, nil
}

// siteWriter writes site-relative paths below root.
type siteWriter struct {
	ctx   context.Context
	root  string
	files int
}

func (w *siteWriter) write(sitePath string, fn func(io.Writer) error) error {
	name := filepath.Join(w.root, filepath.FromSlash(strings.TrimPrefix(sitePath, "/")))
	if err := os.MkdirAll(filepath.Dir(name), 0o755); err != nil {
		return err
	}
	f, err := os.Create(name)
	if err != nil {
		return err
	}
	bw := bufio.NewWriter(f)
	if err := fn(bw); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", sitePath, err)
	}
	if err := bw.Flush(); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", sitePath, err)
	}
	if err := f.Close(); err != nil {
		return err
	}
	w.files++
	return nil
}

func (w *siteWriter) component(sitePath string, cmp templ.Component) error {
	return w.write(sitePath, func(wr io.Writer) error {
		return cmp.Render(w.ctx, wr)
	})
}
