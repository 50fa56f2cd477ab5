package folio

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"strings"
	"sync"
	"unicode/utf8"

	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

const (
	ogWidth      = 1200
	ogHeight     = 630
	ogMargin     = 72
	ogTitleSize  = 64
	ogFooterSize = 28
	ogAccentBar  = 12
)

// ImageGenerator renders a social card for a post title.
type ImageGenerator interface {
	Generate(title string) ([]byte, error)
}

// ErrEmptyTitle is wrapped by an ImageGenerationError for blank titles.
var ErrEmptyTitle = errors.New("empty title")

var goRegular = sync.OnceValues(func() (*opentype.Font, error) {
	return opentype.Parse(goregular.TTF)
})

// asciiPunct maps typographic punctuation to ASCII for faces that lack it.
var asciiPunct = strings.NewReplacer(
	"‘", "'", "’", "'", "‚", "'", "′", "'",
	"“", `"`, "”", `"`, "„", `"`, "″", `"`,
	"–", "-", "—", "-", "−", "-", "‐", "-", "‑", "-",
	"…", "...", "•", "*", "«", `"`, "»", `"`,
)

// CardGenerator draws 1200x630 PNG cards: the wrapped title on a solid
// background with the site title as footer.
type CardGenerator struct {
	SiteTitle  string
	Background color.Color
	Foreground color.Color
	Accent     color.Color
	// Font defaults to Go Regular. Faces are created per card because an
	// opentype face is not safe for concurrent use.
	Font *opentype.Font
}

// NewCardGenerator returns a CardGenerator branded with the site title.
func NewCardGenerator(cfg SiteConfig) *CardGenerator {
	return &CardGenerator{
		SiteTitle:  cfg.Title,
		Background: color.RGBA{R: 0x21, G: 0x25, B: 0x2b, A: 0xff},
		Foreground: color.RGBA{R: 0xea, G: 0xed, B: 0xf3, A: 0xff},
		Accent:     color.RGBA{R: 0xff, G: 0x6b, B: 0x01, A: 0xff},
	}
}

func (g *CardGenerator) face(size float64) (font.Face, error) {
	f := g.Font
	if f == nil {
		var err error
		if f, err = goRegular(); err != nil {
			return nil, fmt.Errorf("parse font: %w", err)
		}
	}
	return opentype.NewFace(f, &opentype.FaceOptions{Size: size, DPI: 72, Hinting: font.HintingFull})
}

// Generate renders the card for title. Runes the font has no glyph for are
// retried with typographic punctuation mapped to ASCII and diacritics
// folded; a title that is blank or still not drawable is rejected with an
// *ImageGenerationError.
func (g *CardGenerator) Generate(title string) ([]byte, error) {
	titleFace, err := g.face(ogTitleSize)
	if err != nil {
		return nil, &ImageGenerationError{Title: title, Err: err}
	}
	defer titleFace.Close()
	footerFace, err := g.face(ogFooterSize)
	if err != nil {
		return nil, &ImageGenerationError{Title: title, Err: err}
	}
	defer footerFace.Close()

	text, err := drawableTitle(titleFace, title)
	if err != nil {
		return nil, &ImageGenerationError{Title: title, Err: err}
	}

	dst := image.NewRGBA(image.Rect(0, 0, ogWidth, ogHeight))
	draw.Draw(dst, dst.Bounds(), image.NewUniform(g.Background), image.Point{}, draw.Src)
	draw.Draw(dst, image.Rect(0, ogHeight-ogAccentBar, ogWidth, ogHeight), image.NewUniform(g.Accent), image.Point{}, draw.Src)

	metrics := titleFace.Metrics()
	lineHeight := metrics.Height.Ceil()
	footerHeight := footerFace.Metrics().Height.Ceil()
	maxLines := (ogHeight - 2*ogMargin - footerHeight) / lineHeight
	lines := wrapText(titleFace, text, ogWidth-2*ogMargin)
	if maxLines > 0 && len(lines) > maxLines {
		lines = lines[:maxLines]
		lines[maxLines-1] = strings.TrimRight(lines[maxLines-1], " ") + "..."
	}

	d := &font.Drawer{Dst: dst, Src: image.NewUniform(g.Foreground), Face: titleFace}
	y := ogMargin + metrics.Ascent.Ceil()
	for _, line := range lines {
		d.Dot = fixed.P(ogMargin, y)
		d.DrawString(line)
		y += lineHeight
	}

	if footer := drawable(footerFace, asciiPunct.Replace(FoldDiacritics(g.SiteTitle))); footer != "" {
		d.Face = footerFace
		d.Src = image.NewUniform(g.Accent)
		d.Dot = fixed.P(ogMargin, ogHeight-ogMargin/2-ogAccentBar)
		d.DrawString(footer)
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, dst); err != nil {
		return nil, &ImageGenerationError{Title: title, Err: fmt.Errorf("encode png: %w", err)}
	}
	return buf.Bytes(), nil
}

// drawableTitle collapses whitespace in title and returns it in a form
// face can draw.
func drawableTitle(face font.Face, title string) (string, error) {
	text := strings.Join(strings.Fields(title), " ")
	if text == "" {
		return "", ErrEmptyTitle
	}
	if r, ok := missingGlyph(face, text); ok {
		text = FoldDiacritics(asciiPunct.Replace(text))
		if _, ok := missingGlyph(face, text); ok {
			return "", fmt.Errorf("no glyph for %q", r)
		}
	}
	return text, nil
}

// generateImage runs g and guarantees failures surface as
// *ImageGenerationError whatever the generator returned.
func generateImage(g ImageGenerator, title string) ([]byte, error) {
	img, err := g.Generate(title)
	if err == nil {
		return img, nil
	}
	var ige *ImageGenerationError
	if errors.As(err, &ige) {
		return nil, err
	}
	return nil, &ImageGenerationError{Title: title, Err: err}
}

func hasGlyph(face font.Face, r rune) bool {
	_, ok := face.GlyphAdvance(r)
	return ok
}

func missingGlyph(face font.Face, s string) (rune, bool) {
	for _, r := range s {
		if r != ' ' && !hasGlyph(face, r) {
			return r, true
		}
	}
	return 0, false
}

// drawable drops the runes face has no glyph for.
func drawable(face font.Face, s string) string {
	return strings.Map(func(r rune) rune {
		if r == ' ' || hasGlyph(face, r) {
			return r
		}
		return -1
	}, s)
}

// wrapText breaks text into lines no wider than maxWidth pixels. Words
// wider than a line are split.
func wrapText(face font.Face, text string, maxWidth int) []string {
	width := func(s string) int { return font.MeasureString(face, s).Ceil() }
	var lines []string
	var cur string
	for _, word := range strings.Fields(text) {
		for width(word) > maxWidth {
			cut := len(word)
			for cut > 1 && width(word[:cut]) > maxWidth {
				_, size := utf8.DecodeLastRuneInString(word[:cut])
				cut -= size
			}
			if cur != "" {
				lines = append(lines, cur)
				cur = ""
			}
			lines = append(lines, word[:cut])
			word = word[cut:]
		}
		switch {
		case word == "":
		case cur == "":
			cur = word
		case width(cur+" "+word) <= maxWidth:
			cur += " " + word
		default:
			lines = append(lines, cur)
			cur = word
		}
	}
	if cur != "" {
		lines = append(lines, cur)
	}
	return lines
}
