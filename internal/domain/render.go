package domain

import (
	"fmt"
	"html"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/Vovarama1992/cloudmedia/internal/models"
)

type OutputKind int

const (
	// OutputImg renders a complete <img> element.
	OutputImg OutputKind = iota
	// OutputSrcset renders only the srcset attribute value.
	OutputSrcset
)

const defaultSizes = "(min-width: 768px) 33vw, 100vw"

// RenderOptions tune RenderResponsiveImage. Zero value means: derive widths
// from the native size, f_auto, full <img> output, no attribute overrides.
type RenderOptions struct {
	Widths      []int
	Attrs       map[string]string
	AspectRatio string // e.g. "1:1", "4:3"
	Format      string // "auto" or a literal extension like "webp"
	Output      OutputKind
	Lang        string
}

// RenderResponsiveImage builds responsive Cloudinary markup for a stored
// image. Pure string assembly: same inputs, same bytes out. Records without
// usable image meta or a public id render to the empty string.
func RenderResponsiveImage(cloudName string, view *models.MediaView, opts RenderOptions) string {
	if view == nil || view.ImageMeta == nil {
		return ""
	}
	meta := view.ImageMeta
	if meta.Width <= 0 || meta.Height <= 0 || view.Media.PublicID == "" {
		return ""
	}

	widths := opts.Widths
	if len(widths) == 0 {
		widths = deriveWidths(meta.Width, meta.Height)
	}

	tokens := []string{"q_auto"}

	aspect := opts.AspectRatio
	if aspect != "" {
		tokens = append(tokens, "ar_"+aspect, "g_auto", "c_fill")
	} else if meta.Width != meta.Height {
		if meta.Width > meta.Height {
			aspect = "4:3"
		} else {
			aspect = "3:4"
		}
		tokens = append(tokens, "ar_"+aspect, "g_auto", "c_fill")
	} else {
		tokens = append(tokens, "c_scale")
	}

	format := opts.Format
	if format == "" {
		format = "auto"
	}
	suffix := ""
	if format == "auto" {
		tokens = append(tokens, "f_auto")
	} else {
		tokens = append(tokens, "f_"+format)
		suffix = "." + format
	}

	base := fmt.Sprintf("https://res.cloudinary.com/%s/image/upload", cloudName)

	srcset := make([]string, 0, len(widths))
	for _, w := range widths {
		srcset = append(srcset, fmt.Sprintf("%s %dw", deliveryURL(base, tokens, w, view.Media.PublicID, suffix), w))
	}
	srcsetStr := strings.Join(srcset, ", ")

	if opts.Output == OutputSrcset {
		return srcsetStr
	}

	smallest := widths[0]
	for _, w := range widths {
		if w < smallest {
			smallest = w
		}
	}

	height := scaledHeight(smallest, aspect, meta.Width, meta.Height)

	attrs := map[string]string{
		"src":     deliveryURL(base, tokens, smallest, view.Media.PublicID, suffix),
		"srcset":  srcsetStr,
		"width":   strconv.Itoa(smallest),
		"height":  strconv.Itoa(height),
		"alt":     resolveAltText(view.Descriptions, opts.Lang),
		"loading": "lazy",
	}

	sizes := defaultSizes
	for k, v := range opts.Attrs {
		if k == "sizes" {
			sizes = v
			continue
		}
		attrs[k] = v
	}

	// Stable attribute order: the canonical set first, extras alphabetically.
	order := []string{"src", "srcset", "width", "height", "alt", "loading"}
	seen := map[string]bool{}
	for _, k := range order {
		seen[k] = true
	}
	extras := make([]string, 0, len(attrs))
	for k := range attrs {
		if !seen[k] {
			extras = append(extras, k)
		}
	}
	sort.Strings(extras)

	var sb strings.Builder
	sb.WriteString("<img")
	for _, k := range append(order, extras...) {
		sb.WriteString(fmt.Sprintf(` %s="%s"`, k, html.EscapeString(attrs[k])))
	}
	sb.WriteString(fmt.Sprintf(` sizes="%s">`, html.EscapeString(sizes)))

	return sb.String()
}

// deriveWidths picks the srcset candidates below the native width: native
// rounded down to the nearest hundred, then stepping down by 200 for portrait
// images and 300 otherwise, stopping once a candidate drops below twice the
// step. Never upscales.
func deriveWidths(nativeW, nativeH int) []int {
	step := 300
	if nativeH > nativeW {
		step = 200
	}

	widths := make([]int, 0, 8)
	seen := make(map[int]bool)

	for cand := nativeW / 100 * 100; cand >= 2*step; cand -= step {
		if cand > nativeW || seen[cand] {
			continue
		}
		widths = append(widths, cand)
		seen[cand] = true
	}

	if len(widths) == 0 {
		// Image smaller than the stepping can express; serve it as-is.
		widths = append(widths, nativeW)
	}

	return widths
}

func deliveryURL(base string, tokens []string, width int, publicID, suffix string) string {
	transform := strings.Join(tokens, ",") + ",w_" + strconv.Itoa(width)
	return base + "/" + transform + "/" + publicID + suffix
}

// scaledHeight computes the rendered height for a given width, from the
// aspect ratio when one applies, otherwise proportionally from the native
// dimensions.
func scaledHeight(width int, aspect string, nativeW, nativeH int) int {
	if aspect != "" {
		if aw, ah, ok := parseAspect(aspect); ok {
			return int(math.Round(float64(width) * ah / aw))
		}
	}
	return int(math.Round(float64(nativeH) * float64(width) / float64(nativeW)))
}

func parseAspect(aspect string) (w, h float64, ok bool) {
	parts := strings.SplitN(aspect, ":", 2)
	if len(parts) != 2 {
		return 0, 0, false
	}
	w, err1 := strconv.ParseFloat(parts[0], 64)
	h, err2 := strconv.ParseFloat(parts[1], 64)
	if err1 != nil || err2 != nil || w <= 0 || h <= 0 {
		return 0, 0, false
	}
	return w, h, true
}

// resolveAltText prefers the first non-empty description in the caller's
// language, then the first non-empty description in any language.
func resolveAltText(descs []models.MediaDescription, lang string) string {
	for _, d := range descs {
		if d.Lang == lang && d.Description != nil && *d.Description != "" {
			return *d.Description
		}
	}
	for _, d := range descs {
		if d.Description != nil && *d.Description != "" {
			return *d.Description
		}
	}
	return ""
}
