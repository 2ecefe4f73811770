package domain

import (
	"strings"
	"testing"

	"github.com/Vovarama1992/cloudmedia/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func imageView(publicID string, width, height int, descs ...models.MediaDescription) *models.MediaView {
	return &models.MediaView{
		Media: models.MediaRecord{
			ID:           1,
			PublicID:     publicID,
			ResourceType: "image",
			Format:       "jpg",
		},
		ImageMeta: &models.ImageMeta{
			MediaID: 1,
			Width:   width,
			Height:  height,
		},
		Descriptions: descs,
	}
}

func TestDeriveWidths(t *testing.T) {
	t.Run("landscape steps by 300", func(t *testing.T) {
		assert.Equal(t, []int{1600, 1300, 1000, 700}, deriveWidths(1600, 1200))
	})

	t.Run("portrait steps by 200", func(t *testing.T) {
		assert.Equal(t, []int{1200, 1000, 800, 600, 400}, deriveWidths(1200, 1600))
	})

	t.Run("native width rounded down to nearest hundred", func(t *testing.T) {
		assert.Equal(t, []int{1500, 1200, 900, 600}, deriveWidths(1550, 900))
	})

	t.Run("never exceeds native width", func(t *testing.T) {
		for _, w := range deriveWidths(1600, 1200) {
			assert.LessOrEqual(t, w, 1600)
		}
	})

	t.Run("square 800 keeps a single candidate", func(t *testing.T) {
		// next step down would be 500, already below twice the step
		assert.Equal(t, []int{800}, deriveWidths(800, 800))
	})

	t.Run("tiny image falls back to its own width", func(t *testing.T) {
		assert.Equal(t, []int{150}, deriveWidths(150, 100))
	})
}

func TestRenderResponsiveImage_Landscape(t *testing.T) {
	view := imageView("sample/photo", 1600, 1200)

	out := RenderResponsiveImage("demo", view, RenderOptions{})

	require.NotEmpty(t, out)
	assert.Contains(t, out, "ar_4:3")
	assert.Contains(t, out, "g_auto,c_fill")
	assert.NotContains(t, out, "c_scale")
	assert.NotContains(t, out, "w_1900")

	// fallback src uses the smallest candidate width
	assert.Contains(t, out, `src="https://res.cloudinary.com/demo/image/upload/q_auto,ar_4:3,g_auto,c_fill,f_auto,w_700/sample/photo"`)
	assert.Contains(t, out, `width="700"`)
	assert.Contains(t, out, `height="525"`) // 700 * 3/4
	assert.Contains(t, out, `loading="lazy"`)

	for _, w := range []string{"1600w", "1300w", "1000w", "700w"} {
		assert.Contains(t, out, w)
	}
}

func TestRenderResponsiveImage_Square(t *testing.T) {
	view := imageView("sample/square", 800, 800)

	out := RenderResponsiveImage("demo", view, RenderOptions{})

	assert.Contains(t, out, "c_scale")
	assert.NotContains(t, out, "g_auto")
	assert.NotContains(t, out, "c_fill")
	assert.NotContains(t, out, "ar_")

	// 800 is the only candidate (500 would already be below twice the step);
	// proportional height keeps the square square
	assert.Contains(t, out, `src="https://res.cloudinary.com/demo/image/upload/q_auto,c_scale,f_auto,w_800/sample/square"`)
	assert.Contains(t, out, `width="800"`)
	assert.Contains(t, out, `height="800"`)
}

func TestRenderResponsiveImage_Portrait(t *testing.T) {
	out := RenderResponsiveImage("demo", imageView("p", 1200, 1600), RenderOptions{})

	assert.Contains(t, out, "ar_3:4")
	assert.Contains(t, out, "g_auto,c_fill")
	assert.Contains(t, out, `width="400"`)
	assert.Contains(t, out, `height="533"`) // round(400 * 4/3)
}

func TestRenderResponsiveImage_ExplicitAspect(t *testing.T) {
	out := RenderResponsiveImage("demo", imageView("p", 1600, 1200), RenderOptions{AspectRatio: "1:1"})

	assert.Contains(t, out, "ar_1:1")
	assert.Contains(t, out, "g_auto,c_fill")
	assert.Contains(t, out, `width="700"`)
	assert.Contains(t, out, `height="700"`)
}

func TestRenderResponsiveImage_ExplicitFormat(t *testing.T) {
	out := RenderResponsiveImage("demo", imageView("p", 1600, 1200), RenderOptions{Format: "webp"})

	assert.Contains(t, out, "f_webp")
	assert.Contains(t, out, "/p.webp")
	assert.NotContains(t, out, "f_auto")

	auto := RenderResponsiveImage("demo", imageView("p", 1600, 1200), RenderOptions{})
	assert.Contains(t, auto, "f_auto")
	assert.NotContains(t, auto, "/p.")
}

func TestRenderResponsiveImage_ExplicitWidths(t *testing.T) {
	out := RenderResponsiveImage("demo", imageView("p", 1600, 1200), RenderOptions{Widths: []int{400, 800}})

	assert.Contains(t, out, "w_400")
	assert.Contains(t, out, "w_800")
	assert.NotContains(t, out, "w_1600")
	assert.Contains(t, out, `width="400"`)
}

func TestRenderResponsiveImage_EmptyResults(t *testing.T) {
	t.Run("nil view", func(t *testing.T) {
		assert.Equal(t, "", RenderResponsiveImage("demo", nil, RenderOptions{}))
	})

	t.Run("missing image meta", func(t *testing.T) {
		view := imageView("p", 100, 100)
		view.ImageMeta = nil
		assert.Equal(t, "", RenderResponsiveImage("demo", view, RenderOptions{}))
	})

	t.Run("zero dimensions", func(t *testing.T) {
		assert.Equal(t, "", RenderResponsiveImage("demo", imageView("p", 0, 600), RenderOptions{}))
		assert.Equal(t, "", RenderResponsiveImage("demo", imageView("p", 600, 0), RenderOptions{}))
	})

	t.Run("missing public id", func(t *testing.T) {
		assert.Equal(t, "", RenderResponsiveImage("demo", imageView("", 600, 400), RenderOptions{}))
	})
}

func TestRenderResponsiveImage_AltText(t *testing.T) {
	t.Run("empty text in matching language is skipped", func(t *testing.T) {
		view := imageView("p", 1600, 1200,
			models.MediaDescription{Lang: "en", Description: strPtr("")},
			models.MediaDescription{Lang: "de", Description: strPtr("Ein Bild")},
		)

		out := RenderResponsiveImage("demo", view, RenderOptions{Lang: "en"})
		assert.Contains(t, out, `alt="Ein Bild"`)
	})

	t.Run("matching language wins", func(t *testing.T) {
		view := imageView("p", 1600, 1200,
			models.MediaDescription{Lang: "de", Description: strPtr("Ein Bild")},
			models.MediaDescription{Lang: "en", Description: strPtr("A picture")},
		)

		out := RenderResponsiveImage("demo", view, RenderOptions{Lang: "en"})
		assert.Contains(t, out, `alt="A picture"`)
	})

	t.Run("no descriptions means empty alt", func(t *testing.T) {
		out := RenderResponsiveImage("demo", imageView("p", 1600, 1200), RenderOptions{})
		assert.Contains(t, out, `alt=""`)
	})
}

func TestRenderResponsiveImage_Attributes(t *testing.T) {
	t.Run("caller attributes win except sizes", func(t *testing.T) {
		view := imageView("p", 1600, 1200)

		out := RenderResponsiveImage("demo", view, RenderOptions{
			Attrs: map[string]string{
				"alt":   "override",
				"class": "hero",
				"sizes": "100vw",
			},
		})

		assert.Contains(t, out, `alt="override"`)
		assert.Contains(t, out, `class="hero"`)
		assert.Contains(t, out, `sizes="100vw"`)
		assert.Equal(t, 1, strings.Count(out, "sizes="))
	})

	t.Run("values are escaped", func(t *testing.T) {
		view := imageView("p", 1600, 1200,
			models.MediaDescription{Lang: "en", Description: strPtr(`"quoted" <alt>`)},
		)

		out := RenderResponsiveImage("demo", view, RenderOptions{Lang: "en"})
		assert.Contains(t, out, "&#34;quoted&#34; &lt;alt&gt;")
		assert.NotContains(t, out, `alt=""quoted"`)
	})
}

func TestRenderResponsiveImage_SrcsetOutput(t *testing.T) {
	out := RenderResponsiveImage("demo", imageView("p", 1600, 1200), RenderOptions{Output: OutputSrcset})

	assert.False(t, strings.HasPrefix(out, "<img"))
	assert.Contains(t, out, "w_1600/p 1600w")
	assert.Contains(t, out, "w_700/p 700w")
}

func TestRenderResponsiveImage_Deterministic(t *testing.T) {
	view := imageView("p", 1600, 1200,
		models.MediaDescription{Lang: "en", Description: strPtr("A picture")},
	)
	opts := RenderOptions{
		Attrs: map[string]string{"class": "hero", "data-id": "42"},
		Lang:  "en",
	}

	first := RenderResponsiveImage("demo", view, opts)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, RenderResponsiveImage("demo", view, opts))
	}
}
