package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	m "github.com/mouse-blink/covmerge/internal/model"
)

const appJS = "https://cdn.example.com/app.js"

func TestFindInconsistentContent(t *testing.T) {
	t.Run("differing fingerprints are flagged", func(t *testing.T) {
		observations := []m.Observation{
			observation("a.json", appJS, "a", false),
			observation("b.json", appJS, "a", false),
			observation("c.json", appJS, "b", false),
		}

		got := FindInconsistentContent(observations)

		require.Len(t, got, 1)
		assert.Equal(t, appJS, got[0].ResourceURL)
		require.Len(t, got[0].Variants, 2)
		assert.Equal(t, "a", got[0].Variants[0].Fingerprint)
		assert.Equal(t, []m.PageRef{
			{SourceFile: "a.json", PageURL: "https://example.com/a.json"},
			{SourceFile: "b.json", PageURL: "https://example.com/b.json"},
		}, got[0].Variants[0].Pages)
		assert.Equal(t, "b", got[0].Variants[1].Fingerprint)
	})

	t.Run("matching fingerprints are not flagged", func(t *testing.T) {
		observations := []m.Observation{
			observation("a.json", appJS, "a", false),
			observation("b.json", appJS, "a", false),
		}

		assert.Empty(t, FindInconsistentContent(observations))
	})

	t.Run("empty content never contradicts", func(t *testing.T) {
		observations := []m.Observation{
			observation("a.json", appJS, "a", false),
			observation("b.json", appJS, "e3b0c442", true),
		}

		assert.Empty(t, FindInconsistentContent(observations))
	})

	t.Run("scheme does not split a resource", func(t *testing.T) {
		observations := []m.Observation{
			observation("a.json", appJS, "a", false),
			observation("b.json", "http://cdn.example.com/app.js", "b", false),
		}

		assert.Len(t, FindInconsistentContent(observations), 1)
	})
}

func TestFindAllEmptyContent(t *testing.T) {
	observations := []m.Observation{
		observation("a.json", "https://example.com/empty.css", "x", true),
		observation("b.json", "https://example.com/empty.css", "y", true),
		observation("a.json", appJS, "a", false),
		observation("b.json", appJS, "", true),
	}

	got := FindAllEmptyContent(observations)

	assert.Equal(t, []m.EmptyResource{{ResourceURL: "https://example.com/empty.css"}}, got)
}

func TestExcludeResources(t *testing.T) {
	observations := []m.Observation{
		observation("a.json", appJS, "a", false),
		observation("a.json", "https://example.com/keep.js", "k", false),
		observation("b.json", "http://cdn.example.com/app.js", "b", false),
	}

	kept := ExcludeResources(observations, appJS)

	require.Len(t, kept, 1)
	assert.Equal(t, "https://example.com/keep.js", kept[0].ResourceURL)
	assert.Len(t, ExcludeResources(observations), 3)
}

func TestRenderInconsistent(t *testing.T) {
	got := RenderInconsistent([]m.InconsistentResource{{
		ResourceURL: appJS,
		Variants: []m.ContentVariant{
			{Fingerprint: "aaa", Pages: []m.PageRef{{SourceFile: "a.json", PageURL: "https://example.com/"}}},
			{Fingerprint: "bbb", Pages: []m.PageRef{{SourceFile: "b.json", PageURL: "https://example.com/cart"}}},
		},
	}})

	want := appJS + ": content differs between pages, coverage not aggregated\n" +
		"  hash aaa seen on:\n" +
		"    https://example.com/ (a.json)\n" +
		"  hash bbb seen on:\n" +
		"    https://example.com/cart (b.json)\n"

	assert.Equal(t, want, got)
}

func TestRenderAllEmpty(t *testing.T) {
	got := RenderAllEmpty([]m.EmptyResource{{ResourceURL: "https://a/x.js"}, {ResourceURL: "https://a/y.js"}})

	assert.Equal(t, "https://a/x.js\nhttps://a/y.js\n", got)
}
