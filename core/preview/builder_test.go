package preview

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mediatrove/linkimport/core"
	"github.com/mediatrove/linkimport/core/normalize"
)

const finalURL = "https://www.shop.example/p/42"

func newBuilder() *Builder {
	return New(normalize.New())
}

func ptr(v float64) *float64 { return &v }

func TestBuild_NoTitleFails(t *testing.T) {
	_, err := newBuilder().Build(core.ExtractedData{}, finalURL)
	require.Error(t, err)
	code, ok := core.CodeOf(err)
	require.True(t, ok)
	assert.Equal(t, core.ErrNoProductData, code)
}

func TestStripTrackingParams(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			"keeps real params",
			"https://x.com/p?id=1&utm_source=ads&gclid=abc",
			"https://x.com/p?id=1",
		},
		{
			"leading tracking param",
			"https://x.com/p?utm_source=ads&id=1",
			"https://x.com/p?id=1",
		},
		{
			"all params tracking",
			"https://x.com/p?utm_source=a&utm_medium=b&fbclid=c&gclsrc=d",
			"https://x.com/p",
		},
		{
			"untouched",
			"https://amazon.example/dp/123?ref=xyz",
			"https://amazon.example/dp/123?ref=xyz",
		},
		{
			"name containing gclid as substring kept",
			"https://x.com/p?xgclid=1&id=2",
			"https://x.com/p?xgclid=1&id=2",
		},
		{
			"name containing utm_ as substring kept",
			"https://x.com/p?id=1&custom_utm_tag=keep",
			"https://x.com/p?id=1&custom_utm_tag=keep",
		},
		{
			"consecutive tracking params mid-query",
			"https://x.com/p?id=1&utm_source=a&utm_medium=b&fbclid=c&ref=2",
			"https://x.com/p?id=1&ref=2",
		},
		{
			"no query",
			"https://x.com/p",
			"https://x.com/p",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, StripTrackingParams(tt.input))
		})
	}
}

func TestBuild_StoreDomain(t *testing.T) {
	tests := []struct {
		name      string
		canonical string
		want      string
	}{
		{"www stripped", "https://www.shop.example/p", "shop.example"},
		{"plain host", "https://amazon.example/dp/123", "amazon.example"},
		{"registrable domain", "https://deals.shop.co.uk/p", "shop.co.uk"},
		{"garbage is unknown", "::::not a url::::", "unknown"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := newBuilder().Build(core.ExtractedData{
				Title:           "T",
				TitleSource:     core.SourceOG,
				CanonicalURL:    tt.canonical,
				CanonicalSource: core.SourceCanonical,
			}, finalURL)
			require.NoError(t, err)
			assert.Equal(t, tt.want, p.StoreDomain)
		})
	}
}

func TestBuild_ConfidenceScoring(t *testing.T) {
	tests := []struct {
		name string
		data core.ExtractedData
		want float64
	}{
		{
			"all structured reaches 1.0",
			core.ExtractedData{
				Title: "T", TitleSource: core.SourceOG,
				ImageURL: "https://i.example/a.jpg", ImageSource: core.SourceJSONLD,
				Price: ptr(9.99), PriceSource: core.SourceOG,
			},
			1.0,
		},
		{
			"title-only ambient is 0.2",
			core.ExtractedData{Title: "T", TitleSource: core.SourceTitle},
			0.2,
		},
		{
			"structured title only is 0.4",
			core.ExtractedData{Title: "T", TitleSource: core.SourceJSONLD},
			0.4,
		},
		{
			"ambient everything is 0.4",
			core.ExtractedData{
				Title: "T", TitleSource: core.SourceH1,
				ImageURL: "https://i.example/a.jpg", ImageSource: core.SourceHeuristic,
				Price: ptr(9.99), PriceSource: core.SourceHeuristic,
			},
			0.4,
		},
		{
			"mixed: structured title, heuristic rest",
			core.ExtractedData{
				Title: "T", TitleSource: core.SourceOG,
				ImageURL: "https://i.example/a.jpg", ImageSource: core.SourceHeuristic,
				Price: ptr(9.99), PriceSource: core.SourceHeuristic,
			},
			0.6,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := tt.data
			data.CanonicalURL = finalURL
			data.CanonicalSource = core.SourceCanonical
			p, err := newBuilder().Build(data, finalURL)
			require.NoError(t, err)
			assert.InDelta(t, tt.want, p.Confidence, 1e-9)
		})
	}
}

func TestBuild_NotesAndDebug(t *testing.T) {
	p, err := newBuilder().Build(core.ExtractedData{
		Title: "T", TitleSource: core.SourceOG,
		ImageURL: "https://i.example/a.jpg", ImageSource: core.SourceMeta,
		CanonicalURL: finalURL, CanonicalSource: core.SourceCanonical,
	}, finalURL)
	require.NoError(t, err)
	require.NotNil(t, p.Debug)

	assert.Contains(t, p.Debug.ExtractionNotes, "Title from: og")
	assert.Contains(t, p.Debug.ExtractionNotes, "Image from: meta")
	assert.Contains(t, p.Debug.ExtractionNotes, "Price from: —")
	assert.Equal(t, "T", p.Debug.ChosenValues["title"])

	assert.Equal(t, core.SourceOG, p.FieldSources.Title)
	assert.Equal(t, core.SourceMeta, p.FieldSources.Image)
	assert.Empty(t, p.FieldSources.Price)
}

func TestBuild_DescriptionCleaned(t *testing.T) {
	p, err := newBuilder().Build(core.ExtractedData{
		Title: "T", TitleSource: core.SourceOG,
		Description:       "<p>Great <strong>mouse</strong> for gaming.</p>",
		DescriptionSource: core.SourceJSONLD,
		CanonicalURL:      finalURL, CanonicalSource: core.SourceCanonical,
	}, finalURL)
	require.NoError(t, err)
	assert.Equal(t, "Great mouse for gaming.", p.Description)
	assert.Equal(t, core.SourceJSONLD, p.FieldSources.Description)
}

func TestBuild_Idempotent(t *testing.T) {
	data := core.ExtractedData{
		Title: "T", TitleSource: core.SourceOG,
		Price: ptr(12.34), PriceSource: core.SourceJSONLD,
		Currency: "USD", CurrencySource: core.SourceJSONLD,
		CanonicalURL: finalURL + "?utm_source=x", CanonicalSource: core.SourceOG,
	}
	first, err := newBuilder().Build(data, finalURL)
	require.NoError(t, err)
	second, err := newBuilder().Build(data, finalURL)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}
