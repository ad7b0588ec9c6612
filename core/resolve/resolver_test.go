package resolve

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mediatrove/linkimport/core"
	"github.com/mediatrove/linkimport/core/extract"
)

const finalURL = "https://shop.example/p/42"

func resolveHTML(t *testing.T, html string) core.ExtractedData {
	t.Helper()
	raw := extract.New().Extract(html)
	return New().Resolve(raw, finalURL)
}

func TestResolve_TitlePriority(t *testing.T) {
	tests := []struct {
		name       string
		html       string
		wantTitle  string
		wantSource core.FieldSource
	}{
		{
			"og wins over title tag",
			`<meta property="og:title" content="OG Title"><title>Doc Title</title>`,
			"OG Title", core.SourceOG,
		},
		{
			"twitter wins over title tag",
			`<meta name="twitter:title" content="TW Title"><title>Doc Title</title>`,
			"TW Title", core.SourceMeta,
		},
		{
			"title tag wins over h1",
			`<title>Doc Title</title><h1>H1 Title</h1>`,
			"Doc Title", core.SourceTitle,
		},
		{
			"h1 as last ambient resort",
			`<h1>H1 Title</h1>`,
			"H1 Title", core.SourceH1,
		},
		{
			"entities decoded",
			`<meta property="og:title" content="Tom &amp; Jerry &#39;s">`,
			"Tom & Jerry 's", core.SourceOG,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := resolveHTML(t, "<html><head>"+tt.html+"</head></html>")
			assert.Equal(t, tt.wantTitle, data.Title)
			assert.Equal(t, tt.wantSource, data.TitleSource)
		})
	}
}

func TestResolve_ImageAbsolutized(t *testing.T) {
	data := resolveHTML(t, `<html><head><meta property="og:image" content="/img/mouse.jpg"></head></html>`)
	assert.Equal(t, "https://shop.example/img/mouse.jpg", data.ImageURL)
	assert.Equal(t, core.SourceOG, data.ImageSource)
}

func TestResolve_OGPriceWithBounds(t *testing.T) {
	html := `<html><head>
		<meta property="og:title" content="T">
		<meta property="product:price:amount" content="29.99">
		<meta property="product:price:currency" content="USD">
	</head></html>`
	data := resolveHTML(t, html)
	require.NotNil(t, data.Price)
	assert.InDelta(t, 29.99, *data.Price, 0.001)
	assert.Equal(t, core.SourceOG, data.PriceSource)
	assert.Equal(t, "USD", data.Currency)
	assert.Equal(t, core.SourceOG, data.CurrencySource)
}

func TestResolve_OGPriceOutOfBoundsIgnored(t *testing.T) {
	html := `<html><head><meta property="product:price:amount" content="0.01"></head></html>`
	data := resolveHTML(t, html)
	assert.Nil(t, data.Price)
	assert.Empty(t, data.PriceSource)
}

func TestResolve_HeuristicPriceBounds(t *testing.T) {
	tests := []struct {
		name      string
		html      string
		wantPrice *float64
	}{
		{"below floor rejected", `<body><p>$0.01</p></body>`, nil},
		{"at ceiling accepted", `<body><p>$999999.99</p></body>`, ptr(999999.99)},
		{"above ceiling rejected", `<body><p>$1,000,001</p></body>`, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := resolveHTML(t, "<html>"+tt.html+"</html>")
			if tt.wantPrice == nil {
				assert.Nil(t, data.Price)
			} else {
				require.NotNil(t, data.Price)
				assert.InDelta(t, *tt.wantPrice, *data.Price, 0.001)
				assert.Equal(t, core.SourceHeuristic, data.PriceSource)
				assert.Equal(t, "USD", data.Currency)
			}
		})
	}
}

func TestResolve_MalformedJSONLDResilience(t *testing.T) {
	html := `<html><head>
		<script type="application/ld+json">{broken json!!</script>
		<script type="application/ld+json">{
			"@type": "Product",
			"name": "JSON-LD Mouse",
			"image": "https://cdn.example/product-large.jpg",
			"offers": {"price": "49.99", "priceCurrency": "EUR", "url": "https://shop.example/p/42"}
		}</script>
	</head></html>`

	raw := extract.New().Extract(html)
	require.Len(t, raw.JSONLDBlocks, 2)
	assert.Equal(t, 1, raw.JSONLDParsed)

	data := New().Resolve(raw, finalURL)
	assert.Equal(t, "JSON-LD Mouse", data.Title)
	assert.Equal(t, core.SourceJSONLD, data.TitleSource)
	assert.Equal(t, "https://cdn.example/product-large.jpg", data.ImageURL)
	assert.Equal(t, core.SourceJSONLD, data.ImageSource)
	require.NotNil(t, data.Price)
	assert.InDelta(t, 49.99, *data.Price, 0.001)
	assert.Equal(t, "EUR", data.Currency)
}

func TestResolve_JSONLDGraphAndTypeArray(t *testing.T) {
	html := `<html><head><script type="application/ld+json">{
		"@graph": [
			{"@type": "WebPage", "name": "not it"},
			{"@type": ["Thing", "ProductGroup"], "name": "Graph Product",
			 "image": ["https://cdn.example/icon.png", "https://cdn.example/main-large.jpg"],
			 "offers": [{"price": 12.5, "priceCurrency": "GBP"}]}
		]
	}</script></head></html>`

	data := resolveHTML(t, html)
	assert.Equal(t, "Graph Product", data.Title)
	// Array images go through the same scoring as the heuristic scan.
	assert.Equal(t, "https://cdn.example/main-large.jpg", data.ImageURL)
	require.NotNil(t, data.Price)
	assert.InDelta(t, 12.5, *data.Price, 0.001)
	assert.Equal(t, "GBP", data.Currency)
}

func TestResolve_JSONLDOnlyFillsUnresolved(t *testing.T) {
	html := `<html><head>
		<meta property="og:title" content="OG Wins">
		<script type="application/ld+json">{"@type":"Product","name":"JSON-LD Loses",
			"offers":{"price":"10.00","priceCurrency":"USD"}}</script>
	</head></html>`

	data := resolveHTML(t, html)
	assert.Equal(t, "OG Wins", data.Title)
	assert.Equal(t, core.SourceOG, data.TitleSource)
	// Price was unresolved, so JSON-LD fills it.
	require.NotNil(t, data.Price)
	assert.Equal(t, core.SourceJSONLD, data.PriceSource)
}

func TestResolve_CanonicalPriority(t *testing.T) {
	tests := []struct {
		name       string
		html       string
		want       string
		wantSource core.FieldSource
	}{
		{
			"same-host og:url wins",
			`<meta property="og:url" content="https://shop.example/p/42?ref=x">
			 <link rel="canonical" href="https://shop.example/canon">`,
			"https://shop.example/p/42?ref=x", core.SourceOG,
		},
		{
			"cross-host og:url distrusted",
			`<meta property="og:url" content="https://amp.other.example/p/42">
			 <link rel="canonical" href="/canon">`,
			"https://shop.example/canon", core.SourceCanonical,
		},
		{
			"falls back to final URL",
			``,
			finalURL, core.SourceCanonical,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := resolveHTML(t, "<html><head>"+tt.html+"</head></html>")
			assert.Equal(t, tt.want, data.CanonicalURL)
			assert.Equal(t, tt.wantSource, data.CanonicalSource)
		})
	}
}

func TestResolve_OfferURLFillsCanonical(t *testing.T) {
	html := `<html><head><script type="application/ld+json">{
		"@type": "Product", "name": "P",
		"offers": {"price": "5.00", "priceCurrency": "USD", "url": "https://shop.example/offer/42"}
	}</script></head></html>`

	data := resolveHTML(t, html)
	assert.Equal(t, "https://shop.example/offer/42", data.CanonicalURL)
	assert.Equal(t, core.SourceJSONLD, data.CanonicalSource)
}

func TestResolve_SourceSetWheneverFieldSet(t *testing.T) {
	html := `<html><head>
		<meta property="og:title" content="T">
		<meta property="og:image" content="/i.jpg">
		<meta property="product:price:amount" content="9.99">
		<meta property="product:price:currency" content="USD">
		<meta property="og:description" content="D">
	</head></html>`
	data := resolveHTML(t, html)

	assert.NotEmpty(t, data.TitleSource)
	assert.NotEmpty(t, data.ImageSource)
	assert.NotEmpty(t, data.PriceSource)
	assert.NotEmpty(t, data.CurrencySource)
	assert.NotEmpty(t, data.DescriptionSource)
	assert.NotEmpty(t, data.CanonicalSource)
}

func TestResolve_Idempotent(t *testing.T) {
	html := `<html><head>
		<meta property="og:title" content="T">
		<meta property="og:image" content="/i.jpg">
		<script type="application/ld+json">{"@type":"Product","offers":{"price":"9.99"}}</script>
	</head><body><h1>h</h1><p>$3.50</p></body></html>`

	raw := extract.New().Extract(html)
	first := New().Resolve(raw, finalURL)
	second := New().Resolve(raw, finalURL)
	assert.Equal(t, first, second)
}

func ptr(v float64) *float64 { return &v }
