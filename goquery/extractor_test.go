package goquery_test

import (
	"regexp"
	"testing"
	"time"

	"github.com/fwojciec/gazette"
	"github.com/fwojciec/gazette/dateparser"
	gq "github.com/fwojciec/gazette/goquery"
	"github.com/fwojciec/gazette/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const pageURL = "https://www.example.fr/2025/08/article/"

func extract(t *testing.T, html string, opts ...gq.Option) *gazette.Article {
	t.Helper()
	e := gq.NewExtractor(dateparser.NewNormalizer(), opts...)
	article, err := e.ExtractArticle(html, pageURL)
	require.NoError(t, err)
	require.NotNil(t, article)
	return article
}

func TestExtractor_ExtractArticle(t *testing.T) {
	t.Parallel()

	t.Run("extracts a minimal article end to end", func(t *testing.T) {
		t.Parallel()

		html := `<!DOCTYPE html>
<html>
<head>
<title>Titre de l'onglet</title>
<meta property="og:image" content="/img/cover.jpg">
</head>
<body>
<article>
<h1>L'IA générative en entreprise</h1>
<time datetime="2025-08-28T09:30:00+02:00">28 août 2025</time>
<p>Premier paragraphe suffisamment long pour être gardé.</p>
<p>Second paragraphe qui décrit les usages observés.</p>
</article>
</body>
</html>`

		now := time.Date(2025, 8, 29, 7, 0, 0, 0, time.UTC)
		a := extract(t, html, gq.WithClock(func() time.Time { return now }))

		assert.Equal(t, pageURL, a.URL)
		assert.Equal(t, "L'IA générative en entreprise", a.Title)
		assert.Equal(t, "https://www.example.fr/img/cover.jpg", a.Thumbnail)
		assert.Equal(t, "20250828", a.Date)
		assert.Equal(t, "Premier paragraphe suffisamment long pour être gardé.\n\nSecond paragraphe qui décrit les usages observés.", a.Content)
		assert.Equal(t, "Premier paragraphe suffisamment long pour être gardé.", a.Summary)
		assert.Empty(t, a.Author)
		assert.Empty(t, a.Subcategory)
		assert.NotNil(t, a.Sommaire)
		assert.Empty(t, a.Sommaire)
		assert.NotNil(t, a.Images)
		assert.Empty(t, a.Images)
		assert.Equal(t, now, a.ScrapedAt)
	})

	t.Run("returns empty date when the page has none", func(t *testing.T) {
		t.Parallel()

		html := `<html><body><article>
<h1>Un titre sans date</h1>
<p>Un paragraphe qui ne mentionne aucun jour précis.</p>
</article></body></html>`

		a := extract(t, html)
		assert.Empty(t, a.Date)
	})

	t.Run("ignores dates inside scripts and styles", func(t *testing.T) {
		t.Parallel()

		html := `<html><head><style>.x{content:"2020-01-01"}</style></head><body>
<script>var published = "Publié le 1 janvier 2020";</script>
<article><h1>Titre</h1><p>Un paragraphe assez long pour compter.</p></article>
</body></html>`

		a := extract(t, html)
		assert.Empty(t, a.Date)
		assert.Equal(t, "Un paragraphe assez long pour compter.", a.Content)
	})

	t.Run("tolerates empty and broken markup", func(t *testing.T) {
		t.Parallel()

		for _, html := range []string{"", "<html", "<div><p>non fermé", "texte brut"} {
			a := extract(t, html)
			assert.Equal(t, pageURL, a.URL)
			assert.NotNil(t, a.Sommaire)
			assert.NotNil(t, a.Images)
		}
	})

	t.Run("rejects unparseable base URL", func(t *testing.T) {
		t.Parallel()

		e := gq.NewExtractor(dateparser.NewNormalizer())
		_, err := e.ExtractArticle("<html></html>", "http://[::1")

		require.Error(t, err)
		assert.Equal(t, gazette.EINVALID, gazette.ErrorCode(err))
	})

	t.Run("custom patterns replace defaults", func(t *testing.T) {
		t.Parallel()

		patterns := gq.DefaultPatterns()
		patterns.SummaryClass = regexp.MustCompile(`(?i)accroche`)

		html := `<html><body><article>
<p class="accroche">Une accroche personnalisée.</p>
<p class="chapo">Un chapô ignoré.</p>
</article></body></html>`

		a := extract(t, html, gq.WithPatterns(patterns))
		assert.Equal(t, "Une accroche personnalisée.", a.Summary)
	})
}

func TestExtractor_Title(t *testing.T) {
	t.Parallel()

	t.Run("prefers first h1", func(t *testing.T) {
		t.Parallel()

		a := extract(t, `<html><head><meta property="og:title" content="OG"><title>Onglet</title></head>
<body><h1>  Premier titre </h1><h1>Second</h1></body></html>`)
		assert.Equal(t, "Premier titre", a.Title)
	})

	t.Run("falls back to og:title", func(t *testing.T) {
		t.Parallel()

		a := extract(t, `<html><head><meta property="og:title" content="Titre Open Graph"><title>Onglet</title></head><body></body></html>`)
		assert.Equal(t, "Titre Open Graph", a.Title)
	})

	t.Run("falls back to title element", func(t *testing.T) {
		t.Parallel()

		a := extract(t, `<html><head><title>Titre de l'onglet</title></head><body><h1> </h1></body></html>`)
		assert.Equal(t, "Titre de l'onglet", a.Title)
	})
}

func TestExtractor_Thumbnail(t *testing.T) {
	t.Parallel()

	t.Run("featured image class", func(t *testing.T) {
		t.Parallel()

		a := extract(t, `<html><body><article>
<img src="/first.jpg"><img class="wp-post-image featured" data-src="/featured.jpg">
</article></body></html>`)
		assert.Equal(t, "https://www.example.fr/featured.jpg", a.Thumbnail)
	})

	t.Run("first figure image in container", func(t *testing.T) {
		t.Parallel()

		a := extract(t, `<html><body><article>
<img src="/before.jpg"><figure><img src="/figure.jpg"></figure>
</article></body></html>`)
		assert.Equal(t, "https://www.example.fr/figure.jpg", a.Thumbnail)
	})

	t.Run("first image in container", func(t *testing.T) {
		t.Parallel()

		a := extract(t, `<html><body><img src="/outside.jpg"><article><img src="relative.jpg"></article></body></html>`)
		assert.Equal(t, "https://www.example.fr/2025/08/article/relative.jpg", a.Thumbnail)
	})
}

func TestExtractor_Sommaire(t *testing.T) {
	t.Parallel()

	t.Run("list following the innermost announcing element", func(t *testing.T) {
		t.Parallel()

		a := extract(t, `<html><body><div class="wrap">
<nav><ul><li>Accueil du site</li></ul></nav>
<div class="encart"><p>Sommaire</p>
<ol><li>Introduction générale</li><li>Les outils</li><li>Ok</li></ol>
</div>
<ul><li>Autre liste</li></ul>
</div></body></html>`)
		assert.Equal(t, []string{"Introduction générale", "Les outils"}, a.Sommaire)
	})

	t.Run("table des matières heading", func(t *testing.T) {
		t.Parallel()

		a := extract(t, `<html><body><article>
<h2>Table des matières</h2>
<ul><li>Définition</li><li>Exemples concrets</li></ul>
</article></body></html>`)
		assert.Equal(t, []string{"Définition", "Exemples concrets"}, a.Sommaire)
	})

	t.Run("falls back to toc block without duplicating links", func(t *testing.T) {
		t.Parallel()

		a := extract(t, `<html><body>
<div class="toc-container"><ul>
<li><a href="#a">Premier point</a></li>
<li><a href="#b">Second point</a></li>
</ul><a href="#c">Lien isolé</a></div>
</body></html>`)
		assert.Equal(t, []string{"Premier point", "Second point", "Lien isolé"}, a.Sommaire)
	})
}

func TestExtractor_Subcategory(t *testing.T) {
	t.Parallel()

	t.Run("second to last breadcrumb link", func(t *testing.T) {
		t.Parallel()

		a := extract(t, `<html><body><nav class="breadcrumb">
<a href="/">Accueil</a> &gt; <a href="/ia/">Intelligence artificielle</a> &gt; <a href="/ia/x/">L'article</a>
</nav></body></html>`)
		assert.Equal(t, "Intelligence artificielle", a.Subcategory)
	})

	t.Run("single breadcrumb link", func(t *testing.T) {
		t.Parallel()

		a := extract(t, `<html><body><ol class="fil-ariane"><li><a href="/web/">Web</a></li></ol></body></html>`)
		assert.Equal(t, "Web", a.Subcategory)
	})

	t.Run("article section meta", func(t *testing.T) {
		t.Parallel()

		a := extract(t, `<html><head><meta property="article:section" content="Réseaux sociaux"></head><body></body></html>`)
		assert.Equal(t, "Réseaux sociaux", a.Subcategory)
	})

	t.Run("category link", func(t *testing.T) {
		t.Parallel()

		a := extract(t, `<html><body>
<a href="/contact/">Contact</a>
<a href="https://www.example.fr/categorie/marketing/">Marketing</a>
<a href="/tag/seo/">SEO</a>
</body></html>`)
		assert.Equal(t, "Marketing", a.Subcategory)
	})
}

func TestExtractor_Summary(t *testing.T) {
	t.Parallel()

	t.Run("lede class", func(t *testing.T) {
		t.Parallel()

		a := extract(t, `<html><head><meta name="description" content="Description"></head>
<body><div class="article-chapo">  Le chapô de l'article. </div></body></html>`)
		assert.Equal(t, "Le chapô de l'article.", a.Summary)
	})

	t.Run("meta description before og description", func(t *testing.T) {
		t.Parallel()

		a := extract(t, `<html><head>
<meta property="og:description" content="Description OG">
<meta name="description" content="Description classique">
</head><body></body></html>`)
		assert.Equal(t, "Description classique", a.Summary)
	})

	t.Run("og description", func(t *testing.T) {
		t.Parallel()

		a := extract(t, `<html><head><meta property="og:description" content="Description OG"></head><body></body></html>`)
		assert.Equal(t, "Description OG", a.Summary)
	})

	t.Run("short paragraph after title is not a summary", func(t *testing.T) {
		t.Parallel()

		a := extract(t, `<html><body><h1>Titre</h1><p>Trop court.</p></body></html>`)
		assert.Empty(t, a.Summary)
	})
}

func TestExtractor_Date(t *testing.T) {
	t.Parallel()

	t.Run("time text when datetime attribute is absent", func(t *testing.T) {
		t.Parallel()

		a := extract(t, `<html><body><time>3 mars 2024</time></body></html>`)
		assert.Equal(t, "20240303", a.Date)
	})

	t.Run("publication phrase", func(t *testing.T) {
		t.Parallel()

		a := extract(t, `<html><body>
<p class="meta">Publié le 12 juin 2024 | Mis à jour</p>
</body></html>`)
		assert.Equal(t, "20240612", a.Date)
	})

	t.Run("bare iso date in text", func(t *testing.T) {
		t.Parallel()

		a := extract(t, `<html><body><p>Version du 2023-11-05.</p></body></html>`)
		assert.Equal(t, "20231105", a.Date)
	})

	t.Run("unusable datetime attribute skips the time text", func(t *testing.T) {
		t.Parallel()

		var seen []string
		dates := &mock.DateNormalizer{
			NormalizeDateFn: func(text string) string {
				seen = append(seen, text)
				if text == "2024-06-12" {
					return "20240612"
				}
				return ""
			},
		}

		e := gq.NewExtractor(dates)
		a, err := e.ExtractArticle(`<html><body>
<time datetime="inconnue">bientôt</time>
<p>Mise en ligne 2024-06-12</p>
</body></html>`, pageURL)

		require.NoError(t, err)
		assert.Equal(t, "20240612", a.Date)
		require.NotEmpty(t, seen)
		assert.Equal(t, "inconnue", seen[0])
		assert.NotContains(t, seen, "bientôt")
		assert.Equal(t, "2024-06-12", seen[len(seen)-1])
	})

	t.Run("empty datetime attribute uses the time text", func(t *testing.T) {
		t.Parallel()

		a := extract(t, `<html><body><time datetime=" ">3 mars 2024</time></body></html>`)
		assert.Equal(t, "20240303", a.Date)
	})

	t.Run("relative time text never yields a date", func(t *testing.T) {
		t.Parallel()

		a := extract(t, `<html><body><time>hier</time><p>Mis à jour il y a 3 jours</p></body></html>`)
		assert.Empty(t, a.Date)
	})

	t.Run("relative time element does not shadow the publication phrase", func(t *testing.T) {
		t.Parallel()

		a := extract(t, `<html><body>
<time datetime="bogus">hier</time>
<p>Publié le 3 mars 2024 | Rédaction</p>
</body></html>`)
		assert.Equal(t, "20240303", a.Date)
	})
}

func TestExtractor_Author(t *testing.T) {
	t.Parallel()

	t.Run("rel author link", func(t *testing.T) {
		t.Parallel()

		a := extract(t, `<html><body><span class="author">Autre</span>
<a rel="author nofollow" href="/auteur/jane/">Jane Doe</a></body></html>`)
		assert.Equal(t, "Jane Doe", a.Author)
	})

	t.Run("author class", func(t *testing.T) {
		t.Parallel()

		a := extract(t, `<html><body><p class="post-auteur">Marie Curie</p></body></html>`)
		assert.Equal(t, "Marie Curie", a.Author)
	})

	t.Run("byline in text", func(t *testing.T) {
		t.Parallel()

		a := extract(t, `<html><body><p>Un article rédigé par Jean Dupont, journaliste.</p></body></html>`)
		assert.Equal(t, "Jean Dupont", a.Author)
	})
}

func TestExtractor_Content(t *testing.T) {
	t.Parallel()

	html := `<html><body><article>
<p>Paragraphe hors du corps principal.</p>
<div class="entry-content">
<p>Ce paragraphe fait partie du corps.</p>
<h2>Une section importante</h2>
<nav><p>Menu de navigation principal</p></nav>
<div class="social-share"><p>Partagez cet article sur vos réseaux</p></div>
<aside><p>Lire aussi : un autre article</p></aside>
<div class="ad-slot"><p>Publicité pour un produit</p></div>
<div class="header-note"><p>Ce texte reste dans le corps.</p></div>
<p>Court.</p>
<h3>Conclusion générale</h3>
</div>
</article></body></html>`

	a := extract(t, html)
	assert.Equal(t,
		"Ce paragraphe fait partie du corps.\n\nUne section importante\n\nCe texte reste dans le corps.\n\nConclusion générale",
		a.Content)
}

func TestExtractor_ContentAdClasses(t *testing.T) {
	t.Parallel()

	tests := []struct {
		class string
		kept  bool
	}{
		{class: "ad-slot", kept: false},
		{class: "ads", kept: false},
		{class: "pub_ad", kept: false},
		{class: "bloc AD", kept: false},
		{class: "download-box", kept: true},
		{class: "header", kept: true},
		{class: "lead-in", kept: true},
		{class: "loader", kept: true},
	}

	for _, tt := range tests {
		t.Run(tt.class, func(t *testing.T) {
			t.Parallel()

			html := `<html><body><article><div class="entry-content">
<p>Premier paragraphe du corps.</p>
<div class="` + tt.class + `"><p>Texte sous la classe testée.</p></div>
</div></article></body></html>`

			a := extract(t, html)
			if tt.kept {
				assert.Contains(t, a.Content, "Texte sous la classe testée.")
			} else {
				assert.NotContains(t, a.Content, "Texte sous la classe testée.")
			}
			assert.Contains(t, a.Content, "Premier paragraphe du corps.")
		})
	}
}

func TestExtractor_Images(t *testing.T) {
	t.Parallel()

	html := `<html><head><meta property="og:image" content="/img/cover.jpg"></head><body><article>
<div class="entry-content">
<figure><img src="/img/a.jpg" width="800" height="600" alt="alt ignoré"><figcaption> Légende A </figcaption></figure>
<img src="/img/icon.png" width="50" height="50">
<img src="/img/wide.png" width="600" height="80">
<img src="/img/b.jpg" alt="Texte alternatif">
<img src="/img/c.jpg" title="Titre image" width="auto" height="40">
<img src="/img/cover.jpg">
<img data-src="">
<img src="/img/d.jpg">
</div>
</article></body></html>`

	a := extract(t, html)

	assert.Equal(t, "https://www.example.fr/img/cover.jpg", a.Thumbnail)
	assert.Equal(t, []gazette.Image{
		{URL: "https://www.example.fr/img/a.jpg", Caption: "Légende A"},
		{URL: "https://www.example.fr/img/b.jpg", Caption: "Texte alternatif"},
		{URL: "https://www.example.fr/img/c.jpg", Caption: "Titre image"},
		{URL: "https://www.example.fr/img/d.jpg", Caption: ""},
	}, a.Images)
}
