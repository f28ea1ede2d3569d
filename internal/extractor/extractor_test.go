package extractor

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parse(t *testing.T, html string) *goquery.Selection {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	require.NoError(t, err)
	return doc.Selection
}

func TestFirstAndLastText(t *testing.T) {
	doc := parse(t, `<div>
		<span class="item height"><strong>Height</strong><br>5'11"<br> 180.34 cm </span>
		<h1 itemprop="name"><span class="fn">Jane Doe</span><span class="nickname">"JD"</span></h1>
	</div>`)

	got, ok := LastText(doc, ".item.height")
	require.True(t, ok)
	assert.Equal(t, "180.34 cm", got)

	got, ok = FirstText(doc, ".item.height")
	require.True(t, ok)
	assert.Equal(t, "Height", got)

	got, ok = FirstText(doc, "h1[itemprop='name'] span")
	require.True(t, ok)
	assert.Equal(t, "Jane Doe", got)

	_, ok = FirstText(doc, ".item.weight")
	assert.False(t, ok)
}

func TestEmptyElementIsAbsent(t *testing.T) {
	doc := parse(t, `<span itemprop="birthDate">   </span><span itemprop="addressLocality"></span>`)

	_, ok := FirstText(doc, "[itemprop='birthDate']")
	assert.False(t, ok)
	_, ok = FirstText(doc, "[itemprop='addressLocality']")
	assert.False(t, ok)
}

func TestNextSpanText(t *testing.T) {
	doc := parse(t, `<div class="bio_graph">
		<span class="card"><span class="result">Wins</span><span class="counter">10</span></span>
		<span class="card"><span class="result">Losses</span><em>x</em><span class="counter">2</span></span>
		<span class="card"><span class="result">Draws</span></span>
	</div>`)

	var labels, counts []string
	doc.Find(".result").Each(func(_ int, s *goquery.Selection) {
		label, _ := OwnText(s)
		labels = append(labels, label)
		count, ok := NextSpanText(s)
		if ok {
			counts = append(counts, count)
		}
	})

	assert.Equal(t, []string{"Wins", "Losses", "Draws"}, labels)
	assert.Equal(t, []string{"10", "2"}, counts)
}
