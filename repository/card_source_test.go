package repository

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

const catalogPage = `<!doctype html>
<html><body>
<main>
  <div class="bg-white rounded-lg" data-card-id="cuadro-1">
    <img class="product-image" src="img/cuadro1.jpg" alt="Cuadro 1">
    <div class="p-4"><h2>Cuadro 1</h2><p>Óleo sobre lienzo</p></div>
  </div>
  <div class="bg-white rounded-lg">
    <img class="product-image" src="img/cuadro2.jpg" data-images="img/cuadro2.jpg, img/cuadro2_3.jpg">
    <div class="p-4"><h2> Cuadro 2 </h2></div>
  </div>
  <div class="bg-white rounded-lg">
    <div class="p-4"><h2>Marco dorado</h2></div>
  </div>
</main>
<div id="lightbox"></div>
</body></html>`

func TestParseCards(t *testing.T) {
	t.Parallel()

	cards, err := ParseCards(strings.NewReader(catalogPage))
	require.NoError(t, err)
	require.Len(t, cards, 3)

	require.Equal(t, "cuadro-1", cards[0].Key)
	require.Equal(t, "Cuadro 1", cards[0].Title)
	require.Equal(t, "Óleo sobre lienzo", cards[0].Description)
	require.NotNil(t, cards[0].Image)
	require.Equal(t, "img/cuadro1.jpg", cards[0].Image.Src)
	require.Empty(t, cards[0].Image.DataImages)

	require.Equal(t, "card-2", cards[1].Key)
	require.Equal(t, "Cuadro 2", cards[1].Title)
	require.Equal(t, "img/cuadro2.jpg, img/cuadro2_3.jpg", cards[1].Image.DataImages)

	require.Equal(t, "card-3", cards[2].Key)
	require.Nil(t, cards[2].Image, "card without product image")
}

func TestHTMLCardSourceReadsFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "index.html")
	require.NoError(t, os.WriteFile(path, []byte(catalogPage), 0644))

	cards, err := NewHTMLCardSource(path).ListCards(context.Background())
	require.NoError(t, err)
	require.Len(t, cards, 3)

	_, err = NewHTMLCardSource(filepath.Join(t.TempDir(), "missing.html")).ListCards(context.Background())
	require.Error(t, err)
}

func TestParseYAMLCards(t *testing.T) {
	t.Parallel()

	data := []byte(`
- key: cuadro-7
  title: Cuadro 7
  image: img/cuadro7.jpg
- title: Cuadro 8
  images: [img/cuadro8.jpg, img/cuadro8_2.jpg]
- key: marco
  title: Marco dorado
`)
	cards, err := ParseYAMLCards(data)
	require.NoError(t, err)
	require.Len(t, cards, 3)

	require.Equal(t, "cuadro-7", cards[0].Key)
	require.Equal(t, "img/cuadro7.jpg", cards[0].Image.Src)
	require.Equal(t, "card-2", cards[1].Key)
	require.Equal(t, "img/cuadro8.jpg,img/cuadro8_2.jpg", cards[1].Image.DataImages)
	require.Nil(t, cards[2].Image)

	_, err = ParseYAMLCards([]byte("key: [unterminated"))
	require.Error(t, err)
}

func TestIsYAMLPath(t *testing.T) {
	t.Parallel()

	require.True(t, IsYAMLPath("cards.yaml"))
	require.True(t, IsYAMLPath("CARDS.YML"))
	require.False(t, IsYAMLPath("static/index.html"))
}
