package filestore_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/noelukwa/devcard/internal/card/models"
	"github.com/noelukwa/devcard/internal/card/repository"
	"github.com/noelukwa/devcard/internal/card/repository/filestore"
	"github.com/test-go/testify/assert"
	"github.com/test-go/testify/require"
)

func cards() []models.Card {
	return []models.Card{
		{Login: "octocat", Theme: models.DarkTheme, Variant: models.NeofetchVariant, SVG: []byte("<svg>dark</svg>")},
		{Login: "octocat", Theme: models.LightTheme, Variant: models.NeofetchVariant, SVG: []byte("<svg>light</svg>")},
	}
}

func TestNew_CreatesDir(t *testing.T) {
	root := filepath.Join(t.TempDir(), "out", "cards")

	_, err := filestore.New(root, "octocat")
	require.NoError(t, err)

	info, err := os.Stat(root)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestNew_NotDir(t *testing.T) {
	file := filepath.Join(t.TempDir(), "plain")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0o644))

	_, err := filestore.New(file, "octocat")
	assert.True(t, errors.Is(err, filestore.ErrNotDir))
}

func TestSaveCards(t *testing.T) {
	ctx := context.Background()
	root := t.TempDir()
	store, err := filestore.New(root, "octocat")
	require.NoError(t, err)

	require.NoError(t, store.SaveCards(ctx, cards()))

	dark, err := os.ReadFile(filepath.Join(root, "dark_mode.svg"))
	require.NoError(t, err)
	assert.Equal(t, "<svg>dark</svg>", string(dark))

	light, err := os.ReadFile(filepath.Join(root, "light_mode.svg"))
	require.NoError(t, err)
	assert.Equal(t, "<svg>light</svg>", string(light))

	entries, err := os.ReadDir(root)
	require.NoError(t, err)
	assert.Len(t, entries, 2)
}

func TestSaveCards_Overwrites(t *testing.T) {
	ctx := context.Background()
	root := t.TempDir()
	store, err := filestore.New(root, "octocat")
	require.NoError(t, err)

	require.NoError(t, store.SaveCards(ctx, cards()))
	updated := cards()[:1]
	updated[0].SVG = []byte("<svg>dark v2</svg>")
	require.NoError(t, store.SaveCards(ctx, updated))

	card, err := store.GetCard(ctx, "octocat", models.DarkTheme, models.NeofetchVariant)
	require.NoError(t, err)
	assert.Equal(t, "<svg>dark v2</svg>", string(card.SVG))
}

func TestGetCard_NotFound(t *testing.T) {
	store, err := filestore.New(t.TempDir(), "octocat")
	require.NoError(t, err)

	card, err := store.GetCard(context.Background(), "octocat", models.DarkTheme, models.CompactVariant)
	assert.Nil(t, card)
	assert.Equal(t, repository.ErrCardNotFound, err)
}

func TestFindCards(t *testing.T) {
	ctx := context.Background()
	store, err := filestore.New(t.TempDir(), "octocat")
	require.NoError(t, err)

	all := append(cards(), models.Card{Login: "octocat", Theme: models.DarkTheme, Variant: models.CompactVariant, SVG: []byte("<svg/>")})
	require.NoError(t, store.SaveCards(ctx, all))

	page, err := store.FindCards(ctx, models.CardFilter{}, repository.Pagination{Page: 1, PerPage: 2})
	require.NoError(t, err)
	assert.Equal(t, int64(3), page.TotalCount)
	require.Len(t, page.Data, 2)
	assert.Equal(t, models.NeofetchVariant, page.Data[0].Variant)

	page, err = store.FindCards(ctx, models.CardFilter{}, repository.Pagination{Page: 2, PerPage: 2})
	require.NoError(t, err)
	require.Len(t, page.Data, 1)
	assert.Equal(t, models.CompactVariant, page.Data[0].Variant)

	dark := models.DarkTheme
	page, err = store.FindCards(ctx, models.CardFilter{Theme: &dark}, repository.Pagination{Page: 1, PerPage: 10})
	require.NoError(t, err)
	assert.Equal(t, int64(2), page.TotalCount)
	for _, c := range page.Data {
		assert.Equal(t, models.DarkTheme, c.Theme)
		assert.Equal(t, "octocat", c.Login)
	}
}

func TestSaveCards_RollsBackWhenLaterCardFails(t *testing.T) {
	ctx := context.Background()
	root := t.TempDir()
	store, err := filestore.New(root, "octocat")
	require.NoError(t, err)

	require.NoError(t, store.SaveCards(ctx, cards()[:1]))

	// A directory in place of light_mode.svg cannot be backed up or replaced.
	require.NoError(t, os.MkdirAll(filepath.Join(root, "light_mode.svg", "keep"), 0o755))

	updated := cards()
	updated[0].SVG = []byte("<svg>dark v2</svg>")
	assert.Error(t, store.SaveCards(ctx, updated))

	dark, err := os.ReadFile(filepath.Join(root, "dark_mode.svg"))
	require.NoError(t, err)
	assert.Equal(t, "<svg>dark</svg>", string(dark))

	entries, err := os.ReadDir(root)
	require.NoError(t, err)
	assert.Len(t, entries, 2)
}

func TestSaveCards_RollsBackNewFiles(t *testing.T) {
	ctx := context.Background()
	root := t.TempDir()
	store, err := filestore.New(root, "octocat")
	require.NoError(t, err)

	require.NoError(t, os.MkdirAll(filepath.Join(root, "light_mode.svg", "keep"), 0o755))

	assert.Error(t, store.SaveCards(ctx, cards()))

	_, err = os.Stat(filepath.Join(root, "dark_mode.svg"))
	assert.True(t, errors.Is(err, os.ErrNotExist))
}
