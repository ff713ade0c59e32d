package serviceImp

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"soilsync/entities"
)

type fakeRepo struct {
	docs   []entities.GuideDoc
	chunks []entities.GuideChunk
}

func (r *fakeRepo) CreateDoc(d *entities.GuideDoc) error {
	d.DocID = uint(len(r.docs) + 1)
	r.docs = append(r.docs, *d)
	return nil
}

func (r *fakeRepo) BulkInsertChunks(cs []entities.GuideChunk) error {
	r.chunks = append(r.chunks, cs...)
	return nil
}

func (r *fakeRepo) ListDocs() ([]entities.GuideDoc, error) { return r.docs, nil }

func (r *fakeRepo) AllChunks() ([]entities.GuideChunk, error) { return r.chunks, nil }

func (r *fakeRepo) DocsByIDs(ids []uint) (map[uint]entities.GuideDoc, error) {
	m := map[uint]entities.GuideDoc{}
	for _, d := range r.docs {
		for _, id := range ids {
			if d.DocID == id {
				m[d.DocID] = d
			}
		}
	}
	return m, nil
}

func TestChunkByParagraphs(t *testing.T) {
	text := "First paragraph about carrots.\n\nSecond paragraph about lettuce.\n\nThird."
	parts := chunkByParagraphs(text, 1000)
	// everything fits in one chunk; paragraphs stay joined
	require.Len(t, parts, 1)
	assert.Contains(t, parts[0], "carrots")
	assert.Contains(t, parts[0], "Third")

	// with a tight budget the first paragraph flushes alone and the
	// short third one packs in with the second
	parts = chunkByParagraphs(text, 40)
	require.Len(t, parts, 2)
	assert.Equal(t, "First paragraph about carrots.", parts[0])
	assert.Contains(t, parts[1], "Third")
}

func TestChunkByParagraphsEmpty(t *testing.T) {
	assert.Empty(t, chunkByParagraphs("", 1000))
	assert.Empty(t, chunkByParagraphs("\n\n\n\n", 1000))
}

func TestIngestGuideAndKeywordSearch(t *testing.T) {
	repo := &fakeRepo{}
	svc := New(repo, nil) // no embedder: keyword fallback

	doc, n, err := svc.IngestGuide("Carrot growing guide", "carrot",
		"Carrots need loose soil and consistent moisture.\n\nLettuce bolts in summer heat.", "https://example.org/carrots")
	require.NoError(t, err)
	assert.Equal(t, uint(1), doc.DocID)
	assert.Equal(t, 1, n) // both paragraphs fit one chunk

	got, err := svc.Search("carrot soil", 3)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.True(t, strings.Contains(got[0].Text, "Carrots"))

	got, err = svc.Search("cucumber trellis", 3)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestSearchRanksByTermHits(t *testing.T) {
	repo := &fakeRepo{}
	svc := New(repo, nil)
	_, _, err := svc.IngestGuide("Mixed guide", "",
		"Carrot spacing advice only.\n\n"+strings.Repeat("x", 1001)+"\n\nCarrot and lettuce spacing together.", "")
	require.NoError(t, err)

	got, err := svc.Search("carrot lettuce", 2)
	require.NoError(t, err)
	require.NotEmpty(t, got)
	assert.Contains(t, got[0].Text, "lettuce")
}

func TestSearchEmptyQuery(t *testing.T) {
	svc := New(&fakeRepo{}, nil)
	got, err := svc.Search("", 5)
	require.NoError(t, err)
	assert.Nil(t, got)
}
