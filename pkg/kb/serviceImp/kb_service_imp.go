package serviceImp

import (
	"math"
	"sort"
	"strings"

	"soilsync/entities"
	"soilsync/pkg/kb/embedder"
	"soilsync/pkg/kb/repository"
)

type Svc struct {
	r   repository.GuideRepository
	emb *embedder.Client
}

func New(r repository.GuideRepository, e *embedder.Client) *Svc { return &Svc{r: r, emb: e} }

// chunkByParagraphs splits guide text on blank lines and packs
// paragraphs into chunks of at most maxRunes. A single oversized
// paragraph becomes its own chunk rather than being split mid-sentence.
func chunkByParagraphs(text string, maxRunes int) []string {
	if maxRunes <= 0 {
		maxRunes = 1000
	}
	paras := strings.Split(strings.ReplaceAll(text, "\r", ""), "\n\n")
	var parts []string
	cur := strings.Builder{}
	for _, p := range paras {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		if cur.Len() > 0 && len([]rune(cur.String()))+len([]rune(p)) > maxRunes {
			parts = append(parts, cur.String())
			cur.Reset()
		}
		if cur.Len() > 0 {
			cur.WriteString("\n\n")
		}
		cur.WriteString(p)
	}
	if cur.Len() > 0 {
		parts = append(parts, cur.String())
	}
	return parts
}

func (s *Svc) IngestGuide(title, crops, text, sourceURL string) (*entities.GuideDoc, int, error) {
	d := &entities.GuideDoc{Title: title, Crops: crops, SourceURL: sourceURL}
	if err := s.r.CreateDoc(d); err != nil {
		return nil, 0, err
	}

	chs := chunkByParagraphs(text, 1000)
	if len(chs) == 0 {
		return d, 0, nil
	}

	var embs [][]float32
	if s.emb != nil {
		if v, err := s.emb.Embed(chs); err == nil {
			embs = v
		}
		// embedding failure degrades to keyword search, chunks kept
	}

	rows := make([]entities.GuideChunk, len(chs))
	for i := range chs {
		var eb []byte
		if embs != nil && i < len(embs) {
			eb = embedder.FloatsToBytes(embs[i])
		}
		rows[i] = entities.GuideChunk{DocID: d.DocID, Ord: i, Text: chs[i], Embedding: eb}
	}
	if err := s.r.BulkInsertChunks(rows); err != nil {
		return nil, 0, err
	}
	return d, len(rows), nil
}

func (s *Svc) Search(query string, k int) ([]entities.GuideChunk, error) {
	q := strings.TrimSpace(query)
	if q == "" || k <= 0 {
		return nil, nil
	}

	var qvec []float32
	if s.emb != nil {
		if vec, err := s.emb.Embed([]string{q}); err == nil && len(vec) > 0 {
			qvec = vec[0]
		}
	}

	chunks, err := s.r.AllChunks()
	if err != nil {
		return nil, err
	}
	if len(chunks) == 0 {
		return nil, nil
	}

	type scored struct {
		ch entities.GuideChunk
		sc float64
	}
	list := make([]scored, 0, len(chunks))

	if len(qvec) > 0 {
		for _, ch := range chunks {
			cv := embedder.BytesToFloats(ch.Embedding)
			if len(cv) != len(qvec) || len(cv) == 0 {
				continue
			}
			var dot, nq, nd float64
			for i := range qvec {
				v, w := float64(qvec[i]), float64(cv[i])
				dot += v * w
				nq += v * v
				nd += w * w
			}
			if nq == 0 || nd == 0 {
				continue
			}
			list = append(list, scored{ch, dot / (math.Sqrt(nq) * math.Sqrt(nd))})
		}
	} else {
		// keyword fallback: score by how many query terms the chunk contains
		terms := strings.Fields(strings.ToLower(q))
		for _, ch := range chunks {
			low := strings.ToLower(ch.Text)
			n := 0
			for _, t := range terms {
				if strings.Contains(low, t) {
					n++
				}
			}
			if n > 0 {
				list = append(list, scored{ch, float64(n)})
			}
		}
	}

	if len(list) == 0 {
		return nil, nil
	}
	sort.Slice(list, func(i, j int) bool { return list[i].sc > list[j].sc })
	if k > len(list) {
		k = len(list)
	}
	out := make([]entities.GuideChunk, 0, k)
	for i := 0; i < k; i++ {
		out = append(out, list[i].ch)
	}
	return out, nil
}

func (s *Svc) DocsMeta(ids []uint) (map[uint]entities.GuideDoc, error) {
	return s.r.DocsByIDs(ids)
}
