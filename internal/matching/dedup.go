package matching

import (
	"context"

	"github.com/jonathan/resume-optimizer/internal/embedding"
	"github.com/jonathan/resume-optimizer/internal/types"
)

// keywordText is the text embedded for a keyword: the keyword anchored by
// the context it appeared in, so that "Python" in a data-science posting and
// "Python" in a backend posting embed differently.
func keywordText(kw types.JobKeyword) string {
	return kw.Keyword + ": " + kw.Context
}

// dedupKeywords greedily clusters near-duplicate keywords by embedding
// similarity. Keywords are visited in input order; each joins the first
// existing cluster whose seed it exceeds the threshold against, otherwise it
// seeds a new cluster. Within each cluster the highest-relevance keyword
// becomes the representative, with the longer keyword string winning ties.
func dedupKeywords(ctx context.Context, client *embedding.Client, keywords []types.JobKeyword, threshold float64) ([]types.KeywordCluster, error) {
	if len(keywords) == 0 {
		return nil, nil
	}

	texts := make([]string, len(keywords))
	for i, kw := range keywords {
		texts[i] = keywordText(kw)
	}
	vectors, err := client.Embed(ctx, texts)
	if err != nil {
		return nil, err
	}

	type protoCluster struct {
		seed    []float32
		members []types.JobKeyword
	}

	var protos []*protoCluster
	for i, kw := range keywords {
		placed := false
		for _, p := range protos {
			if embedding.CosineSimilarity(vectors[i], p.seed) > threshold {
				p.members = append(p.members, kw)
				placed = true
				break
			}
		}
		if !placed {
			protos = append(protos, &protoCluster{seed: vectors[i], members: []types.JobKeyword{kw}})
		}
	}

	clusters := make([]types.KeywordCluster, 0, len(protos))
	for _, p := range protos {
		best := 0
		for i := 1; i < len(p.members); i++ {
			if betterRepresentative(p.members[i], p.members[best]) {
				best = i
			}
		}
		cluster := types.KeywordCluster{Representative: p.members[best]}
		for i, m := range p.members {
			if i != best {
				cluster.Synonyms = append(cluster.Synonyms, m)
			}
		}
		clusters = append(clusters, cluster)
	}
	return clusters, nil
}

func betterRepresentative(a, b types.JobKeyword) bool {
	if a.RelevanceScore != b.RelevanceScore {
		return a.RelevanceScore > b.RelevanceScore
	}
	return len(a.Keyword) > len(b.Keyword)
}
