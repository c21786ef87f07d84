package scorer

import (
	"context"
	"runtime"
	"sort"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/sells-group/adscout/internal/directory"
	"github.com/sells-group/adscout/internal/model"
)

// DefaultTopN is used when the caller does not specify a result count.
const DefaultTopN = 5

// Suggester ranks the channel directory for a business and campaign.
type Suggester struct {
	channels    *directory.ChannelDirectory
	concurrency int
}

// NewSuggester creates a Suggester. concurrency <= 0 selects GOMAXPROCS.
func NewSuggester(channels *directory.ChannelDirectory, concurrency int) *Suggester {
	if concurrency <= 0 {
		concurrency = runtime.GOMAXPROCS(0)
	}
	return &Suggester{channels: channels, concurrency: concurrency}
}

// SuggestChannels scores every directory channel and returns the topN
// positive-scoring matches, sorted by score descending with directory order
// preserved among ties. Per-channel scores are independent, so scoring fans
// out across a bounded worker group and merges by index before the sort.
// Degenerate insights never fail the call; they just produce fewer matches.
func (s *Suggester) SuggestChannels(ctx context.Context, profile model.BusinessProfile, campaign model.CampaignSpec, insights *model.AudienceInsights, topN int) []model.ChannelMatch {
	if topN < 1 {
		topN = DefaultTopN
	}

	channels := s.channels.All()
	scored := make([]model.ChannelMatch, len(channels))

	g, _ := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)
	for i, ch := range channels {
		g.Go(func() error {
			score, reasons := Score(ch, profile, campaign, insights)
			scored[i] = model.ChannelMatch{
				ChannelID:            ch.ID,
				Name:                 ch.Name,
				Type:                 ch.Type,
				Platform:             ch.Platform,
				City:                 ch.City,
				AudienceSizeEstimate: ch.AudienceSizeEstimate,
				CostRange:            ch.Cost.Raw,
				URL:                  ch.URL,
				Score:                score,
				Reasons:              reasons,
			}
			return nil
		})
	}
	_ = g.Wait()

	// Zero-score channels are excluded, not ranked last.
	matches := make([]model.ChannelMatch, 0, len(scored))
	for _, m := range scored {
		if m.Score > 0 {
			matches = append(matches, m)
		}
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Score > matches[j].Score
	})
	if len(matches) > topN {
		matches = matches[:topN]
	}

	zap.L().Info("scorer: channel suggestions ranked",
		zap.String("business_id", profile.ID),
		zap.Int("channels_scored", len(channels)),
		zap.Int("positive", len(matches)),
		zap.Int("top_n", topN),
	)

	return matches
}
