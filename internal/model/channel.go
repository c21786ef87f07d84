package model

// ChannelType categorizes an advertising channel.
type ChannelType string

const (
	ChannelSocialMediaGroup ChannelType = "Social Media Group"
	ChannelSocialMediaPage  ChannelType = "Social Media Page"
	ChannelInfluencer       ChannelType = "Influencer"
	ChannelLocalDirectory   ChannelType = "Local Directory"
	ChannelEventPortal      ChannelType = "Event Portal"
)

// ChannelRecord is a single entry in the advertising channel directory.
type ChannelRecord struct {
	ID                   string            `json:"id"`
	Name                 string            `json:"name"`
	Type                 ChannelType       `json:"type"`
	Platform             string            `json:"platform,omitempty"`
	City                 string            `json:"city"`
	CoverageCodes        []string          `json:"coverage_codes,omitempty"`
	PrimaryCategories    []string          `json:"primary_categories,omitempty"`
	AudienceSizeEstimate int               `json:"audience_size_estimate"`
	EngagementLevel      Level             `json:"engagement_level"`
	Cost                 CostRange         `json:"cost_range"`
	URL                  string            `json:"url,omitempty"`
	Contact              string            `json:"contact,omitempty"`
	Notes                string            `json:"notes,omitempty"`
	Extra                map[string]string `json:"extra,omitempty"`
}

// ChannelMatch is a scored channel suggestion. Display fields are
// denormalized from the channel record so callers need no directory lookup.
type ChannelMatch struct {
	ChannelID            string      `json:"channel_id"`
	Name                 string      `json:"name"`
	Type                 ChannelType `json:"type"`
	Platform             string      `json:"platform,omitempty"`
	City                 string      `json:"city"`
	AudienceSizeEstimate int         `json:"audience_size_estimate"`
	CostRange            string      `json:"cost_range,omitempty"`
	URL                  string      `json:"url,omitempty"`
	Score                int         `json:"score"`
	Reasons              []string    `json:"reasons"`
}
