package engine

// --- MCP tool input types ---

type VideoResolveInput struct {
	URL         string `json:"url" jsonschema:"YouTube or Vimeo URL (watch, short, embed, channel or player link)"`
	Title       string `json:"title,omitempty" jsonschema:"Manual title; wins over fetched metadata"`
	Description string `json:"description,omitempty" jsonschema:"Manual description; wins over fetched metadata"`
	Thumbnail   string `json:"thumbnail_url,omitempty" jsonschema:"Manual thumbnail URL; wins over fetched metadata"`
}

type VideoTranscriptInput struct {
	URL       string `json:"url" jsonschema:"YouTube video URL"`
	Languages string `json:"languages,omitempty" jsonschema:"Comma-separated caption language preference, e.g. en,de (default: server setting)"`
	Format    string `json:"format,omitempty" jsonschema:"Output format: markdown (default), html, text"`
}

type VideoDescribeInput struct {
	URL      string `json:"url" jsonschema:"YouTube or Vimeo URL"`
	MaxChars int    `json:"max_chars,omitempty" jsonschema:"Maximum description length in characters (default: server setting)"`
}

type VideoSummaryInput struct {
	VideoID string `json:"video_id,omitempty" jsonschema:"Provider video id; empty = all videos"`
}

// --- MCP tool output types ---

// VideoResolveOutput is the resolved descriptor plus display helpers.
type VideoResolveOutput struct {
	Provider        string `json:"video_type"`
	VideoID         string `json:"video_id"`
	EmbedURL        string `json:"embed_url"`
	WatchURL        string `json:"watch_url"`
	Title           string `json:"video_title,omitempty"`
	Description     string `json:"video_description,omitempty"`
	Duration        string `json:"video_duration,omitempty"`
	DurationDisplay string `json:"duration_display,omitempty"`
	UploadDate      string `json:"upload_date,omitempty"`
	ThumbnailURL    string `json:"thumbnail_url,omitempty"`
}

type VideoRenderOutput struct {
	HTML string `json:"html"`
}

type VideoTranscriptOutput struct {
	VideoID string `json:"video_id"`
	Format  string `json:"format"`
	Lines   int    `json:"lines"`
	Content string `json:"content"`
}

type VideoDescribeOutput struct {
	VideoID     string `json:"video_id"`
	Title       string `json:"video_title,omitempty"`
	Description string `json:"description"`
	Grounded    string `json:"grounded_on"` // "transcript" or "metadata"
}
