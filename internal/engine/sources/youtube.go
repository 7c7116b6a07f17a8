// Package sources fetches video metadata and captions from provider endpoints.
package sources

// YouTube access is split across files by responsibility:
//   youtube_data.go       Data API v3 videos lookup (key fallback, rate limit)
//   oembed.go             keyless oEmbed fallback, shared with Vimeo
//   youtube_innertube.go  Innertube player types and caption track selection
//   youtube_transcript.go caption fetching (watch page scrape + ANDROID player fallback)
