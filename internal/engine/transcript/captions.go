package transcript

import (
	"context"
	"fmt"
	"html"
	"strconv"
	"strings"

	"github.com/anatolykoptev/go_video/internal/engine/sources"
	"github.com/anatolykoptev/go_video/internal/engine/video"
)

const (
	// paragraphGap starts a new paragraph after a pause this long (seconds).
	paragraphGap = 2.0
	// paragraphChars caps paragraph length before a forced break.
	paragraphChars = 400
)

// FromCaptions renders timed caption lines as transcript HTML. Each
// paragraph opens with a timestamp span carrying its start offset.
func FromCaptions(lines []sources.Caption) string {
	var sb strings.Builder
	var para strings.Builder
	var paraStart, lastEnd float64

	flush := func() {
		if para.Len() == 0 {
			return
		}
		fmt.Fprintf(&sb, `<p><span class="ekv-ts" data-start="%s">%s</span> %s</p>`,
			strconv.FormatFloat(paraStart, 'f', -1, 64),
			video.FormatSeconds(int(paraStart)),
			para.String())
		para.Reset()
	}

	for i, l := range lines {
		if i > 0 && (l.Start-lastEnd > paragraphGap || para.Len() > paragraphChars) {
			flush()
		}
		if para.Len() == 0 {
			paraStart = l.Start
		} else {
			para.WriteByte(' ')
		}
		para.WriteString(html.EscapeString(l.Text))
		lastEnd = l.Start + l.Duration
	}
	flush()
	return sb.String()
}

// CaptionFetcher loads caption lines for a YouTube video.
type CaptionFetcher func(ctx context.Context, videoID string, langs []string) ([]sources.Caption, error)

// Resolve returns sanitized transcript HTML for d. Editor content wins;
// when it is empty and auto is set, YouTube captions are fetched. Vimeo
// has no caption source and yields "".
func Resolve(ctx context.Context, d video.Descriptor, content string, auto bool, fetch CaptionFetcher) (string, error) {
	if s := Sanitize(content); s != "" {
		return s, nil
	}
	if !auto || d.Provider != video.ProviderYouTube || d.VideoID == "" {
		return "", nil
	}
	if fetch == nil {
		fetch = sources.FetchYouTubeCaptions
	}
	lines, err := fetch(ctx, d.VideoID, nil)
	if err != nil {
		return "", fmt.Errorf("transcript %s: %w", d.VideoID, err)
	}
	return FromCaptions(lines), nil
}
