package render

import "html/template"

var fragmentTmpl = template.Must(template.New("embed").Parse(`<div itemprop="video" itemscope="" itemtype="http://schema.org/VideoObject" class="{{.Classes}} ekv-wrapper" id="{{.ID}}">
{{- with .D.Title}}
<meta itemprop="name" content="{{.}}">{{end}}
{{- with .D.Duration}}
<meta itemprop="duration" content="{{.}}">{{end}}
{{- with .D.UploadDate}}
<meta itemprop="uploadDate" content="{{.}}">{{end}}
{{- with .ThumbURL}}
<meta itemprop="thumbnailURL" content="{{.}}">{{end}}
<meta itemprop="interactionCount" content="1">
{{- with .D.EmbedURL}}
<meta itemprop="embedURL" content="{{.}}">{{end}}
{{- if and .ShowTitle .D.Title}}
<h3 class="ekwa-video-title">{{.D.Title}}</h3>{{end}}
{{- if .AMP}}
<div class="player-wrap plugin-responsive">
{{- if .IsYouTube}}
<amp-youtube data-videoid="{{.D.VideoID}}" layout="responsive" width="480" height="270"></amp-youtube>
{{- else}}
<amp-vimeo data-videoid="{{.D.VideoID}}" layout="responsive" width="500" height="281"></amp-vimeo>
{{- end}}
</div>
{{- else}}
<div class="player-wrap plugin-responsive">
<div class="player ekwa-video-player" data-id="{{.D.VideoID}}" data-provider="{{.D.Provider}}" data-video-type="{{.D.Provider}}" data-video-id="{{.D.VideoID}}" data-autoplay="{{.Autoplay}}" data-lightbox="{{.Lightbox}}">
{{- if .ThumbURL}}
{{- if .Lightbox}}
<a class="glightbox ekwa-video-lightbox" href="{{.LightboxURL}}" data-type="video">
{{- end}}
<div class="ekwa-video-thumbnail" data-embed-url="{{.D.EmbedURL}}">
<img decoding="async" class="image-responsive ls-is-cached lazyloaded ekwa-video-thumb-img" src="{{.ThumbURL}}" alt="{{.ThumbAlt}}">
<span class="playicon ekwa-video-play-button"><svg width="68" height="48" viewBox="0 0 68 48"><path d="M66.52 7.74c-.78-2.93-2.49-5.41-5.42-6.19C55.79.13 34 0 34 0S12.21.13 6.9 1.55c-2.93.78-4.63 3.26-5.42 6.19C.06 13.05 0 24 0 24s.06 10.95 1.48 16.26c.78 2.93 2.49 5.41 5.42 6.19C12.21 47.87 34 48 34 48s21.79-.13 27.1-1.55c2.93-.78 4.63-3.26 5.42-6.19C67.94 34.95 68 24 68 24s-.06-10.95-1.48-16.26z" fill="#f00"></path><path d="M45 24L27 14v20" fill="#fff"></path></svg></span>
{{- with .DurationLabel}}
<div class="ekwa-video-duration">{{.}}</div>{{end}}
</div>
{{- if .Lightbox}}
</a>
{{- end}}
{{- else}}
<div class="ekwa-video-placeholder"><p>Video thumbnail not available</p></div>
{{- end}}
<div class="ekwa-video-iframe-container" style="display: none;"></div>
</div>
</div>
{{- end}}
{{- with .D.Description}}
<meta itemprop="description" content="{{.}}">{{end}}
{{- if and .ShowDesc .D.Description}}
<div class="ekwa-video-description"><p>{{.D.Description}}</p></div>{{end}}
{{- if .Transcript}}
<div class="video_transcript_btn"><a data-target="#transcript-{{.D.VideoID}}" class="btn-standard btn-vdo-trans btn-transcript ekv-button" href="javascript:void(0);" aria-expanded="false">Video Transcript <span class="trans-icon"></span></a></div>
<div id="transcript-{{.D.VideoID}}" class="transcript-wrapper-del transcript" style="display: none;"><div class="transcript-box"><div class="transcript-container ekv-transcript">{{.Transcript}}</div></div></div>
{{- end}}
</div>
`))
