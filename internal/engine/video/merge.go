package video

// Merge fills the empty fields of manual with fetched values. A non-empty
// manual field is never overwritten. Provider and VideoID are taken as a pair
// so the result never mixes one source's provider with the other's id.
func Merge(manual, fetched Descriptor) Descriptor {
	out := manual
	if !manual.HasVideo() {
		out.Provider, out.VideoID = fetched.Provider, fetched.VideoID
		if !fetched.HasVideo() {
			out.Provider, out.VideoID = ProviderNone, ""
		}
	}
	out.EmbedURL = pick(manual.EmbedURL, fetched.EmbedURL)
	out.Title = pick(manual.Title, fetched.Title)
	out.Description = pick(manual.Description, fetched.Description)
	out.Duration = pick(manual.Duration, fetched.Duration)
	out.UploadDate = pick(manual.UploadDate, fetched.UploadDate)
	out.ThumbnailURL = pick(manual.ThumbnailURL, fetched.ThumbnailURL)
	return out
}

func pick(manual, fetched string) string {
	if manual != "" {
		return manual
	}
	return fetched
}
