package transcript

// Request represents the incoming transcript payload.
type Request struct {
	URL string `json:"url"`
}

// Response is returned by the transcript endpoint.
type Response struct {
	Transcript string    `json:"transcript"`
	VideoID    string    `json:"video_id"`
	VideoInfo  VideoInfo `json:"video_info"`
}

// VideoInfo carries the best-effort metadata shown alongside a transcript.
// Every field is always populated; fetch failures degrade to placeholders.
type VideoInfo struct {
	Title     string `json:"title"`
	Channel   string `json:"channel"`
	Thumbnail string `json:"thumbnail"`
}

// Metadata is what the oEmbed endpoint knows about a video.
type Metadata struct {
	Title      string
	AuthorName string
}

// Segment is one timed unit of caption text as returned by YouTube. Only the
// text survives into the flattened transcript.
type Segment struct {
	Text     string
	Start    float64
	Duration float64
}
