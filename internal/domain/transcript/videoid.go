package transcript

import "regexp"

// Recognized URL shapes, checked in order: standard watch, short youtu.be and
// embed URLs share one pattern; shorts URLs are matched separately.
var videoIDPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?:youtube\.com/watch\?v=|youtu\.be/|youtube\.com/embed/)([^&\n?#]+)`),
	regexp.MustCompile(`youtube\.com/shorts/([^&\n?#]+)`),
}

// ExtractVideoID pulls the video identifier out of a YouTube URL. The second
// return value is false when no known URL shape matches; callers treat that as
// a client input error, not a failure.
func ExtractVideoID(url string) (string, bool) {
	for _, pattern := range videoIDPatterns {
		if m := pattern.FindStringSubmatch(url); len(m) > 1 && m[1] != "" {
			return m[1], true
		}
	}
	return "", false
}
