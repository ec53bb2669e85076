package sections

import (
	"fmt"
	"net/url"
	"regexp"
	"strconv"
	"strings"
)

var nonTimeChars = regexp.MustCompile(`[^0-9:]`)

// TimeToSeconds reads "s", "m:ss" or "h:mm:ss". Out-of-range parts carry over,
// so "4:75" is 315 seconds. Garbage reads as zero.
func TimeToSeconds(input string) int {
	clean := nonTimeChars.ReplaceAllString(input, "")
	var parts []int
	for _, p := range strings.Split(clean, ":") {
		if n, err := strconv.Atoi(p); err == nil {
			parts = append(parts, n)
		}
	}
	switch {
	case len(parts) == 0:
		return 0
	case len(parts) == 1:
		return parts[0]
	case len(parts) == 2:
		return parts[0]*60 + parts[1]
	default:
		return parts[0]*3600 + parts[1]*60 + parts[2]
	}
}

// FormatSeconds renders seconds as "m:ss", or "h:mm:ss" past the hour.
func FormatSeconds(total int) string {
	if total <= 0 {
		return "0:00"
	}
	h, m, s := total/3600, (total%3600)/60, total%60
	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%d:%02d", m, s)
}

// NormalizeTime rewrites a loosely typed time string, e.g. "4:75" -> "5:15".
func NormalizeTime(input string) string {
	return FormatSeconds(TimeToSeconds(input))
}

// VideoID extracts the YouTube video id from watch, share, embed and shorts links.
func VideoID(raw string) string {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil || u.Host == "" {
		return ""
	}
	host := strings.TrimPrefix(strings.ToLower(u.Host), "www.")
	host = strings.TrimPrefix(host, "m.")
	var id string
	switch host {
	case "youtu.be":
		id = strings.Trim(u.Path, "/")
	case "youtube.com", "youtube-nocookie.com":
		if v := u.Query().Get("v"); v != "" {
			id = v
			break
		}
		segs := strings.Split(strings.Trim(u.Path, "/"), "/")
		if len(segs) == 2 && (segs[0] == "embed" || segs[0] == "shorts" || segs[0] == "live" || segs[0] == "v") {
			id = segs[1]
		}
	}
	if len(id) != 11 {
		return ""
	}
	return id
}

// ThumbnailURL is the stable 480x360 still for a video id.
func ThumbnailURL(videoID string) string {
	return "https://img.youtube.com/vi/" + videoID + "/hqdefault.jpg"
}

// PrepareSermon applies the edit-form conventions before a sermon is saved:
// start/end come in as time strings, and a recognised YouTube link replaces
// the thumbnail.
func PrepareSermon(s Sermon, start, end string) Sermon {
	if start != "" {
		s.StartTime = TimeToSeconds(start)
	}
	if end != "" {
		s.EndTime = TimeToSeconds(end)
	}
	if s.Duration != "" {
		s.Duration = NormalizeTime(s.Duration)
	} else if s.EndTime > s.StartTime {
		s.Duration = FormatSeconds(s.EndTime - s.StartTime)
	}
	if id := VideoID(s.YoutubeURL); id != "" {
		s.Thumbnail = ThumbnailURL(id)
	}
	if s.Pastor == "" {
		s.Pastor = SeniorPastor
	}
	return s
}
