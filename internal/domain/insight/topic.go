package insight

import "strings"

// NumTopics is the size of every fingerprint vector.
const NumTopics = 10

// Topics is the closed set of canonical topics, in fixed order. The order is
// significant: it defines each topic's radar axis position and must be stable
// across all views.
var Topics = [NumTopics]string{
	"mileage",
	"engine",
	"service",
	"price",
	"comfort",
	"performance",
	"design",
	"safety",
	"features",
	"other",
}

// TopicIndex resolves a free-form topic string to its canonical slot.
// Matching is case-insensitive; ok is false for unrecognized topics.
func TopicIndex(topic string) (int, bool) {
	topic = strings.TrimSpace(topic)
	for i, t := range Topics {
		if strings.EqualFold(topic, t) {
			return i, true
		}
	}
	return -1, false
}
