package domain

// Topic is a menu entry selectable through an inline button
type Topic int

const (
	TopicUnknown Topic = iota
	TopicBack
	TopicProfile
	TopicSchedule
	TopicMail
	TopicCampuses
	TopicMedical
	TopicSupport
	TopicSakay
	TopicInterdept
)

// TopicKind groups topics rendered the same way
type TopicKind int

const (
	KindUnknown TopicKind = iota
	KindNavigation
	KindProfile
	KindLink
	KindInfo
)

var topicKeys = map[Topic]string{
	TopicBack:      "back",
	TopicProfile:   "profile",
	TopicSchedule:  "schedule",
	TopicMail:      "mail",
	TopicCampuses:  "campuses",
	TopicMedical:   "medical",
	TopicSupport:   "support",
	TopicSakay:     "sakay",
	TopicInterdept: "interdept",
}

var topicsByKey = func() map[string]Topic {
	m := make(map[string]Topic, len(topicKeys))
	for t, k := range topicKeys {
		m[k] = t
	}
	return m
}()

// ParseTopic maps callback payload to a topic, TopicUnknown if not recognized
func ParseTopic(key string) Topic {
	if t, ok := topicsByKey[key]; ok {
		return t
	}
	return TopicUnknown
}

// String returns the callback payload of the topic
func (t Topic) String() string {
	if k, ok := topicKeys[t]; ok {
		return k
	}
	return "unknown"
}

// Kind reports how the topic is rendered
func (t Topic) Kind() TopicKind {
	switch t {
	case TopicBack:
		return KindNavigation
	case TopicProfile:
		return KindProfile
	case TopicSchedule, TopicMail, TopicSakay, TopicInterdept:
		return KindLink
	case TopicCampuses, TopicMedical, TopicSupport:
		return KindInfo
	default:
		return KindUnknown
	}
}

// ContentTopics lists every topic backed by the content registry
func ContentTopics() []Topic {
	return []Topic{
		TopicProfile,
		TopicSchedule,
		TopicMail,
		TopicCampuses,
		TopicMedical,
		TopicSupport,
		TopicSakay,
		TopicInterdept,
	}
}
