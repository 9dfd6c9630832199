package otopic

// topicSet is a set of exact-match topic strings.
type topicSet map[string]struct{}

func newTopicSet(topics []string) topicSet {
	s := make(topicSet, len(topics))
	for _, t := range topics {
		s[t] = struct{}{}
	}
	return s
}

// intersects reports whether any element of topics is in s.
// An empty s never intersects anything.
func (s topicSet) intersects(topics []string) bool {
	for _, t := range topics {
		if _, ok := s[t]; ok {
			return true
		}
	}
	return false
}
