package detectors

import (
	"regexp"

	"github.com/yuvraj-debug/Team-Jupiter-sub000/internal/models"
)

// FilterRule identifies which content rule a message violated.
type FilterRule uint8

const (
	FilterNone FilterRule = iota
	FilterInvite
	FilterLink
	FilterMassMention
)

var (
	inviteRe = regexp.MustCompile(`(?i)(?:discord\.gg|discord(?:app)?\.com/invite)/[a-zA-Z0-9-]+`)
	linkRe   = regexp.MustCompile(`(?i)https?://\S+`)
)

// ContentFilter is the stateless per-message predicate set. The engine
// applies the whitelist exemption and, for mass mention, the
// mention-permission exemption before acting on a match.
type ContentFilter struct {
	massMentionLimit int
}

func NewContentFilter(massMentionLimit int) *ContentFilter {
	return &ContentFilter{massMentionLimit: massMentionLimit}
}

// Evaluate returns the first rule the message violates. Invites are
// checked before plain links so an invite is reported as an invite even
// though it also matches the link pattern.
func (f *ContentFilter) Evaluate(ev *models.Event) FilterRule {
	if ev.ActorIsBot {
		return FilterNone
	}
	if inviteRe.MatchString(ev.Content) {
		return FilterInvite
	}
	if linkRe.MatchString(ev.Content) {
		return FilterLink
	}
	if ev.MentionsEveryone || ev.MentionCount >= f.massMentionLimit {
		return FilterMassMention
	}
	return FilterNone
}

func (r FilterRule) Reason() string {
	switch r {
	case FilterInvite:
		return "posting server invites"
	case FilterLink:
		return "posting links"
	case FilterMassMention:
		return "mass mentioning members"
	default:
		return ""
	}
}
