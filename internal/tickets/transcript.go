package tickets

import (
	"fmt"
	"strings"

	"github.com/yuvraj-debug/Team-Jupiter-sub000/internal/database"
	"github.com/yuvraj-debug/Team-Jupiter-sub000/internal/platform"
)

// renderTranscript flattens recent channel history, oldest first, into a
// plain text artifact. The platform hands messages back newest-first.
func renderTranscript(t *database.Ticket, msgs []platform.Message) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Transcript of %s ticket %s\n", t.Type, t.ChannelID)
	fmt.Fprintf(&b, "Opened by <@%s>", t.CreatorID)
	if t.ClaimedBy != "" {
		fmt.Fprintf(&b, ", handled by <@%s>", t.ClaimedBy)
	}
	b.WriteString("\n")
	b.WriteString(strings.Repeat("-", 40))
	b.WriteString("\n")

	if len(msgs) == 0 {
		b.WriteString("(no messages)\n")
		return b.String()
	}

	for i := len(msgs) - 1; i >= 0; i-- {
		m := msgs[i]
		fmt.Fprintf(&b, "[%s] %s: %s\n", m.Timestamp.Format("2006-01-02 15:04"), m.AuthorName, m.Content)
	}
	return b.String()
}
