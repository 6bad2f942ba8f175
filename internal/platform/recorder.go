package platform

import (
	"fmt"
	"sync"
	"time"

	"github.com/yuvraj-debug/Team-Jupiter-sub000/internal/models"
)

// Call is one recorded client invocation.
type Call struct {
	Method string
	Args   []string
}

// Recorder is a Client that records every call, for tests. Individual
// methods can be made to fail or return canned data.
type Recorder struct {
	mu    sync.Mutex
	calls []Call

	FailMethods map[string]error
	Audit       map[AuditAction]*AuditEntry
	Messages    []Message
	Channels    []string
	MentionPerm map[string]bool

	nextID int
}

func NewRecorder() *Recorder {
	return &Recorder{
		FailMethods: make(map[string]error),
		Audit:       make(map[AuditAction]*AuditEntry),
		MentionPerm: make(map[string]bool),
	}
}

func (r *Recorder) record(method string, args ...string) error {
	r.mu.Lock()
	r.calls = append(r.calls, Call{Method: method, Args: args})
	r.mu.Unlock()
	if err, ok := r.FailMethods[method]; ok {
		return err
	}
	return nil
}

// Calls returns the invocations of method, or all when method is empty.
func (r *Recorder) Calls(method string) []Call {
	r.mu.Lock()
	defer r.mu.Unlock()
	if method == "" {
		return append([]Call(nil), r.calls...)
	}
	var out []Call
	for _, c := range r.calls {
		if c.Method == method {
			out = append(out, c)
		}
	}
	return out
}

func (r *Recorder) CallCount(method string) int {
	return len(r.Calls(method))
}

func (r *Recorder) newID(prefix string) string {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	return fmt.Sprintf("%s-%d", prefix, r.nextID)
}

func (r *Recorder) SendMessage(channelID, content string) (string, error) {
	if err := r.record("SendMessage", channelID, content); err != nil {
		return "", err
	}
	return r.newID("msg"), nil
}

func (r *Recorder) DeleteMessage(channelID, messageID string) error {
	return r.record("DeleteMessage", channelID, messageID)
}

func (r *Recorder) SendTemporary(channelID, content string, ttl time.Duration) error {
	return r.record("SendTemporary", channelID, content)
}

func (r *Recorder) SendDM(userID, content string) error {
	return r.record("SendDM", userID, content)
}

func (r *Recorder) RecentMessages(channelID string, limit int) ([]Message, error) {
	if err := r.record("RecentMessages", channelID); err != nil {
		return nil, err
	}
	return r.Messages, nil
}

func (r *Recorder) TimeoutMember(guildID, userID string, d time.Duration) error {
	return r.record("TimeoutMember", guildID, userID, d.String())
}

func (r *Recorder) KickMember(guildID, userID, reason string) error {
	return r.record("KickMember", guildID, userID, reason)
}

func (r *Recorder) BanMember(guildID, userID, reason string) error {
	return r.record("BanMember", guildID, userID, reason)
}

func (r *Recorder) MemberCanMentionEveryone(guildID, userID string) (bool, error) {
	if err := r.record("MemberCanMentionEveryone", guildID, userID); err != nil {
		return false, err
	}
	return r.MentionPerm[userID], nil
}

func (r *Recorder) CreateChannel(guildID string, info *models.ChannelInfo) (string, error) {
	name := ""
	if info != nil {
		name = info.Name
	}
	if err := r.record("CreateChannel", guildID, name); err != nil {
		return "", err
	}
	return r.newID("chan"), nil
}

func (r *Recorder) DeleteChannel(channelID string) error {
	return r.record("DeleteChannel", channelID)
}

func (r *Recorder) RenameChannel(channelID, name string) error {
	return r.record("RenameChannel", channelID, name)
}

func (r *Recorder) CreateRole(guildID string, info *models.RoleInfo) (string, error) {
	name := ""
	if info != nil {
		name = info.Name
	}
	if err := r.record("CreateRole", guildID, name); err != nil {
		return "", err
	}
	return r.newID("role"), nil
}

func (r *Recorder) DeleteRole(guildID, roleID string) error {
	return r.record("DeleteRole", guildID, roleID)
}

func (r *Recorder) TextChannels(guildID string) ([]string, error) {
	if err := r.record("TextChannels", guildID); err != nil {
		return nil, err
	}
	return r.Channels, nil
}

func (r *Recorder) SetChannelPermission(channelID, targetID string, targetType int, allow, deny int64) error {
	return r.record("SetChannelPermission", channelID, targetID)
}

func (r *Recorder) DeleteChannelPermission(channelID, targetID string) error {
	return r.record("DeleteChannelPermission", channelID, targetID)
}

func (r *Recorder) LatestAuditEntry(guildID string, action AuditAction) (*AuditEntry, error) {
	if err := r.record("LatestAuditEntry", guildID); err != nil {
		return nil, err
	}
	return r.Audit[action], nil
}
