package chat

import "time"

// DefaultHistoryLimit caps each channel's message log unless configured otherwise.
const DefaultHistoryLimit = 100

// stampLayout renders timestamps as "2 Jan 15:04:05".
const stampLayout = "2 Jan 15:04:05"

// Message is a single entry in a channel's history. Author is empty for
// system messages (joins, leaves, renames).
type Message struct {
	Stamp  string
	Text   string
	Author string
}

// Rendered returns the display form of the message. User messages carry the
// author in bold markup, system messages are bare text.
func (m Message) Rendered() string {
	if m.Author == "" {
		return m.Stamp + " " + m.Text
	}
	return m.Stamp + " <strong>" + m.Author + "</strong>: " + m.Text
}

// MessageStore keeps a bounded, append-only message log per channel.
// Logs are created lazily on first access and never discarded.
type MessageStore struct {
	limit int
	logs  map[string][]Message
	now   func() time.Time
}

// NewMessageStore builds a store evicting oldest entries past limit.
// Non-positive limits fall back to DefaultHistoryLimit.
func NewMessageStore(limit int) *MessageStore {
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	return &MessageStore{
		limit: limit,
		logs:  make(map[string][]Message),
		now:   time.Now,
	}
}

// Append records a message in the channel's log, evicting the oldest entry
// when the log would exceed the limit, and returns the stored message.
func (s *MessageStore) Append(channel, text, author string) Message {
	msg := Message{
		Stamp:  s.now().Format(stampLayout),
		Text:   text,
		Author: author,
	}
	log := append(s.logs[channel], msg)
	if len(log) > s.limit {
		log = log[1:]
	}
	s.logs[channel] = log
	return msg
}

// History returns every stored message for the channel rendered for display,
// oldest first. Unknown channels yield an empty history, not an error.
func (s *MessageStore) History(channel string) []string {
	if _, ok := s.logs[channel]; !ok {
		s.logs[channel] = nil
	}
	rendered := make([]string, 0, len(s.logs[channel]))
	for _, msg := range s.logs[channel] {
		rendered = append(rendered, msg.Rendered())
	}
	return rendered
}
