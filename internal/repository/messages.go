package repository

import (
	"context"
	"slices"

	"tooldir/internal/domain"
	"tooldir/internal/events"
)

// MessageRepository manages the guestbook
type MessageRepository struct {
	*Collection[domain.Message]
}

// Add posts a message with no replies
func (r *MessageRepository) Add(ctx context.Context, in domain.MessageInput) (*domain.Message, error) {
	return r.insert(ctx, domain.Message{
		ID:        r.newID(prefixMessage),
		Content:   in.Content,
		Author:    in.Author,
		Timestamp: r.now(),
		Replies:   []domain.MessageReply{},
	})
}

// AddReply appends a reply to a message. It returns nil if the message does
// not exist.
func (r *MessageRepository) AddReply(ctx context.Context, messageID string, in domain.ReplyInput) (*domain.MessageReply, error) {
	reply := domain.MessageReply{
		ID:        r.newID(prefixReply),
		Author:    in.Author,
		Content:   in.Content,
		Timestamp: r.now(),
		IsAdmin:   in.IsAdmin,
	}
	msg, err := r.modify(ctx, messageID, func(m *domain.Message) {
		m.Replies = append(m.Replies, reply)
	})
	if err != nil || msg == nil {
		return nil, err
	}
	return &reply, nil
}

// DeleteReply removes a reply. It reports false if the message or the reply
// does not exist.
func (r *MessageRepository) DeleteReply(ctx context.Context, messageID, replyID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	msgs, err := r.load(ctx)
	if err != nil {
		return false, err
	}
	i := indexOf(msgs, messageID)
	if i < 0 {
		return false, nil
	}
	j := slices.IndexFunc(msgs[i].Replies, func(rp domain.MessageReply) bool { return rp.ID == replyID })
	if j < 0 {
		return false, nil
	}
	msgs[i].Replies = slices.Delete(msgs[i].Replies, j, j+1)
	if err := r.saveAll(ctx, r.write(msgs)); err != nil {
		return false, err
	}
	r.notify(r.key, events.OpUpdated, messageID)
	return true, nil
}
