package storage

import (
	"sort"

	"github.com/nyumba-ke/backend/models"
)

// BuildConversations derives one Conversation per distinct counterpart from
// the given user's messages (each message must have userID as sender or
// receiver). lookup resolves counterpart ids to users; counterparts that no
// longer resolve are skipped. The result is ordered by last-message time,
// newest conversation first.
func BuildConversations(userID int, messages []models.Message, lookup func(int) (models.User, bool)) []models.Conversation {
	counterparts := make([]int, 0)
	seen := make(map[int]bool)
	for _, m := range messages {
		other := m.SenderID
		if m.SenderID == userID {
			other = m.ReceiverID
		}
		if !seen[other] {
			seen[other] = true
			counterparts = append(counterparts, other)
		}
	}

	conversations := make([]models.Conversation, 0, len(counterparts))
	for _, counterpartID := range counterparts {
		user, ok := lookup(counterpartID)
		if !ok {
			continue
		}

		var last models.Message
		unread := 0
		for _, m := range messages {
			if m.SenderID != counterpartID && m.ReceiverID != counterpartID {
				continue
			}
			if last.ID == 0 || m.CreatedAt.After(last.CreatedAt) {
				last = m
			}
			if m.SenderID == counterpartID && m.ReceiverID == userID && !m.Read {
				unread++
			}
		}
		if last.ID == 0 {
			continue
		}

		conversations = append(conversations, models.Conversation{
			User:        user,
			LastMessage: last,
			UnreadCount: unread,
		})
	}

	sort.SliceStable(conversations, func(i, j int) bool {
		return conversations[i].LastMessage.CreatedAt.After(conversations[j].LastMessage.CreatedAt)
	})
	return conversations
}

// SortMessagesChronological orders a thread oldest first.
func SortMessagesChronological(messages []models.Message) {
	sort.SliceStable(messages, func(i, j int) bool {
		return messages[i].CreatedAt.Before(messages[j].CreatedAt)
	})
}
