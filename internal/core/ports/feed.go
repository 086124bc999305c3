package ports

import "context"

// ChangeFeed publishes a change notification for a topic. Notifications
// carry no payload; subscribers re-read the record behind the topic, so a
// lost or duplicated notification is harmless.
type ChangeFeed interface {
	Publish(ctx context.Context, topic string) error
}

// ChangeNotifier delivers change notifications to local subscribers.
// Subscribe returns a signal channel and an unsubscribe func; after the
// unsubscribe func returns no further signals are delivered.
type ChangeNotifier interface {
	Notify(topic string)
	Subscribe(topic string) (<-chan struct{}, func())
}

// RoomTopic names the change-feed topic of a room's message log.
func RoomTopic(roomID string) string {
	return "room:" + roomID
}

// PresenceTopic names the change-feed topic of an account's presence record.
func PresenceTopic(userID string) string {
	return "presence:" + userID
}
