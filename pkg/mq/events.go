package mq

// MediaDeleteEvent 远端媒体删除事件, one per outbox row.
type MediaDeleteEvent struct {
	EventID      string `json:"event_id"`
	PublicID     string `json:"public_id"`
	ResourceType string `json:"resource_type"`
	Timestamp    int64  `json:"timestamp"`
}

const (
	MediaEventExchange    = "media_events"
	MediaDeleteQueue      = "media_delete_queue"
	MediaDeleteRoutingKey = "media.delete"
)
