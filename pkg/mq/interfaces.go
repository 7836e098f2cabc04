package mq

import "context"

// MediaEventPublisher 消息生产者接口
type MediaEventPublisher interface {
	PublishMediaDelete(ctx context.Context, event *MediaDeleteEvent) error
}

type MediaDeleteHandler interface {
	HandleMediaDelete(ctx context.Context, event *MediaDeleteEvent) error
}

var _ MediaEventPublisher = (*Producer)(nil)
