package service

import (
	"context"
	"strings"

	"TubeFuss.com/cmd/model"
	"TubeFuss.com/pkg/database"
	"TubeFuss.com/pkg/errno"
	"TubeFuss.com/pkg/utils"
	"github.com/pkg/errors"
)

type TweetService struct {
	store TweetStore
	users UserLookup
}

func NewTweetService(store TweetStore, users UserLookup) *TweetService {
	return &TweetService{store: store, users: users}
}

func (s *TweetService) CreateTweet(ctx context.Context, ownerID, content string) (*model.Tweet, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, errno.ParamErr.WithMessage("Tweet content is required")
	}
	tweet := &model.Tweet{Content: content, OwnerID: ownerID}
	if err := s.store.CreateTweet(ctx, tweet); err != nil {
		return nil, errors.WithMessage(err, "dao.CreateTweet failed")
	}
	return tweet, nil
}

func (s *TweetService) UserTweets(ctx context.Context, username, viewerID string, param database.PageParam) (*database.Page[model.TweetView], error) {
	username = utils.NormalizeUsername(username)
	if username == "" {
		return nil, errno.ParamErr.WithMessage("Username is missing")
	}
	owner, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	return s.store.UserTweets(ctx, owner.ID, viewerID, param)
}

func (s *TweetService) UpdateTweet(ctx context.Context, tweetID, actorID, content string) (*model.Tweet, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, errno.ParamErr.WithMessage("Tweet content is required")
	}
	tweet, err := s.owned(ctx, tweetID, actorID)
	if err != nil {
		return nil, err
	}
	if err = s.store.UpdateTweet(ctx, tweet.ID, content); err != nil {
		return nil, err
	}
	tweet.Content = content
	return tweet, nil
}

func (s *TweetService) DeleteTweet(ctx context.Context, tweetID, actorID string) error {
	if _, err := s.owned(ctx, tweetID, actorID); err != nil {
		return err
	}
	return s.store.DeleteTweet(ctx, tweetID)
}

func (s *TweetService) owned(ctx context.Context, id, actorID string) (*model.Tweet, error) {
	tweet, err := s.store.FindTweet(ctx, id)
	if err != nil {
		return nil, err
	}
	if tweet.OwnerID != actorID {
		return nil, errno.AuthorizationErr.WithMessage("Requested user is not the tweet owner")
	}
	return tweet, nil
}
