package service

import (
	"context"
	"errors"
	"testing"

	"TubeFuss.com/cmd/model"
	"TubeFuss.com/pkg/database"
	"TubeFuss.com/pkg/errno"
	"TubeFuss.com/pkg/lock"
	"TubeFuss.com/pkg/mock"
)

func TestToggleSubscription(t *testing.T) {
	ctx := context.Background()
	store := mock.NewStore()
	users := map[string]*model.User{}
	for _, name := range []string{"alice", "bob", "carol"} {
		u := &model.User{Username: name, Email: name + "@example.com", FullName: name}
		if err := store.CreateUser(ctx, u); err != nil {
			t.Fatal(err)
		}
		users[name] = u
	}
	latest := &model.Video{Title: "newest", Description: "d", OwnerID: users["alice"].ID, IsPublished: true}
	if err := store.CreateVideo(ctx, latest); err != nil {
		t.Fatal(err)
	}
	s := NewSubscriptionService(store, store, lock.NewLocalLocker())
	page := database.PageParam{Page: 1, Limit: 10}

	if _, err := s.ToggleSubscription(ctx, users["alice"].ID, "alice"); !errors.Is(err, errno.ParamErr) {
		t.Errorf("self subscribe err = %v", err)
	}
	if _, err := s.ToggleSubscription(ctx, users["bob"].ID, "nobody"); !errors.Is(err, errno.NotFoundErr) {
		t.Errorf("unknown channel err = %v", err)
	}

	for _, name := range []string{"bob", "carol"} {
		on, err := s.ToggleSubscription(ctx, users[name].ID, "ALICE")
		if err != nil || !on {
			t.Fatalf("%s subscribe = %v, %v", name, on, err)
		}
	}

	subs, err := s.Subscribers(ctx, "alice", page)
	if err != nil || subs.TotalDocs != 2 {
		t.Fatalf("Subscribers = %+v, %v", subs, err)
	}
	if subs.Docs[0].Subscriber.Username != "carol" {
		t.Errorf("newest subscriber first, got %s", subs.Docs[0].Subscriber.Username)
	}

	channels, err := s.SubscribedChannels(ctx, users["bob"].ID, page)
	if err != nil || channels.TotalDocs != 1 {
		t.Fatalf("SubscribedChannels = %+v, %v", channels, err)
	}
	if lv := channels.Docs[0].LatestVideo; lv == nil || lv.ID != latest.ID {
		t.Errorf("latest video = %+v", lv)
	}

	on, err := s.ToggleSubscription(ctx, users["bob"].ID, "alice")
	if err != nil || on {
		t.Fatalf("unsubscribe = %v, %v", on, err)
	}
	if subs, _ = s.Subscribers(ctx, "alice", page); subs.TotalDocs != 1 {
		t.Errorf("subscribers after unsubscribe = %d", subs.TotalDocs)
	}
}
