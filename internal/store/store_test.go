package store

import (
	"context"
	"errors"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/pastforward-labs/pastforward/internal/post"
)

func testStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "pastforward.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func testParams(platform post.Platform) post.GenerationParams {
	return post.GenerationParams{
		Era:           "Roman Empire (27 BCE-476 CE)",
		Location:      "Rome, Italy",
		CharacterType: "Senator",
		Platform:      platform,
		Creativity:    50,
	}
}

func testPost(platform post.Platform) post.Post {
	p := post.Post{
		Username: "SenatorOfRome",
		Verified: true,
		Date:     "46 BCE",
		Location: "Rome, Italy",
		Content:  "The Senate convened at dawn.",
		Hashtags: []string{"RomanEmpire", "Rome", "Senator"},
		Avatar:   "/placeholder.svg?height=40&width=40",
		Platform: platform,
		Likes:    "12.3K",
		Comments: "456",
	}
	if platform == post.PlatformTwitter {
		p.Handle = "@senatorofrome"
		p.Retweets = "6.1K"
		p.Replies = "456"
	}
	return p
}

func TestStore_SaveAndGet(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	saved, err := s.Save(ctx, testParams(post.PlatformTwitter), testPost(post.PlatformTwitter))
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if saved.ID == "" {
		t.Fatal("Save assigned no ID")
	}
	if saved.Public {
		t.Error("new posts must be private")
	}

	got, err := s.Get(ctx, saved.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if !reflect.DeepEqual(got.Post, saved.Post) {
		t.Errorf("round-trip mismatch:\n saved: %+v\n got:   %+v", saved.Post, got.Post)
	}
	if got.Era != saved.Era || got.CharacterType != "Senator" || got.Creativity != 50 {
		t.Errorf("generation parameters not preserved: %+v", got)
	}
}

func TestStore_RedditRoundTrip(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	p := testPost(post.PlatformReddit)
	p.Subreddit = "r/RomanEmpire"
	p.Title = "A day in the Senate"
	p.Upvotes = "12.3K"
	p.Awards = []string{"Gold", "Silver"}

	saved, err := s.Save(ctx, testParams(post.PlatformReddit), p)
	if err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err := s.Get(ctx, saved.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Post.Subreddit != "r/RomanEmpire" || got.Post.Title != "A day in the Senate" {
		t.Errorf("reddit fields not preserved: %+v", got.Post)
	}
	if !reflect.DeepEqual(got.Post.Awards, []string{"Gold", "Silver"}) {
		t.Errorf("Awards = %v, want [Gold Silver]", got.Post.Awards)
	}
}

func TestStore_GetMissing(t *testing.T) {
	s := testStore(t)

	if _, err := s.Get(context.Background(), "no-such-id"); !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestStore_ListFilters(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	if _, err := s.Save(ctx, testParams(post.PlatformTwitter), testPost(post.PlatformTwitter)); err != nil {
		t.Fatal(err)
	}
	saved, err := s.Save(ctx, testParams(post.PlatformReddit), testPost(post.PlatformReddit))
	if err != nil {
		t.Fatal(err)
	}
	if err := s.SetPublic(ctx, saved.ID, true); err != nil {
		t.Fatal(err)
	}

	all, err := s.List(ctx, ListFilter{})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("List returned %d posts, want 2", len(all))
	}

	reddit, err := s.List(ctx, ListFilter{Platform: post.PlatformReddit})
	if err != nil {
		t.Fatal(err)
	}
	if len(reddit) != 1 || reddit[0].Platform != post.PlatformReddit {
		t.Errorf("platform filter returned %+v", reddit)
	}

	public, err := s.List(ctx, ListFilter{PublicOnly: true})
	if err != nil {
		t.Fatal(err)
	}
	if len(public) != 1 || public[0].ID != saved.ID {
		t.Errorf("public filter returned %+v", public)
	}

	limited, err := s.List(ctx, ListFilter{Limit: 1})
	if err != nil {
		t.Fatal(err)
	}
	if len(limited) != 1 {
		t.Errorf("limit filter returned %d posts, want 1", len(limited))
	}
}

func TestStore_SetPublicAndDelete(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	saved, err := s.Save(ctx, testParams(post.PlatformInstagram), testPost(post.PlatformInstagram))
	if err != nil {
		t.Fatal(err)
	}

	if err := s.SetPublic(ctx, saved.ID, true); err != nil {
		t.Fatalf("SetPublic: %v", err)
	}
	got, err := s.Get(ctx, saved.ID)
	if err != nil {
		t.Fatal(err)
	}
	if !got.Public {
		t.Error("post not marked public")
	}

	if err := s.Delete(ctx, saved.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := s.Get(ctx, saved.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("post still present after delete: %v", err)
	}

	if err := s.Delete(ctx, saved.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("second delete: err = %v, want ErrNotFound", err)
	}
	if err := s.SetPublic(ctx, "no-such-id", true); !errors.Is(err, ErrNotFound) {
		t.Errorf("SetPublic on missing: err = %v, want ErrNotFound", err)
	}
}

func TestStore_Reopen(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "pastforward.db")
	ctx := context.Background()

	s, err := Open(path)
	if err != nil {
		t.Fatal(err)
	}
	saved, err := s.Save(ctx, testParams(post.PlatformTwitter), testPost(post.PlatformTwitter))
	if err != nil {
		t.Fatal(err)
	}
	s.Close()

	s, err = Open(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer s.Close()

	if _, err := s.Get(ctx, saved.ID); err != nil {
		t.Errorf("post lost across reopen: %v", err)
	}
}
