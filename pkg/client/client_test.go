package client

import (
	"context"
	"net/http"
	"net/http/httptest"
	"reflect"
	"strings"
	"testing"
	"time"

	"imagefeed/pkg/client/clienttest"
	"imagefeed/pkg/images"

	"go.uber.org/zap"
)

func newTestClient(url string) *Client {
	return New(url, 5*time.Second, zap.NewNop().Sugar())
}

func seedCats(srv *clienttest.Server) {
	srv.Add(clienttest.ImageRow{Path: "a.png", Name: "Cat1", Description: "first", UploaderName: "alice", Tags: []string{"cat", "cute"}})
	srv.Add(clienttest.ImageRow{Path: "b.png", Name: "Dog1", Description: "second", UploaderName: "bob", Tags: []string{"dog"}})
	srv.Add(clienttest.ImageRow{Path: "c.png", Name: "Plain", Description: "third", UploaderName: "bob", Tags: nil})
}

func TestListBothTagRepresentations(t *testing.T) {
	for _, asString := range []bool{false, true} {
		srv := clienttest.NewServer()
		srv.TagsAsString = asString
		seedCats(srv)

		c := newTestClient(srv.URL())
		list, err := c.List(context.Background(), "")
		if err != nil {
			t.Fatalf("tagsAsString=%v unexpected error occured: %v", asString, err.Error())
		}

		if len(list) != 3 {
			t.Fatalf("tagsAsString=%v expected 3 images, got %d", asString, len(list))
		}
		if !reflect.DeepEqual(list[0].Tags, images.TagList{"cat", "cute"}) {
			t.Errorf("tagsAsString=%v wrong tags, expected [cat cute] but was %v", asString, list[0].Tags)
		}
		if !reflect.DeepEqual(list[2].Tags, images.TagList{}) {
			t.Errorf("tagsAsString=%v untagged image got tags %v", asString, list[2].Tags)
		}

		srv.Close()
	}
}

func TestListTagFilter(t *testing.T) {
	srv := clienttest.NewServer()
	defer srv.Close()
	seedCats(srv)

	c := newTestClient(srv.URL())
	list, err := c.List(context.Background(), "cat")
	if err != nil {
		t.Fatalf("unexpected error occured: %v", err.Error())
	}

	if len(list) != 1 || list[0].Name != "Cat1" {
		t.Errorf("wrong filter result: %+v", list)
	}
}

func TestVoteAndCount(t *testing.T) {
	srv := clienttest.NewServer()
	defer srv.Close()
	id := srv.Add(clienttest.ImageRow{Path: "a.png", Name: "Cat1"})

	c := newTestClient(srv.URL())
	msg, err := c.Vote(context.Background(), id, 1)
	if err != nil {
		t.Fatalf("unexpected error occured: %v", err.Error())
	}
	if msg != "Vote recorded successfully" {
		t.Errorf("wrong message: %v", msg)
	}

	count, err := c.VoteCount(context.Background(), id)
	if err != nil {
		t.Fatalf("unexpected error occured: %v", err.Error())
	}
	if count != 1 {
		t.Errorf("expected count 1, got %d", count)
	}
}

func TestVoteRejected(t *testing.T) {
	srv := clienttest.NewServer()
	defer srv.Close()
	id := srv.Add(clienttest.ImageRow{Path: "a.png", Name: "Cat1"})
	srv.RejectVotes = "already voted"

	c := newTestClient(srv.URL())
	_, err := c.Vote(context.Background(), id, 1)

	httpErr, ok := err.(*HTTPError)
	if !ok {
		t.Fatalf("expected HTTPError, got %T: %v", err, err)
	}
	if httpErr.Message != "already voted" {
		t.Errorf("server error not surfaced verbatim, got %q", httpErr.Message)
	}
	if UserMessage(err) != "already voted" {
		t.Errorf("UserMessage mangled the error: %q", UserMessage(err))
	}
}

func TestUpload(t *testing.T) {
	srv := clienttest.NewServer()
	defer srv.Close()

	c := newTestClient(srv.URL())
	msg, err := c.Upload(context.Background(), UploadRequest{
		FileName:    "cat.png",
		File:        strings.NewReader("not really a png"),
		Name:        "A",
		Description: "d",
		Tags:        "x,y",
	})
	if err != nil {
		t.Fatalf("unexpected error occured: %v", err.Error())
	}
	if msg != "Image uploaded successfully" {
		t.Errorf("wrong message: %v", msg)
	}

	list, err := c.List(context.Background(), "")
	if err != nil {
		t.Fatalf("unexpected error occured: %v", err.Error())
	}
	if len(list) != 1 || !reflect.DeepEqual(list[0].Tags, images.TagList{"x", "y"}) {
		t.Errorf("uploaded image not listed back correctly: %+v", list)
	}
}

func TestAuth(t *testing.T) {
	srv := clienttest.NewServer()
	defer srv.Close()

	c := newTestClient(srv.URL())
	ctx := context.Background()

	msg, err := c.Register(ctx, "alice", "password1")
	if err != nil {
		t.Fatalf("unexpected error occured: %v", err.Error())
	}
	if msg != "User registered successfully" {
		t.Errorf("wrong message: %v", msg)
	}

	_, err = c.Register(ctx, "alice", "password1")
	if UserMessage(err) != "Username already exists" {
		t.Errorf("duplicate register not surfaced, got %v", err)
	}

	u, err := c.Login(ctx, "alice", "password1")
	if err != nil {
		t.Fatalf("unexpected error occured: %v", err.Error())
	}
	if u.Username != "alice" || u.ID == 0 {
		t.Errorf("wrong user record: %+v", u)
	}

	_, err = c.Login(ctx, "alice", "wrong")
	if UserMessage(err) != "Invalid username or password" {
		t.Errorf("bad login not surfaced, got %v", err)
	}
}

func TestNetworkError(t *testing.T) {
	srv := clienttest.NewServer()
	url := srv.URL()
	srv.Close()

	c := newTestClient(url)
	_, err := c.List(context.Background(), "")
	if _, ok := err.(*NetworkError); !ok {
		t.Errorf("expected NetworkError, got %T: %v", err, err)
	}
}

func TestMalformedResponse(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("{broken"))
	}))
	defer ts.Close()

	c := newTestClient(ts.URL)
	_, err := c.List(context.Background(), "")
	if _, ok := err.(*MalformedResponseError); !ok {
		t.Errorf("expected MalformedResponseError, got %T: %v", err, err)
	}
}

func TestImageURL(t *testing.T) {
	c := newTestClient("http://localhost:5000/")
	got := c.ImageURL(images.Image{PathRef: "abc.png"})
	if got != "http://localhost:5000/uploads/abc.png" {
		t.Errorf("wrong image url: %v", got)
	}
}
