package feed

import (
	"context"
	"testing"

	"imagefeed/pkg/images"

	"github.com/golang/mock/gomock"
	"go.uber.org/zap"
)

func TestFilterSetTrimsAndFetches(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	api := NewMockLister(ctrl)
	api.EXPECT().List(gomock.Any(), "cute").Return(cuteImages, nil)

	f := NewFetcher(api, zap.NewNop().Sugar())
	tf := NewFilter(f)

	tf.Set(context.Background(), "  cute  ")

	tag, active := tf.Active()
	if !active || tag != "cute" {
		t.Errorf("wrong active tag: %q active=%v", tag, active)
	}

	st := waitSettled(t, f)
	if st.Query.Tag != "cute" || len(st.Images) != 2 {
		t.Errorf("set did not trigger the expected fetch: %+v", st)
	}
}

func TestFilterClearFetchesAll(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	api := NewMockLister(ctrl)
	api.EXPECT().List(gomock.Any(), "cat").Return(catImages, nil)
	api.EXPECT().List(gomock.Any(), "").Return(append(catImages, cuteImages[1]), nil)

	f := NewFetcher(api, zap.NewNop().Sugar())
	tf := NewFilter(f)
	ctx := context.Background()

	tf.Set(ctx, "cat")
	waitSettled(t, f)

	tf.Clear(ctx)
	st := waitSettled(t, f)

	if _, active := tf.Active(); active {
		t.Errorf("tag still active after clear")
	}
	if len(st.Images) != 3 {
		t.Errorf("clear did not fetch the unfiltered feed: %+v", st.Images)
	}
}

// Blank input behaves like clear, the equivalent of clicking "all".
func TestFilterSetBlankClears(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	api := NewMockLister(ctrl)
	api.EXPECT().List(gomock.Any(), "").Return([]images.Image{}, nil)

	f := NewFetcher(api, zap.NewNop().Sugar())
	tf := NewFilter(f)

	tf.Set(context.Background(), "   ")
	st := waitSettled(t, f)

	if _, active := tf.Active(); active {
		t.Errorf("blank tag must not become active")
	}
	if !st.Fetched || len(st.Images) != 0 {
		t.Errorf("expected settled empty feed, got %+v", st)
	}
}

// A tag chip from a card that arrived via one filter supersedes that filter's
// list with the chip's own query result.
func TestTagChipSupersedesPriorList(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	api := NewMockLister(ctrl)
	first := api.EXPECT().List(gomock.Any(), "cat").Return(catImages, nil)
	api.EXPECT().List(gomock.Any(), "cute").Return(cuteImages, nil).After(first)

	f := NewFetcher(api, zap.NewNop().Sugar())
	tf := NewFilter(f)
	ctx := context.Background()

	tf.Set(ctx, "cat")
	st := waitSettled(t, f)
	if !st.Images[0].Tags.Contains("cute") {
		t.Fatalf("fixture image should carry the cute chip: %+v", st.Images[0])
	}

	// user clicks the "cute" chip on the first card
	tf.Set(ctx, st.Images[0].Tags[1])
	st = waitSettled(t, f)

	if st.Query.Tag != "cute" {
		t.Errorf("chip click did not produce the cute query: %+v", st.Query)
	}
	if len(st.Images) != 2 || st.Images[1].Name != "Pup1" {
		t.Errorf("chip result did not supersede prior list: %+v", st.Images)
	}
}

func TestRefetchReusesActiveTag(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	api := NewMockLister(ctrl)
	api.EXPECT().List(gomock.Any(), "cat").Return(catImages, nil).Times(2)

	f := NewFetcher(api, zap.NewNop().Sugar())
	tf := NewFilter(f)
	ctx := context.Background()

	tf.Set(ctx, "cat")
	waitSettled(t, f)

	tf.Refetch(ctx)
	st := waitSettled(t, f)
	if st.Query.Tag != "cat" {
		t.Errorf("refetch lost the active tag: %+v", st.Query)
	}
}
