package view

import (
	"fmt"
	"io"

	"imagefeed/pkg/feed"
	"imagefeed/pkg/images"
	"imagefeed/pkg/vote"
)

// Renderer prints the feed. It holds no state of its own; everything comes
// from the fetcher snapshot and the vote board.
type Renderer struct {
	// ImageURL builds the display URL for a card; optional.
	ImageURL func(images.Image) string
}

func (r *Renderer) Render(w io.Writer, st feed.State, board *vote.Board) {
	if st.Loading {
		fmt.Fprintln(w, "Loading images...")
		return
	}

	if st.Err != "" {
		fmt.Fprintf(w, "Error: %s\n", st.Err)
		return
	}

	if st.Query.Tag != "" {
		fmt.Fprintf(w, "Showing images tagged %q (use 'all' to reset)\n", st.Query.Tag)
	}

	if len(st.Images) == 0 {
		fmt.Fprintln(w, "No images to show.")
		return
	}

	for _, img := range st.Images {
		r.RenderCard(w, img, board)
	}
}

// RenderCard prints a single card; the loop uses it to redraw one image when
// its vote state changes without reprinting the whole feed.
func (r *Renderer) RenderCard(w io.Writer, img images.Image, board *vote.Board) {
	fmt.Fprintf(w, "[%d] %s (by %s)\n", img.ID, displayName(img), img.UploaderName)
	if img.Description != "" {
		fmt.Fprintf(w, "    %s\n", img.Description)
	}
	if r.ImageURL != nil {
		fmt.Fprintf(w, "    %s\n", r.ImageURL(img))
	}

	if len(img.Tags) > 0 {
		fmt.Fprint(w, "    tags:")
		for _, tag := range img.Tags {
			fmt.Fprintf(w, " #%s", tag)
		}
		fmt.Fprintln(w)
	}

	st, ok := voteStatus(board, img)
	line := fmt.Sprintf("    votes: %d", st.DisplayCount)
	if ok && st.Current != vote.None {
		line += fmt.Sprintf("  your vote: %s", st.Current)
	}
	if ok && st.Locked {
		line += "  (cooling down)"
	}
	fmt.Fprintln(w, line)

	if ok && st.Message != "" {
		fmt.Fprintf(w, "    note: %s\n", st.Message)
	}
}

func voteStatus(board *vote.Board, img images.Image) (vote.Status, bool) {
	if board == nil {
		return vote.Status{DisplayCount: img.VoteCount}, false
	}

	st, ok := board.Status(img.ID)
	if !ok {
		return vote.Status{DisplayCount: img.VoteCount}, false
	}

	return st, true
}

func displayName(img images.Image) string {
	if img.Name == "" {
		return "No Name"
	}

	return img.Name
}
