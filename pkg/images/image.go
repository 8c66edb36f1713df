package images

import (
	"encoding/json"
	"strings"
)

// Image is the client-side replica of one row of the server's image listing.
// VoteCount is only present when the server embeds it; otherwise it is
// fetched separately from the votes endpoint.
type Image struct {
	ID           int64   `json:"image_id"`
	Name         string  `json:"name"`
	Description  string  `json:"description"`
	PathRef      string  `json:"image_path"`
	UploaderName string  `json:"username"`
	Tags         TagList `json:"tags"`
	VoteCount    int     `json:"vote_count"`
}

// TagList normalizes the two tag representations the server has been observed
// to send: a JSON array of strings and a single comma-separated string
// (GROUP_CONCAT output, null for untagged images). Entries are trimmed and
// empties dropped, order preserved.
type TagList []string

func (t *TagList) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*t = TagList{}
		return nil
	}

	var arr []string
	if err := json.Unmarshal(data, &arr); err == nil {
		*t = clean(arr)
		return nil
	}

	var joined string
	if err := json.Unmarshal(data, &joined); err != nil {
		return err
	}

	*t = ParseTags(joined)
	return nil
}

func (t TagList) MarshalJSON() ([]byte, error) {
	return json.Marshal([]string(t))
}

// Contains reports whether the list has the given tag, exact match.
func (t TagList) Contains(tag string) bool {
	for _, cur := range t {
		if cur == tag {
			return true
		}
	}

	return false
}

// ParseTags splits a comma-separated tag string the same way the upload form
// does: split, trim, drop blanks.
func ParseTags(joined string) TagList {
	if strings.TrimSpace(joined) == "" {
		return TagList{}
	}

	return clean(strings.Split(joined, ","))
}

func clean(raw []string) TagList {
	res := make(TagList, 0, len(raw))
	for _, tag := range raw {
		tag = strings.TrimSpace(tag)
		if tag == "" {
			continue
		}
		res = append(res, tag)
	}

	return res
}
