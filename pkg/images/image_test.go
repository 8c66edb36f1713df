package images

import (
	"encoding/json"
	"reflect"
	"testing"
)

type tagListCase struct {
	name     string
	body     string
	expected TagList
}

var tagListCases = []tagListCase{
	{
		name:     "ArrayOfStrings",
		body:     `{"image_id": 1, "tags": ["cat", "cute"]}`,
		expected: TagList{"cat", "cute"},
	},
	{
		name:     "CommaString",
		body:     `{"image_id": 1, "tags": "cat,cute"}`,
		expected: TagList{"cat", "cute"},
	},
	{
		name:     "CommaStringWithWhitespace",
		body:     `{"image_id": 1, "tags": " cat , cute "}`,
		expected: TagList{"cat", "cute"},
	},
	{
		name:     "ArrayWithWhitespaceAndBlanks",
		body:     `{"image_id": 1, "tags": [" cat", "", "cute "]}`,
		expected: TagList{"cat", "cute"},
	},
	{
		name:     "Null",
		body:     `{"image_id": 1, "tags": null}`,
		expected: TagList{},
	},
	{
		name:     "EmptyString",
		body:     `{"image_id": 1, "tags": ""}`,
		expected: TagList{},
	},
}

func TestTagListUnmarshal(t *testing.T) {
	for i, tc := range tagListCases {
		var img Image
		err := json.Unmarshal([]byte(tc.body), &img)
		if err != nil {
			t.Fatalf("test case %d %s unexpected error occured: %v", i, tc.name, err.Error())
		}

		if !reflect.DeepEqual(img.Tags, tc.expected) {
			t.Errorf("test case %d %s tags not equal. expected: %v, but was: %v", i, tc.name, tc.expected, img.Tags)
		}
	}
}

func TestTagListUnmarshalBadShape(t *testing.T) {
	var img Image
	err := json.Unmarshal([]byte(`{"image_id": 1, "tags": 42}`), &img)
	if err == nil {
		t.Errorf("expected error for numeric tags value")
	}
}

func TestImageUnmarshalFullRow(t *testing.T) {
	body := `{
		"image_id": 7,
		"image_path": "abc_cat.png",
		"name": "Cat1",
		"description": "a cat",
		"username": "alice",
		"tags": "cat,cute",
		"vote_count": 4
	}`

	var img Image
	err := json.Unmarshal([]byte(body), &img)
	if err != nil {
		t.Fatalf("unexpected error occured: %v", err.Error())
	}

	expected := Image{
		ID:           7,
		Name:         "Cat1",
		Description:  "a cat",
		PathRef:      "abc_cat.png",
		UploaderName: "alice",
		Tags:         TagList{"cat", "cute"},
		VoteCount:    4,
	}
	if !reflect.DeepEqual(img, expected) {
		t.Errorf("image not equal. expected: %+v, but was: %+v", expected, img)
	}
}

func TestParseTags(t *testing.T) {
	got := ParseTags("x, y ,")
	if !reflect.DeepEqual(got, TagList{"x", "y"}) {
		t.Errorf("wrong tags, expected [x y] but was %v", got)
	}

	if !got.Contains("x") || got.Contains("z") {
		t.Errorf("Contains gave wrong answer for %v", got)
	}
}
