package dataset

import (
	"bytes"
	"fmt"

	json "github.com/goccy/go-json"

	"github.com/tabletoplab/bgg-harvester/pkg/bgg"
)

// Dataset maps game names to their retrieved comments. Unlike a plain map it
// remembers insertion order, and that order survives the JSON round trip.
type Dataset struct {
	names    []string
	comments map[string][]bgg.Comment
}

// New creates an empty dataset
func New() *Dataset {
	return &Dataset{comments: make(map[string][]bgg.Comment)}
}

// Set records the comments for a game. First-time names are appended to the
// iteration order; repeated names keep their original position.
func (d *Dataset) Set(name string, comments []bgg.Comment) {
	if d.comments == nil {
		d.comments = make(map[string][]bgg.Comment)
	}
	if _, ok := d.comments[name]; !ok {
		d.names = append(d.names, name)
	}
	d.comments[name] = comments
}

// Get returns the comments recorded for a game
func (d *Dataset) Get(name string) ([]bgg.Comment, bool) {
	comments, ok := d.comments[name]
	return comments, ok
}

// Games returns the game names in insertion order
func (d *Dataset) Games() []string {
	out := make([]string, len(d.names))
	copy(out, d.names)
	return out
}

// Len returns the number of games in the dataset
func (d *Dataset) Len() int {
	return len(d.names)
}

// MarshalJSON renders the dataset as a JSON object whose keys appear in
// insertion order.
func (d *Dataset) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, name := range d.names {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(name)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		val, err := json.Marshal(d.comments[name])
		if err != nil {
			return nil, err
		}
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON restores a dataset from a JSON object, preserving key order.
func (d *Dataset) UnmarshalJSON(data []byte) error {
	d.names = nil
	d.comments = make(map[string][]bgg.Comment)

	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("dataset: expected JSON object, got %v", tok)
	}

	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		name, ok := tok.(string)
		if !ok {
			return fmt.Errorf("dataset: expected string key, got %v", tok)
		}
		var comments []bgg.Comment
		if err := dec.Decode(&comments); err != nil {
			return err
		}
		d.Set(name, comments)
	}

	_, err = dec.Token()
	return err
}
