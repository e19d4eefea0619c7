// JSON renderer.
// Flattens the per-shop groups into the flyers.json array: one object per
// flyer with exactly title, thumbnail, shop_name, valid_from, valid_to and
// parsed_time. Non-ASCII text is written as-is.

package render

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/gaurav-prasanna/flyerpipe/core"
)

// JSONRenderer produces the flyer JSON document.
type JSONRenderer struct{}

// NewJSONRenderer creates a JSONRenderer.
func NewJSONRenderer() *JSONRenderer {
	return &JSONRenderer{}
}

// Render serializes every flyer of every shop, in order. No flyers
// renders as an empty array.
func (r *JSONRenderer) Render(shops []core.ShopFlyers, _ core.RunMetadata) ([]byte, error) {
	flyers := core.Flatten(shops)
	out := make([]core.FlyerJSON, 0, len(flyers))
	for _, f := range flyers {
		out = append(out, f.JSON())
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "    ")
	if err := enc.Encode(out); err != nil {
		return nil, fmt.Errorf("marshaling JSON: %w", err)
	}
	return buf.Bytes(), nil
}

// Extension returns the file extension for JSON output.
func (r *JSONRenderer) Extension() string {
	return ".json"
}
