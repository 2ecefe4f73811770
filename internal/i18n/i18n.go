// Package i18n ships the upload widget's translation dictionaries and merges
// them with application-supplied overrides. Keys are dotted paths under the
// "uploader." namespace; the widget wants them back as a nested object.
package i18n

import (
	"embed"
	"encoding/json"
	"fmt"
	"strings"
)

//go:embed messages/*.json
var messages embed.FS

const prefix = "uploader."

// WidgetText returns the nested text object for the widget: shipped
// dictionary for lang (English when the language has no dictionary), with
// application overrides layered on top. Keys outside the uploader namespace
// are ignored.
func WidgetText(lang string, overrides map[string]string) map[string]any {
	flat := shipped(lang)
	if len(flat) == 0 && lang != "en" {
		flat = shipped("en")
	}

	merged := make(map[string]string, len(flat)+len(overrides))
	for k, v := range flat {
		merged[k] = v
	}
	for k, v := range overrides {
		merged[k] = v
	}

	return unflatten(merged)
}

func shipped(lang string) map[string]string {
	raw, err := messages.ReadFile(fmt.Sprintf("messages/%s.json", lang))
	if err != nil {
		return nil
	}

	var flat map[string]string
	if err := json.Unmarshal(raw, &flat); err != nil {
		return nil
	}
	return flat
}

func unflatten(flat map[string]string) map[string]any {
	nested := make(map[string]any)

	for key, value := range flat {
		if !strings.HasPrefix(key, prefix) {
			continue
		}

		parts := strings.Split(strings.TrimPrefix(key, prefix), ".")
		node := nested
		for i, part := range parts {
			if i == len(parts)-1 {
				node[part] = value
				break
			}
			child, ok := node[part].(map[string]any)
			if !ok {
				child = make(map[string]any)
				node[part] = child
			}
			node = child
		}
	}

	return nested
}
