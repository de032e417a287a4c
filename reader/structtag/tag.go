package structtag

import (
	"strings"

	"github.com/syssam/entityreader"
	"github.com/syssam/entityreader/reader"
	"github.com/syssam/entityreader/schema"
)

// parseTag parses an orm tag into annotations and an optional
// property name override.
func parseTag(tag string) (anns []schema.Annotation, name string, err error) {
	for _, seg := range strings.Split(tag, ";") {
		seg = strings.TrimSpace(seg)
		if seg == "" {
			continue
		}
		head, rest, _ := strings.Cut(seg, ",")
		key, value, hasValue := strings.Cut(head, "=")
		switch key = strings.TrimSpace(key); {
		case hasValue && key == "name":
			if rest != "" {
				return nil, "", entityreader.NewAnnotationError("", "", seg, "name takes a single value", nil)
			}
			name = strings.TrimSpace(value)
		case hasValue && key == "comment":
			// Comments may contain commas.
			_, text, _ := strings.Cut(seg, "=")
			anns = append(anns, schema.Comment(strings.TrimSpace(text)))
		case hasValue:
			return nil, "", entityreader.NewAnnotationError("", "", seg, "expected an annotation name", nil)
		default:
			ann, err := reader.NewAnnotation(key, parseAttrs(rest))
			if err != nil {
				return nil, "", err
			}
			anns = append(anns, ann)
		}
	}
	return anns, name, nil
}

// parseAttrs parses "k=v,flag,k2=v2".
func parseAttrs(s string) map[string]string {
	attrs := make(map[string]string)
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		k, v, _ := strings.Cut(part, "=")
		attrs[strings.TrimSpace(k)] = strings.TrimSpace(v)
	}
	return attrs
}
