package export

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/vmihailenco/msgpack/v5"
	"gopkg.in/yaml.v3"

	"github.com/syssam/entityreader"
)

// Format is a snapshot encoding.
type Format string

// Supported formats.
const (
	JSON    Format = "json"
	YAML    Format = "yaml"
	MsgPack Format = "msgpack"
)

// Formats lists the supported formats.
var Formats = []Format{JSON, YAML, MsgPack}

// ParseFormat parses a format name. "yml" and "mp" are accepted as aliases.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case JSON, YAML, MsgPack:
		return f, nil
	case "yml":
		return YAML, nil
	case "mp":
		return MsgPack, nil
	default:
		return "", entityreader.NewConfigError("Format", s, "unsupported format; use json, yaml, or msgpack")
	}
}

// Encode writes the snapshot to w.
func (s *Snapshot) Encode(w io.Writer, f Format) error {
	switch f {
	case JSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(s)
	case YAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(s); err != nil {
			return err
		}
		return enc.Close()
	case MsgPack:
		return msgpack.NewEncoder(w).Encode(s)
	default:
		return fmt.Errorf("export: unknown format %q", f)
	}
}

// Decode reads a snapshot from r.
func Decode(r io.Reader, f Format) (*Snapshot, error) {
	var (
		s   Snapshot
		err error
	)
	switch f {
	case JSON:
		err = json.NewDecoder(r).Decode(&s)
	case YAML:
		err = yaml.NewDecoder(r).Decode(&s)
	case MsgPack:
		err = msgpack.NewDecoder(r).Decode(&s)
	default:
		return nil, fmt.Errorf("export: unknown format %q", f)
	}
	if err != nil {
		return nil, fmt.Errorf("export: decode %s: %w", f, err)
	}
	return &s, nil
}
