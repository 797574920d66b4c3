package design

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrNoFrames reports that a parsed value matched none of the known document
// shapes. Callers treat it the same as ErrUnrecoverable: substitute a default.
var ErrNoFrames = errors.New("design: parsed value has no usable frames")

// The known legacy shapes LLM output arrives in. Enumerated explicitly;
// anything else fails closed rather than being guessed at.
type shape int

const (
	shapeUnknown shape = iota
	shapeFrames        // {"frames": [...]}
	shapeSingleFrame   // a lone frame object, no wrapper
	shapeNestedDesign  // {"design": {"frames": [...]}}
)

func shapeOf(v map[string]any) shape {
	if frames, ok := v["frames"].([]any); ok && len(frames) > 0 {
		return shapeFrames
	}
	if nested, ok := v["design"].(map[string]any); ok {
		if frames, ok := nested["frames"].([]any); ok && len(frames) > 0 {
			return shapeNestedDesign
		}
	}
	if isFrameObject(v) {
		return shapeSingleFrame
	}
	return shapeUnknown
}

// isFrameObject recognizes a bare frame: either explicitly tagged
// type=="frame", or carrying the name/width/height trio every frame has.
func isFrameObject(v map[string]any) bool {
	if t, ok := v["type"].(string); ok && t == ElementFrame {
		return true
	}
	_, hasName := v["name"]
	_, hasWidth := v["width"]
	_, hasHeight := v["height"]
	return hasName && hasWidth && hasHeight
}

// DecodeDocument converts a repaired value into a typed Document. One case
// per known shape; a single frame is promoted to a one-element frames list
// here, not in the repair stages, so repair stays purely syntactic.
func DecodeDocument(v map[string]any) (*Document, error) {
	switch shapeOf(v) {
	case shapeFrames:
		return decodeAs(v)
	case shapeNestedDesign:
		nested := v["design"].(map[string]any)
		return decodeAs(nested)
	case shapeSingleFrame:
		var frame Frame
		if err := reencode(v, &frame); err != nil {
			return nil, fmt.Errorf("decoding single frame: %w", err)
		}
		return &Document{Frames: []Frame{frame}}, nil
	default:
		return nil, ErrNoFrames
	}
}

func decodeAs(v map[string]any) (*Document, error) {
	var doc Document
	if err := reencode(v, &doc); err != nil {
		return nil, fmt.Errorf("decoding frames: %w", err)
	}
	if len(doc.Frames) == 0 {
		return nil, ErrNoFrames
	}
	return &doc, nil
}

// reencode round-trips a generic map through JSON into a typed target.
func reencode(v map[string]any, target any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, target)
}
