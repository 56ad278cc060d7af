package buildtool

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
)

// HelpAll is the part of `help-all` output we rely on
type HelpAll struct {
	NameToGoalInfo map[string]json.RawMessage
}

// GoalNames returns the goal names, sorted
func (h *HelpAll) GoalNames() []string {
	names := make([]string, 0, len(h.NameToGoalInfo))
	for name := range h.NameToGoalInfo {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// PeekTarget is one entry of `peek` output
type PeekTarget struct {
	Address    string `json:"address"`
	TargetType string `json:"target_type"`
}

// Name returns the target name, the part of the address after the first ":"
func (p PeekTarget) Name() string {
	_, name, _ := strings.Cut(p.Address, ":")
	return name
}

// ParseHelpAll decodes `help-all` output. The document must be an object whose
// name_to_goal_info field is itself an object.
func ParseHelpAll(data []byte) (*HelpAll, error) {
	var doc map[string]json.RawMessage
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("expected a JSON object: %w", err)
	}
	if doc == nil {
		return nil, fmt.Errorf("expected a JSON object, got null")
	}

	raw, ok := doc["name_to_goal_info"]
	if !ok {
		return nil, fmt.Errorf("missing field %q", "name_to_goal_info")
	}

	var goals map[string]json.RawMessage
	if err := json.Unmarshal(raw, &goals); err != nil || goals == nil {
		return nil, fmt.Errorf("field %q must be an object", "name_to_goal_info")
	}

	return &HelpAll{NameToGoalInfo: goals}, nil
}

// ParsePeek decodes `peek` output: an array of objects carrying string
// address and target_type fields.
func ParsePeek(data []byte) ([]PeekTarget, error) {
	var entries []map[string]json.RawMessage
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("expected a JSON array of objects: %w", err)
	}
	if entries == nil {
		return nil, fmt.Errorf("expected a JSON array of objects, got null")
	}

	targets := make([]PeekTarget, 0, len(entries))
	for i, entry := range entries {
		address, err := stringField(entry, i, "address")
		if err != nil {
			return nil, err
		}
		targetType, err := stringField(entry, i, "target_type")
		if err != nil {
			return nil, err
		}
		targets = append(targets, PeekTarget{Address: address, TargetType: targetType})
	}

	return targets, nil
}

func stringField(entry map[string]json.RawMessage, index int, key string) (string, error) {
	if entry == nil {
		return "", fmt.Errorf("entry %d: expected an object", index)
	}
	raw, ok := entry[key]
	if !ok {
		return "", fmt.Errorf("entry %d: missing field %q", index, key)
	}
	var value string
	if bytes.Equal(bytes.TrimSpace(raw), []byte("null")) || json.Unmarshal(raw, &value) != nil {
		return "", fmt.Errorf("entry %d: field %q must be a string", index, key)
	}
	return value, nil
}
