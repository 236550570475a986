package action

import (
	"fmt"
	"regexp"
	"strings"
)

// fieldAliases maps every accepted spelling of a parser field to its
// canonical key, tolerant of the variants an NL collaborator might emit.
var fieldAliases = map[string]string{
	"action":                "action",
	"requested_action":      "requested_action",
	"requested action":      "requested_action",
	"target":                "target",
	"indirect_target":       "indirect_target",
	"indirect target":       "indirect_target",
	"second target":         "indirect_target",
	"item":                  "item",
	"location":              "location",
	"topic_of_conversation": "topic_of_conversation",
	"topic":                 "topic_of_conversation",
}

var blockNumberPrefix = regexp.MustCompile(`^\s*\d+[.)]\s*`)

// ParseBlocks parses the literal parser output contract from §4.1:
// one or more comma-separated "key:value" blocks, one per line or
// numbered, each describing a single action. It is the format a
// deterministic stub IntentParser emits and is also useful for tests.
func ParseBlocks(raw string) ([]Envelope, error) {
	var envelopes []Envelope
	for _, line := range strings.Split(raw, "\n") {
		line = blockNumberPrefix.ReplaceAllString(strings.TrimSpace(line), "")
		if line == "" {
			continue
		}
		env, err := parseBlock(line)
		if err != nil {
			return nil, err
		}
		envelopes = append(envelopes, env)
	}
	return envelopes, nil
}

func parseBlock(line string) (Envelope, error) {
	fields := map[string]string{}
	for _, part := range strings.Split(line, ",") {
		kv := strings.SplitN(part, ":", 2)
		if len(kv) != 2 {
			continue
		}
		key := normalizeKey(kv[0])
		canon, ok := fieldAliases[key]
		if !ok {
			continue
		}
		fields[canon] = strings.TrimSpace(kv[1])
	}

	kindRaw := NormalizeRaw(fields["action"])
	if kindRaw == "" {
		return Envelope{}, fmt.Errorf("action: missing action field in block %q", line)
	}
	env := Envelope{
		Kind:           Kind(normalizeKey(kindRaw)),
		Target:         NewToken(fields["target"]),
		IndirectTarget: NewToken(fields["indirect_target"]),
		Item:           NewToken(fields["item"]),
		Location:       NewToken(fields["location"]),
		Topic:          NormalizeRaw(fields["topic_of_conversation"]),
	}
	if reqRaw := NormalizeRaw(fields["requested_action"]); reqRaw != "" {
		env.RequestedAction = Kind(normalizeKey(reqRaw))
	}
	return env, nil
}
