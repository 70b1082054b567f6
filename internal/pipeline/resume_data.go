// Package pipeline orchestrates the specialist agents into a single
// tailoring run: job analysis first, four reviewers in parallel, then a
// deterministic document synthesis pass. Generate never returns a Go
// error; failures come back as a structurally complete Bundle with
// Success=false.
package pipeline

import (
	"encoding/json"

	"resumeforge/internal/types"
)

// BuildResumeData normalizes a raw profile record into the flat view the
// specialist agents consume. The list-valued fields tolerate one level
// of JSON-string encoding (a field may hold either an array, or a string
// containing an array); anything that still fails to decode becomes an
// empty list rather than an error.
func BuildResumeData(profile types.ProfileRecord) types.ResumeData {
	return types.ResumeData{
		Name:       profile.Name,
		Email:      profile.Email,
		Phone:      profile.Phone,
		LinkedIn:   profile.LinkedIn,
		Summary:    profile.Summary,
		Experience: decodeList[types.Experience](profile.Experience),
		Education:  decodeList[types.Education](profile.Education),
		Skills:     decodeSkills(profile.Skills),
		Projects:   decodeList[types.Project](profile.Projects),
	}
}

// decodeList decodes a raw profile field into a typed slice, unwrapping
// one level of string encoding when present.
func decodeList[T any](raw json.RawMessage) []T {
	raw = unwrapString(raw)
	if len(raw) == 0 {
		return []T{}
	}
	var out []T
	if err := json.Unmarshal(raw, &out); err != nil || out == nil {
		return []T{}
	}
	return out
}

// decodeSkills flattens the skills field to plain names. Elements may be
// bare strings or skill objects with a name field.
func decodeSkills(raw json.RawMessage) []string {
	raw = unwrapString(raw)
	if len(raw) == 0 {
		return []string{}
	}
	var elems []json.RawMessage
	if err := json.Unmarshal(raw, &elems); err != nil {
		return []string{}
	}
	skills := make([]string, 0, len(elems))
	for _, elem := range elems {
		var name string
		if err := json.Unmarshal(elem, &name); err == nil {
			skills = append(skills, name)
			continue
		}
		var obj types.Skill
		if err := json.Unmarshal(elem, &obj); err == nil && obj.Name != "" {
			skills = append(skills, obj.Name)
		}
	}
	return skills
}

// unwrapString peels a single layer of JSON string encoding: if raw is a
// JSON string, its contents are returned as the new raw value.
func unwrapString(raw json.RawMessage) json.RawMessage {
	if len(raw) == 0 || raw[0] != '"' {
		return raw
	}
	var inner string
	if err := json.Unmarshal(raw, &inner); err != nil {
		return nil
	}
	return json.RawMessage(inner)
}
