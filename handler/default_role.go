// default_role.go is file declaring pure functions classifying role & mutating service record

package handler

import (
	"consultags/entity"
)

// RoleTags is pair of tags signaling role of node
type RoleTags struct {
	Active  string
	Standby string
}

var DefaultRoleTags = RoleTags{Active: entity.DefaultActiveTag, Standby: entity.DefaultStandbyTag}

// ClassifyRole compare output with exact equality (no trimming & case folding)
// output matching neither result returns empty tags, it is not treated as error
func ClassifyRole(output, resultTrue, resultFalse string, tags RoleTags) []string {
	switch output {
	case resultTrue:
		return []string{tags.Active}
	case resultFalse:
		return []string{tags.Standby}
	}
	return []string{}
}

// MutateRecord append classified tags after existing tags & nest service fields into EntityRecord.
// if replaceRoleTags is set and any tag is classified, prior role tags are removed before appending.
func MutateRecord(record entity.ServiceRecord, classified []string, tags RoleTags, replaceRoleTags bool) entity.EntityRecord {
	merged := make([]string, 0, len(record.ServiceTags)+len(classified))
	for _, tag := range record.ServiceTags {
		if replaceRoleTags && len(classified) != 0 && (tag == tags.Active || tag == tags.Standby) {
			continue
		}
		merged = append(merged, tag)
	}
	merged = append(merged, classified...)

	return record.ToEntity(merged)
}
