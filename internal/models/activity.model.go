package models

import (
	"emoshown/internal/analytics"

	"gorm.io/datatypes"
)

// Activity is a catalog entry: something to do or a support resource to
// reach out to. The catalog is reference data seeded by the migration tool.
type Activity struct {
	BaseSlugModel
	Position        int                         `gorm:"not null;default:0"        json:"position"`
	Kind            string                      `gorm:"type:varchar(20);not null" json:"kind"`
	Title           string                      `gorm:"type:text;not null"        json:"title"`
	Description     string                      `gorm:"type:text"                 json:"description"`
	Link            string                      `gorm:"type:text"                 json:"link,omitempty"`
	EmotionalImpact datatypes.JSONSlice[string] `gorm:"type:jsonb"                json:"emotionalImpact"`
	Likes           int                         `gorm:"not null;default:0"        json:"likes"`
	Dislikes        int                         `gorm:"not null;default:0"        json:"dislikes"`
}

func (a *Activity) ToCatalogEntry() analytics.Activity {
	tags := make([]analytics.ImpactTag, 0, len(a.EmotionalImpact))
	for _, tag := range a.EmotionalImpact {
		tags = append(tags, analytics.ImpactTag(tag))
	}

	return analytics.Activity{
		ID:    a.ID,
		Title: a.Title,
		Kind:  analytics.ActivityKind(a.Kind),
		Tags:  tags,
		Link:  a.Link,
	}
}

func ToCatalog(activities []*Activity) []analytics.Activity {
	catalog := make([]analytics.Activity, len(activities))
	for i, activity := range activities {
		catalog[i] = activity.ToCatalogEntry()
	}
	return catalog
}
