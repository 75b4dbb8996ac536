package seed

import (
	"emoshown/config"
	"emoshown/internal/analytics"
	. "emoshown/internal/models"

	logger "github.com/Bparsons0904/goLogger"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type catalogSeed struct {
	id          string
	kind        analytics.ActivityKind
	title       string
	description string
	link        string
	tags        []analytics.ImpactTag
}

// The activity ids and their order line up with the baseline affinity rows.
var catalogSeeds = []catalogSeed{
	{
		id:          "nature-walk",
		kind:        analytics.KindActivity,
		title:       "Go for a nature walk",
		description: "Step outside for twenty minutes and notice what is around you.",
		tags:        []analytics.ImpactTag{analytics.ImpactPositive, analytics.ImpactNeutral},
	},
	{
		id:          "new-workout",
		kind:        analytics.KindActivity,
		title:       "Try a new workout",
		description: "Move your body with something unfamiliar, even a short routine.",
		tags:        []analytics.ImpactTag{analytics.ImpactPositive},
	},
	{
		id:          "call-friend",
		kind:        analytics.KindActivity,
		title:       "Call a friend",
		description: "Reach out to someone you trust and talk for a while.",
		tags:        []analytics.ImpactTag{analytics.ImpactNegative, analytics.ImpactNeutral},
	},
	{
		id:          "read-book",
		kind:        analytics.KindActivity,
		title:       "Read a book",
		description: "Spend some quiet time with a book you enjoy.",
		tags:        []analytics.ImpactTag{analytics.ImpactNeutral},
	},
	{
		id:          "watch-movie",
		kind:        analytics.KindActivity,
		title:       "Watch a movie",
		description: "Pick something light and let yourself unwind.",
		tags:        []analytics.ImpactTag{analytics.ImpactPositive, analytics.ImpactNeutral},
	},
	{
		id:          "support-group",
		kind:        analytics.KindActivity,
		title:       "Join a support group",
		description: "Share what you are going through with people who understand.",
		tags:        []analytics.ImpactTag{analytics.ImpactNegative},
	},
	{
		id:          "hopeline",
		kind:        analytics.KindResource,
		title:       "HOPELINE",
		description: "24/7 crisis support hotline.",
		link:        "tel:0288044673",
		tags:        []analytics.ImpactTag{analytics.ImpactNegative},
	},
	{
		id:          "ncmh-crisis-hotline",
		kind:        analytics.KindResource,
		title:       "NCMH Crisis Hotline",
		description: "National Center for Mental Health crisis line.",
		link:        "tel:1553",
		tags:        []analytics.ImpactTag{analytics.ImpactNegative},
	},
	{
		id:          "in-touch-crisis-line",
		kind:        analytics.KindResource,
		title:       "In Touch Crisis Line",
		description: "Free and confidential emotional support.",
		link:        "tel:+63288937603",
		tags:        []analytics.ImpactTag{analytics.ImpactNegative, analytics.ImpactNeutral},
	},
	{
		id:          "pmha",
		kind:        analytics.KindResource,
		title:       "Philippine Mental Health Association, Inc.",
		description: "Programs, counselling and mental health education.",
		link:        "https://www.pmha.org.ph",
		tags:        []analytics.ImpactTag{analytics.ImpactNeutral, analytics.ImpactPositive},
	},
	{
		id:          "ncmh",
		kind:        analytics.KindResource,
		title:       "National Center for Mental Health",
		description: "Government mental health services and information.",
		link:        "https://ncmh.gov.ph",
		tags:        []analytics.ImpactTag{analytics.ImpactNeutral},
	},
	{
		id:          "in-touch",
		kind:        analytics.KindResource,
		title:       "In Touch Community Services",
		description: "Counselling and community programs.",
		link:        "https://in-touch.org",
		tags:        []analytics.ImpactTag{analytics.ImpactNeutral, analytics.ImpactPositive},
	},
}

// Catalog builds the seeded catalog rows in display order.
func Catalog() []*Activity {
	activities := make([]*Activity, len(catalogSeeds))
	for i, seed := range catalogSeeds {
		tags := make([]string, len(seed.tags))
		for j, tag := range seed.tags {
			tags[j] = string(tag)
		}

		activity := &Activity{
			Position:        i + 1,
			Kind:            string(seed.kind),
			Title:           seed.title,
			Description:     seed.description,
			Link:            seed.link,
			EmotionalImpact: datatypes.JSONSlice[string](tags),
		}
		activity.ID = seed.id
		activities[i] = activity
	}
	return activities
}

// Seed upserts the catalog. Feedback counters on existing rows are kept.
func Seed(db *gorm.DB, config config.Config, log logger.Logger) error {
	log = log.Function("seed")
	log.Info("Seeding activity catalog", "environment", config.Environment)

	activities := Catalog()
	err := db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"position",
			"kind",
			"title",
			"description",
			"link",
			"emotional_impact",
			"updated_at",
		}),
	}).Create(&activities).Error
	if err != nil {
		return log.Err("failed to seed activity catalog", err)
	}

	log.Info("Seeded activity catalog", "count", len(activities))
	return nil
}
