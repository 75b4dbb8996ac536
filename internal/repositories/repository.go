package repositories

import (
	"emoshown/internal/database"
)

type Repository struct {
	User          UserRepository
	Journal       JournalRepository
	Checkin       CheckinRepository
	Activity      ActivityRepository
	Interaction   InteractionRepository
	AnalysisCache AnalysisCacheRepository
}

func New(db database.DB) Repository {
	return Repository{
		User:          NewUserRepository(db.Cache.User),
		Journal:       NewJournalRepository(),
		Checkin:       NewCheckinRepository(),
		Activity:      NewActivityRepository(db.Cache.General),
		Interaction:   NewInteractionRepository(),
		AnalysisCache: NewAnalysisCacheRepository(db.Cache.User),
	}
}
